package appointmentRepo

import (
	"context"
	"errors"

	"salonbook/models"
)

// ErrNotFound is returned when no appointment matches the given id.
var ErrNotFound = errors.New("appointment not found")

// Repository defines persistence operations for appointments.
type Repository interface {
	GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	Create(ctx context.Context, appointment *models.Appointment) error
	// ListForStaffDate returns non-cancelled appointments for one staff
	// member on one date, ordered by start time.
	ListForStaffDate(ctx context.Context, staffID, date string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID, status string) error
}
