package lockRepo

import (
	"context"
	"errors"

	"salonbook/models"
)

// ErrConflict is returned when an active lock or appointment already covers
// the requested staff/time range.
var ErrConflict = errors.New("slot already locked or booked")

// ErrLockNotFound is returned when a lock is missing, expired, or owned by a
// different holder.
var ErrLockNotFound = errors.New("lock not found")

// Repository defines persistence operations for slot locks. Acquire and
// ConsumeWithAppointment are atomic check-and-write operations: two
// concurrent holders can never both succeed for overlapping ranges.
type Repository interface {
	// Acquire inserts the lock if no active lock and no live appointment
	// overlaps the same staff/date/range. Returns ErrConflict otherwise.
	Acquire(ctx context.Context, lock *models.SlotLock) error
	GetByID(ctx context.Context, lockID string) (*models.SlotLock, error)
	// Release deletes the lock immediately. The holder must match.
	Release(ctx context.Context, lockID, holderID string) error
	// ConsumeWithAppointment atomically deletes a valid, unexpired,
	// holder-owned lock and inserts the appointment built from it. Returns
	// ErrLockNotFound when the lock cannot be consumed; in that case no
	// appointment is created.
	ConsumeWithAppointment(ctx context.Context, lockID, holderID string, appointment *models.Appointment) error
	// DeleteExpired removes locks whose expiry has passed and reports how
	// many were swept.
	DeleteExpired(ctx context.Context) (int64, error)
}
