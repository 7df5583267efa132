package serviceRepo

import (
	"context"
	"errors"

	"salonbook/models"
)

// ErrNotFound is returned when no service matches the given id.
var ErrNotFound = errors.New("service not found")

// Repository defines read operations on the service catalogue.
type Repository interface {
	GetByID(ctx context.Context, serviceID string) (*models.Service, error)
	GetByIDs(ctx context.Context, serviceIDs []string) ([]models.Service, error)
	ListByVendor(ctx context.Context, vendorID string) ([]models.Service, error)
}
