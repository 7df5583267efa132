package staffRepo

import (
	"context"
	"errors"
	"time"

	"salonbook/models"
)

// ErrNotFound is returned when no staff member matches the given id.
var ErrNotFound = errors.New("staff member not found")

// WeekdayPatch is one weekday's availability change for every staff member
// of a vendor. When KeepSlots is set the existing slot lists are preserved
// and only the availability flag is written.
type WeekdayPatch struct {
	Weekday   time.Weekday
	Available bool
	Slots     []models.MinuteRange
	KeepSlots bool
}

// Repository defines persistence operations for staff members.
type Repository interface {
	GetByID(ctx context.Context, staffID string) (*models.StaffMember, error)
	ListByVendor(ctx context.Context, vendorID string) ([]models.StaffMember, error)
	// BulkApplyWeek applies all weekday patches to every staff member of the
	// vendor as one atomic operation: either all staff documents reflect the
	// new availability or none do.
	BulkApplyWeek(ctx context.Context, vendorID string, patches []WeekdayPatch) error
}
