package booking

import (
	"context"
	"time"

	staffRepo "salonbook/database/repository/staff"
	vendorRepo "salonbook/database/repository/vendor"
	"salonbook/models"
	"salonbook/utils"

	"go.uber.org/zap"
)

// AvailabilitySync propagates a vendor working-hours change into every
// affected staff member's per-day availability.
type AvailabilitySync interface {
	// Sync applies the diff between the previous and the new weekly hours.
	// A run that writes zero changed days is a no-op.
	Sync(ctx context.Context, vendorID string, newHours, oldHours models.WeeklyHours) error
	// Resync treats every weekday as changed, repairing drift between the
	// vendor's declared hours and the stored staff availability.
	Resync(ctx context.Context, vendorID string) error
}

// ResyncEnqueuer schedules a deferred resync for a vendor whose cascade
// failed, so a sync error is retried rather than silently dropped.
type ResyncEnqueuer interface {
	EnqueueResync(vendorID string) error
}

// DefaultAvailabilitySync implements AvailabilitySync.
type DefaultAvailabilitySync struct {
	VendorRepo vendorRepo.Repository
	StaffRepo  staffRepo.Repository
	Enqueuer   ResyncEnqueuer // optional retry path
}

// Sync diffs the weekly hours per weekday and applies all resulting staff
// updates as one atomic bulk operation scoped to the vendor.
func (s *DefaultAvailabilitySync) Sync(ctx context.Context, vendorID string, newHours, oldHours models.WeeklyHours) error {
	var patches []staffRepo.WeekdayPatch
	for day := time.Sunday; day <= time.Saturday; day++ {
		if dayHoursEqual(newHours[day], oldHours[day]) {
			continue
		}
		patches = append(patches, buildPatch(day, newHours[day]))
	}
	if len(patches) == 0 {
		return nil
	}
	return s.apply(ctx, vendorID, patches)
}

// Resync rebuilds every weekday's staff availability from the vendor's
// currently stored hours.
func (s *DefaultAvailabilitySync) Resync(ctx context.Context, vendorID string) error {
	vendor, err := s.VendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		if err == vendorRepo.ErrNotFound {
			return NewError(CodeUnknownResource, "vendor %s not found", vendorID)
		}
		return NewError(CodeSyncFailure, "loading vendor %s: %v", vendorID, err)
	}

	patches := make([]staffRepo.WeekdayPatch, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		patches = append(patches, buildPatch(day, vendor.WorkingHours[day]))
	}
	return s.apply(ctx, vendorID, patches)
}

func (s *DefaultAvailabilitySync) apply(ctx context.Context, vendorID string, patches []staffRepo.WeekdayPatch) error {
	logger := utils.GetLogger()

	if err := s.StaffRepo.BulkApplyWeek(ctx, vendorID, patches); err != nil {
		logger.Error("availability cascade failed",
			zap.String("vendorID", vendorID),
			zap.Int("changedDays", len(patches)),
			zap.Error(err))
		if s.Enqueuer != nil {
			if enqErr := s.Enqueuer.EnqueueResync(vendorID); enqErr != nil {
				logger.Error("failed to enqueue resync retry",
					zap.String("vendorID", vendorID), zap.Error(enqErr))
			}
		}
		return NewError(CodeSyncFailure, "availability cascade for vendor %s: %v", vendorID, err)
	}

	logger.Info("availability cascade applied",
		zap.String("vendorID", vendorID),
		zap.Int("changedDays", len(patches)))
	return nil
}

// buildPatch converts one weekday's vendor hours into a staff availability
// patch:
//   - day closed: clear the flag and the slot list,
//   - day open with declared ranges: flag true, slots overwritten with the
//     first declared range converted to minutes since midnight,
//   - day open with no ranges: flag true, existing slot lists untouched.
func buildPatch(day time.Weekday, hours models.DayHours) staffRepo.WeekdayPatch {
	if !hours.IsOpen {
		return staffRepo.WeekdayPatch{Weekday: day, Available: false}
	}
	if len(hours.Ranges) == 0 {
		return staffRepo.WeekdayPatch{Weekday: day, Available: true, KeepSlots: true}
	}
	first := hours.Ranges[0]
	return staffRepo.WeekdayPatch{
		Weekday:   day,
		Available: true,
		Slots: []models.MinuteRange{{
			Start: utils.ParseClockMinutes(first.OpenTime),
			End:   utils.ParseClockMinutes(first.CloseTime),
		}},
	}
}

func dayHoursEqual(a, b models.DayHours) bool {
	if a.IsOpen != b.IsOpen || len(a.Ranges) != len(b.Ranges) {
		return false
	}
	for i := range a.Ranges {
		if a.Ranges[i] != b.Ranges[i] {
			return false
		}
	}
	return true
}
