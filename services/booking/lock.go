package booking

import (
	"context"
	"time"

	lockRepo "salonbook/database/repository/lock"
	"salonbook/models"
	"salonbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LockRequest reserves one staff/time range for a bounded window.
type LockRequest struct {
	VendorID        string
	StaffID         string
	Date            string // "2006-01-02"
	Start           int
	End             int
	HolderID        string
	ServiceIDs      []string
	Mode            string
	TotalPrice      float64
	DurationMinutes int
}

// SlotLockManager reserves slots so no two customers can grab the same one
// simultaneously.
type SlotLockManager interface {
	Lock(ctx context.Context, req LockRequest) (*models.SlotLock, error)
	Release(ctx context.Context, lockID, holderID string) error
}

// DefaultSlotLockManager implements SlotLockManager over the transactional
// lock repository.
type DefaultSlotLockManager struct {
	Repo lockRepo.Repository
	TTL  time.Duration
}

// Lock acquires a transient reservation. The repository checks both the
// lock table and the appointment table atomically; a conflict on either
// fails with slot_unavailable rather than silently choosing another slot.
func (lm *DefaultSlotLockManager) Lock(ctx context.Context, req LockRequest) (*models.SlotLock, error) {
	if req.Start < 0 || req.End <= req.Start {
		return nil, NewError(CodeValidation, "time range [%d, %d) is empty or inverted", req.Start, req.End)
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, NewError(CodeValidation, "date %q is not a valid date", req.Date)
	}
	if req.HolderID == "" {
		return nil, NewError(CodeValidation, "holder id is required")
	}

	now := time.Now()
	lock := &models.SlotLock{
		ID:              uuid.New().String(),
		VendorID:        req.VendorID,
		StaffID:         req.StaffID,
		Date:            req.Date,
		Start:           req.Start,
		End:             req.End,
		HolderID:        req.HolderID,
		ServiceIDs:      req.ServiceIDs,
		Mode:            req.Mode,
		TotalPrice:      req.TotalPrice,
		DurationMinutes: req.DurationMinutes,
		CreatedAt:       now,
		ExpiresAt:       now.Add(lm.ttl()),
	}

	if err := lm.Repo.Acquire(ctx, lock); err != nil {
		if err == lockRepo.ErrConflict {
			return nil, NewError(CodeSlotUnavailable, "staff %s is no longer free on %s between %d and %d", req.StaffID, req.Date, req.Start, req.End)
		}
		return nil, err
	}

	utils.GetLogger().Info("slot locked",
		zap.String("lockID", lock.ID),
		zap.String("staffID", lock.StaffID),
		zap.String("date", lock.Date),
		zap.Int("start", lock.Start),
		zap.Int("end", lock.End),
		zap.Time("expiresAt", lock.ExpiresAt))
	return lock, nil
}

// Release deletes a lock immediately on explicit cancel.
func (lm *DefaultSlotLockManager) Release(ctx context.Context, lockID, holderID string) error {
	if err := lm.Repo.Release(ctx, lockID, holderID); err != nil {
		if err == lockRepo.ErrLockNotFound {
			return NewError(CodeLockInvalid, "lock %s not found for this holder", lockID)
		}
		return err
	}
	return nil
}

func (lm *DefaultSlotLockManager) ttl() time.Duration {
	if lm.TTL <= 0 {
		return 7 * time.Minute
	}
	return lm.TTL
}
