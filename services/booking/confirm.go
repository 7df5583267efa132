package booking

import (
	"context"
	"time"

	appointmentRepo "salonbook/database/repository/appointment"
	lockRepo "salonbook/database/repository/lock"
	"salonbook/models"
	"salonbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Payment modes accepted at confirmation. Processing the payment itself is
// out of scope; the mode only decides the initial appointment status.
const PaymentModePrepaid = "prepaid"

// ConfirmRequest finalizes a held slot into an appointment.
type ConfirmRequest struct {
	LockID      string
	HolderID    string
	CustomerID  string
	PaymentMode string
}

// BookingConfirmation converts a valid, unexpired lock into a persisted
// appointment. A lock can only move to confirmed, expired, or released;
// all three are terminal, so a retry needs a fresh lock.
type BookingConfirmation interface {
	Confirm(ctx context.Context, req ConfirmRequest) (*models.Appointment, error)
	// Cancel transitions a live appointment to cancelled, freeing its time
	// range for future searches and locks.
	Cancel(ctx context.Context, appointmentID, customerID string) error
}

// DefaultBookingConfirmation implements BookingConfirmation.
type DefaultBookingConfirmation struct {
	LockRepo        lockRepo.Repository
	AppointmentRepo appointmentRepo.Repository
}

// Confirm requires the lock to exist, be unexpired, and belong to the
// requesting holder. On success the appointment is created and the lock
// deleted in one atomic operation; on any failure no appointment is created
// and the caller must restart from slot search.
func (bc *DefaultBookingConfirmation) Confirm(ctx context.Context, req ConfirmRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	lock, err := bc.LockRepo.GetByID(ctx, req.LockID)
	if err != nil {
		if err == lockRepo.ErrLockNotFound {
			return nil, NewError(CodeLockInvalid, "lock %s not found", req.LockID)
		}
		return nil, err
	}
	now := time.Now()
	if !lock.Active(now) {
		return nil, NewError(CodeLockInvalid, "lock %s expired at %s", lock.ID, lock.ExpiresAt.Format(time.RFC3339))
	}
	if lock.HolderID != req.HolderID {
		return nil, NewError(CodeLockInvalid, "lock %s belongs to a different holder", lock.ID)
	}

	status := models.AppointmentConfirmed
	if req.PaymentMode == PaymentModePrepaid {
		status = models.AppointmentPending
	}
	appointment := &models.Appointment{
		ID:              uuid.New().String(),
		VendorID:        lock.VendorID,
		StaffID:         lock.StaffID,
		ServiceIDs:      lock.ServiceIDs,
		CustomerID:      req.CustomerID,
		Date:            lock.Date,
		Start:           lock.Start,
		End:             lock.End,
		Mode:            lock.Mode,
		Status:          status,
		TotalPrice:      lock.TotalPrice,
		DurationMinutes: lock.DurationMinutes,
		CreatedAt:       now,
	}

	// The repository revalidates the lock inside the transaction; the check
	// above only produces a friendlier error before paying the txn cost.
	if err := bc.LockRepo.ConsumeWithAppointment(ctx, req.LockID, req.HolderID, appointment); err != nil {
		if err == lockRepo.ErrLockNotFound {
			return nil, NewError(CodeLockInvalid, "lock %s is no longer valid", req.LockID)
		}
		return nil, err
	}

	logger.Info("booking confirmed",
		zap.String("appointmentID", appointment.ID),
		zap.String("lockID", lock.ID),
		zap.String("staffID", appointment.StaffID),
		zap.String("date", appointment.Date),
		zap.String("status", appointment.Status))
	return appointment, nil
}

// Cancel marks an appointment cancelled. Appointments are never deleted, so
// completed or already-cancelled ones stay as they are and the transition is
// rejected.
func (bc *DefaultBookingConfirmation) Cancel(ctx context.Context, appointmentID, customerID string) error {
	appointment, err := bc.AppointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if err == appointmentRepo.ErrNotFound {
			return NewError(CodeUnknownResource, "appointment %s not found", appointmentID)
		}
		return err
	}
	if appointment.CustomerID != customerID {
		return NewError(CodeValidation, "appointment %s belongs to a different customer", appointmentID)
	}
	switch appointment.Status {
	case models.AppointmentPending, models.AppointmentConfirmed:
	default:
		return NewError(CodeValidation, "appointment %s is %s and cannot be cancelled", appointmentID, appointment.Status)
	}

	if err := bc.AppointmentRepo.UpdateStatus(ctx, appointmentID, models.AppointmentCancelled); err != nil {
		if err == appointmentRepo.ErrNotFound {
			return NewError(CodeUnknownResource, "appointment %s not found", appointmentID)
		}
		return err
	}
	utils.GetLogger().Info("appointment cancelled",
		zap.String("appointmentID", appointmentID),
		zap.String("staffID", appointment.StaffID),
		zap.String("date", appointment.Date))
	return nil
}
