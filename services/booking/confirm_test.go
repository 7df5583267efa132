package booking

import (
	"context"
	"testing"
	"time"

	lockRepo "salonbook/database/repository/lock"
	"salonbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockedSlot(t *testing.T, repo *fakeLockRepo, holder string) *models.SlotLock {
	t.Helper()
	lm := &DefaultSlotLockManager{Repo: repo, TTL: time.Minute}
	lock, err := lm.Lock(context.Background(), validLockRequest(holder))
	require.NoError(t, err)
	return lock
}

func TestConfirmCreatesAppointmentFromLock(t *testing.T) {
	repo := newFakeLockRepo()
	lock := lockedSlot(t, repo, "h1")
	bc := &DefaultBookingConfirmation{LockRepo: repo}

	appointment, err := bc.Confirm(context.Background(), ConfirmRequest{
		LockID:     lock.ID,
		HolderID:   "h1",
		CustomerID: "cust-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, appointment.Status)
	assert.Equal(t, lock.StaffID, appointment.StaffID)
	assert.Equal(t, lock.Start, appointment.Start)
	assert.Equal(t, lock.End, appointment.End)
	assert.Equal(t, lock.TotalPrice, appointment.TotalPrice)
	assert.Equal(t, "cust-1", appointment.CustomerID)

	// The lock is consumed and the appointment persisted.
	_, err = repo.GetByID(context.Background(), lock.ID)
	assert.ErrorIs(t, err, lockRepo.ErrLockNotFound)
	require.Len(t, repo.appointments, 1)
}

func TestConfirmPrepaidStartsPending(t *testing.T) {
	repo := newFakeLockRepo()
	lock := lockedSlot(t, repo, "h1")
	bc := &DefaultBookingConfirmation{LockRepo: repo}

	appointment, err := bc.Confirm(context.Background(), ConfirmRequest{
		LockID:      lock.ID,
		HolderID:    "h1",
		PaymentMode: PaymentModePrepaid,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentPending, appointment.Status)
}

func TestConfirmRejectsForeignHolder(t *testing.T) {
	repo := newFakeLockRepo()
	lock := lockedSlot(t, repo, "h1")
	bc := &DefaultBookingConfirmation{LockRepo: repo}

	_, err := bc.Confirm(context.Background(), ConfirmRequest{LockID: lock.ID, HolderID: "intruder"})
	assert.Equal(t, CodeLockInvalid, ErrorCode(err))

	// The lock survives a failed confirmation.
	_, err = repo.GetByID(context.Background(), lock.ID)
	assert.NoError(t, err)
	assert.Empty(t, repo.appointments)
}

func TestConfirmRejectsExpiredLock(t *testing.T) {
	repo := newFakeLockRepo()
	lock := lockedSlot(t, repo, "h1")
	repo.mu.Lock()
	repo.locks[lock.ID].ExpiresAt = time.Now().Add(-time.Second)
	repo.mu.Unlock()
	bc := &DefaultBookingConfirmation{LockRepo: repo}

	_, err := bc.Confirm(context.Background(), ConfirmRequest{LockID: lock.ID, HolderID: "h1"})
	assert.Equal(t, CodeLockInvalid, ErrorCode(err))
	assert.Empty(t, repo.appointments)
}

func TestConfirmIsSingleShot(t *testing.T) {
	repo := newFakeLockRepo()
	lock := lockedSlot(t, repo, "h1")
	bc := &DefaultBookingConfirmation{LockRepo: repo}

	req := ConfirmRequest{LockID: lock.ID, HolderID: "h1"}
	_, err := bc.Confirm(context.Background(), req)
	require.NoError(t, err)

	_, err = bc.Confirm(context.Background(), req)
	assert.Equal(t, CodeLockInvalid, ErrorCode(err))
	assert.Len(t, repo.appointments, 1)
}

func TestConfirmUnknownLock(t *testing.T) {
	bc := &DefaultBookingConfirmation{LockRepo: newFakeLockRepo()}
	_, err := bc.Confirm(context.Background(), ConfirmRequest{LockID: "ghost", HolderID: "h1"})
	assert.Equal(t, CodeLockInvalid, ErrorCode(err))
}

func TestCancelTransitionsLiveAppointments(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []models.Appointment{
		{ID: "a1", CustomerID: "cust-1", Status: models.AppointmentConfirmed},
	}}
	bc := &DefaultBookingConfirmation{AppointmentRepo: appts}

	require.NoError(t, bc.Cancel(context.Background(), "a1", "cust-1"))
	updated, err := appts.GetByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, updated.Status)

	// Terminal states cannot be cancelled again.
	err = bc.Cancel(context.Background(), "a1", "cust-1")
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestCancelChecksOwnershipAndExistence(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []models.Appointment{
		{ID: "a1", CustomerID: "cust-1", Status: models.AppointmentPending},
	}}
	bc := &DefaultBookingConfirmation{AppointmentRepo: appts}

	err := bc.Cancel(context.Background(), "a1", "stranger")
	assert.Equal(t, CodeValidation, ErrorCode(err))

	err = bc.Cancel(context.Background(), "ghost", "cust-1")
	assert.Equal(t, CodeUnknownResource, ErrorCode(err))
}
