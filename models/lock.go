package models

import "time"

// SlotLock is a short-lived reservation of a staff member's time range.
// It blocks conflicting locks and appointments until it expires, is
// released, or is consumed by a confirmation.
type SlotLock struct {
	ID              string    `bson:"id" json:"id"`
	VendorID        string    `bson:"vendorId" json:"vendorId"`
	StaffID         string    `bson:"staffId" json:"staffId"`
	Date            string    `bson:"date" json:"date"` // "2006-01-02"
	Start           int       `bson:"start" json:"start"`
	End             int       `bson:"end" json:"end"`
	HolderID        string    `bson:"holderId" json:"holderId"` // customer/session that owns the lock
	ServiceIDs      []string  `bson:"serviceIds,omitempty" json:"serviceIds,omitempty"`
	Mode            string    `bson:"mode" json:"mode"`
	TotalPrice      float64   `bson:"totalPrice" json:"totalPrice"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	ExpiresAt       time.Time `bson:"expiresAt" json:"expiresAt"`
}

// Active reports whether the lock is still unexpired at the given instant.
func (l *SlotLock) Active(now time.Time) bool {
	return now.Before(l.ExpiresAt)
}
