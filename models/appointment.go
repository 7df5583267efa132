package models

import "time"

// Appointment statuses. Appointments are never deleted, only transitioned.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
	AppointmentNoShow    = "no_show"
)

// Booking modes.
const (
	ModeInSalon = "in_salon"
	ModeHome    = "home"
)

// Appointment is a confirmed reservation of one staff member for a time range.
type Appointment struct {
	ID              string    `bson:"id" json:"id"`
	VendorID        string    `bson:"vendorId" json:"vendorId"`
	StaffID         string    `bson:"staffId" json:"staffId"`
	ServiceIDs      []string  `bson:"serviceIds" json:"serviceIds"`
	CustomerID      string    `bson:"customerId" json:"customerId"`
	Date            string    `bson:"date" json:"date"` // "2006-01-02"
	Start           int       `bson:"start" json:"start"`
	End             int       `bson:"end" json:"end"`
	Mode            string    `bson:"mode" json:"mode"` // "in_salon" or "home"
	Status          string    `bson:"status" json:"status"`
	TotalPrice      float64   `bson:"totalPrice" json:"totalPrice"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}
