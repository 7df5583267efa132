package models

// MinuteRange is a contiguous range in minutes from midnight.
type MinuteRange struct {
	Start int `bson:"start" json:"start"` // e.g., 540 for 9:00 AM
	End   int `bson:"end" json:"end"`     // e.g., 1080 for 6:00 PM
}

// StaffDay is one weekday of a staff member's availability.
type StaffDay struct {
	Available bool          `bson:"available" json:"available"`
	Slots     []MinuteRange `bson:"slots,omitempty" json:"slots,omitempty"` // ordered open ranges
}

// BlockedTime is an ad-hoc unavailable range (time off) for one date.
type BlockedTime struct {
	Date   string `bson:"date" json:"date"` // "2006-01-02"
	Start  int    `bson:"start" json:"start"`
	End    int    `bson:"end" json:"end"`
	Reason string `bson:"reason,omitempty" json:"reason,omitempty"`
}

// StaffMember holds per-weekday availability derived from (but stored
// independently of) the vendor's working hours.
type StaffMember struct {
	ID           string        `bson:"id" json:"id"`
	VendorID     string        `bson:"vendorId" json:"vendorId"`
	Name         string        `bson:"name" json:"name"`
	Rating       float64       `bson:"rating" json:"rating,omitempty"`
	Week         [7]StaffDay   `bson:"week" json:"week"` // indexed by time.Weekday
	BlockedTimes []BlockedTime `bson:"blockedTimes,omitempty" json:"blockedTimes,omitempty"`
}
