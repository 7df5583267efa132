package models

import "time"

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// HourRange is one open window inside a day, declared as "HH:MM" strings.
type HourRange struct {
	OpenTime  string `bson:"openTime" json:"openTime"`   // e.g., "09:00"
	CloseTime string `bson:"closeTime" json:"closeTime"` // e.g., "18:00"
}

// DayHours holds the declared hours for a single weekday.
type DayHours struct {
	IsOpen bool        `bson:"isOpen" json:"isOpen"`
	Ranges []HourRange `bson:"ranges,omitempty" json:"ranges,omitempty"` // chronologically ordered, non-overlapping
}

// WeeklyHours is indexed by time.Weekday (Sunday = 0).
type WeeklyHours [7]DayHours

// SpecialHours is a date-specific override of the weekly hours.
// At most one active override may exist per calendar date.
type SpecialHours struct {
	Date   string      `bson:"date" json:"date"` // "2006-01-02"
	IsOpen bool        `bson:"isOpen" json:"isOpen"`
	Ranges []HourRange `bson:"ranges,omitempty" json:"ranges,omitempty"`
	Reason string      `bson:"reason,omitempty" json:"reason,omitempty"`
}

// Vendor is a service provider with a declared weekly schedule.
type Vendor struct {
	ID                   string         `bson:"id" json:"id"`
	Name                 string         `bson:"name" json:"name"`
	Category             string         `bson:"category" json:"category"`
	LocationGeo          GeoPoint       `bson:"locationGeo" json:"locationGeo"`
	Rating               float64        `bson:"rating" json:"rating,omitempty"`
	WorkingHours         WeeklyHours    `bson:"workingHours" json:"workingHours"`
	SpecialHours         []SpecialHours `bson:"specialHours,omitempty" json:"specialHours,omitempty"`
	HomeServiceAvailable bool           `bson:"homeServiceAvailable" json:"homeServiceAvailable"`
	CreatedAt            time.Time      `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt            time.Time      `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// HoursForDate resolves the effective hours for a calendar date: a special
// hours entry for that date wins over the weekly declaration.
func (v *Vendor) HoursForDate(date string, weekday time.Weekday) DayHours {
	for _, sh := range v.SpecialHours {
		if sh.Date == date {
			return DayHours{IsOpen: sh.IsOpen, Ranges: sh.Ranges}
		}
	}
	return v.WorkingHours[weekday]
}
