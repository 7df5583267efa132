package models

// Service is one bookable offering of a vendor.
type Service struct {
	ID               string   `bson:"id" json:"id"`
	VendorID         string   `bson:"vendorId" json:"vendorId"`
	Name             string   `bson:"name" json:"name"`
	Category         string   `bson:"category" json:"category,omitempty"`
	DurationMinutes  int      `bson:"durationMinutes" json:"durationMinutes"`
	BasePrice        float64  `bson:"basePrice" json:"basePrice"`
	DiscountPrice    *float64 `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
	HomeSurcharge    *float64 `bson:"homeSurcharge,omitempty" json:"homeSurcharge,omitempty"`       // added when booked at home
	WeddingSurcharge *float64 `bson:"weddingSurcharge,omitempty" json:"weddingSurcharge,omitempty"` // added for wedding packages
	EligibleStaffIDs []string `bson:"eligibleStaffIds,omitempty" json:"eligibleStaffIds,omitempty"` // empty = any staff
}

// EligibleFor reports whether the given staff member may perform the service.
func (s *Service) EligibleFor(staffID string) bool {
	if len(s.EligibleStaffIDs) == 0 {
		return true
	}
	for _, id := range s.EligibleStaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
