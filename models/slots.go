package models

// StaffSelector is an explicit choice between a specific staff member and
// "any professional". Modelling this as a value type keeps downstream logic
// from treating "any" as "no staff".
type StaffSelector struct {
	staffID string
	any     bool
}

// AnyStaff selects every eligible staff member.
func AnyStaff() StaffSelector {
	return StaffSelector{any: true}
}

// SpecificStaff selects exactly one staff member.
func SpecificStaff(id string) StaffSelector {
	return StaffSelector{staffID: id}
}

// IsAny reports whether the selector means "any professional".
func (s StaffSelector) IsAny() bool { return s.any }

// StaffID returns the selected staff id; empty when IsAny.
func (s StaffSelector) StaffID() string { return s.staffID }

// CandidateSlot is one proposed bookable range for one staff member.
type CandidateSlot struct {
	StaffID     string  `json:"staffId"`
	StaffName   string  `json:"staffName,omitempty"`
	StaffRating float64 `json:"staffRating,omitempty"`
	Date        string  `json:"date"`
	Start       int     `json:"start"` // service start, minutes from midnight
	End         int     `json:"end"`   // service end, travel buffer excluded
}

// Travel estimate sources.
const (
	TravelSourceRouting  = "routing"
	TravelSourceCache    = "cache"
	TravelSourceFallback = "fallback"
)

// TravelEstimate is an advisory travel duration/distance between the vendor
// and the customer. Source tags whether it came from the routing
// collaborator, the cache, or the fixed client-side fallback.
type TravelEstimate struct {
	TimeInMinutes int     `json:"timeInMinutes"`
	DistanceInKm  float64 `json:"distanceInKm"`
	Source        string  `json:"source"`
}
