package booking

import (
	"context"
	"sort"
	"time"

	appointmentRepo "salonbook/database/repository/appointment"
	serviceRepo "salonbook/database/repository/service"
	staffRepo "salonbook/database/repository/staff"
	vendorRepo "salonbook/database/repository/vendor"
	"salonbook/models"
	"salonbook/utils"

	"go.uber.org/zap"
)

// SearchRequest describes one slot search.
type SearchRequest struct {
	VendorID         string
	Staff            models.StaffSelector
	ServiceIDs       []string
	Date             string // "2006-01-02"
	CustomerLocation *models.GeoPoint
	IsHomeService    bool
	// Explicit buffer overrides in minutes. When zero and IsHomeService is
	// set, the travel estimate supplies both buffers.
	BufferBefore int
	BufferAfter  int
}

// SlotSearchEngine computes ordered candidate slots for a date.
type SlotSearchEngine interface {
	Search(ctx context.Context, req SearchRequest) ([]models.CandidateSlot, error)
}

// DefaultSlotSearchEngine is the production implementation.
type DefaultSlotSearchEngine struct {
	VendorRepo      vendorRepo.Repository
	StaffRepo       staffRepo.Repository
	ServiceRepo     serviceRepo.Repository
	AppointmentRepo appointmentRepo.Repository
	Travel          TravelEstimator
	// Granularity is the step in minutes between enumerated start times.
	Granularity int
}

// Search intersects staff open ranges, vendor hours and existing
// appointments with the required duration (plus travel buffers for
// home-service bookings) and returns candidate slots ordered by start time,
// staff rating, then staff id. An empty result means nothing fits the date;
// an error is returned only for malformed input.
func (se *DefaultSlotSearchEngine) Search(ctx context.Context, req SearchRequest) ([]models.CandidateSlot, error) {
	logger := utils.GetLogger()

	parsedDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, NewError(CodeValidation, "date %q is not a valid date", req.Date)
	}
	weekday := parsedDate.Weekday()

	vendor, err := se.VendorRepo.GetByID(ctx, req.VendorID)
	if err != nil {
		if err == vendorRepo.ErrNotFound {
			return nil, NewError(CodeUnknownResource, "vendor %s not found", req.VendorID)
		}
		return nil, err
	}

	if len(req.ServiceIDs) == 0 {
		return nil, NewError(CodeValidation, "at least one service is required")
	}
	services, err := se.ServiceRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(req.ServiceIDs) {
		return nil, NewError(CodeUnknownResource, "one or more requested services do not exist")
	}
	for _, svc := range services {
		if svc.VendorID != vendor.ID {
			return nil, NewError(CodeUnknownResource, "service %s does not belong to vendor %s", svc.ID, vendor.ID)
		}
	}

	duration := AggregateDuration(services)
	before, after := se.resolveBuffers(ctx, req, vendor)

	dayHours := vendor.HoursForDate(req.Date, weekday)
	if !dayHours.IsOpen {
		return []models.CandidateSlot{}, nil
	}
	vendorRanges := hourRangesToMinutes(dayHours.Ranges)

	candidates, err := se.candidateStaff(ctx, req, services)
	if err != nil {
		return nil, err
	}

	var slots []models.CandidateSlot
	for _, staff := range candidates {
		day := staff.Week[weekday]
		if !day.Available || len(day.Slots) == 0 {
			continue
		}

		open := day.Slots
		if len(vendorRanges) > 0 {
			open = intersectRanges(open, vendorRanges)
		}
		open = subtractRanges(open, blockedRangesFor(staff, req.Date))

		appointments, err := se.AppointmentRepo.ListForStaffDate(ctx, staff.ID, req.Date)
		if err != nil {
			logger.Error("failed to load appointments, skipping staff member",
				zap.String("staffID", staff.ID), zap.String("date", req.Date), zap.Error(err))
			continue
		}
		open = subtractRanges(open, appointmentRanges(appointments))

		for _, sub := range open {
			slots = append(slots, enumerateStarts(staff, req.Date, sub, duration, before, after, se.granularity())...)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Start != slots[j].Start {
			return slots[i].Start < slots[j].Start
		}
		if slots[i].StaffRating != slots[j].StaffRating {
			return slots[i].StaffRating > slots[j].StaffRating
		}
		return slots[i].StaffID < slots[j].StaffID
	})

	if slots == nil {
		slots = []models.CandidateSlot{}
	}
	return slots, nil
}

func (se *DefaultSlotSearchEngine) granularity() int {
	if se.Granularity <= 0 {
		return 30
	}
	return se.Granularity
}

// resolveBuffers returns the pre/post buffers around the service window.
// Home-service bookings require the staff member to be free for
// buffer + duration + buffer.
func (se *DefaultSlotSearchEngine) resolveBuffers(ctx context.Context, req SearchRequest, vendor *models.Vendor) (int, int) {
	if req.BufferBefore > 0 || req.BufferAfter > 0 {
		return req.BufferBefore, req.BufferAfter
	}
	if !req.IsHomeService || req.CustomerLocation == nil {
		return 0, 0
	}
	estimate := se.Travel.Estimate(ctx, vendor.LocationGeo, *req.CustomerLocation)
	return estimate.TimeInMinutes, estimate.TimeInMinutes
}

// candidateStaff resolves the staff set: a specific member when selected,
// otherwise every staff member eligible for all requested services.
func (se *DefaultSlotSearchEngine) candidateStaff(ctx context.Context, req SearchRequest, services []models.Service) ([]models.StaffMember, error) {
	if !req.Staff.IsAny() {
		staff, err := se.StaffRepo.GetByID(ctx, req.Staff.StaffID())
		if err != nil {
			if err == staffRepo.ErrNotFound {
				return nil, NewError(CodeUnknownResource, "staff member %s not found", req.Staff.StaffID())
			}
			return nil, err
		}
		if staff.VendorID != req.VendorID {
			return nil, NewError(CodeUnknownResource, "staff member %s does not belong to vendor %s", staff.ID, req.VendorID)
		}
		if !eligibleForAll(staff.ID, services) {
			return []models.StaffMember{}, nil
		}
		return []models.StaffMember{*staff}, nil
	}

	all, err := se.StaffRepo.ListByVendor(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	var eligible []models.StaffMember
	for _, staff := range all {
		if eligibleForAll(staff.ID, services) {
			eligible = append(eligible, staff)
		}
	}
	return eligible, nil
}

func eligibleForAll(staffID string, services []models.Service) bool {
	for _, svc := range services {
		if !svc.EligibleFor(staffID) {
			return false
		}
	}
	return true
}

// enumerateStarts slides the required window across one contiguous open
// sub-range in granularity steps. A candidate is valid only when
// start-before and end+after both stay inside the sub-range.
func enumerateStarts(staff models.StaffMember, date string, sub models.MinuteRange, duration, before, after, step int) []models.CandidateSlot {
	var out []models.CandidateSlot
	for start := sub.Start + before; start+duration+after <= sub.End; start += step {
		out = append(out, models.CandidateSlot{
			StaffID:     staff.ID,
			StaffName:   staff.Name,
			StaffRating: staff.Rating,
			Date:        date,
			Start:       start,
			End:         start + duration,
		})
	}
	return out
}

func hourRangesToMinutes(ranges []models.HourRange) []models.MinuteRange {
	out := make([]models.MinuteRange, 0, len(ranges))
	for _, r := range ranges {
		mr := models.MinuteRange{
			Start: utils.ParseClockMinutes(r.OpenTime),
			End:   utils.ParseClockMinutes(r.CloseTime),
		}
		if mr.End > mr.Start {
			out = append(out, mr)
		}
	}
	return out
}

func blockedRangesFor(staff models.StaffMember, date string) []models.MinuteRange {
	var out []models.MinuteRange
	for _, b := range staff.BlockedTimes {
		if b.Date == date && b.End > b.Start {
			out = append(out, models.MinuteRange{Start: b.Start, End: b.End})
		}
	}
	return out
}

func appointmentRanges(appointments []models.Appointment) []models.MinuteRange {
	var out []models.MinuteRange
	for _, a := range appointments {
		if a.End > a.Start {
			out = append(out, models.MinuteRange{Start: a.Start, End: a.End})
		}
	}
	return out
}

// intersectRanges returns the pairwise intersection of two ordered range
// lists.
func intersectRanges(a, b []models.MinuteRange) []models.MinuteRange {
	var out []models.MinuteRange
	for _, ra := range a {
		for _, rb := range b {
			start := ra.Start
			if rb.Start > start {
				start = rb.Start
			}
			end := ra.End
			if rb.End < end {
				end = rb.End
			}
			if end > start {
				out = append(out, models.MinuteRange{Start: start, End: end})
			}
		}
	}
	return out
}

// subtractRanges removes the busy ranges from the open ranges, splitting
// where a busy range lands in the middle of an open one.
func subtractRanges(open, busy []models.MinuteRange) []models.MinuteRange {
	if len(busy) == 0 {
		return open
	}
	out := open
	for _, b := range busy {
		var next []models.MinuteRange
		for _, o := range out {
			if b.End <= o.Start || b.Start >= o.End {
				next = append(next, o)
				continue
			}
			if b.Start > o.Start {
				next = append(next, models.MinuteRange{Start: o.Start, End: b.Start})
			}
			if b.End < o.End {
				next = append(next, models.MinuteRange{Start: b.End, End: o.End})
			}
		}
		out = next
	}
	return out
}
