package booking

import (
	"time"

	"salonbook/models"
	"salonbook/utils"
)

// ValidateWorkingHours checks a working-hours save before it is persisted.
// The special-hours list has a fixed upper bound; exceeding it rejects the
// save rather than truncating data silently.
func ValidateWorkingHours(hours models.WeeklyHours, special []models.SpecialHours, maxSpecialHours int) error {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if err := validateRanges(hours[day].Ranges); err != nil {
			return err
		}
	}

	if len(special) > maxSpecialHours {
		return NewError(CodeValidation, "special hours entries (%d) exceed the limit of %d", len(special), maxSpecialHours)
	}
	seen := make(map[string]bool, len(special))
	for _, sh := range special {
		if _, err := time.Parse("2006-01-02", sh.Date); err != nil {
			return NewError(CodeValidation, "special hours date %q is not a valid date", sh.Date)
		}
		if seen[sh.Date] {
			return NewError(CodeValidation, "duplicate special hours entry for %s", sh.Date)
		}
		seen[sh.Date] = true
		if err := validateRanges(sh.Ranges); err != nil {
			return err
		}
	}
	return nil
}

// validateRanges requires hour ranges to be chronologically ordered and
// non-overlapping.
func validateRanges(ranges []models.HourRange) error {
	prevClose := -1
	for _, r := range ranges {
		open := utils.ParseClockMinutes(r.OpenTime)
		close := utils.ParseClockMinutes(r.CloseTime)
		if close <= open {
			return NewError(CodeValidation, "hour range %s-%s is empty or inverted", r.OpenTime, r.CloseTime)
		}
		if open < prevClose {
			return NewError(CodeValidation, "hour ranges overlap around %s", r.OpenTime)
		}
		prevClose = close
	}
	return nil
}
