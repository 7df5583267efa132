package utils

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ParseClockMinutes converts an "HH:MM" string to minutes since midnight.
// Malformed or missing values fail closed to 0 (midnight) and are logged,
// never returned as an error: a single bad working-hours entry must not
// block a whole vendor cascade.
func ParseClockMinutes(value string) int {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		GetLogger().Warn("invalid clock value, treating as midnight", zap.String("value", value))
		return 0
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		GetLogger().Warn("invalid clock hours, treating as midnight", zap.String("value", value))
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		GetLogger().Warn("invalid clock minutes, treating as midnight", zap.String("value", value))
		return 0
	}
	return hours*60 + minutes
}

// FormatClockMinutes renders minutes since midnight as "HH:MM".
func FormatClockMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
