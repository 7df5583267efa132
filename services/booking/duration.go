package booking

import "salonbook/models"

// defaultServiceDuration is assumed for services whose stored duration is
// missing or unusable.
const defaultServiceDuration = 60

// ServiceDuration returns the effective duration of one service in minutes.
func ServiceDuration(service models.Service) int {
	if service.DurationMinutes <= 0 {
		return defaultServiceDuration
	}
	return service.DurationMinutes
}

// AggregateDuration sums the durations of a multi-service selection.
// Surcharge flags (home/wedding) never change the duration; the travel
// buffer for home-service bookings is applied by the slot search after
// aggregation, not folded in here.
func AggregateDuration(services []models.Service) int {
	total := 0
	for _, svc := range services {
		total += ServiceDuration(svc)
	}
	return total
}
