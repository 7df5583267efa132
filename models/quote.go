package models

// QuoteLine is the per-service breakdown of a quote.
type QuoteLine struct {
	ServiceID       string  `json:"serviceId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// Quote is an ephemeral price/duration summary for a prospective booking.
// It is never persisted independently of the appointment it produces.
type Quote struct {
	TotalPrice    float64     `json:"totalPrice"`
	TotalDuration int         `json:"totalDuration"` // service time only, no travel buffer
	Lines         []QuoteLine `json:"lines"`
}
