package booking

import (
	"context"
	"math"

	serviceRepo "salonbook/database/repository/service"
	"salonbook/models"
)

// QuoteRequest describes one price/duration quote.
type QuoteRequest struct {
	ServiceIDs       []string
	Staff            models.StaffSelector
	IsHomeService    bool
	IsWeddingService bool
}

// QuoteGenerator computes total price and total duration for a
// service/staff combination. Quoting is deterministic and side-effect-free:
// it never reserves anything.
type QuoteGenerator interface {
	Quote(ctx context.Context, req QuoteRequest) (*models.Quote, error)
}

// DefaultQuoteGenerator implements QuoteGenerator.
type DefaultQuoteGenerator struct {
	ServiceRepo serviceRepo.Repository
}

// Quote prices each service (discounted price when present and lower, plus
// home/wedding surcharges where the service offers them) and sums the
// durations. The customer-facing duration is service time only; travel
// buffers never appear here.
func (qg *DefaultQuoteGenerator) Quote(ctx context.Context, req QuoteRequest) (*models.Quote, error) {
	if len(req.ServiceIDs) == 0 {
		return nil, NewError(CodeValidation, "at least one service is required")
	}

	services, err := qg.ServiceRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(req.ServiceIDs) {
		return nil, NewError(CodeUnknownResource, "one or more requested services do not exist")
	}
	if !req.Staff.IsAny() && !eligibleForAll(req.Staff.StaffID(), services) {
		return nil, NewError(CodeValidation, "staff member %s is not eligible for the selected services", req.Staff.StaffID())
	}

	quote := &models.Quote{Lines: make([]models.QuoteLine, 0, len(services))}
	for _, svc := range services {
		price := ServicePrice(svc, req.IsHomeService, req.IsWeddingService)
		duration := ServiceDuration(svc)
		quote.Lines = append(quote.Lines, models.QuoteLine{
			ServiceID:       svc.ID,
			Name:            svc.Name,
			DurationMinutes: duration,
			Price:           price,
		})
		quote.TotalPrice += price
		quote.TotalDuration += duration
	}
	quote.TotalPrice = math.Round(quote.TotalPrice*100) / 100
	return quote, nil
}

// ServicePrice resolves one service's price: the discounted price when
// present and lower than the base price, plus the applicable surcharges.
func ServicePrice(svc models.Service, isHomeService, isWeddingService bool) float64 {
	price := svc.BasePrice
	if svc.DiscountPrice != nil && *svc.DiscountPrice < svc.BasePrice {
		price = *svc.DiscountPrice
	}
	if isHomeService && svc.HomeSurcharge != nil {
		price += *svc.HomeSurcharge
	}
	if isWeddingService && svc.WeddingSurcharge != nil {
		price += *svc.WeddingSurcharge
	}
	return price
}
