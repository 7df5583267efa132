package booking

import (
	"context"
	"testing"

	"salonbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestQuoteSumsPricesAndDurations(t *testing.T) {
	repo := newFakeServiceRepo(
		&models.Service{ID: "cut", VendorID: "v1", Name: "Haircut", DurationMinutes: 30, BasePrice: 40},
		&models.Service{ID: "color", VendorID: "v1", Name: "Coloring", DurationMinutes: 90, BasePrice: 120},
	)
	qg := &DefaultQuoteGenerator{ServiceRepo: repo}

	quote, err := qg.Quote(context.Background(), QuoteRequest{
		ServiceIDs: []string{"cut", "color"},
		Staff:      models.AnyStaff(),
	})
	require.NoError(t, err)
	assert.Equal(t, 160.0, quote.TotalPrice)
	assert.Equal(t, 120, quote.TotalDuration)
	assert.Len(t, quote.Lines, 2)
}

func TestQuoteAppliesDiscountOnlyWhenLower(t *testing.T) {
	assert.Equal(t, 35.0, ServicePrice(models.Service{BasePrice: 40, DiscountPrice: floatPtr(35)}, false, false))
	assert.Equal(t, 40.0, ServicePrice(models.Service{BasePrice: 40, DiscountPrice: floatPtr(45)}, false, false))
	assert.Equal(t, 40.0, ServicePrice(models.Service{BasePrice: 40}, false, false))
}

func TestQuoteAppliesSurcharges(t *testing.T) {
	svc := models.Service{
		BasePrice:        100,
		DiscountPrice:    floatPtr(80),
		HomeSurcharge:    floatPtr(25),
		WeddingSurcharge: floatPtr(50),
	}
	assert.Equal(t, 80.0, ServicePrice(svc, false, false))
	assert.Equal(t, 105.0, ServicePrice(svc, true, false))
	assert.Equal(t, 130.0, ServicePrice(svc, false, true))
	assert.Equal(t, 155.0, ServicePrice(svc, true, true))
}

func TestQuoteIsDeterministic(t *testing.T) {
	repo := newFakeServiceRepo(
		&models.Service{ID: "cut", VendorID: "v1", DurationMinutes: 30, BasePrice: 39.99, HomeSurcharge: floatPtr(10.01)},
	)
	qg := &DefaultQuoteGenerator{ServiceRepo: repo}
	req := QuoteRequest{ServiceIDs: []string{"cut"}, Staff: models.AnyStaff(), IsHomeService: true}

	first, err := qg.Quote(context.Background(), req)
	require.NoError(t, err)
	second, err := qg.Quote(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 50.0, first.TotalPrice)
}

func TestQuoteRejectsUnknownServiceAndIneligibleStaff(t *testing.T) {
	repo := newFakeServiceRepo(
		&models.Service{ID: "cut", VendorID: "v1", DurationMinutes: 30, BasePrice: 40, EligibleStaffIDs: []string{"alice"}},
	)
	qg := &DefaultQuoteGenerator{ServiceRepo: repo}

	_, err := qg.Quote(context.Background(), QuoteRequest{ServiceIDs: []string{"nope"}, Staff: models.AnyStaff()})
	assert.Equal(t, CodeUnknownResource, ErrorCode(err))

	_, err = qg.Quote(context.Background(), QuoteRequest{ServiceIDs: []string{"cut"}, Staff: models.SpecificStaff("bob")})
	assert.Equal(t, CodeValidation, ErrorCode(err))

	_, err = qg.Quote(context.Background(), QuoteRequest{ServiceIDs: []string{"cut"}, Staff: models.SpecificStaff("alice")})
	assert.NoError(t, err)
}
