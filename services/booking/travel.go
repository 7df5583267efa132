package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"salonbook/models"
	"salonbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Fixed fallback when the routing collaborator is unreachable. Travel time
// is advisory for slot buffering, not authoritative, so approximate
// degradation is acceptable.
const (
	fallbackTravelMinutes = 30
	fallbackTravelKm      = 10
	travelCacheTTL        = 15 * time.Minute
)

// TravelEstimator returns an estimated travel duration and distance between
// two coordinates. Implementations never fail the booking flow: on
// collaborator failure they return the fixed fallback, tagged by Source.
type TravelEstimator interface {
	Estimate(ctx context.Context, origin, destination models.GeoPoint) models.TravelEstimate
}

// GoogleTravelEstimator delegates to the Google Distance Matrix API, with a
// Redis cache in front of it.
type GoogleTravelEstimator struct {
	APIKey     string
	HTTPClient *http.Client
	Cache      *redis.Client
	BaseURL    string // overridable for tests
}

// NewGoogleTravelEstimator constructs an estimator with sane timeouts.
func NewGoogleTravelEstimator(apiKey string, cache *redis.Client) *GoogleTravelEstimator {
	return &GoogleTravelEstimator{
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		Cache:      cache,
		BaseURL:    "https://maps.googleapis.com/maps/api/distancematrix/json",
	}
}

// distanceMatrixResponse is the one accepted response shape. Payloads that
// do not conform are rejected, not probed for alternatives.
type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
			Distance struct {
				Value int `json:"value"` // meters
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// Estimate resolves travel between origin and destination. The result is
// cached per coordinate pair; any collaborator failure degrades to the
// fixed fallback and is logged, never surfaced to the booking flow.
func (te *GoogleTravelEstimator) Estimate(ctx context.Context, origin, destination models.GeoPoint) models.TravelEstimate {
	logger := utils.GetLogger()

	cacheKey := travelCacheKey(origin, destination)
	if te.Cache != nil {
		if cached, err := te.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var estimate models.TravelEstimate
			if err := json.Unmarshal([]byte(cached), &estimate); err == nil {
				estimate.Source = models.TravelSourceCache
				return estimate
			}
		}
	}

	estimate, err := te.query(ctx, origin, destination)
	if err != nil {
		logger.Warn("routing collaborator unavailable, using fallback estimate",
			zap.Error(err))
		return models.TravelEstimate{
			TimeInMinutes: fallbackTravelMinutes,
			DistanceInKm:  fallbackTravelKm,
			Source:        models.TravelSourceFallback,
		}
	}

	if te.Cache != nil {
		if data, err := json.Marshal(estimate); err == nil {
			te.Cache.Set(ctx, cacheKey, data, travelCacheTTL)
		}
	}
	return estimate
}

func (te *GoogleTravelEstimator) query(ctx context.Context, origin, destination models.GeoPoint) (models.TravelEstimate, error) {
	if te.APIKey == "" {
		return models.TravelEstimate{}, NewError(CodeRoutingUnavailable, "routing API key not configured")
	}
	if len(origin.Coordinates) < 2 || len(destination.Coordinates) < 2 {
		return models.TravelEstimate{}, NewError(CodeRoutingUnavailable, "missing coordinates")
	}

	params := url.Values{}
	params.Set("origins", fmt.Sprintf("%f,%f", origin.Coordinates[1], origin.Coordinates[0]))
	params.Set("destinations", fmt.Sprintf("%f,%f", destination.Coordinates[1], destination.Coordinates[0]))
	params.Set("key", te.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, te.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return models.TravelEstimate{}, fmt.Errorf("building routing request: %w", err)
	}

	resp, err := te.HTTPClient.Do(req)
	if err != nil {
		return models.TravelEstimate{}, fmt.Errorf("routing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.TravelEstimate{}, fmt.Errorf("routing request returned status %d", resp.StatusCode)
	}

	var matrix distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&matrix); err != nil {
		return models.TravelEstimate{}, fmt.Errorf("decoding routing response: %w", err)
	}
	if matrix.Status != "OK" || len(matrix.Rows) == 0 || len(matrix.Rows[0].Elements) == 0 {
		return models.TravelEstimate{}, fmt.Errorf("routing response not usable: status %q", matrix.Status)
	}
	element := matrix.Rows[0].Elements[0]
	if element.Status != "OK" {
		return models.TravelEstimate{}, fmt.Errorf("routing element not usable: status %q", element.Status)
	}

	minutes := (element.Duration.Value + 59) / 60
	return models.TravelEstimate{
		TimeInMinutes: minutes,
		DistanceInKm:  float64(element.Distance.Value) / 1000,
		Source:        models.TravelSourceRouting,
	}, nil
}

func travelCacheKey(origin, destination models.GeoPoint) string {
	round := func(p models.GeoPoint) (float64, float64) {
		if len(p.Coordinates) < 2 {
			return 0, 0
		}
		return p.Coordinates[0], p.Coordinates[1]
	}
	oLng, oLat := round(origin)
	dLng, dLat := round(destination)
	return fmt.Sprintf("travel:%.4f,%.4f:%.4f,%.4f", oLat, oLng, dLat, dLng)
}
