package booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"salonbook/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	nairobi = models.GeoPoint{Type: "Point", Coordinates: []float64{36.8219, -1.2921}}
	karen   = models.GeoPoint{Type: "Point", Coordinates: []float64{36.7070, -1.3170}}
)

func matrixServer(t *testing.T, durationSeconds, distanceMeters int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.URL.Query().Get("origins"))
		require.NotEmpty(t, r.URL.Query().Get("destinations"))
		fmt.Fprintf(w, `{
			"status": "OK",
			"rows": [{"elements": [{
				"status": "OK",
				"duration": {"value": %d},
				"distance": {"value": %d}
			}]}]
		}`, durationSeconds, distanceMeters)
	}))
}

func TestTravelEstimateFromRouting(t *testing.T) {
	srv := matrixServer(t, 1500, 12300) // 25 min, 12.3 km
	defer srv.Close()

	te := NewGoogleTravelEstimator("test-key", nil)
	te.BaseURL = srv.URL

	estimate := te.Estimate(context.Background(), nairobi, karen)
	assert.Equal(t, 25, estimate.TimeInMinutes)
	assert.Equal(t, 12.3, estimate.DistanceInKm)
	assert.Equal(t, models.TravelSourceRouting, estimate.Source)
}

func TestTravelEstimateRoundsPartialMinutesUp(t *testing.T) {
	srv := matrixServer(t, 61, 1000)
	defer srv.Close()

	te := NewGoogleTravelEstimator("test-key", nil)
	te.BaseURL = srv.URL

	estimate := te.Estimate(context.Background(), nairobi, karen)
	assert.Equal(t, 2, estimate.TimeInMinutes)
}

func TestTravelFallbackOnCollaboratorFailure(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"unusable status": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status": "OVER_QUERY_LIMIT", "rows": []}`)
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status": "OK", "rows": "not-an-array"`)
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			te := NewGoogleTravelEstimator("test-key", nil)
			te.BaseURL = srv.URL

			estimate := te.Estimate(context.Background(), nairobi, karen)
			assert.Equal(t, 30, estimate.TimeInMinutes)
			assert.Equal(t, 10.0, estimate.DistanceInKm)
			assert.Equal(t, models.TravelSourceFallback, estimate.Source)
		})
	}
}

func TestTravelFallbackWithoutAPIKey(t *testing.T) {
	te := NewGoogleTravelEstimator("", nil)
	estimate := te.Estimate(context.Background(), nairobi, karen)
	assert.Equal(t, models.TravelSourceFallback, estimate.Source)
	assert.Equal(t, 30, estimate.TimeInMinutes)
}

func TestTravelEstimateCachesPerCoordinatePair(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{
			"status": "OK",
			"rows": [{"elements": [{
				"status": "OK",
				"duration": {"value": 1200},
				"distance": {"value": 8000}
			}]}]
		}`)
	}))
	defer srv.Close()

	te := NewGoogleTravelEstimator("test-key", cache)
	te.BaseURL = srv.URL

	first := te.Estimate(context.Background(), nairobi, karen)
	assert.Equal(t, models.TravelSourceRouting, first.Source)

	second := te.Estimate(context.Background(), nairobi, karen)
	assert.Equal(t, models.TravelSourceCache, second.Source)
	assert.Equal(t, first.TimeInMinutes, second.TimeInMinutes)
	assert.Equal(t, first.DistanceInKm, second.DistanceInKm)
	assert.Equal(t, 1, calls, "second lookup must be served from cache")

	// A different pair misses the cache.
	third := te.Estimate(context.Background(), karen, nairobi)
	assert.Equal(t, models.TravelSourceRouting, third.Source)
	assert.Equal(t, 2, calls)
}
