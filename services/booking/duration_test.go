package booking

import (
	"testing"

	"salonbook/models"

	"github.com/stretchr/testify/assert"
)

func TestServiceDurationDefaultsWhenUnusable(t *testing.T) {
	assert.Equal(t, 45, ServiceDuration(models.Service{DurationMinutes: 45}))
	assert.Equal(t, 60, ServiceDuration(models.Service{DurationMinutes: 0}))
	assert.Equal(t, 60, ServiceDuration(models.Service{DurationMinutes: -15}))
}

func TestAggregateDurationIsAdditive(t *testing.T) {
	services := []models.Service{
		{DurationMinutes: 30},
		{DurationMinutes: 45},
		{DurationMinutes: 0}, // defaults to 60
	}
	assert.Equal(t, 135, AggregateDuration(services))
	assert.Equal(t, 0, AggregateDuration(nil))
}
