//go:build unit

package pricing_test

import (
	"testing"

	"kitchenhub/internal/domain/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourlyPrice(t *testing.T) {
	tests := []struct {
		name  string
		rate  int64
		hours float64
		want  int64
	}{
		{name: "whole hours", rate: 2500, hours: 4, want: 10000},
		{name: "partial hour rounds up", rate: 2500, hours: 3.5, want: 10000},
		{name: "one minute bills a full hour", rate: 2500, hours: 0.0167, want: 2500},
		{name: "zero hours", rate: 2500, hours: 0, want: 0},
		{name: "negative hours", rate: 2500, hours: -1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.HourlyPrice(tt.rate, tt.hours))
		})
	}
}

func TestDailyPrice(t *testing.T) {
	tests := []struct {
		name    string
		rate    int64
		days    int
		minimum int
		want    int64
	}{
		{name: "above minimum", rate: 1000, days: 5, minimum: 2, want: 5000},
		{name: "below minimum bills the minimum", rate: 1000, days: 1, minimum: 3, want: 3000},
		{name: "zero days bills one day", rate: 1000, days: 0, minimum: 0, want: 1000},
		{name: "exact minimum", rate: 1000, days: 3, minimum: 3, want: 3000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.DailyPrice(tt.rate, tt.days, tt.minimum))
		})
	}
}

func TestBasePrice(t *testing.T) {
	t.Run("dispatches per model", func(t *testing.T) {
		hourly, err := pricing.BasePrice(pricing.ModelHourly, 2500, 4, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), hourly)

		daily, err := pricing.BasePrice(pricing.ModelDaily, 1000, 5, 5, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), daily)

		monthly, err := pricing.BasePrice(pricing.ModelMonthlyFlat, 30000, 100, 100, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(30000), monthly)
	})

	t.Run("negative rate", func(t *testing.T) {
		_, err := pricing.BasePrice(pricing.ModelHourly, -1, 1, 0, 0)
		assert.ErrorIs(t, err, pricing.ErrNegativeRate)
	})

	t.Run("unknown model", func(t *testing.T) {
		_, err := pricing.BasePrice(pricing.Model("weekly"), 100, 1, 1, 1)
		assert.ErrorIs(t, err, pricing.ErrUnknownModel)
	})
}

func TestServiceFee(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		rate     float64
		want     int64
	}{
		{name: "five percent of 12000", subtotal: 12000, rate: 0.05, want: 600},
		{name: "rounds to nearest cent", subtotal: 1010, rate: 0.05, want: 51},
		{name: "rounds half up", subtotal: 1030, rate: 0.05, want: 52},
		{name: "zero subtotal", subtotal: 0, rate: 0.05, want: 0},
		{name: "zero rate", subtotal: 12000, rate: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.ServiceFee(tt.subtotal, tt.rate))
		})
	}
}

// A 4h kitchen booking at 2500/h with 2000 of addons at a 5% fee must come out
// at 12600 total with the fee derived once from the 12000 subtotal.
func TestBookingTotalComposition(t *testing.T) {
	kitchenBase := pricing.HourlyPrice(2500, 4)
	addons := int64(2000)

	subtotal := kitchenBase + addons
	fee := pricing.ServiceFee(subtotal, 0.05)

	assert.Equal(t, int64(10000), kitchenBase)
	assert.Equal(t, int64(600), fee)
	assert.Equal(t, int64(12600), subtotal+fee)
}

func TestPerDayRate(t *testing.T) {
	assert.Equal(t, int64(1000), pricing.PerDayRate(pricing.ModelDaily, 1000))
	assert.Equal(t, int64(2400), pricing.PerDayRate(pricing.ModelHourly, 100))
	assert.Equal(t, int64(1000), pricing.PerDayRate(pricing.ModelMonthlyFlat, 30000))
	// Partial division rounds up.
	assert.Equal(t, int64(34), pricing.PerDayRate(pricing.ModelMonthlyFlat, 1000))
}

func TestOverstayPenalty(t *testing.T) {
	t.Run("double rate per charged day", func(t *testing.T) {
		assert.Equal(t, int64(6000), pricing.OverstayPenalty(1000, 3))
	})
	t.Run("zero days", func(t *testing.T) {
		assert.Equal(t, int64(0), pricing.OverstayPenalty(1000, 0))
	})
}
