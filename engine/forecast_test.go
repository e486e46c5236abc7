package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"app/models"
)

func constantSeries(start time.Time, days int, quantity float64) []models.DailyObservation {
	series := make([]models.DailyObservation, days)
	for i := 0; i < days; i++ {
		series[i] = models.DailyObservation{Date: start.AddDate(0, 0, i), Quantity: quantity}
	}
	return series
}

func TestForecastEmptySeries(t *testing.T) {
	now := day(2024, 6, 1)
	result := Forecast(nil, 30, now, DefaultPolicy())

	assert.Len(t, result.Points, 30)
	assert.Equal(t, 50.0, result.Confidence)
	for _, p := range result.Points {
		assert.Equal(t, 0.0, p.Yhat)
		assert.Equal(t, 0.0, p.YhatLower)
		assert.Equal(t, 0.0, p.YhatUpper)
	}
	assert.Equal(t, "2024-06-02", result.Points[0].DS)
}

func TestForecastShortConstantSeries(t *testing.T) {
	// 3 days of 5/day: thin-data tier, 30% relative band.
	series := constantSeries(day(2024, 6, 1), 3, 5)
	result := Forecast(series, 30, time.Now(), DefaultPolicy())

	assert.Len(t, result.Points, 30)
	for _, p := range result.Points {
		assert.Equal(t, 5.0, p.Yhat)
		assert.Equal(t, 3.5, p.YhatLower)
		assert.Equal(t, 6.5, p.YhatUpper)
	}
	assert.GreaterOrEqual(t, result.Confidence, 30.0)
	assert.LessOrEqual(t, result.Confidence, 100.0)
}

func TestForecastConstantFullWeeks(t *testing.T) {
	// 14 flat days: zero volatility clamps the band to 1.0, no data penalty.
	series := constantSeries(day(2024, 6, 1), 14, 10)
	result := Forecast(series, 7, time.Now(), DefaultPolicy())

	for _, p := range result.Points {
		assert.Equal(t, 10.0, p.Yhat)
		assert.Equal(t, 9.0, p.YhatLower)
		assert.Equal(t, 11.0, p.YhatUpper)
	}
	// width 2 against level 10 -> 100 - 20 = 80
	assert.Equal(t, 80.0, result.Confidence)
}

func TestForecastBandOrdering(t *testing.T) {
	series := []models.DailyObservation{}
	quantities := []float64{4, 9, 0, 12, 7, 3, 15, 8, 2, 11, 6, 13, 1, 10}
	for i, q := range quantities {
		series = append(series, models.DailyObservation{Date: day(2024, 6, 1).AddDate(0, 0, i), Quantity: q})
	}

	result := Forecast(series, 30, time.Now(), DefaultPolicy())
	for _, p := range result.Points {
		assert.GreaterOrEqual(t, p.Yhat, 0.0)
		assert.LessOrEqual(t, p.YhatLower, p.Yhat)
		assert.GreaterOrEqual(t, p.YhatUpper, p.Yhat)
	}
}

func TestForecastDatesFollowSeries(t *testing.T) {
	series := constantSeries(day(2024, 6, 1), 14, 10)
	result := Forecast(series, 7, time.Now(), DefaultPolicy())

	// First point is the day after the last observation.
	assert.Equal(t, "2024-06-15", result.Points[0].DS)
	assert.Equal(t, "2024-06-21", result.Points[6].DS)
}

func TestForecastWeekdaySeasonality(t *testing.T) {
	// Two weeks where Saturdays sell triple: the Saturday forecast should
	// sit above the weekday forecast.
	series := make([]models.DailyObservation, 14)
	for i := 0; i < 14; i++ {
		d := day(2024, 6, 3).AddDate(0, 0, i) // 2024-06-03 is a Monday
		q := 10.0
		if d.Weekday() == time.Saturday {
			q = 30
		}
		series[i] = models.DailyObservation{Date: d, Quantity: q}
	}

	result := Forecast(series, 7, time.Now(), DefaultPolicy())
	var saturday, monday float64
	for _, p := range result.Points {
		d, _ := time.Parse("2006-01-02", p.DS)
		switch d.Weekday() {
		case time.Saturday:
			saturday = p.Yhat
		case time.Monday:
			monday = p.Yhat
		}
	}
	assert.Greater(t, saturday, monday)
}

func TestForecastTrendTier(t *testing.T) {
	// 35 steadily rising days select the trend-aware tier; the next week's
	// forecast should run above the all-time average.
	series := make([]models.DailyObservation, 35)
	for i := 0; i < 35; i++ {
		series[i] = models.DailyObservation{Date: day(2024, 5, 1).AddDate(0, 0, i), Quantity: float64(i + 1)}
	}

	result := Forecast(series, 7, time.Now(), DefaultPolicy())

	var sum float64
	for _, p := range result.Points {
		sum += p.Yhat
	}
	assert.Greater(t, sum/7, 18.0) // all-time mean of 1..35
	for _, p := range result.Points {
		assert.LessOrEqual(t, p.YhatLower, p.Yhat)
		assert.GreaterOrEqual(t, p.YhatUpper, p.Yhat)
	}
}

func TestForecastConfidenceBounds(t *testing.T) {
	cases := [][]float64{
		{5, 5, 5},
		{0, 0, 0, 0},
		{1, 50, 2, 60, 3, 70, 4, 80},
		{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
	}
	for _, quantities := range cases {
		series := make([]models.DailyObservation, len(quantities))
		for i, q := range quantities {
			series[i] = models.DailyObservation{Date: day(2024, 6, 1).AddDate(0, 0, i), Quantity: q}
		}
		result := Forecast(series, 30, time.Now(), DefaultPolicy())
		assert.GreaterOrEqual(t, result.Confidence, 30.0, "quantities %v", quantities)
		assert.LessOrEqual(t, result.Confidence, 100.0, "quantities %v", quantities)
	}
}

func TestForecastAllZeroShortSeries(t *testing.T) {
	// All-zero short history must not divide by zero anywhere.
	series := constantSeries(day(2024, 6, 1), 4, 0)
	result := Forecast(series, 7, time.Now(), DefaultPolicy())

	for _, p := range result.Points {
		assert.Equal(t, 0.0, p.Yhat)
		assert.Equal(t, 0.0, p.YhatLower)
		assert.Equal(t, 1.0, p.YhatUpper) // band floor of 1.0
	}
	assert.GreaterOrEqual(t, result.Confidence, 30.0)
}
