package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"app/models"
)

func forecastWithTotal(total float64) []models.ForecastPoint {
	points := make([]models.ForecastPoint, 7)
	for i := range points {
		points[i] = models.ForecastPoint{Yhat: total / 7}
	}
	return points
}

func TestRecommendReorderThresholdFallback(t *testing.T) {
	// No stock known: urgency comes from the quantity thresholds.
	decision := RecommendReorder(forecastWithTotal(140), 0.2, nil)
	assert.Equal(t, 168.0, decision.Quantity)
	assert.Equal(t, models.SeverityHigh, decision.Urgency)

	decision = RecommendReorder(forecastWithTotal(50), 0.2, nil)
	assert.Equal(t, 60.0, decision.Quantity)
	assert.Equal(t, models.SeverityMedium, decision.Urgency)

	decision = RecommendReorder(forecastWithTotal(10), 0.2, nil)
	assert.Equal(t, 12.0, decision.Quantity)
	assert.Equal(t, models.SeverityLow, decision.Urgency)
}

func TestRecommendReorderWithStock(t *testing.T) {
	// 70 units over 7 days is 10/day.
	forecast := forecastWithTotal(70)

	stock := 20.0 // 2 days of cover
	assert.Equal(t, models.SeverityHigh, RecommendReorder(forecast, 0.2, &stock).Urgency)

	stock = 50.0 // 5 days
	assert.Equal(t, models.SeverityMedium, RecommendReorder(forecast, 0.2, &stock).Urgency)

	stock = 100.0 // 10 days
	assert.Equal(t, models.SeverityLow, RecommendReorder(forecast, 0.2, &stock).Urgency)
}

func TestRecommendReorderZeroDemandWithStock(t *testing.T) {
	// No forecast demand: stock never runs out, urgency stays low even at
	// zero units on hand.
	stock := 0.0
	decision := RecommendReorder(forecastWithTotal(0), 0.2, &stock)
	assert.Equal(t, 0.0, decision.Quantity)
	assert.Equal(t, models.SeverityLow, decision.Urgency)
}

func TestRecommendReorderMonotonicInDemand(t *testing.T) {
	prev := -1.0
	for _, total := range []float64{0, 5, 40, 70, 140, 500} {
		q := RecommendReorder(forecastWithTotal(total), 0.2, nil).Quantity
		assert.GreaterOrEqual(t, q, prev)
		prev = q
	}
}
