package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"app/models"
)

func TestDemandReasoningEmptySeries(t *testing.T) {
	assert.Equal(t, "No sales history available for this product.", DemandReasoning(nil, nil, nil))
}

func TestDemandReasoningMentionsAnomalies(t *testing.T) {
	series := seriesFromQuantities(repeat(10, 14))
	anomalies := []models.Anomaly{
		{Type: models.AnomalySpike},
		{Type: models.AnomalySlowMoving},
	}

	text := DemandReasoning(series, forecastWithTotal(70), anomalies)
	assert.Contains(t, text, "spike")
	assert.Contains(t, text, "slow_moving")
}

func TestDemandReasoningStable(t *testing.T) {
	series := seriesFromQuantities(repeat(10, 14))
	text := DemandReasoning(series, forecastWithTotal(70), nil)

	assert.Contains(t, text, "stable")
	assert.Contains(t, text, "stable demand over the next week")
	assert.False(t, strings.Contains(text, "Flagged"))
}

func TestDemandReasoningForecastDecline(t *testing.T) {
	// Recent 10/day but the forecast says 5/day.
	series := seriesFromQuantities(repeat(10, 14))
	text := DemandReasoning(series, forecastWithTotal(35), nil)
	assert.Contains(t, text, "decline")
}

func TestClassifyTrend(t *testing.T) {
	assert.Equal(t, "increasing", classifyTrend(12, 10))
	assert.Equal(t, "decreasing", classifyTrend(8, 10))
	assert.Equal(t, "stable", classifyTrend(10.5, 10))
	assert.Equal(t, "stable", classifyTrend(0, 0))
}

func TestHasWeeklySeasonality(t *testing.T) {
	flat := seriesFromQuantities(repeat(10, 28))
	assert.False(t, hasWeeklySeasonality(flat))

	// Saturdays sell triple.
	spiky := seriesFromQuantities(repeat(10, 28))
	for i := range spiky {
		if spiky[i].Date.Weekday() == time.Saturday {
			spiky[i].Quantity = 30
		}
	}
	assert.True(t, hasWeeklySeasonality(spiky))
}
