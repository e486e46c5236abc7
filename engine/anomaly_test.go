package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"app/models"
)

func seriesFromQuantities(quantities []float64) []models.DailyObservation {
	series := make([]models.DailyObservation, len(quantities))
	for i, q := range quantities {
		series[i] = models.DailyObservation{Date: day(2024, 6, 1).AddDate(0, 0, i), Quantity: q}
	}
	return series
}

func repeat(q float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = q
	}
	return out
}

func TestDetectAnomaliesNeedsBaseline(t *testing.T) {
	for _, n := range []int{0, 1, 7, 13} {
		anomalies := DetectAnomalies(seriesFromQuantities(repeat(10, n)))
		assert.NotNil(t, anomalies)
		assert.Empty(t, anomalies, "n=%d", n)
	}
}

func TestDetectAnomaliesSpike(t *testing.T) {
	// 14 days at 10/day then 7 at 20/day: +100% week over week.
	quantities := append(repeat(10, 14), repeat(20, 7)...)
	anomalies := DetectAnomalies(seriesFromQuantities(quantities))

	var spike *models.Anomaly
	for i := range anomalies {
		if anomalies[i].Type == models.AnomalySpike {
			spike = &anomalies[i]
		}
	}
	if spike == nil {
		t.Fatalf("expected a spike anomaly, got %v", anomalies)
	}
	assert.InDelta(t, 100.0, spike.ChangePercent, 0.01)
	assert.Equal(t, models.SeverityHigh, spike.Severity)
	assert.NotEmpty(t, spike.Description)
}

func TestDetectAnomaliesModerateSpikeIsMedium(t *testing.T) {
	// +40% week over week: spike, but not high severity.
	quantities := append(repeat(10, 7), repeat(14, 7)...)
	anomalies := DetectAnomalies(seriesFromQuantities(quantities))

	if len(anomalies) != 1 {
		t.Fatalf("expected exactly one anomaly, got %v", anomalies)
	}
	assert.Equal(t, models.AnomalySpike, anomalies[0].Type)
	assert.Equal(t, models.SeverityMedium, anomalies[0].Severity)
}

func TestDetectAnomaliesDropAndSlowMoving(t *testing.T) {
	// 20/day collapsing to 5/day: a -75% drop that also runs below half the
	// historical rate, so both checks fire.
	quantities := append(repeat(20, 7), repeat(5, 7)...)
	anomalies := DetectAnomalies(seriesFromQuantities(quantities))

	types := map[string]models.Anomaly{}
	for _, a := range anomalies {
		types[a.Type] = a
	}

	drop, ok := types[models.AnomalyDrop]
	if !ok {
		t.Fatalf("expected a drop anomaly, got %v", anomalies)
	}
	assert.InDelta(t, -75.0, drop.ChangePercent, 0.01)
	assert.Equal(t, models.SeverityHigh, drop.Severity)

	slow, ok := types[models.AnomalySlowMoving]
	if !ok {
		t.Fatalf("expected a slow_moving anomaly, got %v", anomalies)
	}
	assert.Equal(t, models.SeverityMedium, slow.Severity)
	assert.InDelta(t, 5.0, slow.CurrentVelocity, 0.01)
}

func TestDetectAnomaliesZeroPriorWeek(t *testing.T) {
	// prev7 of zero would divide by zero; the WoW change is defined as 0.
	quantities := append(repeat(0, 7), repeat(10, 7)...)
	anomalies := DetectAnomalies(seriesFromQuantities(quantities))
	assert.Empty(t, anomalies)
}

func TestDetectAnomaliesZeroVarianceWindow(t *testing.T) {
	// 28 identical days: the outlier check must skip, not panic, and the
	// flat series carries no other anomaly.
	anomalies := DetectAnomalies(seriesFromQuantities(repeat(10, 28)))
	assert.Empty(t, anomalies)
}

func TestDetectAnomaliesStableSeries(t *testing.T) {
	quantities := append(repeat(10, 14), repeat(11, 7)...)
	anomalies := DetectAnomalies(seriesFromQuantities(quantities))
	assert.Empty(t, anomalies)
}
