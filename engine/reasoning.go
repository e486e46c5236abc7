package engine

import (
	"fmt"
	"strings"
	"time"

	"app/models"
)

// DemandReasoning composes a short deterministic rationale for a product's
// numbers: recent trend vs the all-time average, weekly seasonality when the
// history is long enough to show it, any anomalies, and what the forecast
// implies for the coming week. This is the non-LLM baseline explanation and
// makes no external calls.
func DemandReasoning(series []models.DailyObservation, forecast7 []models.ForecastPoint, anomalies []models.Anomaly) string {
	if len(series) == 0 {
		return "No sales history available for this product."
	}

	qty := make([]float64, len(series))
	for i, o := range series {
		qty[i] = o.Quantity
	}
	overall := mean(qty)
	recent := mean(tail(qty, 7))

	var parts []string
	parts = append(parts, fmt.Sprintf("Recent demand is %s relative to the all-time average (%.2f/day vs %.2f/day).",
		classifyTrend(recent, overall), recent, overall))

	if len(series) >= 28 && hasWeeklySeasonality(series) {
		parts = append(parts, "Sales show a clear day-of-week pattern.")
	}

	if len(anomalies) > 0 {
		types := make([]string, len(anomalies))
		for i, a := range anomalies {
			types[i] = a.Type
		}
		parts = append(parts, fmt.Sprintf("Flagged: %s.", strings.Join(types, ", ")))
	}

	var fc []float64
	for _, p := range forecast7 {
		fc = append(fc, p.Yhat)
	}
	switch classifyTrend(mean(fc), recent) {
	case "increasing":
		parts = append(parts, "The forecast implies growth over the next week.")
	case "decreasing":
		parts = append(parts, "The forecast implies a decline over the next week.")
	default:
		parts = append(parts, "The forecast implies stable demand over the next week.")
	}

	return strings.Join(parts, " ")
}

// classifyTrend compares a value against a reference with a +/-10% tolerance
// band.
func classifyTrend(value, reference float64) string {
	switch {
	case value > reference*1.1:
		return "increasing"
	case value < reference*0.9:
		return "decreasing"
	default:
		return "stable"
	}
}

// hasWeeklySeasonality reports whether day-of-week variation exceeds 30% of
// its own mean.
func hasWeeklySeasonality(series []models.DailyObservation) bool {
	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]float64)
	for _, o := range series {
		wd := o.Date.Weekday()
		sums[wd] += o.Quantity
		counts[wd]++
	}
	means := make([]float64, 0, len(sums))
	for wd, s := range sums {
		means = append(means, s/counts[wd])
	}
	m := mean(means)
	return m > 0 && stdev(means) > 0.3*m
}
