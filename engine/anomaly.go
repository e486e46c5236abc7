package engine

import (
	"fmt"

	"app/models"
)

// DetectAnomalies scans a product's historical series for unusual recent
// demand. It needs at least 14 days of history to have a baseline; below
// that it returns an empty list. The checks are independent, so one product
// can carry several anomalies at once.
func DetectAnomalies(series []models.DailyObservation) []models.Anomaly {
	anomalies := []models.Anomaly{}
	if len(series) < 14 {
		return anomalies
	}

	qty := make([]float64, len(series))
	for i, o := range series {
		qty[i] = o.Quantity
	}

	last7 := sum(tail(qty, 7))
	prev7 := sum(qty[len(qty)-14 : len(qty)-7])

	// Week-over-week spike or drop.
	var wow float64
	if prev7 > 0 {
		wow = (last7 - prev7) / prev7 * 100
	}
	if wow > 30 {
		severity := models.SeverityMedium
		if wow > 50 {
			severity = models.SeverityHigh
		}
		anomalies = append(anomalies, models.Anomaly{
			Type:          models.AnomalySpike,
			Severity:      severity,
			ChangePercent: round2(wow),
			Description:   fmt.Sprintf("Sales jumped %.1f%% week-over-week", wow),
		})
	} else if wow < -30 {
		severity := models.SeverityMedium
		if wow < -50 {
			severity = models.SeverityHigh
		}
		anomalies = append(anomalies, models.Anomaly{
			Type:          models.AnomalyDrop,
			Severity:      severity,
			ChangePercent: round2(wow),
			Description:   fmt.Sprintf("Sales fell %.1f%% week-over-week", -wow),
		})
	}

	// Statistical outlier over the trailing 28 days. A zero-variance window
	// has no meaningful z-scores, so the check is skipped rather than forced.
	if len(qty) >= 28 {
		window := tail(qty, 28)
		m := mean(window)
		sd := stdev(window)
		if sd > 0 {
			var zSum float64
			for _, q := range tail(window, 7) {
				zSum += (q - m) / sd
			}
			zMean := zSum / 7
			if zMean > 2.5 {
				severity := models.SeverityMedium
				if zMean > 3 {
					severity = models.SeverityHigh
				}
				anomalies = append(anomalies, models.Anomaly{
					Type:        models.AnomalyOutlier,
					Severity:    severity,
					ZScore:      round2(zMean),
					Description: fmt.Sprintf("Recent demand sits %.2f standard deviations above the 28-day norm", zMean),
				})
			}
		}
	}

	// Slow-moving: the last week ran at under half the historical rate.
	histMean := mean(qty)
	if histMean > 0 && last7 < 0.5*histMean*7 {
		anomalies = append(anomalies, models.Anomaly{
			Type:            models.AnomalySlowMoving,
			Severity:        models.SeverityMedium,
			CurrentVelocity: round2(last7 / 7),
			AvgVelocity:     round2(histMean),
			Description: fmt.Sprintf("Selling %.2f/day over the last week vs %.2f/day historically",
				last7/7, histMean),
		})
	}

	return anomalies
}
