package engine

import (
	"fmt"
	"time"

	"app/models"
)

// AnalyzeProduct runs the full per-product pipeline: normalize the history,
// forecast 30 days ahead, detect anomalies, recommend a reorder from the
// first week of the forecast, suggest a pricing action, and compose the
// rule-based rationale. It is a pure function of its inputs and recomputes
// everything fresh on each call.
//
// Products with fewer distinct sale days than the policy minimum are not
// analyzed; the second return value reports the skip reason. Exactly one of
// the two return values is non-nil.
func AnalyzeProduct(name string, rows []models.SalesRow, stock *float64, now time.Time, p Policy) (*models.ProductInsight, *models.SkippedProduct) {
	distinct := make(map[time.Time]bool)
	for _, r := range rows {
		distinct[truncateToDay(r.Date)] = true
	}
	if len(distinct) < p.MinSaleDays {
		return nil, &models.SkippedProduct{
			ProductName: name,
			Reason:      fmt.Sprintf("only %d distinct sale days, minimum is %d", len(distinct), p.MinSaleDays),
		}
	}

	obs := make([]models.DailyObservation, len(rows))
	prices := make([]float64, len(rows))
	for i, r := range rows {
		obs[i] = models.DailyObservation{Date: r.Date, Quantity: r.QuantitySold}
		prices[i] = r.Price
	}
	series := Normalize(obs)

	forecast30 := Forecast(series, 30, now, p)
	forecast7 := forecast30.Points[:7]
	anomalies := DetectAnomalies(series)

	return &models.ProductInsight{
		ProductName:     name,
		Forecast:        forecast7,
		Forecast30D:     forecast30.Points,
		ConfidenceScore: forecast30.Confidence,
		Anomalies:       anomalies,
		Reorder:         RecommendReorder(forecast7, p.SafetyStock, stock),
		PriceHint:       SuggestPriceHint(series, prices),
		DemandReasoning: DemandReasoning(series, forecast7, anomalies),
	}, nil
}
