package engine

import "app/models"

// RecommendReorder converts a 7-day forecast into a reorder quantity and an
// urgency tier. The quantity is the forecast demand plus a safety-stock
// buffer. When stock-on-hand is known, urgency follows days of remaining
// cover; merchant data often lacks stock, so there is a quantity-threshold
// fallback that still gives a usable default.
func RecommendReorder(forecast7 []models.ForecastPoint, safety float64, stock *float64) models.ReorderDecision {
	var demand float64
	for _, p := range forecast7 {
		demand += p.Yhat
	}
	quantity := round2(demand * (1 + safety))

	urgency := models.SeverityLow
	if stock != nil {
		daily := demand / 7
		switch {
		case daily <= 0:
			// No forecast demand means stock effectively never runs out.
		case *stock/daily < 3:
			urgency = models.SeverityHigh
		case *stock/daily < 7:
			urgency = models.SeverityMedium
		}
	} else {
		switch {
		case quantity > 100:
			urgency = models.SeverityHigh
		case quantity > 50:
			urgency = models.SeverityMedium
		}
	}

	return models.ReorderDecision{Quantity: quantity, Urgency: urgency}
}
