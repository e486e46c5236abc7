package engine

import "app/models"

// SuggestPriceHint maps week-over-week demand change to a pricing action.
// It needs at least 14 days of history and a positive prior-week volume;
// otherwise there is no signal to price against and it returns nil.
// Deltas are relative to the median observed price: 3% for an increase,
// 5% for a discount.
func SuggestPriceHint(series []models.DailyObservation, prices []float64) *models.PriceHint {
	if len(series) < 14 {
		return nil
	}

	qty := make([]float64, len(series))
	for i, o := range series {
		qty[i] = o.Quantity
	}
	last7 := sum(tail(qty, 7))
	prev7 := sum(qty[len(qty)-14 : len(qty)-7])
	if prev7 <= 0 {
		return nil
	}

	change := (last7 - prev7) / prev7
	price := median(prices)

	switch {
	case change > 0.2:
		return &models.PriceHint{
			Action:         "increase",
			SuggestedDelta: round2(price * 0.03),
			Reason:         "Demand trending up (WoW>20%)",
		}
	case change < -0.2:
		return &models.PriceHint{
			Action:         "discount",
			SuggestedDelta: round2(price * 0.05),
			Reason:         "Demand trending down (WoW<-20%)",
		}
	default:
		return &models.PriceHint{
			Action:         "hold",
			SuggestedDelta: 0,
			Reason:         "Demand stable",
		}
	}
}
