package engine

import (
	"sort"
	"time"

	"app/models"
)

// Normalize turns an unordered set of per-day observations for one product
// into a gap-free daily series: same-day quantities are summed, the result is
// sorted ascending, and every missing day between the first and last date is
// filled with quantity 0. The returned series always satisfies
// len == (maxDate-minDate).Days()+1. An empty input yields an empty series.
func Normalize(obs []models.DailyObservation) []models.DailyObservation {
	if len(obs) == 0 {
		return []models.DailyObservation{}
	}

	byDay := make(map[time.Time]float64, len(obs))
	for _, o := range obs {
		day := truncateToDay(o.Date)
		byDay[day] += o.Quantity
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	first, last := days[0], days[len(days)-1]
	series := make([]models.DailyObservation, 0, int(last.Sub(first).Hours()/24)+1)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		series = append(series, models.DailyObservation{Date: day, Quantity: byDay[day]})
	}
	return series
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
