package engine

import (
	"math"
	"time"

	"app/models"
)

// Policy holds the tunable constants of the decision engine. The defaults
// match the reference behavior; deployments can override them through
// configuration.
type Policy struct {
	MinSaleDays             int     // products below this many distinct sale days are skipped
	SafetyStock             float64 // reorder buffer fraction
	BandMultiplier          float64 // stdev multiplier for the uncertainty band
	ThinDataBandFraction    float64 // relative band when under 7 days of history
	ConfidencePenaltyPerDay float64 // points subtracted per day below the baseline
	ConfidenceFloor         float64 // reported confidence never goes below this
}

// DefaultPolicy returns the standard engine parameters.
func DefaultPolicy() Policy {
	return Policy{
		MinSaleDays:             14,
		SafetyStock:             0.2,
		BandMultiplier:          1.5,
		ThinDataBandFraction:    0.3,
		ConfidencePenaltyPerDay: 3,
		ConfidenceFloor:         30,
	}
}

const (
	// confidenceBaselineDays is the history length below which the
	// data-volume penalty starts to apply.
	confidenceBaselineDays = 14

	// trendTierMinDays selects the trend-aware forecast tier. The tier is
	// chosen up front from data volume, never by catching model failures.
	trendTierMinDays = 30

	// trendDamping softens the fitted trend so long horizons do not run away.
	trendDamping = 0.5
)

// Forecast produces a days-ahead demand forecast with an uncertainty band and
// a confidence score from a normalized series. It adapts to data volume and
// never fails: empty or all-zero series get a defined degenerate result.
// The now argument dates the degenerate forecast when there is no history.
func Forecast(series []models.DailyObservation, days int, now time.Time, p Policy) models.ForecastResult {
	if len(series) == 0 {
		return degenerateForecast(days, now)
	}

	n := len(series)
	qty := make([]float64, n)
	for i, o := range series {
		qty[i] = o.Quantity
	}

	base := baseLevel(qty)
	season := seasonalityFactors(series)
	slope := 0.0
	if n >= trendTierMinDays {
		slope = trendSlope(tail(qty, 28))
	}

	// Band from observed volatility when we have at least a week of history;
	// otherwise a fixed relative band, since there is nothing to estimate
	// volatility from.
	var fixedBand float64
	if n >= 7 {
		fixedBand = math.Max(1.0, stdev(tail(qty, 28))*p.BandMultiplier)
	}

	lastDate := series[n-1].Date
	points := make([]models.ForecastPoint, 0, days)
	for i := 1; i <= days; i++ {
		d := lastDate.AddDate(0, 0, i)
		level := base + slope*float64(i)*trendDamping
		yhat := math.Max(0, level*season[d.Weekday()])

		band := fixedBand
		if n < 7 {
			band = math.Max(1.0, yhat*p.ThinDataBandFraction)
		}

		points = append(points, models.ForecastPoint{
			DS:        d.Format("2006-01-02"),
			Yhat:      round2(yhat),
			YhatLower: round2(math.Max(0, yhat-band)),
			YhatUpper: round2(yhat + band),
		})
	}

	return models.ForecastResult{
		Points:     points,
		Confidence: confidenceScore(points, n, p),
	}
}

// degenerateForecast is the no-signal fallback: all-zero points dated from
// now, with a moderate default confidence of 50.
func degenerateForecast(days int, now time.Time) models.ForecastResult {
	start := truncateToDay(now)
	points := make([]models.ForecastPoint, 0, days)
	for i := 1; i <= days; i++ {
		points = append(points, models.ForecastPoint{
			DS: start.AddDate(0, 0, i).Format("2006-01-02"),
		})
	}
	return models.ForecastResult{Points: points, Confidence: 50}
}

// baseLevel is the trailing moving average evaluated at the last observed
// day. Short series use a shrunken window; when even that window exceeds the
// data, the overall mean is the fallback.
func baseLevel(qty []float64) float64 {
	n := len(qty)
	window := 7
	if n < 7 {
		window = min(7, max(3, n/2))
	}
	if window > n {
		return mean(qty)
	}
	return mean(tail(qty, window))
}

// seasonalityFactors computes per-weekday multipliers from at least a full
// week of history: each weekday's mean quantity normalized by the overall
// mean of the weekday means. With less than 7 days every factor is 1.0.
func seasonalityFactors(series []models.DailyObservation) map[time.Weekday]float64 {
	factors := map[time.Weekday]float64{
		time.Sunday: 1, time.Monday: 1, time.Tuesday: 1, time.Wednesday: 1,
		time.Thursday: 1, time.Friday: 1, time.Saturday: 1,
	}
	if len(series) < 7 {
		return factors
	}

	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]float64)
	for _, o := range series {
		wd := o.Date.Weekday()
		sums[wd] += o.Quantity
		counts[wd]++
	}

	means := make(map[time.Weekday]float64, len(sums))
	var total float64
	for wd, s := range sums {
		m := s / counts[wd]
		means[wd] = m
		total += m
	}
	overall := total / float64(len(means))
	if overall == 0 {
		return factors
	}
	for wd, m := range means {
		factors[wd] = m / overall
	}
	return factors
}

// trendSlope fits a least-squares line through the window and returns its
// per-day slope. Zero-length or constant windows yield a zero slope.
func trendSlope(window []float64) float64 {
	n := float64(len(window))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range window {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// confidenceScore maps relative band width to a 0-100 score: narrower bands
// mean higher confidence. History shorter than the baseline pays a per-day
// penalty, and the result is floored so a valid forecast never reads as
// totally unreliable.
func confidenceScore(points []models.ForecastPoint, historyDays int, p Policy) float64 {
	widths := make([]float64, len(points))
	yhats := make([]float64, len(points))
	for i, pt := range points {
		widths[i] = pt.YhatUpper - pt.YhatLower
		yhats[i] = pt.Yhat
	}

	avgYhat := mean(yhats)
	if avgYhat == 0 {
		avgYhat = 1.0
	}
	conf := clamp(0, 100, 100-mean(widths)/avgYhat*100)

	if historyDays < confidenceBaselineDays {
		conf -= p.ConfidencePenaltyPerDay * float64(confidenceBaselineDays-historyDays)
	}
	conf = math.Max(conf, p.ConfidenceFloor)
	return round2(conf)
}
