package models

import "time"

// SalesRow is one validated row of merchant sales history, as produced by the
// CSV layer or the database query. Rows with unparseable dates never make it
// this far.
type SalesRow struct {
	Date         time.Time `json:"date"`
	ProductName  string    `json:"product_name"`
	QuantitySold float64   `json:"quantity_sold"`
	Price        float64   `json:"price"`
	Revenue      float64   `json:"revenue"`
}

// DailyObservation is a single (date, quantity) point of a product's demand
// series. Quantity is non-negative.
type DailyObservation struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
}

// ForecastPoint is the predicted demand for one future day with its
// uncertainty band. Invariant: YhatLower <= Yhat <= YhatUpper, Yhat >= 0.
type ForecastPoint struct {
	DS        string  `json:"ds"`
	Yhat      float64 `json:"yhat"`
	YhatLower float64 `json:"yhat_lower"`
	YhatUpper float64 `json:"yhat_upper"`
}

// ForecastResult bundles the forecast points with a 0-100 confidence score.
type ForecastResult struct {
	Points     []ForecastPoint `json:"points"`
	Confidence float64         `json:"confidence"`
}

// Anomaly severity levels.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Anomaly types.
const (
	AnomalySpike      = "spike"
	AnomalyDrop       = "drop"
	AnomalyOutlier    = "outlier"
	AnomalySlowMoving = "slow_moving"
)

// Anomaly flags a statistically unusual pattern in a product's recent demand.
// The numeric evidence fields are type-specific; unused ones are omitted.
type Anomaly struct {
	Type            string  `json:"type"`
	Severity        string  `json:"severity"`
	ChangePercent   float64 `json:"change_percent,omitempty"`
	ZScore          float64 `json:"z_score,omitempty"`
	CurrentVelocity float64 `json:"current_velocity,omitempty"`
	AvgVelocity     float64 `json:"avg_velocity,omitempty"`
	Description     string  `json:"description"`
}

// ReorderDecision is the suggested reorder quantity and how soon to act.
type ReorderDecision struct {
	Quantity float64 `json:"quantity"`
	Urgency  string  `json:"urgency"`
}

// PriceHint suggests a pricing action based on recent demand movement.
type PriceHint struct {
	Action         string  `json:"action"` // increase, discount, or hold
	SuggestedDelta float64 `json:"suggested_delta"`
	Reason         string  `json:"reason"`
}

// ProductInsight is the full analysis result for a single product.
type ProductInsight struct {
	ProductName     string          `json:"product_name"`
	Forecast        []ForecastPoint `json:"forecast"`
	Forecast30D     []ForecastPoint `json:"forecast_30d"`
	ConfidenceScore float64         `json:"confidence_score"`
	Anomalies       []Anomaly       `json:"anomalies"`
	Reorder         ReorderDecision `json:"reorder"`
	PriceHint       *PriceHint      `json:"price_hint"`
	DemandReasoning string          `json:"demand_reasoning"`
}

// SkippedProduct records a product that did not qualify for analysis.
type SkippedProduct struct {
	ProductName string `json:"product_name"`
	Reason      string `json:"reason"`
}
