package models

import "time"

// InsightsRequest is the body of POST /api/v1/insights. CSVText is the raw
// sales CSV; the remaining fields tune the engine per request.
type InsightsRequest struct {
	CSVText     string             `json:"csv_text"`
	Language    string             `json:"language"`
	MinDays     int                `json:"min_days"`
	SafetyStock float64            `json:"safety_stock"`
	StockOnHand map[string]float64 `json:"stock_on_hand"`
}

// InsightsResponse aggregates per-product results for one merchant dataset.
type InsightsResponse struct {
	Products   []ProductInsight `json:"products"`
	Skipped    []SkippedProduct `json:"skipped"`
	Summary    string           `json:"summary"`
	Disclaimer string           `json:"disclaimer"`
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message  string            `json:"message"`
	Language string            `json:"language"`
	Insights *InsightsResponse `json:"insights"`
}

// ChatResponse carries the advisor's reply.
type ChatResponse struct {
	Response   string `json:"response"`
	Language   string `json:"language"`
	Disclaimer string `json:"disclaimer"`
}

// WeeklyReportRequest is the body of POST /api/v1/weekly-report.
type WeeklyReportRequest struct {
	Insights *InsightsResponse `json:"insights"`
	Language string            `json:"language"`
}

// ReportPriority is one ranked action item in the weekly report.
type ReportPriority struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// WeeklyReport is the structured weekly action plan. When the LLM is
// unavailable or returns unparseable output, the deterministic fallback
// report fills the same shape.
type WeeklyReport struct {
	Priorities  []ReportPriority `json:"priorities"`
	Risks       []string         `json:"risks"`
	QuickWins   []string         `json:"quick_wins"`
	GeneratedAt time.Time        `json:"generated_at"`
	Language    string           `json:"language"`
	SummaryText string           `json:"summary_text,omitempty"`
}

// ReportContext summarizes the insight buckets handed to the report
// generator, echoed back to the caller alongside the report.
type ReportContext struct {
	TotalProducts             int `json:"total_products"`
	HighUrgencyReorders       int `json:"high_urgency_reorders"`
	AnomalyProducts           int `json:"anomaly_products"`
	LowConfidenceProducts     int `json:"low_confidence_products"`
	PriceOptimizationProducts int `json:"price_optimization_opportunities"`
}
