package llm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"app/models"
)

// LanguageInstruction maps a request language code to the instruction line
// embedded in system prompts. English is the default.
func LanguageInstruction(language string) string {
	switch language {
	case "hi":
		return "Respond in Hindi"
	case "mr":
		return "Respond in Marathi"
	default:
		return "Respond in English"
	}
}

// InsightsSummaryPrompts builds the system and user prompts for the one-shot
// merchant summary attached to an insights response. At most eight products
// are included to keep the prompt bounded.
func InsightsSummaryPrompts(products []models.ProductInsight, language string) (string, string) {
	system := fmt.Sprintf("You are a business advisor for small retail merchants. %s. Be concise, actionable, and avoid jargon.",
		LanguageInstruction(language))

	limit := len(products)
	if limit > 8 {
		limit = 8
	}
	payload, _ := json.Marshal(products[:limit])

	user := fmt.Sprintf(`Summarize the key actions for this merchant from the following insights.
Return:
1) Top 3 priorities
2) 1-line reason each
3) Mention confidence and any anomalies
Insights JSON: %s`, payload)

	return system, user
}

// InsightsDigest is the compact business context handed to the chat and
// weekly-report prompts.
type InsightsDigest struct {
	Products      []models.ProductInsight
	HighUrgency   []models.ProductInsight
	MediumUrgency []models.ProductInsight
	WithAnomalies []models.ProductInsight
	LowConfidence []models.ProductInsight
	PriceActions  []models.ProductInsight
}

// DigestInsights buckets products the way the advisor prompts reference
// them: urgency tiers, anomaly carriers, low-confidence forecasts, and
// pricing opportunities. Products are ranked by 7-day forecast volume.
func DigestInsights(products []models.ProductInsight) InsightsDigest {
	d := InsightsDigest{Products: make([]models.ProductInsight, len(products))}
	copy(d.Products, products)
	for _, p := range products {
		switch p.Reorder.Urgency {
		case models.SeverityHigh:
			d.HighUrgency = append(d.HighUrgency, p)
		case models.SeverityMedium:
			d.MediumUrgency = append(d.MediumUrgency, p)
		}
		if len(p.Anomalies) > 0 {
			d.WithAnomalies = append(d.WithAnomalies, p)
		}
		if p.ConfidenceScore < 60 {
			d.LowConfidence = append(d.LowConfidence, p)
		}
		if p.PriceHint != nil && p.PriceHint.Action != "hold" {
			d.PriceActions = append(d.PriceActions, p)
		}
	}
	sort.Slice(d.Products, func(i, j int) bool {
		return forecastSum(d.Products[i]) > forecastSum(d.Products[j])
	})
	return d
}

func forecastSum(p models.ProductInsight) float64 {
	var total float64
	for _, f := range p.Forecast {
		total += f.Yhat
	}
	return total
}

// ChatPrompts builds the system and user prompts for a merchant chat turn
// grounded in the current insights.
func ChatPrompts(message, language string, d InsightsDigest) (string, string) {
	var ctx []string
	ctx = append(ctx, fmt.Sprintf("Total products analyzed: %d", len(d.Products)))
	ctx = append(ctx, fmt.Sprintf("High urgency reorders: %d", len(d.HighUrgency)))
	ctx = append(ctx, fmt.Sprintf("Products with anomalies: %d", len(d.WithAnomalies)))

	if len(d.HighUrgency) > 0 {
		var names []string
		for _, p := range topN(d.HighUrgency, 3) {
			names = append(names, fmt.Sprintf("%s (%.0f units)", p.ProductName, p.Reorder.Quantity))
		}
		ctx = append(ctx, "High priority reorders: "+strings.Join(names, ", "))
	}
	if len(d.WithAnomalies) > 0 {
		var names []string
		for _, p := range topN(d.WithAnomalies, 3) {
			names = append(names, p.ProductName)
		}
		ctx = append(ctx, "Products with alerts: "+strings.Join(names, ", "))
	}
	var top []string
	for _, p := range topN(d.Products, 3) {
		top = append(top, fmt.Sprintf("%s (%.0f units)", p.ProductName, forecastSum(p)))
	}
	ctx = append(ctx, "Top selling products (7-day forecast): "+strings.Join(top, ", "))

	system := fmt.Sprintf(`You are an AI business advisor for small retail merchants, specializing in inventory management and demand forecasting.

%s. Be conversational, helpful, and provide actionable insights.

Guidelines:
- Give specific, actionable recommendations
- Keep responses concise but informative (3-5 sentences)
- Focus on business impact and next steps
- Use simple language suitable for small business owners`, LanguageInstruction(language))

	user := fmt.Sprintf(`Business Context:
%s

Merchant Question: %s

Provide a helpful, actionable response based on the data.`, strings.Join(ctx, "\n"), message)

	return system, user
}

// GeneralAdvicePrompts covers chat turns arriving before any insights exist.
func GeneralAdvicePrompts(message, language string) (string, string) {
	system := fmt.Sprintf(`You are an AI business advisor for small retail merchants.

%s. Be conversational, helpful, and provide practical business advice.

Guidelines:
- Focus on inventory management, pricing, customer retention, and growth
- Use simple language suitable for small business owners
- Keep responses concise (3-5 sentences)
- If asked about specific product data, suggest uploading sales data for personalized insights`, LanguageInstruction(language))

	user := fmt.Sprintf(`The merchant has not uploaded sales data yet, so there is no product-specific information.

Merchant Question: %s

Provide helpful general business advice. If the question requires data analysis, politely suggest uploading sales data.`, message)

	return system, user
}

// WeeklyReportPrompts builds the prompts for the weekly action plan. The
// model is asked for strict JSON matching models.WeeklyReport.
func WeeklyReportPrompts(d InsightsDigest, language string) (string, string) {
	system := fmt.Sprintf("You are a business advisor for small retail merchants. Generate a weekly action plan. %s. Be specific, actionable, and prioritize by business impact. Use simple language.",
		LanguageInstruction(language))

	reorders, _ := json.Marshal(reorderSummaries(topN(d.HighUrgency, 5)))
	anomalies, _ := json.Marshal(anomalySummaries(topN(d.WithAnomalies, 5)))
	priceActions, _ := json.Marshal(priceSummaries(topN(d.PriceActions, 3)))

	user := fmt.Sprintf(`Generate a weekly action plan based on these insights:

Context:
- Total products analyzed: %d
- High urgency reorders needed: %d
- Products with anomalies: %d
- Low confidence forecasts: %d
- Price optimization opportunities: %d

Top Reorder Priorities:
%s

Anomalies Detected:
%s

Price Optimization:
%s

Generate a structured report with:
1. Top 3 Priorities (specific products and actions)
2. Expected business impact for each priority
3. Risks and alerts to watch
4. Quick wins for this week

Format as JSON with keys: priorities (array of {title, description, impact}), risks (array of strings), quick_wins (array of strings)`,
		len(d.Products), len(d.HighUrgency), len(d.WithAnomalies), len(d.LowConfidence), len(d.PriceActions),
		reorders, anomalies, priceActions)

	return system, user
}

func topN(products []models.ProductInsight, n int) []models.ProductInsight {
	if len(products) > n {
		return products[:n]
	}
	return products
}

func reorderSummaries(products []models.ProductInsight) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		out = append(out, map[string]interface{}{"name": p.ProductName, "qty": p.Reorder.Quantity})
	}
	return out
}

func anomalySummaries(products []models.ProductInsight) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		out = append(out, map[string]interface{}{"name": p.ProductName, "anomalies": p.Anomalies})
	}
	return out
}

func priceSummaries(products []models.ProductInsight) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		out = append(out, map[string]interface{}{
			"name": p.ProductName, "action": p.PriceHint.Action, "reason": p.PriceHint.Reason,
		})
	}
	return out
}
