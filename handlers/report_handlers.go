package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"app/llm"
	"app/models"
)

const reportDisclaimer = "AI-generated action plan. Review with your business knowledge before implementing."

// HandleWeeklyReport generates a weekly action plan from existing insights.
// The LLM is asked for a structured report; when it fails or returns
// unparseable output, a deterministic report assembled from the insight
// buckets is returned instead.
func HandleWeeklyReport(c *fiber.Ctx) error {
	var req models.WeeklyReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid JSON body"})
	}

	if req.Insights == nil || len(req.Insights.Products) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "No insights data available. Please generate insights first.",
		})
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	digest := llm.DigestInsights(req.Insights.Products)
	reportContext := models.ReportContext{
		TotalProducts:             len(digest.Products),
		HighUrgencyReorders:       len(digest.HighUrgency),
		AnomalyProducts:           len(digest.WithAnomalies),
		LowConfidenceProducts:     len(digest.LowConfidence),
		PriceOptimizationProducts: len(digest.PriceActions),
	}

	var report models.WeeklyReport
	system, user := llm.WeeklyReportPrompts(digest, language)
	raw, err := llm.Generate(context.Background(), system, user)
	if err != nil {
		log.Printf("⚠️ [WEEKLY REPORT] LLM generation failed: %v", err)
	} else {
		if jsonStr := llm.ExtractJSON(raw); jsonStr != "" {
			if err := json.Unmarshal([]byte(jsonStr), &report); err != nil {
				log.Printf("⚠️ [WEEKLY REPORT] Could not parse LLM JSON: %v", err)
			}
		}
		report.SummaryText = raw
	}

	if len(report.Priorities) == 0 {
		summaryText := report.SummaryText
		report = fallbackWeeklyReport(digest)
		report.SummaryText = summaryText
	}
	report.GeneratedAt = time.Now().UTC()
	report.Language = language

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"report":     report,
		"context":    reportContext,
		"disclaimer": reportDisclaimer,
	}})
}

// fallbackWeeklyReport builds a structured plan straight from the insight
// buckets, no LLM involved.
func fallbackWeeklyReport(d llm.InsightsDigest) models.WeeklyReport {
	report := models.WeeklyReport{
		Priorities: []models.ReportPriority{
			{
				Title:       "High Priority Reorders",
				Description: fmt.Sprintf("%d products need urgent reordering: %s", len(d.HighUrgency), productNames(d.HighUrgency, 3)),
				Impact:      "Prevent stockouts and maintain sales",
			},
			{
				Title:       "Address Demand Anomalies",
				Description: fmt.Sprintf("%d products showing unusual patterns: %s", len(d.WithAnomalies), productNames(d.WithAnomalies, 3)),
				Impact:      "Adjust inventory and pricing strategy",
			},
			{
				Title:       "Price Optimization",
				Description: fmt.Sprintf("%d products have pricing opportunities", len(d.PriceActions)),
				Impact:      "Increase revenue through strategic pricing",
			},
		},
		Risks:     []string{},
		QuickWins: []string{},
	}

	if len(d.HighUrgency) > 3 {
		report.Risks = append(report.Risks, fmt.Sprintf("%d products at risk of stockout", len(d.HighUrgency)))
	}
	if len(d.WithAnomalies) > 2 {
		report.Risks = append(report.Risks, fmt.Sprintf("%d products with unusual demand patterns", len(d.WithAnomalies)))
	}
	if len(d.LowConfidence) > 0 {
		report.Risks = append(report.Risks, fmt.Sprintf("%d products with low forecast confidence", len(d.LowConfidence)))
	}

	if len(d.HighUrgency) > 0 {
		report.QuickWins = append(report.QuickWins, fmt.Sprintf("Order %s immediately", d.HighUrgency[0].ProductName))
	}
	if len(d.PriceActions) > 0 {
		report.QuickWins = append(report.QuickWins, fmt.Sprintf("Adjust price for %s", d.PriceActions[0].ProductName))
	}
	report.QuickWins = append(report.QuickWins, "Review low confidence items for data quality")

	return report
}

func productNames(products []models.ProductInsight, limit int) string {
	if len(products) == 0 {
		return "none"
	}
	if len(products) > limit {
		products = products[:limit]
	}
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.ProductName
	}
	return strings.Join(names, ", ")
}
