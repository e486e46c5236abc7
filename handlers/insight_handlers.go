package handlers

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"app/config"
	"app/engine"
	"app/llm"
	"app/models"
	"app/utils"
)

// Disclaimer accompanies every insights payload.
const Disclaimer = "AI-assisted insights to support smarter business decisions."

// policyFromConfig builds the engine policy from application config.
func policyFromConfig() engine.Policy {
	cfg := config.AppConfig
	p := engine.DefaultPolicy()
	if cfg.MinSaleDays > 0 {
		p.MinSaleDays = cfg.MinSaleDays
	}
	if cfg.SafetyStock > 0 {
		p.SafetyStock = cfg.SafetyStock
	}
	if cfg.BandMultiplier > 0 {
		p.BandMultiplier = cfg.BandMultiplier
	}
	if cfg.ThinDataBandFraction > 0 {
		p.ThinDataBandFraction = cfg.ThinDataBandFraction
	}
	if cfg.ConfidencePenaltyPerDay > 0 {
		p.ConfidencePenaltyPerDay = cfg.ConfidencePenaltyPerDay
	}
	if cfg.ConfidenceFloor > 0 {
		p.ConfidenceFloor = cfg.ConfidenceFloor
	}
	return p
}

// HandleGenerateInsights runs the full analysis for a merchant's sales CSV:
// per product, a 7/30-day forecast with confidence, anomalies, a reorder
// recommendation, a price hint, and the rule-based rationale. Products with
// too little history are skipped and reported, not failed; the request only
// errors when zero products qualify.
func HandleGenerateInsights(c *fiber.Ctx) error {
	var req models.InsightsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid JSON body"})
	}

	if strings.TrimSpace(req.CSVText) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Provide csv_text in request body"})
	}

	rows, err := utils.ParseSalesCSV(req.CSVText)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	policy := policyFromConfig()
	if req.MinDays > 0 {
		policy.MinSaleDays = req.MinDays
	}
	if req.SafetyStock > 0 {
		policy.SafetyStock = req.SafetyStock
	}

	byProduct := make(map[string][]models.SalesRow)
	for _, row := range rows {
		byProduct[row.ProductName] = append(byProduct[row.ProductName], row)
	}
	names := make([]string, 0, len(byProduct))
	for name := range byProduct {
		names = append(names, name)
	}
	sort.Strings(names)

	now := time.Now()
	products := []models.ProductInsight{}
	skipped := []models.SkippedProduct{}
	for _, name := range names {
		var stock *float64
		if qty, ok := req.StockOnHand[name]; ok {
			stock = &qty
		}
		insight, skip := engine.AnalyzeProduct(name, byProduct[name], stock, now, policy)
		if skip != nil {
			skipped = append(skipped, *skip)
			continue
		}
		products = append(products, *insight)
	}

	log.Printf("📊 [INSIGHTS] Analyzed %d products, skipped %d", len(products), len(skipped))

	if len(products) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": "No products qualified for analysis",
			"skipped": skipped,
		})
	}

	resp := models.InsightsResponse{
		Products:   products,
		Skipped:    skipped,
		Summary:    insightsSummary(products, req.Language),
		Disclaimer: Disclaimer,
	}
	return c.JSON(fiber.Map{"success": true, "data": resp})
}

// insightsSummary asks the LLM for a short merchant-facing summary of the
// results. LLM trouble never fails the request; the caller still has every
// per-product insight.
func insightsSummary(products []models.ProductInsight, language string) string {
	system, user := llm.InsightsSummaryPrompts(products, language)
	summary, err := llm.Generate(context.Background(), system, user)
	if err != nil {
		log.Printf("⚠️ [INSIGHTS] Summary generation failed: %v", err)
		return "Summary unavailable. Use the per-product insights directly."
	}
	return summary
}
