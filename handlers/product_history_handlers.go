package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"app/database"
	"app/engine"
	"app/models"
)

// HandleGetProductInsights runs the decision engine for one product whose
// sales history already lives in the database, for merchants with POS data
// instead of CSV exports. Optional ?stock= feeds the stock-aware urgency
// policy.
func HandleGetProductInsights(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "No database configured; use the CSV insights endpoint",
		})
	}
	ctx := context.Background()

	productName := c.Params("productName")
	if productName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "productName is required"})
	}

	var stock *float64
	if s := c.Query("stock"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid stock value"})
		}
		stock = &v
	}

	// Daily demand for the trailing 90 days; the engine re-normalizes and
	// gap-fills, this query only aggregates.
	query := `
		SELECT s.sale_date::date AS day,
		       SUM(si.quantity_sold) AS quantity,
		       AVG(si.selling_price_at_sale) AS price,
		       SUM(si.subtotal) AS revenue
		FROM sales s
		JOIN sale_items si ON s.id = si.sale_id
		WHERE si.item_name = $1
		  AND s.sale_date >= NOW() - INTERVAL '90 days'
		GROUP BY day
		ORDER BY day
	`
	dbRows, err := db.Query(ctx, query, productName)
	if err != nil {
		log.Printf("❌ [PRODUCT INSIGHTS] Query error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch sales history"})
	}
	defer dbRows.Close()

	var rows []models.SalesRow
	for dbRows.Next() {
		row := models.SalesRow{ProductName: productName}
		if err := dbRows.Scan(&row.Date, &row.QuantitySold, &row.Price, &row.Revenue); err != nil {
			log.Printf("⚠️ [PRODUCT INSIGHTS] Scan error: %v", err)
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "No sales history for this product"})
	}

	insight, skip := engine.AnalyzeProduct(productName, rows, stock, time.Now(), policyFromConfig())
	if skip != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": skip.Reason,
			"skipped": []models.SkippedProduct{*skip},
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": insight})
}
