package handlers

import "github.com/gofiber/fiber/v2"

// HandleRoot describes the service and its endpoints.
func HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "Merchant Demand Intelligence API",
		"status":  "running",
		"version": "1.0.0",
		"endpoints": fiber.Map{
			"health":           "/health",
			"insights":         "/api/v1/insights",
			"chat":             "/api/v1/chat",
			"weekly_report":    "/api/v1/weekly-report",
			"product_insights": "/api/v1/merchant/products/:productName/insights",
		},
	})
}

// HandleHealth is the liveness probe.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
