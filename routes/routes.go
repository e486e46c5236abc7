package routes

import (
	"app/handlers"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	app.Get("/", handlers.HandleRoot)
	app.Get("/health", handlers.HandleHealth)

	api := app.Group("/api/v1")

	// --- Insights Routes ---
	api.Post("/insights", handlers.HandleGenerateInsights)
	api.Post("/chat", handlers.HandleChat)
	api.Post("/weekly-report", handlers.HandleWeeklyReport)

	// --- Merchant Routes (database-backed history) ---
	merchant := api.Group("/merchant")
	merchant.Get("/products/:productName/insights", handlers.HandleGetProductInsights)
}
