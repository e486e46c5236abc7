package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"app/llm"
	"app/models"
	"app/utils"
)

const chatDisclaimer = "AI-assisted insights. Review with your business knowledge."

// HandleChat answers merchant questions, grounded in the current insights
// when the caller supplies them. The LLM does the talking; when it is
// unavailable the handler falls back to a deterministic help response so the
// endpoint never hard-fails on AI trouble.
func HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid JSON body"})
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Message is required"})
	}
	if !utils.IsPromptSafe(message) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid message content"})
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	var products []models.ProductInsight
	if req.Insights != nil {
		products = req.Insights.Products
	}
	log.Printf("💬 [CHAT] Message: %.100s, Language: %s, Products: %d", message, language, len(products))

	var system, user string
	digest := llm.DigestInsights(products)
	if len(products) == 0 {
		system, user = llm.GeneralAdvicePrompts(message, language)
	} else {
		system, user = llm.ChatPrompts(message, language, digest)
	}

	response, err := llm.Generate(context.Background(), system, user)
	if err != nil {
		log.Printf("⚠️ [CHAT] LLM generation failed: %v", err)
		response = fallbackChatResponse(digest)
	}

	return c.JSON(fiber.Map{"success": true, "data": models.ChatResponse{
		Response:   response,
		Language:   language,
		Disclaimer: chatDisclaimer,
	}})
}

// fallbackChatResponse is the deterministic help menu used when the LLM
// cannot answer.
func fallbackChatResponse(d llm.InsightsDigest) string {
	if len(d.Products) == 0 {
		return `Hello! I'm your business advisor for inventory management and demand forecasting.

To get started, upload your sales data (CSV with date, product_name, quantity_sold, price, revenue columns).

I can help you with:
- Demand forecasting and inventory planning
- Reorder recommendations
- Sales trend analysis
- Price optimization suggestions`
	}

	return fmt.Sprintf(`I can help you with:

- Reorder recommendations - Ask "Which products should I order?"
- Top products - Ask "What are my top selling products?"
- Alerts - Ask "Are there any demand spikes?"
- Forecasts - Ask "What's the forecast for next week?"

You have %d products analyzed with %d high priority reorders and %d alerts.`,
		len(d.Products), len(d.HighUrgency), len(d.WithAnomalies))
}
