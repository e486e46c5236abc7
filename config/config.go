package config

import (
	"log"
	"os"
	"strconv"
)

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	Port         string
	GeminiAPIKey string
	DatabaseURL  string

	// MinSaleDays is the minimum number of distinct sale days a product
	// needs before it qualifies for analysis. Deployments use 7 or 14.
	MinSaleDays int

	// SafetyStock is the fraction added on top of forecast demand when
	// computing reorder quantities.
	SafetyStock float64

	// Forecast policy knobs. These are tunable heuristics, not fixed truths.
	BandMultiplier          float64 // stdev multiplier for the uncertainty band
	ThinDataBandFraction    float64 // relative band when under 7 days of history
	ConfidencePenaltyPerDay float64 // points subtracted per day below the baseline
	ConfidenceFloor         float64 // never report confidence below this

	// LLMRequestsPerMinute caps outbound Gemini calls.
	LLMRequestsPerMinute int
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// Load reads configuration from environment variables, applying defaults
// for everything except the secrets.
func Load() {
	AppConfig = Config{
		Port:                    getEnv("PORT", "8000"),
		GeminiAPIKey:            os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		MinSaleDays:             getEnvInt("MIN_SALE_DAYS", 14),
		SafetyStock:             getEnvFloat("SAFETY_STOCK", 0.2),
		BandMultiplier:          getEnvFloat("FORECAST_BAND_MULTIPLIER", 1.5),
		ThinDataBandFraction:    getEnvFloat("FORECAST_THIN_BAND_FRACTION", 0.3),
		ConfidencePenaltyPerDay: getEnvFloat("CONFIDENCE_PENALTY_PER_DAY", 3),
		ConfidenceFloor:         getEnvFloat("CONFIDENCE_FLOOR", 30),
		LLMRequestsPerMinute:    getEnvInt("LLM_REQUESTS_PER_MINUTE", 30),
	}

	if AppConfig.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY is not set, LLM features will use fallback responses")
	}
	if AppConfig.DatabaseURL == "" {
		log.Println("DATABASE_URL is not set, running without database-backed insights")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %g", key, v, fallback)
		return fallback
	}
	return f
}
