package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath    string
	CatalogOverlay  string
	ShareLinkSecret string

	// AI generation (optional; the rule-based engine needs neither)
	DeepSeekAPIKey string
	GeminiAPIKey   string
	AIBackend      string

	// Telegram Config
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
	TelegramAdminUserID int64
}

// Backends for AIBackend.
const (
	BackendDeepSeek = "deepseek"
	BackendGemini   = "gemini"
)

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	shareSecret := os.Getenv("SHARE_LINK_SECRET")
	if shareSecret == "" {
		return nil, fmt.Errorf("SHARE_LINK_SECRET environment variable not set")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/diet-planner.db"
	}

	overlay := os.Getenv("CATALOG_OVERLAY_PATH")
	if overlay == "" {
		overlay = "data/catalog"
	}

	backend := strings.ToLower(os.Getenv("AI_BACKEND"))
	deepSeekKey := os.Getenv("DEEPSEEK_API_KEY")
	geminiKey := os.Getenv("GEMINI_API_KEY")
	switch backend {
	case "":
		// rule-based only
	case BackendDeepSeek:
		if deepSeekKey == "" {
			return nil, fmt.Errorf("AI_BACKEND=deepseek but DEEPSEEK_API_KEY not set")
		}
	case BackendGemini:
		if geminiKey == "" {
			return nil, fmt.Errorf("AI_BACKEND=gemini but GEMINI_API_KEY not set")
		}
	default:
		return nil, fmt.Errorf("unknown AI_BACKEND %q", backend)
	}

	// Telegram Config (Optional for CLI, required for Bot)
	cfg := &Config{
		DatabasePath:       dbPath,
		CatalogOverlay:     overlay,
		ShareLinkSecret:    shareSecret,
		DeepSeekAPIKey:     deepSeekKey,
		GeminiAPIKey:       geminiKey,
		AIBackend:          backend,
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
	}

	var err error
	if cfg.TelegramAllowUserID, err = parseUserID("TELEGRAM_ALLOW_USER_ID"); err != nil {
		return nil, err
	}
	if cfg.TelegramAdminUserID, err = parseUserID("TELEGRAM_ADMIN_USER_ID"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseUserID(envVar string) (int64, error) {
	raw := os.Getenv(envVar)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", envVar, err)
	}
	return id, nil
}
