package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"diet-planner/internal/catalog"
	"diet-planner/internal/clipper"
	"diet-planner/internal/config"
	"diet-planner/internal/database"
	"diet-planner/internal/llm"
	"diet-planner/internal/metrics"
	"diet-planner/internal/planner"
	"diet-planner/internal/storage"
	"diet-planner/internal/telegram"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramWebhookURL == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_WEBHOOK_URL must be set")
	}

	ctx := context.Background()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	planRepo := planner.NewPlanRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	engine, store, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	// AI backend is optional; without it the bot serves rule-based plans only
	var aiGen *planner.AIGenerator
	var recipeClipper *clipper.Clipper
	switch cfg.AIBackend {
	case config.BackendDeepSeek:
		textGen := llm.NewDeepSeekClient(cfg)
		aiGen = planner.NewAIGenerator(textGen)
		recipeClipper = clipper.NewClipper(store, textGen)
	case config.BackendGemini:
		textGen, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		if c, ok := textGen.(llm.Closer); ok {
			defer c.Close()
		}
		aiGen = planner.NewAIGenerator(textGen)
		recipeClipper = clipper.NewClipper(store, textGen)
	}

	bot, err := telegram.NewBot(cfg, engine, aiGen, recipeClipper, metricsStore, planRepo)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// buildEngine loads the embedded catalog, merges the clipped-template
// overlay and wires the engine. The overlay store is returned for the
// clipper.
func buildEngine(cfg *config.Config) (*planner.Engine, *storage.TemplateStore, error) {
	base, err := catalog.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	store, err := storage.NewTemplateStore(cfg.CatalogOverlay)
	if err != nil {
		return nil, nil, err
	}
	overlay, err := store.LoadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog overlay: %w", err)
	}
	for _, slot := range []catalog.Slot{catalog.SlotBreakfast, catalog.SlotLunch, catalog.SlotDinner, catalog.SlotSnack} {
		for _, tmpl := range overlay.BySlot(slot) {
			base.Append(slot, tmpl)
		}
	}

	return planner.NewEngine(base), store, nil
}
