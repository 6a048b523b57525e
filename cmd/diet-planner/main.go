package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"diet-planner/internal/catalog"
	"diet-planner/internal/clipper"
	"diet-planner/internal/config"
	"diet-planner/internal/database"
	"diet-planner/internal/llm"
	"diet-planner/internal/metrics"
	"diet-planner/internal/planner"
	"diet-planner/internal/profile"
	"diet-planner/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "plan":
		runPlan(ctx, cfg, os.Args[2:])
	case "reroll":
		runReroll(ctx, cfg, os.Args[2:])
	case "share":
		runShare(cfg, os.Args[2:])
	case "clip":
		runClip(ctx, cfg, os.Args[2:])
	case "metrics-cleanup":
		runMetricsCleanup(cfg, os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: diet-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan             Generate a 7-day plan from a profile file or share token")
	fmt.Println("  reroll           Re-roll one day of the latest saved plan")
	fmt.Println("  share            Encode a profile file into a share token")
	fmt.Println("  clip             Extract a recipe page into the catalog overlay")
	fmt.Println("  metrics-cleanup  Remove old metric records")
}

// buildEngine loads the embedded catalog, merges the clipped-template
// overlay on top and wires the engine.
func buildEngine(cfg *config.Config) (*planner.Engine, error) {
	base, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	store, err := storage.NewTemplateStore(cfg.CatalogOverlay)
	if err != nil {
		return nil, err
	}
	overlay, err := store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog overlay: %w", err)
	}
	for _, slot := range []catalog.Slot{catalog.SlotBreakfast, catalog.SlotLunch, catalog.SlotDinner, catalog.SlotSnack} {
		for _, tmpl := range overlay.BySlot(slot) {
			base.Append(slot, tmpl)
		}
	}

	return planner.NewEngine(base), nil
}

// newTextGenerator builds the configured AI backend. Returns nil when no
// backend is configured.
func newTextGenerator(ctx context.Context, cfg *config.Config) (llm.TextGenerator, func(), error) {
	switch cfg.AIBackend {
	case config.BackendDeepSeek:
		return llm.NewDeepSeekClient(cfg), func() {}, nil
	case config.BackendGemini:
		gen, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if c, ok := gen.(llm.Closer); ok {
				c.Close()
			}
		}
		return gen, closeFn, nil
	default:
		return nil, func() {}, nil
	}
}

func loadProfile(path, token string, cfg *config.Config) (*profile.UserProfile, error) {
	switch {
	case token != "":
		return profile.DecodeShareToken(token, []byte(cfg.ShareLinkSecret))
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read profile file: %w", err)
		}
		p := &profile.UserProfile{}
		if err := json.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("failed to parse profile file: %w", err)
		}
		return p, nil
	default:
		return nil, errors.New("either -profile or -token is required")
	}
}

func runPlan(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	profilePath := fs.String("profile", "", "Path to a profile JSON file")
	token := fs.String("token", "", "Share token instead of a profile file")
	useAI := fs.Bool("ai", false, "Use the configured AI backend with rule-based fallback")
	userID := fs.String("user", "local", "User ID the plan is saved under")
	save := fs.Bool("save", false, "Persist the plan to the database")
	fs.Parse(args)

	p, err := loadProfile(*profilePath, *token, cfg)
	if err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	var plan *planner.WeeklyPlan
	if *useAI {
		plan = generateWithFallback(ctx, cfg, engine, *p)
	} else {
		plan, err = engine.GenerateWeeklyPlan(*p)
		if err != nil {
			log.Fatalf("Failed to generate plan: %v", err)
		}
	}

	if *save {
		db, err := database.NewDB(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()

		repo := planner.NewPlanRepository(db.SQL)
		if err := repo.Save(ctx, *userID, plan); err != nil {
			log.Fatalf("Failed to save plan: %v", err)
		}
	}

	printJSON(plan)
}

func generateWithFallback(ctx context.Context, cfg *config.Config, engine *planner.Engine, p profile.UserProfile) *planner.WeeklyPlan {
	textGen, closeFn, err := newTextGenerator(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize AI backend: %v", err)
	}
	defer closeFn()
	if textGen == nil {
		log.Fatal("No AI backend configured; set AI_BACKEND=deepseek or AI_BACKEND=gemini")
	}

	plan, meta, err := planner.NewAIGenerator(textGen).GenerateWeeklyPlan(ctx, p)
	recordUsage(cfg, meta)
	if err == nil {
		return plan
	}

	var extErr *planner.ExternalGenerationError
	if !errors.As(err, &extErr) {
		log.Fatalf("Failed to generate plan: %v", err)
	}
	log.Printf("AI generation failed, falling back to rule-based engine: %v", err)

	plan, err = engine.GenerateWeeklyPlan(p)
	if err != nil {
		log.Fatalf("Failed to generate plan: %v", err)
	}
	return plan
}

func recordUsage(cfg *config.Config, meta planner.GenerationMeta) {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Printf("Warning: failed to open metrics database: %v", err)
		return
	}
	defer db.Close()

	if err := metrics.NewStore(db.SQL).RecordUsage("ai", meta.Usage, meta.Latency); err != nil {
		log.Printf("Warning: failed to record metrics: %v", err)
	}
}

func runReroll(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("reroll", flag.ExitOnError)
	userID := fs.String("user", "local", "User ID whose latest plan is re-rolled")
	day := fs.Int("day", 0, "Day to re-roll (1-7)")
	fs.Parse(args)

	if *day < 1 || *day > 7 {
		log.Fatal("-day must be between 1 and 7")
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := planner.NewPlanRepository(db.SQL)
	stored, err := repo.GetLatest(ctx, *userID)
	if err != nil {
		if errors.Is(err, planner.ErrNoStoredPlan) {
			log.Fatalf("No saved plan for user %s; run 'diet-planner plan -save' first", *userID)
		}
		log.Fatalf("Failed to load latest plan: %v", err)
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	updated, err := engine.RegenerateDay(stored.Plan, *day-1)
	if err != nil {
		log.Fatalf("Failed to re-roll day %d: %v", *day, err)
	}

	if err := repo.Save(ctx, *userID, updated); err != nil {
		log.Fatalf("Failed to save re-rolled plan: %v", err)
	}

	printJSON(updated)
}

func runShare(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("share", flag.ExitOnError)
	profilePath := fs.String("profile", "", "Path to a profile JSON file")
	fs.Parse(args)

	p, err := loadProfile(*profilePath, "", cfg)
	if err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}

	token, err := profile.EncodeShareToken(*p, []byte(cfg.ShareLinkSecret))
	if err != nil {
		log.Fatalf("Failed to encode share token: %v", err)
	}
	fmt.Println(token)
}

func runClip(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("clip", flag.ExitOnError)
	url := fs.String("url", "", "Recipe page URL")
	fs.Parse(args)

	if *url == "" {
		log.Fatal("-url is required")
	}

	textGen, closeFn, err := newTextGenerator(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize AI backend: %v", err)
	}
	defer closeFn()
	if textGen == nil {
		log.Fatal("No AI backend configured; set AI_BACKEND=deepseek or AI_BACKEND=gemini")
	}

	store, err := storage.NewTemplateStore(cfg.CatalogOverlay)
	if err != nil {
		log.Fatalf("Failed to open overlay store: %v", err)
	}

	meal, slot, err := clipper.NewClipper(store, textGen).ClipURL(ctx, *url)
	if err != nil {
		log.Fatalf("Failed to clip recipe: %v", err)
	}
	fmt.Printf("Saved %s (%s, %d kcal) to the catalog overlay.\n", meal.Name, slot, meal.Calories)
}

func runMetricsCleanup(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
	days := fs.Int("days", 30, "Keep records for the last N days")
	fs.Parse(args)

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := metrics.NewStore(db.SQL).Cleanup(*days); err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	fmt.Printf("Removed metric records older than %d days.\n", *days)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}
