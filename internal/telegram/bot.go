package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"diet-planner/internal/clipper"
	"diet-planner/internal/config"
	"diet-planner/internal/metrics"
	"diet-planner/internal/planner"
	"diet-planner/internal/profile"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API, plan engine and clipper.
type Bot struct {
	api          *tgbotapi.BotAPI
	engine       *planner.Engine
	aiGen        *planner.AIGenerator
	clipper      *clipper.Clipper
	metricsStore *metrics.Store
	planRepo     *planner.PlanRepository
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook. aiGen and clip
// may be nil when no AI backend is configured.
func NewBot(
	cfg *config.Config,
	engine *planner.Engine,
	aiGen *planner.AIGenerator,
	clip *clipper.Clipper,
	metricsStore *metrics.Store,
	planRepo *planner.PlanRepository,
) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		engine:       engine,
		aiGen:        aiGen,
		clipper:      clip,
		metricsStore: metricsStore,
		planRepo:     planRepo,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		return
	}

	if b.cfg.TelegramAllowUserID != 0 && update.Message.From.ID != b.cfg.TelegramAllowUserID &&
		update.Message.From.ID != b.cfg.TelegramAdminUserID {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start" || text == "/help":
		b.sendHelp(msg.Chat.ID)
	case text == "/metrics":
		b.handleMetricsRequest(msg)
	case strings.HasPrefix(text, "/reroll"):
		b.handleRerollRequest(msg)
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.handleClipperRequest(msg)
	case looksLikeShareToken(text):
		b.handlePlanRequest(msg, text)
	case strings.HasPrefix(text, "{"):
		b.handlePlanRequest(msg, text)
	default:
		b.sendHelp(msg.Chat.ID)
	}
}

// looksLikeShareToken detects a compact JWS without decoding it.
func looksLikeShareToken(text string) bool {
	return strings.HasPrefix(text, "eyJ") && strings.Count(text, ".") == 2
}

func (b *Bot) sendHelp(chatID int64) {
	help := "🥗 *饮食计划助手*\n\n" +
		"发送以下内容之一：\n" +
		"• 分享口令（以 `eyJ` 开头）生成 7 天饮食计划\n" +
		"• JSON 格式的个人信息\n" +
		"• 菜谱网页链接，收录进菜谱库\n" +
		"• `/reroll 3` 重新生成第 3 天"
	reply := tgbotapi.NewMessage(chatID, help)
	reply.ParseMode = "Markdown"
	b.api.Send(reply)
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if b.cfg.TelegramAdminUserID == 0 || msg.From.ID != b.cfg.TelegramAdminUserID {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "⛔ 仅管理员可用。"))
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

// handlePlanRequest resolves the profile from a share token or inline JSON
// and generates a fresh weekly plan.
func (b *Bot) handlePlanRequest(msg *tgbotapi.Message, payload string) {
	statusText := "🧑‍🍳 *正在生成您的 7 天饮食计划...*"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	var p profile.UserProfile
	if looksLikeShareToken(payload) {
		decoded, err := profile.DecodeShareToken(payload, []byte(b.cfg.ShareLinkSecret))
		if err != nil {
			b.editError(msg.Chat.ID, sentMsg.MessageID, fmt.Errorf("分享口令无效: %w", err))
			return
		}
		p = *decoded
	} else {
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			b.editError(msg.Chat.ID, sentMsg.MessageID, fmt.Errorf("无法解析个人信息: %w", err))
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	plan, err := b.generatePlan(ctx, p)
	if err != nil {
		b.editError(msg.Chat.ID, sentMsg.MessageID, err)
		return
	}

	userID := strconv.FormatInt(msg.From.ID, 10)
	if err := b.planRepo.Save(ctx, userID, plan); err != nil {
		log.Printf("Warning: failed to save plan for user %s: %v", userID, err)
	}

	b.sendPlan(msg.Chat.ID, sentMsg.MessageID, plan)
}

// generatePlan prefers the AI path when configured and falls back to the
// rule-based engine on any external failure.
func (b *Bot) generatePlan(ctx context.Context, p profile.UserProfile) (*planner.WeeklyPlan, error) {
	if b.aiGen != nil {
		plan, meta, err := b.aiGen.GenerateWeeklyPlan(ctx, p)
		if recErr := b.metricsStore.RecordUsage("ai", meta.Usage, meta.Latency); recErr != nil {
			log.Printf("Warning: failed to record metrics: %v", recErr)
		}
		if err == nil {
			return plan, nil
		}
		var extErr *planner.ExternalGenerationError
		if !errors.As(err, &extErr) {
			return nil, err
		}
		log.Printf("AI generation failed, falling back to rule-based engine: %v", err)
	}
	return b.engine.GenerateWeeklyPlan(p)
}

func (b *Bot) handleRerollRequest(msg *tgbotapi.Message) {
	fields := strings.Fields(msg.Text)
	if len(fields) != 2 {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "用法: /reroll 3  (重新生成第 3 天)"))
		return
	}
	dayNum, err := strconv.Atoi(fields[1])
	if err != nil || dayNum < 1 || dayNum > 7 {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "天数需要在 1 到 7 之间。"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userID := strconv.FormatInt(msg.From.ID, 10)
	stored, err := b.planRepo.GetLatest(ctx, userID)
	if err != nil {
		if errors.Is(err, planner.ErrNoStoredPlan) {
			b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "还没有已生成的计划，请先发送分享口令。"))
			return
		}
		log.Printf("Error loading latest plan for user %s: %v", userID, err)
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "❌ 读取计划失败。"))
		return
	}

	updated, err := b.engine.RegenerateDay(stored.Plan, dayNum-1)
	if err != nil {
		log.Printf("Error re-rolling day %d for user %s: %v", dayNum, userID, err)
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "❌ 重新生成失败。"))
		return
	}

	if err := b.planRepo.Save(ctx, userID, updated); err != nil {
		log.Printf("Warning: failed to save re-rolled plan for user %s: %v", userID, err)
	}

	day := updated.DailyPlans[dayNum-1]
	reply := tgbotapi.NewMessage(msg.Chat.ID, formatDayMarkdown(&day))
	reply.ParseMode = "Markdown"
	b.api.Send(reply)
}

func (b *Bot) handleClipperRequest(msg *tgbotapi.Message) {
	if b.clipper == nil {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "未配置 AI 后端，无法收录菜谱。"))
		return
	}

	statusText := "✂️ *正在收录菜谱...*"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	meal, slot, err := b.clipper.ClipURL(ctx, msg.Text)
	var finalText string
	if err != nil {
		log.Printf("Error clipping recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *收录失败:*\n```\n%v\n```", safeErr)
	} else {
		finalText = fmt.Sprintf("✅ *已收录!*\n\n*菜名:* %s\n*餐次:* %s\n*热量:* %d kcal", meal.Name, slot, meal.Calories)
	}
	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) sendPlan(chatID int64, messageID int, plan *planner.WeeklyPlan) {
	planText, shoppingText := formatPlanMarkdownParts(plan)

	edit := tgbotapi.NewEditMessageText(chatID, messageID, planText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)

	shoppingMsg := tgbotapi.NewMessage(chatID, shoppingText)
	shoppingMsg.ParseMode = "Markdown"
	b.api.Send(shoppingMsg)
}

func (b *Bot) editError(chatID int64, messageID int, err error) {
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	finalText := fmt.Sprintf("❌ *生成失败:*\n```\n%v\n```", safeErr)
	edit := tgbotapi.NewEditMessageText(chatID, messageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func formatPlanMarkdownParts(plan *planner.WeeklyPlan) (string, string) {
	var pb strings.Builder
	pb.WriteString("📅 *7 天饮食计划*\n")
	pb.WriteString(fmt.Sprintf("BMI %.1f (%s) · 每日目标 %d kcal\n\n", plan.BMI, plan.BMIStatus, plan.DailyCalorieTarget))

	for i := range plan.DailyPlans {
		pb.WriteString(formatDayMarkdown(&plan.DailyPlans[i]))
		pb.WriteString("\n")
	}

	if plan.SeasonalAdvice.Tips != "" {
		pb.WriteString(fmt.Sprintf("🍂 %s\n", plan.SeasonalAdvice.Tips))
	}

	var sb strings.Builder
	sb.WriteString("🛒 *购物清单*\n\n")
	category := ""
	for _, item := range plan.ShoppingList {
		if item.Category != category {
			category = item.Category
			sb.WriteString(fmt.Sprintf("*%s*\n", category))
		}
		sb.WriteString(fmt.Sprintf("• %s %.0f%s\n", item.Name, item.Amount, item.Unit))
	}
	return pb.String(), sb.String()
}

func formatDayMarkdown(day *planner.DailyPlan) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* (%d kcal)\n", day.Day, day.TotalCalories))
	for _, m := range day.Breakfast {
		sb.WriteString(fmt.Sprintf("早 %s\n", m.Name))
	}
	for _, m := range day.Lunch {
		sb.WriteString(fmt.Sprintf("午 %s\n", m.Name))
	}
	for _, m := range day.Dinner {
		sb.WriteString(fmt.Sprintf("晚 %s\n", m.Name))
	}
	for _, m := range day.Snacks {
		sb.WriteString(fmt.Sprintf("加 %s\n", m.Name))
	}
	if day.Tips != "" {
		sb.WriteString(fmt.Sprintf("_%s_\n", day.Tips))
	}
	return sb.String()
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(chatID, "❌ Error fetching metrics."))
		return
	}

	health := metrics.GetSysHealth(filepath.Dir(b.cfg.DatabasePath))

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent AI Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d requests)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalRequests))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDirSize))

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}
