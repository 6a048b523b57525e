package planner

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"diet-planner/internal/catalog"
	"diet-planner/internal/nutrition"
	"diet-planner/internal/profile"
	"diet-planner/internal/region"
)

const (
	planDays = 7

	// snacks are only added when the calorie target leaves room for them
	snackCalorieThreshold = 1800

	// limited mode needs enough quick candidates before it narrows a pool
	minQuickBreakfasts = 2
	minQuickLunches    = 4
	minQuickDinners    = 4
	quickDinnerMinutes = 20

	// limited mode cycles through at most this many meals per slot
	maxBreakfastRepeats = 3
	maxLunchRepeats     = 4
	maxDinnerRepeats    = 4
)

var dayLabels = []string{"第1天", "第2天", "第3天", "第4天", "第5天", "第6天", "第7天"}

const disclaimer = "本计划仅供参考。系统已根据您的过敏与忌口信息进行了初步筛选。AI 增强版数据库为您提供了多样化的选择。"

var planSources = []Source{
	{Title: "中国居民膳食指南 (2022)", URL: "http://dg.cnsoc.org/"},
}

// Engine generates weekly plans from a meal catalog. It holds no per-request
// state; the random source and clock are injected so generation is
// reproducible in tests.
type Engine struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
	now     func() time.Time
}

type Option func(*Engine)

// WithRand overrides the random source used for abundant-mode shuffles and
// re-roll draws.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithNow overrides the clock used to resolve the current season.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateWeeklyPlan runs the full deterministic pipeline: nutrition targets,
// region and season resolution, safety filtering, time-based pool shaping,
// day-by-day selection, localization and shopping-list aggregation.
func (e *Engine) GenerateWeeklyPlan(p profile.UserProfile) (*WeeklyPlan, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating profile: %w", err)
	}

	targets := nutrition.ComputeTargets(p)
	season := region.SeasonFor(e.now())
	reg := region.Resolve(p.City)
	staple := reg.StapleDescriptor()

	pools, err := e.buildPools(p, reg)
	if err != nil {
		return nil, err
	}

	days := make([]DailyPlan, 0, planDays)
	for i := 0; i < planDays; i++ {
		day := DailyPlan{Day: dayLabels[i]}

		day.Breakfast = []catalog.MealTemplate{
			Localize(pickMeal(pools.breakfast, i, maxBreakfastRepeats, p.CookingTime), i, season, staple),
		}
		day.Lunch = []catalog.MealTemplate{
			Localize(pickMeal(pools.lunch, i, maxLunchRepeats, p.CookingTime), i, season, staple),
		}
		day.Dinner = []catalog.MealTemplate{
			Localize(pickMeal(pools.dinner, i, maxDinnerRepeats, p.CookingTime), i, season, staple),
		}
		if targets.TargetCalories > snackCalorieThreshold && len(pools.snacks) > 0 {
			day.Snacks = []catalog.MealTemplate{
				Localize(pools.snacks[i%len(pools.snacks)], i, season, staple),
			}
		}

		for _, meal := range day.Meals() {
			day.TotalCalories += meal.Calories
		}
		day.Tips = DailyTip(i, p.CookingTime)
		day.DiversityCount = CountDiversity(day.Meals())
		days = append(days, day)
	}

	var allMeals []catalog.MealTemplate
	for i := range days {
		allMeals = append(allMeals, days[i].Meals()...)
	}

	plan := &WeeklyPlan{
		UserProfile:        p,
		BMI:                targets.BMI,
		BMIStatus:          targets.BMIStatus,
		DailyCalorieTarget: targets.TargetCalories,
		NutritionSummary: NutritionSummary{
			Protein: "15%-20%",
			Fat:     "20%-30%",
			Carbs:   "50%-65%",
		},
		SeasonalAdvice:       seasonalAdvice(season, reg, p.City),
		DailyPlans:           days,
		ShoppingList:         AggregateShoppingList(days),
		Disclaimer:           disclaimer,
		Sources:              append([]Source(nil), planSources...),
		WeeklyDiversityCount: CountDiversity(allMeals),
		MealPools:            localizePools(pools, season, staple),
	}
	return plan, nil
}

// slotPools are the post-filter, post-shaping candidate sets selection draws
// from. Entries are still templates; localization happens per day.
type slotPools struct {
	breakfast []catalog.MealTemplate
	lunch     []catalog.MealTemplate
	dinner    []catalog.MealTemplate
	snacks    []catalog.MealTemplate
}

func (e *Engine) buildPools(p profile.UserProfile, reg region.Region) (*slotPools, error) {
	pools := &slotPools{
		breakfast: catalog.FilterMeals(e.catalog.Breakfast, p.Allergies, p.Dislikes),
		lunch:     catalog.FilterMeals(e.catalog.Lunch, p.Allergies, p.Dislikes),
		dinner:    catalog.FilterMeals(e.catalog.Dinner, p.Allergies, p.Dislikes),
		snacks:    catalog.FilterMeals(e.catalog.Snacks, p.Allergies, p.Dislikes),
	}
	switch {
	case len(pools.breakfast) == 0:
		return nil, &NoEligibleMealsError{Slot: catalog.SlotBreakfast}
	case len(pools.lunch) == 0:
		return nil, &NoEligibleMealsError{Slot: catalog.SlotLunch}
	case len(pools.dinner) == 0:
		return nil, &NoEligibleMealsError{Slot: catalog.SlotDinner}
	}

	if reg.Kind == region.KindSpecific && reg.Province != nil {
		biasByTag(pools.lunch, reg.Province.Name)
		biasByTag(pools.dinner, reg.Province.Name)
		biasByTag(pools.breakfast, reg.Province.Name)
	}

	switch p.CookingTime {
	case profile.CookingLimited:
		pools.breakfast = quickSubset(pools.breakfast, minQuickBreakfasts, func(m catalog.MealTemplate) bool {
			return m.Complexity == catalog.ComplexityEasy
		})
		pools.lunch = quickSubset(pools.lunch, minQuickLunches, func(m catalog.MealTemplate) bool {
			return m.Complexity == catalog.ComplexityEasy || m.HasTag("可备餐")
		})
		pools.dinner = quickSubset(pools.dinner, minQuickDinners, func(m catalog.MealTemplate) bool {
			return m.PrepTime <= quickDinnerMinutes
		})
	case profile.CookingAbundant:
		e.shuffle(pools.breakfast)
		e.shuffle(pools.lunch)
		e.shuffle(pools.dinner)
	}

	return pools, nil
}

// biasByTag moves meals tagged with the province name to the front while
// preserving relative order on both sides.
func biasByTag(meals []catalog.MealTemplate, tag string) {
	sort.SliceStable(meals, func(i, j int) bool {
		return meals[i].HasTag(tag) && !meals[j].HasTag(tag)
	})
}

// quickSubset narrows a pool to quick candidates sorted by prep time, but
// only when enough of them exist to sustain a week. Otherwise the full pool
// is kept so filtering never starves a slot.
func quickSubset(pool []catalog.MealTemplate, minCount int, quick func(catalog.MealTemplate) bool) []catalog.MealTemplate {
	var subset []catalog.MealTemplate
	for _, m := range pool {
		if quick(m) {
			subset = append(subset, m)
		}
	}
	if len(subset) < minCount {
		return pool
	}
	sort.SliceStable(subset, func(i, j int) bool {
		return subset[i].PrepTime < subset[j].PrepTime
	})
	return subset
}

func (e *Engine) shuffle(meals []catalog.MealTemplate) {
	e.rng.Shuffle(len(meals), func(i, j int) {
		meals[i], meals[j] = meals[j], meals[i]
	})
}

// pickMeal cycles through the pool by day index. Limited mode caps the cycle
// so the week intentionally repeats a few quick meals; abundant and flexible
// modes walk the whole pool.
func pickMeal(pool []catalog.MealTemplate, dayIndex, repeatCap int, cookingTime profile.CookingTime) catalog.MealTemplate {
	n := len(pool)
	if cookingTime == profile.CookingLimited && repeatCap < n {
		n = repeatCap
	}
	return pool[dayIndex%n]
}

func seasonalAdvice(season region.Season, reg region.Region, city string) SeasonalAdvice {
	tips := fmt.Sprintf("当前是%s，建议多食用当季蔬菜如%s。", season.Name, strings.Join(season.Veggies, "、"))
	if reg.Kind == region.KindSpecific && reg.Province != nil {
		tips += fmt.Sprintf("针对%s地区(%s)，推荐尝试当地特色食材如%s。",
			reg.Province.Name, city, strings.Join(reg.Province.LocalDishes, "、"))
	}
	return SeasonalAdvice{
		Season:       season.Name,
		LocalVeggies: append([]string(nil), season.Veggies...),
		Tips:         tips,
	}
}

// localizePools resolves placeholders in the retained candidate pools so
// re-roll draws are already concrete. Each entry is localized by its pool
// index, giving swapped-in meals a stable vegetable rotation of their own.
func localizePools(pools *slotPools, season region.Season, staple string) MealPools {
	localizeAll := func(meals []catalog.MealTemplate) []catalog.MealTemplate {
		out := make([]catalog.MealTemplate, len(meals))
		for i, m := range meals {
			out[i] = Localize(m, i, season, staple)
		}
		return out
	}
	return MealPools{
		Breakfast: localizeAll(pools.breakfast),
		Lunch:     localizeAll(pools.lunch),
		Dinner:    localizeAll(pools.dinner),
		Snacks:    localizeAll(pools.snacks),
	}
}
