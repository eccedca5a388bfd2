package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/engine/internal/domain"
)

// EngineConfig holds the orchestrator's tuning knobs. The calorie window
// and portion bounds are empirically chosen constants carried over from
// the production tuning, not derived values.
type EngineConfig struct {
	// TopKRecipes and TopKCatalog bound the weighted-random draw pool.
	TopKRecipes int
	TopKCatalog int

	// Calorie acceptance window: [target*FloorRatio, target+CeilingSlack].
	CalorieFloorRatio   float64
	CalorieCeilingSlack float64

	// Portion bounds for per-100g scaling, grams.
	MinPortionGrams float64
	MaxPortionGrams float64

	// MinComponentBudget stops composition once the remaining budget is
	// too small to fill usefully.
	MinComponentBudget float64
}

// DefaultEngineConfig returns the production defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TopKRecipes:         3,
		TopKCatalog:         5,
		CalorieFloorRatio:   0.3,
		CalorieCeilingSlack: 150,
		MinPortionGrams:     20,
		MaxPortionGrams:     600,
		MinComponentBudget:  50,
	}
}

// Engine is the meal sourcing and scoring engine. Scoring and decision
// logic are pure; the only mutable state is the injected random source,
// which is guarded so concurrent plan requests stay safe.
type Engine struct {
	adapters map[domain.Source]domain.SourceAdapter
	cfg      EngineConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects a seedable random source so tests can assert exact
// selection outcomes.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithConfig overrides the default tuning knobs.
func WithConfig(cfg EngineConfig) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// NewEngine builds an engine over the given adapters. A missing adapter
// simply removes that source from every decision; in particular a nil
// generative adapter means the entitlement gate denied it for this run.
func NewEngine(adapters []domain.SourceAdapter, opts ...Option) *Engine {
	m := make(map[domain.Source]domain.SourceAdapter, len(adapters))
	for _, a := range adapters {
		if a != nil {
			m[a.Source()] = a
		}
	}
	e := &Engine{
		adapters: m,
		cfg:      DefaultEngineConfig(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetMeal retrieves a single meal for the slot in mc. It consults the
// source decision engine, then walks the fallback chain sequentially; a
// failed or empty adapter simply yields to the next source. Returns
// (nil, nil) when every source is exhausted; callers must check for a
// missing result, never for an error, in that case.
func (e *Engine) GetMeal(ctx context.Context, mc *domain.MealContext) (*domain.PlannedMeal, error) {
	if mc == nil || mc.Slot.TargetCalories <= 0 || !mc.Slot.MealType.Valid() {
		return nil, fmt.Errorf("%w: mealType=%v target=%.0f",
			domain.ErrInvalidTarget, slotType(mc), slotTarget(mc))
	}

	decision := e.decide(*mc)
	log.Printf("[ORCH] slot day=%d %s target=%.0f: primary=%s fallbacks=%v (%s)",
		mc.Slot.Day, mc.Slot.MealType, mc.Slot.TargetCalories,
		decision.Primary, decision.Fallbacks, decision.Reason)

	for _, source := range decision.Chain() {
		adapter, ok := e.adapters[source]
		if !ok {
			continue
		}
		if source == domain.SourceGenerative && !mc.GenerativeAllowed {
			continue
		}

		candidate := e.retrieveFrom(ctx, adapter, mc)
		if candidate == nil {
			mc.Reasons = append(mc.Reasons, fmt.Sprintf("%s: no candidates", source))
			continue
		}

		meal := e.plan(*candidate, mc.Slot)
		mc.Exclude(candidate.ID)
		return &meal, nil
	}

	log.Printf("[ORCH] slot day=%d %s: all sources exhausted (%v)",
		mc.Slot.Day, mc.Slot.MealType, mc.Reasons)
	return nil, nil
}

// ScoreNutrition is the public scoring utility, also usable standalone by
// a barcode-scan feature.
func (e *Engine) ScoreNutrition(n domain.NutritionProfile) (int, domain.Grade) {
	return ScoreNutrition(n)
}

func (e *Engine) decide(mc domain.MealContext) Decision {
	e.mu.Lock()
	defer e.mu.Unlock()
	return DecideSource(mc, mc.History, e.rng)
}

// retrieveFrom runs one adapter call through the full pipeline: fetch,
// filter, portion-scale, score, weighted draw. I/O failures are logged
// and absorbed here; they surface as "no candidates".
func (e *Engine) retrieveFrom(ctx context.Context, adapter domain.SourceAdapter, mc *domain.MealContext) *domain.Candidate {
	candidates, err := adapter.Retrieve(ctx, *mc)
	if err != nil {
		log.Printf("[ORCH] adapter %s failed: %v", adapter.Source(), err)
		return nil
	}

	target := mc.Slot.TargetCalories
	strategy := domain.StrategyFor(mc.Goal)

	type scored struct {
		candidate domain.Candidate
		score     float64
	}
	var pool []scored

	for _, c := range candidates {
		if mc.ExcludeIDs[c.ID] {
			continue
		}
		if matchesAnyAllergy(c, mc.Allergies) {
			continue
		}

		prepared, ok := e.preparePortion(c, target)
		if !ok {
			continue
		}
		if prepared.Nutrition.Calories < target*e.cfg.CalorieFloorRatio ||
			prepared.Nutrition.Calories > target+e.cfg.CalorieCeilingSlack {
			continue
		}

		s := ScoreCandidate(prepared.Nutrition, mc.Targets, strategy, target, prepared.Name)
		pool = append(pool, scored{prepared, s})
	}

	if len(pool) == 0 {
		return nil
	}

	sort.SliceStable(pool, func(i, j int) bool { return pool[i].score > pool[j].score })

	k := e.topK(adapter.Source())
	if len(pool) > k {
		pool = pool[:k]
	}

	// Score-weighted random draw, not argmax: repeated calls with the same
	// inputs should still produce variety.
	weights := make([]float64, len(pool))
	for i, s := range pool {
		weights[i] = s.score + 1 // keep zero-scored survivors drawable
	}
	idx := e.weightedIndex(weights)
	return &pool[idx].candidate
}

// preparePortion scales a per-100g candidate to the calorie target and
// stamps a quality grade. Per-serving candidates pass through unchanged.
func (e *Engine) preparePortion(c domain.Candidate, targetCalories float64) (domain.Candidate, bool) {
	if !c.Per100g {
		if c.Nutrition.Calories <= 0 {
			return c, false
		}
		if c.Grade == domain.GradeUnknown && c.PortionGrams > 0 {
			per100g := c.Nutrition.Scale(100 / c.PortionGrams)
			if per100g.HasExtended() {
				_, c.Grade = ScoreNutrition(per100g)
			} else {
				c.Grade = EstimateGrade(per100g)
			}
		}
		return c, true
	}

	per100g := c.Nutrition
	if per100g.Calories <= 0 {
		return c, false
	}

	if c.Grade == domain.GradeUnknown {
		if per100g.HasExtended() {
			_, c.Grade = ScoreNutrition(per100g)
		} else {
			c.Grade = EstimateGrade(per100g)
		}
	}

	grams := math.Round(100 * targetCalories / per100g.Calories)
	if grams < e.cfg.MinPortionGrams {
		grams = e.cfg.MinPortionGrams
	}
	if grams > e.cfg.MaxPortionGrams {
		grams = e.cfg.MaxPortionGrams
	}

	c.Nutrition = per100g.Scale(grams / 100)
	c.Per100g = false
	c.PortionGrams = grams
	return c, true
}

// plan copies a selected candidate into the output record.
func (e *Engine) plan(c domain.Candidate, slot domain.MealSlot) domain.PlannedMeal {
	return domain.PlannedMeal{
		ID:           uuid.NewString(),
		Day:          slot.Day,
		MealType:     slot.MealType,
		Name:         c.Name,
		Nutrition:    c.Nutrition,
		PortionGrams: c.PortionGrams,
		Ingredients:  c.Ingredients,
		Instructions: c.Instructions,
		Source:       c.Source,
		RecipeID:     c.ID,
		Grade:        c.Grade,
	}
}

func (e *Engine) topK(source domain.Source) int {
	switch source {
	case domain.SourceCatalog:
		return e.cfg.TopKCatalog
	case domain.SourceGenerative:
		return 1
	}
	return e.cfg.TopKRecipes
}

func (e *Engine) weightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}

	e.mu.Lock()
	r := e.rng.Float64() * total
	e.mu.Unlock()

	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	return len(weights) - 1
}

func matchesAnyAllergy(c domain.Candidate, allergies []string) bool {
	for _, token := range allergies {
		if c.MatchesAllergy(token) {
			return true
		}
	}
	return false
}

func slotType(mc *domain.MealContext) domain.MealType {
	if mc == nil {
		return ""
	}
	return mc.Slot.MealType
}

func slotTarget(mc *domain.MealContext) float64 {
	if mc == nil {
		return 0
	}
	return mc.Slot.TargetCalories
}
