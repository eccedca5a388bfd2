package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/nutriplan/engine/internal/domain"
)

// cheatDayFactor relaxes every slot's calorie target on the flagged day.
const cheatDayFactor = 1.3

// PlanRequest describes a multi-day generation run.
type PlanRequest struct {
	DailyCalories float64
	Days          int
	Goal          domain.Goal
	Preference    domain.SourcePreference

	// DailyMacros overrides the default 30/40/30 split when set.
	DailyMacros *domain.MacroTargets

	Vegetarian bool
	Vegan      bool
	Allergies  []string

	// CheatDay is a 0-based day index, or -1 for none.
	CheatDay int

	// GenerativeAllowed reflects the caller's entitlement gate.
	GenerativeAllowed bool
}

// GeneratePlan fills every (day x meal type) slot sequentially. The
// exclusion set and per-day source history are owned here and threaded
// explicitly through every slot call so items are not repeated and no
// single source dominates a day. Caller-level cancellation surfaces
// partial progress: the result reports how many slots were filled.
func (e *Engine) GeneratePlan(ctx context.Context, req PlanRequest) (*domain.PlanResult, error) {
	if req.DailyCalories <= 0 {
		return nil, fmt.Errorf("%w: dailyCalories=%.0f", domain.ErrInvalidTarget, req.DailyCalories)
	}
	if req.Days < 1 {
		return nil, fmt.Errorf("%w: days=%d", domain.ErrInvalidTarget, req.Days)
	}

	dailyMacros := DailyMacrosForCalories(req.DailyCalories)
	if req.DailyMacros != nil {
		dailyMacros = *req.DailyMacros
	}

	result := &domain.PlanResult{
		ID:              uuid.NewString(),
		SourceBreakdown: make(map[domain.Source]int),
		SlotsRequested:  req.Days * len(domain.MealTypes),
	}
	excludeIDs := make(map[string]bool)

	for day := 0; day < req.Days; day++ {
		history := domain.SourceHistory{}
		cheat := day == req.CheatDay

		for _, mealType := range domain.MealTypes {
			if err := ctx.Err(); err != nil {
				log.Printf("[PLAN] cancelled after %d/%d slots", result.SlotsFilled, result.SlotsRequested)
				return result, err
			}

			target := req.DailyCalories * MealCalorieRatio(mealType)
			if cheat {
				target *= cheatDayFactor
			}

			mc := domain.MealContext{
				Slot: domain.MealSlot{
					Day:            day,
					MealType:       mealType,
					TargetCalories: target,
					CheatMeal:      cheat,
				},
				Goal:              req.Goal,
				Targets:           CalculateMealMacroTargets(dailyMacros, mealType, req.Goal),
				Preference:        req.Preference,
				Vegetarian:        req.Vegetarian,
				Vegan:             req.Vegan,
				Allergies:         req.Allergies,
				ExcludeIDs:        excludeIDs,
				History:           history,
				GenerativeAllowed: req.GenerativeAllowed,
			}

			meal, err := e.GetMeal(ctx, &mc)
			if err != nil {
				return nil, err
			}
			if meal == nil {
				log.Printf("[PLAN] day=%d %s: no suggestion available (%v)", day, mealType, mc.Reasons)
				continue
			}

			result.Meals = append(result.Meals, *meal)
			result.SourceBreakdown[meal.Source]++
			result.TotalNutrition = result.TotalNutrition.Add(meal.Nutrition)
			result.SlotsFilled++
			history = append(history, meal.Source)
		}
	}

	return result, nil
}
