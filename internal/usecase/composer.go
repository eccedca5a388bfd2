package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/nutriplan/engine/internal/domain"
)

// optionalSlotHeadroom: an optional slot is only attempted when the
// remaining budget comfortably covers it.
const optionalSlotHeadroom = 1.5

// composerSlot is one role position in a meal layout. Sources are tried
// in order; the curated corpus serves full dishes, the table and catalog
// serve the simpler roles.
type composerSlot struct {
	role     domain.ComponentRole
	share    float64
	optional bool
	sources  []domain.Source
}

// mealLayouts maps each meal type to its ordered role slots. Shares are
// fractions of the meal's calorie target and intentionally sum above 1.0
// where optional slots exist; the running budget is what actually limits
// the composition.
var mealLayouts = map[domain.MealType][]composerSlot{
	domain.Lunch: {
		{domain.RoleStarter, 0.15, true, []domain.Source{domain.SourceTable, domain.SourceCatalog}},
		{domain.RoleMain, 0.55, false, []domain.Source{domain.SourceCurated, domain.SourceTable}},
		{domain.RoleSide, 0.15, false, []domain.Source{domain.SourceTable, domain.SourceCatalog}},
		{domain.RoleBread, 0.10, true, []domain.Source{domain.SourceTable, domain.SourceCatalog}},
		{domain.RoleDessert, 0.15, true, []domain.Source{domain.SourceTable, domain.SourceCatalog}},
	},
	domain.Dinner: {
		{domain.RoleMain, 0.60, false, []domain.Source{domain.SourceCurated, domain.SourceTable}},
		{domain.RoleSide, 0.20, false, []domain.Source{domain.SourceTable, domain.SourceCatalog}},
		{domain.RoleDessert, 0.20, true, []domain.Source{domain.SourceTable, domain.SourceCatalog}},
	},
	domain.Breakfast: {
		{domain.RoleMain, 0.60, false, []domain.Source{domain.SourceTable, domain.SourceCurated}},
		{domain.RoleSide, 0.25, false, []domain.Source{domain.SourceTable, domain.SourceCatalog}},
		{domain.RoleDrink, 0.15, true, []domain.Source{domain.SourceTable, domain.SourceCatalog}},
	},
	domain.Snack: {
		{domain.RoleMain, 0.70, false, []domain.Source{domain.SourceTable, domain.SourceCatalog}},
		{domain.RoleSide, 0.30, true, []domain.Source{domain.SourceCatalog, domain.SourceTable}},
	},
}

// ComposeMeal assembles a meal from several role-tagged components so the
// total lands on the calorie target. Returns (nil, nil) when no
// composition within budget is possible.
func (e *Engine) ComposeMeal(ctx context.Context, mealType domain.MealType, targetCalories float64) (*domain.ComposedMeal, error) {
	mc := domain.MealContext{
		Slot:       domain.MealSlot{MealType: mealType, TargetCalories: targetCalories},
		Goal:       domain.GoalMaintain,
		Preference: domain.PreferBalanced,
	}
	return e.Compose(ctx, mc)
}

// Compose is ComposeMeal with full control over goal, preference, diet
// flags and the exclusion set.
func (e *Engine) Compose(ctx context.Context, mc domain.MealContext) (*domain.ComposedMeal, error) {
	target := mc.Slot.TargetCalories
	if target <= 0 || !mc.Slot.MealType.Valid() {
		return nil, fmt.Errorf("%w: mealType=%v target=%.0f",
			domain.ErrInvalidTarget, mc.Slot.MealType, target)
	}

	layout := mealLayouts[mc.Slot.MealType]
	remaining := target
	var components []domain.MealComponent
	total := domain.NutritionProfile{}

	for _, slot := range layout {
		if remaining < e.cfg.MinComponentBudget {
			break
		}

		subTarget := slot.share * target
		if slot.optional && remaining < optionalSlotHeadroom*subTarget {
			continue
		}
		if subTarget > remaining {
			subTarget = remaining
		}

		meal := e.fillSlot(ctx, mc, slot, subTarget)
		if meal == nil {
			continue
		}

		components = append(components, domain.MealComponent{Role: slot.role, Meal: *meal})
		total = total.Add(meal.Nutrition)
		remaining -= meal.Nutrition.Calories
		mc.Exclude(meal.RecipeID)
	}

	if len(components) == 0 {
		log.Printf("[COMPOSE] %s target=%.0f: no components assembled", mc.Slot.MealType, target)
		return nil, nil
	}

	// Budget conservation: a composition far off target is worse than none.
	if total.Calories > target+e.cfg.CalorieCeilingSlack || total.Calories < 0.5*target {
		log.Printf("[COMPOSE] %s target=%.0f: composition off budget (%.0f kcal), discarding",
			mc.Slot.MealType, target, total.Calories)
		return nil, nil
	}

	return &domain.ComposedMeal{
		MealType:       mc.Slot.MealType,
		Components:     components,
		TotalNutrition: total,
		TargetCalories: target,
		ActualCalories: total.Calories,
	}, nil
}

// fillSlot retrieves one component, restricted to the adapters appropriate
// for the slot's role.
func (e *Engine) fillSlot(ctx context.Context, mc domain.MealContext, slot composerSlot, subTarget float64) *domain.PlannedMeal {
	sub := mc
	sub.Slot.TargetCalories = subTarget
	sub.Targets = domain.MacroTargets{
		Proteins: mc.Targets.Proteins * slot.share,
		Carbs:    mc.Targets.Carbs * slot.share,
		Fats:     mc.Targets.Fats * slot.share,
	}

	for _, source := range slot.sources {
		adapter, ok := e.adapters[source]
		if !ok {
			continue
		}
		candidate := e.retrieveFrom(ctx, adapter, &sub)
		if candidate == nil {
			continue
		}
		meal := e.plan(*candidate, sub.Slot)
		return &meal
	}
	return nil
}
