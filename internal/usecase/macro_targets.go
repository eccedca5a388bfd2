package usecase

import "github.com/nutriplan/engine/internal/domain"

// Per-meal calorie share of the daily budget.
const (
	breakfastRatio = 0.25
	lunchRatio     = 0.35
	snackRatio     = 0.10
	dinnerRatio    = 0.30
)

// Goal-specific macro adjustments. Empirically tuned constants, not
// physically derived; treat as configuration.
const (
	proteinBoost  = 1.20 // protein-priority goals, lunch and dinner
	carbReduction = 0.80 // paired with proteinBoost
	carbBoost     = 1.15 // carb-priority goals, breakfast only
)

// MealCalorieRatio returns the share of daily calories a meal type gets.
func MealCalorieRatio(t domain.MealType) float64 {
	switch t {
	case domain.Breakfast:
		return breakfastRatio
	case domain.Lunch:
		return lunchRatio
	case domain.Snack:
		return snackRatio
	case domain.Dinner:
		return dinnerRatio
	}
	return 0
}

// CalculateMealMacroTargets derives per-meal protein/carb/fat targets from
// daily macros, the meal type's calorie ratio, and the goal strategy.
//
// The goal adjustments are multiplicative post-adjustments; the resulting
// grams may imply slightly different calories than the slot's calorie
// target, which is accepted.
func CalculateMealMacroTargets(daily domain.MacroTargets, mealType domain.MealType, goal domain.Goal) domain.MacroTargets {
	ratio := MealCalorieRatio(mealType)
	targets := domain.MacroTargets{
		Proteins: daily.Proteins * ratio,
		Carbs:    daily.Carbs * ratio,
		Fats:     daily.Fats * ratio,
	}

	strategy := domain.StrategyFor(goal)
	switch strategy.MacroPriority {
	case domain.PriorityProteins:
		if mealType == domain.Lunch || mealType == domain.Dinner {
			targets.Proteins *= proteinBoost
			targets.Carbs *= carbReduction
		}
	case domain.PriorityCarbs:
		if mealType == domain.Breakfast {
			targets.Carbs *= carbBoost
		}
	}

	return targets
}

// DailyMacrosForCalories splits a daily calorie budget into default macro
// grams (30% protein, 40% carbs, 30% fat) when the caller has no explicit
// daily macros. Protein and carbs are 4 kcal/g, fat 9 kcal/g.
func DailyMacrosForCalories(dailyCalories float64) domain.MacroTargets {
	return domain.MacroTargets{
		Proteins: dailyCalories * 0.30 / 4,
		Carbs:    dailyCalories * 0.40 / 4,
		Fats:     dailyCalories * 0.30 / 9,
	}
}
