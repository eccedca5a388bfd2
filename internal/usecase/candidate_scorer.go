package usecase

import (
	"math"
	"strings"

	"github.com/nutriplan/engine/internal/domain"
)

// Component weights for candidate scoring. The total is clamped to
// [0, 100]. Calorie fit dominates; the protein weight grows when the goal
// prioritizes protein.
const (
	calorieWeight         = 40.0
	proteinWeightPriority = 30.0
	proteinWeight         = 20.0
	carbWeight            = 20.0
	fatWeight             = 10.0

	preferredBonusPerHit = 5.0
	preferredBonusMax    = 10.0
	avoidMalusPerHit     = 10.0
	avoidMalusMax        = 20.0
)

// ScoreCandidate scores one candidate's nutrition against the slot's
// calorie and macro targets plus goal-specific ingredient preferences.
// Pure and deterministic: the weighted-random selection among top
// candidates lives in the orchestrator, never here.
func ScoreCandidate(
	n domain.NutritionProfile,
	targets domain.MacroTargets,
	strategy domain.GoalStrategy,
	targetCalories float64,
	name string,
) float64 {
	if targetCalories <= 0 {
		return 0
	}

	score := calorieWeight * linearFit(n.Calories, targetCalories)

	score += proteinScore(n.Proteins, targets.Proteins, strategy)
	score += carbScore(n.Carbs, targets.Carbs, strategy.CarbStrategy)
	score += fatWeight * linearFit(n.Fats, targets.Fats)

	score += nameScore(name, strategy)

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// linearFit maps |actual-target|/target to [0,1], 1 at a perfect match,
// 0 once the deviation reaches the target itself.
func linearFit(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	fit := 1 - math.Abs(actual-target)/target
	if fit < 0 {
		return 0
	}
	return fit
}

func proteinScore(actual, target float64, strategy domain.GoalStrategy) float64 {
	if strategy.PrioritizesProtein() {
		// Full marks for meeting or beating the target; linear below it.
		if target > 0 && actual >= target {
			return proteinWeightPriority
		}
		if target <= 0 {
			return 0
		}
		return proteinWeightPriority * actual / target
	}
	return proteinWeight * linearFit(actual, target)
}

// carbScore is direction-aware: a low-carb strategy rewards staying under
// target, a high-carb strategy rewards hitting it.
func carbScore(actual, target float64, strategy domain.MacroStrategy) float64 {
	if target <= 0 {
		return 0
	}
	switch strategy {
	case domain.StrategyLow:
		if actual <= target {
			return carbWeight
		}
		over := (actual - target) / target
		fit := 1 - over
		if fit < 0 {
			return 0
		}
		return carbWeight * fit
	default:
		return carbWeight * linearFit(actual, target)
	}
}

// nameScore applies the goal's ingredient bonus/malus by case-insensitive
// substring match against the candidate name.
func nameScore(name string, strategy domain.GoalStrategy) float64 {
	if name == "" {
		return 0
	}
	lower := strings.ToLower(name)

	bonus := 0.0
	for _, token := range strategy.PreferredFoods {
		if strings.Contains(lower, token) {
			bonus += preferredBonusPerHit
		}
	}
	if bonus > preferredBonusMax {
		bonus = preferredBonusMax
	}

	malus := 0.0
	for _, token := range strategy.AvoidFoods {
		if strings.Contains(lower, token) {
			malus += avoidMalusPerHit
		}
	}
	if malus > avoidMalusMax {
		malus = avoidMalusMax
	}

	return bonus - malus
}
