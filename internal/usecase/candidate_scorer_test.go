package usecase

import (
	"testing"

	"github.com/nutriplan/engine/internal/domain"
)

func TestScoreCandidateDeterministic(t *testing.T) {
	n := domain.NutritionProfile{Calories: 620, Proteins: 40, Carbs: 55, Fats: 18}
	targets := domain.MacroTargets{Proteins: 45, Carbs: 60, Fats: 20}
	strategy := domain.StrategyFor(domain.GoalMaintain)

	first := ScoreCandidate(n, targets, strategy, 650, "Poulet basquaise")
	for i := 0; i < 10; i++ {
		if got := ScoreCandidate(n, targets, strategy, 650, "Poulet basquaise"); got != first {
			t.Fatalf("scoring is not deterministic: %v != %v", got, first)
		}
	}
}

func TestScoreCandidatePerfectMatch(t *testing.T) {
	targets := domain.MacroTargets{Proteins: 40, Carbs: 60, Fats: 20}
	n := domain.NutritionProfile{Calories: 600, Proteins: 40, Carbs: 60, Fats: 20}
	strategy := domain.StrategyFor(domain.GoalMaintain)

	// 40 calorie + 20 protein + 20 carb + 10 fat, no name adjustments.
	got := ScoreCandidate(n, targets, strategy, 600, "plat neutre")
	if got != 90 {
		t.Errorf("perfect match score = %v, want 90", got)
	}
}

func TestScoreCandidateRange(t *testing.T) {
	strategy := domain.StrategyFor(domain.GoalWeightLoss)
	targets := domain.MacroTargets{Proteins: 40, Carbs: 50, Fats: 20}

	profiles := []domain.NutritionProfile{
		{},
		{Calories: 600, Proteins: 45, Carbs: 40, Fats: 20},
		{Calories: 5000, Proteins: 1, Carbs: 900, Fats: 400},
	}
	for _, n := range profiles {
		got := ScoreCandidate(n, targets, strategy, 600, "pizza burger frites chocolat")
		if got < 0 || got > 100 {
			t.Errorf("score %v out of [0,100] for %+v", got, n)
		}
	}
}

func TestScoreCandidateProteinPriority(t *testing.T) {
	strategy := domain.StrategyFor(domain.GoalMuscleGain)
	targets := domain.MacroTargets{Proteins: 40, Carbs: 60, Fats: 20}

	meets := domain.NutritionProfile{Calories: 600, Proteins: 50, Carbs: 60, Fats: 20}
	misses := domain.NutritionProfile{Calories: 600, Proteins: 20, Carbs: 60, Fats: 20}

	high := ScoreCandidate(meets, targets, strategy, 600, "plat")
	low := ScoreCandidate(misses, targets, strategy, 600, "plat")

	// Beating the protein target earns the full 30; half the target earns 15.
	if high-low != 15 {
		t.Errorf("protein gap = %v, want 15 (full marks above target, linear below)", high-low)
	}
}

func TestScoreCandidateCarbDirection(t *testing.T) {
	lowCarb := domain.StrategyFor(domain.GoalWeightLoss)
	targets := domain.MacroTargets{Proteins: 40, Carbs: 50, Fats: 20}

	under := domain.NutritionProfile{Calories: 600, Proteins: 40, Carbs: 20, Fats: 20}
	over := domain.NutritionProfile{Calories: 600, Proteins: 40, Carbs: 80, Fats: 20}

	underScore := ScoreCandidate(under, targets, lowCarb, 600, "plat")
	overScore := ScoreCandidate(over, targets, lowCarb, 600, "plat")
	if underScore <= overScore {
		t.Errorf("low-carb strategy should reward staying under target: under=%v over=%v", underScore, overScore)
	}

	// A moderate strategy penalizes both directions symmetrically.
	moderate := domain.StrategyFor(domain.GoalMaintain)
	underScore = ScoreCandidate(under, targets, moderate, 600, "plat")
	overScore = ScoreCandidate(over, targets, moderate, 600, "plat")
	if underScore != overScore {
		t.Errorf("moderate strategy should be symmetric: under=%v over=%v", underScore, overScore)
	}
}

func TestScoreCandidateNameAdjustments(t *testing.T) {
	strategy := domain.StrategyFor(domain.GoalWeightLoss)
	targets := domain.MacroTargets{Proteins: 40, Carbs: 50, Fats: 20}
	// Deliberately imperfect macros so the base score sits clear of the
	// 100-point clamp and the name adjustments stay visible.
	n := domain.NutritionProfile{Calories: 500, Proteins: 30, Carbs: 40, Fats: 10}

	neutral := ScoreCandidate(n, targets, strategy, 600, "plat du jour")
	preferred := ScoreCandidate(n, targets, strategy, 600, "salade de poulet")
	avoided := ScoreCandidate(n, targets, strategy, 600, "pizza")

	if preferred-neutral != 10 {
		t.Errorf("two preferred hits should add 10 (capped): got %v", preferred-neutral)
	}
	if neutral-avoided != 10 {
		t.Errorf("one avoided hit should subtract 10: got %v", neutral-avoided)
	}
}

func TestScoreCandidateZeroTarget(t *testing.T) {
	n := domain.NutritionProfile{Calories: 500, Proteins: 30, Carbs: 40, Fats: 15}
	if got := ScoreCandidate(n, domain.MacroTargets{}, domain.StrategyFor(domain.GoalMaintain), 0, "plat"); got != 0 {
		t.Errorf("zero calorie target should score 0, got %v", got)
	}
}
