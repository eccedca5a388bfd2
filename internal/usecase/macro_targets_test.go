package usecase

import (
	"math"
	"testing"

	"github.com/nutriplan/engine/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMealCalorieRatio(t *testing.T) {
	total := 0.0
	for _, mealType := range domain.MealTypes {
		ratio := MealCalorieRatio(mealType)
		if ratio <= 0 {
			t.Errorf("MealCalorieRatio(%v) = %v, want positive", mealType, ratio)
		}
		total += ratio
	}
	if !almostEqual(total, 1.0) {
		t.Errorf("meal ratios sum to %v, want 1.0", total)
	}

	if got := 2000 * MealCalorieRatio(domain.Lunch); !almostEqual(got, 700) {
		t.Errorf("lunch share of 2000 kcal = %v, want 700", got)
	}

	if got := MealCalorieRatio(domain.MealType("brunch")); got != 0 {
		t.Errorf("unknown meal type ratio = %v, want 0", got)
	}
}

func TestCalculateMealMacroTargets(t *testing.T) {
	daily := domain.MacroTargets{Proteins: 150, Carbs: 200, Fats: 70}

	t.Run("maintain applies plain ratios", func(t *testing.T) {
		got := CalculateMealMacroTargets(daily, domain.Lunch, domain.GoalMaintain)
		want := domain.MacroTargets{Proteins: 150 * 0.35, Carbs: 200 * 0.35, Fats: 70 * 0.35}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("protein priority boosts lunch protein and trims carbs", func(t *testing.T) {
		got := CalculateMealMacroTargets(daily, domain.Lunch, domain.GoalWeightLoss)
		if !almostEqual(got.Proteins, 150*0.35*1.20) {
			t.Errorf("proteins = %v, want %v", got.Proteins, 150*0.35*1.20)
		}
		if !almostEqual(got.Carbs, 200*0.35*0.80) {
			t.Errorf("carbs = %v, want %v", got.Carbs, 200*0.35*0.80)
		}
		if !almostEqual(got.Fats, 70*0.35) {
			t.Errorf("fats = %v, want %v (unadjusted)", got.Fats, 70*0.35)
		}
	})

	t.Run("protein priority leaves breakfast untouched", func(t *testing.T) {
		got := CalculateMealMacroTargets(daily, domain.Breakfast, domain.GoalMuscleGain)
		if !almostEqual(got.Proteins, 150*0.25) {
			t.Errorf("proteins = %v, want %v", got.Proteins, 150*0.25)
		}
	})

	t.Run("carb priority boosts breakfast carbs only", func(t *testing.T) {
		breakfast := CalculateMealMacroTargets(daily, domain.Breakfast, domain.GoalEnergy)
		if !almostEqual(breakfast.Carbs, 200*0.25*1.15) {
			t.Errorf("breakfast carbs = %v, want %v", breakfast.Carbs, 200*0.25*1.15)
		}

		lunch := CalculateMealMacroTargets(daily, domain.Lunch, domain.GoalEnergy)
		if !almostEqual(lunch.Carbs, 200*0.35) {
			t.Errorf("lunch carbs = %v, want %v (unadjusted)", lunch.Carbs, 200*0.35)
		}
	})
}

func TestDailyMacrosForCalories(t *testing.T) {
	got := DailyMacrosForCalories(2000)

	if !almostEqual(got.Proteins, 150) {
		t.Errorf("proteins = %v, want 150", got.Proteins)
	}
	if !almostEqual(got.Carbs, 200) {
		t.Errorf("carbs = %v, want 200", got.Carbs)
	}
	if !almostEqual(got.Fats, 2000*0.30/9) {
		t.Errorf("fats = %v, want %v", got.Fats, 2000*0.30/9)
	}
}
