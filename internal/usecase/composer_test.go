package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/nutriplan/engine/internal/domain"
)

// componentPool builds a stub source with enough per-100g items that every
// composition slot finds something to scale onto its share.
func componentPool(source domain.Source, n int) *stubAdapter {
	var candidates []domain.Candidate
	for i := 0; i < n; i++ {
		candidates = append(candidates,
			per100g(fmt.Sprintf("%s%02d", source, i), source, 120+float64(10*i), 8, 15, 4))
	}
	return &stubAdapter{source: source, candidates: candidates}
}

func composerEngine(t *testing.T) *Engine {
	t.Helper()
	return testEngine(t,
		componentPool(domain.SourceTable, 12),
		componentPool(domain.SourceCurated, 12),
		componentPool(domain.SourceCatalog, 12),
	)
}

func TestComposeMealBudgetConservation(t *testing.T) {
	e := composerEngine(t)

	for _, mealType := range domain.MealTypes {
		t.Run(string(mealType), func(t *testing.T) {
			target := 2000 * MealCalorieRatio(mealType)
			composed, err := e.ComposeMeal(context.Background(), mealType, target)
			if err != nil {
				t.Fatalf("ComposeMeal() error = %v", err)
			}
			if composed == nil {
				t.Fatal("expected a composition")
			}

			if composed.ActualCalories > target+150 {
				t.Errorf("composition %.0f kcal exceeds target %.0f + 150 slack", composed.ActualCalories, target)
			}
			if composed.ActualCalories < 0.5*target {
				t.Errorf("composition %.0f kcal below half the %.0f target", composed.ActualCalories, target)
			}
			if len(composed.Components) == 0 {
				t.Error("composition has no components")
			}
		})
	}
}

func TestComposeMealRolesAndTotals(t *testing.T) {
	e := composerEngine(t)

	composed, err := e.ComposeMeal(context.Background(), domain.Dinner, 600)
	if err != nil {
		t.Fatalf("ComposeMeal() error = %v", err)
	}
	if composed == nil {
		t.Fatal("expected a composition")
	}

	sum := domain.NutritionProfile{}
	seenRoles := make(map[domain.ComponentRole]bool)
	for _, comp := range composed.Components {
		if comp.Role == "" {
			t.Error("component missing its role")
		}
		if seenRoles[comp.Role] {
			t.Errorf("role %s filled twice", comp.Role)
		}
		seenRoles[comp.Role] = true
		sum = sum.Add(comp.Meal.Nutrition)
	}

	if sum.Calories != composed.TotalNutrition.Calories {
		t.Errorf("total %.1f kcal != component sum %.1f", composed.TotalNutrition.Calories, sum.Calories)
	}
	if !seenRoles[domain.RoleMain] {
		t.Error("dinner composition must include a main")
	}
}

func TestComposeMealDistinctComponents(t *testing.T) {
	e := composerEngine(t)

	composed, err := e.ComposeMeal(context.Background(), domain.Lunch, 700)
	if err != nil {
		t.Fatalf("ComposeMeal() error = %v", err)
	}
	if composed == nil {
		t.Fatal("expected a composition")
	}

	seen := make(map[string]bool)
	for _, comp := range composed.Components {
		if seen[comp.Meal.RecipeID] {
			t.Errorf("item %s appears in two slots", comp.Meal.RecipeID)
		}
		seen[comp.Meal.RecipeID] = true
	}
}

func TestComposeMealNoAdapters(t *testing.T) {
	e := testEngine(t)

	composed, err := e.ComposeMeal(context.Background(), domain.Dinner, 600)
	if err != nil {
		t.Fatalf("empty engine must not error, got %v", err)
	}
	if composed != nil {
		t.Errorf("expected nil composition without adapters, got %+v", composed)
	}
}

func TestComposeMealInvalidInput(t *testing.T) {
	e := composerEngine(t)

	if _, err := e.ComposeMeal(context.Background(), domain.Dinner, 0); err == nil {
		t.Error("zero target should be rejected")
	}
	if _, err := e.ComposeMeal(context.Background(), "brunch", 600); err == nil {
		t.Error("unknown meal type should be rejected")
	}
}
