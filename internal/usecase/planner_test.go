package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/nutriplan/engine/internal/domain"
)

func plannerEngine(t *testing.T) *Engine {
	t.Helper()

	pool := func(source domain.Source, n int) *stubAdapter {
		var candidates []domain.Candidate
		for i := 0; i < n; i++ {
			candidates = append(candidates,
				per100g(fmt.Sprintf("%s-%02d", source, i), source, 140+float64(5*i), 9, 18, 4))
		}
		return &stubAdapter{source: source, candidates: candidates}
	}

	return testEngine(t,
		pool(domain.SourceTable, 25),
		pool(domain.SourceCurated, 25),
		pool(domain.SourceCatalog, 25),
	)
}

func TestGeneratePlanFillsEverySlot(t *testing.T) {
	e := plannerEngine(t)

	result, err := e.GeneratePlan(context.Background(), PlanRequest{
		DailyCalories: 2000,
		Days:          2,
		Goal:          domain.GoalMaintain,
		Preference:    domain.PreferBalanced,
		CheatDay:      -1,
	})
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}

	if result.SlotsRequested != 8 {
		t.Errorf("SlotsRequested = %d, want 8", result.SlotsRequested)
	}
	if result.SlotsFilled != 8 {
		t.Errorf("SlotsFilled = %d, want 8 (%v)", result.SlotsFilled, result.SourceBreakdown)
	}
	if len(result.Meals) != 8 {
		t.Fatalf("len(Meals) = %d, want 8", len(result.Meals))
	}
	if result.ID == "" {
		t.Error("plan should carry an id")
	}

	breakdownTotal := 0
	for _, n := range result.SourceBreakdown {
		breakdownTotal += n
	}
	if breakdownTotal != 8 {
		t.Errorf("source breakdown sums to %d, want 8", breakdownTotal)
	}

	var calorieSum float64
	for _, meal := range result.Meals {
		calorieSum += meal.Nutrition.Calories
	}
	if math.Abs(calorieSum-result.TotalNutrition.Calories) > 1e-6 {
		t.Errorf("TotalNutrition %.1f kcal != meal sum %.1f", result.TotalNutrition.Calories, calorieSum)
	}
}

func TestGeneratePlanNoRepeats(t *testing.T) {
	e := plannerEngine(t)

	result, err := e.GeneratePlan(context.Background(), PlanRequest{
		DailyCalories: 2000,
		Days:          3,
		Preference:    domain.PreferBalanced,
		CheatDay:      -1,
	})
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}

	seen := make(map[string]bool)
	for _, meal := range result.Meals {
		if seen[meal.RecipeID] {
			t.Errorf("item %s planned twice", meal.RecipeID)
		}
		seen[meal.RecipeID] = true
	}
}

func TestGeneratePlanDailySourceVariety(t *testing.T) {
	e := plannerEngine(t)

	result, err := e.GeneratePlan(context.Background(), PlanRequest{
		DailyCalories: 2000,
		Days:          6,
		Preference:    domain.PreferFresh,
		CheatDay:      -1,
	})
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}
	if result.SlotsFilled != result.SlotsRequested {
		t.Fatalf("SlotsFilled = %d, want %d", result.SlotsFilled, result.SlotsRequested)
	}

	// Even with the fresh preference handing the table 70% of the draw, a
	// source that supplied two of a day's meals must sit out the rest of
	// that day while the other adapters can still serve.
	perDay := make(map[int]map[domain.Source]int)
	for _, meal := range result.Meals {
		if perDay[meal.Day] == nil {
			perDay[meal.Day] = make(map[domain.Source]int)
		}
		perDay[meal.Day][meal.Source]++
	}
	for day, counts := range perDay {
		for source, n := range counts {
			if n > 2 {
				t.Errorf("day %d: %s supplied %d meals, want at most 2", day, source, n)
			}
		}
	}
}

func TestGeneratePlanSlotTargets(t *testing.T) {
	e := plannerEngine(t)

	result, err := e.GeneratePlan(context.Background(), PlanRequest{
		DailyCalories: 2000,
		Days:          1,
		Preference:    domain.PreferBalanced,
		CheatDay:      -1,
	})
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}

	for _, meal := range result.Meals {
		target := 2000 * MealCalorieRatio(meal.MealType)
		if meal.Nutrition.Calories < 0.3*target || meal.Nutrition.Calories > target+150 {
			t.Errorf("%s at %.0f kcal outside window for target %.0f",
				meal.MealType, meal.Nutrition.Calories, target)
		}
	}
}

func TestGeneratePlanCheatDay(t *testing.T) {
	e := plannerEngine(t)

	result, err := e.GeneratePlan(context.Background(), PlanRequest{
		DailyCalories: 2000,
		Days:          1,
		Preference:    domain.PreferBalanced,
		CheatDay:      0,
	})
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}
	if len(result.Meals) == 0 {
		t.Fatal("expected meals on the cheat day")
	}

	// Breakfast is the first slot: 2000 * 0.25 * 1.3 = 650 kcal target,
	// and the per-100g pool scales onto the target almost exactly.
	breakfast := result.Meals[0]
	if breakfast.MealType != domain.Breakfast {
		t.Fatalf("first meal is %s, want breakfast", breakfast.MealType)
	}
	if math.Abs(breakfast.Nutrition.Calories-650) > 5 {
		t.Errorf("cheat-day breakfast at %.0f kcal, want about 650", breakfast.Nutrition.Calories)
	}
}

func TestGeneratePlanValidation(t *testing.T) {
	e := plannerEngine(t)

	tests := []struct {
		name string
		req  PlanRequest
	}{
		{"zero calories", PlanRequest{Days: 3, CheatDay: -1}},
		{"zero days", PlanRequest{DailyCalories: 2000, CheatDay: -1}},
		{"negative days", PlanRequest{DailyCalories: 2000, Days: -2, CheatDay: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.GeneratePlan(context.Background(), tt.req)
			if !errors.Is(err, domain.ErrInvalidTarget) {
				t.Errorf("err = %v, want ErrInvalidTarget", err)
			}
		})
	}
}

func TestGeneratePlanCancellation(t *testing.T) {
	e := plannerEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := e.GeneratePlan(ctx, PlanRequest{
		DailyCalories: 2000,
		Days:          5,
		Preference:    domain.PreferBalanced,
		CheatDay:      -1,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if result == nil {
		t.Fatal("cancellation must surface partial progress, not a nil result")
	}
	if result.SlotsFilled != 0 {
		t.Errorf("SlotsFilled = %d, want 0 for an immediately cancelled run", result.SlotsFilled)
	}
}

func TestGeneratePlanVegan(t *testing.T) {
	// Adapter that records the context it was asked with.
	var lastContext domain.MealContext
	recorder := &recordingAdapter{
		source: domain.SourceTable,
		record: func(mc domain.MealContext) { lastContext = mc },
		candidates: []domain.Candidate{
			per100g("tofu", domain.SourceTable, 150, 10, 5, 8),
		},
	}
	e := testEngine(t, recorder)

	_, err := e.GeneratePlan(context.Background(), PlanRequest{
		DailyCalories: 2000,
		Days:          1,
		Preference:    domain.PreferFresh,
		Vegan:         true,
		Allergies:     []string{"soja"},
		CheatDay:      -1,
	})
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}

	if !lastContext.Vegan {
		t.Error("vegan flag not threaded to the adapter")
	}
	if len(lastContext.Allergies) != 1 || lastContext.Allergies[0] != "soja" {
		t.Errorf("allergies not threaded: %v", lastContext.Allergies)
	}
}

type recordingAdapter struct {
	source     domain.Source
	candidates []domain.Candidate
	record     func(domain.MealContext)
}

func (r *recordingAdapter) Source() domain.Source { return r.source }

func (r *recordingAdapter) Retrieve(ctx context.Context, mc domain.MealContext) ([]domain.Candidate, error) {
	if r.record != nil {
		r.record(mc)
	}
	return r.candidates, nil
}
