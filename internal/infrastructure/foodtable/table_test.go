package foodtable

import (
	"context"
	"strings"
	"testing"

	"github.com/nutriplan/engine/internal/domain"
)

func TestAdapterSource(t *testing.T) {
	if got := NewAdapter().Source(); got != domain.SourceTable {
		t.Errorf("Source() = %v, want table", got)
	}
}

func TestRetrieveByMealType(t *testing.T) {
	a := NewAdapter()
	mc := domain.MealContext{
		Slot: domain.MealSlot{MealType: domain.Lunch, TargetCalories: 650},
	}

	candidates, err := a.Retrieve(context.Background(), mc)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(candidates) == 0 {
		t.Fatal("expected lunch entries in the bundled table")
	}

	for _, c := range candidates {
		if c.Source != domain.SourceTable {
			t.Errorf("%s: source = %v, want table", c.ID, c.Source)
		}
		if !c.Per100g {
			t.Errorf("%s: table entries must be per 100g", c.ID)
		}
		if c.Nutrition.Calories <= 0 {
			t.Errorf("%s: calories = %v", c.ID, c.Nutrition.Calories)
		}
		if c.Nutrition.Calories > 650+150 {
			t.Errorf("%s: %v kcal/100g exceeds the slot ceiling", c.ID, c.Nutrition.Calories)
		}
	}
}

func TestRetrieveEveryMealTypeCovered(t *testing.T) {
	a := NewAdapter()
	for _, mealType := range domain.MealTypes {
		mc := domain.MealContext{
			Slot: domain.MealSlot{MealType: mealType, TargetCalories: 500},
		}
		candidates, err := a.Retrieve(context.Background(), mc)
		if err != nil {
			t.Fatalf("Retrieve(%s) error = %v", mealType, err)
		}
		if len(candidates) == 0 {
			t.Errorf("no table entries for %s", mealType)
		}
	}
}

func TestRetrieveVeganFilter(t *testing.T) {
	a := NewAdapter()
	mc := domain.MealContext{
		Slot:  domain.MealSlot{MealType: domain.Lunch, TargetCalories: 650},
		Vegan: true,
	}

	candidates, err := a.Retrieve(context.Background(), mc)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(candidates) == 0 {
		t.Fatal("expected vegan lunch entries")
	}

	for _, c := range candidates {
		lower := strings.ToLower(c.Name)
		for _, animal := range []string{"poulet", "saumon", "thon", "boeuf", "dinde", "crevette", "oeuf", "emmental", "yaourt"} {
			if strings.Contains(lower, animal) {
				t.Errorf("non-vegan entry %q passed the vegan filter", c.Name)
			}
		}
	}
}

func TestRetrieveVegetarianFilter(t *testing.T) {
	a := NewAdapter()
	mc := domain.MealContext{
		Slot:       domain.MealSlot{MealType: domain.Lunch, TargetCalories: 650},
		Vegetarian: true,
	}

	candidates, err := a.Retrieve(context.Background(), mc)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	for _, c := range candidates {
		lower := strings.ToLower(c.Name)
		for _, meat := range []string{"poulet", "saumon", "thon", "boeuf", "dinde", "crevette"} {
			if strings.Contains(lower, meat) {
				t.Errorf("meat entry %q passed the vegetarian filter", c.Name)
			}
		}
	}
}

func TestSearchByMealTypeAndCaloriesCeiling(t *testing.T) {
	a := NewAdapter()

	unbounded := a.SearchByMealTypeAndCalories(domain.Snack, 0, false, false)
	bounded := a.SearchByMealTypeAndCalories(domain.Snack, 100, false, false)

	if len(bounded) >= len(unbounded) {
		t.Errorf("ceiling should narrow the result: %d vs %d", len(bounded), len(unbounded))
	}
	for _, c := range bounded {
		if c.Nutrition.Calories > 100 {
			t.Errorf("%s at %v kcal/100g above the 100 kcal ceiling", c.ID, c.Nutrition.Calories)
		}
	}
}

func TestLookup(t *testing.T) {
	a := NewAdapter()

	c := a.Lookup("table_9410")
	if c == nil {
		t.Fatal("Lookup(table_9410) = nil")
	}
	if !strings.Contains(c.Name, "Riz") {
		t.Errorf("name = %q, want a rice entry", c.Name)
	}

	if got := a.Lookup("table_does_not_exist"); got != nil {
		t.Errorf("Lookup(unknown) = %+v, want nil", got)
	}
}
