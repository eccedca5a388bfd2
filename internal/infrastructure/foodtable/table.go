// Package foodtable serves the bundled food-composition table: generic
// foods with official per-100g nutrient values, usable without any
// network access. It is the calorie-precision workhorse among the
// sources.
package foodtable

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nutriplan/engine/internal/domain"
)

//go:embed data.json
var rawTable []byte

// entry is the on-disk shape of one composition-table row.
type entry struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	MealTypes        []string `json:"mealTypes"`
	Calories         float64  `json:"calories"` // per 100g
	Proteins         float64  `json:"proteins"`
	Carbs            float64  `json:"carbs"`
	Fats             float64  `json:"fats"`
	Sugar            float64  `json:"sugar"`
	SaturatedFat     float64  `json:"saturatedFat"`
	Fiber            float64  `json:"fiber"`
	Sodium           float64  `json:"sodium"` // mg per 100g
	FruitVegNutShare float64  `json:"fruitVegNutShare"`
	Vegetarian       bool     `json:"vegetarian"`
	Vegan            bool     `json:"vegan"`
}

// Adapter is the composition-table source. The dataset is decoded once
// and kept in memory for the process lifetime; reload is out of scope.
type Adapter struct {
	once    sync.Once
	entries []entry
	loadErr error
}

// NewAdapter returns a composition-table adapter over the bundled data.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Source identifies this adapter to the decision engine.
func (a *Adapter) Source() domain.Source {
	return domain.SourceTable
}

// Retrieve returns table foods suitable for the slot's meal type, capped
// at the slot's calorie ceiling (per 100g, before portion scaling).
func (a *Adapter) Retrieve(ctx context.Context, mc domain.MealContext) ([]domain.Candidate, error) {
	if err := a.load(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAdapterFailure, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return a.SearchByMealTypeAndCalories(mc.Slot.MealType, calorieCeiling(mc), mc.Vegetarian, mc.Vegan), nil
}

// SearchByMealTypeAndCalories scans the table for foods tagged with the
// meal type whose per-100g energy stays under the ceiling.
func (a *Adapter) SearchByMealTypeAndCalories(mealType domain.MealType, ceiling float64, vegetarian, vegan bool) []domain.Candidate {
	if a.load() != nil {
		return nil
	}

	var out []domain.Candidate
	for _, e := range a.entries {
		if !servesMealType(e.MealTypes, mealType) {
			continue
		}
		if ceiling > 0 && e.Calories > ceiling {
			continue
		}
		if vegan && !e.Vegan {
			continue
		}
		if vegetarian && !e.Vegetarian {
			continue
		}
		out = append(out, e.toCandidate())
	}
	return out
}

// Lookup returns a single entry by id, or nil.
func (a *Adapter) Lookup(id string) *domain.Candidate {
	if a.load() != nil {
		return nil
	}
	for _, e := range a.entries {
		if e.ID == id {
			c := e.toCandidate()
			return &c
		}
	}
	return nil
}

func (a *Adapter) load() error {
	a.once.Do(func() {
		a.loadErr = json.Unmarshal(rawTable, &a.entries)
	})
	return a.loadErr
}

func (e entry) toCandidate() domain.Candidate {
	return domain.Candidate{
		ID:      e.ID,
		Source:  domain.SourceTable,
		Name:    e.Name,
		Per100g: true,
		Nutrition: domain.NutritionProfile{
			Calories:         e.Calories,
			Proteins:         e.Proteins,
			Carbs:            e.Carbs,
			Fats:             e.Fats,
			Sugar:            e.Sugar,
			SaturatedFat:     e.SaturatedFat,
			Fiber:            e.Fiber,
			Sodium:           e.Sodium,
			FruitVegNutShare: e.FruitVegNutShare,
		},
	}
}

// calorieCeiling bounds per-100g energy density relative to the slot
// target: very dense foods cannot be portioned down to a sane serving.
func calorieCeiling(mc domain.MealContext) float64 {
	if mc.Slot.TargetCalories <= 0 {
		return 0
	}
	// A 100g portion should never blow past the target plus slack.
	return mc.Slot.TargetCalories + 150
}

func servesMealType(tags []string, mealType domain.MealType) bool {
	for _, t := range tags {
		if domain.MealType(t) == mealType {
			return true
		}
	}
	return false
}
