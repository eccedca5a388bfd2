// Package recipes serves the bundled curated-recipe corpus: complete
// dishes with per-serving nutrition, ingredients and preparation steps.
package recipes

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nutriplan/engine/internal/domain"
)

//go:embed data.json
var rawRecipes []byte

// standardPortionGrams is the assumed serving weight when a recipe does
// not state one. Curated dishes cluster around a 300g plate.
const standardPortionGrams = 300

type recipe struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MealTypes    []string `json:"mealTypes"`
	Calories     float64  `json:"calories"` // per serving
	Proteins     float64  `json:"proteins"`
	Carbs        float64  `json:"carbs"`
	Fats         float64  `json:"fats"`
	Sugar        float64  `json:"sugar"`
	SaturatedFat float64  `json:"saturatedFat"`
	Fiber        float64  `json:"fiber"`
	Sodium       float64  `json:"sodium"` // mg per serving
	PortionGrams float64  `json:"portionGrams"`
	PrepTimeMin  int      `json:"prepTimeMin"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Vegetarian   bool     `json:"vegetarian"`
	Vegan        bool     `json:"vegan"`
}

// Adapter is the curated-recipe source.
type Adapter struct {
	once    sync.Once
	recipes []recipe
	loadErr error
}

// NewAdapter returns a curated-recipe adapter over the bundled corpus.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Source identifies this adapter to the decision engine.
func (a *Adapter) Source() domain.Source {
	return domain.SourceCurated
}

// Retrieve returns curated dishes tagged for the slot's meal type.
// Calorie fit and scoring are the orchestrator's business; this adapter
// only narrows by meal type and diet flags.
func (a *Adapter) Retrieve(ctx context.Context, mc domain.MealContext) ([]domain.Candidate, error) {
	if err := a.load(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAdapterFailure, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []domain.Candidate
	for _, r := range a.recipes {
		if !servesMealType(r.MealTypes, mc.Slot.MealType) {
			continue
		}
		if mc.Vegan && !r.Vegan {
			continue
		}
		if mc.Vegetarian && !r.Vegetarian {
			continue
		}
		out = append(out, r.toCandidate())
	}
	return out, nil
}

// Lookup returns a single recipe by id, or nil.
func (a *Adapter) Lookup(id string) *domain.Candidate {
	if a.load() != nil {
		return nil
	}
	for _, r := range a.recipes {
		if r.ID == id {
			c := r.toCandidate()
			return &c
		}
	}
	return nil
}

func (a *Adapter) load() error {
	a.once.Do(func() {
		a.loadErr = json.Unmarshal(rawRecipes, &a.recipes)
	})
	return a.loadErr
}

func (r recipe) toCandidate() domain.Candidate {
	portion := r.PortionGrams
	if portion <= 0 {
		portion = standardPortionGrams
	}
	return domain.Candidate{
		ID:           r.ID,
		Source:       domain.SourceCurated,
		Name:         r.Name,
		PortionGrams: portion,
		PrepTimeMin:  r.PrepTimeMin,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Nutrition: domain.NutritionProfile{
			Calories:     r.Calories,
			Proteins:     r.Proteins,
			Carbs:        r.Carbs,
			Fats:         r.Fats,
			Sugar:        r.Sugar,
			SaturatedFat: r.SaturatedFat,
			Fiber:        r.Fiber,
			Sodium:       r.Sodium,
		},
	}
}

func servesMealType(tags []string, mealType domain.MealType) bool {
	for _, t := range tags {
		if domain.MealType(t) == mealType {
			return true
		}
	}
	return false
}
