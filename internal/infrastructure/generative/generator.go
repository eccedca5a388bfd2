// Package generative is the language-model fallback source. It asks a
// text generator for a single dish hitting the slot's exact targets and
// parses the structured reply into a candidate. It is the last resort in
// every fallback chain and gated by the caller's entitlement check.
package generative

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/nutriplan/engine/internal/domain"
)

// Adapter implements the generative source over any TextGenerator.
type Adapter struct {
	generator domain.TextGenerator
}

// NewAdapter wraps a text generator as a source adapter.
func NewAdapter(generator domain.TextGenerator) *Adapter {
	return &Adapter{generator: generator}
}

// Source identifies this adapter to the decision engine.
func (a *Adapter) Source() domain.Source {
	return domain.SourceGenerative
}

// generatedMeal is the JSON shape the prompt asks for.
type generatedMeal struct {
	Name         string   `json:"name"`
	Calories     float64  `json:"calories"`
	Proteins     float64  `json:"proteins"`
	Carbs        float64  `json:"carbs"`
	Fats         float64  `json:"fats"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Retrieve asks the model for one dish. A malformed or implausible reply
// yields an empty list rather than an error: the model not cooperating is
// an expected outcome, not a failure of the adapter.
func (a *Adapter) Retrieve(ctx context.Context, mc domain.MealContext) ([]domain.Candidate, error) {
	prompt := buildPrompt(mc)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAdapterFailure, err)
	}

	meal, ok := parseReply(raw)
	if !ok {
		log.Printf("[GEN] unparseable reply for %s slot, skipping", mc.Slot.MealType)
		return nil, nil
	}

	return []domain.Candidate{{
		ID:           "gen_" + uuid.NewString(),
		Source:       domain.SourceGenerative,
		Name:         meal.Name,
		Ingredients:  meal.Ingredients,
		Instructions: meal.Instructions,
		Nutrition: domain.NutritionProfile{
			Calories: meal.Calories,
			Proteins: meal.Proteins,
			Carbs:    meal.Carbs,
			Fats:     meal.Fats,
		},
	}}, nil
}

func buildPrompt(mc domain.MealContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Propose une seule recette de %s d'environ %.0f kcal", frenchMealType(mc.Slot.MealType), mc.Slot.TargetCalories)
	if mc.Targets.Proteins > 0 {
		fmt.Fprintf(&b, ", avec environ %.0f g de protéines, %.0f g de glucides et %.0f g de lipides",
			mc.Targets.Proteins, mc.Targets.Carbs, mc.Targets.Fats)
	}
	b.WriteString(".")
	if mc.Vegan {
		b.WriteString(" La recette doit être végane.")
	} else if mc.Vegetarian {
		b.WriteString(" La recette doit être végétarienne.")
	}
	if len(mc.Allergies) > 0 {
		fmt.Fprintf(&b, " Sans: %s.", strings.Join(mc.Allergies, ", "))
	}
	b.WriteString(` Réponds uniquement avec un objet JSON de la forme` +
		` {"name": string, "calories": number, "proteins": number, "carbs": number,` +
		` "fats": number, "ingredients": [string], "instructions": [string]},` +
		` sans texte autour.`)
	return b.String()
}

// parseReply extracts the JSON object from the model reply, tolerating
// markdown fences and surrounding prose.
func parseReply(raw string) (generatedMeal, bool) {
	var meal generatedMeal

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return meal, false
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), &meal); err != nil {
		return meal, false
	}
	if meal.Name == "" || meal.Calories <= 0 {
		return meal, false
	}
	return meal, true
}

func frenchMealType(t domain.MealType) string {
	switch t {
	case domain.Breakfast:
		return "petit-déjeuner"
	case domain.Lunch:
		return "déjeuner"
	case domain.Snack:
		return "collation"
	case domain.Dinner:
		return "dîner"
	}
	return string(t)
}
