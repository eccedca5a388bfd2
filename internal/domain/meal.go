package domain

import "strings"

// Source identifies which data origin produced a candidate.
type Source string

const (
	SourceCurated    Source = "curated"    // enriched recipe corpus, bundled
	SourceTable      Source = "table"      // official food-composition table
	SourceCatalog    Source = "catalog"    // third-party product catalog (Open Food Facts)
	SourceGenerative Source = "generative" // language-model fallback
)

// RetrievalSources are the three non-generative origins, in the order used
// for weight vectors.
var RetrievalSources = []Source{SourceTable, SourceCurated, SourceCatalog}

// IsManual reports whether the source belongs to the "manual" bucket
// (single foods the user assembles themselves, as opposed to full recipes).
func (s Source) IsManual() bool {
	return s == SourceTable || s == SourceCatalog
}

// MealType is one of the four daily meal slots.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Snack     MealType = "snack"
	Dinner    MealType = "dinner"
)

// MealTypes lists the slots in day order.
var MealTypes = []MealType{Breakfast, Lunch, Snack, Dinner}

// Valid reports whether t is a known meal type.
func (t MealType) Valid() bool {
	switch t {
	case Breakfast, Lunch, Snack, Dinner:
		return true
	}
	return false
}

// ComponentRole tags a component's position inside a composed meal.
type ComponentRole string

const (
	RoleStarter ComponentRole = "starter"
	RoleMain    ComponentRole = "main"
	RoleSide    ComponentRole = "side"
	RoleBread   ComponentRole = "bread"
	RoleDessert ComponentRole = "dessert"
	RoleDrink   ComponentRole = "drink"
	RoleSnack   ComponentRole = "snack"
)

// SourcePreference is the user's stated bias over data sources.
type SourcePreference string

const (
	PreferFresh    SourcePreference = "fresh"   // whole foods from the composition table
	PreferRecipes  SourcePreference = "recipes" // cooked dishes from the curated corpus
	PreferQuick    SourcePreference = "quick"   // ready-made catalog products
	PreferBalanced SourcePreference = "balanced"
)

// Candidate is a retrieved food/recipe/product, not yet committed to a
// plan. Candidates are value objects: created fresh per retrieval call and
// never mutated afterwards.
type Candidate struct {
	ID     string `json:"id"`
	Source Source `json:"source"`
	Name   string `json:"name"`
	Brand  string `json:"brand,omitempty"`

	// Nutrition is per 100g when Per100g is set, otherwise per serving.
	Nutrition NutritionProfile `json:"nutrition"`
	Per100g   bool             `json:"per100g,omitempty"`

	// PortionGrams is the serving size when known.
	PortionGrams float64 `json:"portionGrams,omitempty"`

	Grade        Grade    `json:"grade,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	PrepTimeMin  int      `json:"prepTimeMin,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
}

// MatchesAllergy reports whether the candidate name or any ingredient
// contains the given allergy token (case-insensitive substring).
func (c Candidate) MatchesAllergy(token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return false
	}
	if strings.Contains(strings.ToLower(c.Name), token) {
		return true
	}
	for _, ing := range c.Ingredients {
		if strings.Contains(strings.ToLower(ing), token) {
			return true
		}
	}
	return false
}

// MealSlot is one (day, meal type) position to be filled in a plan.
type MealSlot struct {
	Day            int      `json:"day"`
	MealType       MealType `json:"mealType"`
	TargetCalories float64  `json:"targetCalories"`
	CheatMeal      bool     `json:"cheatMeal,omitempty"`
}

// MealContext carries everything a retrieval call needs. ExcludeIDs is
// owned by the caller of a full plan and threaded by reference through
// sequential slot calls; it is not safe for concurrent mutation.
type MealContext struct {
	Slot       MealSlot
	Goal       Goal
	Targets    MacroTargets
	Preference SourcePreference

	Vegetarian bool
	Vegan      bool
	Allergies  []string

	ExcludeIDs map[string]bool

	// History lists the sources that supplied today's earlier meals; the
	// decision engine uses it to force variety within a day.
	History SourceHistory

	// GenerativeAllowed is decided by the caller's entitlement gate before
	// the engine is invoked; the engine never inspects credits itself.
	GenerativeAllowed bool

	// Reasons collects per-source diagnostics for a failed retrieval.
	Reasons []string
}

// Exclude marks an id as used for the remainder of the plan.
func (mc *MealContext) Exclude(id string) {
	if mc.ExcludeIDs == nil {
		mc.ExcludeIDs = make(map[string]bool)
	}
	mc.ExcludeIDs[id] = true
}

// SourceHistory records which source supplied each meal already planned for
// the current day, oldest first.
type SourceHistory []Source

// Count returns how many meals s has supplied today.
func (h SourceHistory) Count(s Source) int {
	n := 0
	for _, used := range h {
		if used == s {
			n++
		}
	}
	return n
}

// ManualCount returns how many meals the manual bucket (table + catalog)
// has supplied today.
func (h SourceHistory) ManualCount() int {
	n := 0
	for _, used := range h {
		if used.IsManual() {
			n++
		}
	}
	return n
}

// PlannedMeal is the output unit for a single slot. Once returned it is
// owned by the caller's meal-plan store; the engine performs no further
// writes to it.
type PlannedMeal struct {
	ID           string           `json:"id"`
	Day          int              `json:"day"`
	MealType     MealType         `json:"mealType"`
	Name         string           `json:"name"`
	Nutrition    NutritionProfile `json:"nutrition"`
	PortionGrams float64          `json:"portionGrams,omitempty"`
	Ingredients  []string         `json:"ingredients,omitempty"`
	Instructions []string         `json:"instructions,omitempty"`
	Source       Source           `json:"source"`
	RecipeID     string           `json:"recipeId,omitempty"`
	Grade        Grade            `json:"grade,omitempty"`
}

// MealComponent mirrors a PlannedMeal but is tagged with its slot role
// inside a composed meal.
type MealComponent struct {
	Role ComponentRole `json:"role"`
	Meal PlannedMeal   `json:"meal"`
}

// ComposedMeal is a meal built from multiple role-tagged components.
type ComposedMeal struct {
	MealType       MealType         `json:"mealType"`
	Components     []MealComponent  `json:"components"`
	TotalNutrition NutritionProfile `json:"totalNutrition"`
	TargetCalories float64          `json:"targetCalories"`
	ActualCalories float64          `json:"actualCalories"`
}

// PlanResult is the aggregate output of a multi-day generation run.
type PlanResult struct {
	ID              string           `json:"id"`
	Meals           []PlannedMeal    `json:"meals"`
	SourceBreakdown map[Source]int   `json:"sourceBreakdown"`
	TotalNutrition  NutritionProfile `json:"totalNutrition"`
	SlotsRequested  int              `json:"slotsRequested"`
	SlotsFilled     int              `json:"slotsFilled"`
}
