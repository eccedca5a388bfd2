package domain

// NutritionProfile holds the nutrient values for a food item. Values are
// per serving unless the owning Candidate says Per100g. Calories are kcal,
// macros and the extended fields are grams, sodium is mg.
type NutritionProfile struct {
	Calories     float64 `json:"calories"`
	Proteins     float64 `json:"proteins"`
	Carbs        float64 `json:"carbs"`
	Fats         float64 `json:"fats"`
	Sugar        float64 `json:"sugar,omitempty"`
	SaturatedFat float64 `json:"saturatedFat,omitempty"`
	Fiber        float64 `json:"fiber,omitempty"`
	Sodium       float64 `json:"sodium,omitempty"`
	// FruitVegNutShare is the estimated fruit/vegetable/nut fraction of the
	// item, in percent (0-100).
	FruitVegNutShare float64 `json:"fruitVegNutShare,omitempty"`
}

// Scale returns a copy with every quantity multiplied by factor.
// Used for portion adjustment when converting per-100g data to a serving.
func (n NutritionProfile) Scale(factor float64) NutritionProfile {
	return NutritionProfile{
		Calories:         n.Calories * factor,
		Proteins:         n.Proteins * factor,
		Carbs:            n.Carbs * factor,
		Fats:             n.Fats * factor,
		Sugar:            n.Sugar * factor,
		SaturatedFat:     n.SaturatedFat * factor,
		Fiber:            n.Fiber * factor,
		Sodium:           n.Sodium * factor,
		FruitVegNutShare: n.FruitVegNutShare, // a share, not a quantity
	}
}

// Add returns the component-wise sum of two profiles.
func (n NutritionProfile) Add(other NutritionProfile) NutritionProfile {
	return NutritionProfile{
		Calories:     n.Calories + other.Calories,
		Proteins:     n.Proteins + other.Proteins,
		Carbs:        n.Carbs + other.Carbs,
		Fats:         n.Fats + other.Fats,
		Sugar:        n.Sugar + other.Sugar,
		SaturatedFat: n.SaturatedFat + other.SaturatedFat,
		Fiber:        n.Fiber + other.Fiber,
		Sodium:       n.Sodium + other.Sodium,
	}
}

// HasExtended reports whether the fields beyond the basic macros were
// populated by the source. Grading falls back to an estimate without them.
func (n NutritionProfile) HasExtended() bool {
	return n.Sugar > 0 || n.SaturatedFat > 0 || n.Fiber > 0 || n.Sodium > 0
}

// MacroTargets is a per-meal protein/carb/fat budget in grams.
type MacroTargets struct {
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Grade is the A-E nutrition quality letter.
type Grade string

const (
	GradeA       Grade = "A"
	GradeB       Grade = "B"
	GradeC       Grade = "C"
	GradeD       Grade = "D"
	GradeE       Grade = "E"
	GradeUnknown Grade = ""
)

// Rank returns an ordinal for grade comparisons (A=0 .. E=4).
// Unknown sorts last.
func (g Grade) Rank() int {
	switch g {
	case GradeA:
		return 0
	case GradeB:
		return 1
	case GradeC:
		return 2
	case GradeD:
		return 3
	case GradeE:
		return 4
	}
	return 5
}
