package domain

// Goal is the user's dietary objective.
type Goal string

const (
	GoalWeightLoss Goal = "weight_loss"
	GoalMuscleGain Goal = "muscle_gain"
	GoalMaintain   Goal = "maintain"
	GoalHealth     Goal = "health"
	GoalEnergy     Goal = "energy"
)

// MacroPriority names the macro a goal optimizes first.
type MacroPriority string

const (
	PriorityProteins MacroPriority = "proteins"
	PriorityCarbs    MacroPriority = "carbs"
	PriorityFats     MacroPriority = "fats"
	PriorityBalanced MacroPriority = "balanced"
)

// MacroStrategy is the target direction for a single macro.
type MacroStrategy string

const (
	StrategyLow      MacroStrategy = "low"
	StrategyModerate MacroStrategy = "moderate"
	StrategyHigh     MacroStrategy = "high"
)

// GoalStrategy is the static per-goal configuration. One read-only
// instance per supported goal, loaded once.
type GoalStrategy struct {
	Goal           Goal
	MacroPriority  MacroPriority
	ProteinPerKg   float64 // g protein per kg body weight
	CarbStrategy   MacroStrategy
	FatStrategy    MacroStrategy
	PreferredFoods []string
	AvoidFoods     []string
}

// PrioritizesProtein reports whether the goal boosts protein targets.
func (s GoalStrategy) PrioritizesProtein() bool {
	return s.MacroPriority == PriorityProteins
}

var goalStrategies = map[Goal]GoalStrategy{
	GoalWeightLoss: {
		Goal:          GoalWeightLoss,
		MacroPriority: PriorityProteins,
		ProteinPerKg:  1.8,
		CarbStrategy:  StrategyLow,
		FatStrategy:   StrategyModerate,
		PreferredFoods: []string{
			"salade", "salad", "légume", "vegetable", "poisson", "fish",
			"poulet", "chicken", "soupe", "soup", "yaourt", "yogurt",
		},
		AvoidFoods: []string{
			"frite", "fries", "pizza", "burger", "chips", "chocolat",
			"chocolate", "gâteau", "cake", "crème", "cream", "soda",
		},
	},
	GoalMuscleGain: {
		Goal:          GoalMuscleGain,
		MacroPriority: PriorityProteins,
		ProteinPerKg:  2.2,
		CarbStrategy:  StrategyHigh,
		FatStrategy:   StrategyModerate,
		PreferredFoods: []string{
			"poulet", "chicken", "bœuf", "beef", "œuf", "egg", "thon",
			"tuna", "riz", "rice", "quinoa", "lentille", "lentil",
		},
		AvoidFoods: []string{
			"soda", "bonbon", "candy", "alcool", "alcohol",
		},
	},
	GoalMaintain: {
		Goal:          GoalMaintain,
		MacroPriority: PriorityBalanced,
		ProteinPerKg:  1.4,
		CarbStrategy:  StrategyModerate,
		FatStrategy:   StrategyModerate,
	},
	GoalHealth: {
		Goal:          GoalHealth,
		MacroPriority: PriorityBalanced,
		ProteinPerKg:  1.2,
		CarbStrategy:  StrategyModerate,
		FatStrategy:   StrategyLow,
		PreferredFoods: []string{
			"légume", "vegetable", "fruit", "complet", "wholegrain",
			"avoine", "oat", "noix", "nut", "poisson", "fish",
		},
		AvoidFoods: []string{
			"frite", "fries", "charcuterie", "processed", "soda", "sucre",
			"sugar",
		},
	},
	GoalEnergy: {
		Goal:          GoalEnergy,
		MacroPriority: PriorityCarbs,
		ProteinPerKg:  1.4,
		CarbStrategy:  StrategyHigh,
		FatStrategy:   StrategyLow,
		PreferredFoods: []string{
			"banane", "banana", "avoine", "oat", "riz", "rice", "pâtes",
			"pasta", "miel", "honey", "fruit",
		},
		AvoidFoods: []string{
			"friture", "fried", "crème", "cream",
		},
	},
}

// StrategyFor returns the static strategy for a goal. Unknown goals get
// the maintain strategy so scoring always has a well-formed input.
func StrategyFor(goal Goal) GoalStrategy {
	if s, ok := goalStrategies[goal]; ok {
		return s
	}
	return goalStrategies[GoalMaintain]
}
