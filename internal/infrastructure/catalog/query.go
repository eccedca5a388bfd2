package catalog

import "github.com/nutriplan/engine/internal/domain"

// mealTypeQueries are the keyword searches used when browsing the catalog
// for a meal slot. Catalog products are ready-made foods, so the queries
// aim at what people actually grab for that slot.
var mealTypeQueries = map[domain.MealType]string{
	domain.Breakfast: "muesli céréales yaourt",
	domain.Lunch:     "plat cuisiné salade",
	domain.Snack:     "barre céréales fruits",
	domain.Dinner:    "plat cuisiné soupe",
}

func queryFor(mealType domain.MealType) string {
	if q, ok := mealTypeQueries[mealType]; ok {
		return q
	}
	return "plat cuisiné"
}
