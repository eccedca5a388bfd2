package catalog

import (
	"strings"

	"github.com/nutriplan/engine/internal/domain"
)

// searchResponse mirrors the cgi/search.pl JSON envelope.
type searchResponse struct {
	Count    int       `json:"count"`
	Products []product `json:"products"`
}

// productResponse mirrors the api/v2/product JSON envelope.
type productResponse struct {
	Status  int     `json:"status"`
	Product product `json:"product"`
}

type product struct {
	Code          string     `json:"code"`
	ProductName   string     `json:"product_name"`
	ProductNameFr string     `json:"product_name_fr"`
	Brands        string     `json:"brands"`
	Nutriments    nutriments `json:"nutriments"`
	LabelsTags    []string   `json:"labels_tags"`
	ImageURL      string     `json:"image_front_small_url"`
}

// nutriments carries the per-100g values. OFF reports sodium in grams.
type nutriments struct {
	EnergyKcal   float64 `json:"energy-kcal_100g"`
	Energy       float64 `json:"energy_100g"`
	Proteins     float64 `json:"proteins_100g"`
	Carbs        float64 `json:"carbohydrates_100g"`
	Fats         float64 `json:"fat_100g"`
	Sugars       float64 `json:"sugars_100g"`
	SaturatedFat float64 `json:"saturated-fat_100g"`
	Fiber        float64 `json:"fiber_100g"`
	Sodium       float64 `json:"sodium_100g"`
	FruitsVeg    float64 `json:"fruits-vegetables-nuts-estimate-from-ingredients_100g"`
}

// mapProducts converts a search page, dropping products without usable
// energy data.
func mapProducts(products []product) []domain.Candidate {
	var out []domain.Candidate
	for _, p := range products {
		if c, ok := mapProduct(p); ok {
			out = append(out, c)
		}
	}
	return out
}

func mapProduct(p product) (domain.Candidate, bool) {
	calories := p.Nutriments.EnergyKcal
	if calories <= 0 && p.Nutriments.Energy > 0 {
		// energy_100g is kJ when no kcal field is present.
		calories = p.Nutriments.Energy / 4.184
	}
	if calories <= 0 {
		return domain.Candidate{}, false
	}

	name := p.ProductNameFr
	if name == "" {
		name = p.ProductName
	}
	if strings.TrimSpace(name) == "" {
		return domain.Candidate{}, false
	}

	return domain.Candidate{
		ID:       "off_" + p.Code,
		Source:   domain.SourceCatalog,
		Name:     name,
		Brand:    p.Brands,
		Per100g:  true,
		ImageURL: p.ImageURL,
		Nutrition: domain.NutritionProfile{
			Calories:         calories,
			Proteins:         p.Nutriments.Proteins,
			Carbs:            p.Nutriments.Carbs,
			Fats:             p.Nutriments.Fats,
			Sugar:            p.Nutriments.Sugars,
			SaturatedFat:     p.Nutriments.SaturatedFat,
			Fiber:            p.Nutriments.Fiber,
			Sodium:           p.Nutriments.Sodium * 1000,
			FruitVegNutShare: p.Nutriments.FruitsVeg,
		},
	}, true
}
