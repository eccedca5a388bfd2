package usecase

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/nutriplan/engine/internal/domain"
)

// Calorie targets outside this window are easier to hit with a generated
// meal than with any fixed corpus, so the generative source takes over.
const (
	extremeCaloriesLow  = 200.0
	extremeCaloriesHigh = 800.0
)

// Per-preference weight vectors over the three retrieval sources.
const (
	goalBias = 0.10 // goal and diet adjustments

	// history thresholds for same-day variety forcing
	sameSourceLimit   = 2
	manualBucketLimit = 3
)

// Decision is the source-selection outcome for one slot.
type Decision struct {
	Primary    domain.Source
	Fallbacks  []domain.Source
	Confidence float64
	Reason     string
}

// Chain returns primary followed by the fallbacks.
func (d Decision) Chain() []domain.Source {
	return append([]domain.Source{d.Primary}, d.Fallbacks...)
}

type sourceWeight struct {
	source domain.Source
	weight float64
}

// preferenceWeights returns the base weight vector for a user preference,
// ordered [table, curated, catalog].
func preferenceWeights(pref domain.SourcePreference) []sourceWeight {
	switch pref {
	case domain.PreferFresh:
		return []sourceWeight{
			{domain.SourceTable, 0.70},
			{domain.SourceCurated, 0.20},
			{domain.SourceCatalog, 0.10},
		}
	case domain.PreferRecipes:
		return []sourceWeight{
			{domain.SourceTable, 0.25},
			{domain.SourceCurated, 0.65},
			{domain.SourceCatalog, 0.10},
		}
	case domain.PreferQuick:
		return []sourceWeight{
			{domain.SourceTable, 0.30},
			{domain.SourceCurated, 0.20},
			{domain.SourceCatalog, 0.50},
		}
	default: // balanced
		return []sourceWeight{
			{domain.SourceTable, 0.50},
			{domain.SourceCurated, 0.35},
			{domain.SourceCatalog, 0.15},
		}
	}
}

// DecideSource picks the primary source and ordered fallbacks for a slot.
// Stateless: same-day history is passed in, randomness is injected so
// tests can assert exact outcomes.
func DecideSource(mc domain.MealContext, history domain.SourceHistory, rng *rand.Rand) Decision {
	target := mc.Slot.TargetCalories

	// Extreme budgets go straight to the generative source when the
	// caller's entitlement gate allows it.
	if mc.GenerativeAllowed && (target < extremeCaloriesLow || target > extremeCaloriesHigh) {
		weights := preferenceWeights(mc.Preference)
		return Decision{
			Primary:    domain.SourceGenerative,
			Fallbacks:  rankedSources(weights),
			Confidence: 0.90,
			Reason:     fmt.Sprintf("extreme calorie target %.0f kcal, generative preferred", target),
		}
	}

	weights := preferenceWeights(mc.Preference)
	var notes []string

	// Goal bias: calorie precision for weight loss, protein recipes for
	// muscle gain.
	switch mc.Goal {
	case domain.GoalWeightLoss:
		adjust(weights, domain.SourceTable, goalBias)
		notes = append(notes, "goal=weight_loss table+")
	case domain.GoalMuscleGain:
		adjust(weights, domain.SourceCurated, goalBias)
		notes = append(notes, "goal=muscle_gain curated+")
	}

	// Plant-based diets lean on the composition table, whose entries carry
	// reliable diet flags.
	if mc.Vegetarian || mc.Vegan {
		adjust(weights, domain.SourceTable, goalBias)
		notes = append(notes, "diet=plant table+")
	}

	// Same-day variety: a source that already supplied two meals is removed
	// from the primary draw entirely. With weight zero it ranks last, so it
	// keeps a fallback spot for when every other source comes up empty.
	for _, sw := range weights {
		if history.Count(sw.source) >= sameSourceLimit {
			adjustScale(weights, sw.source, 0)
			notes = append(notes, fmt.Sprintf("%s out of draw (%d today)", sw.source, history.Count(sw.source)))
		}
	}

	normalize(weights)

	// A day dominated by manual picks forces a curated recipe next.
	if history.ManualCount() >= manualBucketLimit {
		return Decision{
			Primary:    domain.SourceCurated,
			Fallbacks:  appendGenerative(remainingRanked(weights, domain.SourceCurated), mc.GenerativeAllowed),
			Confidence: 0.80,
			Reason:     fmt.Sprintf("manual bucket used %d times today, forcing curated", history.ManualCount()),
		}
	}

	primary := weightedDrawSource(weights, rng)
	reason := fmt.Sprintf("preference=%s weights %s", mc.Preference, formatWeights(weights))
	if len(notes) > 0 {
		reason += " (" + strings.Join(notes, ", ") + ")"
	}

	return Decision{
		Primary:    primary,
		Fallbacks:  appendGenerative(remainingRanked(weights, primary), mc.GenerativeAllowed),
		Confidence: weightOf(weights, primary),
		Reason:     reason,
	}
}

func adjust(weights []sourceWeight, s domain.Source, delta float64) {
	for i := range weights {
		if weights[i].source == s {
			weights[i].weight += delta
			if weights[i].weight < 0 {
				weights[i].weight = 0
			}
			return
		}
	}
}

func adjustScale(weights []sourceWeight, s domain.Source, factor float64) {
	for i := range weights {
		if weights[i].source == s {
			weights[i].weight *= factor
			return
		}
	}
}

func normalize(weights []sourceWeight) {
	total := 0.0
	for _, sw := range weights {
		total += sw.weight
	}
	if total <= 0 {
		return
	}
	for i := range weights {
		weights[i].weight /= total
	}
}

func weightOf(weights []sourceWeight, s domain.Source) float64 {
	for _, sw := range weights {
		if sw.source == s {
			return sw.weight
		}
	}
	return 0
}

// rankedSources returns all sources by descending weight. Ties keep the
// fixed [table, curated, catalog] order so decisions stay deterministic.
func rankedSources(weights []sourceWeight) []domain.Source {
	sorted := make([]sourceWeight, len(weights))
	copy(sorted, weights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].weight > sorted[j].weight
	})
	out := make([]domain.Source, 0, len(sorted))
	for _, sw := range sorted {
		out = append(out, sw.source)
	}
	return out
}

func remainingRanked(weights []sourceWeight, exclude domain.Source) []domain.Source {
	var out []domain.Source
	for _, s := range rankedSources(weights) {
		if s != exclude {
			out = append(out, s)
		}
	}
	return out
}

// appendGenerative puts the generative source at the end of the fallback
// chain when entitled: highest per-call cost, so last resort.
func appendGenerative(fallbacks []domain.Source, allowed bool) []domain.Source {
	if allowed {
		return append(fallbacks, domain.SourceGenerative)
	}
	return fallbacks
}

// weightedDrawSource samples one source from the weight distribution.
func weightedDrawSource(weights []sourceWeight, rng *rand.Rand) domain.Source {
	total := 0.0
	for _, sw := range weights {
		total += sw.weight
	}
	if total <= 0 {
		return weights[0].source
	}
	r := rng.Float64() * total
	for _, sw := range weights {
		r -= sw.weight
		if r < 0 {
			return sw.source
		}
	}
	// Rounding spill-over: settle on the last source still in the draw.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i].weight > 0 {
			return weights[i].source
		}
	}
	return weights[len(weights)-1].source
}

func formatWeights(weights []sourceWeight) string {
	parts := make([]string, 0, len(weights))
	for _, sw := range weights {
		parts = append(parts, fmt.Sprintf("%s=%.2f", sw.source, sw.weight))
	}
	return strings.Join(parts, " ")
}
