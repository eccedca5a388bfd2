package usecase

import "github.com/nutriplan/engine/internal/domain"

// Nutri-Score computation over per-100g nutrient values.
//
// The band tables below are the published 2017 algorithm used by the
// European food databases this engine consumes; they are transcribed, not
// derived. Changing a single breakpoint silently changes grades, so any
// edit must be checked against the official specification.

const kjPerKcal = 4.184

// Negative point bands (0-10 each). A value earns the points of the
// highest threshold it reaches: value >= threshold counts.
var (
	energyBandsKJ    = []float64{335, 670, 1005, 1340, 1675, 2010, 2345, 2680, 3015, 3350}
	sugarBandsG      = []float64{4.5, 9, 13.5, 18, 22.5, 27, 31, 36, 40, 45}
	satFatBandsG     = []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	sodiumBandsMG    = []float64{90, 180, 270, 360, 450, 540, 630, 720, 810, 900}
)

// Positive point bands (0-5 each).
var (
	fiberBandsG   = []float64{0.9, 1.9, 2.8, 3.7, 4.7}
	proteinBandsG = []float64{1.6, 3.2, 4.8, 6.4, 8.0}
)

// Grade thresholds on the final score (negative - positive).
const (
	gradeACeiling = -1
	gradeBCeiling = 2
	gradeCCeiling = 10
	gradeDCeiling = 18
)

// protein points are dropped from the positive total when negative points
// reach this level and the fruit/veg/nut share is not maximal. This keeps
// high-protein processed foods from gaming the score.
const proteinExclusionFloor = 11

// bandPoints returns how many thresholds the value reaches.
func bandPoints(value float64, thresholds []float64) int {
	points := 0
	for _, t := range thresholds {
		if value >= t {
			points++
		}
	}
	return points
}

// fruitSharePoints maps a fruit/vegetable/nut percentage to 0-5 points.
// The table is deliberately non-linear: only a share above 80% earns the
// full 5 points.
func fruitSharePoints(sharePct float64) int {
	switch {
	case sharePct >= 80:
		return 5
	case sharePct >= 60:
		return 2
	case sharePct >= 40:
		return 1
	}
	return 0
}

// ScoreNutrition computes the standardized nutrition score and A-E grade
// from per-100g nutrient values. Pure; never fails for well-formed input.
func ScoreNutrition(n domain.NutritionProfile) (int, domain.Grade) {
	negative := bandPoints(n.Calories*kjPerKcal, energyBandsKJ) +
		bandPoints(n.Sugar, sugarBandsG) +
		bandPoints(n.SaturatedFat, satFatBandsG) +
		bandPoints(n.Sodium, sodiumBandsMG)

	fiberPts := bandPoints(n.Fiber, fiberBandsG)
	proteinPts := bandPoints(n.Proteins, proteinBandsG)
	fruitPts := fruitSharePoints(n.FruitVegNutShare)

	positive := fiberPts + fruitPts
	if negative < proteinExclusionFloor || fruitPts == 5 {
		positive += proteinPts
	}

	score := negative - positive
	return score, gradeForScore(score)
}

func gradeForScore(score int) domain.Grade {
	switch {
	case score <= gradeACeiling:
		return domain.GradeA
	case score <= gradeBCeiling:
		return domain.GradeB
	case score <= gradeCCeiling:
		return domain.GradeC
	case score <= gradeDCeiling:
		return domain.GradeD
	}
	return domain.GradeE
}

// EstimateGrade produces a coarse grade when only calories and the basic
// macros are known (per 100g). It substitutes typical sugar and saturated
// fat fractions for the missing fields, so it is an approximation for
// display fallback only. It is never authoritative and never cached as a real
// grade.
func EstimateGrade(n domain.NutritionProfile) domain.Grade {
	approx := domain.NutritionProfile{
		Calories:     n.Calories,
		Proteins:     n.Proteins,
		Carbs:        n.Carbs,
		Fats:         n.Fats,
		Sugar:        n.Carbs * 0.35,
		SaturatedFat: n.Fats * 0.40,
	}
	_, grade := ScoreNutrition(approx)
	return grade
}
