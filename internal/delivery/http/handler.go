package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutriplan/engine/internal/domain"
	"github.com/nutriplan/engine/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	engine *usecase.Engine
}

// NewHandler creates a new HTTP handler
func NewHandler(engine *usecase.Engine) *Handler {
	return &Handler{engine: engine}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "meal-engine",
		"version": "1.0.0",
	})
}

// MealRequest is the payload for a single-slot suggestion.
type MealRequest struct {
	MealType       string   `json:"mealType" binding:"required"`
	TargetCalories float64  `json:"targetCalories" binding:"required"`
	Goal           string   `json:"goal"`
	Preference     string   `json:"preference"`
	Vegetarian     bool     `json:"vegetarian"`
	Vegan          bool     `json:"vegan"`
	Allergies      []string `json:"allergies"`
	ExcludeIDs     []string `json:"excludeIds"`

	// GenerativeAllowed is set by the entitlement layer upstream.
	GenerativeAllowed bool `json:"generativeAllowed"`
}

// SuggestMeal returns one suggestion for a meal slot
func (h *Handler) SuggestMeal(c *gin.Context) {
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mealType := domain.MealType(req.MealType)
	if !mealType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown meal type: " + req.MealType})
		return
	}

	// Derive macro targets from the implied daily total so the scorer has
	// something to aim at even when the caller only sends calories.
	goal := domain.Goal(req.Goal)
	dailyCalories := req.TargetCalories / usecase.MealCalorieRatio(mealType)
	targets := usecase.CalculateMealMacroTargets(usecase.DailyMacrosForCalories(dailyCalories), mealType, goal)

	excludeIDs := make(map[string]bool, len(req.ExcludeIDs))
	for _, id := range req.ExcludeIDs {
		excludeIDs[id] = true
	}

	mc := domain.MealContext{
		Slot: domain.MealSlot{
			MealType:       mealType,
			TargetCalories: req.TargetCalories,
		},
		Goal:              goal,
		Targets:           targets,
		Preference:        domain.SourcePreference(req.Preference),
		Vegetarian:        req.Vegetarian,
		Vegan:             req.Vegan,
		Allergies:         req.Allergies,
		ExcludeIDs:        excludeIDs,
		GenerativeAllowed: req.GenerativeAllowed,
	}

	meal, err := h.engine.GetMeal(c.Request.Context(), &mc)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidTarget) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if meal == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "no suggestion available",
			"reasons": mc.Reasons,
		})
		return
	}

	c.JSON(http.StatusOK, meal)
}

// PlanRequest is the payload for a multi-day generation run.
type PlanRequest struct {
	DailyCalories     float64  `json:"dailyCalories" binding:"required"`
	Days              int      `json:"days" binding:"required"`
	Goal              string   `json:"goal"`
	Preference        string   `json:"preference"`
	Vegetarian        bool     `json:"vegetarian"`
	Vegan             bool     `json:"vegan"`
	Allergies         []string `json:"allergies"`
	CheatDay          *int     `json:"cheatDay"`
	GenerativeAllowed bool     `json:"generativeAllowed"`
}

// GeneratePlan fills every slot of a multi-day plan
func (h *Handler) GeneratePlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cheatDay := -1
	if req.CheatDay != nil {
		cheatDay = *req.CheatDay
	}

	result, err := h.engine.GeneratePlan(c.Request.Context(), usecase.PlanRequest{
		DailyCalories:     req.DailyCalories,
		Days:              req.Days,
		Goal:              domain.Goal(req.Goal),
		Preference:        domain.SourcePreference(req.Preference),
		Vegetarian:        req.Vegetarian,
		Vegan:             req.Vegan,
		Allergies:         req.Allergies,
		CheatDay:          cheatDay,
		GenerativeAllowed: req.GenerativeAllowed,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Cancellation still carries partial progress worth returning.
		if result != nil && result.SlotsFilled > 0 {
			c.JSON(http.StatusOK, result)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ComposeRequest is the payload for a multi-component meal.
type ComposeRequest struct {
	MealType       string  `json:"mealType" binding:"required"`
	TargetCalories float64 `json:"targetCalories" binding:"required"`
}

// ComposeMeal assembles a meal from role-tagged components
func (h *Handler) ComposeMeal(c *gin.Context) {
	var req ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	composed, err := h.engine.ComposeMeal(c.Request.Context(), domain.MealType(req.MealType), req.TargetCalories)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidTarget) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if composed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no composition within budget"})
		return
	}

	c.JSON(http.StatusOK, composed)
}

// ScoreRequest is a per-100g nutrition profile to grade.
type ScoreRequest struct {
	Nutrition domain.NutritionProfile `json:"nutrition" binding:"required"`
}

// ScoreNutrition grades a per-100g nutrition profile
func (h *Handler) ScoreNutrition(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score, grade := h.engine.ScoreNutrition(req.Nutrition)
	c.JSON(http.StatusOK, gin.H{
		"score": score,
		"grade": grade,
	})
}
