package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/model"
)

func TestScaleFood(t *testing.T) {
	t.Parallel()
	paneer := model.Food{ID: "f1", Name: "Paneer", Calories100g: 265, Protein100g: 18.3, Carbs100g: 1.2, Fats100g: 20.8}

	got := metrics.ScaleFood(paneer, 150)

	assert.Equal(t, "f1", got.FoodID)
	assert.Equal(t, 150.0, got.QuantityG)
	assert.Equal(t, 398.0, got.Calories)
	assert.InDelta(t, 27.5, got.Protein, 1e-9)
	assert.InDelta(t, 1.8, got.Carbs, 1e-9)
	assert.InDelta(t, 31.2, got.Fats, 1e-9)
}

func TestBuildMealTotals(t *testing.T) {
	t.Parallel()
	items := []model.MealItem{
		{FoodName: "Roti", Calories: 240, Protein: 7.8, Carbs: 43.2, Fats: 3.4},
		{FoodName: "Dal", Calories: 116.4, Protein: 9, Carbs: 20.1, Fats: 0.4},
	}
	got := metrics.BuildMealTotals(items)
	assert.Equal(t, 356.0, got.Calories)
	assert.InDelta(t, 16.8, got.Protein, 1e-9)
	assert.InDelta(t, 63.3, got.Carbs, 1e-9)
	assert.InDelta(t, 3.8, got.Fats, 1e-9)
}

func TestReconcileMealLog(t *testing.T) {
	t.Parallel()
	items := []model.MealItem{
		{FoodName: "Roti", Calories: 240, Protein: 7.8, Carbs: 43.2, Fats: 3.4},
		{FoodName: "Dal", Calories: 116.4, Protein: 9, Carbs: 20.1, Fats: 0.4},
	}
	clean := model.MealLogEntry{Date: "2026-02-10", Items: items, TotalCalories: 356, TotalProtein: 16.8, TotalCarbs: 63.3, TotalFats: 3.8}
	assert.Empty(t, metrics.ReconcileMealLog(clean))

	stale := clean
	stale.TotalCalories = 500
	got := metrics.ReconcileMealLog(stale)
	require.Len(t, got, 1)
	assert.Equal(t, metrics.Discrepancy{Field: "calories", Stored: 500, Computed: 356}, got[0])

	manual := model.MealLogEntry{Date: "2026-02-10", TotalCalories: 800}
	assert.Nil(t, metrics.ReconcileMealLog(manual))
}
