package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/model"
)

func TestCalculateProgress(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, metrics.CalculateProgress(50, 0))
	assert.Equal(t, 25, metrics.CalculateProgress(50, 200))
	assert.Equal(t, 67, metrics.CalculateProgress(2, 3))
	assert.Equal(t, 100, metrics.CalculateProgress(300, 200))
}

func TestMacroPercentages(t *testing.T) {
	t.Parallel()
	assert.Equal(t, metrics.MacroShare{}, metrics.MacroPercentages(0, 0, 0))
	assert.Equal(t, metrics.MacroShare{ProteinPct: 24, CarbsPct: 48, FatsPct: 27}, metrics.MacroPercentages(100, 200, 50))
}

func TestResolveTargetsFallsBackPerField(t *testing.T) {
	t.Parallel()
	defaults := model.DefaultWeeklyGoals()

	none := metrics.ResolveTargets(nil, defaults)
	assert.Equal(t, metrics.TargetSet{Calories: 2000, Protein: 120, Carbs: 250, Fats: 65}, none)

	derived := metrics.ResolveTargets(&model.NutritionTarget{TargetCalories: 2594, TargetProtein: 126, TargetFats: 72}, defaults)
	assert.Equal(t, metrics.TargetSet{Calories: 2594, Protein: 126, Carbs: 250, Fats: 72, Derived: true}, derived)
}

func TestDailyProgress(t *testing.T) {
	t.Parallel()
	day := model.DailyTotals{Calories: 1000, Protein: 60, Carbs: 300, Fats: 0}
	got := metrics.DailyProgress(day, metrics.TargetSet{Calories: 2000, Protein: 120, Carbs: 250, Fats: 0})
	assert.Equal(t, metrics.Progress{Calories: 50, Protein: 50, Carbs: 100, Fats: 0}, got)
}
