package metrics

import (
	"math"

	"github.com/saadjs/lifelog/internal/model"
)

const reconcileTolerance = 0.05

type MealTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// ScaleFood turns per-100g values into a meal item for the given grams.
func ScaleFood(food model.Food, grams float64) model.MealItem {
	factor := grams / 100
	return model.MealItem{
		FoodID:    food.ID,
		FoodName:  food.Name,
		QuantityG: grams,
		Calories:  roundHalfUp(food.Calories100g * factor),
		Protein:   round1(food.Protein100g * factor),
		Carbs:     round1(food.Carbs100g * factor),
		Fats:      round1(food.Fats100g * factor),
	}
}

// BuildMealTotals computes the totals stored alongside a meal log at save time.
func BuildMealTotals(items []model.MealItem) MealTotals {
	var sum MealTotals
	for _, it := range items {
		sum.Calories += it.Calories
		sum.Protein += it.Protein
		sum.Carbs += it.Carbs
		sum.Fats += it.Fats
	}
	return MealTotals{
		Calories: roundHalfUp(sum.Calories),
		Protein:  round1(sum.Protein),
		Carbs:    round1(sum.Carbs),
		Fats:     round1(sum.Fats),
	}
}

type Discrepancy struct {
	Field    string  `json:"field"`
	Stored   float64 `json:"stored"`
	Computed float64 `json:"computed"`
}

// ReconcileMealLog reports stored totals that disagree with the item sums.
// Aggregation never uses the result; logs without items have nothing to check.
func ReconcileMealLog(entry model.MealLogEntry) []Discrepancy {
	if len(entry.Items) == 0 {
		return nil
	}
	computed := BuildMealTotals(entry.Items)
	checks := []Discrepancy{
		{Field: "calories", Stored: entry.TotalCalories, Computed: computed.Calories},
		{Field: "protein", Stored: entry.TotalProtein, Computed: computed.Protein},
		{Field: "carbs", Stored: entry.TotalCarbs, Computed: computed.Carbs},
		{Field: "fats", Stored: entry.TotalFats, Computed: computed.Fats},
	}
	var out []Discrepancy
	for _, c := range checks {
		if math.Abs(c.Stored-c.Computed) > reconcileTolerance {
			out = append(out, c)
		}
	}
	return out
}
