package metrics_test

import "github.com/saadjs/lifelog/internal/model"

func mealLog(date string, calories, protein, carbs, fats float64) model.MealLogEntry {
	return model.MealLogEntry{
		Date:          date,
		MealType:      model.MealLunch,
		TotalCalories: calories,
		TotalProtein:  protein,
		TotalCarbs:    carbs,
		TotalFats:     fats,
	}
}
