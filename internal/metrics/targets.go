package metrics

import (
	"time"

	"github.com/saadjs/lifelog/internal/model"
)

// activityMultipliers maps each activity level to its TDEE multiplier.
var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:        1.2,
	model.ActivityLightlyActive:    1.375,
	model.ActivityModeratelyActive: 1.55,
	model.ActivityVeryActive:       1.725,
	model.ActivityExtraActive:      1.9,
}

// goalAdjustments is the kcal offset applied to maintenance per goal.
var goalAdjustments = map[model.GoalType]float64{
	model.GoalBulk:     300,
	model.GoalMaintain: 0,
	model.GoalCut:      -300,
}

const (
	proteinGramsPerKg = 1.8
	fatCalorieShare   = 0.25

	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

type Targets struct {
	BMR                 int `json:"bmr"`
	MaintenanceCalories int `json:"maintenance_calories"`
	TargetCalories      int `json:"target_calories"`
	TargetProtein       int `json:"target_protein"`
	TargetCarbs         int `json:"target_carbs"`
	TargetFats          int `json:"target_fats"`
}

func ActivityMultiplier(level model.ActivityLevel) (float64, bool) {
	m, ok := activityMultipliers[level]
	return m, ok
}

func GoalAdjustment(goal model.GoalType) (float64, bool) {
	adj, ok := goalAdjustments[goal]
	return adj, ok
}

// BMR is the unrounded Mifflin-St Jeor estimate.
func BMR(p model.Profile) float64 {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == model.GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

// ComputeNutritionTargets derives calorie and macro targets from a profile.
// Target calories are rounded once from the raw maintenance value; carbs take
// the remainder and may come out negative for extreme profiles.
func ComputeNutritionTargets(p model.Profile) Targets {
	bmr := BMR(p)
	maintenance := bmr * activityMultipliers[p.ActivityLevel]

	calories := roundInt(maintenance + goalAdjustments[p.GoalType])
	protein := roundInt(proteinGramsPerKg * p.WeightKg)
	fats := roundInt(float64(calories) * fatCalorieShare / KcalPerGramFat)
	remaining := calories - protein*KcalPerGramProtein - fats*KcalPerGramFat
	carbs := roundInt(float64(remaining) / KcalPerGramCarbs)

	return Targets{
		BMR:                 roundInt(bmr),
		MaintenanceCalories: roundInt(maintenance),
		TargetCalories:      calories,
		TargetProtein:       protein,
		TargetCarbs:         carbs,
		TargetFats:          fats,
	}
}

func NewNutritionTarget(p model.Profile, now time.Time) model.NutritionTarget {
	t := ComputeNutritionTargets(p)
	return model.NutritionTarget{
		GoalType:       p.GoalType,
		TargetCalories: t.TargetCalories,
		TargetProtein:  t.TargetProtein,
		TargetCarbs:    t.TargetCarbs,
		TargetFats:     t.TargetFats,
		HeightCm:       p.HeightCm,
		WeightKg:       p.WeightKg,
		Age:            p.Age,
		Gender:         p.Gender,
		ActivityLevel:  p.ActivityLevel,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
