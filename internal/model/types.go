package model

import "time"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "SEDENTARY"
	ActivityLightlyActive    ActivityLevel = "LIGHTLY_ACTIVE"
	ActivityModeratelyActive ActivityLevel = "MODERATELY_ACTIVE"
	ActivityVeryActive       ActivityLevel = "VERY_ACTIVE"
	ActivityExtraActive      ActivityLevel = "EXTRA_ACTIVE"
)

type GoalType string

const (
	GoalBulk     GoalType = "BULK"
	GoalMaintain GoalType = "MAINTAIN"
	GoalCut      GoalType = "CUT"
)

type MealType string

const (
	MealBreakfast MealType = "BREAKFAST"
	MealLunch     MealType = "LUNCH"
	MealDinner    MealType = "DINNER"
	MealSnack     MealType = "SNACK"
)

// Profile is the body data a nutrition target is derived from.
type Profile struct {
	HeightCm      float64       `json:"height_cm"`
	WeightKg      float64       `json:"weight_kg"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	GoalType      GoalType      `json:"goal_type"`
}

// NutritionTarget is regenerated wholesale whenever the profile changes.
type NutritionTarget struct {
	GoalType       GoalType      `json:"goal_type"`
	TargetCalories int           `json:"target_calories"`
	TargetProtein  int           `json:"target_protein"`
	TargetCarbs    int           `json:"target_carbs"`
	TargetFats     int           `json:"target_fats"`
	HeightCm       float64       `json:"height_cm"`
	WeightKg       float64       `json:"weight_kg"`
	Age            int           `json:"age"`
	Gender         Gender        `json:"gender"`
	ActivityLevel  ActivityLevel `json:"activity_level"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (t NutritionTarget) Profile() Profile {
	return Profile{
		HeightCm:      t.HeightCm,
		WeightKg:      t.WeightKg,
		Age:           t.Age,
		Gender:        t.Gender,
		ActivityLevel: t.ActivityLevel,
		GoalType:      t.GoalType,
	}
}

// MealItem macros are already scaled to QuantityG.
type MealItem struct {
	FoodID    string  `json:"food_id,omitempty"`
	FoodName  string  `json:"food_name"`
	QuantityG float64 `json:"quantity_g"`
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fats      float64 `json:"fats"`
}

type MealLogEntry struct {
	ID            string     `json:"id"`
	Date          string     `json:"date"`
	MealType      MealType   `json:"meal_type"`
	Items         []MealItem `json:"items"`
	TotalCalories float64    `json:"total_calories"`
	TotalProtein  float64    `json:"total_protein"`
	TotalCarbs    float64    `json:"total_carbs"`
	TotalFats     float64    `json:"total_fats"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// WeeklyGoalDefaults are the fallback targets used when no nutrition target exists.
type WeeklyGoalDefaults struct {
	CalorieTarget int `json:"calorie_target"`
	ProteinTarget int `json:"protein_target"`
	CarbsTarget   int `json:"carbs_target"`
	FatsTarget    int `json:"fats_target"`
	StudyHours    int `json:"study_hours"`
	WorkoutDays   int `json:"workout_days"`
	TasksTarget   int `json:"tasks_target"`
}

func DefaultWeeklyGoals() WeeklyGoalDefaults {
	return WeeklyGoalDefaults{
		CalorieTarget: 2000,
		ProteinTarget: 120,
		CarbsTarget:   250,
		FatsTarget:    65,
		StudyHours:    20,
		WorkoutDays:   5,
		TasksTarget:   15,
	}
}

type Food struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Calories100g float64   `json:"calories_100g"`
	Protein100g  float64   `json:"protein_100g"`
	Carbs100g    float64   `json:"carbs_100g"`
	Fats100g     float64   `json:"fats_100g"`
	ServingSize  *float64  `json:"serving_size,omitempty"`
	ServingUnit  string    `json:"serving_unit,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type DailyTotals struct {
	Date     string  `json:"date"`
	Label    string  `json:"label,omitempty"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fats     float64 `json:"fats_g"`
}

type WeeklyAverage struct {
	Calories   int `json:"calories"`
	Protein    int `json:"protein_g"`
	Carbs      int `json:"carbs_g"`
	Fats       int `json:"fats_g"`
	DaysLogged int `json:"days_logged"`
}
