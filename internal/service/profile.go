package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/model"
)

type ProfileInput struct {
	HeightCm      float64
	WeightKg      float64
	Age           int
	Gender        string
	ActivityLevel string
	GoalType      string
}

func ParseGender(value string) (model.Gender, error) {
	g := model.Gender(normalizeEnum(value))
	switch g {
	case model.GenderMale, model.GenderFemale:
		return g, nil
	}
	return "", fmt.Errorf("invalid gender %q (expected male or female)", value)
}

func ParseActivityLevel(value string) (model.ActivityLevel, error) {
	level := model.ActivityLevel(normalizeEnum(value))
	if _, ok := metrics.ActivityMultiplier(level); !ok {
		return "", fmt.Errorf("invalid activity level %q", value)
	}
	return level, nil
}

func ParseGoalType(value string) (model.GoalType, error) {
	goal := model.GoalType(normalizeEnum(value))
	if _, ok := metrics.GoalAdjustment(goal); !ok {
		return "", fmt.Errorf("invalid goal type %q (expected bulk, maintain or cut)", value)
	}
	return goal, nil
}

// BuildProfile validates raw input into an engine profile.
func BuildProfile(in ProfileInput) (model.Profile, error) {
	if err := validatePositiveFloat("height", in.HeightCm); err != nil {
		return model.Profile{}, err
	}
	if err := validatePositiveFloat("weight", in.WeightKg); err != nil {
		return model.Profile{}, err
	}
	if in.Age <= 0 {
		return model.Profile{}, fmt.Errorf("age must be > 0")
	}
	gender, err := ParseGender(in.Gender)
	if err != nil {
		return model.Profile{}, err
	}
	level, err := ParseActivityLevel(in.ActivityLevel)
	if err != nil {
		return model.Profile{}, err
	}
	goal, err := ParseGoalType(in.GoalType)
	if err != nil {
		return model.Profile{}, err
	}
	return model.Profile{
		HeightCm:      in.HeightCm,
		WeightKg:      in.WeightKg,
		Age:           in.Age,
		Gender:        gender,
		ActivityLevel: level,
		GoalType:      goal,
	}, nil
}

// SetProfile replaces the stored profile, regenerates its nutrition target and
// copies the macro targets into the weekly goal defaults.
func SetProfile(db *sql.DB, in ProfileInput) (model.NutritionTarget, error) {
	p, err := BuildProfile(in)
	if err != nil {
		return model.NutritionTarget{}, err
	}
	now := time.Now().UTC()
	target := metrics.NewNutritionTarget(p, now)

	tx, err := db.Begin()
	if err != nil {
		return model.NutritionTarget{}, fmt.Errorf("begin profile tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var created string
	err = tx.QueryRow(`SELECT created_at FROM profile WHERE id = 1`).Scan(&created)
	switch {
	case err == nil:
		target.CreatedAt = parseTimestamp(created)
	case err != sql.ErrNoRows:
		return model.NutritionTarget{}, fmt.Errorf("read existing profile: %w", err)
	}

	if _, err := tx.Exec(`
INSERT INTO profile(id, height_cm, weight_kg, age, gender, activity_level, goal_type, target_calories, target_protein, target_carbs, target_fats, created_at, updated_at)
VALUES(1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  height_cm=excluded.height_cm,
  weight_kg=excluded.weight_kg,
  age=excluded.age,
  gender=excluded.gender,
  activity_level=excluded.activity_level,
  goal_type=excluded.goal_type,
  target_calories=excluded.target_calories,
  target_protein=excluded.target_protein,
  target_carbs=excluded.target_carbs,
  target_fats=excluded.target_fats,
  updated_at=excluded.updated_at
`, target.HeightCm, target.WeightKg, target.Age, string(target.Gender), string(target.ActivityLevel), string(target.GoalType),
		target.TargetCalories, target.TargetProtein, target.TargetCarbs, target.TargetFats,
		formatTimestamp(target.CreatedAt), formatTimestamp(target.UpdatedAt)); err != nil {
		return model.NutritionTarget{}, fmt.Errorf("save profile: %w", err)
	}

	if _, err := tx.Exec(`
UPDATE weekly_goals
SET calorie_target = ?, protein_target = ?, carbs_target = ?, fats_target = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = 1
`, target.TargetCalories, target.TargetProtein, target.TargetCarbs, target.TargetFats); err != nil {
		return model.NutritionTarget{}, fmt.Errorf("sync weekly goal macros: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.NutritionTarget{}, fmt.Errorf("commit profile: %w", err)
	}
	return target, nil
}

// CurrentProfile returns nil when no profile has been set.
func CurrentProfile(db *sql.DB) (*model.NutritionTarget, error) {
	var t model.NutritionTarget
	var gender, level, goal, created, updated string
	err := db.QueryRow(`
SELECT height_cm, weight_kg, age, gender, activity_level, goal_type, target_calories, target_protein, target_carbs, target_fats, created_at, updated_at
FROM profile
WHERE id = 1
`).Scan(&t.HeightCm, &t.WeightKg, &t.Age, &gender, &level, &goal, &t.TargetCalories, &t.TargetProtein, &t.TargetCarbs, &t.TargetFats, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("read profile: %w", err)
	}
	t.Gender = model.Gender(gender)
	t.ActivityLevel = model.ActivityLevel(level)
	t.GoalType = model.GoalType(goal)
	t.CreatedAt = parseTimestamp(created)
	t.UpdatedAt = parseTimestamp(updated)
	return &t, nil
}

func ClearProfile(db *sql.DB) error {
	if _, err := db.Exec(`DELETE FROM profile`); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}
