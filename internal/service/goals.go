package service

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/lifelog/internal/model"
)

// WeeklyGoalsPatch leaves nil fields untouched.
type WeeklyGoalsPatch struct {
	CalorieTarget *int
	ProteinTarget *int
	CarbsTarget   *int
	FatsTarget    *int
	StudyHours    *int
	WorkoutDays   *int
	TasksTarget   *int
}

func WeeklyGoals(db *sql.DB) (model.WeeklyGoalDefaults, error) {
	return readWeeklyGoals(db)
}

type rowQueryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

func readWeeklyGoals(q rowQueryer) (model.WeeklyGoalDefaults, error) {
	var g model.WeeklyGoalDefaults
	err := q.QueryRow(`
SELECT calorie_target, protein_target, carbs_target, fats_target, study_hours, workout_days, tasks_target
FROM weekly_goals
WHERE id = 1
`).Scan(&g.CalorieTarget, &g.ProteinTarget, &g.CarbsTarget, &g.FatsTarget, &g.StudyHours, &g.WorkoutDays, &g.TasksTarget)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.DefaultWeeklyGoals(), nil
		}
		return model.WeeklyGoalDefaults{}, fmt.Errorf("read weekly goals: %w", err)
	}
	return g, nil
}

func UpdateWeeklyGoals(db *sql.DB, patch WeeklyGoalsPatch) (model.WeeklyGoalDefaults, error) {
	g, err := WeeklyGoals(db)
	if err != nil {
		return model.WeeklyGoalDefaults{}, err
	}
	fields := []struct {
		name  string
		value *int
		dst   *int
	}{
		{"calorie target", patch.CalorieTarget, &g.CalorieTarget},
		{"protein target", patch.ProteinTarget, &g.ProteinTarget},
		{"carbs target", patch.CarbsTarget, &g.CarbsTarget},
		{"fats target", patch.FatsTarget, &g.FatsTarget},
		{"study hours", patch.StudyHours, &g.StudyHours},
		{"workout days", patch.WorkoutDays, &g.WorkoutDays},
		{"tasks target", patch.TasksTarget, &g.TasksTarget},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := validateNonNegativeInt(f.name, *f.value); err != nil {
			return model.WeeklyGoalDefaults{}, err
		}
		*f.dst = *f.value
	}
	if g.WorkoutDays > 7 {
		return model.WeeklyGoalDefaults{}, fmt.Errorf("workout days must be <= 7")
	}
	if err := saveWeeklyGoals(db, g); err != nil {
		return model.WeeklyGoalDefaults{}, err
	}
	return g, nil
}

func saveWeeklyGoals(ex execer, g model.WeeklyGoalDefaults) error {
	_, err := ex.Exec(`
INSERT INTO weekly_goals(id, calorie_target, protein_target, carbs_target, fats_target, study_hours, workout_days, tasks_target, updated_at)
VALUES(1, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  calorie_target=excluded.calorie_target,
  protein_target=excluded.protein_target,
  carbs_target=excluded.carbs_target,
  fats_target=excluded.fats_target,
  study_hours=excluded.study_hours,
  workout_days=excluded.workout_days,
  tasks_target=excluded.tasks_target,
  updated_at=excluded.updated_at
`, g.CalorieTarget, g.ProteinTarget, g.CarbsTarget, g.FatsTarget, g.StudyHours, g.WorkoutDays, g.TasksTarget)
	if err != nil {
		return fmt.Errorf("save weekly goals: %w", err)
	}
	return nil
}
