package db

import (
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/saadjs/lifelog/internal/model"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS profile (
  id INTEGER PRIMARY KEY CHECK(id = 1),
  height_cm REAL NOT NULL CHECK(height_cm > 0),
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  age INTEGER NOT NULL CHECK(age > 0),
  gender TEXT NOT NULL CHECK(gender IN ('MALE', 'FEMALE')),
  activity_level TEXT NOT NULL,
  goal_type TEXT NOT NULL CHECK(goal_type IN ('BULK', 'MAINTAIN', 'CUT')),
  target_calories INTEGER NOT NULL,
  target_protein INTEGER NOT NULL,
  target_carbs INTEGER NOT NULL,
  target_fats INTEGER NOT NULL,
  created_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS meal_logs (
  id TEXT PRIMARY KEY,
  date TEXT NOT NULL,
  meal_type TEXT NOT NULL CHECK(meal_type IN ('BREAKFAST', 'LUNCH', 'DINNER', 'SNACK')),
  total_calories REAL NOT NULL DEFAULT 0,
  total_protein REAL NOT NULL DEFAULT 0,
  total_carbs REAL NOT NULL DEFAULT 0,
  total_fats REAL NOT NULL DEFAULT 0,
  notes TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meal_logs_date ON meal_logs(date);

CREATE TABLE IF NOT EXISTS meal_items (
  meal_log_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  food_id TEXT NOT NULL DEFAULT '',
  food_name TEXT NOT NULL,
  quantity_g REAL NOT NULL CHECK(quantity_g >= 0),
  calories REAL NOT NULL DEFAULT 0,
  protein REAL NOT NULL DEFAULT 0,
  carbs REAL NOT NULL DEFAULT 0,
  fats REAL NOT NULL DEFAULT 0,
  PRIMARY KEY(meal_log_id, position),
  FOREIGN KEY(meal_log_id) REFERENCES meal_logs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS weekly_goals (
  id INTEGER PRIMARY KEY CHECK(id = 1),
  calorie_target INTEGER NOT NULL,
  protein_target INTEGER NOT NULL,
  carbs_target INTEGER NOT NULL,
  fats_target INTEGER NOT NULL,
  study_hours INTEGER NOT NULL,
  workout_days INTEGER NOT NULL,
  tasks_target INTEGER NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 2,
		name:    "foods",
		sql: `
CREATE TABLE IF NOT EXISTS foods (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  name_norm TEXT NOT NULL UNIQUE,
  category TEXT NOT NULL,
  calories_100g REAL NOT NULL CHECK(calories_100g >= 0),
  protein_100g REAL NOT NULL CHECK(protein_100g >= 0),
  carbs_100g REAL NOT NULL CHECK(carbs_100g >= 0),
  fats_100g REAL NOT NULL CHECK(fats_100g >= 0),
  serving_size REAL CHECK(serving_size > 0),
  serving_unit TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL
);
`,
	},
	{
		version: 3,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		log.Debugf("applying migration %d (%s)", m.version, m.name)
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	d := model.DefaultWeeklyGoals()
	if _, err := db.Exec(`
INSERT OR IGNORE INTO weekly_goals(id, calorie_target, protein_target, carbs_target, fats_target, study_hours, workout_days, tasks_target)
VALUES(1, ?, ?, ?, ?, ?, ?, ?)
`, d.CalorieTarget, d.ProteinTarget, d.CarbsTarget, d.FatsTarget, d.StudyHours, d.WorkoutDays, d.TasksTarget); err != nil {
		return fmt.Errorf("seed weekly goal defaults: %w", err)
	}
	return nil
}
