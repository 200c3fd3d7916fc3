package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/model"
)

const exportFormatVersion = 1

type ExportData struct {
	Version     int                      `json:"version"`
	ExportedAt  time.Time                `json:"exported_at"`
	Profile     *model.NutritionTarget   `json:"profile,omitempty"`
	WeeklyGoals model.WeeklyGoalDefaults `json:"weekly_goals"`
	Foods       []model.Food             `json:"foods"`
	MealLogs    []model.MealLogEntry     `json:"meal_logs"`
	Config      map[string]string        `json:"config"`
}

type ImportMode string

const (
	ImportModeFail    ImportMode = "fail"
	ImportModeSkip    ImportMode = "skip"
	ImportModeReplace ImportMode = "replace"
)

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Inserted  int      `json:"inserted"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Conflicts int      `json:"conflicts"`
	Warnings  []string `json:"warnings,omitempty"`
}

func ParseImportMode(value string) (ImportMode, error) {
	mode := ImportMode(normalizeName(value))
	switch mode {
	case "":
		return ImportModeFail, nil
	case ImportModeFail, ImportModeSkip, ImportModeReplace:
		return mode, nil
	}
	return "", fmt.Errorf("invalid import mode %q (expected fail, skip or replace)", value)
}

func ExportSnapshot(db *sql.DB) (*ExportData, error) {
	snap, err := LoadSnapshot(db)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	cfg, err := ListConfig(db)
	if err != nil {
		return nil, fmt.Errorf("export config: %w", err)
	}
	return &ExportData{
		Version:     exportFormatVersion,
		ExportedAt:  time.Now().UTC(),
		Profile:     snap.Target,
		WeeklyGoals: snap.Defaults,
		Foods:       snap.Foods,
		MealLogs:    snap.Logs,
		Config:      cfg,
	}, nil
}

// ValidateExportData reports every invalid record at once.
func ValidateExportData(data *ExportData) error {
	if data == nil {
		return fmt.Errorf("import data is empty")
	}
	var errs error
	if data.Version > exportFormatVersion {
		errs = multierr.Append(errs, fmt.Errorf("unsupported export version %d", data.Version))
	}
	if data.Profile != nil {
		_, err := BuildProfile(ProfileInput{
			HeightCm:      data.Profile.HeightCm,
			WeightKg:      data.Profile.WeightKg,
			Age:           data.Profile.Age,
			Gender:        string(data.Profile.Gender),
			ActivityLevel: string(data.Profile.ActivityLevel),
			GoalType:      string(data.Profile.GoalType),
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("profile: %w", err))
		}
	}
	seenFoods := map[string]bool{}
	for i, f := range data.Foods {
		err := validateFoodInput(FoodInput{
			Name:         f.Name,
			Category:     f.Category,
			Calories100g: f.Calories100g,
			Protein100g:  f.Protein100g,
			Carbs100g:    f.Carbs100g,
			Fats100g:     f.Fats100g,
			ServingSize:  f.ServingSize,
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("food %d (%s): %w", i+1, f.Name, err))
			continue
		}
		norm := normalizeName(f.Name)
		if seenFoods[norm] {
			errs = multierr.Append(errs, fmt.Errorf("food %d (%s): duplicate name", i+1, f.Name))
		}
		seenFoods[norm] = true
	}
	seenLogs := map[string]bool{}
	for i, l := range data.MealLogs {
		if strings.TrimSpace(l.ID) == "" {
			errs = multierr.Append(errs, fmt.Errorf("meal log %d: id is required", i+1))
		} else if seenLogs[l.ID] {
			errs = multierr.Append(errs, fmt.Errorf("meal log %d: duplicate id %s", i+1, l.ID))
		}
		seenLogs[l.ID] = true
		if strings.TrimSpace(l.Date) == "" {
			errs = multierr.Append(errs, fmt.Errorf("meal log %d: date is required", i+1))
		} else if _, err := normalizeMealDate(l.Date, time.Time{}); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("meal log %d: %w", i+1, err))
		}
		if _, err := ParseMealType(string(l.MealType)); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("meal log %d: %w", i+1, err))
		}
	}
	for key, value := range data.Config {
		if err := validateConfigValue(key, value); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("config %s: %w", key, err))
		}
	}
	return errs
}

// ImportSnapshot applies an export document in a single transaction.
func ImportSnapshot(db *sql.DB, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	mode := opts.Mode
	if mode == "" {
		mode = ImportModeFail
	}
	if err := ValidateExportData(data); err != nil {
		return report, fmt.Errorf("validate import (%d problems): %w", len(multierr.Errors(err)), err)
	}
	log.Debugf("importing %d foods and %d meal logs (mode=%s, dry_run=%t)", len(data.Foods), len(data.MealLogs), mode, opts.DryRun)

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if mode == ImportModeReplace {
		if err := clearUserData(tx); err != nil {
			return report, err
		}
	}

	if data.Profile != nil {
		if err := importProfile(tx, *data.Profile, mode, &report); err != nil {
			return report, err
		}
	}
	if data.WeeklyGoals != (model.WeeklyGoalDefaults{}) {
		if err := importWeeklyGoals(tx, data.WeeklyGoals, mode, &report); err != nil {
			return report, err
		}
	}

	for _, f := range data.Foods {
		var existingID string
		err := tx.QueryRow(`SELECT id FROM foods WHERE name_norm = ? OR id = ?`, normalizeName(f.Name), f.ID).Scan(&existingID)
		if err != nil && err != sql.ErrNoRows {
			return report, fmt.Errorf("find food %q: %w", f.Name, err)
		}
		if err == nil {
			if mode == ImportModeFail {
				report.Conflicts++
				return report, fmt.Errorf("food %q already exists (use --mode skip or replace)", f.Name)
			}
			report.Skipped++
			continue
		}
		if strings.TrimSpace(f.ID) == "" {
			f.ID = uuid.NewString()
		}
		if f.CreatedAt.IsZero() {
			f.CreatedAt = time.Now().UTC()
		}
		f.Name = strings.TrimSpace(f.Name)
		f.Category = normalizeName(f.Category)
		if err := insertFood(tx, f); err != nil {
			return report, err
		}
		report.Inserted++
	}

	for _, l := range data.MealLogs {
		var exists int
		err := tx.QueryRow(`SELECT 1 FROM meal_logs WHERE id = ?`, l.ID).Scan(&exists)
		if err != nil && err != sql.ErrNoRows {
			return report, fmt.Errorf("find meal log %s: %w", l.ID, err)
		}
		if err == nil {
			if mode == ImportModeFail {
				report.Conflicts++
				return report, fmt.Errorf("meal log %s already exists (use --mode skip or replace)", l.ID)
			}
			report.Skipped++
			continue
		}
		l.MealType, _ = ParseMealType(string(l.MealType))
		l.Date = strings.TrimSpace(l.Date)
		if l.CreatedAt.IsZero() {
			l.CreatedAt = time.Now().UTC()
		}
		if l.UpdatedAt.IsZero() {
			l.UpdatedAt = l.CreatedAt
		}
		if l.Items == nil {
			l.Items = []model.MealItem{}
		}
		if n := len(metrics.ReconcileMealLog(l)); n > 0 {
			report.Warnings = append(report.Warnings, fmt.Sprintf("meal log %s: stored totals disagree with items in %d fields", l.ID, n))
		}
		if err := insertMealLog(tx, l); err != nil {
			return report, err
		}
		report.Inserted++
	}

	for key, value := range data.Config {
		if err := importConfigValue(tx, key, value, mode, &report); err != nil {
			return report, err
		}
	}

	if opts.DryRun {
		log.Debug("dry run import, rolling back")
		return report, nil
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit import: %w", err)
	}
	return report, nil
}

func importProfile(tx *sql.Tx, t model.NutritionTarget, mode ImportMode, report *ImportReport) error {
	var exists int
	err := tx.QueryRow(`SELECT 1 FROM profile WHERE id = 1`).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("find profile: %w", err)
	}
	if err == nil {
		if mode == ImportModeFail {
			report.Conflicts++
			return fmt.Errorf("profile already exists (use --mode skip or replace)")
		}
		report.Skipped++
		return nil
	}
	p, err := BuildProfile(ProfileInput{
		HeightCm:      t.HeightCm,
		WeightKg:      t.WeightKg,
		Age:           t.Age,
		Gender:        string(t.Gender),
		ActivityLevel: string(t.ActivityLevel),
		GoalType:      string(t.GoalType),
	})
	if err != nil {
		return fmt.Errorf("import profile: %w", err)
	}
	// Stored targets in the file are ignored; they are always derived from the profile.
	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	target := metrics.NewNutritionTarget(p, created)
	if target.TargetCalories != t.TargetCalories || target.TargetProtein != t.TargetProtein ||
		target.TargetCarbs != t.TargetCarbs || target.TargetFats != t.TargetFats {
		report.Warnings = append(report.Warnings, fmt.Sprintf("profile: targets recalculated (%d kcal instead of %d)", target.TargetCalories, t.TargetCalories))
	}
	if !t.UpdatedAt.IsZero() {
		target.UpdatedAt = t.UpdatedAt
	}
	if _, err := tx.Exec(`
INSERT INTO profile(id, height_cm, weight_kg, age, gender, activity_level, goal_type, target_calories, target_protein, target_carbs, target_fats, created_at, updated_at)
VALUES(1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, target.HeightCm, target.WeightKg, target.Age, string(target.Gender), string(target.ActivityLevel), string(target.GoalType),
		target.TargetCalories, target.TargetProtein, target.TargetCarbs, target.TargetFats,
		formatTimestamp(target.CreatedAt), formatTimestamp(target.UpdatedAt)); err != nil {
		return fmt.Errorf("import profile: %w", err)
	}
	report.Inserted++
	return nil
}

// importWeeklyGoals treats goals that still match the built-in defaults as unset,
// so skip mode only keeps goals the user has actually changed.
func importWeeklyGoals(tx *sql.Tx, goals model.WeeklyGoalDefaults, mode ImportMode, report *ImportReport) error {
	stored, err := readWeeklyGoals(tx)
	if err != nil {
		return err
	}
	if stored == goals {
		return nil
	}
	if mode == ImportModeSkip && stored != model.DefaultWeeklyGoals() {
		report.Skipped++
		return nil
	}
	if err := saveWeeklyGoals(tx, goals); err != nil {
		return err
	}
	report.Updated++
	return nil
}

func importConfigValue(tx *sql.Tx, key, value string, mode ImportMode, report *ImportReport) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)
	var stored string
	err := tx.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&stored)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("find config %q: %w", key, err)
	}
	if err == nil {
		if stored == value {
			return nil
		}
		if mode == ImportModeSkip {
			report.Skipped++
			return nil
		}
	}
	if _, err := tx.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value); err != nil {
		return fmt.Errorf("import config %q: %w", key, err)
	}
	report.Updated++
	return nil
}

func clearUserData(tx *sql.Tx) error {
	for _, table := range []string{"meal_items", "meal_logs", "foods", "profile", "app_config"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
