package db_test

import (
	"path/filepath"
	"testing"

	"github.com/saadjs/lifelog/internal/db"
)

func TestApplyMigrationsIdempotentAndSeedsDefaults(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "lifelog.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 3 {
		t.Fatalf("expected 3 migration versions, got %d", migrationCount)
	}

	for _, table := range []string{"profile", "meal_logs", "meal_items", "weekly_goals", "foods", "app_config"} {
		var n int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n); err != nil {
			t.Fatalf("check %s table: %v", table, err)
		}
		if n != 1 {
			t.Fatalf("expected %s table to exist", table)
		}
	}

	var goalRows, calorieTarget int
	if err := sqldb.QueryRow(`SELECT COUNT(1), MAX(calorie_target) FROM weekly_goals`).Scan(&goalRows, &calorieTarget); err != nil {
		t.Fatalf("read weekly goal defaults: %v", err)
	}
	if goalRows != 1 || calorieTarget != 2000 {
		t.Fatalf("expected one seeded weekly goal row with 2000 kcal, got rows=%d kcal=%d", goalRows, calorieTarget)
	}
}

func TestMealItemsCascadeOnLogDelete(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "lifelog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if _, err := sqldb.Exec(`INSERT INTO meal_logs(id, date, meal_type, created_at, updated_at) VALUES('m1', '2026-02-10', 'LUNCH', '2026-02-10T12:00:00Z', '2026-02-10T12:00:00Z')`); err != nil {
		t.Fatalf("insert meal log: %v", err)
	}
	if _, err := sqldb.Exec(`INSERT INTO meal_items(meal_log_id, position, food_name, quantity_g) VALUES('m1', 0, 'rice', 150)`); err != nil {
		t.Fatalf("insert meal item: %v", err)
	}
	if _, err := sqldb.Exec(`DELETE FROM meal_logs WHERE id = 'm1'`); err != nil {
		t.Fatalf("delete meal log: %v", err)
	}
	var n int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM meal_items`).Scan(&n); err != nil {
		t.Fatalf("count meal items: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected meal items to cascade, got %d rows", n)
	}
}
