package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saadjs/lifelog/internal/db"
	"github.com/saadjs/lifelog/internal/service"
)

func TestRunDoctorReportsAndFixesStaleTotals(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	seedFood(t, sqldb, "Rice", "grain", 130, 2.7, 28, 0.3)
	entry, err := service.CreateMealLog(sqldb, service.MealLogInput{
		Date:     "2026-02-10",
		MealType: "dinner",
		Items:    []service.MealItemInput{{FoodName: "rice", QuantityG: 200}},
	})
	if err != nil {
		t.Fatalf("create meal log: %v", err)
	}
	quickMeal(t, sqldb, "2026-02-11", "snack", 150, 2, 20, 7)

	if _, err := sqldb.Exec(`UPDATE meal_logs SET total_calories = 999 WHERE id = ?`, entry.ID); err != nil {
		t.Fatalf("corrupt totals: %v", err)
	}
	if err := service.DeleteFood(sqldb, "rice"); err != nil {
		t.Fatalf("delete food: %v", err)
	}

	report, err := service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("run doctor: %v", err)
	}
	if report.CheckedLogs != 2 || len(report.Mismatches) != 1 || report.Mismatches[0].ID != entry.ID {
		t.Fatalf("unexpected doctor report %+v", report)
	}
	if report.Mismatches[0].Discrepancies[0].Field != "calories" || report.Mismatches[0].Discrepancies[0].Computed != 260 {
		t.Fatalf("unexpected discrepancy %+v", report.Mismatches[0].Discrepancies)
	}
	if report.MissingFoodRefs != 1 {
		t.Fatalf("expected one item pointing at a deleted food, got %d", report.MissingFoodRefs)
	}
	if report.Healthy() {
		t.Fatalf("expected unhealthy report")
	}

	fixed, err := service.RunDoctor(sqldb, true)
	if err != nil {
		t.Fatalf("run doctor fix: %v", err)
	}
	if fixed.FixedLogs != 1 {
		t.Fatalf("expected one fixed log, got %d", fixed.FixedLogs)
	}
	reloaded, err := service.MealLogByID(sqldb, entry.ID)
	if err != nil {
		t.Fatalf("reload meal log: %v", err)
	}
	if reloaded.TotalCalories != 260 {
		t.Fatalf("expected totals rebuilt to 260, got %v", reloaded.TotalCalories)
	}

	after, err := service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("run doctor after fix: %v", err)
	}
	if len(after.Mismatches) != 0 {
		t.Fatalf("expected no mismatches after fix, got %+v", after.Mismatches)
	}
}

func TestBackupCreateListRestore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	quickMeal(t, sqldb, "2026-02-10", "lunch", 600, 30, 70, 20)

	backupPath := filepath.Join(dir, "backups", "lifelog-1.db")
	info, err := service.CreateBackup(sqldb, backupPath)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 {
		t.Fatalf("unexpected backup info %+v", info)
	}
	if _, err := service.CreateBackup(sqldb, backupPath); err == nil {
		t.Fatalf("expected existing backup path to fail")
	}

	backups, err := service.ListBackups(filepath.Dir(backupPath))
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(backups) != 1 || backups[0].Checksum != info.Checksum {
		t.Fatalf("unexpected backups %+v", backups)
	}

	restored := filepath.Join(dir, "restored.db")
	if err := service.RestoreBackup(backupPath, restored, false); err != nil {
		t.Fatalf("restore backup: %v", err)
	}
	if err := service.RestoreBackup(backupPath, restored, false); err == nil {
		t.Fatalf("expected restore over existing db without force to fail")
	}

	restoredDB, err := db.Open(restored)
	if err != nil {
		t.Fatalf("open restored db: %v", err)
	}
	defer restoredDB.Close()
	logs, err := service.ListMealLogs(restoredDB, service.MealLogFilter{})
	if err != nil {
		t.Fatalf("list restored logs: %v", err)
	}
	if len(logs) != 1 || logs[0].TotalCalories != 600 {
		t.Fatalf("unexpected restored logs %+v", logs)
	}

	if err := os.WriteFile(backupPath+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("tamper checksum: %v", err)
	}
	if err := service.RestoreBackup(backupPath, restored, true); err == nil {
		t.Fatalf("expected checksum mismatch to fail")
	}
}
