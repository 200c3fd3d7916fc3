package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/saadjs/lifelog/internal/db"
	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lifelog.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func quickMeal(t *testing.T, sqldb *sql.DB, date, mealType string, cal, protein, carbs, fats float64) string {
	t.Helper()
	entry, err := service.CreateMealLog(sqldb, service.MealLogInput{
		Date:     date,
		MealType: mealType,
		Totals:   &metrics.MealTotals{Calories: cal, Protein: protein, Carbs: carbs, Fats: fats},
	})
	if err != nil {
		t.Fatalf("create meal log on %s: %v", date, err)
	}
	return entry.ID
}

func seedFood(t *testing.T, sqldb *sql.DB, name, category string, cal, protein, carbs, fats float64) {
	t.Helper()
	if _, err := service.CreateFood(sqldb, service.FoodInput{
		Name:         name,
		Category:     category,
		Calories100g: cal,
		Protein100g:  protein,
		Carbs100g:    carbs,
		Fats100g:     fats,
	}); err != nil {
		t.Fatalf("create food %s: %v", name, err)
	}
}
