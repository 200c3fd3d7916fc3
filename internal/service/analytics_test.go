package service_test

import (
	"testing"
	"time"

	"github.com/saadjs/lifelog/internal/model"
	"github.com/saadjs/lifelog/internal/service"
)

func TestAnalyticsRangeTotalsAndAdherence(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	calories, protein, carbs, fats := 2000, 150, 200, 70
	if _, err := service.UpdateWeeklyGoals(db, service.WeeklyGoalsPatch{
		CalorieTarget: &calories,
		ProteinTarget: &protein,
		CarbsTarget:   &carbs,
		FatsTarget:    &fats,
	}); err != nil {
		t.Fatalf("update weekly goals: %v", err)
	}

	quickMeal(t, db, "2026-02-10T08:00:00Z", "breakfast", 500, 40, 50, 15)
	quickMeal(t, db, "2026-02-10", "dinner", 1300, 110, 150, 55)
	quickMeal(t, db, "2026-02-11", "lunch", 900, 80, 90, 25)
	quickMeal(t, db, "2026-02-20", "lunch", 3000, 80, 90, 25)

	from := time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 2, 12, 0, 0, 0, 0, time.Local)
	report, err := service.AnalyticsRange(db, from, to, service.DefaultAdherenceTolerance)
	if err != nil {
		t.Fatalf("analytics range: %v", err)
	}

	if report.DaysWithEntries != 2 {
		t.Fatalf("expected 2 days with entries, got %d", report.DaysWithEntries)
	}
	if report.TotalCalories != 2700 || report.AverageCaloriesPerDay != 1350 {
		t.Fatalf("unexpected calorie totals %+v", report)
	}
	if report.HighestDay == nil || report.HighestDay.Date != "2026-02-10" || report.LowestDay.Date != "2026-02-11" {
		t.Fatalf("unexpected extremes high=%+v low=%+v", report.HighestDay, report.LowestDay)
	}
	// 2026-02-10 lands on 1800 kcal, 150 P, 200 C, 70 F which is within 10%.
	if report.Adherence.EvaluatedDays != 2 || report.Adherence.WithinGoalDays != 1 || report.Adherence.PercentWithin != 50 {
		t.Fatalf("unexpected adherence %+v", report.Adherence)
	}
	if len(report.ByMealType) != 3 || report.ByMealType[0].MealType != model.MealDinner {
		t.Fatalf("unexpected meal type breakdown %+v", report.ByMealType)
	}
	if report.Targets.Derived {
		t.Fatalf("expected targets from weekly defaults without a profile")
	}
}

func TestAnalyticsRangeRejectsInvertedRange(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	from := time.Date(2026, 2, 12, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)
	if _, err := service.AnalyticsRange(db, from, to, service.DefaultAdherenceTolerance); err == nil {
		t.Fatalf("expected inverted range to fail")
	}
}

func TestAdherenceWithin(t *testing.T) {
	t.Parallel()

	if !service.AdherenceWithin(0, 0, 0.1) {
		t.Fatalf("expected zero actual to match zero target")
	}
	if service.AdherenceWithin(1, 0, 0.1) {
		t.Fatalf("expected nonzero actual to miss zero target")
	}
	if !service.AdherenceWithin(110, 100, 0.1) || service.AdherenceWithin(111, 100, 0.1) {
		t.Fatalf("expected inclusive 10%% band")
	}
}

func TestDaySummaryRemainingAgainstTargets(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	quickMeal(t, db, "2026-02-10", "breakfast", 500, 30, 60, 15)
	quickMeal(t, db, "2026-02-10T13:00:00Z", "lunch", 700, 40, 80, 20)
	quickMeal(t, db, "2026-02-11", "lunch", 900, 40, 80, 20)

	status, err := service.DaySummary(db, time.Date(2026, 2, 10, 20, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("day summary: %v", err)
	}
	if len(status.Meals) != 2 || status.Totals.Calories != 1200 || status.Totals.Protein != 70 {
		t.Fatalf("unexpected day totals %+v", status.Totals)
	}
	if status.Remaining.Calories != 800 || status.Remaining.Protein != 50 {
		t.Fatalf("unexpected remaining %+v", status.Remaining)
	}
	if status.Progress.Calories != 60 {
		t.Fatalf("expected 60%% calorie progress, got %d", status.Progress.Calories)
	}
}
