package service

import (
	"database/sql"
	"time"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/model"
)

// Snapshot is everything the metrics engine needs, loaded in one pass.
type Snapshot struct {
	Logs     []model.MealLogEntry
	Target   *model.NutritionTarget
	Defaults model.WeeklyGoalDefaults
	Foods    []model.Food
}

type ReportOptions struct {
	SeriesDays int
	WeekStart  time.Weekday
}

type DashboardReport struct {
	Date        string              `json:"date"`
	Today       model.DailyTotals   `json:"today"`
	Targets     metrics.TargetSet   `json:"targets"`
	Progress    metrics.Progress    `json:"progress"`
	MacroShare  metrics.MacroShare  `json:"macro_share"`
	BMI         *metrics.BMIResult  `json:"bmi,omitempty"`
	WeekStart   string              `json:"week_start"`
	Week        model.WeeklyAverage `json:"week"`
	Series      []model.DailyTotals `json:"series"`
	Trend       *metrics.Trend      `json:"trend,omitempty"`
	Alignment   *metrics.Alignment  `json:"alignment,omitempty"`
	Suggestions []model.Food        `json:"suggestions,omitempty"`
}

func LoadSnapshot(db *sql.DB) (Snapshot, error) {
	logs, err := ListMealLogs(db, MealLogFilter{})
	if err != nil {
		return Snapshot{}, err
	}
	target, err := CurrentProfile(db)
	if err != nil {
		return Snapshot{}, err
	}
	defaults, err := WeeklyGoals(db)
	if err != nil {
		return Snapshot{}, err
	}
	foods, err := ListFoods(db, "")
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Logs: logs, Target: target, Defaults: defaults, Foods: foods}, nil
}

// LoadReportOptions reads the stored preferences, falling back to defaults for unset keys.
func LoadReportOptions(db *sql.DB) (ReportOptions, error) {
	opts := ReportOptions{SeriesDays: metrics.DefaultSeriesDays, WeekStart: time.Monday}
	if v, ok, err := GetConfig(db, ConfigSeriesDays); err != nil {
		return opts, err
	} else if ok {
		n, err := parseSeriesDays(v)
		if err != nil {
			return opts, err
		}
		opts.SeriesDays = n
	}
	if v, ok, err := GetConfig(db, ConfigWeekStart); err != nil {
		return opts, err
	} else if ok {
		wd, err := parseWeekStart(v)
		if err != nil {
			return opts, err
		}
		opts.WeekStart = wd
	}
	return opts, nil
}

// WeekStartFor returns midnight of the first day of today's week.
func WeekStartFor(today time.Time, first time.Weekday) time.Time {
	if first == time.Sunday {
		return metrics.StartOfWeek(today.AddDate(0, 0, 1)).AddDate(0, 0, -1)
	}
	return metrics.StartOfWeek(today)
}

func Dashboard(db *sql.DB, today time.Time) (DashboardReport, error) {
	snap, err := LoadSnapshot(db)
	if err != nil {
		return DashboardReport{}, err
	}
	opts, err := LoadReportOptions(db)
	if err != nil {
		return DashboardReport{}, err
	}
	return BuildDashboard(snap, today, opts), nil
}

// BuildDashboard composes the engine outputs for a snapshot without touching storage.
func BuildDashboard(snap Snapshot, today time.Time, opts ReportOptions) DashboardReport {
	date := today.Format(dateLayout)
	day := metrics.AggregateDay(snap.Logs, date)
	targets := metrics.ResolveTargets(snap.Target, snap.Defaults)
	weekStart := WeekStartFor(today, opts.WeekStart)
	week := metrics.WeeklyAverage(snap.Logs, weekStart)
	series := metrics.DailySeries(snap.Logs, today, opts.SeriesDays)

	report := DashboardReport{
		Date:       date,
		Today:      day,
		Targets:    targets,
		Progress:   metrics.DailyProgress(day, targets),
		MacroShare: metrics.MacroPercentages(day.Protein, day.Carbs, day.Fats),
		WeekStart:  weekStart.Format(dateLayout),
		Week:       week,
		Series:     series,
		Trend:      metrics.CalorieTrend(series),
		Alignment:  metrics.EvaluateAlignment(snap.Target, week),
	}
	if snap.Target != nil {
		bmi := metrics.CalculateBMI(snap.Target.WeightKg, snap.Target.HeightCm)
		report.BMI = &bmi
	}
	report.Suggestions = metrics.ProteinSuggestions(snap.Foods, day.Protein, float64(targets.Protein))
	return report
}
