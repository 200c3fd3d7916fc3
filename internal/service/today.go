package service

import (
	"database/sql"
	"time"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/model"
)

type DayStatus struct {
	Totals     model.DailyTotals    `json:"totals"`
	Meals      []model.MealLogEntry `json:"meals"`
	Targets    metrics.TargetSet    `json:"targets"`
	Progress   metrics.Progress     `json:"progress"`
	MacroShare metrics.MacroShare   `json:"macro_share"`
	Remaining  metrics.MealTotals   `json:"remaining"`
}

// DaySummary reports one calendar day against the active targets.
func DaySummary(db *sql.DB, date time.Time) (*DayStatus, error) {
	day := date.Format(dateLayout)
	logs, err := ListMealLogs(db, MealLogFilter{FromDate: day, ToDate: day})
	if err != nil {
		return nil, err
	}
	target, err := CurrentProfile(db)
	if err != nil {
		return nil, err
	}
	defaults, err := WeeklyGoals(db)
	if err != nil {
		return nil, err
	}

	totals := metrics.AggregateDay(logs, day)
	targets := metrics.ResolveTargets(target, defaults)
	return &DayStatus{
		Totals:     totals,
		Meals:      logs,
		Targets:    targets,
		Progress:   metrics.DailyProgress(totals, targets),
		MacroShare: metrics.MacroPercentages(totals.Protein, totals.Carbs, totals.Fats),
		Remaining: metrics.MealTotals{
			Calories: float64(targets.Calories) - totals.Calories,
			Protein:  float64(targets.Protein) - totals.Protein,
			Carbs:    float64(targets.Carbs) - totals.Carbs,
			Fats:     float64(targets.Fats) - totals.Fats,
		},
	}, nil
}
