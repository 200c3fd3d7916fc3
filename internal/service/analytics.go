package service

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/model"
)

const DefaultAdherenceTolerance = 0.10

type MealTypeBreakdown struct {
	MealType model.MealType `json:"meal_type"`
	Meals    int            `json:"meals"`
	Calories float64        `json:"calories"`
	Protein  float64        `json:"protein_g"`
	Carbs    float64        `json:"carbs_g"`
	Fats     float64        `json:"fats_g"`
}

type AnalyticsReport struct {
	FromDate              string              `json:"from_date"`
	ToDate                string              `json:"to_date"`
	TotalCalories         float64             `json:"total_calories"`
	TotalProtein          float64             `json:"total_protein_g"`
	TotalCarbs            float64             `json:"total_carbs_g"`
	TotalFats             float64             `json:"total_fats_g"`
	DaysWithEntries       int                 `json:"days_with_entries"`
	AverageCaloriesPerDay float64             `json:"avg_calories_per_day"`
	AverageProteinPerDay  float64             `json:"avg_protein_per_day"`
	AverageCarbsPerDay    float64             `json:"avg_carbs_per_day"`
	AverageFatsPerDay     float64             `json:"avg_fats_per_day"`
	HighestDay            *model.DailyTotals  `json:"highest_day,omitempty"`
	LowestDay             *model.DailyTotals  `json:"lowest_day,omitempty"`
	Targets               metrics.TargetSet   `json:"targets"`
	Adherence             AdherenceSummary    `json:"adherence"`
	ByMealType            []MealTypeBreakdown `json:"by_meal_type"`
	Days                  []model.DailyTotals `json:"days"`
}

type AdherenceSummary struct {
	EvaluatedDays  int     `json:"evaluated_days"`
	WithinGoalDays int     `json:"within_goal_days"`
	PercentWithin  float64 `json:"percent_within_goal"`
}

// AnalyticsRange summarizes the days with logs between from and to inclusive.
func AnalyticsRange(db *sql.DB, from, to time.Time, tolerance float64) (*AnalyticsReport, error) {
	if from.After(to) {
		return nil, fmt.Errorf("from date must be <= to date")
	}
	report := &AnalyticsReport{
		FromDate: from.Format(dateLayout),
		ToDate:   to.Format(dateLayout),
	}
	logs, err := ListMealLogs(db, MealLogFilter{FromDate: report.FromDate, ToDate: report.ToDate})
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
	report.Targets = metrics.ResolveTargets(target, defaults)

	report.Days = daySummaries(logs)
	report.DaysWithEntries = len(report.Days)
	for _, d := range report.Days {
		report.TotalCalories += d.Calories
		report.TotalProtein += d.Protein
		report.TotalCarbs += d.Carbs
		report.TotalFats += d.Fats
	}
	if report.DaysWithEntries > 0 {
		div := float64(report.DaysWithEntries)
		report.AverageCaloriesPerDay = report.TotalCalories / div
		report.AverageProteinPerDay = report.TotalProtein / div
		report.AverageCarbsPerDay = report.TotalCarbs / div
		report.AverageFatsPerDay = report.TotalFats / div
		report.HighestDay, report.LowestDay = extremeDays(report.Days)
	}
	report.ByMealType = mealTypeBreakdown(logs)
	report.Adherence = calculateAdherence(report.Days, report.Targets, tolerance)
	return report, nil
}

func daySummaries(logs []model.MealLogEntry) []model.DailyTotals {
	seen := map[string]bool{}
	keys := make([]string, 0)
	for _, l := range logs {
		k := metrics.DayKey(l.Date)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	days := make([]model.DailyTotals, 0, len(keys))
	for _, k := range keys {
		days = append(days, metrics.AggregateDay(logs, k))
	}
	return days
}

func mealTypeBreakdown(logs []model.MealLogEntry) []MealTypeBreakdown {
	byType := map[model.MealType]*MealTypeBreakdown{}
	for _, l := range logs {
		b, ok := byType[l.MealType]
		if !ok {
			b = &MealTypeBreakdown{MealType: l.MealType}
			byType[l.MealType] = b
		}
		b.Meals++
		b.Calories += l.TotalCalories
		b.Protein += l.TotalProtein
		b.Carbs += l.TotalCarbs
		b.Fats += l.TotalFats
	}
	items := make([]MealTypeBreakdown, 0, len(byType))
	for _, b := range byType {
		items = append(items, *b)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Calories != items[j].Calories {
			return items[i].Calories > items[j].Calories
		}
		return items[i].MealType < items[j].MealType
	})
	return items
}

// calculateAdherence counts days at or under the calorie target with every macro within tolerance.
func calculateAdherence(days []model.DailyTotals, targets metrics.TargetSet, tolerance float64) AdherenceSummary {
	out := AdherenceSummary{}
	for _, d := range days {
		out.EvaluatedDays++
		if d.Calories <= float64(targets.Calories) &&
			AdherenceWithin(d.Protein, float64(targets.Protein), tolerance) &&
			AdherenceWithin(d.Carbs, float64(targets.Carbs), tolerance) &&
			AdherenceWithin(d.Fats, float64(targets.Fats), tolerance) {
			out.WithinGoalDays++
		}
	}
	if out.EvaluatedDays > 0 {
		out.PercentWithin = (float64(out.WithinGoalDays) / float64(out.EvaluatedDays)) * 100
	}
	return out
}

func AdherenceWithin(actual float64, target float64, tolerance float64) bool {
	if target == 0 {
		return actual == 0
	}
	lower := target * (1 - tolerance)
	upper := target * (1 + tolerance)
	return actual >= lower && actual <= upper
}

func extremeDays(days []model.DailyTotals) (*model.DailyTotals, *model.DailyTotals) {
	if len(days) == 0 {
		return nil, nil
	}
	copied := make([]model.DailyTotals, len(days))
	copy(copied, days)
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].Calories < copied[j].Calories
	})
	low := copied[0]
	high := copied[len(copied)-1]
	return &high, &low
}
