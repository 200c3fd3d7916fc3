package metrics

import (
	"strings"
	"time"

	"github.com/saadjs/lifelog/internal/model"
)

// Layouts without a zone are read in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	dateLayout,
}

// DayKey returns the calendar-day part of a stored date string.
func DayKey(date string) string {
	date = strings.TrimSpace(date)
	if i := strings.IndexAny(date, "T "); i >= 0 {
		return date[:i]
	}
	return date
}

// parseLogTime reads a stored date. Date-only values are midnight in loc.
func parseLogTime(date string, loc *time.Location) (time.Time, bool) {
	date = strings.TrimSpace(date)
	if t, err := time.Parse(time.RFC3339Nano, date); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, date, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AggregateDay sums the stored totals of every log on the given calendar day.
func AggregateDay(logs []model.MealLogEntry, date string) model.DailyTotals {
	key := DayKey(date)
	out := model.DailyTotals{Date: key}
	for _, l := range logs {
		if DayKey(l.Date) != key {
			continue
		}
		out.Calories += l.TotalCalories
		out.Protein += l.TotalProtein
		out.Carbs += l.TotalCarbs
		out.Fats += l.TotalFats
	}
	return out
}

// WeeklyAverage averages macros over [weekStart, weekStart+7d) by days that
// have at least one log. With no logged days the divisor is 1, not 7.
func WeeklyAverage(logs []model.MealLogEntry, weekStart time.Time) model.WeeklyAverage {
	end := weekStart.AddDate(0, 0, 7)
	days := make(map[string]struct{})
	var calories, protein, carbs, fats float64
	for _, l := range logs {
		t, ok := parseLogTime(l.Date, weekStart.Location())
		if !ok || t.Before(weekStart) || !t.Before(end) {
			continue
		}
		days[DayKey(l.Date)] = struct{}{}
		calories += l.TotalCalories
		protein += l.TotalProtein
		carbs += l.TotalCarbs
		fats += l.TotalFats
	}

	daysLogged := len(days)
	if daysLogged == 0 {
		daysLogged = 1
	}
	div := float64(daysLogged)
	return model.WeeklyAverage{
		Calories:   roundInt(calories / div),
		Protein:    roundInt(protein / div),
		Carbs:      roundInt(carbs / div),
		Fats:       roundInt(fats / div),
		DaysLogged: daysLogged,
	}
}

// StartOfWeek returns Monday 00:00 of t's week in t's location.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	y, m, d := t.AddDate(0, 0, -(weekday - 1)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
