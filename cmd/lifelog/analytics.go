package lifelog

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/service"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "View weekly, monthly, and range analytics",
}

var (
	analyticsJSON      bool
	analyticsTolerance float64
)

var weekArg string

var analyticsWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Weekly analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalytics(cmd, func(sqldb *sql.DB) (time.Time, time.Time, error) {
			opts, err := service.LoadReportOptions(sqldb)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			return resolveWeekRange(weekArg, opts.WeekStart)
		})
	},
}

var monthArg string

var analyticsMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Monthly analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := resolveMonthRange(monthArg)
		if err != nil {
			return err
		}
		return runAnalytics(cmd, fixedRange(start, end))
	},
}

var (
	rangeFrom string
	rangeTo   string
)

var analyticsRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Range analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if rangeFrom == "" || rangeTo == "" {
			return fmt.Errorf("--from and --to are required")
		}
		start, err := time.ParseInLocation("2006-01-02", rangeFrom, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --from date (expected YYYY-MM-DD)")
		}
		end, err := time.ParseInLocation("2006-01-02", rangeTo, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --to date (expected YYYY-MM-DD)")
		}
		return runAnalytics(cmd, fixedRange(start, end))
	},
}

type rangeResolver func(sqldb *sql.DB) (time.Time, time.Time, error)

func fixedRange(from, to time.Time) rangeResolver {
	return func(*sql.DB) (time.Time, time.Time, error) { return from, to, nil }
}

func runAnalytics(cmd *cobra.Command, resolve rangeResolver) error {
	return withDB(func(sqldb *sql.DB) error {
		from, to, err := resolve(sqldb)
		if err != nil {
			return err
		}
		report, err := service.AnalyticsRange(sqldb, from, to, analyticsTolerance)
		if err != nil {
			return err
		}
		if analyticsJSON {
			return printJSON(cmd, report)
		}
		printAnalyticsTable(cmd, report)
		return nil
	})
}

func printAnalyticsTable(cmd *cobra.Command, r *service.AnalyticsReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Range: %s to %s (%d days with meals)\n", r.FromDate, r.ToDate, r.DaysWithEntries)
	fmt.Fprintf(out, "Totals: kcal=%.0f P=%.1f C=%.1f F=%.1f\n", r.TotalCalories, r.TotalProtein, r.TotalCarbs, r.TotalFats)
	fmt.Fprintf(out, "Averages/day: kcal=%.1f P=%.1f C=%.1f F=%.1f\n", r.AverageCaloriesPerDay, r.AverageProteinPerDay, r.AverageCarbsPerDay, r.AverageFatsPerDay)
	if r.HighestDay != nil && r.LowestDay != nil {
		fmt.Fprintf(out, "Highest day: %s (%.0f kcal)\n", r.HighestDay.Date, r.HighestDay.Calories)
		fmt.Fprintf(out, "Lowest day: %s (%.0f kcal)\n", r.LowestDay.Date, r.LowestDay.Calories)
	}
	fmt.Fprintf(out, "Targets: %d kcal P=%d C=%d F=%d\n", r.Targets.Calories, r.Targets.Protein, r.Targets.Carbs, r.Targets.Fats)
	fmt.Fprintf(out, "Adherence: %d/%d days within goals (%.1f%%)\n", r.Adherence.WithinGoalDays, r.Adherence.EvaluatedDays, r.Adherence.PercentWithin)

	fmt.Fprintln(out, "\nBy Meal Type")
	fmt.Fprintln(out, "TYPE\tMEALS\tKCAL\tP\tC\tF")
	for _, m := range r.ByMealType {
		fmt.Fprintf(out, "%s\t%d\t%.0f\t%.1f\t%.1f\t%.1f\n", m.MealType, m.Meals, m.Calories, m.Protein, m.Carbs, m.Fats)
	}
}

// resolveWeekRange maps an ISO week onto the configured first weekday: a
// Sunday-start week begins the day before the ISO Monday.
func resolveWeekRange(week string, first time.Weekday) (time.Time, time.Time, error) {
	if week == "" {
		start := service.WeekStartFor(time.Now(), first)
		return start, start.AddDate(0, 0, 6), nil
	}
	if !regexp.MustCompile(`^\d{4}-W\d{2}$`).MatchString(week) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --week value %q (expected YYYY-Www)", week)
	}
	var year, weekNum int
	if _, err := fmt.Sscanf(week, "%4d-W%2d", &year, &weekNum); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --week value %q (expected YYYY-Www)", week)
	}
	maxWeek := weeksInISOYear(year)
	if weekNum < 1 || weekNum > maxWeek {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --week value %q (week must be between 01 and %02d for %d)", week, maxWeek, year)
	}
	start := isoWeekStart(year, weekNum)
	if first == time.Sunday {
		start = start.AddDate(0, 0, -1)
	}
	return start, start.AddDate(0, 0, 6), nil
}

func resolveMonthRange(month string) (time.Time, time.Time, error) {
	if month == "" {
		now := time.Now().In(time.Local)
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		return start, start.AddDate(0, 1, -1), nil
	}
	parsed, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --month value %q (expected YYYY-MM)", month)
	}
	start := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, -1), nil
}

// isoWeekStart returns the Monday of the ISO week; week 1 contains January 4th.
func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, time.Local)
	return metrics.StartOfWeek(jan4).AddDate(0, 0, (week-1)*7)
}

func weeksInISOYear(year int) int {
	_, wk := time.Date(year, 12, 28, 0, 0, 0, 0, time.Local).ISOWeek()
	return wk
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.AddCommand(analyticsWeekCmd, analyticsMonthCmd, analyticsRangeCmd)

	for _, c := range []*cobra.Command{analyticsWeekCmd, analyticsMonthCmd, analyticsRangeCmd} {
		c.Flags().BoolVar(&analyticsJSON, "json", false, "Output as JSON")
		c.Flags().Float64Var(&analyticsTolerance, "tolerance", service.DefaultAdherenceTolerance, "Macro adherence tolerance (0.10 = 10%)")
	}
	analyticsWeekCmd.Flags().StringVar(&weekArg, "week", "", "ISO week in format YYYY-Www")
	analyticsMonthCmd.Flags().StringVar(&monthArg, "month", "", "Month in format YYYY-MM")
	analyticsRangeCmd.Flags().StringVar(&rangeFrom, "from", "", "Start date YYYY-MM-DD")
	analyticsRangeCmd.Flags().StringVar(&rangeTo, "to", "", "End date YYYY-MM-DD")
}
