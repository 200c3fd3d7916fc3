package lifelog

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/model"
	"github.com/saadjs/lifelog/internal/service"
)

var (
	reportDate string
	reportWeek string
	reportDays int
	reportJSON bool
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show one day's totals and progress against targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDayOrToday(reportDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			status, err := service.DaySummary(sqldb, date)
			if err != nil {
				return err
			}
			if reportJSON {
				return printJSON(cmd, status)
			}
			out := cmd.OutOrStdout()
			t := status.Totals
			fmt.Fprintf(out, "Date: %s (%d meals)\n", t.Date, len(status.Meals))
			printProgressLines(cmd, t, status.Targets, status.Progress)
			fmt.Fprintf(out, "Macro split: P %d%%\tC %d%%\tF %d%%\n", status.MacroShare.ProteinPct, status.MacroShare.CarbsPct, status.MacroShare.FatsPct)
			fmt.Fprintf(out, "Remaining: %.0f kcal\tP %.1fg\tC %.1fg\tF %.1fg\n", status.Remaining.Calories, status.Remaining.Protein, status.Remaining.Carbs, status.Remaining.Fats)
			return nil
		})
	},
}

type weekReport struct {
	WeekStart string              `json:"week_start"`
	WeekEnd   string              `json:"week_end"`
	Average   model.WeeklyAverage `json:"average"`
	Alignment *metrics.Alignment  `json:"alignment,omitempty"`
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the weekly average and goal alignment",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			snap, err := service.LoadSnapshot(sqldb)
			if err != nil {
				return err
			}
			start, end, err := weekBounds(sqldb)
			if err != nil {
				return err
			}
			avg := metrics.WeeklyAverage(snap.Logs, start)
			report := weekReport{
				WeekStart: start.Format("2006-01-02"),
				WeekEnd:   end.Format("2006-01-02"),
				Average:   avg,
				Alignment: metrics.EvaluateAlignment(snap.Target, avg),
			}
			if reportJSON {
				return printJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Week: %s to %s (%d days logged)\n", report.WeekStart, report.WeekEnd, avg.DaysLogged)
			fmt.Fprintf(out, "Average/day: %d kcal\tP %dg\tC %dg\tF %dg\n", avg.Calories, avg.Protein, avg.Carbs, avg.Fats)
			printAlignment(cmd, report.Alignment)
			return nil
		})
	},
}

type trendReport struct {
	Series []model.DailyTotals `json:"series"`
	Trend  *metrics.Trend      `json:"trend,omitempty"`
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show the daily calorie series and its direction",
	RunE: func(cmd *cobra.Command, args []string) error {
		today, err := parseDayOrToday(reportDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			opts, err := resolveReportOptions(cmd, sqldb, reportDays)
			if err != nil {
				return err
			}
			logs, err := service.ListMealLogs(sqldb, service.MealLogFilter{})
			if err != nil {
				return err
			}
			series := metrics.DailySeries(logs, today, opts.SeriesDays)
			report := trendReport{Series: series, Trend: metrics.CalorieTrend(series)}
			if reportJSON {
				return printJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "DAY\tKCAL\tP\tC\tF")
			for _, d := range series {
				fmt.Fprintf(out, "%s\t%.0f\t%.1f\t%.1f\t%.1f\n", d.Label, d.Calories, d.Protein, d.Carbs, d.Fats)
			}
			fmt.Fprintf(out, "Calories: %s\n", sparkline(series))
			printTrend(cmd, report.Trend)
			return nil
		})
	},
}

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Check this week's average against the goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		today, err := parseDayOrToday(reportDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			snap, err := service.LoadSnapshot(sqldb)
			if err != nil {
				return err
			}
			opts, err := service.LoadReportOptions(sqldb)
			if err != nil {
				return err
			}
			avg := metrics.WeeklyAverage(snap.Logs, service.WeekStartFor(today, opts.WeekStart))
			alignment := metrics.EvaluateAlignment(snap.Target, avg)
			if reportJSON {
				return printJSON(cmd, alignment)
			}
			printAlignment(cmd, alignment)
			return nil
		})
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today, this week, the trend and suggestions in one view",
	RunE: func(cmd *cobra.Command, args []string) error {
		today, err := parseDayOrToday(reportDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			snap, err := service.LoadSnapshot(sqldb)
			if err != nil {
				return err
			}
			opts, err := resolveReportOptions(cmd, sqldb, reportDays)
			if err != nil {
				return err
			}
			report := service.BuildDashboard(snap, today, opts)
			if reportJSON {
				return printJSON(cmd, report)
			}
			printDashboard(cmd, report)
			return nil
		})
	},
}

// weekBounds resolves --week or falls back to the configured current week.
func weekBounds(sqldb *sql.DB) (start, end time.Time, err error) {
	opts, err := service.LoadReportOptions(sqldb)
	if err != nil {
		return start, end, err
	}
	if reportWeek != "" {
		return resolveWeekRange(reportWeek, opts.WeekStart)
	}
	today, err := parseDayOrToday(reportDate)
	if err != nil {
		return start, end, err
	}
	start = service.WeekStartFor(today, opts.WeekStart)
	return start, start.AddDate(0, 0, 6), nil
}

func printDashboard(cmd *cobra.Command, r service.DashboardReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Today (%s)\n", r.Date)
	printProgressLines(cmd, r.Today, r.Targets, r.Progress)
	fmt.Fprintf(out, "Macro split: P %d%%\tC %d%%\tF %d%%\n", r.MacroShare.ProteinPct, r.MacroShare.CarbsPct, r.MacroShare.FatsPct)
	if r.BMI != nil {
		fmt.Fprintf(out, "BMI: %.1f (%s)\n", r.BMI.Value, r.BMI.Category)
	}
	if !r.Targets.Derived {
		fmt.Fprintln(out, "Targets come from weekly goals; run `lifelog profile set` for personalised targets.")
	}

	fmt.Fprintf(out, "\nWeek from %s (%d days logged)\n", r.WeekStart, r.Week.DaysLogged)
	fmt.Fprintf(out, "Average/day: %d kcal\tP %dg\tC %dg\tF %dg\n", r.Week.Calories, r.Week.Protein, r.Week.Carbs, r.Week.Fats)
	printAlignment(cmd, r.Alignment)

	fmt.Fprintf(out, "\nLast %d days: %s\n", len(r.Series), sparkline(r.Series))
	printTrend(cmd, r.Trend)

	if len(r.Suggestions) > 0 {
		names := make([]string, 0, len(r.Suggestions))
		for _, f := range r.Suggestions {
			names = append(names, fmt.Sprintf("%s (%.0fg protein/100g)", f.Name, f.Protein100g))
		}
		fmt.Fprintf(out, "\nProtein ideas: %s\n", strings.Join(names, ", "))
	}
}

func printProgressLines(cmd *cobra.Command, day model.DailyTotals, t metrics.TargetSet, p metrics.Progress) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Calories: %.0f / %d kcal (%d%%)\n", day.Calories, t.Calories, p.Calories)
	fmt.Fprintf(out, "Protein: %.1f / %dg (%d%%)\n", day.Protein, t.Protein, p.Protein)
	fmt.Fprintf(out, "Carbs: %.1f / %dg (%d%%)\n", day.Carbs, t.Carbs, p.Carbs)
	fmt.Fprintf(out, "Fats: %.1f / %dg (%d%%)\n", day.Fats, t.Fats, p.Fats)
}

func printAlignment(cmd *cobra.Command, a *metrics.Alignment) {
	if a == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Alignment: n/a (needs a profile and at least one logged day)")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Alignment: %s (%+d kcal, protein %d%%) %s\n", a.Status, a.CaloriesDiff, a.ProteinPct, a.Message)
}

func printTrend(cmd *cobra.Command, t *metrics.Trend) {
	if t == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Trend: n/a (needs two days with calories)")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Trend: %s %d kcal\n", t.Direction, t.Value)
}

func sparkline(series []model.DailyTotals) string {
	if len(series) == 0 {
		return ""
	}
	chars := []rune("._-~=*#@")
	minV, maxV := series[0].Calories, series[0].Calories
	for _, d := range series[1:] {
		minV = math.Min(minV, d.Calories)
		maxV = math.Max(maxV, d.Calories)
	}
	if maxV == minV {
		return strings.Repeat(string(chars[0]), len(series))
	}
	var b strings.Builder
	for _, d := range series {
		idx := int(math.Round((d.Calories - minV) / (maxV - minV) * float64(len(chars)-1)))
		b.WriteRune(chars[idx])
	}
	return b.String()
}

func init() {
	for _, c := range []*cobra.Command{dayCmd, weekCmd, trendCmd, alignCmd, dashboardCmd} {
		c.Flags().StringVar(&reportDate, "date", "", "Report as of YYYY-MM-DD (default today)")
		c.Flags().BoolVar(&reportJSON, "json", false, "Output JSON")
	}
	weekCmd.Flags().StringVar(&reportWeek, "week", "", "ISO week in format YYYY-Www")
	for _, c := range []*cobra.Command{trendCmd, dashboardCmd} {
		c.Flags().IntVar(&reportDays, "days", 0, "Days in the calorie series (default from config, 7)")
	}

	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(alignCmd)
	rootCmd.AddCommand(dashboardCmd)
}
