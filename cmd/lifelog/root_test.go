package lifelog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/model"
	"github.com/saadjs/lifelog/internal/service"
)

// resetFlags undoes flag values left behind by a previous Execute on the shared rootCmd.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// cliArgs prefixes every invocation with an isolated database and config file.
func cliArgs(dir string, args ...string) []string {
	base := []string{"--db", filepath.Join(dir, "lifelog.db"), "--config", filepath.Join(dir, "config.toml")}
	return append(base, args...)
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, cliArgs(dir, args...)...)
	if err != nil {
		t.Fatalf("lifelog %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestRootHelp(t *testing.T) {
	out, err := runCLI(t, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if out == "" {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		if _, err := runCLI(t, cliArgs(dir, "init")...); err != nil {
			t.Fatalf("init run %d failed: %v", i+1, err)
		}
	}
}

func TestProfileMealDashboardFlow(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "profile", "set", "--height", "175", "--weight", "70", "--age", "25",
		"--gender", "male", "--activity", "moderately_active", "--goal", "maintain", "--json")
	var target model.NutritionTarget
	if err := json.Unmarshal([]byte(out), &target); err != nil {
		t.Fatalf("decode profile json: %v\n%s", err, out)
	}
	if target.TargetCalories <= 0 || target.GoalType != model.GoalMaintain {
		t.Fatalf("unexpected target: %+v", target)
	}

	mustRun(t, dir, "meal", "add", "--date", "2026-02-16", "--type", "lunch",
		"--calories", "600", "--protein", "40", "--carbs", "60", "--fats", "20")
	mustRun(t, dir, "meal", "add", "--date", "2026-02-16", "--type", "dinner",
		"--item", "dal:200:230/18/40/1")

	out = mustRun(t, dir, "dashboard", "--date", "2026-02-16", "--json")
	var report service.DashboardReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode dashboard json: %v\n%s", err, out)
	}
	if report.Date != "2026-02-16" || report.WeekStart != "2026-02-16" {
		t.Fatalf("unexpected dates: %s week %s", report.Date, report.WeekStart)
	}
	if report.Today.Calories != 830 || report.Today.Protein != 58 {
		t.Fatalf("unexpected today totals: %+v", report.Today)
	}
	if !report.Targets.Derived || report.Targets.Calories != target.TargetCalories {
		t.Fatalf("expected profile targets, got %+v", report.Targets)
	}
	if report.Week.DaysLogged != 1 || report.Week.Calories != 830 {
		t.Fatalf("unexpected week: %+v", report.Week)
	}
	if len(report.Series) != metrics.DefaultSeriesDays {
		t.Fatalf("expected %d series days, got %d", metrics.DefaultSeriesDays, len(report.Series))
	}
	if report.Alignment == nil || report.Alignment.Status != metrics.AlignmentUnder {
		t.Fatalf("expected under alignment, got %+v", report.Alignment)
	}

	out = mustRun(t, dir, "trend", "--date", "2026-02-16", "--days", "14", "--json")
	var trend trendReport
	if err := json.Unmarshal([]byte(out), &trend); err != nil {
		t.Fatalf("decode trend json: %v", err)
	}
	if len(trend.Series) != 14 || trend.Trend != nil {
		t.Fatalf("expected 14 days and no trend for a single logged day, got %d %+v", len(trend.Series), trend.Trend)
	}

	if out := mustRun(t, dir, "doctor"); !strings.Contains(out, "Checked meal logs: 2") {
		t.Fatalf("unexpected doctor output: %s", out)
	}
}

func TestMealAddRequiresItemsOrTotals(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, cliArgs(dir, "meal", "add", "--type", "lunch")...); err == nil {
		t.Fatalf("expected meal without items or totals to fail")
	}
	if _, err := runCLI(t, cliArgs(dir, "meal", "add", "--type", "lunch", "--item", "unknown:100")...); err == nil {
		t.Fatalf("expected unknown food to fail")
	}
}

func TestTrendRejectsOutOfRangeDays(t *testing.T) {
	dir := t.TempDir()
	for _, days := range []string{"0", "91"} {
		if _, err := runCLI(t, cliArgs(dir, "trend", "--days", days)...); err == nil {
			t.Fatalf("expected --days %s to fail", days)
		}
	}
	mustRun(t, dir, "trend", "--days", "90", "--json")
}

func TestExportImportRoundTrip(t *testing.T) {
	src := t.TempDir()
	mustRun(t, src, "food", "add", "paneer", "--category", "dairy", "--calories", "265", "--protein", "18.3", "--carbs", "1.2", "--fats", "20.8")
	mustRun(t, src, "meal", "add", "--date", "2026-02-16", "--type", "lunch", "--item", "paneer:150")
	exportPath := filepath.Join(src, "export.json")
	mustRun(t, src, "export", "--out", exportPath)

	csvPath := filepath.Join(src, "meals.csv")
	mustRun(t, src, "export", "--format", "csv", "--out", csvPath)
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.Contains(string(raw), "paneer:150") {
		t.Fatalf("expected item in csv export, got %s", raw)
	}

	dst := t.TempDir()
	out := mustRun(t, dst, "import", "--in", exportPath, "--dry-run")
	if !strings.Contains(out, "Dry-run") {
		t.Fatalf("expected dry-run output, got %s", out)
	}
	out = mustRun(t, dst, "meal", "list", "--json")
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("dry-run should not write, got %s", out)
	}

	mustRun(t, dst, "import", "--in", exportPath)
	out = mustRun(t, dst, "meal", "list", "--json")
	var logs []model.MealLogEntry
	if err := json.Unmarshal([]byte(out), &logs); err != nil {
		t.Fatalf("decode meal list: %v", err)
	}
	if len(logs) != 1 || logs[0].TotalCalories != 398 || len(logs[0].Items) != 1 {
		t.Fatalf("unexpected imported logs: %+v", logs)
	}

	if _, err := runCLI(t, cliArgs(dst, "import", "--in", exportPath)...); err == nil {
		t.Fatalf("expected conflicting import to fail in fail mode")
	}
	mustRun(t, dst, "import", "--in", exportPath, "--mode", "skip")
}

func TestBackupCreateAndList(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")
	backupPath := filepath.Join(dir, "backups", "manual.db")
	out := mustRun(t, dir, "backup", "create", "--out", backupPath)
	if !strings.Contains(out, "Checksum:") {
		t.Fatalf("unexpected backup output: %s", out)
	}
	out = mustRun(t, dir, "backup", "list")
	if !strings.Contains(out, backupPath) {
		t.Fatalf("expected backup in listing, got %s", out)
	}
}

func TestBMIFromFlags(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "bmi", "--weight", "70", "--height", "175")
	if !strings.Contains(out, "BMI: 22.9 (Normal)") {
		t.Fatalf("unexpected bmi output: %s", out)
	}
}
