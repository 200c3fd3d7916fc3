package lifelog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/saadjs/lifelog/internal/app"
	"github.com/saadjs/lifelog/internal/db"
	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/service"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// resolveDBPath prefers --db, then LIFELOG_DB or db_path from config.toml.
func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if appConfig.DBPath != "" {
		return appConfig.DBPath, nil
	}
	return app.DefaultDBPath()
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

// parseDayOrToday returns noon local time on the given day, keeping day
// arithmetic clear of DST transitions.
func parseDayOrToday(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t.Add(12 * time.Hour), nil
}

// resolveReportOptions layers --days over the stored preference over config.toml.
func resolveReportOptions(cmd *cobra.Command, sqldb *sql.DB, days int) (service.ReportOptions, error) {
	opts, err := service.LoadReportOptions(sqldb)
	if err != nil {
		return opts, err
	}
	if _, stored, err := service.GetConfig(sqldb, service.ConfigSeriesDays); err != nil {
		return opts, err
	} else if !stored && appConfig.SeriesDays > 0 {
		opts.SeriesDays = appConfig.SeriesDays
	}
	if cmd.Flags().Changed("days") {
		if days <= 0 || days > metrics.MaxSeriesDays {
			return opts, fmt.Errorf("--days must be between 1 and %d", metrics.MaxSeriesDays)
		}
		opts.SeriesDays = days
	}
	log.Debugf("report options: series_days=%d week_start=%s", opts.SeriesDays, opts.WeekStart)
	return opts, nil
}

func intFlag(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func stringFlag(cmd *cobra.Command, name string, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
