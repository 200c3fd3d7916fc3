package lifelog

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/lifelog/internal/service"
)

var (
	doctorFix  bool
	doctorJSON bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored meal totals against their items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			if doctorJSON {
				if err := printJSON(cmd, report); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Checked meal logs: %d\n", report.CheckedLogs)
				for _, m := range report.Mismatches {
					for _, d := range m.Discrepancies {
						fmt.Fprintf(out, "%s\t%s\t%s stored=%.1f computed=%.1f\n", m.ID, m.Date, d.Field, d.Stored, d.Computed)
					}
				}
				fmt.Fprintf(out, "Totals mismatches: %d\n", len(report.Mismatches))
				fmt.Fprintf(out, "Invalid dates: %d\n", len(report.InvalidDates))
				fmt.Fprintf(out, "Missing food references: %d\n", report.MissingFoodRefs)
				if doctorFix {
					fmt.Fprintf(out, "Fixed meal logs: %d\n", report.FixedLogs)
				}
			}
			if doctorFix {
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Rewrite stored totals from meal items")
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output JSON")
}
