package lifelog

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/saadjs/lifelog/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage per-database report preferences",
}

var (
	cfgSeriesDays string
	cfgWeekStart  string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			if cmd.Flags().Changed("series-days") {
				if err := service.SetConfig(sqldb, service.ConfigSeriesDays, cfgSeriesDays); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("week-start") {
				if err := service.SetConfig(sqldb, service.ConfigWeekStart, cfgWeekStart); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cfg, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(cfg))
			for k := range cfg {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, cfg[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgSeriesDays, "series-days", "", "Days in the dashboard calorie series (1-90)")
	configSetCmd.Flags().StringVar(&cfgWeekStart, "week-start", "", "First day of the week: monday|sunday")
}
