package lifelog

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/saadjs/lifelog/internal/app"
	"github.com/saadjs/lifelog/internal/logging"
)

var (
	dbPath     string
	configPath string
	logLevel   string

	appConfig app.Config
)

var rootCmd = &cobra.Command{
	Use:   "lifelog",
	Short: "lifelog tracks meals, nutrition targets and progress from your terminal",
	Long:  "lifelog is a local-first diet log that derives BMI, calorie and macro targets from your profile and reports daily, weekly and trend progress against them.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := app.LoadDotEnv(); err != nil {
			return err
		}
		path, err := app.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err := app.LoadConfig(path)
		if err != nil {
			return err
		}
		appConfig = cfg

		level := logging.DefaultLevel
		if cfg.LogLevel != "" {
			level = cfg.LogLevel
		}
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logging.Setup(logging.LoggerSetupParams{
			LogLevel:      level,
			LogFormatJSON: cfg.LogJSON,
			LogFileName:   cfg.LogFile,
			Stderr:        cmd.ErrOrStderr(),
		})
		log.Debugf("loaded config from %s", path)
		return nil
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (env LIFELOG_DB)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml (env LIFELOG_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "Log level: trace|debug|info|warn|error")
	rootCmd.SilenceErrors = true
}
