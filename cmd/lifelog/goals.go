package lifelog

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/lifelog/internal/model"
	"github.com/saadjs/lifelog/internal/service"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Manage weekly goals used when no profile targets exist",
}

var (
	goalsCalories    int
	goalsProtein     int
	goalsCarbs       int
	goalsFats        int
	goalsStudyHours  int
	goalsWorkoutDays int
	goalsTasks       int
	goalsJSON        bool
)

var goalsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update weekly goals; unset flags keep their values",
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := service.WeeklyGoalsPatch{
			CalorieTarget: intFlag(cmd, "calories", goalsCalories),
			ProteinTarget: intFlag(cmd, "protein", goalsProtein),
			CarbsTarget:   intFlag(cmd, "carbs", goalsCarbs),
			FatsTarget:    intFlag(cmd, "fats", goalsFats),
			StudyHours:    intFlag(cmd, "study-hours", goalsStudyHours),
			WorkoutDays:   intFlag(cmd, "workout-days", goalsWorkoutDays),
			TasksTarget:   intFlag(cmd, "tasks", goalsTasks),
		}
		return withDB(func(sqldb *sql.DB) error {
			g, err := service.UpdateWeeklyGoals(sqldb, patch)
			if err != nil {
				return err
			}
			if goalsJSON {
				return printJSON(cmd, g)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Weekly goals updated.")
			printGoals(cmd, g)
			return nil
		})
	},
}

var goalsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show weekly goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			g, err := service.WeeklyGoals(sqldb)
			if err != nil {
				return err
			}
			if goalsJSON {
				return printJSON(cmd, g)
			}
			printGoals(cmd, g)
			return nil
		})
	},
}

func printGoals(cmd *cobra.Command, g model.WeeklyGoalDefaults) {
	fmt.Fprintf(cmd.OutOrStdout(), "Calories: %d\nProtein: %dg\nCarbs: %dg\nFats: %dg\nStudy hours: %d\nWorkout days: %d\nTasks: %d\n",
		g.CalorieTarget, g.ProteinTarget, g.CarbsTarget, g.FatsTarget, g.StudyHours, g.WorkoutDays, g.TasksTarget)
}

func init() {
	rootCmd.AddCommand(goalsCmd)
	goalsCmd.AddCommand(goalsSetCmd, goalsShowCmd)

	goalsSetCmd.Flags().IntVar(&goalsCalories, "calories", 0, "Daily calorie target")
	goalsSetCmd.Flags().IntVar(&goalsProtein, "protein", 0, "Daily protein grams")
	goalsSetCmd.Flags().IntVar(&goalsCarbs, "carbs", 0, "Daily carb grams")
	goalsSetCmd.Flags().IntVar(&goalsFats, "fats", 0, "Daily fat grams")
	goalsSetCmd.Flags().IntVar(&goalsStudyHours, "study-hours", 0, "Weekly study hours")
	goalsSetCmd.Flags().IntVar(&goalsWorkoutDays, "workout-days", 0, "Weekly workout days (0-7)")
	goalsSetCmd.Flags().IntVar(&goalsTasks, "tasks", 0, "Weekly tasks target")
	for _, c := range []*cobra.Command{goalsSetCmd, goalsShowCmd} {
		c.Flags().BoolVar(&goalsJSON, "json", false, "Output JSON")
	}
}
