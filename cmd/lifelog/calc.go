package lifelog

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/model"
	"github.com/saadjs/lifelog/internal/service"
)

var (
	calcHeight   float64
	calcWeight   float64
	calcAge      int
	calcGender   string
	calcActivity string
	calcGoal     string
	calcJSON     bool
)

var bmiCmd = &cobra.Command{
	Use:   "bmi",
	Short: "Calculate BMI from --weight/--height or the saved profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, height := calcWeight, calcHeight
		if weight == 0 || height == 0 {
			err := withDB(func(sqldb *sql.DB) error {
				target, err := service.CurrentProfile(sqldb)
				if err != nil {
					return err
				}
				if target == nil {
					return fmt.Errorf("pass --weight and --height or set a profile first")
				}
				if weight == 0 {
					weight = target.WeightKg
				}
				if height == 0 {
					height = target.HeightCm
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		if weight <= 0 || height <= 0 {
			return fmt.Errorf("weight and height must be > 0")
		}
		result := metrics.CalculateBMI(weight, height)
		if calcJSON {
			return printJSON(cmd, result)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "BMI: %.1f (%s)\n", result.Value, result.Category)
		return nil
	},
}

// targetsCmd computes targets ad hoc when profile flags are given,
// otherwise from the saved profile.
var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Show BMR, maintenance calories and macro targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		var profile model.Profile
		if calcHeight > 0 || calcWeight > 0 || calcAge > 0 || calcGender != "" || calcActivity != "" || calcGoal != "" {
			p, err := service.BuildProfile(service.ProfileInput{
				HeightCm:      calcHeight,
				WeightKg:      calcWeight,
				Age:           calcAge,
				Gender:        calcGender,
				ActivityLevel: calcActivity,
				GoalType:      calcGoal,
			})
			if err != nil {
				return err
			}
			profile = p
		} else {
			err := withDB(func(sqldb *sql.DB) error {
				target, err := service.CurrentProfile(sqldb)
				if err != nil {
					return err
				}
				if target == nil {
					return fmt.Errorf("pass profile flags or set a profile first")
				}
				profile = target.Profile()
				return nil
			})
			if err != nil {
				return err
			}
		}

		targets := metrics.ComputeNutritionTargets(profile)
		if calcJSON {
			return printJSON(cmd, targets)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "BMR: %d kcal\n", targets.BMR)
		fmt.Fprintf(out, "Maintenance: %d kcal\n", targets.MaintenanceCalories)
		fmt.Fprintf(out, "Target (%s): %d kcal\n", profile.GoalType, targets.TargetCalories)
		fmt.Fprintf(out, "Protein: %dg\tCarbs: %dg\tFats: %dg\n", targets.TargetProtein, targets.TargetCarbs, targets.TargetFats)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{bmiCmd, targetsCmd} {
		c.Flags().Float64Var(&calcHeight, "height", 0, "Height in cm")
		c.Flags().Float64Var(&calcWeight, "weight", 0, "Weight in kg")
		c.Flags().BoolVar(&calcJSON, "json", false, "Output JSON")
	}
	targetsCmd.Flags().IntVar(&calcAge, "age", 0, "Age in years")
	targetsCmd.Flags().StringVar(&calcGender, "gender", "", "male|female")
	targetsCmd.Flags().StringVar(&calcActivity, "activity", "", "Activity level")
	targetsCmd.Flags().StringVar(&calcGoal, "goal", "", "bulk|maintain|cut")

	rootCmd.AddCommand(bmiCmd)
	rootCmd.AddCommand(targetsCmd)
}
