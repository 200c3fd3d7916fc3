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
	profileHeight   float64
	profileWeight   float64
	profileAge      int
	profileGender   string
	profileActivity string
	profileGoal     string
	profileJSON     bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the body profile your nutrition targets are derived from",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save the profile and regenerate nutrition targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			target, err := service.SetProfile(sqldb, service.ProfileInput{
				HeightCm:      profileHeight,
				WeightKg:      profileWeight,
				Age:           profileAge,
				Gender:        profileGender,
				ActivityLevel: profileActivity,
				GoalType:      profileGoal,
			})
			if err != nil {
				return err
			}
			if profileJSON {
				return printJSON(cmd, target)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile saved.")
			printTarget(cmd, target)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile and its targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			target, err := service.CurrentProfile(sqldb)
			if err != nil {
				return err
			}
			if target == nil {
				return fmt.Errorf("no profile set; run `lifelog profile set`")
			}
			if profileJSON {
				return printJSON(cmd, target)
			}
			printTarget(cmd, *target)
			return nil
		})
	},
}

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the profile; reports fall back to weekly goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ClearProfile(sqldb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile cleared.")
			return nil
		})
	},
}

func printTarget(cmd *cobra.Command, t model.NutritionTarget) {
	out := cmd.OutOrStdout()
	bmi := metrics.CalculateBMI(t.WeightKg, t.HeightCm)
	fmt.Fprintf(out, "Height: %.1f cm\tWeight: %.1f kg\tAge: %d\tGender: %s\n", t.HeightCm, t.WeightKg, t.Age, t.Gender)
	fmt.Fprintf(out, "Activity: %s\tGoal: %s\n", t.ActivityLevel, t.GoalType)
	fmt.Fprintf(out, "BMI: %.1f (%s)\n", bmi.Value, bmi.Category)
	fmt.Fprintf(out, "Targets: %d kcal\tP %dg\tC %dg\tF %dg\n", t.TargetCalories, t.TargetProtein, t.TargetCarbs, t.TargetFats)
}

func init() {
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "male|female")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "sedentary|lightly_active|moderately_active|very_active|extra_active")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "", "bulk|maintain|cut")
	for _, name := range []string{"height", "weight", "age", "gender", "activity", "goal"} {
		_ = profileSetCmd.MarkFlagRequired(name)
	}
	profileSetCmd.Flags().BoolVar(&profileJSON, "json", false, "Output JSON")
	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Output JSON")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileClearCmd)
	rootCmd.AddCommand(profileCmd)
}
