package lifelog

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/lifelog/internal/service"
)

var (
	foodName        string
	foodCategory    string
	foodCalories    float64
	foodProtein     float64
	foodCarbs       float64
	foodFats        float64
	foodServingSize float64
	foodServingUnit string
	foodJSON        bool
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the food database (values per 100g)",
}

var foodAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := foodInputFromFlags(cmd, args[0])
		return withDB(func(sqldb *sql.DB) error {
			f, err := service.CreateFood(sqldb, in)
			if err != nil {
				return err
			}
			if foodJSON {
				return printJSON(cmd, f)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food %s (%s): %.0f kcal/100g\n", f.Name, f.Category, f.Calories100g)
			return nil
		})
	},
}

var foodUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Overwrite a food's values; logged meals keep their scaled items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			existing, err := service.FoodByName(sqldb, args[0])
			if err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("food %q not found", args[0])
			}
			in := service.FoodInput{
				Name:         existing.Name,
				Category:     existing.Category,
				Calories100g: existing.Calories100g,
				Protein100g:  existing.Protein100g,
				Carbs100g:    existing.Carbs100g,
				Fats100g:     existing.Fats100g,
				ServingSize:  existing.ServingSize,
				ServingUnit:  existing.ServingUnit,
			}
			overlayFoodFlags(cmd, &in)
			f, err := service.UpdateFood(sqldb, args[0], in)
			if err != nil {
				return err
			}
			if foodJSON {
				return printJSON(cmd, f)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated food %s.\n", f.Name)
			return nil
		})
	},
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			foods, err := service.ListFoods(sqldb, foodCategory)
			if err != nil {
				return err
			}
			if foodJSON {
				return printJSON(cmd, foods)
			}
			if len(foods) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No foods found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Name\tCategory\tCalories\tProtein\tCarbs\tFats")
			for _, f := range foods {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n", f.Name, f.Category, f.Calories100g, f.Protein100g, f.Carbs100g, f.Fats100g)
			}
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteFood(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted food %s.\n", args[0])
			return nil
		})
	},
}

func foodInputFromFlags(cmd *cobra.Command, name string) service.FoodInput {
	in := service.FoodInput{
		Name:         name,
		Category:     foodCategory,
		Calories100g: foodCalories,
		Protein100g:  foodProtein,
		Carbs100g:    foodCarbs,
		Fats100g:     foodFats,
		ServingUnit:  foodServingUnit,
	}
	if cmd.Flags().Changed("serving-size") {
		size := foodServingSize
		in.ServingSize = &size
	}
	return in
}

func overlayFoodFlags(cmd *cobra.Command, in *service.FoodInput) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name = foodName
	}
	if flags.Changed("category") {
		in.Category = foodCategory
	}
	if flags.Changed("calories") {
		in.Calories100g = foodCalories
	}
	if flags.Changed("protein") {
		in.Protein100g = foodProtein
	}
	if flags.Changed("carbs") {
		in.Carbs100g = foodCarbs
	}
	if flags.Changed("fats") {
		in.Fats100g = foodFats
	}
	if flags.Changed("serving-size") {
		size := foodServingSize
		in.ServingSize = &size
	}
	if flags.Changed("serving-unit") {
		in.ServingUnit = foodServingUnit
	}
}

func init() {
	for _, c := range []*cobra.Command{foodAddCmd, foodUpdateCmd} {
		c.Flags().StringVar(&foodCategory, "category", "", "grain|protein|vegetable|fruit|dairy|legume|snack|beverage|sweet|oil|spice")
		c.Flags().Float64Var(&foodCalories, "calories", 0, "Calories per 100g")
		c.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams per 100g")
		c.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carb grams per 100g")
		c.Flags().Float64Var(&foodFats, "fats", 0, "Fat grams per 100g")
		c.Flags().Float64Var(&foodServingSize, "serving-size", 0, "Typical serving size")
		c.Flags().StringVar(&foodServingUnit, "serving-unit", "", "Serving unit, e.g. g, cup, piece")
		c.Flags().BoolVar(&foodJSON, "json", false, "Output JSON")
	}
	_ = foodAddCmd.MarkFlagRequired("category")
	foodUpdateCmd.Flags().StringVar(&foodName, "name", "", "Rename the food")

	foodListCmd.Flags().StringVar(&foodCategory, "category", "", "Filter by category")
	foodListCmd.Flags().BoolVar(&foodJSON, "json", false, "Output JSON")

	foodCmd.AddCommand(foodAddCmd)
	foodCmd.AddCommand(foodUpdateCmd)
	foodCmd.AddCommand(foodListCmd)
	foodCmd.AddCommand(foodDeleteCmd)
	rootCmd.AddCommand(foodCmd)
}
