package lifelog

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/model"
	"github.com/saadjs/lifelog/internal/service"
)

var (
	mealDate     string
	mealType     string
	mealItems    []string
	mealNotes    string
	mealCalories float64
	mealProtein  float64
	mealCarbs    float64
	mealFats     float64
	mealFrom     string
	mealTo       string
	mealLimit    int
	mealJSON     bool
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and manage meals",
}

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal from saved foods, manual items or quick totals",
	Example: `  lifelog meal add --type lunch --item "paneer:150" --item "rice:200"
  lifelog meal add --type snack --item "chutney:20:12/0.3/2.1/0.2"
  lifelog meal add --type dinner --calories 650 --protein 30 --carbs 80 --fats 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := parseItemFlags(mealItems)
		if err != nil {
			return err
		}
		in := service.MealLogInput{
			Date:     mealDate,
			MealType: mealType,
			Items:    items,
			Notes:    mealNotes,
		}
		if len(items) == 0 && quickTotalsChanged(cmd) {
			in.Totals = &metrics.MealTotals{Calories: mealCalories, Protein: mealProtein, Carbs: mealCarbs, Fats: mealFats}
		}
		return withDB(func(sqldb *sql.DB) error {
			entry, err := service.CreateMealLog(sqldb, in)
			if err != nil {
				return err
			}
			if mealJSON {
				return printJSON(cmd, entry)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s %s: %.0f kcal (P %.1fg C %.1fg F %.1fg)\n",
				strings.ToLower(string(entry.MealType)), entry.ID, entry.TotalCalories, entry.TotalProtein, entry.TotalCarbs, entry.TotalFats)
			return nil
		})
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meal logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			logs, err := service.ListMealLogs(sqldb, service.MealLogFilter{
				FromDate: mealFrom,
				ToDate:   mealTo,
				MealType: mealType,
				Limit:    mealLimit,
			})
			if err != nil {
				return err
			}
			if mealJSON {
				return printJSON(cmd, logs)
			}
			if len(logs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No meals logged.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDate\tType\tItems\tCalories\tProtein\tCarbs\tFats")
			for _, e := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\t%.0f\t%.1f\t%.1f\t%.1f\n",
					e.ID, metrics.DayKey(e.Date), e.MealType, len(e.Items), e.TotalCalories, e.TotalProtein, e.TotalCarbs, e.TotalFats)
			}
			return nil
		})
	},
}

var mealShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a meal log with its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			entry, err := service.MealLogByID(sqldb, args[0])
			if err != nil {
				return err
			}
			if mealJSON {
				return printJSON(cmd, entry)
			}
			printMealLog(cmd, entry)
			return nil
		})
	},
}

var mealUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a meal log; replacing items recomputes totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := service.MealLogPatch{
			Date:     stringFlag(cmd, "date", mealDate),
			MealType: stringFlag(cmd, "type", mealType),
			Notes:    stringFlag(cmd, "notes", mealNotes),
		}
		if cmd.Flags().Changed("item") {
			items, err := parseItemFlags(mealItems)
			if err != nil {
				return err
			}
			patch.Items = &items
		}
		return withDB(func(sqldb *sql.DB) error {
			entry, err := service.UpdateMealLog(sqldb, args[0], patch)
			if err != nil {
				return err
			}
			if mealJSON {
				return printJSON(cmd, entry)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated meal %s.\n", entry.ID)
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteMealLog(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s.\n", args[0])
			return nil
		})
	},
}

func quickTotalsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"calories", "protein", "carbs", "fats"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// parseItemFlags accepts "name:grams" for saved foods and
// "name:grams:kcal/protein/carbs/fats" for manual items.
func parseItemFlags(values []string) ([]service.MealItemInput, error) {
	items := make([]service.MealItemInput, 0, len(values))
	for _, raw := range values {
		item, err := parseItemFlag(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func parseItemFlag(raw string) (service.MealItemInput, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 {
		return service.MealItemInput{}, fmt.Errorf("invalid --item %q (expected name:grams)", raw)
	}

	var manual *metrics.MealTotals
	last := parts[len(parts)-1]
	if len(parts) >= 3 && strings.Contains(last, "/") {
		macros := strings.Split(last, "/")
		if len(macros) != 4 {
			return service.MealItemInput{}, fmt.Errorf("invalid --item %q (expected kcal/protein/carbs/fats)", raw)
		}
		vals := make([]float64, len(macros))
		for i, m := range macros {
			v, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
			if err != nil {
				return service.MealItemInput{}, fmt.Errorf("invalid --item %q: %w", raw, err)
			}
			vals[i] = v
		}
		manual = &metrics.MealTotals{Calories: vals[0], Protein: vals[1], Carbs: vals[2], Fats: vals[3]}
		parts = parts[:len(parts)-1]
	}

	grams, err := strconv.ParseFloat(strings.TrimSpace(parts[len(parts)-1]), 64)
	if err != nil {
		return service.MealItemInput{}, fmt.Errorf("invalid --item %q grams: %w", raw, err)
	}
	return service.MealItemInput{
		FoodName:  strings.TrimSpace(strings.Join(parts[:len(parts)-1], ":")),
		QuantityG: grams,
		Manual:    manual,
	}, nil
}

func printMealLog(cmd *cobra.Command, e model.MealLogEntry) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\t%s\t%s\n", e.ID, e.Date, e.MealType)
	for _, it := range e.Items {
		fmt.Fprintf(out, "  %s\t%.0fg\t%.0f kcal\tP %.1f\tC %.1f\tF %.1f\n", it.FoodName, it.QuantityG, it.Calories, it.Protein, it.Carbs, it.Fats)
	}
	fmt.Fprintf(out, "Total: %.0f kcal\tP %.1fg\tC %.1fg\tF %.1fg\n", e.TotalCalories, e.TotalProtein, e.TotalCarbs, e.TotalFats)
	if e.Notes != "" {
		fmt.Fprintf(out, "Notes: %s\n", e.Notes)
	}
}

func init() {
	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "Meal date YYYY-MM-DD or RFC3339 (default today)")
	mealAddCmd.Flags().StringVar(&mealType, "type", "", "breakfast|lunch|dinner|snack")
	mealAddCmd.Flags().StringArrayVar(&mealItems, "item", nil, "Item as name:grams or name:grams:kcal/p/c/f (repeatable)")
	mealAddCmd.Flags().StringVar(&mealNotes, "notes", "", "Optional notes")
	mealAddCmd.Flags().Float64Var(&mealCalories, "calories", 0, "Quick entry calories (no items)")
	mealAddCmd.Flags().Float64Var(&mealProtein, "protein", 0, "Quick entry protein grams")
	mealAddCmd.Flags().Float64Var(&mealCarbs, "carbs", 0, "Quick entry carbs grams")
	mealAddCmd.Flags().Float64Var(&mealFats, "fats", 0, "Quick entry fat grams")
	_ = mealAddCmd.MarkFlagRequired("type")

	mealListCmd.Flags().StringVar(&mealFrom, "from", "", "From date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&mealTo, "to", "", "To date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&mealType, "type", "", "Filter by meal type")
	mealListCmd.Flags().IntVar(&mealLimit, "limit", 0, "Max meals to list")

	mealUpdateCmd.Flags().StringVar(&mealDate, "date", "", "New meal date")
	mealUpdateCmd.Flags().StringVar(&mealType, "type", "", "New meal type")
	mealUpdateCmd.Flags().StringArrayVar(&mealItems, "item", nil, "Replacement items (repeatable)")
	mealUpdateCmd.Flags().StringVar(&mealNotes, "notes", "", "New notes")

	for _, c := range []*cobra.Command{mealAddCmd, mealListCmd, mealShowCmd, mealUpdateCmd} {
		c.Flags().BoolVar(&mealJSON, "json", false, "Output JSON")
	}

	mealCmd.AddCommand(mealAddCmd)
	mealCmd.AddCommand(mealListCmd)
	mealCmd.AddCommand(mealShowCmd)
	mealCmd.AddCommand(mealUpdateCmd)
	mealCmd.AddCommand(mealDeleteCmd)
	rootCmd.AddCommand(mealCmd)
}
