package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pageza/macrotrack/backend/internal/models"
)

var mealsDate string

var mealsCmd = &cobra.Command{
	Use:     "meals",
	Aliases: []string{"ls"},
	Short:   "List the meals and foods of a day",
	Long: `List a day's meal slots with every logged food.

Each food line shows: ID  NAME  SERVING  CALORIES  MACROS

The ID is an 8-character prefix of the food's ID; 'macrotrack rm' needs
the full ID, shown with --verbose.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(mealsDate)
		if err != nil {
			return err
		}
		meals, err := services.Meals.ListMeals(cmd.Context(), currentUser.ID, date)
		if err != nil {
			return err
		}
		if len(meals) == 0 {
			fmt.Println("No meals found.")
			return nil
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		for _, m := range meals {
			printMeal(m, verbose)
		}
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:     "rm <food-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a logged food",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid food id: %s", args[0])
		}
		if err := services.Meals.DeleteFood(cmd.Context(), currentUser.ID, id); err != nil {
			return err
		}
		color.Yellow("✗ Deleted food %s", shortID(id))
		return nil
	},
}

func printMeal(m models.Meal, verbose bool) {
	faint := color.New(color.Faint)
	color.New(color.Bold).Printf("%s %s\n", m.Date, m.MealType)
	for _, f := range m.Foods {
		id := shortID(f.ID)
		if verbose {
			id = f.ID.String()
		}
		fmt.Printf("  %s %s %s %s  %s\n",
			faint.Sprint(id),
			padRight(truncate(f.Name, 28), 28),
			padRight(fmt.Sprintf("%s x %s %s", formatNumber(f.NumberOfServings), formatNumber(f.ServingSize), f.ServingUnit), 16),
			padLeft(formatKcal(f.Calories), 10),
			faint.Sprintf("P %sg C %sg F %sg", formatNumber(f.Protein), formatNumber(f.Carbs), formatNumber(f.Fat)))
	}
}

func init() {
	mealsCmd.Flags().StringVarP(&mealsDate, "date", "d", "", "day to list (YYYY-MM-DD, default today)")
	mealsCmd.Flags().BoolP("verbose", "v", false, "show full food IDs")
	rootCmd.AddCommand(mealsCmd)
	rootCmd.AddCommand(removeCmd)
}
