package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/types"
)

var (
	logDate     string
	logProtein  float64
	logCarbs    float64
	logFat      float64
	logCalories float64
	logSize     float64
	logUnit     string
	logServings float64
)

var logCmd = &cobra.Command{
	Use:     "log <meal-type> <name>",
	Aliases: []string{"add", "a"},
	Short:   "Log a food into a meal slot",
	Long: `Log a food into breakfast, lunch, dinner or snacks. The meal slot is
created on first use.

Calories are derived from the macros (4 kcal per gram of protein and
carbs, 9 per gram of fat) unless --calories is given.

EXAMPLES:

  macrotrack log breakfast Oats --protein 5 --carbs 27 --fat 3
  macrotrack log dinner Salmon --protein 34 --fat 22 --calories 340
  macrotrack log snacks Milk --size 250 --unit ml --carbs 12 --date 2024-03-01`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"breakfast", "lunch", "dinner", "snacks"},
	RunE: func(cmd *cobra.Command, args []string) error {
		mealType, err := nutrition.ParseMealType(args[0])
		if err != nil {
			return err
		}
		date, err := resolveDate(logDate)
		if err != nil {
			return err
		}

		req := &types.LogFoodRequest{
			Date:     date,
			MealType: string(mealType),
			FoodRequest: types.FoodRequest{
				Name:        args[1],
				ServingUnit: logUnit,
				Protein:     logProtein,
				Carbs:       logCarbs,
				Fat:         logFat,
			},
		}
		flags := cmd.Flags()
		if flags.Changed("calories") {
			req.Calories = &logCalories
		}
		if flags.Changed("size") {
			req.ServingSize = &logSize
		}
		if flags.Changed("servings") {
			req.NumberOfServings = &logServings
		}

		food, err := services.Meals.LogFood(cmd.Context(), currentUser.ID, req)
		if err != nil {
			return err
		}

		color.Green("✓ Logged %s to %s", food.Name, mealType)
		fmt.Printf("  %s %s  %s\n",
			color.New(color.Faint).Sprint(shortID(food.ID)),
			formatKcal(food.Calories),
			formatMacros(nutrition.DailyTotals{Protein: food.Protein, Carbs: food.Carbs, Fat: food.Fat}))

		foods, err := services.Meals.FoodsForDay(cmd.Context(), currentUser.ID, date)
		if err != nil {
			return err
		}
		day, err := nutrition.AggregateValidated(foods)
		if err != nil {
			return err
		}
		color.New(color.Faint).Printf("  %s total: %s  %s\n", date, formatKcal(day.Calories), formatMacros(day))
		return nil
	},
}

func init() {
	f := logCmd.Flags()
	f.StringVarP(&logDate, "date", "d", "", "day to log into (YYYY-MM-DD, default today)")
	f.Float64VarP(&logProtein, "protein", "p", 0, "protein grams")
	f.Float64VarP(&logCarbs, "carbs", "c", 0, "carbohydrate grams")
	f.Float64VarP(&logFat, "fat", "f", 0, "fat grams")
	f.Float64Var(&logCalories, "calories", 0, "calories (derived from macros when omitted)")
	f.Float64Var(&logSize, "size", 0, "serving size (default 100)")
	f.StringVar(&logUnit, "unit", "", "serving unit: g, ml, oz or cup (default g)")
	f.Float64Var(&logServings, "servings", 0, "number of servings (default 1)")
	rootCmd.AddCommand(logCmd)
}
