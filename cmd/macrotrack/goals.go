package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/types"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show your daily calorie and macro goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		goals, err := services.Goals.GetGoals(cmd.Context(), currentUser.ID)
		if err != nil {
			return err
		}
		printGoals(goals)
		return nil
	},
}

var goalsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update one or more daily goals",
	Long: `Update daily goals. Only the flags given are changed.

EXAMPLES:

  macrotrack goals set --calories 1800
  macrotrack goals set --protein 160 --fat 60 --notes "cut"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		req := &types.UpdateGoalsRequest{}
		for name, target := range map[string]**float64{
			"calories": &req.DailyCalorieGoal,
			"protein":  &req.ProteinTarget,
			"carbs":    &req.CarbsTarget,
			"fat":      &req.FatTarget,
		} {
			if !flags.Changed(name) {
				continue
			}
			v, err := flags.GetFloat64(name)
			if err != nil {
				return err
			}
			*target = &v
		}
		if flags.Changed("notes") {
			notes, _ := flags.GetString("notes")
			req.Notes = &notes
		}
		if *req == (types.UpdateGoalsRequest{}) {
			return fmt.Errorf("nothing to update: pass at least one of --calories, --protein, --carbs, --fat, --notes")
		}

		goals, err := services.Goals.UpdateGoals(cmd.Context(), currentUser.ID, req)
		if err != nil {
			return err
		}
		color.Green("✓ Goals updated")
		printGoals(goals)
		return nil
	},
}

func printGoals(g *models.UserGoals) {
	fmt.Printf("  %s %s\n", padRight("calories", 10), formatKcal(g.DailyCalorieGoal))
	fmt.Printf("  %s %sg\n", padRight("protein", 10), formatNumber(g.ProteinTarget))
	fmt.Printf("  %s %sg\n", padRight("carbs", 10), formatNumber(g.CarbsTarget))
	fmt.Printf("  %s %sg\n", padRight("fat", 10), formatNumber(g.FatTarget))
	if g.Notes != nil && *g.Notes != "" {
		color.New(color.Faint).Printf("  %s\n", *g.Notes)
	}
}

func init() {
	f := goalsSetCmd.Flags()
	f.Float64("calories", 0, "daily calorie goal")
	f.Float64("protein", 0, "protein target in grams")
	f.Float64("carbs", 0, "carbohydrate target in grams")
	f.Float64("fat", 0, "fat target in grams")
	f.String("notes", "", "free-form notes")
	goalsCmd.AddCommand(goalsSetCmd)
	rootCmd.AddCommand(goalsCmd)
}
