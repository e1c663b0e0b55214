package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/types"
)

var (
	summaryDate string
	historyDays int
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"s", "today"},
	Short:   "Show the totals of a day against your goals",
	Long: `Show one day's calorie and macro totals, each meal slot's share and
progress toward your daily goals.

EXAMPLES:

  macrotrack summary                   # Today
  macrotrack summary --date 2024-03-01 # A past day`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(summaryDate)
		if err != nil {
			return err
		}
		summary, err := services.Summary.DailySummary(cmd.Context(), currentUser.ID, date)
		if err != nil {
			return err
		}
		printSummary(summary)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show daily totals for the last days",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyDays < 1 {
			return fmt.Errorf("--days must be at least 1")
		}
		to := now()
		from := to.AddDate(0, 0, -(historyDays - 1))
		history, err := services.Summary.History(cmd.Context(), currentUser.ID,
			from.Format(nutrition.DateLayout), to.Format(nutrition.DateLayout))
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		for _, day := range history.Days {
			line := fmt.Sprintf("%s  %s  %s",
				day.Date, padLeft(formatKcal(day.Totals.Calories), 10), formatMacros(day.Totals))
			if day.OverGoal {
				color.Red(line)
				continue
			}
			fmt.Println(line)
		}
		faint.Printf("average     %s  %s\n", padLeft(formatKcal(history.Average.Calories), 10), formatMacros(history.Average))
		return nil
	},
}

func printSummary(s *types.DailySummary) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Printf("%s  %s of %s\n", s.Date, formatKcal(s.Totals.Calories), formatKcal(s.Goals.Calories))
	if s.FoodCount == 0 {
		faint.Println("Nothing logged.")
	}
	for _, m := range s.Meals {
		fmt.Printf("  %s %s  %s\n",
			padRight(string(m.MealType), 10),
			padLeft(formatKcal(m.Totals.Calories), 10),
			faint.Sprintf("%d foods", m.FoodCount))
	}

	fmt.Println()
	printProgress("calories", s.Progress.Calories, "kcal")
	printProgress("protein", s.Progress.Protein, "g")
	printProgress("carbs", s.Progress.Carbs, "g")
	printProgress("fat", s.Progress.Fat, "g")
}

func printProgress(label string, p nutrition.MacroProgress, unit string) {
	line := fmt.Sprintf("  %s %s %3.0f%%  %s / %s %s",
		padRight(label, 10), progressBar(p.Percent, 20), p.Percent,
		formatNumber(p.Consumed), formatNumber(p.Goal), unit)
	if p.OverGoal {
		color.Red(line + " (over)")
		return
	}
	fmt.Println(line)
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryDate, "date", "d", "", "day to summarize (YYYY-MM-DD, default today)")
	historyCmd.Flags().IntVarP(&historyDays, "days", "n", 7, "number of days ending today")
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(historyCmd)
}
