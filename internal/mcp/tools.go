package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/types"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_daily_summary",
		Description: "Get calorie and macro totals for a day with progress toward the daily goals",
	}, s.handleGetDailySummary)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_meals",
		Description: "List meals and their foods for a day or a date range",
	}, s.handleListMeals)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_food",
		Description: "Log a food into breakfast, lunch, dinner or snacks for a day",
	}, s.handleLogFood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_goals",
		Description: "Get the daily calorie goal and macro targets",
	}, s.handleGetGoals)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_goals",
		Description: "Change the daily calorie goal or macro targets; omitted fields keep their value",
	}, s.handleUpdateGoals)
}

// Tool input/output types

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
}

type listMealsInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today unless from or to is set"`
	From string `json:"from,omitempty" jsonschema:"First day of a range as YYYY-MM-DD"`
	To   string `json:"to,omitempty" jsonschema:"Last day of a range as YYYY-MM-DD"`
}

type logFoodInput struct {
	Date             string   `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
	MealType         string   `json:"meal_type" jsonschema:"breakfast, lunch, dinner or snacks"`
	Name             string   `json:"name" jsonschema:"Food name"`
	Protein          float64  `json:"protein" jsonschema:"Protein in grams"`
	Carbs            float64  `json:"carbs" jsonschema:"Carbohydrates in grams"`
	Fat              float64  `json:"fat" jsonschema:"Fat in grams"`
	Calories         *float64 `json:"calories,omitempty" jsonschema:"Calories; derived from the macros when omitted"`
	ServingSize      *float64 `json:"serving_size,omitempty" jsonschema:"Serving size, defaults to 100"`
	ServingUnit      string   `json:"serving_unit,omitempty" jsonschema:"g, ml, oz or cup; defaults to g"`
	NumberOfServings *float64 `json:"number_of_servings,omitempty" jsonschema:"Number of servings, defaults to 1"`
}

type updateGoalsInput struct {
	DailyCalorieGoal *float64 `json:"daily_calorie_goal,omitempty" jsonschema:"Daily calorie goal"`
	ProteinTarget    *float64 `json:"protein_target,omitempty" jsonschema:"Protein target in grams"`
	CarbsTarget      *float64 `json:"carbs_target,omitempty" jsonschema:"Carbohydrate target in grams"`
	FatTarget        *float64 `json:"fat_target,omitempty" jsonschema:"Fat target in grams"`
}

type emptyInput struct{}

type totalsOutput struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type progressOutput struct {
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
	OverGoal  bool    `json:"over_goal"`
}

type mealTotalsOutput struct {
	MealType  string       `json:"meal_type"`
	FoodCount int          `json:"food_count"`
	Totals    totalsOutput `json:"totals"`
}

type summaryOutput struct {
	Date      string                    `json:"date"`
	Totals    totalsOutput              `json:"totals"`
	Goals     totalsOutput              `json:"goals"`
	Progress  map[string]progressOutput `json:"progress"`
	Meals     []mealTotalsOutput        `json:"meals"`
	FoodCount int                       `json:"food_count"`
	Message   string                    `json:"message"`
}

type foodOutput struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	ServingSize      float64 `json:"serving_size"`
	ServingUnit      string  `json:"serving_unit"`
	NumberOfServings float64 `json:"number_of_servings"`
	Calories         float64 `json:"calories"`
	Protein          float64 `json:"protein"`
	Carbs            float64 `json:"carbs"`
	Fat              float64 `json:"fat"`
}

type mealOutput struct {
	ID       string       `json:"id"`
	Date     string       `json:"date"`
	MealType string       `json:"meal_type"`
	Totals   totalsOutput `json:"totals"`
	Foods    []foodOutput `json:"foods"`
}

type listMealsOutput struct {
	Meals   []mealOutput `json:"meals"`
	Message string       `json:"message"`
}

type logFoodOutput struct {
	Food    foodOutput `json:"food"`
	MealID  string     `json:"meal_id"`
	Message string     `json:"message"`
}

type goalsOutput struct {
	DailyCalorieGoal float64 `json:"daily_calorie_goal"`
	ProteinTarget    float64 `json:"protein_target"`
	CarbsTarget      float64 `json:"carbs_target"`
	FatTarget        float64 `json:"fat_target"`
}

func toTotals(t nutrition.DailyTotals) totalsOutput {
	return totalsOutput{Calories: t.Calories, Protein: t.Protein, Carbs: t.Carbs, Fat: t.Fat}
}

func toProgress(p nutrition.MacroProgress) progressOutput {
	return progressOutput{Percent: p.Percent, Remaining: p.Remaining, OverGoal: p.OverGoal}
}

func toFood(f models.FoodEntry) foodOutput {
	return foodOutput{
		ID:               f.ID.String(),
		Name:             f.Name,
		ServingSize:      f.ServingSize,
		ServingUnit:      f.ServingUnit,
		NumberOfServings: f.NumberOfServings,
		Calories:         f.Calories,
		Protein:          f.Protein,
		Carbs:            f.Carbs,
		Fat:              f.Fat,
	}
}

func toGoals(g *models.UserGoals) goalsOutput {
	return goalsOutput{
		DailyCalorieGoal: g.DailyCalorieGoal,
		ProteinTarget:    g.ProteinTarget,
		CarbsTarget:      g.CarbsTarget,
		FatTarget:        g.FatTarget,
	}
}

func (s *Server) dateOrToday(date string) string {
	if date == "" {
		return s.now().Format(nutrition.DateLayout)
	}
	return date
}

// Tool handlers

func (s *Server) handleGetDailySummary(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, summaryOutput, error) {
	summary, err := s.summary.DailySummary(ctx, s.userID, s.dateOrToday(input.Date))
	if err != nil {
		return nil, summaryOutput{}, fmt.Errorf("failed to get summary: %w", err)
	}

	out := summaryOutput{
		Date:   summary.Date,
		Totals: toTotals(summary.Totals),
		Goals: totalsOutput{
			Calories: summary.Goals.Calories,
			Protein:  summary.Goals.Protein,
			Carbs:    summary.Goals.Carbs,
			Fat:      summary.Goals.Fat,
		},
		Progress: map[string]progressOutput{
			"calories": toProgress(summary.Progress.Calories),
			"protein":  toProgress(summary.Progress.Protein),
			"carbs":    toProgress(summary.Progress.Carbs),
			"fat":      toProgress(summary.Progress.Fat),
		},
		Meals:     make([]mealTotalsOutput, 0, len(summary.Meals)),
		FoodCount: summary.FoodCount,
	}
	for _, m := range summary.Meals {
		out.Meals = append(out.Meals, mealTotalsOutput{
			MealType:  string(m.MealType),
			FoodCount: m.FoodCount,
			Totals:    toTotals(m.Totals),
		})
	}
	out.Message = fmt.Sprintf("%s: %.0f of %.0f kcal (%.0f%%)", summary.Date,
		summary.Totals.Calories, summary.Goals.Calories, summary.Progress.Calories.Percent)

	return nil, out, nil
}

func (s *Server) handleListMeals(ctx context.Context, req *mcp.CallToolRequest, input listMealsInput) (*mcp.CallToolResult, listMealsOutput, error) {
	var (
		meals []models.Meal
		err   error
	)
	if input.From != "" || input.To != "" {
		meals, err = s.meals.ListMealsInRange(ctx, s.userID, input.From, input.To)
	} else {
		meals, err = s.meals.ListMeals(ctx, s.userID, s.dateOrToday(input.Date))
	}
	if err != nil {
		return nil, listMealsOutput{}, fmt.Errorf("failed to list meals: %w", err)
	}

	out := listMealsOutput{Meals: make([]mealOutput, 0, len(meals))}
	for _, m := range meals {
		meal := mealOutput{
			ID:       m.ID.String(),
			Date:     m.Date,
			MealType: string(m.MealType),
			Totals:   toTotals(nutrition.Aggregate(m.Nutrition())),
			Foods:    make([]foodOutput, 0, len(m.Foods)),
		}
		for _, f := range m.Foods {
			meal.Foods = append(meal.Foods, toFood(f))
		}
		out.Meals = append(out.Meals, meal)
	}

	if len(out.Meals) == 0 {
		out.Message = "No meals found."
	} else {
		out.Message = fmt.Sprintf("Found %d meals.", len(out.Meals))
	}
	return nil, out, nil
}

func (s *Server) handleLogFood(ctx context.Context, req *mcp.CallToolRequest, input logFoodInput) (*mcp.CallToolResult, logFoodOutput, error) {
	entry, err := s.meals.LogFood(ctx, s.userID, &types.LogFoodRequest{
		Date:     s.dateOrToday(input.Date),
		MealType: input.MealType,
		FoodRequest: types.FoodRequest{
			Name:             input.Name,
			ServingSize:      input.ServingSize,
			ServingUnit:      input.ServingUnit,
			NumberOfServings: input.NumberOfServings,
			Protein:          input.Protein,
			Carbs:            input.Carbs,
			Fat:              input.Fat,
			Calories:         input.Calories,
		},
	})
	if err != nil {
		return nil, logFoodOutput{}, fmt.Errorf("failed to log food: %w", err)
	}

	return nil, logFoodOutput{
		Food:    toFood(*entry),
		MealID:  entry.MealID.String(),
		Message: fmt.Sprintf("Logged %s (%.0f kcal) to %s", entry.Name, entry.Calories, input.MealType),
	}, nil
}

func (s *Server) handleGetGoals(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, goalsOutput, error) {
	goals, err := s.goals.GetGoals(ctx, s.userID)
	if err != nil {
		return nil, goalsOutput{}, fmt.Errorf("failed to get goals: %w", err)
	}
	return nil, toGoals(goals), nil
}

func (s *Server) handleUpdateGoals(ctx context.Context, req *mcp.CallToolRequest, input updateGoalsInput) (*mcp.CallToolResult, goalsOutput, error) {
	goals, err := s.goals.UpdateGoals(ctx, s.userID, &types.UpdateGoalsRequest{
		DailyCalorieGoal: input.DailyCalorieGoal,
		ProteinTarget:    input.ProteinTarget,
		CarbsTarget:      input.CarbsTarget,
		FatTarget:        input.FatTarget,
	})
	if err != nil {
		return nil, goalsOutput{}, fmt.Errorf("failed to update goals: %w", err)
	}
	return nil, toGoals(goals), nil
}
