package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/pageza/macrotrack/backend/config"
	"github.com/pageza/macrotrack/backend/internal/database"
	"github.com/pageza/macrotrack/backend/internal/logging"
	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/types"
)

func ptr[T any](v T) *T { return &v }

// sampleDay is logged for each seeded day, newest first
var sampleDay = []types.CreateMealRequest{
	{MealType: string(nutrition.Breakfast), Foods: []types.FoodRequest{
		{Name: "Rolled oats", ServingSize: ptr(40.0), Protein: 5, Carbs: 27, Fat: 3, Calories: ptr(150.0)},
		{Name: "Whole milk", ServingSize: ptr(250.0), ServingUnit: "ml", Protein: 8, Carbs: 12, Fat: 8},
	}},
	{MealType: string(nutrition.Lunch), Foods: []types.FoodRequest{
		{Name: "Chicken breast", ServingSize: ptr(150.0), Protein: 46, Fat: 5},
		{Name: "Brown rice", ServingSize: ptr(1.0), ServingUnit: "cup", Protein: 5, Carbs: 45, Fat: 2},
	}},
	{MealType: string(nutrition.Dinner), Foods: []types.FoodRequest{
		{Name: "Salmon fillet", Protein: 34, Fat: 22, Calories: ptr(340.0)},
		{Name: "Broccoli", ServingSize: ptr(90.0), Protein: 3, Carbs: 6, Fat: 0.3},
	}},
	{MealType: string(nutrition.Snacks), Foods: []types.FoodRequest{
		{Name: "Almonds", ServingSize: ptr(1.0), ServingUnit: "oz", Protein: 6, Carbs: 6, Fat: 14},
	}},
}

func main() {
	email := flag.String("email", "demo@example.com", "Email of the demo account")
	password := flag.String("password", "demopassword123", "Password of the demo account")
	days := flag.Int("days", 7, "Number of days of sample meals ending today")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	services := service.New(db, service.Options{JWTSecret: cfg.JWTSecret, Logger: logging.New("seed")})

	user, err := ensureUser(ctx, services, *email, *password)
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	if _, err := services.Goals.UpdateGoals(ctx, user.ID, &types.UpdateGoalsRequest{
		DailyCalorieGoal: ptr(2200.0),
		ProteinTarget:    ptr(160.0),
		Notes:            ptr("Seeded demo goals"),
	}); err != nil {
		log.Fatalf("Failed to set goals: %v", err)
	}

	today := time.Now()
	for i := 0; i < *days; i++ {
		date := today.AddDate(0, 0, -i).Format(nutrition.DateLayout)
		existing, err := services.Meals.ListMeals(ctx, user.ID, date)
		if err != nil {
			log.Fatalf("Failed to list meals for %s: %v", date, err)
		}
		if len(existing) > 0 {
			fmt.Printf("Skipping %s (already has meals)\n", date)
			continue
		}
		for _, meal := range sampleDay {
			meal.Date = date
			if _, err := services.Meals.CreateMeal(ctx, user.ID, &meal); err != nil {
				log.Fatalf("Failed to create %s on %s: %v", meal.MealType, date, err)
			}
		}
		fmt.Printf("Seeded %s\n", date)
	}

	fmt.Printf("Demo account ready: %s / %s\n", *email, *password)
}

func ensureUser(ctx context.Context, services *service.Services, email, password string) (*models.User, error) {
	user, err := services.Auth.Register(ctx, "Demo User", email, password)
	if errors.Is(err, service.ErrUserExists) {
		fmt.Printf("User already exists: %s\n", email)
		return services.Auth.GetUserByEmail(ctx, email)
	}
	return user, err
}
