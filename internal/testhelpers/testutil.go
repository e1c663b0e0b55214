package testhelpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

// TestPassword is the plain-text password of users made by CreateTestUser.
const TestPassword = "testpassword123"

// CreateTestUser creates a user with a unique email and TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	id := uuid.New()
	user := &models.User{
		ID:           id,
		Name:         "Test User",
		Email:        fmt.Sprintf("testuser+%s@example.com", id.String()),
		PasswordHash: string(hashedPassword),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestMeal stores a meal with the given foods for userID.
func CreateTestMeal(t *testing.T, db *gorm.DB, userID uuid.UUID, date string, mealType nutrition.MealType, foods ...models.FoodEntry) *models.Meal {
	t.Helper()

	for i := range foods {
		foods[i].Position = i
		if foods[i].ServingUnit == "" {
			foods[i].ServingUnit = "g"
		}
	}
	meal := &models.Meal{
		UserID:   userID,
		Date:     date,
		MealType: mealType,
		Foods:    foods,
	}
	if err := db.Create(meal).Error; err != nil {
		t.Fatalf("failed to create test meal: %v", err)
	}
	return meal
}
