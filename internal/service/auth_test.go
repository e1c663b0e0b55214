package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/testhelpers"
	"github.com/pageza/macrotrack/backend/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret", nil)
	ctx := context.Background()

	user, err := authSvc.Register(ctx, " Ada ", "Ada@Example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)

	_, err = authSvc.Register(ctx, "Ada", "ada@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrUserExists)

	loggedIn, err := authSvc.Login(ctx, "ADA@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterLosesRaceForEmail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret", nil)

	// Another registration commits between the email lookup and the insert
	var once sync.Once
	var rivalErr error
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:rival_register", func(tx *gorm.DB) {
		if tx.Statement.Table != "users" {
			return
		}
		once.Do(func() {
			rival := &models.User{Name: "Rival", Email: "grace@example.com", PasswordHash: "x"}
			rivalErr = tx.Session(&gorm.Session{NewDB: true}).Create(rival).Error
		})
	}))

	_, err := authSvc.Register(context.Background(), "Grace", "grace@example.com", "password123")
	require.NoError(t, rivalErr)
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret", nil)
	user := testhelpers.CreateTestUser(t, db)

	_, err := authSvc.Login(context.Background(), user.Email, "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = authSvc.Login(context.Background(), "nobody@example.com", testhelpers.TestPassword)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret", nil)
	user := testhelpers.CreateTestUser(t, db)

	token, err := authSvc.IssueToken(user)
	require.NoError(t, err)

	claims, err := authSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, types.TokenIssuer, claims.Issuer)

	other := service.NewAuthService(db, "other-secret", nil)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret", nil)
	user := testhelpers.CreateTestUser(t, db)

	claims := &types.TokenClaims{UserID: user.ID}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token, err := authSvc.GenerateToken(claims)
	require.NoError(t, err)

	_, err = authSvc.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
	assert.Contains(t, err.Error(), "expired")
}

func TestGetUser(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret", nil)
	user := testhelpers.CreateTestUser(t, db)

	found, err := authSvc.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	found, err = authSvc.GetUserByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = authSvc.GetUserByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
