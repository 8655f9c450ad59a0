package service

import (
	"testing"
	"time"

	"github.com/vyanhpham/rosea-backend/config"
	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/internal/app/repository"
	"github.com/vyanhpham/rosea-backend/internal/db"
	"github.com/vyanhpham/rosea-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testJWTConfig = config.JWTConfig{
	Secret:             "auth-service-test-secret",
	AccessTokenExpiry:  15 * time.Minute,
	RefreshTokenExpiry: 7 * 24 * time.Hour,
}

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return NewAuthService(repository.NewUserRepository(testDB), testJWTConfig), testDB
}

func seedUser(t *testing.T, testDB *gorm.DB, email, password string, role model.UserRole, active bool) *model.User {
	hash, err := util.HashPassword(password)
	require.NoError(t, err)

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
		Role:         role,
		IsActive:     active,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func TestAuthService_Login(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)
	seedUser(t, testDB, "staff@rosea.vn", "s3cret-pass", model.RoleStaff, true)

	t.Run("Valid credentials", func(t *testing.T) {
		tokens, user, err := authService.Login("staff@rosea.vn", "s3cret-pass")
		require.NoError(t, err)
		require.NotNil(t, tokens)
		assert.Equal(t, "staff@rosea.vn", user.Email)

		claims, err := util.ValidateToken(tokens.AccessToken, testJWTConfig.Secret)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, string(model.RoleStaff), claims.Role)
		assert.Equal(t, "access", claims.Type)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, _, err := authService.Login("staff@rosea.vn", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, _, err := authService.Login("nobody@rosea.vn", "s3cret-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Disabled account", func(t *testing.T) {
		seedUser(t, testDB, "former@rosea.vn", "s3cret-pass", model.RoleStaff, false)

		_, _, err := authService.Login("former@rosea.vn", "s3cret-pass")
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestAuthService_RefreshTokens(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)
	seedUser(t, testDB, "admin@rosea.vn", "s3cret-pass", model.RoleAdmin, true)

	tokens, _, err := authService.Login("admin@rosea.vn", "s3cret-pass")
	require.NoError(t, err)

	t.Run("Valid refresh token", func(t *testing.T) {
		fresh, err := authService.RefreshTokens(tokens.RefreshToken)
		require.NoError(t, err)

		claims, err := util.ValidateToken(fresh.AccessToken, testJWTConfig.Secret)
		require.NoError(t, err)
		assert.Equal(t, string(model.RoleAdmin), claims.Role)
		assert.Equal(t, "access", claims.Type)
	})

	t.Run("Access token rejected as refresh", func(t *testing.T) {
		_, err := authService.RefreshTokens(tokens.AccessToken)
		assert.ErrorIs(t, err, util.ErrInvalidToken)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, err := authService.RefreshTokens("not.a.token")
		assert.ErrorIs(t, err, util.ErrInvalidToken)
	})

	t.Run("User disabled after issue", func(t *testing.T) {
		require.NoError(t, testDB.Model(&model.User{}).
			Where("email = ?", "admin@rosea.vn").
			Update("is_active", false).Error)

		_, err := authService.RefreshTokens(tokens.RefreshToken)
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)
	user := seedUser(t, testDB, "staff@rosea.vn", "s3cret-pass", model.RoleStaff, true)

	found, err := authService.GetMe(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = authService.GetMe(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
