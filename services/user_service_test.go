package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/delight-cuisine/models"
	"github.com/yeremiapane/delight-cuisine/utils"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	tokens := utils.NewTokenManager("test-secret", 15*time.Minute, time.Hour)
	return NewUserService(setupTestDB(t), tokens)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	users := newUserService(t)

	user, err := users.Register(ctx, " Jane Doe ", " Jane@Example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", user.Name)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "secret1", user.Password)

	_, err = users.Register(ctx, "Other", "jane@example.com", "secret2")
	assert.ErrorIs(t, err, ErrValidation)

	tests := []struct {
		name, userName, email, password string
	}{
		{"blank name", " ", "a@example.com", "secret1"},
		{"bad email", "A", "not-an-email", "secret1"},
		{"short password", "A", "b@example.com", "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := users.Register(ctx, tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestLoginAndRefresh(t *testing.T) {
	ctx := context.Background()
	users := newUserService(t)

	registered, err := users.Register(ctx, "Jane", "jane@example.com", "secret1")
	require.NoError(t, err)

	_, err = users.Login(ctx, "jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = users.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	pair, err := users.Login(ctx, "JANE@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, pair.User.ID)

	claims, err := users.Tokens.ParseToken(pair.AccessToken, utils.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, models.RoleCustomer, claims.Role)

	_, err = users.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized, "access tokens cannot be used to refresh")

	// promotions take effect on the next refresh
	require.NoError(t, users.DB.Model(&models.User{}).Where("id = ?", registered.ID).Update("role", models.RoleAdmin).Error)
	access, err := users.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	claims, err = users.Tokens.ParseToken(access, utils.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	users := newUserService(t)

	user, err := users.Register(ctx, "Jane", "jane@example.com", "secret1")
	require.NoError(t, err)

	me, err := users.Me(ctx, Actor{UserID: user.ID, Role: RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", me.Email)

	_, err = users.Me(ctx, anonymous)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = users.Me(ctx, Actor{UserID: 999, Role: RoleCustomer})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	users := newUserService(t)

	created, isNew, err := users.EnsureAdmin(ctx, "Admin", "Admin@Example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, models.RoleAdmin, created.Role)

	again, isNew, err := users.EnsureAdmin(ctx, "Admin", "admin@example.com", "changed")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, created.ID, again.ID)

	pair, err := users.Login(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, pair.User.Role)
}
