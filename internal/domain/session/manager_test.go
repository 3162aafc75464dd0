// internal/domain/session/manager_test.go
package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/agrimart-client/internal/config"
	"github.com/your-org/agrimart-client/internal/infrastructure/localstore"
)

func newTestManager(t *testing.T) (*Manager, localstore.Store) {
	t.Helper()
	store := localstore.NewMemoryStore()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	cfg := &config.Config{
		Security: config.SecurityConfig{BcryptCost: 4},
	}
	return NewManager(store, cfg, log), store
}

func signedToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestLoginCachesProfileFromClaims(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	token := signedToken(t, &Claims{
		UserID:  "u-42",
		Email:   "farmer@example.com",
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	user, err := m.Login(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u-42", user.ID)
	assert.True(t, user.IsAdmin)

	current, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "farmer@example.com", current.Email)

	userID, err := m.CurrentUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-42", userID)

	stored, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, stored)
}

func TestLoginRejectsExpiredToken(t *testing.T) {
	m, _ := newTestManager(t)

	token := signedToken(t, &Claims{
		UserID: "u-42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := m.Login(context.Background(), token)
	assert.Error(t, err)
}

func TestLoginRejectsGarbageToken(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Login(context.Background(), "not-a-token")
	assert.Error(t, err)

	_, err = m.Login(context.Background(), signedToken(t, &Claims{}))
	assert.Error(t, err, "a token without a user id is rejected")
}

func TestLoggedOutState(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	user, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	userID, err := m.CurrentUserID(ctx)
	require.NoError(t, err)
	assert.Empty(t, userID)

	token, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestLogoutClearsPerUserState(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	token := signedToken(t, &Claims{UserID: "u-42"})
	_, err := m.Login(ctx, token)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, localstore.KeyCartItems, `[{"id":"p1","quantity":1}]`))

	require.NoError(t, m.Logout(ctx))

	user, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	_, err = store.Get(ctx, localstore.KeyCartItems)
	assert.Equal(t, localstore.ErrNotFound, err, "logout clears the local cart")
}

func TestAdminPIN(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	assert.Error(t, m.VerifyAdminPIN(ctx, "1234"), "no PIN set yet")

	require.NoError(t, m.SetAdminPIN(ctx, "4321"))
	assert.NoError(t, m.VerifyAdminPIN(ctx, "4321"))
	assert.Error(t, m.VerifyAdminPIN(ctx, "0000"))
}

func TestSetAdminPINValidation(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	assert.Error(t, m.SetAdminPIN(ctx, "12"))
	assert.Error(t, m.SetAdminPIN(ctx, "123456789"))
	assert.Error(t, m.SetAdminPIN(ctx, "12ab"))
}
