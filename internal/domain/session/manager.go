// internal/domain/session/manager.go
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/your-org/agrimart-client/internal/config"
	"github.com/your-org/agrimart-client/internal/infrastructure/localstore"
)

// User is the cached profile of the signed-in user
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

// Claims are the token claims issued by the backend
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Manager owns the device's auth state: the stored backend token, the
// cached profile, and the offline admin PIN. Token signatures are
// enforced by the backend; the device only reads its own stored
// token's claims.
type Manager struct {
	store localstore.Store
	cfg   *config.Config
	log   *logrus.Logger

	mu sync.Mutex
}

// NewManager creates a session manager
func NewManager(store localstore.Store, cfg *config.Config, log *logrus.Logger) *Manager {
	return &Manager{
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

// Login stores the backend-issued token and caches the profile carried
// in its claims.
func (m *Manager) Login(ctx context.Context, token string) (*User, error) {
	claims, err := parseClaims(token)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token carries no user id")
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("token is expired")
	}

	user := &User{
		ID:      claims.UserID,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, localstore.KeyAuthToken, token); err != nil {
		return nil, fmt.Errorf("failed to store auth token: %w", err)
	}
	if err := localstore.SetJSON(ctx, m.store, localstore.KeyUserProfile, user); err != nil {
		return nil, fmt.Errorf("failed to cache user profile: %w", err)
	}

	m.log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"is_admin": user.IsAdmin,
	}).Info("User logged in")

	return user, nil
}

// CurrentUser returns the cached profile, or nil when logged out
func (m *Manager) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	err := localstore.GetJSON(ctx, m.store, localstore.KeyUserProfile, &user)
	if err == localstore.ErrNotFound {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read user profile: %w", err)
	}
	return &user, nil
}

// CurrentUserID returns the signed-in user's id, or "" when logged out
func (m *Manager) CurrentUserID(ctx context.Context) (string, error) {
	user, err := m.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}
	return user.ID, nil
}

// Token returns the stored backend token, or "" when logged out
func (m *Manager) Token(ctx context.Context) (string, error) {
	token, err := m.store.Get(ctx, localstore.KeyAuthToken)
	if err == localstore.ErrNotFound {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("failed to read auth token: %w", err)
	}
	return token, nil
}

// Logout tears down per-user device state: token, cached profile and
// the local cart. Status overrides survive since they are device-
// scoped admin state.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range []string{
		localstore.KeyAuthToken,
		localstore.KeyUserProfile,
		localstore.KeyCartItems,
	} {
		if err := m.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to clear %q on logout: %w", key, err)
		}
	}

	m.log.Info("User logged out")
	return nil
}

// SetAdminPIN hashes and stores the offline admin PIN
func (m *Manager) SetAdminPIN(ctx context.Context, pin string) error {
	if err := validatePIN(pin); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), m.cfg.Security.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Set(ctx, localstore.KeyAdminPIN, string(hashed))
}

// VerifyAdminPIN checks a PIN against the stored hash
func (m *Manager) VerifyAdminPIN(ctx context.Context, pin string) error {
	hash, err := m.store.Get(ctx, localstore.KeyAdminPIN)
	if err == localstore.ErrNotFound {
		return fmt.Errorf("no admin PIN is set")
	} else if err != nil {
		return fmt.Errorf("failed to read admin PIN: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		return fmt.Errorf("incorrect PIN")
	}
	return nil
}

func parseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	// ParseUnverified: the backend signed this token and enforces it on
	// every request; the device only mirrors the claims it was given.
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

func validatePIN(pin string) error {
	if len(pin) < 4 || len(pin) > 8 {
		return fmt.Errorf("PIN must be 4 to 8 digits")
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return fmt.Errorf("PIN must contain only digits")
		}
	}
	return nil
}
