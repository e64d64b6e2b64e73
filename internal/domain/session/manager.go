package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/infrastructure/api"
	"github.com/your-org/storefront-client/internal/infrastructure/storage"
)

// Storage keys for persisted session state. Fixed: the remote original used
// the same two localStorage keys.
const (
	tokenKey = "token"
	userKey  = "user"
)

// ErrNotAuthenticated is returned by RequireAuth for anonymous sessions.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Session is the current authentication state. A session exists iff Token is
// non-empty.
type Session struct {
	Token string
	User  *api.User
}

// IsAuthenticated reports whether a user is logged in.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Manager owns the session: it seeds from storage at startup, keeps the API
// client's token in sync, and persists changes back.
type Manager struct {
	store  storage.Store
	client *api.Client
	logger *logrus.Logger

	mu      sync.RWMutex
	current Session
}

// NewManager creates a session manager. Call Restore before first use.
func NewManager(store storage.Store, client *api.Client, logger *logrus.Logger) *Manager {
	return &Manager{
		store:  store,
		client: client,
		logger: logger,
	}
}

// Restore seeds the session from storage. A stored token is installed on the
// API client immediately; an unreadable stored user is discarded rather than
// failing startup.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Get(ctx, tokenKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: restore token: %w", err)
	}

	session := Session{Token: token}
	if userJSON, err := m.store.Get(ctx, userKey); err == nil {
		var user api.User
		if jsonErr := json.Unmarshal([]byte(userJSON), &user); jsonErr == nil {
			session.User = &user
		} else {
			m.logger.WithField("error", jsonErr.Error()).Warn("discarding unreadable stored user")
		}
	}

	m.setSession(ctx, session, false)
	return nil
}

// Login authenticates and establishes a session. The token is persisted only
// when remember is set; otherwise the session lives in memory until the
// process exits.
func (m *Manager) Login(ctx context.Context, creds api.Credentials, remember bool) (Session, error) {
	resp, err := m.client.Login(ctx, creds)
	if err != nil {
		return Session{}, err
	}

	session := Session{Token: resp.Token, User: &resp.User}
	m.setSession(ctx, session, remember)

	m.logger.WithField("email", resp.User.Email).Info("logged in")
	return session, nil
}

// Logout destroys the session and clears persisted state.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.current = Session{}
	m.mu.Unlock()

	m.client.ClearToken()

	if err := m.store.Delete(ctx, tokenKey); err != nil {
		m.logger.WithField("error", err.Error()).Warn("failed to clear stored token")
	}
	if err := m.store.Delete(ctx, userKey); err != nil {
		m.logger.WithField("error", err.Error()).Warn("failed to clear stored user")
	}
}

// Verify checks the current token against the server and refreshes the user
// profile. A failed verification destroys the session, matching the
// original: a token the server rejects is gone for good.
func (m *Manager) Verify(ctx context.Context) error {
	if !m.Current().IsAuthenticated() {
		return ErrNotAuthenticated
	}

	user, err := m.client.Verify(ctx)
	if err != nil {
		m.logger.WithField("error", err.Error()).Info("token verification failed, destroying session")
		m.Logout(ctx)
		return err
	}

	m.mu.Lock()
	m.current.User = &user
	m.mu.Unlock()

	if userJSON, err := json.Marshal(user); err == nil {
		if setErr := m.store.Set(ctx, userKey, string(userJSON)); setErr != nil {
			m.logger.WithField("error", setErr.Error()).Warn("failed to persist verified user")
		}
	}
	return nil
}

// Current returns the session snapshot.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsAuthenticated reports whether a user is logged in.
func (m *Manager) IsAuthenticated() bool {
	return m.Current().IsAuthenticated()
}

// RequireAuth is the route-guard predicate: nil for authenticated sessions,
// ErrNotAuthenticated otherwise.
func (m *Manager) RequireAuth() error {
	if !m.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// TokenExpired inspects the token's exp claim without verifying the
// signature; the server owns the secret and performs real verification. A
// token that does not parse as a JWT is treated as unexpired and left for
// the server to judge.
func (m *Manager) TokenExpired() bool {
	session := m.Current()
	if session.Token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(session.Token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (m *Manager) setSession(ctx context.Context, session Session, persist bool) {
	m.mu.Lock()
	m.current = session
	m.mu.Unlock()

	m.client.SetToken(session.Token)

	if !persist {
		return
	}
	if err := m.store.Set(ctx, tokenKey, session.Token); err != nil {
		m.logger.WithField("error", err.Error()).Warn("failed to persist token")
	}
	if session.User != nil {
		if userJSON, err := json.Marshal(session.User); err == nil {
			if setErr := m.store.Set(ctx, userKey, string(userJSON)); setErr != nil {
				m.logger.WithField("error", setErr.Error()).Warn("failed to persist user")
			}
		}
	}
}
