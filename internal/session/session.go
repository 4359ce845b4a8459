// Package session keeps the signed-in user and bearer token for the client.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/garnizeh/pedidos/internal/validation"
	"github.com/garnizeh/pedidos/pkg/models"
	"github.com/garnizeh/pedidos/pkg/repository"
)

var (
	// ErrNoSession is returned when nobody is signed in or the token expired.
	ErrNoSession = errors.New("no active session")
	// ErrForbidden is returned when the signed-in rol may not perform an operation.
	ErrForbidden = errors.New("operation not allowed for this rol")
)

// Manager owns the current session. It is safe for concurrent use.
type Manager struct {
	auth      repository.AuthRepo
	store     repository.SessionRepo
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time

	mu  sync.RWMutex
	cur *models.Session
}

// NewManager wires a Manager. v and logger may be nil.
func NewManager(auth repository.AuthRepo, store repository.SessionRepo, v *validation.Validator, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Manager{auth: auth, store: store, validator: v, logger: logger, now: time.Now}
}

// SetClock replaces the time source used for expiry checks.
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// Hydrate loads the stored session. An expired session is removed from the
// store and reported as ErrNoSession.
func (m *Manager) Hydrate(ctx context.Context) (*models.Session, error) {
	s, err := m.store.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s == nil {
		return nil, ErrNoSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s.Expired(m.now()) {
		m.cur = nil
		if err := m.store.ClearSession(ctx); err != nil {
			return nil, fmt.Errorf("clear expired session: %w", err)
		}
		m.logger.Info("session: stored token expired", slog.Int64("usuario_id", s.Usuario.ID))
		return nil, ErrNoSession
	}
	m.cur = s
	return clone(s), nil
}

// Login authenticates, decodes the token claims and persists the session.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.Session, error) {
	req := models.LoginRequest{Email: email, Password: password}
	if m.validator != nil {
		if err := m.validator.Login(ctx, req); err != nil {
			return nil, err
		}
	}

	res, err := m.auth.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s := &models.Session{Usuario: res.Usuario, Token: res.Token}
	if c, err := ParseClaims(res.Token); err != nil {
		m.logger.Warn("session: token claims not readable", slog.String("err", err.Error()))
	} else {
		s.ExpiresAt = c.ExpiresAt
		if s.Usuario.ID == 0 {
			s.Usuario.ID = c.UsuarioID
		}
		if s.Usuario.Rol == "" {
			s.Usuario.Rol = c.Rol
		}
	}

	if err := m.store.SaveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	m.mu.Lock()
	m.cur = s
	m.mu.Unlock()
	m.logger.Info("session: signed in", slog.Int64("usuario_id", s.Usuario.ID), slog.String("rol", string(s.Usuario.Rol)))
	return clone(s), nil
}

// Register creates an account. It does not sign the user in.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (*models.Usuario, error) {
	if m.validator != nil {
		if err := m.validator.Register(ctx, req); err != nil {
			return nil, err
		}
	}
	res, err := m.auth.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	u := res.Usuario
	return &u, nil
}

// Logout forgets the session in memory and in the store.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.cur = nil
	m.mu.Unlock()
	if err := m.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns a copy of the live session, or nil.
func (m *Manager) Current() *models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cur == nil || m.cur.Expired(m.now()) {
		return nil
	}
	return clone(m.cur)
}

// Token returns the bearer token of the live session, or "".
func (m *Manager) Token() string {
	if s := m.Current(); s != nil {
		return s.Token
	}
	return ""
}

// Require returns the live session when its rol is one of roles (any rol
// when none are given).
func (m *Manager) Require(roles ...models.Rol) (*models.Session, error) {
	s := m.Current()
	if s == nil {
		return nil, ErrNoSession
	}
	if len(roles) > 0 && !slices.Contains(roles, s.Usuario.Rol) {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, s.Usuario.Rol)
	}
	return s, nil
}

func clone(s *models.Session) *models.Session {
	c := *s
	return &c
}

type ctxKey struct{}

// NewContext returns a context carrying s.
func NewContext(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by NewContext.
func FromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*models.Session)
	return s, ok && s != nil
}
