package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/garnizeh/pedidos/internal/validation"
	"github.com/garnizeh/pedidos/pkg/models"
	"github.com/garnizeh/pedidos/pkg/repository/mock"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func newManager(t *testing.T) (*Manager, *mock.MockAuthRepo, *mock.MockSessionRepo) {
	t.Helper()
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthRepo(ctrl)
	store := mock.NewMockSessionRepo(ctrl)
	v, err := validation.Default()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	m := NewManager(auth, store, v, nil)
	m.SetClock(func() time.Time { return fixedNow })
	return m, auth, store
}

func TestLogin_DecodesClaimsAndPersists(t *testing.T) {
	m, auth, store := newManager(t)
	ctx := context.Background()
	exp := fixedNow.Add(time.Hour)
	tok := signed(t, jwt.MapClaims{"id": 9, "rol": "tecnico", "exp": exp.Unix()})

	auth.EXPECT().Login(gomock.Any(), models.LoginRequest{Email: "tom@example.com", Password: "pw"}).
		Return(&models.AuthResponse{Token: tok, Usuario: models.Usuario{Email: "tom@example.com"}}, nil)
	store.EXPECT().SaveSession(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s *models.Session) error {
		if s.Token != tok || !s.ExpiresAt.Equal(exp) {
			t.Errorf("unexpected saved session %+v", s)
		}
		return nil
	})

	s, err := m.Login(ctx, "tom@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.Usuario.ID != 9 || s.Usuario.Rol != models.RolTecnico {
		t.Fatalf("expected usuario filled from claims, got %+v", s.Usuario)
	}
	if m.Token() != tok {
		t.Fatalf("expected Token to return the session token")
	}
	if _, err := m.Require(models.RolTecnico); err != nil {
		t.Fatalf("Require tecnico: %v", err)
	}
	if _, err := m.Require(models.RolCliente); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for cliente, got %v", err)
	}
}

func TestLogin_InvalidFormNeverCallsAPI(t *testing.T) {
	m, _, _ := newManager(t)

	_, err := m.Login(context.Background(), "nope", "")
	if !errors.Is(err, validation.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if m.Current() != nil {
		t.Fatalf("expected no session")
	}
}

func TestLogin_APIErrorIsWrapped(t *testing.T) {
	m, auth, _ := newManager(t)
	apiErr := errors.New("boom")
	auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, apiErr)

	if _, err := m.Login(context.Background(), "ana@example.com", "pw"); !errors.Is(err, apiErr) {
		t.Fatalf("expected wrapped api error, got %v", err)
	}
}

func TestLogin_OpaqueTokenHasNoExpiry(t *testing.T) {
	m, auth, store := newManager(t)
	auth.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(&models.AuthResponse{Token: "opaque", Usuario: models.Usuario{ID: 1, Rol: models.RolCliente}}, nil)
	store.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)

	s, err := m.Login(context.Background(), "ana@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !s.ExpiresAt.IsZero() || m.Current() == nil {
		t.Fatalf("expected a live session without expiry, got %+v", s)
	}
}

func TestHydrate(t *testing.T) {
	t.Run("none stored", func(t *testing.T) {
		m, _, store := newManager(t)
		store.EXPECT().LoadSession(gomock.Any()).Return(nil, nil)
		if _, err := m.Hydrate(context.Background()); !errors.Is(err, ErrNoSession) {
			t.Fatalf("expected ErrNoSession, got %v", err)
		}
	})

	t.Run("valid", func(t *testing.T) {
		m, _, store := newManager(t)
		stored := &models.Session{Usuario: models.Usuario{ID: 3, Rol: models.RolCliente}, Token: "t", ExpiresAt: fixedNow.Add(time.Minute)}
		store.EXPECT().LoadSession(gomock.Any()).Return(stored, nil)
		s, err := m.Hydrate(context.Background())
		if err != nil {
			t.Fatalf("Hydrate: %v", err)
		}
		if s.Usuario.ID != 3 || m.Token() != "t" {
			t.Fatalf("unexpected session %+v", s)
		}
	})

	t.Run("expired is cleared", func(t *testing.T) {
		m, _, store := newManager(t)
		stored := &models.Session{Usuario: models.Usuario{ID: 3}, Token: "t", ExpiresAt: fixedNow}
		store.EXPECT().LoadSession(gomock.Any()).Return(stored, nil)
		store.EXPECT().ClearSession(gomock.Any()).Return(nil)
		if _, err := m.Hydrate(context.Background()); !errors.Is(err, ErrNoSession) {
			t.Fatalf("expected ErrNoSession, got %v", err)
		}
		if m.Token() != "" {
			t.Fatalf("expected no token after expired hydrate")
		}
	})
}

func TestCurrent_ExpiresWithClock(t *testing.T) {
	m, _, store := newManager(t)
	store.EXPECT().LoadSession(gomock.Any()).Return(&models.Session{Token: "t", ExpiresAt: fixedNow.Add(time.Minute)}, nil)
	if _, err := m.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	m.SetClock(func() time.Time { return fixedNow.Add(2 * time.Minute) })
	if m.Current() != nil {
		t.Fatalf("expected session to be expired")
	}
	if _, err := m.Require(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	m, _, store := newManager(t)
	store.EXPECT().LoadSession(gomock.Any()).Return(&models.Session{Token: "t"}, nil)
	store.EXPECT().ClearSession(gomock.Any()).Return(nil)

	if _, err := m.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if m.Current() != nil {
		t.Fatalf("expected no session after logout")
	}
}

func TestRegister(t *testing.T) {
	m, auth, _ := newManager(t)
	req := models.RegisterRequest{Email: "ana@example.com", Password: "secret1", Nombre: "Ana", Apellido: "Paz", Rol: models.RolCliente}
	auth.EXPECT().Register(gomock.Any(), req).Return(&models.AuthResponse{Usuario: models.Usuario{ID: 4, Email: req.Email, Rol: req.Rol}}, nil)

	u, err := m.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID != 4 {
		t.Fatalf("unexpected usuario %+v", u)
	}
	if m.Current() != nil {
		t.Fatalf("register must not sign in")
	}

	req.Rol = models.RolAdmin
	if _, err := m.Register(context.Background(), req); !errors.Is(err, validation.ErrValidation) {
		t.Fatalf("expected ErrValidation for admin rol, got %v", err)
	}
}

func TestManager_ConcurrentReads(t *testing.T) {
	m, auth, store := newManager(t)
	auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(&models.AuthResponse{Token: "opaque", Usuario: models.Usuario{ID: 1}}, nil)
	store.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().ClearSession(gomock.Any()).Return(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = m.Token()
				_ = m.Current()
			}
		}()
	}
	if _, err := m.Login(context.Background(), "ana@example.com", "pw"); err != nil {
		t.Errorf("Login: %v", err)
	}
	if err := m.Logout(context.Background()); err != nil {
		t.Errorf("Logout: %v", err)
	}
	wg.Wait()
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Fatalf("expected no session in empty context")
	}
	s := &models.Session{Token: "t"}
	got, ok := FromContext(NewContext(ctx, s))
	if !ok || got != s {
		t.Fatalf("expected session from context")
	}
	if _, ok := FromContext(NewContext(ctx, nil)); ok {
		t.Fatalf("expected nil session to be reported missing")
	}
}

func TestParseClaims(t *testing.T) {
	exp := fixedNow.Add(time.Hour)
	c, err := ParseClaims(signed(t, jwt.MapClaims{"sub": "12", "email": "x@y.z", "rol": "admin", "exp": exp.Unix()}))
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if c.UsuarioID != 12 || c.Rol != models.RolAdmin || c.Email != "x@y.z" || !c.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected claims %+v", c)
	}

	if _, err := ParseClaims("not-a-jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	fs := NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	s, err := fs.LoadSession(ctx)
	if err != nil || s != nil {
		t.Fatalf("expected empty store, got %+v, %v", s, err)
	}

	want := &models.Session{Usuario: models.Usuario{ID: 2, Email: "a@b.c", Rol: models.RolCliente}, Token: "tok", ExpiresAt: fixedNow}
	if err := fs.SaveSession(ctx, want); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	got, err := fs.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if got.Token != "tok" || got.Usuario.ID != 2 || !got.ExpiresAt.Equal(fixedNow) {
		t.Fatalf("unexpected session %+v", got)
	}

	if err := fs.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if err := fs.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession twice: %v", err)
	}
	if got, _ := fs.LoadSession(ctx); got != nil {
		t.Fatalf("expected empty store after clear")
	}
	if err := fs.SaveSession(ctx, nil); err == nil {
		t.Fatalf("expected error saving nil session")
	}
}
