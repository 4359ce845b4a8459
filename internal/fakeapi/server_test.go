package fakeapi_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/garnizeh/pedidos/internal/fakeapi"
	"github.com/garnizeh/pedidos/internal/pedidos"
	"github.com/garnizeh/pedidos/internal/session"
	"github.com/garnizeh/pedidos/internal/validation"
	"github.com/garnizeh/pedidos/pkg/client"
	"github.com/garnizeh/pedidos/pkg/lifecycle"
	"github.com/garnizeh/pedidos/pkg/models"
)

const testSecret = "test-secret"

func newServer(t *testing.T, seed bool) (*fakeapi.Server, *httptest.Server) {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	fakeapi.SetLogger(quiet)
	client.SetLogger(quiet)

	api, err := fakeapi.New(fakeapi.Options{JWTSecret: testSecret, TokenDuration: time.Hour, Seed: seed})
	if err != nil {
		t.Fatalf("fakeapi.New: %v", err)
	}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv
}

func newClient(t *testing.T, srv *httptest.Server) *client.Client {
	t.Helper()
	cfg := client.DefaultConfig()
	cfg.BaseURL = srv.URL + fakeapi.BasePath
	c, err := client.NewClient(cfg, srv.Client())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// actor signs up and in, and returns the service bound to its session.
type actor struct {
	client  *client.Client
	session *session.Manager
	svc     *pedidos.Service
	who     pedidos.Actor
}

func signUp(t *testing.T, srv *httptest.Server, email string, rol models.Rol) *actor {
	t.Helper()
	ctx := context.Background()
	v, err := validation.Default()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	c := newClient(t, srv)
	m := session.NewManager(c, session.NewFileStore(filepath.Join(t.TempDir(), "session.json")), v, nil)
	c.SetTokenSource(m)

	if _, err := m.Register(ctx, models.RegisterRequest{Email: email, Password: "secreto1", Nombre: "Nombre", Apellido: "Apellido", Rol: rol}); err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	sess, err := m.Login(ctx, email, "secreto1")
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	svc := pedidos.New(pedidos.Deps{
		Pedidos:          c,
		Disponibilidades: c,
		Profiles:         c,
		Validator:        v,
		Policy:           lifecycle.FinalizeCliente,
	})
	who, err := svc.ActorFor(ctx, sess)
	if err != nil {
		t.Fatalf("actor for %s: %v", email, err)
	}
	return &actor{client: c, session: m, svc: svc, who: who}
}

func TestHealth(t *testing.T) {
	_, srv := newServer(t, false)
	res, err := srv.Client().Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}

func TestNew_RequiresSecret(t *testing.T) {
	if _, err := fakeapi.New(fakeapi.Options{}); err == nil {
		t.Fatalf("expected error without secret")
	}
}

func TestAuth(t *testing.T) {
	_, srv := newServer(t, true)
	c := newClient(t, srv)
	ctx := context.Background()

	res, err := c.Login(ctx, models.LoginRequest{Email: fakeapi.SeedAdminEmail, Password: fakeapi.SeedAdminPassword})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	claims, err := session.ParseClaims(res.Token)
	if err != nil {
		t.Fatalf("parse claims: %v", err)
	}
	if claims.Rol != models.RolAdmin || claims.UsuarioID != res.Usuario.ID || claims.ExpiresAt.IsZero() {
		t.Fatalf("unexpected claims %+v for usuario %+v", claims, res.Usuario)
	}

	if _, err := c.Login(ctx, models.LoginRequest{Email: fakeapi.SeedAdminEmail, Password: "wrong"}); !errors.Is(err, client.ErrAuth) {
		t.Fatalf("expected ErrAuth for bad password, got %v", err)
	}

	reg := models.RegisterRequest{Email: "x@example.com", Password: "secreto1", Nombre: "X", Apellido: "Y", Rol: models.RolCliente}
	if _, err := c.Register(ctx, reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := c.Register(ctx, reg); !errors.Is(err, client.ErrRejected) {
		t.Fatalf("expected ErrRejected for duplicate email, got %v", err)
	}
	reg.Email, reg.Rol = "y@example.com", models.RolAdmin
	if _, err := c.Register(ctx, reg); !errors.Is(err, client.ErrRejected) {
		t.Fatalf("expected ErrRejected for admin self-registration, got %v", err)
	}

	// resources need a token
	if _, err := c.ListAreas(ctx, nil); !errors.Is(err, client.ErrAuth) {
		t.Fatalf("expected ErrAuth without token, got %v", err)
	}
	c.SetTokenSource(client.TokenFunc(func() string { return res.Token }))
	areas, err := c.ListAreas(ctx, nil)
	if err != nil || len(areas) != 4 {
		t.Fatalf("expected 4 seeded areas, got %v, %v", areas, err)
	}
}

func TestRawRoutes(t *testing.T) {
	_, srv := newServer(t, true)
	c := newClient(t, srv)
	res, err := c.Login(context.Background(), models.LoginRequest{Email: fakeapi.SeedAdminEmail, Password: fakeapi.SeedAdminPassword})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	do := func(method, path, body string) int {
		req, _ := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+res.Token)
		resp, err := srv.Client().Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", method, path, err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown resource", http.MethodGet, "/api/nope", "", http.StatusNotFound},
		{"bad id", http.MethodGet, "/api/areas/abc", "", http.StatusBadRequest},
		{"missing item", http.MethodGet, "/api/areas/99", "", http.StatusNotFound},
		{"body not an object", http.MethodPost, "/api/areas", `[1,2]`, http.StatusBadRequest},
		{"create", http.MethodPost, "/api/areas", `{"nombre":"Pintura"}`, http.StatusCreated},
		{"update missing", http.MethodPut, "/api/areas/99", `{"nombre":"x"}`, http.StatusNotFound},
		{"delete", http.MethodDelete, "/api/areas/1", "", http.StatusNoContent},
		{"wrong method", http.MethodPatch, "/api/areas/2", `{}`, http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := do(tc.method, tc.path, tc.body); got != tc.want {
				t.Fatalf("%s %s: want %d got %d", tc.method, tc.path, tc.want, got)
			}
		})
	}
}

func TestPedidoLifecycleEndToEnd(t *testing.T) {
	api, srv := newServer(t, true)
	ctx := context.Background()

	cli := signUp(t, srv, "cliente@example.com", models.RolCliente)
	tec := signUp(t, srv, "tecnico@example.com", models.RolTecnico)

	created, err := cli.svc.Create(ctx, cli.who, models.PedidoForm{
		AreaID:        1,
		Requerimiento: "Se corta la luz del living",
		Disponibilidades: []models.PedidoDisponibilidad{
			{Dia: models.DiaLunes, HoraInicio: "09:00", HoraFin: "12:00"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := created.Pedido.ID
	if created.Pedido.Estado != models.EstadoSinCandidatos || created.Pedido.FechaCreacion == nil {
		t.Fatalf("unexpected created pedido %+v", created.Pedido)
	}

	open, err := tec.svc.ListOpen(ctx, tec.who)
	if err != nil || len(open) != 1 || open[0].Pedido.ID != id {
		t.Fatalf("expected the new pedido open for the tecnico, got %+v, %v", open, err)
	}

	applied, err := tec.svc.Apply(ctx, tec.who, id)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if applied.Pedido.Estado != models.EstadoConCandidatos || applied.Permissions.Tecnico.Apply {
		t.Fatalf("unexpected view after apply %+v", applied)
	}
	if _, err := tec.svc.Apply(ctx, tec.who, id); !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Fatalf("expected a second apply to be refused, got %v", err)
	}

	selected, err := cli.svc.SelectTecnico(ctx, cli.who, id, tec.who.TecnicoID)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selected.Pedido.Estado != models.EstadoTecnicoSeleccionado || selected.Permissions.Cliente.Cancel {
		t.Fatalf("unexpected view after select %+v", selected)
	}

	if _, err := cli.svc.Finalize(ctx, cli.who, id); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	rated, err := cli.svc.Rate(ctx, cli.who, id, 5, "Excelente")
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rated.Pedido.Estado != models.EstadoCalificado {
		t.Fatalf("expected calificado, got %s", rated.Pedido.Estado)
	}

	if _, err := tec.svc.Respond(ctx, tec.who, id, "Gracias"); err != nil {
		t.Fatalf("respond: %v", err)
	}

	final, err := cli.svc.Get(ctx, cli.who, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	p := final.Pedido
	if p.Respuesta == nil || *p.Respuesta != "Gracias" || p.Calificacion == nil || *p.Calificacion != 5 || p.FechaCierre == nil {
		t.Fatalf("unexpected final pedido %+v", p)
	}
	if len(p.Disponibilidades) != 1 || len(p.Candidatos) != 1 {
		t.Fatalf("expected sub-records kept, got %+v", p)
	}
	if len(final.Permissions.Actions()) != 0 {
		t.Fatalf("expected no actions left, got %v", final.Permissions.Actions())
	}
	if api.Idempotency.Len() == 0 {
		t.Fatalf("expected mutations to carry idempotency keys")
	}
}

func TestPedidoCancelAndDelete(t *testing.T) {
	_, srv := newServer(t, true)
	ctx := context.Background()
	cli := signUp(t, srv, "c2@example.com", models.RolCliente)

	v, err := cli.svc.Create(ctx, cli.who, models.PedidoForm{AreaID: 2, Requerimiento: "Pierde la canilla"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := v.Pedido.ID
	if _, err := cli.svc.AddDisponibilidad(ctx, cli.who, id, models.PedidoDisponibilidad{Dia: models.DiaMartes, HoraInicio: "14:00", HoraFin: "16:00"}); err != nil {
		t.Fatalf("add disponibilidad: %v", err)
	}

	cancelled, err := cli.svc.Cancel(ctx, cli.who, id)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Pedido.Estado != models.EstadoCancelado || cancelled.Pedido.FechaCancelado == nil {
		t.Fatalf("unexpected cancelled pedido %+v", cancelled.Pedido)
	}
	if err := cli.svc.Delete(ctx, cli.who, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := cli.svc.Get(ctx, cli.who, id); !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	ds, err := cli.client.ListDisponibilidades(ctx, id)
	if err != nil || len(ds) != 0 {
		t.Fatalf("expected disponibilidades deleted with the pedido, got %v, %v", ds, err)
	}
}
