package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/garnizeh/pedidos/internal/fakeapi"
	"github.com/garnizeh/pedidos/internal/pedidos"
	"github.com/garnizeh/pedidos/internal/session"
	"github.com/garnizeh/pedidos/internal/validation"
	"github.com/garnizeh/pedidos/pkg/client"
	"github.com/garnizeh/pedidos/pkg/lifecycle"
	"github.com/garnizeh/pedidos/pkg/models"
)

func TestMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"busy", fmt.Errorf("cancel: %w", pedidos.ErrBusy), "operación en curso"},
		{"transition", &lifecycle.TransitionError{Action: lifecycle.ActionCancel, Estado: models.EstadoCalificado}, "no está permitida"},
		{"no session", session.ErrNoSession, "iniciar sesión"},
		{"forbidden", pedidos.ErrForbidden, "no tenés permiso"},
		{"network", fmt.Errorf("get pedido 1: %w", client.ErrNetwork), "no se pudo conectar"},
		{"auth", fmt.Errorf("login: %w", client.ErrAuth), "credenciales inválidas"},
		{"validation", &validation.ValidationError{Form: "pedido", Fields: []validation.FieldError{{Field: "areaId", Message: "required"}}}, "areaId: required"},
		{"incomplete", &pedidos.IncompleteError{PedidoID: 7, Dia: models.DiaMartes, Err: client.ErrNetwork}, "el pedido 7 se creó"},
		{"usage", usagef("falta el número de pedido"), "falta el número de pedido"},
		{"unknown", errors.New("boom"), "ocurrió un error inesperado"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := message(tc.err); !strings.Contains(got, tc.want) {
				t.Fatalf("message(%v) = %q, want it to contain %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestParseSlot(t *testing.T) {
	d, err := parseSlot("Lunes 09:00-12:30")
	if err != nil || d.Dia != models.DiaLunes || d.HoraInicio != "09:00" || d.HoraFin != "12:30" {
		t.Fatalf("unexpected slot %+v, %v", d, err)
	}
	for _, bad := range []string{"", "lunes", "feriado 09:00-10:00", "lunes 09:00"} {
		if _, err := parseSlot(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

// cli runs commands against a fake API, one session database per user.
type cli struct {
	t   *testing.T
	url string
	dir string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	fakeapi.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	api, err := fakeapi.New(fakeapi.Options{JWTSecret: "cli-test", Seed: true})
	if err != nil {
		t.Fatalf("fakeapi.New: %v", err)
	}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Setenv("PEDIDOS_ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("PEDIDOS_API_URL", srv.URL+fakeapi.BasePath)
	t.Setenv("PEDIDOS_LOG_LEVEL", "error")
	t.Setenv("PEDIDOS_FINALIZE_POLICY", "cliente")
	t.Setenv("PEDIDOS_SESSION_STORE", "sqlite")
	return &cli{t: t, url: srv.URL, dir: dir}
}

func (c *cli) as(user string, args ...string) (int, string, string) {
	c.t.Helper()
	c.t.Setenv("PEDIDOS_DATABASE_PATH", filepath.Join(c.dir, user+".db"))
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func (c *cli) ok(user string, args ...string) string {
	c.t.Helper()
	code, out, errOut := c.as(user, args...)
	if code != 0 {
		c.t.Fatalf("%s %v: exit %d, stderr %q", user, args, code, errOut)
	}
	return out
}

func (c *cli) fails(user, want string, args ...string) {
	c.t.Helper()
	code, _, errOut := c.as(user, args...)
	if code != 1 || !strings.HasPrefix(errOut, "ERROR: ") || !strings.Contains(errOut, want) {
		c.t.Fatalf("%s %v: expected failure containing %q, got exit %d stderr %q", user, args, want, code, errOut)
	}
}

func TestRun_Usage(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(context.Background(), nil, &out, &errOut); code != 1 || !strings.Contains(errOut.String(), "Comandos:") {
		t.Fatalf("expected usage with exit 1, got %d %q", code, errOut.String())
	}
	errOut.Reset()
	if code := run(context.Background(), []string{"bogus"}, &out, &errOut); code != 1 || !strings.Contains(errOut.String(), "comando desconocido") {
		t.Fatalf("expected unknown command error, got %d %q", code, errOut.String())
	}
	out.Reset()
	if code := run(context.Background(), []string{"version"}, &out, &errOut); code != 0 || !strings.HasPrefix(out.String(), "pedidos ") {
		t.Fatalf("expected version, got %d %q", code, out.String())
	}
}

func TestRun_PedidoLifecycle(t *testing.T) {
	c := newCLI(t)

	c.fails("ana", "iniciar sesión", "list")

	out := c.ok("ana", "register", "-email", "ana@example.com", "-password", "secreto1", "-nombre", "Ana", "-apellido", "Paz", "-rol", "cliente")
	if !strings.HasPrefix(out, "OK: ") {
		t.Fatalf("expected OK banner, got %q", out)
	}
	c.fails("ana", "revisá los datos", "register", "-email", "no-es-un-mail", "-password", "x", "-rol", "cliente")
	c.fails("ana", "credenciales inválidas", "login", "-email", "ana@example.com", "-password", "incorrecta")
	c.ok("ana", "login", "-email", "ana@example.com", "-password", "secreto1")

	if out := c.ok("ana", "whoami"); !strings.Contains(out, "ana@example.com (cliente)") {
		t.Fatalf("unexpected whoami %q", out)
	}
	if out := c.ok("ana", "areas"); !strings.Contains(out, "Electricidad") {
		t.Fatalf("expected seeded areas, got %q", out)
	}

	c.fails("ana", "horaFin", "create", "-area", "1", "-requerimiento", "Enchufe quemado", "-disp", "lunes 12:00-09:00")
	if out := c.ok("ana", "create", "-area", "1", "-requerimiento", "Enchufe quemado", "-disp", "lunes 09:00-12:00", "-disp", "martes 14:00-16:00"); !strings.Contains(out, "pedido #1 creado") {
		t.Fatalf("unexpected create output %q", out)
	}
	c.fails("ana", "Uso: pedidos cancel", "cancel")

	c.ok("tito", "register", "-email", "tito@example.com", "-password", "secreto1", "-nombre", "Tito", "-apellido", "Gómez", "-rol", "tecnico")
	c.ok("tito", "login", "-email", "tito@example.com", "-password", "secreto1")
	if out := c.ok("tito", "open"); !strings.Contains(out, "Enchufe quemado") {
		t.Fatalf("expected the pedido among open ones, got %q", out)
	}
	c.ok("tito", "apply", "1")
	c.fails("tito", "no está permitida", "apply", "1")
	c.fails("ana", "no tenés permiso", "apply", "1")

	if out := c.ok("ana", "show", "1"); !strings.Contains(out, "técnico 1") || !strings.Contains(out, "lunes 09:00-12:00") {
		t.Fatalf("expected candidatos and disponibilidad in show, got %q", out)
	}
	c.ok("ana", "select", "1", "1")
	c.fails("ana", "no está permitida", "cancel", "1")
	c.ok("ana", "finalize", "1")
	c.fails("ana", "revisá los datos", "rate", "1", "9")
	c.ok("ana", "rate", "-comentario", "Muy prolijo", "1", "5")

	c.ok("tito", "respond", "1", "Gracias", "por", "todo")
	if out := c.ok("tito", "list"); !strings.Contains(out, "Calificado") {
		t.Fatalf("expected the assigned pedido in the tecnico list, got %q", out)
	}

	out = c.ok("ana", "show", "1")
	for _, want := range []string{"Calificado", "Muy prolijo", "Gracias por todo", "Acciones:      -"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}

	c.ok("ana", "logout")
	c.fails("ana", "iniciar sesión", "whoami")
}

func TestRun_AdminCommands(t *testing.T) {
	c := newCLI(t)
	c.ok("admin", "login", "-email", fakeapi.SeedAdminEmail, "-password", fakeapi.SeedAdminPassword)

	if out := c.ok("admin", "areas", "add", "-nombre", "Pintura"); !strings.Contains(out, "área 5 creada") {
		t.Fatalf("unexpected areas add output %q", out)
	}
	c.fails("admin", "revisá los datos", "areas", "add", "-nombre", "")
	c.ok("admin", "areas", "rm", "5")

	if out := c.ok("admin", "usuarios"); !strings.Contains(out, fakeapi.SeedAdminEmail) {
		t.Fatalf("expected admin in usuarios, got %q", out)
	}
	if out := c.ok("admin", "list"); !strings.Contains(out, "No hay pedidos.") {
		t.Fatalf("expected empty list, got %q", out)
	}
	if out := c.ok("admin", "facturas"); !strings.Contains(out, "No hay facturas.") {
		t.Fatalf("expected no facturas, got %q", out)
	}
	c.fails("admin", "estado desconocido", "list", "-estado", "perdido")

	c.ok("ana", "register", "-email", "ana@example.com", "-password", "secreto1", "-nombre", "Ana", "-apellido", "Paz", "-rol", "cliente")
	c.ok("ana", "login", "-email", "ana@example.com", "-password", "secreto1")
	c.fails("ana", "no tenés permiso", "usuarios")
	c.fails("ana", "no tenés permiso", "facturas")
}
