package fakeapi_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/garnizeh/pedidos/internal/fakeapi"
	"github.com/golang-jwt/jwt/v5"
)

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := fakeapi.CORSMiddleware(next)

	reqOpt := httptest.NewRequest(http.MethodOptions, "/cors", nil)
	wOpt := httptest.NewRecorder()
	handler.ServeHTTP(wOpt, reqOpt)
	if wOpt.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for OPTIONS, got %d", wOpt.Code)
	}
	if got := wOpt.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "Idempotency-Key") {
		t.Fatalf("expected Idempotency-Key in allowed headers, got %q", got)
	}

	wGet := httptest.NewRecorder()
	handler.ServeHTTP(wGet, httptest.NewRequest(http.MethodGet, "/cors", nil))
	if wGet.Code != http.StatusOK {
		t.Fatalf("expected 200 for GET, got %d", wGet.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	pan := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	w := httptest.NewRecorder()
	fakeapi.RecoveryMiddleware(pan).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from panic recovery, got %d", w.Code)
	}
	b, _ := io.ReadAll(w.Body)
	if !strings.Contains(string(b), "Internal Server Error") {
		t.Fatalf("unexpected body for recovery: %s", string(b))
	}
}

func TestJWTAuthMiddlewareWithSecret(t *testing.T) {
	secret := "s3cr3t"
	var gotID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = fakeapi.UsuarioID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := fakeapi.JWTAuthMiddlewareWithSecret(secret)(next)

	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 1, "exp": time.Now().Add(-time.Minute).Unix()}).SignedString([]byte(secret))
	other, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 1, "exp": time.Now().Add(time.Hour).Unix()}).SignedString([]byte("other"))

	cases := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "MissingHeader", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "EmptyBearer", authHeader: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "BadToken", authHeader: "Bearer bad.token.here", wantStatus: http.StatusUnauthorized},
		{name: "Expired", authHeader: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "WrongSecret", authHeader: "Bearer " + other, wantStatus: http.StatusUnauthorized},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/jwt", nil)
			if c.authHeader != "" {
				req.Header.Set("Authorization", c.authHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code != c.wantStatus {
				t.Fatalf("%s: want %d got %d", c.name, c.wantStatus, w.Code)
			}
		})
	}

	tokStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 42, "exp": time.Now().Add(time.Hour).Unix()}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/jwt", nil)
	req.Header.Set("Authorization", "Bearer "+tokStr)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200 got %d", w.Code)
	}
	if gotID != 42 {
		t.Fatalf("expected usuario id 42 in context, got %d", gotID)
	}
}

func TestIdempotencyMiddleware(t *testing.T) {
	var calls int32
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
		_, _ = fmt.Fprintf(w, `{"n":%d}`, n)
	})
	idem := fakeapi.NewIdempotency()
	handler := idem.Middleware(next)

	send := func(method, path, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(`{}`))
		if key != "" {
			req.Header.Set("Idempotency-Key", key)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	first := send(http.MethodPost, "/api/pedido-candidatos", "k-1")
	second := send(http.MethodPost, "/api/pedido-candidatos", "k-1")
	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Fatalf("expected replay of %q, got %d %q", first.Body.String(), second.Code, second.Body.String())
	}

	if w := send(http.MethodPut, "/api/pedidos/1", "k-1"); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for key reuse on another route, got %d", w.Code)
	}

	send(http.MethodPost, "/api/pedido-candidatos", "")
	send(http.MethodGet, "/api/pedidos", "k-2")
	if calls != 3 {
		t.Fatalf("expected unkeyed and GET requests to pass through, calls=%d", calls)
	}
	if idem.Len() != 1 {
		t.Fatalf("expected 1 remembered key, got %d", idem.Len())
	}
}
