// Package fakeapi is an in-memory stand-in for the pedidos REST API, used
// by tests and local development. It stores whatever the client sends and
// enforces only authentication and idempotency keys.
package fakeapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

// BasePath is where the API is mounted.
const BasePath = "/api"

type Options struct {
	JWTSecret     string
	TokenDuration time.Duration
	// Seed loads the demo areas and an admin usuario.
	Seed bool
}

type Server struct {
	Store       *Store
	Idempotency *Idempotency
	router      *mux.Router
}

func New(opts Options) (*Server, error) {
	if opts.JWTSecret == "" {
		return nil, fmt.Errorf("fakeapi: jwt secret is required")
	}
	if opts.TokenDuration <= 0 {
		opts.TokenDuration = time.Hour
	}

	s := &Server{Store: NewStore(), Idempotency: NewIdempotency()}
	if opts.Seed {
		if err := Seed(s.Store); err != nil {
			return nil, err
		}
	}
	s.router = SetupRoutes(s.Store, s.Idempotency, opts)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func SetupRoutes(store *Store, idem *Idempotency, opts Options) *mux.Router {
	r := mux.NewRouter()

	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	authHandler := NewAuthHandler(store, opts.JWTSecret, opts.TokenDuration)
	resourceHandler := NewResourceHandler(store)

	r.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix(BasePath).Subrouter()
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)

	resources := "{resource:" + strings.Join(Resources, "|") + "}"
	protected := api.NewRoute().Subrouter()
	protected.Use(JWTAuthMiddlewareWithSecret(opts.JWTSecret))
	protected.Use(idem.Middleware)
	protected.HandleFunc("/"+resources, resourceHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/"+resources, resourceHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/"+resources+"/{id}", resourceHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/"+resources+"/{id}", resourceHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/"+resources+"/{id}", resourceHandler.Delete).Methods(http.MethodDelete)

	return r
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, `{"status":"ok","service":"pedidos-fakeapi"}`)
}

// Demo credentials loaded by Seed.
const (
	SeedAdminEmail    = "admin@pedidos.local"
	SeedAdminPassword = "admin123"
)

// Seed loads the demo areas and the admin usuario.
func Seed(store *Store) error {
	for _, a := range []Record{
		{"nombre": "Electricidad", "descripcion": "Instalaciones y reparaciones eléctricas"},
		{"nombre": "Plomería", "descripcion": "Cañerías, pérdidas y sanitarios"},
		{"nombre": "Gas", "descripcion": "Artefactos e instalaciones de gas"},
		{"nombre": "Carpintería", "descripcion": "Muebles y aberturas"},
	} {
		if _, err := store.Create(Areas, a); err != nil {
			return fmt.Errorf("seed area: %w", err)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin password: %w", err)
	}
	if _, err := store.Register(Record{"email": SeedAdminEmail, "nombre": "Admin", "apellido": "Pedidos", "rol": "admin"}, hash); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
