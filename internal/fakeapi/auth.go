package fakeapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/garnizeh/pedidos/pkg/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	store         *Store
	jwtSecret     string
	tokenDuration time.Duration
	now           func() time.Time
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(store *Store, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{store: store, jwtSecret: jwtSecret, tokenDuration: tokenDuration, now: time.Now}
}

// issue signs a token carrying the claims the client session reads.
func (h *AuthHandler) issue(u models.Usuario) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    u.ID,
		"email": u.Email,
		"rol":   string(u.Rol),
		"exp":   h.now().Add(h.tokenDuration).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *AuthHandler) respond(w http.ResponseWriter, status int, rec Record) {
	var u models.Usuario
	if err := decodeRecord(rec, &u); err != nil {
		writeError(w, http.StatusInternalServerError, "error reading usuario")
		return
	}
	tok, err := h.issue(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error signing token")
		return
	}
	writeJSON(w, status, models.AuthResponse{Token: tok, Usuario: u})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}
	if req.Rol != models.RolCliente && req.Rol != models.RolTecnico {
		writeError(w, http.StatusBadRequest, "rol must be cliente or tecnico")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error hashing password")
		return
	}

	usuario := Record{"email": req.Email, "nombre": req.Nombre, "apellido": req.Apellido, "rol": string(req.Rol)}
	if req.Telefono != "" {
		usuario["telefono"] = req.Telefono
	}
	u, err := h.store.Register(usuario, hash)
	if errors.Is(err, ErrEmailTaken) {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error creating usuario")
		return
	}
	logger.Info("usuario registered", slog.Any("id", u["id"]), slog.String("rol", string(req.Rol)))
	h.respond(w, http.StatusCreated, u)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}

	u, hash, err := h.store.Credential(req.Email)
	if err != nil || bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "credentials not found")
		return
	}
	h.respond(w, http.StatusOK, u)
}
