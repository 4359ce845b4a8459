package models

import "time"

// Records owned by the REST API. The client only null-checks them; field
// names follow the JSON bodies served under /api.

type Rol string

const (
	RolCliente Rol = "cliente"
	RolTecnico Rol = "tecnico"
	RolAdmin   Rol = "admin"
)

type Usuario struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Nombre   *string `json:"nombre,omitempty"`
	Apellido *string `json:"apellido,omitempty"`
	Telefono *string `json:"telefono,omitempty"`
	Rol      Rol     `json:"rol"`
}

type Cliente struct {
	ID        int64   `json:"id"`
	UsuarioID int64   `json:"usuarioId"`
	Direccion *string `json:"direccion,omitempty"`
	Ciudad    *string `json:"ciudad,omitempty"`
}

type Tecnico struct {
	ID          int64    `json:"id"`
	UsuarioID   int64    `json:"usuarioId"`
	Matricula   *string  `json:"matricula,omitempty"`
	Descripcion *string  `json:"descripcion,omitempty"`
	Promedio    *float64 `json:"promedio,omitempty"`
}

type Area struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
}

type TecnicoArea struct {
	ID        int64 `json:"id"`
	TecnicoID int64 `json:"tecnicoId"`
	AreaID    int64 `json:"areaId"`
}

// Factura is a membership fee billed to a technician.
type Factura struct {
	ID           int64      `json:"id"`
	TecnicoID    int64      `json:"tecnicoId"`
	Monto        float64    `json:"monto"`
	Periodo      *string    `json:"periodo,omitempty"`
	FechaEmision *time.Time `json:"fechaEmision,omitempty"`
	FechaPago    *time.Time `json:"fechaPago,omitempty"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Telefono string `json:"telefono,omitempty"`
	Rol      Rol    `json:"rol"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both auth endpoints.
type AuthResponse struct {
	Token   string  `json:"token"`
	Usuario Usuario `json:"usuario"`
}

// Session is the authenticated user plus bearer token. ExpiresAt is zero
// when the token carries no exp claim.
type Session struct {
	Usuario   Usuario   `json:"usuario"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session token is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
