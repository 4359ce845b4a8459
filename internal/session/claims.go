package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/garnizeh/pedidos/pkg/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the parts of the API token the client relies on.
type Claims struct {
	UsuarioID int64
	Email     string
	Rol       models.Rol
	ExpiresAt time.Time
}

// ParseClaims reads the token payload without verifying the signature; the
// API is the only party that can verify it.
func ParseClaims(token string) (Claims, error) {
	var c Claims
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return c, fmt.Errorf("parse token: %w", err)
	}

	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time.UTC()
	}
	switch v := mc["id"].(type) {
	case float64:
		c.UsuarioID = int64(v)
	case string:
		c.UsuarioID, _ = strconv.ParseInt(v, 10, 64)
	}
	if c.UsuarioID == 0 {
		if sub, err := mc.GetSubject(); err == nil {
			c.UsuarioID, _ = strconv.ParseInt(sub, 10, 64)
		}
	}
	if v, ok := mc["email"].(string); ok {
		c.Email = v
	}
	if v, ok := mc["rol"].(string); ok {
		c.Rol = models.Rol(v)
	}
	return c, nil
}
