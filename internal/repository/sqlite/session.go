package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/garnizeh/pedidos/pkg/models"
)

// LoadSession returns the stored session, or nil when nobody is signed in.
func (r *SQLiteRepo) LoadSession(ctx context.Context) (*models.Session, error) {
	row := r.conn.QueryRow(ctx, `SELECT usuario_json, token, expires_at FROM sessions WHERE id = 1`)
	var (
		usuarioJSON string
		s           models.Session
		expires     int64
	)
	if err := row.Scan(&usuarioJSON, &s.Token, &expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(usuarioJSON), &s.Usuario); err != nil {
		return nil, fmt.Errorf("decode stored usuario: %w", err)
	}
	if expires > 0 {
		s.ExpiresAt = time.UnixMilli(expires).UTC()
	}
	return &s, nil
}

// SaveSession replaces the stored session.
func (r *SQLiteRepo) SaveSession(ctx context.Context, s *models.Session) error {
	if s == nil {
		return fmt.Errorf("session is nil")
	}
	b, err := json.Marshal(s.Usuario)
	if err != nil {
		return fmt.Errorf("encode usuario: %w", err)
	}
	var expires int64
	if !s.ExpiresAt.IsZero() {
		expires = s.ExpiresAt.UTC().UnixMilli()
	}
	_, err = r.conn.Exec(ctx, `INSERT INTO sessions (id, usuario_json, token, expires_at, saved) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET usuario_json = excluded.usuario_json, token = excluded.token, expires_at = excluded.expires_at, saved = excluded.saved`,
		string(b), s.Token, expires, r.millis())
	return err
}

// ClearSession removes the stored session. Clearing an empty store is not an error.
func (r *SQLiteRepo) ClearSession(ctx context.Context) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM sessions WHERE id = 1`)
	return err
}
