package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"
)

// PendingKey returns the key of the newest unconfirmed mutation for the
// pedido and action, or "" when there is none.
func (r *SQLiteRepo) PendingKey(ctx context.Context, pedidoID int64, action string) (string, error) {
	row := r.conn.QueryRow(ctx, `SELECT idempotency_key FROM pending_mutations
		WHERE pedido_id = ? AND action = ? AND completed IS NULL
		ORDER BY created DESC LIMIT 1`, pedidoID, action)
	var key string
	if err := row.Scan(&key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return key, nil
}

// RecordMutation journals key before the request is sent. Recording the
// same key twice is a no-op.
func (r *SQLiteRepo) RecordMutation(ctx context.Context, key string, pedidoID int64, action string) error {
	_, err := r.conn.Exec(ctx, `INSERT OR IGNORE INTO pending_mutations (idempotency_key, pedido_id, action, created) VALUES (?, ?, ?, ?)`,
		key, pedidoID, action, r.millis())
	return err
}

// CompleteMutation marks key as confirmed by the API.
func (r *SQLiteRepo) CompleteMutation(ctx context.Context, key string) error {
	_, err := r.conn.Exec(ctx, `UPDATE pending_mutations SET completed = ? WHERE idempotency_key = ? AND completed IS NULL`, r.millis(), key)
	return err
}

// PruneMutations deletes completed entries older than age and returns how
// many were removed.
func (r *SQLiteRepo) PruneMutations(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := r.now().Add(-age).UTC().UnixMilli()
	res, err := r.conn.Exec(ctx, `DELETE FROM pending_mutations WHERE completed IS NOT NULL AND completed < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.logger.Info("sqlite: pruned completed mutations", slog.Int64("count", n))
	}
	return n, nil
}
