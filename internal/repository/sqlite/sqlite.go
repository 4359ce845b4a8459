package sqlite

import (
	"io"
	"log/slog"
	"time"

	"github.com/garnizeh/pedidos/internal/db"
	"github.com/garnizeh/pedidos/pkg/repository"
)

// SQLiteRepo implements the local repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
	now    func() time.Time
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.SessionRepo = (*SQLiteRepo)(nil)
var _ repository.MutationRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &SQLiteRepo{conn: conn, logger: logger, now: time.Now}
}

func (r *SQLiteRepo) millis() int64 {
	return r.now().UTC().UnixMilli()
}
