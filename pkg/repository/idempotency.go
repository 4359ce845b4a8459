package repository

import "context"

type ctxKey string

const idempotencyKey ctxKey = "idempotency_key"

// WithIdempotencyKey returns a context whose mutations are sent with key.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey, key)
}

// IdempotencyKey returns the key stored by WithIdempotencyKey, or "".
func IdempotencyKey(ctx context.Context) string {
	if v, ok := ctx.Value(idempotencyKey).(string); ok {
		return v
	}
	return ""
}
