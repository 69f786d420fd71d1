package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header HTTP заголовок с идентификатором запроса
const Header = "X-Request-ID"

type ctxKey struct{}

// New генерирует новый идентификатор запроса
func New() string {
	return uuid.NewString()
}

// WithRequestID кладет идентификатор запроса в контекст
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext достает идентификатор запроса из контекста
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
