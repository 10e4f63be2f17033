package requestid

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

const Header = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestID присваивает запросу идентификатор. Идентификатор клиента
// из заголовка X-Request-ID сохраняется, иначе генерируется новый.
type RequestID struct {
	generate func() string
}

func New() *RequestID {
	return &RequestID{generate: func() string { return uuid.NewString() }}
}

// Middleware кладёт идентификатор в контекст и возвращает его в ответе.
func (r *RequestID) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := ctx.Header(Header)
		if id == "" {
			id = r.generate()
		}
		ctx.SetHeader(Header, id)

		newCtx := WithRequestID(ctx.Context(), id)
		next(huma.WithContext(ctx, newCtx))
	}
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}
