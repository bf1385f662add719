package middleware

import (
	"context"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
)

type ContextKey string

const principalCtxKey = ContextKey("principal")

// Principal is the authenticated caller of a guarded route.
type Principal struct {
	ID        string
	Kind      entity.Kind
	TokenID   string
	ExpiresAt time.Time
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey).(Principal)
	return p, ok
}
