package usecase

import (
	"context"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/auth"
	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
)

type ActivationCodec interface {
	Encode(payload auth.ActivationPayload) (string, error)
	Decode(token string, kind entity.Kind) (*auth.ActivationPayload, error)
}

type SessionIssuer interface {
	Issue(accountID string, kind entity.Kind) (string, time.Time, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// AvatarRemover deletes an uploaded avatar that no account will reference.
type AvatarRemover interface {
	Delete(ctx context.Context, ref string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, subject string, message interface{}) error
}
