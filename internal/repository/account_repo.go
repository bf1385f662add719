package repository

import (
	"context"

	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
)

// AccountRepository stores one kind of account. Implementations never return
// the password hash except from FindByEmailWithSecret.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindByEmailWithSecret(ctx context.Context, email string) (*entity.Account, error)
	FindByID(ctx context.Context, id string) (*entity.Account, error)
	// Create returns ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, account *entity.Account) (*entity.Account, error)
}
