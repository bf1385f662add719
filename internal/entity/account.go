package entity

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Kind distinguishes the two account collections.
type Kind string

const (
	KindUser   Kind = "user"
	KindSeller Kind = "seller"
)

func (k Kind) Valid() bool {
	return k == KindUser || k == KindSeller
}

var ErrPasswordMismatch = errors.New("password does not match")

// Account is either a User or a Shop. Address, PhoneNumber and ZipCode are
// only populated for sellers.
type Account struct {
	ID          string    `json:"_id"`
	Kind        Kind      `json:"-"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"` // bcrypt hash, only loaded on credential lookups
	Avatar      string    `json:"avatar"`
	Role        string    `json:"role"`
	Address     string    `json:"address,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	ZipCode     string    `json:"zipCode,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ComparePassword checks plain against the stored hash.
func (a *Account) ComparePassword(plain string) error {
	if a.Password == "" {
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}

// DefaultRole mirrors the role stored on new records of each kind.
func DefaultRole(k Kind) string {
	if k == KindSeller {
		return "Seller"
	}
	return "user"
}
