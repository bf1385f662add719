// Package auth signs and verifies the two token types the service hands out:
// short-lived activation tokens carrying a pending registration, and session
// tokens identifying a logged-in account.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
	"github.com/golang-jwt/jwt/v5"
)

const activationClaimsVersion = 1

// ActivationPayload is the pending registration carried inside an activation
// token. Password is always a bcrypt hash.
type ActivationPayload struct {
	Kind           entity.Kind `json:"kind"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Password       string      `json:"password"`
	PasswordHashed bool        `json:"password_hashed"`
	Avatar         string      `json:"avatar"`
	Address        string      `json:"address,omitempty"`
	PhoneNumber    string      `json:"phone_number,omitempty"`
	ZipCode        string      `json:"zip_code,omitempty"`
}

type ActivationClaims struct {
	Version int `json:"ver"`
	ActivationPayload
	jwt.RegisteredClaims
}

type ActivationCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewActivationCodec returns a codec signing with HS256. A nil now uses time.Now.
func NewActivationCodec(secret string, ttl time.Duration, now func() time.Time) *ActivationCodec {
	if now == nil {
		now = time.Now
	}
	return &ActivationCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

func (c *ActivationCodec) TTL() time.Duration {
	return c.ttl
}

func (c *ActivationCodec) Encode(payload ActivationPayload) (string, error) {
	if !payload.Kind.Valid() {
		return "", fmt.Errorf("unknown account kind %q", payload.Kind)
	}
	issuedAt := c.now()
	claims := ActivationClaims{
		Version:           activationClaimsVersion,
		ActivationPayload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign activation token: %w", err)
	}
	return token, nil
}

// Decode verifies token and returns its payload. Every failure, including a
// token minted for the other account kind, wraps ErrInvalidToken.
func (c *ActivationCodec) Decode(token string, kind entity.Kind) (*ActivationPayload, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	claims := &ActivationClaims{}
	_, err := jwt.ParseWithClaims(token, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: activation token expired", ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Version != activationClaimsVersion {
		return nil, fmt.Errorf("%w: unsupported claims version %d", ErrInvalidToken, claims.Version)
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("%w: token issued for %q", ErrInvalidToken, claims.Kind)
	}
	if !claims.PasswordHashed || claims.Email == "" {
		return nil, fmt.Errorf("%w: incomplete payload", ErrInvalidToken)
	}

	payload := claims.ActivationPayload
	return &payload, nil
}

func (c *ActivationCodec) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return c.secret, nil
}
