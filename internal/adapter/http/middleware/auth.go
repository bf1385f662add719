package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/EhteshamRajpot/shop-o-backend/internal/auth"
	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	"github.com/EhteshamRajpot/shop-o-backend/internal/repository"
)

const (
	UserCookieName   = "token"
	SellerCookieName = "seller_token"

	msgLoginRequired = "Please login to continue"
)

// CookieName is the session cookie used for kind.
func CookieName(kind entity.Kind) string {
	if kind == entity.KindSeller {
		return SellerCookieName
	}
	return UserCookieName
}

type TokenVerifier interface {
	Verify(token string) (*auth.SessionClaims, error)
}

// RequireKind admits requests carrying a valid, unrevoked session of kind,
// read from the kind's cookie or an Authorization bearer header.
func RequireKind(kind entity.Kind, verifier TokenVerifier, sessions repository.SessionStore, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r, CookieName(kind))
			if token == "" {
				unauthorized(w)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				log.Debugw("Session token rejected", "path", r.URL.Path, "error", err)
				unauthorized(w)
				return
			}
			if claims.Kind != kind {
				log.Debugw("Session kind mismatch", "path", r.URL.Path, "want", kind, "got", claims.Kind)
				unauthorized(w)
				return
			}

			if sessions != nil {
				revoked, err := sessions.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					log.Errorw("Failed to check session revocation", "error", err)
					unauthorized(w)
					return
				}
				if revoked {
					unauthorized(w)
					return
				}
			}

			p := Principal{
				ID:      claims.AccountID(),
				Kind:    claims.Kind,
				TokenID: claims.ID,
			}
			if claims.ExpiresAt != nil {
				p.ExpiresAt = claims.ExpiresAt.Time
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": msgLoginRequired,
	})
}
