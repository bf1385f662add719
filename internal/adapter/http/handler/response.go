// Package handler holds the HTTP handlers of the shop-o API. Every failure is
// written by writeError as {"success":false,"message":...}.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/apperror"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.KindInternal || appErr.Kind == apperror.KindMailDeliveryFailed {
		log.Errorw("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
	} else {
		log.Debugw("Request rejected", "path", r.URL.Path, "kind", appErr.Kind, "error", err)
	}
	writeJSON(w, appErr.Status, envelope{"success": false, "message": appErr.Message})
}

// decodeJSON reads a single JSON document into dst. Type mismatches come back
// as validation errors naming the offending field.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		switch {
		case errors.As(err, &typeErr):
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			msg := fmt.Sprintf("%s must be a %s", field, typeErr.Type.String())
			return apperror.Validation(msg, map[string]string{field: msg})
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return apperror.Validation("Malformed request body", nil)
		case errors.Is(err, io.EOF):
			return apperror.Validation("Request body must not be empty", nil)
		default:
			return apperror.Validation(err.Error(), nil)
		}
	}
	return nil
}

// CookieConfig controls the attributes of session cookies.
type CookieConfig struct {
	Secure bool
}

func (c CookieConfig) session(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// expired clears the named session cookie on the client.
func (c CookieConfig) expired(name string) *http.Cookie {
	cookie := c.session(name, "", time.Unix(0, 0))
	cookie.MaxAge = -1
	return cookie
}
