package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/adapter/http/middleware"
	"github.com/EhteshamRajpot/shop-o-backend/internal/apperror"
	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	"github.com/EhteshamRajpot/shop-o-backend/internal/usecase"
)

// AccountService is implemented by usecase.AccountUsecase.
type AccountService interface {
	Kind() entity.Kind
	Register(ctx context.Context, in usecase.RegisterInput) (string, error)
	Activate(ctx context.Context, token string) (*usecase.Session, error)
	Login(ctx context.Context, email, password string) (*usecase.Session, error)
	GetAccount(ctx context.Context, id string) (*entity.Account, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type AvatarSaver interface {
	Save(ctx context.Context, originalName string, r io.Reader, size int64) (string, error)
}

type AccountHandler struct {
	svc           AccountService
	avatars       AvatarSaver
	cookies       CookieConfig
	maxUploadSize int64
	log           logger.Logger
}

func NewAccountHandler(svc AccountService, avatars AvatarSaver, cookies CookieConfig, maxUploadSize int64, log logger.Logger) *AccountHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = 10 << 20
	}
	return &AccountHandler{
		svc:           svc,
		avatars:       avatars,
		cookies:       cookies,
		maxUploadSize: maxUploadSize,
		log:           log.Named(string(svc.Kind()) + "_handler"),
	}
}

// responseKey is the body field carrying the account: "user" or "seller".
func (h *AccountHandler) responseKey() string {
	return string(h.svc.Kind())
}

// Register accepts multipart/form-data with an "avatar" file and the account
// fields as form values.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, h.log, apperror.Validation("Avatar is too large", nil))
			return
		}
		writeError(w, r, h.log, apperror.Validation("Malformed form data", nil))
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	in := usecase.RegisterInput{
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Password:    r.FormValue("password"),
		Address:     r.FormValue("address"),
		PhoneNumber: r.FormValue("phoneNumber"),
		ZipCode:     r.FormValue("zipCode"),
	}

	file, header, err := r.FormFile("avatar")
	switch {
	case err == nil:
		ref, saveErr := h.avatars.Save(r.Context(), header.Filename, file, header.Size)
		_ = file.Close()
		if saveErr != nil {
			writeError(w, r, h.log, apperror.Internal(saveErr))
			return
		}
		in.Avatar = ref
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		writeError(w, r, h.log, apperror.Validation("Malformed form data", nil))
		return
	}

	msg, err := h.svc.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{"success": true, "message": msg})
}

type activationRequest struct {
	ActivationToken string `json:"activation_token"`
}

func (h *AccountHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req activationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	sess, err := h.svc.Activate(r.Context(), req.ActivationToken)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.sendSession(w, sess)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.sendSession(w, sess)
}

// Me returns the account of the authenticated caller.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.ErrUnauthorized)
		return
	}
	account, err := h.svc.GetAccount(r.Context(), p.ID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, h.responseKey(): account})
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.ErrUnauthorized)
		return
	}
	if err := h.svc.Logout(r.Context(), p.TokenID, p.ExpiresAt); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	http.SetCookie(w, h.cookies.expired(middleware.CookieName(h.svc.Kind())))
	writeJSON(w, http.StatusCreated, envelope{"success": true, "message": "Log out successfully!"})
}

func (h *AccountHandler) sendSession(w http.ResponseWriter, sess *usecase.Session) {
	http.SetCookie(w, h.cookies.session(middleware.CookieName(h.svc.Kind()), sess.Token, sess.ExpiresAt))
	writeJSON(w, http.StatusCreated, envelope{
		"success":       true,
		h.responseKey(): sess.Account,
		"token":         sess.Token,
	})
}
