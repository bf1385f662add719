package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/apperror"
	"github.com/EhteshamRajpot/shop-o-backend/internal/auth"
	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
	"github.com/EhteshamRajpot/shop-o-backend/internal/mailer"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/metrics"
	"github.com/EhteshamRajpot/shop-o-backend/internal/repository"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("shop_o/usecase")

// RegisterInput is a registration request. Avatar is the reference returned
// by the avatar store for the file uploaded with the request.
type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Avatar      string `json:"avatar"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	ZipCode     string `json:"zipCode"`
}

func (in RegisterInput) validate(kind entity.Kind) error {
	sellerOnly := func(msg string) []validation.Rule {
		if kind != entity.KindSeller {
			return nil
		}
		return []validation.Rule{validation.Required.Error(msg)}
	}
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("Please enter your name!")),
		validation.Field(&in.Email, validation.Required.Error("Please enter your email!"), is.Email),
		validation.Field(&in.Password, validation.Required.Error("Please enter your password!")),
		validation.Field(&in.Avatar, validation.Required.Error("Please upload an avatar!")),
		validation.Field(&in.Address, sellerOnly("Please enter your shop address!")...),
		validation.Field(&in.PhoneNumber, sellerOnly("Please enter your phone number!")...),
		validation.Field(&in.ZipCode, sellerOnly("Please enter your zip code!")...),
	)
}

// Session is the result of a successful activation or login.
type Session struct {
	Account   *entity.Account
	Token     string
	ExpiresAt time.Time
}

type AccountDeps struct {
	Repo     repository.AccountRepository
	Codec    ActivationCodec
	Issuer   SessionIssuer
	Hasher   PasswordHasher
	Mailer   mailer.Mailer
	Avatars  AvatarRemover
	Sessions repository.SessionStore
	Events   EventPublisher
	Metrics  *metrics.MetricsManager
	Log      logger.Logger
	// BaseURL is the frontend origin used in activation links.
	BaseURL string
	Now     func() time.Time
}

// AccountUsecase runs registration, activation, login and session lookups for
// one account kind.
type AccountUsecase struct {
	kind entity.Kind
	AccountDeps
}

func NewAccountUsecase(kind entity.Kind, deps AccountDeps) *AccountUsecase {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = logger.NewNopLogger()
	}
	deps.Log = deps.Log.With("kind", string(kind))
	return &AccountUsecase{kind: kind, AccountDeps: deps}
}

func (u *AccountUsecase) Kind() entity.Kind {
	return u.kind
}

func (u *AccountUsecase) noun() string {
	if u.kind == entity.KindSeller {
		return "shop"
	}
	return "account"
}

func (u *AccountUsecase) activationURL(token string) string {
	if u.kind == entity.KindSeller {
		return fmt.Sprintf("%s/seller/activation/%s", u.BaseURL, token)
	}
	return fmt.Sprintf("%s/activation/%s", u.BaseURL, token)
}

// Register emails an activation link for in and returns the confirmation
// message. No account exists until the link is used. The uploaded avatar is
// removed whenever registration fails.
func (u *AccountUsecase) Register(ctx context.Context, in RegisterInput) (message string, err error) {
	ctx, span := tracer.Start(ctx, "AccountUsecase.Register")
	defer func() {
		endSpan(span, err)
		u.Metrics.ObserveRegistration(string(u.kind), err)
		if err != nil {
			u.discardAvatar(ctx, in.Avatar)
		}
	}()

	if verr := in.validate(u.kind); verr != nil {
		return "", validationError(verr)
	}

	_, err = u.Repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return "", apperror.DuplicateAccount("User already exists")
	case !errors.Is(err, repository.ErrNotFound):
		return "", apperror.Internal(fmt.Errorf("failed to look up %s: %w", u.kind, err))
	}

	hashed, err := u.Hasher.Hash(in.Password)
	if err != nil {
		return "", apperror.Internal(err)
	}

	token, err := u.Codec.Encode(auth.ActivationPayload{
		Kind:           u.kind,
		Name:           in.Name,
		Email:          in.Email,
		Password:       hashed,
		PasswordHashed: true,
		Avatar:         in.Avatar,
		Address:        in.Address,
		PhoneNumber:    in.PhoneNumber,
		ZipCode:        in.ZipCode,
	})
	if err != nil {
		return "", apperror.Internal(err)
	}

	noun := u.noun()
	mailErr := u.Mailer.Send(ctx, mailer.Message{
		To:      in.Email,
		Subject: "Activate your " + noun,
		Text: fmt.Sprintf("Hello %s, please click on the link to activate your %s: %s",
			in.Email, noun, u.activationURL(token)),
	})
	u.Metrics.ObserveActivationMail(string(u.kind), mailErr)
	if mailErr != nil {
		u.Log.Errorw("Activation mail failed", "email", in.Email, "error", mailErr)
		return "", apperror.MailDeliveryFailed(mailErr)
	}

	return fmt.Sprintf("Please check your email:- %s to activate your %s!", in.Email, noun), nil
}

// Activate creates the account carried by token and opens a session for it.
func (u *AccountUsecase) Activate(ctx context.Context, token string) (sess *Session, err error) {
	ctx, span := tracer.Start(ctx, "AccountUsecase.Activate")
	defer func() {
		endSpan(span, err)
		u.Metrics.ObserveActivation(string(u.kind), err)
	}()

	payload, err := u.Codec.Decode(token, u.kind)
	if err != nil {
		return nil, apperror.InvalidOrExpiredToken(err)
	}

	_, err = u.Repo.FindByEmail(ctx, payload.Email)
	switch {
	case err == nil:
		return nil, u.duplicateOnActivation()
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperror.Internal(fmt.Errorf("failed to look up %s: %w", u.kind, err))
	}

	account, err := u.Repo.Create(ctx, &entity.Account{
		Kind:        u.kind,
		Name:        payload.Name,
		Email:       payload.Email,
		Password:    payload.Password,
		Avatar:      payload.Avatar,
		Role:        entity.DefaultRole(u.kind),
		Address:     payload.Address,
		PhoneNumber: payload.PhoneNumber,
		ZipCode:     payload.ZipCode,
		CreatedAt:   u.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, u.duplicateOnActivation()
		}
		return nil, apperror.Internal(fmt.Errorf("failed to create %s: %w", u.kind, err))
	}
	account.Password = ""

	sess, err = u.openSession(account)
	if err != nil {
		return nil, err
	}

	u.publish(ctx, SubjectAccountActivated, AccountActivatedEvent{
		AccountID:   account.ID,
		Kind:        string(u.kind),
		Email:       account.Email,
		ActivatedAt: account.CreatedAt,
	})
	u.Log.Infow("Account activated", "id", account.ID)
	return sess, nil
}

func (u *AccountUsecase) duplicateOnActivation() *apperror.Error {
	if u.kind == entity.KindSeller {
		return apperror.DuplicateAccount("Seller already exists")
	}
	return apperror.DuplicateAccount("User already exists")
}

func (u *AccountUsecase) Login(ctx context.Context, email, password string) (sess *Session, err error) {
	ctx, span := tracer.Start(ctx, "AccountUsecase.Login")
	defer func() {
		endSpan(span, err)
		u.Metrics.ObserveLogin(string(u.kind), err)
	}()

	if email == "" || password == "" {
		return nil, apperror.MissingCredentials()
	}

	account, err := u.Repo.FindByEmailWithSecret(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.AccountNotFound()
		}
		return nil, apperror.Internal(fmt.Errorf("failed to look up %s: %w", u.kind, err))
	}

	if err := account.ComparePassword(password); err != nil {
		if errors.Is(err, entity.ErrPasswordMismatch) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, apperror.Internal(err)
	}
	account.Password = ""

	return u.openSession(account)
}

func (u *AccountUsecase) GetAccount(ctx context.Context, id string) (*entity.Account, error) {
	account, err := u.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.AccountNotFound()
		}
		return nil, apperror.Internal(fmt.Errorf("failed to load %s %s: %w", u.kind, id, err))
	}
	account.Password = ""
	return account, nil
}

// Logout revokes the session until its natural expiry.
func (u *AccountUsecase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if u.Sessions == nil || tokenID == "" {
		return nil
	}
	if err := u.Sessions.Revoke(ctx, tokenID, expiresAt.Sub(u.Now())); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *AccountUsecase) openSession(account *entity.Account) (*Session, error) {
	token, expiresAt, err := u.Issuer.Issue(account.ID, u.kind)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &Session{Account: account, Token: token, ExpiresAt: expiresAt}, nil
}

// discardAvatar is best-effort; a failure is only logged.
func (u *AccountUsecase) discardAvatar(ctx context.Context, ref string) {
	if ref == "" || u.Avatars == nil {
		return
	}
	if err := u.Avatars.Delete(context.WithoutCancel(ctx), ref); err != nil {
		u.Log.Warnw("Failed to delete orphaned avatar", "avatar", ref, "error", err)
	}
}

func (u *AccountUsecase) publish(ctx context.Context, subject string, event interface{}) {
	if u.Events == nil {
		return
	}
	if err := u.Events.Publish(ctx, subject, event); err != nil {
		u.Log.Warnw("Failed to publish event", "subject", subject, "error", err)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
