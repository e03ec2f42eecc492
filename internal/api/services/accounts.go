package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rohits-web03/dealls/internal/api/validation"
	"github.com/rohits-web03/dealls/internal/apperr"
	"github.com/rohits-web03/dealls/internal/models"
	"github.com/rohits-web03/dealls/internal/repositories"
	"github.com/rohits-web03/dealls/internal/utils"
)

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Password string `json:"password" validate:"required,min=8,max=20,strong"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AccountService registers users and issues their tokens.
type AccountService struct {
	store    repositories.UserStore
	hasher   *PasswordHasher
	tokens   *TokenService
	validate *validation.Validator
	timeout  time.Duration
	now      func() time.Time
}

func NewAccountService(store repositories.UserStore, hasher *PasswordHasher, tokens *TokenService, v *validation.Validator, timeout time.Duration) *AccountService {
	return &AccountService{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		validate: v,
		timeout:  timeout,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.ensureFree(ctx, "email", in.Email, s.store.FindByEmail); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, "username", in.Username, s.store.FindByUsername); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.StorageFailure, "Internal server error", fmt.Errorf("hash password: %w", err))
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, storeError(err, "User not found")
	}
	return user, nil
}

func (s *AccountService) ensureFree(ctx context.Context, field, value string, find func(context.Context, string) (*models.User, error)) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return duplicate(field)
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return apperr.Storage(err)
	}
}

// Login checks the credentials, stamps the login time and returns a token.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.store.FindByEmail(ctx, in.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", apperr.New(apperr.InvalidCredentials, "Invalid credentials")
	}
	if err != nil {
		return "", apperr.Storage(err)
	}

	ok, err := s.hasher.Verify(user.Password, in.Password)
	if err != nil || !ok {
		return "", apperr.New(apperr.InvalidCredentials, "Invalid credentials")
	}

	return s.completeLogin(ctx, user)
}

func (s *AccountService) completeLogin(ctx context.Context, user *models.User) (string, error) {
	if err := s.store.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		return "", storeError(err, "User not found")
	}
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", apperr.Wrap(apperr.StorageFailure, "Internal server error", err)
	}
	return token, nil
}

var nonUsernameChars = regexp.MustCompile(`[^a-z0-9_]+`)

const googleUsernameAttempts = 3

// SignInWithGoogle logs in (or, when register is set, creates) the user
// owning a Google-verified email.
func (s *AccountService) SignInWithGoogle(ctx context.Context, email, name string, register bool) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", apperr.Invalid(apperr.FieldError{Field: "email", Message: "Google account has no email"})
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if register {
			return "", duplicate("email")
		}
		return s.completeLogin(ctx, user)
	case !errors.Is(err, repositories.ErrNotFound):
		return "", apperr.Storage(err)
	case !register:
		return "", apperr.New(apperr.NotFound, "User not found")
	}

	secret, err := utils.GenerateSecureToken(32)
	if err != nil {
		return "", apperr.Storage(err)
	}
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return "", apperr.Storage(err)
	}

	base := usernameBase(name, email)
	for attempt := 0; attempt < googleUsernameAttempts; attempt++ {
		suffix, err := utils.GenerateSecureToken(4)
		if err != nil {
			return "", apperr.Storage(err)
		}
		user = &models.User{
			Username: base + "_" + strings.ToLower(nonUsernameChars.ReplaceAllString(suffix, "")),
			Email:    email,
			Password: hash,
		}
		err = s.store.Create(ctx, user)
		var dup *repositories.DuplicateFieldError
		if errors.As(err, &dup) && dup.Field == "username" {
			continue
		}
		if err != nil {
			return "", storeError(err, "User not found")
		}
		return s.completeLogin(ctx, user)
	}
	return "", apperr.Storage(errors.New("could not allocate a unique username"))
}

// usernameBase derives a username stem from a display name or, failing
// that, the email's local part.
func usernameBase(name, email string) string {
	base := nonUsernameChars.ReplaceAllString(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_")), "")
	if len(base) < 3 {
		base = nonUsernameChars.ReplaceAllString(strings.SplitN(email, "@", 2)[0], "")
	}
	if len(base) < 3 {
		base = "user"
	}
	if len(base) > 20 {
		base = base[:20]
	}
	return base
}

func duplicate(field string) *apperr.Error {
	return apperr.New(apperr.DuplicateField,
		fmt.Sprintf("This %s is already registered. Please use a different %s.", field, field))
}

// storeError maps store errors onto the service taxonomy.
func storeError(err error, notFound string) error {
	var dup *repositories.DuplicateFieldError
	switch {
	case errors.As(err, &dup):
		return duplicate(dup.Field)
	case errors.Is(err, repositories.ErrNotFound):
		return apperr.New(apperr.NotFound, notFound)
	default:
		return apperr.Storage(err)
	}
}
