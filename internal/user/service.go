package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxNameLength     = 100
	minPasswordLength = 6
	defaultBcryptCost = 12
)

var (
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrMissingName        = errors.New("name is required")
	ErrNameLength         = fmt.Errorf("name is too long, max length: %d", maxNameLength)
	ErrPasswordLength     = fmt.Errorf("password must have at least %d characters", minPasswordLength)
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInternalError      = errors.New("internal Server Error")
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsInputError reports whether err is caused by the caller's input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrNameLength) ||
		errors.Is(err, ErrPasswordLength)
}

type Service interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
}

type service struct {
	repo       Repository
	logger     *slog.Logger
	bcryptCost int
}

type Option func(*service)

// WithBcryptCost overrides the hashing cost, mostly for tests.
func WithBcryptCost(cost int) Option {
	return func(s *service) {
		s.bcryptCost = cost
	}
}

func NewUserService(repo Repository, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		repo:       repo,
		logger:     logger,
		bcryptCost: defaultBcryptCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	return string(hashedPasswordBytes), err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func validateRegistration(name, email, password string) error {
	if name == "" {
		return ErrMissingName
	}
	if len([]rune(name)) > maxNameLength {
		return ErrNameLength
	}
	if err := validateEmailAddress(email); err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return ErrPasswordLength
	}
	return nil
}

func (s *service) Register(ctx context.Context, name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	existingUser, err := s.repo.getUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		s.logger.Error("failed to look up user by email", slog.String("error", err.Error()))
		return nil, ErrInternalError
	}
	if existingUser != nil {
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := s.hashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, ErrInternalError
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.createUser(ctx, user); err != nil {
		// Two concurrent registrations can both pass the lookup above.
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		s.logger.Error("failed to create user", slog.String("error", err.Error()))
		return nil, ErrInternalError
	}

	return user, nil
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.getUserByEmail(ctx, normalizeEmail(email))
}

func (s *service) GetUserByID(ctx context.Context, userID string) (*User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrUserNotFound
	}
	return s.repo.getUserByID(ctx, userID)
}
