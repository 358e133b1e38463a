package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (*user.User, string, error)
	Login(ctx context.Context, email, password string) (*user.User, string, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService  user.Service
	jwtManager   JWTManagerInterface
	logger       *slog.Logger
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewAuthService(
	userService user.Service,
	jwtManager JWTManagerInterface,
	logger *slog.Logger,
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) Service {
	return &service{
		userService:  userService,
		jwtManager:   jwtManager,
		logger:       logger,
		respondError: respondError,
	}
}

// Register creates the account and signs the user in straight away.
func (s *service) Register(ctx context.Context, name, email, password string) (*user.User, string, error) {
	newUser, err := s.userService.Register(ctx, name, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.GenerateAccessJWT(newUser.ID)
	if err != nil {
		s.logger.Error("failed to generate access token", slog.String("error", err.Error()))
		return nil, "", ErrInternalError
	}
	return newUser, token, nil
}

// Login does not reveal whether the email or the password was wrong.
func (s *service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	existingUser, err := s.userService.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user", slog.String("error", err.Error()))
		return nil, "", ErrInternalError
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingUser.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessJWT(existingUser.ID)
	if err != nil {
		s.logger.Error("failed to generate access token", slog.String("error", err.Error()))
		return nil, "", ErrInternalError
	}
	return existingUser, token, nil
}
