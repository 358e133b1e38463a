package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	tokenKey = "authToken"
	userKey  = "user"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the signed-in state: a bearer token plus the user it belongs to.
type Session struct {
	storage Storage
}

func NewSession(storage Storage) *Session {
	return &Session{storage: storage}
}

func (s *Session) Save(token string, user User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.storage.Set(tokenKey, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := s.storage.Set(userKey, string(data)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Load returns ErrUnauthorized when no token is stored.
func (s *Session) Load() (string, *User, error) {
	token, ok, err := s.storage.Get(tokenKey)
	if err != nil {
		return "", nil, err
	}
	if !ok || token == "" {
		return "", nil, ErrUnauthorized
	}

	raw, ok, err := s.storage.Get(userKey)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return token, nil, nil
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return token, nil, nil
	}
	return token, &user, nil
}

func (s *Session) Token() string {
	token, _, err := s.Load()
	if err != nil {
		return ""
	}
	return token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

func (s *Session) Clear() error {
	if err := errors.Join(s.storage.Remove(tokenKey), s.storage.Remove(userKey)); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionNotCleared, err)
	}
	return nil
}
