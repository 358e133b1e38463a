package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL       = "http://localhost:8080/api"
	defaultTimeout       = 15 * time.Second
	DefaultRedirectDelay = 2 * time.Second
)

// Scheduler runs fn after d. The terminal front end runs it immediately.
type Scheduler func(d time.Duration, fn func())

func AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Client talks to the HTTP API on behalf of the signed-in user.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        *Session
	schedule       Scheduler
	onUnauthorized func()
	redirectDelay  time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUnauthorizedHandler registers fn to run delay after any 401 response.
func WithUnauthorizedHandler(fn func(), delay time.Duration) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
		c.redirectDelay = delay
	}
}

func WithScheduler(s Scheduler) Option {
	return func(c *Client) { c.schedule = s }
}

func NewClient(baseURL string, session *Session, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: defaultTimeout},
		session:       session,
		schedule:      AfterFunc,
		redirectDelay: DefaultRedirectDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type errorBody struct {
	Message string `json:"message"`
}

// do sends one request. in is encoded as JSON when non-nil and out is decoded
// from any 2xx response that carries a body. A 401 ends the session; if the
// stored session cannot be removed that failure is joined to the returned error.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	err := c.send(ctx, method, path, in, out)
	if errors.Is(err, ErrUnauthorized) {
		if clearErr := c.expireSession(); clearErr != nil {
			return errors.Join(clearErr, err)
		}
	}
	return err
}

func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrNetworkUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	return &ServerError{Status: resp.StatusCode, Message: eb.Message}
}

func (c *Client) expireSession() error {
	err := c.session.Clear()
	if c.onUnauthorized != nil {
		c.schedule(c.redirectDelay, c.onUnauthorized)
	}
	return err
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	in := map[string]string{"name": name, "email": email, "password": password}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login is the one place a 401 means bad credentials instead of an expired session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	in := map[string]string{"email": email, "password": password}
	var out AuthResponse
	err := c.send(ctx, http.MethodPost, "/auth/login", in, &out)
	if errors.Is(err, ErrUnauthorized) {
		return nil, &ServerError{Status: http.StatusUnauthorized, Message: "Credenciais inválidas."}
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TransactionInput is the request body for create and update. Type is ignored on update.
type TransactionInput struct {
	Type        domain.TransactionType `json:"type,omitempty"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Category    string                 `json:"category"`
	Date        domain.Date            `json:"date"`
}

type GoalInput struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

func (c *Client) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTransaction(ctx context.Context, in TransactionInput) (*domain.Transaction, error) {
	var out domain.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (*domain.Transaction, error) {
	in.Type = ""
	var out domain.Transaction
	if err := c.do(ctx, http.MethodPut, "/transactions/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	var out []domain.Goal
	if err := c.do(ctx, http.MethodGet, "/goals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateGoal(ctx context.Context, in GoalInput) (*domain.Goal, error) {
	var out domain.Goal
	if err := c.do(ctx, http.MethodPost, "/goals", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/goals/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Categories(ctx context.Context) (*domain.CategoryVocabulary, error) {
	var out domain.CategoryVocabulary
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
