package client

import (
	"context"
	"strings"
	"sync"
)

type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeRegister
)

func (m AuthMode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

type Credentials struct {
	Name     string
	Email    string
	Password string
}

// AuthPage is the login and registration form.
type AuthPage struct {
	deps Deps

	mu       sync.Mutex
	mode     AuthMode
	disposed bool
}

func NewAuthPage(deps Deps) *AuthPage {
	return &AuthPage{deps: deps}
}

func (p *AuthPage) Bind() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = ModeLogin
	p.disposed = false
}

func (p *AuthPage) Mode() AuthMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// Toggle switches between login and registration and returns the new mode.
func (p *AuthPage) Toggle() AuthMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == ModeLogin {
		p.mode = ModeRegister
	} else {
		p.mode = ModeLogin
	}
	return p.mode
}

// Submit signs the user in (or up), stores the session and moves to the
// dashboard shortly after.
func (p *AuthPage) Submit(ctx context.Context, c Credentials) error {
	mode := p.Mode()
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	if c.Email == "" || c.Password == "" || (mode == ModeRegister && c.Name == "") {
		return p.deps.fail(&ValidationError{Msg: msgRequiredFields})
	}

	var (
		resp *AuthResponse
		err  error
	)
	if mode == ModeRegister {
		resp, err = p.deps.Client.Register(ctx, c.Name, c.Email, c.Password)
	} else {
		resp, err = p.deps.Client.Login(ctx, c.Email, c.Password)
	}
	if err != nil {
		return p.deps.fail(err)
	}

	if err := p.deps.Session.Save(resp.Token, resp.User); err != nil {
		return p.deps.fail(err)
	}
	p.deps.success(resp.Message)
	p.deps.after(navigateDelay, func() {
		p.mu.Lock()
		disposed := p.disposed
		p.mu.Unlock()
		if !disposed {
			p.deps.Navigator.Navigate(PageDashboard)
		}
	})
	return nil
}

func (p *AuthPage) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disposed = true
}
