package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/config"
	"github.com/sebuszqo/FinanceTracker/internal/finance/aggregation"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/finance/infrastructure"
	"github.com/sebuszqo/FinanceTracker/internal/finance/interfaces"
	"github.com/sebuszqo/FinanceTracker/internal/server"
	"github.com/sebuszqo/FinanceTracker/internal/user"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type upHealth struct{}

func (upHealth) Health(context.Context) map[string]string {
	return map[string]string{"status": "up"}
}

// newBackend starts the real HTTP API over in-memory storage.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	userService := user.NewUserService(user.NewMemoryUserRepository(), log, user.WithBcryptCost(bcrypt.MinCost))
	jwtManager, err := auth.NewJWTManager("client-test-secret", time.Hour)
	require.NoError(t, err)
	authService := auth.NewAuthService(userService, jwtManager, log, server.RespondError)

	transactionRepo := infrastructure.NewMemoryTransactionRepository()
	goalRepo := infrastructure.NewMemoryGoalRepository()
	handlers := server.Handlers{
		Auth:         auth.NewHandler(authService, server.RespondJSON, server.RespondError),
		User:         user.NewHandler(userService, log, server.RespondJSON, server.RespondError),
		Transactions: interfaces.NewTransactionHandler(application.NewTransactionService(transactionRepo), log, server.RespondJSON, server.RespondError),
		Goals:        interfaces.NewGoalHandler(application.NewGoalService(goalRepo), log, server.RespondJSON, server.RespondError),
		Categories:   interfaces.NewCategoryHandler(application.NewCategoryService(), server.RespondJSON),
		Reports:      interfaces.NewReportHandler(application.NewReportService(transactionRepo, goalRepo), log, server.RespondJSON, server.RespondError),
	}

	srv := server.New(config.HTTP{Host: "127.0.0.1", Port: 8080}, config.CORS{}, log, handlers, authService, upHealth{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

type toast struct {
	Kind    ToastKind
	Message string
}

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []toast
}

func (n *recordingNotifier) Notify(kind ToastKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, toast{Kind: kind, Message: message})
}

func (n *recordingNotifier) last() toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.toasts) == 0 {
		return toast{}
	}
	return n.toasts[len(n.toasts)-1]
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.toasts)
}

type answer struct {
	yes   bool
	asked []string
}

func (a *answer) Confirm(message string) bool {
	a.asked = append(a.asked, message)
	return a.yes
}

type recordingNavigator struct {
	mu    sync.Mutex
	pages []Page
}

func (n *recordingNavigator) Navigate(page Page) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pages = append(n.pages, page)
}

func (n *recordingNavigator) visited() []Page {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Page(nil), n.pages...)
}

// readOnlyStorage keeps values in memory but refuses to remove them.
type readOnlyStorage struct {
	*MemoryStorage
}

func (readOnlyStorage) Remove(string) error {
	return errors.New("read-only file system")
}

// delayed records scheduled callbacks so tests can run them explicitly.
type delayed struct {
	mu     sync.Mutex
	delays []time.Duration
	fns    []func()
}

func (d *delayed) schedule(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delays = append(d.delays, delay)
	d.fns = append(d.fns, fn)
}

func (d *delayed) runAll() {
	d.mu.Lock()
	fns := d.fns
	d.fns = nil
	d.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

type fakeChart struct {
	destroyed bool
}

func (c *fakeChart) Destroy() { c.destroyed = true }

type fakeCharts struct {
	bars      []*fakeChart
	doughnuts []*fakeChart
	monthly   aggregation.MonthlySeries
	category  aggregation.CategorySeries
}

func (f *fakeCharts) Bar(series aggregation.MonthlySeries) Chart {
	f.monthly = series
	c := &fakeChart{}
	f.bars = append(f.bars, c)
	return c
}

func (f *fakeCharts) Doughnut(series aggregation.CategorySeries) Chart {
	f.category = series
	c := &fakeChart{}
	f.doughnuts = append(f.doughnuts, c)
	return c
}

type dashboardScreen struct {
	mu      sync.Mutex
	title   string
	summary *aggregation.Summary
}

func (s *dashboardScreen) SetTitle(title string) { s.title = title }

func (s *dashboardScreen) ShowSummary(summary aggregation.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = &summary
}

type goalsScreen struct {
	progress []aggregation.GoalProgress
	empty    string
}

func (s *goalsScreen) ShowGoals(progress []aggregation.GoalProgress) {
	s.progress, s.empty = progress, ""
}

func (s *goalsScreen) ShowEmpty(message string) {
	s.progress, s.empty = nil, message
}

type listScreen struct {
	rows  []domain.Transaction
	empty string
}

func (s *listScreen) ShowTransactions(transactions []domain.Transaction) {
	s.rows, s.empty = transactions, ""
}

func (s *listScreen) ShowEmpty(message string) {
	s.rows, s.empty = nil, message
}

type harness struct {
	deps      Deps
	notifier  *recordingNotifier
	confirmer *answer
	navigator *recordingNavigator
	timers    *delayed
}

func newHarness(t *testing.T, baseURL string) *harness {
	t.Helper()
	h := &harness{
		notifier:  &recordingNotifier{},
		confirmer: &answer{yes: true},
		navigator: &recordingNavigator{},
		timers:    &delayed{},
	}
	session := NewSession(NewMemoryStorage())
	c := NewClient(baseURL, session,
		WithScheduler(h.timers.schedule),
		WithUnauthorizedHandler(func() { h.navigator.Navigate(PageLogin) }, DefaultRedirectDelay),
	)
	h.deps = Deps{
		Client:    c,
		Session:   session,
		Notifier:  h.notifier,
		Confirmer: h.confirmer,
		Navigator: h.navigator,
		Schedule:  h.timers.schedule,
	}
	return h
}

// signUp registers a fresh account through the auth page.
func (h *harness) signUp(t *testing.T, name, email string) {
	t.Helper()
	page := NewAuthPage(h.deps)
	page.Bind()
	page.Toggle()
	require.NoError(t, page.Submit(context.Background(), Credentials{Name: name, Email: email, Password: "secret1"}))
	h.timers.runAll()
}
