package client

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
)

const AllCategories = "all"

// Filter narrows the transaction list. An empty Month means every month.
type Filter struct {
	Category string
	Month    string
}

func (f Filter) matches(t domain.Transaction) bool {
	if f.Category != "" && f.Category != AllCategories && t.Category != f.Category {
		return false
	}
	return f.Month == "" || t.Date.MonthKey() == f.Month
}

type TransactionForm struct {
	Description string
	Amount      string
	Category    string
	Date        string
}

type TransactionsView interface {
	ShowTransactions(transactions []domain.Transaction)
	ShowEmpty(message string)
}

// TransactionsPage lists and edits the transactions of one type.
type TransactionsPage struct {
	deps Deps
	kind domain.TransactionType
	view TransactionsView
	seq  Sequencer

	// OnRowAdded runs after a render that shows a freshly created row.
	OnRowAdded   func(id string)
	// OnRowRemoved runs once a row has been deleted on the server.
	OnRowRemoved func(id string)

	mu     sync.Mutex
	filter Filter
}

func NewTransactionsPage(deps Deps, kind domain.TransactionType, view TransactionsView) *TransactionsPage {
	return &TransactionsPage{
		deps:   deps,
		kind:   kind,
		view:   view,
		filter: Filter{Category: AllCategories},
	}
}

func (p *TransactionsPage) Bind() error {
	_, err := p.deps.requireSession()
	return err
}

func (p *TransactionsPage) Type() domain.TransactionType {
	return p.kind
}

func (p *TransactionsPage) Categories() []string {
	return append([]string(nil), domain.Categories[p.kind]...)
}

func (p *TransactionsPage) Filter() Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

func (p *TransactionsPage) SetFilter(ctx context.Context, f Filter) error {
	f.Category = strings.TrimSpace(f.Category)
	f.Month = strings.TrimSpace(f.Month)
	if f.Category == "" {
		f.Category = AllCategories
	}
	if f.Category != AllCategories && !domain.IsValidCategory(p.kind, f.Category) {
		return p.deps.fail(&ValidationError{Msg: msgInvalidCategory})
	}
	if f.Month != "" {
		if _, err := time.Parse("2006-01", f.Month); err != nil {
			return p.deps.fail(&ValidationError{Msg: msgInvalidMonth})
		}
	}
	p.mu.Lock()
	p.filter = f
	p.mu.Unlock()
	return p.Render(ctx)
}

func (p *TransactionsPage) ClearFilters(ctx context.Context) error {
	p.mu.Lock()
	p.filter = Filter{Category: AllCategories}
	p.mu.Unlock()
	return p.Render(ctx)
}

func (p *TransactionsPage) Render(ctx context.Context) error {
	if err := p.refresh(ctx, ""); err != nil {
		return p.deps.fail(err)
	}
	return nil
}

// visible keeps this page's type under the current filter, newest date first.
func (p *TransactionsPage) visible(all []domain.Transaction) []domain.Transaction {
	f := p.Filter()
	out := make([]domain.Transaction, 0, len(all))
	for _, t := range all {
		if t.Type == p.kind && f.matches(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

func (p *TransactionsPage) refresh(ctx context.Context, added string) error {
	ctx, ticket := p.seq.Next(ctx)
	defer ticket.Release()

	all, err := p.deps.Client.ListTransactions(ctx)
	if err != nil {
		if !ticket.Current() {
			return context.Canceled
		}
		return err
	}
	list := p.visible(all)

	ticket.Apply(func() {
		if len(list) == 0 {
			p.view.ShowEmpty(msgNoTransactions)
			return
		}
		p.view.ShowTransactions(list)
		if added == "" || p.OnRowAdded == nil {
			return
		}
		for _, t := range list {
			if t.ID == added {
				p.OnRowAdded(added)
				return
			}
		}
	})
	return nil
}

func (p *TransactionsPage) parse(form TransactionForm) (TransactionInput, error) {
	if blank(form.Description, form.Amount, form.Category, form.Date) {
		return TransactionInput{}, &ValidationError{Msg: msgRequiredFields}
	}
	amount, err := parseAmount(form.Amount)
	if err != nil {
		return TransactionInput{}, err
	}
	date, err := domain.ParseDate(form.Date)
	if err != nil {
		return TransactionInput{}, &ValidationError{Msg: msgInvalidDate}
	}
	category := strings.TrimSpace(form.Category)
	if !domain.IsValidCategory(p.kind, category) {
		return TransactionInput{}, &ValidationError{Msg: msgInvalidCategory}
	}
	return TransactionInput{
		Type:        p.kind,
		Description: strings.TrimSpace(form.Description),
		Amount:      amount,
		Category:    category,
		Date:        date,
	}, nil
}

func (p *TransactionsPage) Add(ctx context.Context, form TransactionForm) (*domain.Transaction, error) {
	in, err := p.parse(form)
	if err != nil {
		return nil, p.deps.fail(err)
	}
	created, err := p.deps.Client.CreateTransaction(ctx, in)
	if err != nil {
		return nil, p.deps.fail(err)
	}
	if err := p.refresh(ctx, created.ID); err != nil {
		return created, p.deps.fail(err)
	}
	p.deps.success(msgTxAdded)
	return created, nil
}

// Lookup finds one of this page's transactions for the edit form.
func (p *TransactionsPage) Lookup(ctx context.Context, id string) (*domain.Transaction, error) {
	all, err := p.deps.Client.ListTransactions(ctx)
	if err != nil {
		return nil, p.deps.fail(err)
	}
	for _, t := range all {
		if t.ID == id && t.Type == p.kind {
			return &t, nil
		}
	}
	p.deps.Notifier.Notify(ToastError, msgTxNotFound)
	return nil, ErrNotFound
}

func (p *TransactionsPage) Edit(ctx context.Context, id string, form TransactionForm) (*domain.Transaction, error) {
	in, err := p.parse(form)
	if err != nil {
		return nil, p.deps.fail(err)
	}
	updated, err := p.deps.Client.UpdateTransaction(ctx, id, in)
	if err != nil {
		return nil, p.deps.fail(err)
	}
	if err := p.refresh(ctx, ""); err != nil {
		return updated, p.deps.fail(err)
	}
	p.deps.success(msgTxSaved)
	return updated, nil
}

// Delete asks for confirmation first and does nothing if the user declines.
func (p *TransactionsPage) Delete(ctx context.Context, id string) error {
	if !p.deps.Confirmer.Confirm(msgConfirmTx) {
		return nil
	}
	if err := p.deps.Client.DeleteTransaction(ctx, id); err != nil {
		return p.deps.fail(err)
	}
	if p.OnRowRemoved != nil {
		p.OnRowRemoved(id)
	}
	if err := p.refresh(ctx, ""); err != nil {
		return p.deps.fail(err)
	}
	p.deps.Notifier.Notify(ToastError, msgTxDeleted)
	return nil
}

func (p *TransactionsPage) Dispose() {
	p.seq.Stop()
}
