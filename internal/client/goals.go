package client

import (
	"context"
	"strings"

	"github.com/sebuszqo/FinanceTracker/internal/finance/aggregation"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"golang.org/x/sync/errgroup"
)

type GoalsView interface {
	ShowGoals(progress []aggregation.GoalProgress)
	ShowEmpty(message string)
}

// GoalsPage lists savings goals with progress against the current balance.
type GoalsPage struct {
	deps Deps
	view GoalsView
	seq  Sequencer
}

func NewGoalsPage(deps Deps, view GoalsView) *GoalsPage {
	return &GoalsPage{deps: deps, view: view}
}

func (p *GoalsPage) Bind() error {
	_, err := p.deps.requireSession()
	return err
}

func (p *GoalsPage) Render(ctx context.Context) error {
	if err := p.refresh(ctx); err != nil {
		return p.deps.fail(err)
	}
	return nil
}

// refresh loads transactions and goals together; either failing fails both.
func (p *GoalsPage) refresh(ctx context.Context) error {
	ctx, ticket := p.seq.Next(ctx)
	defer ticket.Release()

	var (
		transactions []domain.Transaction
		goals        []domain.Goal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = p.deps.Client.ListTransactions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = p.deps.Client.ListGoals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if !ticket.Current() {
			return context.Canceled
		}
		return err
	}

	ticket.Apply(func() {
		if len(goals) == 0 {
			p.view.ShowEmpty(msgNoGoals)
			return
		}
		p.view.ShowGoals(aggregation.GoalsProgress(transactions, goals))
	})
	return nil
}

func (p *GoalsPage) Add(ctx context.Context, description, amount string) error {
	if blank(description, amount) {
		return p.deps.fail(&ValidationError{Msg: msgRequiredFields})
	}
	target, err := parseAmount(amount)
	if err != nil {
		return p.deps.fail(err)
	}
	in := GoalInput{Description: strings.TrimSpace(description), Amount: target}
	if _, err := p.deps.Client.CreateGoal(ctx, in); err != nil {
		return p.deps.fail(err)
	}
	if err := p.refresh(ctx); err != nil {
		return p.deps.fail(err)
	}
	p.deps.success(msgGoalAdded)
	return nil
}

// Delete asks for confirmation first and does nothing if the user declines.
func (p *GoalsPage) Delete(ctx context.Context, id string) error {
	if !p.deps.Confirmer.Confirm(msgConfirmGoal) {
		return nil
	}
	if err := p.deps.Client.DeleteGoal(ctx, id); err != nil {
		return p.deps.fail(err)
	}
	if err := p.refresh(ctx); err != nil {
		return p.deps.fail(err)
	}
	p.deps.Notifier.Notify(ToastError, msgGoalDeleted)
	return nil
}

func (p *GoalsPage) Dispose() {
	p.seq.Stop()
}
