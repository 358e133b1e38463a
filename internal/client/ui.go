package client

import (
	"context"
	"errors"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/aggregation"
)

type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

func (k ToastKind) String() string {
	if k == ToastError {
		return "error"
	}
	return "success"
}

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(kind ToastKind, message string)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(message string) bool
}

type Chart interface {
	Destroy()
}

type ChartRenderer interface {
	Bar(series aggregation.MonthlySeries) Chart
	Doughnut(series aggregation.CategorySeries) Chart
}

type Page string

const (
	PageLogin     Page = "login"
	PageDashboard Page = "dashboard"
	PageGoals     Page = "goals"
	PageIncome    Page = "income"
	PageExpense   Page = "expense"
)

type Navigator interface {
	Navigate(page Page)
}

const navigateDelay = time.Second

// Deps is what every page component is constructed with.
type Deps struct {
	Client    *Client
	Session   *Session
	Notifier  Notifier
	Confirmer Confirmer
	Navigator Navigator
	Schedule  Scheduler
}

func (d Deps) after(delay time.Duration, fn func()) {
	if d.Schedule == nil {
		AfterFunc(delay, fn)
		return
	}
	d.Schedule(delay, fn)
}

func (d Deps) success(message string) {
	d.Notifier.Notify(ToastSuccess, message)
}

// fail reports err to the user and returns it. A request canceled because a
// newer one replaced it is not reported.
func (d Deps) fail(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	d.Notifier.Notify(ToastError, userMessage(err))
	return err
}

// requireSession sends the user to the login page when no one is signed in.
func (d Deps) requireSession() (*User, error) {
	_, user, err := d.Session.Load()
	if err != nil {
		d.Navigator.Navigate(PageLogin)
		return nil, ErrUnauthorized
	}
	return user, nil
}
