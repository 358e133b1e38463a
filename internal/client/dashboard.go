package client

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sebuszqo/FinanceTracker/internal/finance/aggregation"
)

type DashboardView interface {
	SetTitle(title string)
	ShowSummary(summary aggregation.Summary)
}

// Dashboard shows the balance summary and the two charts. It owns the chart
// handles and replaces them on every render.
type Dashboard struct {
	deps   Deps
	view   DashboardView
	charts ChartRenderer
	seq    Sequencer

	mu       sync.Mutex
	bar      Chart
	doughnut Chart
}

func NewDashboard(deps Deps, view DashboardView, charts ChartRenderer) *Dashboard {
	return &Dashboard{deps: deps, view: view, charts: charts}
}

func (d *Dashboard) Bind() error {
	user, err := d.deps.requireSession()
	if err != nil {
		return err
	}
	if user != nil {
		d.view.SetTitle(fmt.Sprintf("⚓ Painel de %s", user.Name))
	}
	return nil
}

func (d *Dashboard) Render(ctx context.Context) error {
	ctx, ticket := d.seq.Next(ctx)
	defer ticket.Release()

	transactions, err := d.deps.Client.ListTransactions(ctx)
	if err != nil {
		if !ticket.Current() {
			err = context.Canceled
		}
		return d.deps.fail(err)
	}

	ticket.Apply(func() {
		d.view.ShowSummary(aggregation.Summarize(transactions))
		d.replaceCharts(aggregation.Monthly(transactions), aggregation.ByCategory(transactions))
	})
	return nil
}

func (d *Dashboard) replaceCharts(monthly aggregation.MonthlySeries, categories aggregation.CategorySeries) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyCharts()
	if d.charts == nil {
		return
	}
	d.bar = d.charts.Bar(monthly)
	d.doughnut = d.charts.Doughnut(categories)
}

// destroyCharts must be called with mu held.
func (d *Dashboard) destroyCharts() {
	if d.bar != nil {
		d.bar.Destroy()
		d.bar = nil
	}
	if d.doughnut != nil {
		d.doughnut.Destroy()
		d.doughnut = nil
	}
}

// Export fetches a fresh list and writes it to w as CSV.
func (d *Dashboard) Export(ctx context.Context, w io.Writer) error {
	transactions, err := d.deps.Client.ListTransactions(ctx)
	if err != nil {
		return d.deps.fail(err)
	}
	if len(transactions) == 0 {
		return d.deps.fail(ErrNothingToExport)
	}
	if err := aggregation.WriteCSV(w, transactions); err != nil {
		return d.deps.fail(err)
	}
	d.deps.success(msgExported)
	return nil
}

func (d *Dashboard) Logout() {
	d.deps.success(msgGoodbye)
	d.deps.after(navigateDelay, func() {
		if err := d.deps.Session.Clear(); err != nil {
			d.deps.fail(err)
			return
		}
		d.deps.Navigator.Navigate(PageLogin)
	})
}

func (d *Dashboard) Dispose() {
	d.seq.Stop()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyCharts()
}
