package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/sebuszqo/FinanceTracker/internal/client"
	"github.com/sebuszqo/FinanceTracker/internal/finance/aggregation"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/shopspring/decimal"
)

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	barWidth   = 30
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// terminalNotifier prints toasts to stderr, colored when stderr is a terminal.
type terminalNotifier struct {
	w     io.Writer
	color bool
}

func newTerminalNotifier(f *os.File) *terminalNotifier {
	return &terminalNotifier{w: f, color: isTerminal(f)}
}

func (n *terminalNotifier) Notify(kind client.ToastKind, message string) {
	if message == "" {
		return
	}
	mark, color := "✓", colorGreen
	if kind == client.ToastError {
		mark, color = "✗", colorRed
	}
	if n.color {
		fmt.Fprintf(n.w, "%s%s %s%s\n", color, mark, message, colorReset)
		return
	}
	fmt.Fprintf(n.w, "%s %s\n", mark, message)
}

// promptConfirmer asks on stdin unless -yes was given.
type promptConfirmer struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func (c *promptConfirmer) Confirm(message string) bool {
	if c.assumeYes {
		return true
	}
	fmt.Fprintf(c.out, "%s [s/N]: ", message)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

func prompt(in *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprintf(out, "%s: ", label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

// hintNavigator tells the user which command leads to the requested page.
type hintNavigator struct {
	w io.Writer
}

func (n hintNavigator) Navigate(page client.Page) {
	switch page {
	case client.PageLogin:
		fmt.Fprintln(n.w, "→ faça login com: financectl login -email <email>")
	case client.PageDashboard:
		fmt.Fprintln(n.w, "→ veja seu painel com: financectl dashboard")
	default:
		fmt.Fprintf(n.w, "→ financectl %s\n", page)
	}
}

type textChart struct{}

func (textChart) Destroy() {}

// textCharts draws the dashboard charts as horizontal bars.
type textCharts struct {
	w io.Writer
}

func bar(value, max decimal.Decimal) string {
	if !max.IsPositive() {
		return ""
	}
	n := int(value.Div(max).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	return strings.Repeat("█", n)
}

func (c textCharts) Bar(series aggregation.MonthlySeries) client.Chart {
	fmt.Fprintln(c.w, "\nReceitas x Gastos por mês")
	max := decimal.Zero
	for i := range series.Labels {
		max = decimal.Max(max, series.Income[i], series.Expenses[i])
	}
	tw := tabwriter.NewWriter(c.w, 0, 2, 2, ' ', 0)
	for i, label := range series.Labels {
		fmt.Fprintf(tw, "%s\tReceitas\t%s\t%s\n", label, formatCurrency(series.Income[i]), bar(series.Income[i], max))
		fmt.Fprintf(tw, "\tGastos\t%s\t%s\n", formatCurrency(series.Expenses[i]), bar(series.Expenses[i], max))
	}
	tw.Flush()
	return textChart{}
}

func (c textCharts) Doughnut(series aggregation.CategorySeries) client.Chart {
	fmt.Fprintln(c.w, "\nGastos por categoria")
	total := decimal.Zero
	for _, v := range series.Values {
		total = total.Add(v)
	}
	tw := tabwriter.NewWriter(c.w, 0, 2, 2, ' ', 0)
	for i, label := range series.Labels {
		share := decimal.Zero
		if total.IsPositive() {
			share = series.Values[i].Div(total).Mul(decimal.NewFromInt(100))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s%%\t%s\n", label, formatCurrency(series.Values[i]), share.StringFixed(1), bar(series.Values[i], total))
	}
	tw.Flush()
	return textChart{}
}

type dashboardView struct {
	w io.Writer
}

func (v dashboardView) SetTitle(title string) {
	fmt.Fprintln(v.w, title)
}

func (v dashboardView) ShowSummary(s aggregation.Summary) {
	tw := tabwriter.NewWriter(v.w, 0, 2, 2, ' ', 0)
	fmt.Fprintf(tw, "Saldo\t%s\n", formatCurrency(s.Balance))
	fmt.Fprintf(tw, "Receitas\t%s\n", formatCurrency(s.Income))
	fmt.Fprintf(tw, "Gastos\t%s\n", formatCurrency(s.Expenses))
	tw.Flush()
}

type goalsView struct {
	w io.Writer
}

func (v goalsView) ShowGoals(progress []aggregation.GoalProgress) {
	tw := tabwriter.NewWriter(v.w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMeta\tProgresso\t%\t")
	for _, p := range progress {
		fmt.Fprintf(tw, "%s\t%s\t%s / %s\t%s%%\t%s\n",
			p.GoalID, p.Description, formatCurrency(p.Current), formatCurrency(p.Target),
			p.Percent.StringFixed(1), bar(p.Percent, decimal.NewFromInt(100)))
	}
	tw.Flush()
}

func (v goalsView) ShowEmpty(message string) {
	fmt.Fprintln(v.w, message)
}

type transactionsView struct {
	w io.Writer
}

func (v transactionsView) ShowTransactions(transactions []domain.Transaction) {
	tw := tabwriter.NewWriter(v.w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDescrição\tValor\tCategoria\tData")
	for _, t := range transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Description, formatCurrency(t.Amount), t.Category, formatDate(t.Date))
	}
	tw.Flush()
}

func (v transactionsView) ShowEmpty(message string) {
	fmt.Fprintln(v.w, message)
}

// formatCurrency renders d as Brazilian reais, e.g. "R$ 1.234,56".
func formatCurrency(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, cents := s[:len(s)-3], s[len(s)-2:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := "R$ " + b.String() + "," + cents
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

func formatDate(d domain.Date) string {
	if d.IsZero() {
		return "Data inválida"
	}
	return d.Format("02/01/2006")
}
