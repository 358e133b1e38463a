package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/sebuszqo/FinanceTracker/internal/client"
	"github.com/sebuszqo/FinanceTracker/internal/config"
	"github.com/sebuszqo/FinanceTracker/internal/finance/aggregation"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/logger"
)

const usage = `financectl - controle financeiro pelo terminal

Uso:
  financectl [-api URL] [-session FILE] <comando> [opções]

Comandos:
  register -name N -email E [-password P]
  login -email E [-password P]
  logout
  dashboard
  export [-o arquivo.csv]
  goals                                  lista metas
  goals add -description D -amount V
  goals rm [-yes] <id>
  income|expense [-category C] [-month AAAA-MM]
  income|expense add -description D -amount V -category C [-date AAAA-MM-DD]
  income|expense edit [-description D] [-amount V] [-category C] [-date AAAA-MM-DD] <id>
  income|expense rm [-yes] <id>
`

// errReported marks failures the Notifier already showed.
var errReported = errors.New("reported")

type app struct {
	deps client.Deps
	in   *bufio.Reader
	out  io.Writer
}

func immediate(_ time.Duration, fn func()) { fn() }

func main() {
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = config.EnvProd
	}
	log := logger.New(env, os.Stderr)

	apiURL := flag.String("api", envOr("FINANCE_API_URL", client.DefaultBaseURL), "API base URL")
	sessionPath := flag.String("session", os.Getenv("FINANCECTL_SESSION"), "session file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *sessionPath == "" {
		path, err := client.DefaultStoragePath()
		if err != nil {
			log.Error("Could not locate session file", "error", err)
			os.Exit(1)
		}
		*sessionPath = path
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(*apiURL, *sessionPath)
	err := a.run(ctx, flag.Arg(0), flag.Args()[1:])
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	case errors.Is(err, errReported):
		os.Exit(1)
	default:
		log.Debug("Command failed", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newApp(apiURL, sessionPath string) *app {
	session := client.NewSession(client.NewFileStorage(sessionPath))
	navigator := hintNavigator{w: os.Stderr}
	c := client.NewClient(apiURL, session,
		client.WithScheduler(immediate),
		client.WithUnauthorizedHandler(func() { navigator.Navigate(client.PageLogin) }, 0),
	)
	in := bufio.NewReader(os.Stdin)
	return &app{
		deps: client.Deps{
			Client:    c,
			Session:   session,
			Notifier:  newTerminalNotifier(os.Stderr),
			Confirmer: &promptConfirmer{in: in, out: os.Stderr},
			Navigator: navigator,
			Schedule:  immediate,
		},
		in:  in,
		out: os.Stdout,
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.auth(ctx, client.ModeRegister, args)
	case "login":
		return a.auth(ctx, client.ModeLogin, args)
	case "logout":
		return a.logout()
	case "dashboard":
		return a.dashboard(ctx)
	case "export":
		return a.export(ctx, args)
	case "goals":
		return a.goals(ctx, args)
	case "income":
		return a.transactions(ctx, domain.TypeIncome, args)
	case "expense":
		return a.transactions(ctx, domain.TypeExpense, args)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "comando desconhecido: %s\n\n%s", command, usage)
		return flag.ErrHelp
	}
}

// reported wraps errors the page components already showed to the user.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", errReported, err)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func (a *app) auth(ctx context.Context, mode client.AuthMode, args []string) error {
	fs := newFlagSet(mode.String())
	name := fs.String("name", "", "nome")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "senha (pedida no terminal se omitida)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		*password = prompt(a.in, os.Stderr, "Senha")
	}

	page := client.NewAuthPage(a.deps)
	page.Bind()
	defer page.Dispose()
	if mode == client.ModeRegister {
		page.Toggle()
	}
	return reported(page.Submit(ctx, client.Credentials{Name: *name, Email: *email, Password: *password}))
}

func (a *app) logout() error {
	dash := client.NewDashboard(a.deps, dashboardView{w: io.Discard}, nil)
	defer dash.Dispose()
	dash.Logout()
	return nil
}

func (a *app) dashboard(ctx context.Context) error {
	dash := client.NewDashboard(a.deps, dashboardView{w: a.out}, textCharts{w: a.out})
	defer dash.Dispose()
	if err := dash.Bind(); err != nil {
		return reported(err)
	}
	return reported(dash.Render(ctx))
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := newFlagSet("export")
	output := fs.String("o", aggregation.ExportFileName, "arquivo de saída ('-' para stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dash := client.NewDashboard(a.deps, dashboardView{w: io.Discard}, nil)
	defer dash.Dispose()
	if err := dash.Bind(); err != nil {
		return reported(err)
	}

	var buf bytes.Buffer
	if err := dash.Export(ctx, &buf); err != nil {
		return reported(err)
	}
	if *output == "-" {
		_, err := a.out.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(*output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *output, err)
	}
	fmt.Fprintf(os.Stderr, "→ %s\n", *output)
	return nil
}

func (a *app) goals(ctx context.Context, args []string) error {
	page := client.NewGoalsPage(a.deps, goalsView{w: a.out})
	defer page.Dispose()
	if err := page.Bind(); err != nil {
		return reported(err)
	}
	if len(args) == 0 {
		return reported(page.Render(ctx))
	}

	switch args[0] {
	case "add":
		fs := newFlagSet("goals add")
		description := fs.String("description", "", "descrição")
		amount := fs.String("amount", "", "valor alvo")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return reported(page.Add(ctx, *description, *amount))
	case "rm":
		fs := newFlagSet("goals rm")
		yes := fs.Bool("yes", false, "não pedir confirmação")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("%w: goals rm <id>", flag.ErrHelp)
		}
		a.confirmer().assumeYes = *yes
		return reported(page.Delete(ctx, fs.Arg(0)))
	default:
		return fmt.Errorf("%w: goals %s", flag.ErrHelp, args[0])
	}
}

func (a *app) confirmer() *promptConfirmer {
	return a.deps.Confirmer.(*promptConfirmer)
}

func (a *app) transactions(ctx context.Context, kind domain.TransactionType, args []string) error {
	page := client.NewTransactionsPage(a.deps, kind, transactionsView{w: a.out})
	page.OnRowAdded = func(id string) { fmt.Fprintf(os.Stderr, "+ %s\n", id) }
	page.OnRowRemoved = func(id string) { fmt.Fprintf(os.Stderr, "- %s\n", id) }
	defer page.Dispose()
	if err := page.Bind(); err != nil {
		return reported(err)
	}

	sub := ""
	if len(args) > 0 && (args[0] == "add" || args[0] == "edit" || args[0] == "rm") {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "":
		fs := newFlagSet(string(kind))
		category := fs.String("category", client.AllCategories, "categoria ou 'all'")
		month := fs.String("month", "", "mês AAAA-MM")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return reported(page.SetFilter(ctx, client.Filter{Category: *category, Month: *month}))

	case "add":
		fs := newFlagSet(string(kind) + " add")
		form := bindForm(fs, client.TransactionForm{Date: domain.DateOf(time.Now()).String()})
		if err := fs.Parse(args); err != nil {
			return err
		}
		_, err := page.Add(ctx, *form)
		return reported(err)

	case "edit":
		// flags left unset keep the stored values
		current, err := a.lookupForEdit(ctx, page, args)
		if err != nil {
			return err
		}
		fs := newFlagSet(string(kind) + " edit")
		form := bindForm(fs, client.TransactionForm{
			Description: current.Description,
			Amount:      current.Amount.String(),
			Category:    current.Category,
			Date:        current.Date.String(),
		})
		if err := fs.Parse(args); err != nil {
			return err
		}
		_, err = page.Edit(ctx, current.ID, *form)
		return reported(err)

	default: // rm
		fs := newFlagSet(string(kind) + " rm")
		yes := fs.Bool("yes", false, "não pedir confirmação")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("%w: %s rm <id>", flag.ErrHelp, kind)
		}
		a.confirmer().assumeYes = *yes
		return reported(page.Delete(ctx, fs.Arg(0)))
	}
}

// lookupForEdit finds the id among the edit arguments before the flags are
// bound, since their defaults come from the stored transaction.
func (a *app) lookupForEdit(ctx context.Context, page *client.TransactionsPage, args []string) (*domain.Transaction, error) {
	peek := newFlagSet("edit")
	peek.SetOutput(io.Discard)
	bindForm(peek, client.TransactionForm{})
	if err := peek.Parse(args); err != nil || peek.NArg() != 1 {
		return nil, fmt.Errorf("%w: %s edit [opções] <id>", flag.ErrHelp, page.Type())
	}
	current, err := page.Lookup(ctx, peek.Arg(0))
	return current, reported(err)
}

func bindForm(fs *flag.FlagSet, defaults client.TransactionForm) *client.TransactionForm {
	form := &client.TransactionForm{}
	fs.StringVar(&form.Description, "description", defaults.Description, "descrição")
	fs.StringVar(&form.Amount, "amount", defaults.Amount, "valor")
	fs.StringVar(&form.Category, "category", defaults.Category, "categoria")
	fs.StringVar(&form.Date, "date", defaults.Date, "data AAAA-MM-DD")
	return form
}
