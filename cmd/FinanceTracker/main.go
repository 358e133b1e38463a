package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	database "github.com/sebuszqo/FinanceTracker/db"
	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/config"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/finance/infrastructure"
	"github.com/sebuszqo/FinanceTracker/internal/finance/interfaces"
	"github.com/sebuszqo/FinanceTracker/internal/logger"
	"github.com/sebuszqo/FinanceTracker/internal/server"
	"github.com/sebuszqo/FinanceTracker/internal/user"
)

type storage struct {
	users        user.Repository
	transactions domain.TransactionRepository
	goals        domain.GoalRepository
	health       server.HealthChecker
	close        func() error
}

func openStorage(cfg config.Storage, log *slog.Logger) (*storage, error) {
	if cfg.Driver == config.StorageMemory {
		log.Warn("Using in-memory storage, data is lost on restart")
		return &storage{
			users:        user.NewMemoryUserRepository(),
			transactions: infrastructure.NewMemoryTransactionRepository(),
			goals:        infrastructure.NewMemoryGoalRepository(),
			close:        func() error { return nil },
		}, nil
	}

	dbService, err := database.NewDBService(cfg.ConnString, database.Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(dbService.DB); err != nil {
		dbService.Close()
		return nil, err
	}
	log.Info("Database migrations applied")

	return &storage{
		users:        user.NewUserRepository(dbService.DB),
		transactions: infrastructure.NewTransactionRepository(dbService.DB),
		goals:        infrastructure.NewGoalRepository(dbService.DB),
		health:       dbService,
		close:        dbService.Close,
	}, nil
}

func main() {
	cfg := config.MustLoad()

	log := logger.New(cfg.Env, os.Stdout)
	slog.SetDefault(log)

	log.Info("Starting application",
		slog.String("env", cfg.Env),
		slog.String("addr", cfg.HTTP.Addr()),
		slog.String("storage", cfg.Storage.Driver),
	)

	store, err := openStorage(cfg.Storage, log)
	if err != nil {
		log.Error("Could not initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.close()

	jwtManager, err := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		log.Error("Invalid JWT configuration", "error", err)
		os.Exit(1)
	}

	userService := user.NewUserService(store.users, log)
	authService := auth.NewAuthService(userService, jwtManager, log, server.RespondError)

	handlers := server.Handlers{
		Auth:         auth.NewHandler(authService, server.RespondJSON, server.RespondError),
		User:         user.NewHandler(userService, log, server.RespondJSON, server.RespondError),
		Transactions: interfaces.NewTransactionHandler(application.NewTransactionService(store.transactions), log, server.RespondJSON, server.RespondError),
		Goals:        interfaces.NewGoalHandler(application.NewGoalService(store.goals), log, server.RespondJSON, server.RespondError),
		Categories:   interfaces.NewCategoryHandler(application.NewCategoryService(), server.RespondJSON),
		Reports:      interfaces.NewReportHandler(application.NewReportService(store.transactions, store.goals), log, server.RespondJSON, server.RespondError),
	}

	apiServer := server.New(cfg.HTTP, cfg.CORS, log, handlers, authService, store.health)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		apiServer.MustStart()
	}()

	<-sigChan
	log.Info("Got signal to shutdown server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := apiServer.Stop(ctx); err != nil {
		log.Error("Stopping server error", "error", err)
	}
}
