package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/adikrishnan/expense-ledger/internal"
	"github.com/adikrishnan/expense-ledger/internal/category"
	categoryPostgres "github.com/adikrishnan/expense-ledger/internal/category/postgres"
	"github.com/adikrishnan/expense-ledger/internal/currency"
	"github.com/adikrishnan/expense-ledger/internal/expense"
	expensePostgres "github.com/adikrishnan/expense-ledger/internal/expense/postgres"
	"github.com/adikrishnan/expense-ledger/internal/transport/rest"
	"github.com/adikrishnan/expense-ledger/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server that exposes the ledger operations`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func startHTTPServer() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		lg.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	rateClient := currency.NewRateClient(cfg.Currency.RateAPIURL, cfg.Currency.RateTimeout, lg)

	expenseRepo := expensePostgres.NewExpenseRepository(db, lg)
	expenseService := expense.NewService(expenseRepo, rateClient, cfg.Currency.BaseCurrency, lg)
	expenseHandler := expense.NewHandler(expenseService)

	categoryRepo := categoryPostgres.NewCategoryRepository(db, lg)
	taxonomy := category.NewTaxonomyStore(cfg.Categories.TaxonomyPath)
	categoryService := category.NewService(categoryRepo, taxonomy, lg)
	categoryHandler := category.NewHandler(categoryService)

	currencyService := currency.NewService(rateClient, lg)
	currencyHandler := currency.NewHandler(currencyService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, cfg.Ledger.Owner(),
		expenseHandler, categoryHandler, currencyHandler, lg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("starting HTTP server", "address", addr, "base_currency", cfg.Currency.BaseCurrency)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
		if err := db.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("server stopped")
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	db, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
