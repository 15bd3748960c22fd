package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/rgoodman/taskdeck-api/internal/config"
	"github.com/rgoodman/taskdeck-api/internal/platform/postgres"
	"github.com/rgoodman/taskdeck-api/internal/platform/webpush"
	"github.com/rgoodman/taskdeck-api/internal/service/auth"
	"github.com/rgoodman/taskdeck-api/internal/service/notify"
	"github.com/rgoodman/taskdeck-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// application holds the wired dependency graph for the HTTP server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore         store.UserStore
	taskStore         store.TaskStore
	recurringStore    store.RecurringTaskStore
	subscriptionStore store.PushSubscriptionStore
	leaveStore        store.LeaveRequestStore
	diaryStore        store.DiaryEntryStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	pushSender       *webpush.Sender
	notifyService    *notify.Service
}

// newApplication connects to the database and wires every store and
// service the handlers need.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	pushSender := webpush.NewSender(cfg.Push, logger)

	taskStore := postgres.NewPostgresTaskStore(db, logger)
	subscriptionStore := postgres.NewPostgresSubscriptionStore(db, logger)

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,

		userStore:         postgres.NewPostgresUserStore(db, logger, bcrypt.DefaultCost),
		taskStore:         taskStore,
		recurringStore:    postgres.NewPostgresRecurringTaskStore(db, logger),
		subscriptionStore: subscriptionStore,
		leaveStore:        postgres.NewPostgresLeaveStore(db, logger),
		diaryStore:        postgres.NewPostgresDiaryStore(db, logger),

		jwtService:       jwtService,
		passwordVerifier: auth.NewBcryptVerifier(),
		pushSender:       pushSender,
	}
	app.notifyService = notify.NewService(taskStore, subscriptionStore, pushSender, logger)

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
