package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rgoodman/taskdeck-api/internal/api"
	apiMiddleware "github.com/rgoodman/taskdeck-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.config.Auth.TokenTTLMinutes,
	)
	taskHandler := api.NewTaskHandler(app.taskStore)
	recurringHandler := api.NewRecurringTaskHandler(app.recurringStore)
	leaveHandler := api.NewLeaveHandler(app.leaveStore)
	diaryHandler := api.NewDiaryHandler(app.diaryStore)
	pushHandler := api.NewPushHandler(app.subscriptionStore, app.pushSender)
	reportHandler := api.NewReportHandler(app.taskStore)
	cronHandler := api.NewCronHandler(app.recurringStore, app.notifyService)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	cronMiddleware := apiMiddleware.NewCronAuthMiddleware(app.config.Cron.Secret)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Machine endpoints for the external scheduler
		r.Group(func(r chi.Router) {
			r.Use(cronMiddleware.RequireSecret)
			r.Get("/cron/spawn-recurring-tasks", cronHandler.SpawnRecurringTasks)
			r.Get("/cron/daily-notifications", cronHandler.DailyNotifications)
			r.Post("/notifications/send", cronHandler.SendNotification)
		})

		// Authenticated user routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Task endpoints
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks", taskHandler.List)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Patch("/tasks/{id}/status", taskHandler.UpdateStatus)

			// Leave request endpoints
			r.Post("/leave-requests", leaveHandler.Create)
			r.Get("/leave-requests", leaveHandler.List)

			// Work diary endpoints
			r.Put("/diary", diaryHandler.Upsert)
			r.Get("/diary", diaryHandler.Range)

			// Push subscription endpoints
			r.Get("/push/vapid-public-key", pushHandler.VAPIDPublicKey)
			r.Post("/push/subscribe", pushHandler.Subscribe)
			r.Post("/push/unsubscribe", pushHandler.Unsubscribe)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAdmin)

				r.Delete("/tasks/{id}", taskHandler.Delete)

				r.Post("/recurring-tasks", recurringHandler.Create)
				r.Get("/recurring-tasks", recurringHandler.List)
				r.Put("/recurring-tasks/{id}", recurringHandler.Update)
				r.Delete("/recurring-tasks/{id}", recurringHandler.Delete)

				r.Patch("/leave-requests/{id}/status", leaveHandler.UpdateStatus)

				r.Get("/reports/task-summary", reportHandler.TaskSummary)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
