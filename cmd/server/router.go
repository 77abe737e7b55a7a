package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apiMiddleware "github.com/mindluster/kanban-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.CORS)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", app.taskHandler.ListTasks)
			r.Post("/", app.taskHandler.CreateTask)
			r.Get("/{id}", app.taskHandler.GetTask)
			r.Patch("/{id}", app.taskHandler.UpdateTask)
			r.Delete("/{id}", app.taskHandler.DeleteTask)
		})
		r.Post("/columns/{column}/renumber", app.taskHandler.RenumberColumn)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := app.taskService.Health(r.Context()); err != nil {
			app.logger.Error("Health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
