package main

import (
	"net/http"
)

func composeRoutes(app *application) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/healthcheck", app.healthCheckHandler)

	mux.HandleFunc("POST /v1/auth/signin", app.signInHandler)
	mux.HandleFunc("POST /v1/auth/signout", app.requireAuth(app.signOutHandler))

	mux.HandleFunc("GET /v1/tasks", app.requireAuth(app.listTasksHandler))
	mux.HandleFunc("POST /v1/tasks", app.requireAuth(app.createTaskHandler))
	mux.HandleFunc("POST /v1/tasks/refresh", app.requireAuth(app.refreshTasksHandler))
	mux.HandleFunc("GET /v1/tasks/{id}", app.requireAuth(app.getTaskHandler))
	mux.HandleFunc("PUT /v1/tasks/{id}", app.requireAuth(app.updateTaskHandler))
	mux.HandleFunc("DELETE /v1/tasks/{id}", app.requireAuth(app.deleteTaskHandler))
	mux.HandleFunc("POST /v1/tasks/{id}/toggle", app.requireAuth(app.toggleTaskHandler))

	var handler http.Handler = mux
	if len(app.config.cors.trustedOrigins) > 0 {
		handler = app.enableCORS(handler)
	}
	if app.config.limiter.enabled {
		handler = app.rateLimit(handler)
	}
	return handler
}
