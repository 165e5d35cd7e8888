package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskboard/services/server/core"
)

type Deps struct {
	Storage core.Pinger
	Users   core.Users
	Tasks   core.Tasks
}

func Register(mux *http.ServeMux, log *slog.Logger, deps Deps, timeout time.Duration) {
	// health
	mux.Handle("GET /{$}", NewHealthHandler(log, map[string]core.Pinger{"storage": deps.Storage}, timeout))
	mux.Handle("GET /metrics", promhttp.Handler())

	// users
	mux.Handle("GET /users", NewListUsersHandler(log, deps.Users, timeout))
	mux.Handle("POST /users", NewCreateUserHandler(log, deps.Users, timeout))

	// tasks
	mux.Handle("GET /tasks", NewListTasksHandler(log, deps.Tasks, timeout))
	mux.Handle("POST /tasks", NewCreateTaskHandler(log, deps.Tasks, timeout))
	mux.Handle("GET /tasks/{id}", NewGetTaskHandler(log, deps.Tasks, timeout))
	mux.Handle("PATCH /tasks/{id}", NewPatchTaskHandler(log, deps.Tasks, timeout))
	mux.Handle("DELETE /tasks/{id}", NewDeleteTaskHandler(log, deps.Tasks, timeout))
}
