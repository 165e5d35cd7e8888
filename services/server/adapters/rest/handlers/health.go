package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"taskboard/services/server/core"
	"taskboard/services/server/pkg/res"
)

type health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// NewHealthHandler reports "ok" when every dependency answers within
// timeout and "degraded" with 503 otherwise.
func NewHealthHandler(log *slog.Logger, deps map[string]core.Pinger, timeout time.Duration) http.HandlerFunc {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out := health{Status: "ok", Checks: make(map[string]string, len(names))}
		for _, name := range names {
			if err := deps[name].Ping(ctx); err != nil {
				log.Warn("health check failed", "dependency", name, "error", err)
				out.Checks[name] = "down"
				out.Status = "degraded"
				continue
			}
			out.Checks[name] = "ok"
		}

		code := http.StatusOK
		if out.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		res.JSON(w, out, code)
	}
}
