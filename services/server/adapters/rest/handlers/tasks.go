package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"taskboard/services/server/adapters/rest"
	"taskboard/services/server/core"
	"taskboard/services/server/pkg/res"
)

func NewListTasksHandler(_ *slog.Logger, svc core.Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q core.TaskQuery

		if v := r.URL.Query().Get("userId"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n <= 0 {
				res.Error(w, "invalid userId", http.StatusBadRequest)
				return
			}
			id := core.UserID(n)
			q.UserID = &id
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListTasks(ctx, q)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.JSON(w, items, http.StatusOK)
	}
}

func NewCreateTaskHandler(_ *slog.Logger, svc core.Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.CreateTask(ctx, in.NewTask())
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.JSON(w, t, http.StatusCreated)
	}
}

func NewGetTaskHandler(_ *slog.Logger, svc core.Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.GetTask(ctx, r.PathValue("id"))
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.JSON(w, t, http.StatusOK)
	}
}

func NewPatchTaskHandler(_ *slog.Logger, svc core.Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.PatchTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.PatchTask(ctx, r.PathValue("id"), in.Patch())
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.JSON(w, t, http.StatusOK)
	}
}

func NewDeleteTaskHandler(_ *slog.Logger, svc core.Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteTask(ctx, r.PathValue("id")); err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Empty(w, http.StatusOK)
	}
}
