package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"taskboard/services/server/adapters/rest"
	"taskboard/services/server/core"
	"taskboard/services/server/pkg/res"
)

func NewListUsersHandler(_ *slog.Logger, svc core.Users, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		users, err := svc.ListUsers(ctx, core.UserQuery{Email: r.URL.Query().Get("email")})
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.JSON(w, users, http.StatusOK)
	}
}

func NewCreateUserHandler(log *slog.Logger, svc core.Users, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateUserIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		u, err := svc.CreateUser(ctx, core.User{Name: in.Name, Email: in.Email, Password: in.Password})
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		log.Info("user registered", "id", u.ID)
		res.JSON(w, u, http.StatusCreated)
	}
}
