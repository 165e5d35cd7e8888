package rest

import (
	"errors"
	"net/http"

	"taskboard/services/server/core"
	"taskboard/services/server/pkg/res"
)

func WriteErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUserInvalidArgs), errors.Is(err, core.ErrTaskInvalidArgs):
		res.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrUserNotFound), errors.Is(err, core.ErrTaskNotFound):
		res.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, core.ErrUserAlreadyExists), errors.Is(err, core.ErrTaskAlreadyExists):
		res.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, core.ErrUnavailable):
		res.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		res.Error(w, "internal error", http.StatusInternalServerError)
	}
}
