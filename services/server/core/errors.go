package core

import "errors"

// Users errors
var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserInvalidArgs   = errors.New("user invalid args")
)

// Tasks errors
var (
	ErrTaskAlreadyExists = errors.New("task already exists")
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskInvalidArgs   = errors.New("task invalid args")
)

var ErrUnavailable = errors.New("storage unavailable")
