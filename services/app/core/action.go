package core

import "log/slog"

// call runs a client call at a store action boundary. A panic inside fn is
// reported as an error: a panic value that is an error keeps its message,
// anything else becomes ErrUnknown.
func call(log *slog.Logger, action string, fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		log.Error("store action panicked", "action", action, "panic", r)
		if e, ok := r.(error); ok && e != nil {
			err = e
			return
		}
		err = ErrUnknown
	}()
	return fn()
}
