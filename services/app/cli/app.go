package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/services/app/adapters/rest"
	"taskboard/services/app/adapters/session"
	"taskboard/services/app/config"
	"taskboard/services/app/core"
)

var errNotLoggedIn = errors.New("not logged in, run `taskboard login` first")

// app is everything one command invocation needs.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	client  *rest.Client
	session *core.SessionStore
	tasks   *core.TaskStore

	closers []func() error
}

func newApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	log := mustMakeLogger(cfg.LogLevel)

	client, err := rest.NewClient(cfg.API.BaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}

	a := &app{cfg: cfg, log: log, client: client}

	storage, err := a.openStorage()
	if err != nil {
		return nil, err
	}

	policy, err := core.ParseHydrationPolicy(cfg.Session.Hydration)
	if err != nil {
		return nil, err
	}

	a.session = core.NewSessionStore(log, client, storage, policy)
	a.tasks = core.NewTaskStore(log, client)

	a.session.Subscribe(func(st core.SessionState) {
		log.Debug("session state", "authenticated", st.IsAuthenticated, "loading", st.IsLoading, "error", st.Error)
	})
	a.tasks.Subscribe(func(st core.TaskState) {
		log.Debug("task state", "tasks", len(st.Tasks), "categories", len(st.Categories), "loading", st.IsLoading, "error", st.Error)
	})

	return a, nil
}

func (a *app) openStorage() (core.LocalStorage, error) {
	switch strings.ToLower(a.cfg.Session.Backend) {
	case "", "file":
		s, err := session.NewFileStorage(a.log, a.cfg.Session.File)
		if err != nil {
			return nil, err
		}
		a.log.Debug("using file session storage", "path", s.Path())
		return s, nil
	case "redis":
		r := a.cfg.Session.Redis
		s, err := session.NewRedisStorage(a.log, r.Address, r.Password, r.DB, r.Prefix)
		if err != nil {
			return nil, fmt.Errorf("init redis session storage: %w", err)
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", a.cfg.Session.Backend)
	}
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn("close failed", "error", err)
		}
	}
}

// context bounds one command by the configured API timeout.
func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.cfg.API.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.cfg.API.Timeout)
}

// currentUser restores the persisted session.
func (a *app) currentUser(ctx context.Context) (core.User, error) {
	a.session.InitializeAuth(ctx)
	st := a.session.State()
	if !st.IsAuthenticated || st.User == nil {
		return core.User{}, errNotLoggedIn
	}
	return *st.User, nil
}

// sessionErr turns a failed session action into a command error and
// dismisses it from the store.
func (a *app) sessionErr() error {
	msg := a.session.State().Error
	if msg == "" {
		return nil
	}
	a.session.ClearError()
	return errors.New(msg)
}

func (a *app) taskErr() error {
	msg := a.tasks.State().Error
	if msg == "" {
		return nil
	}
	a.tasks.ClearError()
	return errors.New(msg)
}

// withApp wires an app for the duration of fn.
func withApp(opts *rootOptions, cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := a.context(cmd)
	defer cancel()

	return fn(ctx, a)
}

func mustMakeLogger(logLevel string) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
