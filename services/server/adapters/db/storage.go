package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"taskboard/services/server/core"
)

type DB struct {
	log  *slog.Logger
	conn *sqlx.DB
}

func New(log *slog.Logger, address string) (*DB, error) {
	db, err := sqlx.Connect("pgx", address)
	if err != nil {
		log.Error("connection problem", "error", err)
		return nil, err
	}
	return &DB{log: log, conn: db}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Users

func (db *DB) ListUsers(ctx context.Context, q core.UserQuery) ([]core.User, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT id, name, email, password FROM users`)
	if q.Email != "" {
		args = append(args, q.Email)
		sb.WriteString(` WHERE email = $1`)
	}
	sb.WriteString(` ORDER BY id`)

	out := []core.User{}
	if err := db.conn.SelectContext(ctx, &out, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (db *DB) GetUser(ctx context.Context, id core.UserID) (core.User, error) {
	const q = `SELECT id, name, email, password FROM users WHERE id = $1`

	var u core.User
	if err := db.conn.GetContext(ctx, &u, q, int64(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrUserNotFound
		}
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (db *DB) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	const q = `
		INSERT INTO users(name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id;
	`

	if err := db.conn.QueryRowxContext(ctx, q, u.Name, u.Email, u.Password).Scan(&u.ID); err != nil {
		if isUniqueViolation(err) {
			return core.User{}, core.ErrUserAlreadyExists
		}
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// Tasks

const taskColumns = `id, user_id, title, description, category, priority, status, created_at, updated_at`

func (db *DB) ListTasks(ctx context.Context, q core.TaskQuery) ([]core.Task, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks`)
	if q.UserID != nil {
		args = append(args, int64(*q.UserID))
		sb.WriteString(` WHERE user_id = $1`)
	}
	sb.WriteString(` ORDER BY seq`)

	out := []core.Task{}
	if err := db.conn.SelectContext(ctx, &out, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (db *DB) GetTask(ctx context.Context, id string) (core.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	var t core.Task
	if err := db.conn.GetContext(ctx, &t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (db *DB) CreateTask(ctx context.Context, t core.Task) (core.Task, error) {
	const q = `
		INSERT INTO tasks(id, user_id, title, description, category, priority, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + taskColumns + `;
	`

	var out core.Task
	err := db.conn.GetContext(ctx, &out, q,
		t.ID, int64(t.UserID), t.Title, t.Description, t.Category, t.Priority, t.Status, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return core.Task{}, mapTaskErr("insert task", err)
	}
	return out, nil
}

func (db *DB) UpdateTask(ctx context.Context, t core.Task) (core.Task, error) {
	const q = `
		UPDATE tasks
		SET title = $2,
		    description = $3,
		    category = $4,
		    priority = $5,
		    status = $6,
		    updated_at = $7
		WHERE id = $1
		RETURNING ` + taskColumns + `;
	`

	var out core.Task
	err := db.conn.GetContext(ctx, &out, q,
		t.ID, t.Title, t.Description, t.Category, t.Priority, t.Status, t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, mapTaskErr("update task", err)
	}
	return out, nil
}

func (db *DB) DeleteTask(ctx context.Context, id string) error {
	const q = `DELETE FROM tasks WHERE id = $1`

	res, err := db.conn.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

func mapTaskErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return core.ErrTaskAlreadyExists
	case isForeignKeyViolation(err):
		return core.ErrUserNotFound
	case isCheckViolation(err):
		return core.ErrTaskInvalidArgs
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// pg helpers

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

var _ core.DB = (*DB)(nil)
