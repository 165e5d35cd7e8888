package core

import "context"

type DB interface {
	Ping(ctx context.Context) error

	ListUsers(ctx context.Context, q UserQuery) ([]User, error)
	GetUser(ctx context.Context, id UserID) (User, error)
	CreateUser(ctx context.Context, u User) (User, error)

	ListTasks(ctx context.Context, q TaskQuery) ([]Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	CreateTask(ctx context.Context, t Task) (Task, error)
	UpdateTask(ctx context.Context, t Task) (Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Users interface {
	ListUsers(ctx context.Context, q UserQuery) ([]User, error)
	CreateUser(ctx context.Context, u User) (User, error)
}

type Tasks interface {
	ListTasks(ctx context.Context, q TaskQuery) ([]Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	CreateTask(ctx context.Context, in NewTask) (Task, error)
	PatchTask(ctx context.Context, id string, p TaskPatch) (Task, error)
	DeleteTask(ctx context.Context, id string) error
}
