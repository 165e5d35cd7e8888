package core

import "context"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Auth interface {
	Login(ctx context.Context, data LoginData) (User, error)
	Register(ctx context.Context, data RegisterData) (User, error)
}

type Tasks interface {
	GetTasks(ctx context.Context, userID ID, f TaskFilters) ([]Task, error)
	CreateTask(ctx context.Context, userID ID, req CreateTaskRequest) (Task, error)
	UpdateTask(ctx context.Context, id ID, p TaskPatch) (Task, error)
	DeleteTask(ctx context.Context, id ID) error
	GetTaskStats(ctx context.Context, userID ID) (TaskStats, error)
	GetCategories(ctx context.Context, userID ID) ([]string, error)
}

// LocalStorage is a string key/value slot that survives between runs,
// the counterpart of browser local storage.
type LocalStorage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
