package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockAuth struct {
	LoginFunc    func(ctx context.Context, data LoginData) (User, error)
	RegisterFunc func(ctx context.Context, data RegisterData) (User, error)
}

func (m *mockAuth) Login(ctx context.Context, data LoginData) (User, error) {
	return m.LoginFunc(ctx, data)
}

func (m *mockAuth) Register(ctx context.Context, data RegisterData) (User, error) {
	return m.RegisterFunc(ctx, data)
}

type mockTasks struct {
	GetTasksFunc      func(ctx context.Context, userID ID, f TaskFilters) ([]Task, error)
	CreateTaskFunc    func(ctx context.Context, userID ID, req CreateTaskRequest) (Task, error)
	UpdateTaskFunc    func(ctx context.Context, id ID, p TaskPatch) (Task, error)
	DeleteTaskFunc    func(ctx context.Context, id ID) error
	GetTaskStatsFunc  func(ctx context.Context, userID ID) (TaskStats, error)
	GetCategoriesFunc func(ctx context.Context, userID ID) ([]string, error)
}

func (m *mockTasks) GetTasks(ctx context.Context, userID ID, f TaskFilters) ([]Task, error) {
	return m.GetTasksFunc(ctx, userID, f)
}

func (m *mockTasks) CreateTask(ctx context.Context, userID ID, req CreateTaskRequest) (Task, error) {
	return m.CreateTaskFunc(ctx, userID, req)
}

func (m *mockTasks) UpdateTask(ctx context.Context, id ID, p TaskPatch) (Task, error) {
	return m.UpdateTaskFunc(ctx, id, p)
}

func (m *mockTasks) DeleteTask(ctx context.Context, id ID) error {
	return m.DeleteTaskFunc(ctx, id)
}

func (m *mockTasks) GetTaskStats(ctx context.Context, userID ID) (TaskStats, error) {
	return m.GetTaskStatsFunc(ctx, userID)
}

func (m *mockTasks) GetCategories(ctx context.Context, userID ID) ([]string, error) {
	return m.GetCategoriesFunc(ctx, userID)
}

// memStorage is a LocalStorage that counts writes.
type memStorage struct {
	mu      sync.Mutex
	items   map[string]string
	sets    int
	removes int
	getErr  error
	setErr  error
}

func newMemStorage() *memStorage {
	return &memStorage{items: map[string]string{}}
}

func (s *memStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *memStorage) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.items[key] = value
	return nil
}

func (s *memStorage) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removes++
	delete(s.items, key)
	return nil
}

var errBoom = errors.New("X")
