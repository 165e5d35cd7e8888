package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"taskboard/services/server/core"
)

// Storage keeps users and tasks in insertion order, the way a db.json file
// lists them.
type Storage struct {
	log *slog.Logger

	mu         sync.RWMutex
	nextUserID core.UserID
	users      []core.User
	tasks      []core.Task
}

func New(log *slog.Logger) *Storage {
	return &Storage{log: log, nextUserID: 1}
}

// seedFile is the db.json layout.
type seedFile struct {
	Users []core.User `json:"users"`
	Tasks []core.Task `json:"tasks"`
}

// Seed replaces the contents of s with the records in the JSON file at path.
func (s *Storage) Seed(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var in seedFile
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode seed file %q: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append([]core.User(nil), in.Users...)
	s.tasks = append([]core.Task(nil), in.Tasks...)
	s.nextUserID = 1
	for _, u := range s.users {
		if u.ID >= s.nextUserID {
			s.nextUserID = u.ID + 1
		}
	}

	s.log.Info("seeded memory storage", "path", path, "users", len(s.users), "tasks", len(s.tasks))
	return nil
}

func (s *Storage) Ping(context.Context) error {
	return nil
}

func (s *Storage) ListUsers(_ context.Context, q core.UserQuery) ([]core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		if q.Match(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Storage) GetUser(_ context.Context, id core.UserID) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return core.User{}, core.ErrUserNotFound
}

func (s *Storage) CreateUser(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return core.User{}, core.ErrUserAlreadyExists
		}
	}

	u.ID = s.nextUserID
	s.nextUserID++
	s.users = append(s.users, u)
	return u, nil
}

func (s *Storage) ListTasks(_ context.Context, q core.TaskQuery) ([]core.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if q.Match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Storage) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Storage) GetTask(_ context.Context, id string) (core.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.Task{}, core.ErrTaskNotFound
	}
	return s.tasks[i], nil
}

func (s *Storage) CreateTask(_ context.Context, t core.Task) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(t.ID) >= 0 {
		return core.Task{}, core.ErrTaskAlreadyExists
	}
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *Storage) UpdateTask(_ context.Context, t core.Task) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(t.ID)
	if i < 0 {
		return core.Task{}, core.ErrTaskNotFound
	}
	t.UserID = s.tasks[i].UserID
	t.CreatedAt = s.tasks[i].CreatedAt
	s.tasks[i] = t
	return t, nil
}

func (s *Storage) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.ErrTaskNotFound
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return nil
}

var _ core.DB = (*Storage)(nil)
