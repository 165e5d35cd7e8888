package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	db    DB
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithClock replaces time.Now for records that arrive without timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db DB, opts ...Option) *Service {
	s := &Service{
		db:    db,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Users

func (s *Service) ListUsers(ctx context.Context, q UserQuery) ([]User, error) {
	q.Email = strings.TrimSpace(q.Email)
	return s.db.ListUsers(ctx, q)
}

func (s *Service) CreateUser(ctx context.Context, u User) (User, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	if u.Name == "" || u.Email == "" || u.Password == "" {
		return User{}, ErrUserInvalidArgs
	}

	existing, err := s.db.ListUsers(ctx, UserQuery{Email: u.Email})
	if err != nil {
		return User{}, err
	}
	if len(existing) > 0 {
		return User{}, ErrUserAlreadyExists
	}

	u.ID = 0
	return s.db.CreateUser(ctx, u)
}

// Tasks

func (s *Service) ListTasks(ctx context.Context, q TaskQuery) ([]Task, error) {
	if q.UserID != nil && *q.UserID <= 0 {
		return nil, ErrTaskInvalidArgs
	}
	return s.db.ListTasks(ctx, q)
}

func (s *Service) GetTask(ctx context.Context, id string) (Task, error) {
	if strings.TrimSpace(id) == "" {
		return Task{}, ErrTaskInvalidArgs
	}
	return s.db.GetTask(ctx, id)
}

func (s *Service) CreateTask(ctx context.Context, in NewTask) (Task, error) {
	if in.UserID <= 0 || strings.TrimSpace(in.Title) == "" {
		return Task{}, ErrTaskInvalidArgs
	}

	t := Task{
		ID:          s.newID(),
		UserID:      in.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Priority:    in.Priority,
		Status:      in.Status,
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if !isValidPriority(t.Priority) || !isValidStatus(t.Status) {
		return Task{}, ErrTaskInvalidArgs
	}

	if _, err := s.db.GetUser(ctx, in.UserID); err != nil {
		return Task{}, err // ErrUserNotFound -> NotFound
	}

	now := s.now()
	t.CreatedAt, t.UpdatedAt = now, now
	if in.CreatedAt != nil {
		t.CreatedAt = *in.CreatedAt
	}
	if in.UpdatedAt != nil {
		t.UpdatedAt = *in.UpdatedAt
	}

	return s.db.CreateTask(ctx, t)
}

func (s *Service) PatchTask(ctx context.Context, id string, p TaskPatch) (Task, error) {
	if strings.TrimSpace(id) == "" || p.empty() {
		return Task{}, ErrTaskInvalidArgs
	}

	cur, err := s.db.GetTask(ctx, id)
	if err != nil {
		return Task{}, err
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return Task{}, ErrTaskInvalidArgs
		}
		cur.Title = title
	}
	if p.Description != nil {
		cur.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		cur.Category = strings.TrimSpace(*p.Category)
	}
	if p.Priority != nil {
		if !isValidPriority(*p.Priority) {
			return Task{}, ErrTaskInvalidArgs
		}
		cur.Priority = *p.Priority
	}
	if p.Status != nil {
		if !isValidStatus(*p.Status) {
			return Task{}, ErrTaskInvalidArgs
		}
		cur.Status = *p.Status
	}

	cur.UpdatedAt = s.now()
	if p.UpdatedAt != nil {
		cur.UpdatedAt = *p.UpdatedAt
	}

	return s.db.UpdateTask(ctx, cur)
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrTaskInvalidArgs
	}
	return s.db.DeleteTask(ctx, id)
}
