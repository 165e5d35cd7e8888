package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// UserID is a sequential user id. Clients send it either as a JSON number or
// as a numeric string; it is always written back as a number.
type UserID int64

func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("user id %q is not a number", s)
		}
		*id = UserID(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id must be a number: %w", err)
	}
	*id = UserID(n)
	return nil
}

// User is stored with its password in clear text. The client compares it
// itself, so it is part of the JSON representation.
type User struct {
	ID       UserID `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"password" db:"password"`
}

type Task struct {
	ID          string    `json:"id" db:"id"`
	UserID      UserID    `json:"userId" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Priority    string    `json:"priority" db:"priority"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

const (
	PriorityHigh   = "Alta"
	PriorityMedium = "Média"
	PriorityLow    = "Baixa"

	StatusPending    = "Pendente"
	StatusInProgress = "Em Progresso"
	StatusCompleted  = "Concluído"
)

func isValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

func isValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// NewTask is what a client posts. Timestamps are kept as sent.
type NewTask struct {
	UserID      UserID
	Title       string
	Description string
	Category    string
	Priority    string
	Status      string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

type TaskPatch struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
	Status      *string
	UpdatedAt   *time.Time
}

func (p TaskPatch) empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Priority == nil && p.Status == nil && p.UpdatedAt == nil
}

// UserQuery selects users. Zero fields match everything.
type UserQuery struct {
	Email string
}

type TaskQuery struct {
	UserID *UserID
}

func (q UserQuery) Match(u User) bool {
	return q.Email == "" || u.Email == q.Email
}

func (q TaskQuery) Match(t Task) bool {
	return q.UserID == nil || t.UserID == *q.UserID
}
