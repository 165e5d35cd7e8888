package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID is a backend record identifier. The mock server emits numeric user ids
// and string task ids, so both JSON forms decode into the same type.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// IDFromInt is used where the backend hands out sequential ids.
func IDFromInt(n int64) ID { return ID(strconv.FormatInt(n, 10)) }

type User struct {
	ID    ID     `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

type LoginData struct {
	Email    string
	Password string
}

type RegisterData struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "Alta"
	PriorityMedium TaskPriority = "Média"
	PriorityLow    TaskPriority = "Baixa"
)

var Priorities = []TaskPriority{PriorityHigh, PriorityMedium, PriorityLow}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pendente"
	StatusInProgress TaskStatus = "Em Progresso"
	StatusCompleted  TaskStatus = "Concluído"
)

var Statuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          ID           `json:"id" yaml:"id"`
	UserID      ID           `json:"userId" yaml:"userId"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Category    string       `json:"category" yaml:"category"`
	Priority    TaskPriority `json:"priority" yaml:"priority"`
	Status      TaskStatus   `json:"status" yaml:"status"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" yaml:"updatedAt"`
}

type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
}

// TaskPatch carries only the fields that should change.
type TaskPatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Category    *string       `json:"category,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	Status      *TaskStatus   `json:"status,omitempty"`
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil && p.Priority == nil && p.Status == nil
}

// TaskFilters narrows a task list. An empty field is not applied.
type TaskFilters struct {
	Status   TaskStatus   `yaml:"status,omitempty"`
	Category string       `yaml:"category,omitempty"`
	Priority TaskPriority `yaml:"priority,omitempty"`
	Search   string       `yaml:"search,omitempty"`
}

func (f TaskFilters) IsZero() bool { return f == TaskFilters{} }

// FiltersPatch is merged into TaskFilters: nil keeps the current value,
// an empty value clears it.
type FiltersPatch struct {
	Status   *TaskStatus
	Category *string
	Priority *TaskPriority
	Search   *string
}

type TaskStats struct {
	Total      int            `json:"total" yaml:"total"`
	Completed  int            `json:"completed" yaml:"completed"`
	Pending    int            `json:"pending" yaml:"pending"`
	InProgress int            `json:"inProgress" yaml:"inProgress"`
	ByStatus   map[string]int `json:"byStatus" yaml:"byStatus"`
	ByCategory map[string]int `json:"byCategory" yaml:"byCategory"`
}

// ParseTaskStatus accepts the status label in any case, or its English key.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pendente", "pending":
		return StatusPending, true
	case "em progresso", "in_progress", "in-progress", "inprogress":
		return StatusInProgress, true
	case "concluído", "concluido", "completed", "done":
		return StatusCompleted, true
	default:
		return "", false
	}
}

// ParseTaskPriority accepts the priority label in any case, or its English key.
func ParseTaskPriority(s string) (TaskPriority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "alta", "high":
		return PriorityHigh, true
	case "média", "media", "medium":
		return PriorityMedium, true
	case "baixa", "low":
		return PriorityLow, true
	default:
		return "", false
	}
}
