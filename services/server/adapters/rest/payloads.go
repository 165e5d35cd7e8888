package rest

import (
	"time"

	"taskboard/services/server/core"
)

type CreateUserIn struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateTaskIn struct {
	UserID      core.UserID `json:"userId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Priority    string      `json:"priority"`
	Status      string      `json:"status"`
	CreatedAt   *time.Time  `json:"createdAt,omitempty"` // Nil - now
	UpdatedAt   *time.Time  `json:"updatedAt,omitempty"`
}

type PatchTaskIn struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Status      *string    `json:"status,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func (in CreateTaskIn) NewTask() core.NewTask {
	return core.NewTask{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      in.Status,
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}
}

func (in PatchTaskIn) Patch() core.TaskPatch {
	return core.TaskPatch{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      in.Status,
		UpdatedAt:   in.UpdatedAt,
	}
}
