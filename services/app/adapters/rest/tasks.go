package rest

import (
	"context"
	"net/http"
	"net/url"

	"taskboard/services/app/core"
)

// isoMillis matches the ISO-8601 form browsers produce (millisecond precision, UTC).
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type createTaskIn struct {
	core.CreateTaskRequest
	UserID    core.ID `json:"userId"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type patchTaskIn struct {
	core.TaskPatch
	UpdatedAt string `json:"updatedAt"`
}

func (c *Client) stamp() string {
	return c.now().UTC().Format(isoMillis)
}

func taskPath(id core.ID) string {
	return "/tasks/" + url.PathEscape(id.String())
}

// listTasks fetches every task of userID; the backend applies no other filter.
func (c *Client) listTasks(ctx context.Context, userID core.ID) ([]core.Task, error) {
	var tasks []core.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", url.Values{"userId": {userID.String()}}, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []core.Task{}
	}
	return tasks, nil
}

func (c *Client) GetTasks(ctx context.Context, userID core.ID, f core.TaskFilters) ([]core.Task, error) {
	tasks, err := c.listTasks(ctx, userID)
	if err != nil {
		return nil, c.mapErr(core.ErrFetchTasks, err)
	}
	return core.FilterTasks(tasks, f), nil
}

func (c *Client) CreateTask(ctx context.Context, userID core.ID, req core.CreateTaskRequest) (core.Task, error) {
	now := c.stamp()
	in := createTaskIn{
		CreateTaskRequest: req,
		UserID:            userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var out core.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, in, &out); err != nil {
		return core.Task{}, c.mapErr(core.ErrCreateTask, err)
	}
	return out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id core.ID, p core.TaskPatch) (core.Task, error) {
	in := patchTaskIn{TaskPatch: p, UpdatedAt: c.stamp()}

	var out core.Task
	if err := c.do(ctx, http.MethodPatch, taskPath(id), nil, in, &out); err != nil {
		return core.Task{}, c.mapErr(core.ErrUpdateTask, err)
	}
	return out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id core.ID) error {
	err := c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, nil)
	return c.mapErr(core.ErrDeleteTask, err)
}

func (c *Client) GetTaskStats(ctx context.Context, userID core.ID) (core.TaskStats, error) {
	tasks, err := c.listTasks(ctx, userID)
	if err != nil {
		return core.TaskStats{}, c.mapErr(core.ErrFetchStats, err)
	}
	return core.ComputeStats(tasks), nil
}

func (c *Client) GetCategories(ctx context.Context, userID core.ID) ([]string, error) {
	tasks, err := c.listTasks(ctx, userID)
	if err != nil {
		return nil, c.mapErr(core.ErrFetchCategories, err)
	}
	return core.DistinctCategories(tasks), nil
}

var _ core.Tasks = (*Client)(nil)
