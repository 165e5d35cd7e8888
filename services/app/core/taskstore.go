package core

import (
	"context"
	"log/slog"
	"slices"
)

type TaskState struct {
	Tasks      []Task
	Categories []string
	Stats      *TaskStats
	Filters    TaskFilters
	IsLoading  bool
	Error      string
}

type TaskStore struct {
	log   *slog.Logger
	tasks Tasks

	state *Container[TaskState]
	gens  generations
}

func NewTaskStore(log *slog.Logger, tasks Tasks) *TaskStore {
	return &TaskStore{
		log:   log,
		tasks: tasks,
		state: NewContainer(TaskState{
			Tasks:      []Task{},
			Categories: []string{},
		}),
	}
}

func (s *TaskStore) State() TaskState { return s.state.State() }

func (s *TaskStore) Subscribe(fn func(TaskState)) func() { return s.state.Subscribe(fn) }

// start moves the store into the loading phase of an action.
func (s *TaskStore) start() {
	s.state.Update(func(st *TaskState) {
		st.IsLoading = true
		st.Error = ""
	})
}

// finish ends an action. For fetch-and-replace actions a non-zero token
// makes the result count only if no newer call of the same action started
// in the meantime. apply runs only on success.
func (s *TaskStore) finish(action string, token uint64, err error, apply func(st *TaskState)) {
	applied := s.state.Apply(func(st *TaskState) bool {
		if token != 0 && !s.gens.current(action, token) {
			return false
		}
		st.IsLoading = false
		if err != nil {
			st.Error = failureMessage(err)
			return true
		}
		apply(st)
		return true
	})

	switch {
	case !applied:
		s.log.Debug("stale task response dropped", "action", action)
	case err != nil:
		s.log.Debug("task action failed", "action", action, "error", err)
	}
}

func (s *TaskStore) GetTasks(ctx context.Context, userID ID) {
	token := s.gens.begin("getTasks")
	filters := s.State().Filters
	s.start()

	var tasks []Task
	err := call(s.log, "getTasks", func() error {
		var err error
		tasks, err = s.tasks.GetTasks(ctx, userID, filters)
		return err
	})

	s.finish("getTasks", token, err, func(st *TaskState) {
		if tasks == nil {
			tasks = []Task{}
		}
		st.Tasks = tasks
	})
}

func (s *TaskStore) CreateTask(ctx context.Context, userID ID, req CreateTaskRequest) {
	s.start()

	var created Task
	err := call(s.log, "createTask", func() error {
		var err error
		created, err = s.tasks.CreateTask(ctx, userID, req)
		return err
	})

	s.finish("createTask", 0, err, func(st *TaskState) {
		next := make([]Task, 0, len(st.Tasks)+1)
		next = append(next, st.Tasks...)
		st.Tasks = append(next, created)
	})
}

func (s *TaskStore) UpdateTask(ctx context.Context, id ID, p TaskPatch) {
	s.start()

	var updated Task
	err := call(s.log, "updateTask", func() error {
		var err error
		updated, err = s.tasks.UpdateTask(ctx, id, p)
		return err
	})

	s.finish("updateTask", 0, err, func(st *TaskState) {
		next := slices.Clone(st.Tasks)
		for i := range next {
			if next[i].ID == id {
				next[i] = updated
			}
		}
		st.Tasks = next
	})
}

func (s *TaskStore) DeleteTask(ctx context.Context, id ID) {
	s.start()

	err := call(s.log, "deleteTask", func() error {
		return s.tasks.DeleteTask(ctx, id)
	})

	s.finish("deleteTask", 0, err, func(st *TaskState) {
		next := make([]Task, 0, len(st.Tasks))
		for _, t := range st.Tasks {
			if t.ID != id {
				next = append(next, t)
			}
		}
		st.Tasks = next
	})
}

func (s *TaskStore) GetStats(ctx context.Context, userID ID) {
	token := s.gens.begin("getStats")
	s.start()

	var stats TaskStats
	err := call(s.log, "getStats", func() error {
		var err error
		stats, err = s.tasks.GetTaskStats(ctx, userID)
		return err
	})

	s.finish("getStats", token, err, func(st *TaskState) {
		st.Stats = &stats
	})
}

func (s *TaskStore) GetCategories(ctx context.Context, userID ID) {
	token := s.gens.begin("getCategories")
	s.start()

	var categories []string
	err := call(s.log, "getCategories", func() error {
		var err error
		categories, err = s.tasks.GetCategories(ctx, userID)
		return err
	})

	s.finish("getCategories", token, err, func(st *TaskState) {
		if categories == nil {
			categories = []string{}
		}
		st.Categories = categories
	})
}

// Refresh reloads the task list, statistics and categories for userID,
// stopping at the first step that leaves an error behind.
func (s *TaskStore) Refresh(ctx context.Context, userID ID) {
	for _, step := range []func(context.Context, ID){s.GetTasks, s.GetStats, s.GetCategories} {
		step(ctx, userID)
		if s.State().Error != "" {
			return
		}
	}
}

func (s *TaskStore) SetFilters(p FiltersPatch) {
	s.state.Update(func(st *TaskState) {
		st.Filters = st.Filters.Merge(p)
	})
}

func (s *TaskStore) ClearFilters() {
	s.state.Update(func(st *TaskState) {
		st.Filters = TaskFilters{}
	})
}

func (s *TaskStore) ClearError() {
	s.state.Update(func(st *TaskState) {
		st.Error = ""
	})
}
