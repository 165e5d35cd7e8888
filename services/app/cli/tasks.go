package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/services/app/core"
)

func newTasksCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "List and edit tasks",
	}
	cmd.AddCommand(
		newTasksListCmd(opts),
		newTasksCreateCmd(opts),
		newTasksUpdateCmd(opts),
		newTasksDeleteCmd(opts),
	)
	return cmd
}

func newTasksListCmd(opts *rootOptions) *cobra.Command {
	var f core.TaskFilters

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, optionally filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, cmd, func(ctx context.Context, a *app) error {
				u, err := a.currentUser(ctx)
				if err != nil {
					return err
				}

				a.tasks.SetFilters(core.FiltersPatch{
					Status:   &f.Status,
					Category: &f.Category,
					Priority: &f.Priority,
					Search:   &f.Search,
				})
				a.tasks.GetTasks(ctx, u.ID)
				if err := a.taskErr(); err != nil {
					return err
				}

				tasks := a.tasks.State().Tasks
				return render(cmd, opts.output, tasks, taskTable(tasks))
			})
		},
	}

	cmd.Flags().Var(newEnumValue(&f.Status, core.Statuses, core.ParseTaskStatus), "status", "only tasks with this status")
	cmd.Flags().StringVar(&f.Category, "category", "", "only tasks in this category")
	cmd.Flags().Var(newEnumValue(&f.Priority, core.Priorities, core.ParseTaskPriority), "priority", "only tasks with this priority")
	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "text to look for in title or description")
	return cmd
}

func newTasksCreateCmd(opts *rootOptions) *cobra.Command {
	form := core.TaskForm{Priority: core.PriorityMedium, Status: core.StatusPending}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			form.UseCustomCategory = cmd.Flags().Changed("new-category")
			if errs := core.ValidateTaskForm(form); len(errs) > 0 {
				return errs
			}
			return withApp(opts, cmd, func(ctx context.Context, a *app) error {
				u, err := a.currentUser(ctx)
				if err != nil {
					return err
				}

				a.tasks.CreateTask(ctx, u.ID, form.Request())
				if err := a.taskErr(); err != nil {
					return err
				}

				tasks := a.tasks.State().Tasks
				created := tasks[len(tasks)-1]
				return render(cmd, opts.output, created, taskTable([]core.Task{created}))
			})
		},
	}

	cmd.Flags().StringVarP(&form.Title, "title", "t", "", "task title")
	cmd.Flags().StringVarP(&form.Description, "description", "d", "", "task description")
	cmd.Flags().StringVar(&form.Category, "category", "", "existing category")
	cmd.Flags().StringVar(&form.CustomCategory, "new-category", "", "create the task in a new category")
	cmd.Flags().Var(newEnumValue(&form.Priority, core.Priorities, core.ParseTaskPriority), "priority", "Alta, Média or Baixa")
	cmd.Flags().Var(newEnumValue(&form.Status, core.Statuses, core.ParseTaskStatus), "status", "Pendente, Em Progresso or Concluído")
	cmd.MarkFlagsMutuallyExclusive("category", "new-category")
	return cmd
}

func newTasksUpdateCmd(opts *rootOptions) *cobra.Command {
	var (
		title, description, category string
		priority                     core.TaskPriority
		status                       core.TaskStatus
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p core.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				p.Title = &title
			}
			if flags.Changed("description") {
				p.Description = &description
			}
			if flags.Changed("category") {
				p.Category = &category
			}
			if flags.Changed("priority") {
				p.Priority = &priority
			}
			if flags.Changed("status") {
				p.Status = &status
			}
			if p.Empty() {
				return fmt.Errorf("nothing to update, pass at least one field flag")
			}
			if errs := core.ValidateTaskPatch(p); len(errs) > 0 {
				return errs
			}

			id := core.ID(args[0])
			return withApp(opts, cmd, func(ctx context.Context, a *app) error {
				u, err := a.currentUser(ctx)
				if err != nil {
					return err
				}

				a.tasks.GetTasks(ctx, u.ID)
				if err := a.taskErr(); err != nil {
					return err
				}
				a.tasks.UpdateTask(ctx, id, p.Trimmed())
				if err := a.taskErr(); err != nil {
					return err
				}

				for _, t := range a.tasks.State().Tasks {
					if t.ID == id {
						return render(cmd, opts.output, t, taskTable([]core.Task{t}))
					}
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Task %s updated.\n", id)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().Var(newEnumValue(&priority, core.Priorities, core.ParseTaskPriority), "priority", "Alta, Média or Baixa")
	cmd.Flags().Var(newEnumValue(&status, core.Statuses, core.ParseTaskStatus), "status", "Pendente, Em Progresso or Concluído")
	return cmd
}

func newTasksDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := core.ID(args[0])
			return withApp(opts, cmd, func(ctx context.Context, a *app) error {
				if _, err := a.currentUser(ctx); err != nil {
					return err
				}

				a.tasks.DeleteTask(ctx, id)
				if err := a.taskErr(); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Task %s deleted.\n", id)
				return err
			})
		},
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts by status and category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, cmd, func(ctx context.Context, a *app) error {
				u, err := a.currentUser(ctx)
				if err != nil {
					return err
				}

				a.tasks.GetStats(ctx, u.ID)
				if err := a.taskErr(); err != nil {
					return err
				}

				st := a.tasks.State().Stats
				if st == nil {
					st = &core.TaskStats{ByStatus: map[string]int{}, ByCategory: map[string]int{}}
				}
				return render(cmd, opts.output, st, statsTable(*st))
			})
		},
	}
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories in use",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, cmd, func(ctx context.Context, a *app) error {
				u, err := a.currentUser(ctx)
				if err != nil {
					return err
				}

				a.tasks.GetCategories(ctx, u.ID)
				if err := a.taskErr(); err != nil {
					return err
				}

				categories := a.tasks.State().Categories
				if opts.output == "yaml" || opts.output == "yml" {
					return render(cmd, opts.output, categories, nil)
				}
				return writeLines(cmd.OutOrStdout(), categories)
			})
		},
	}
}
