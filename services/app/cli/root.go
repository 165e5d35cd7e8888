package cli

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	output     string
}

// NewRootCmd builds the taskboard command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "taskboard",
		Short: "Manage your tasks from the terminal",
		Long: `taskboard keeps a personal task list on a REST backend.

Log in once; the session is remembered until you log out.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "config.yaml", "configuration file")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format: table or yaml")

	root.AddCommand(
		newLoginCmd(opts),
		newRegisterCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newTasksCmd(opts),
		newStatsCmd(opts),
		newCategoriesCmd(opts),
		newStatusCmd(opts),
		newConfigCmd(opts),
	)

	return root
}

// Execute runs the root command.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}
