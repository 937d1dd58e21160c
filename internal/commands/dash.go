package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/sendit/internal/app"
	"github.com/balkashynov/sendit/internal/tui"
)

func newDashCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "dash",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Long: `Open the interactive dashboard: weekly progress, streak, best send,
grade progression and your recent sessions.

Keys:
  ↑/↓ or j/k    Move between sessions
  enter/space   Expand or collapse a session
  n             Log a new session
  e             Edit the selected session
  d             Delete the selected session (asks first)
  q/esc         Quit`,
		Args: cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App) error {
			return tui.RunDashboard(a, opts.recentLimit())
		}),
	}
}
