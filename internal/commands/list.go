package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/sendit/internal/app"
)

func newListCmd(opts *RootOptions) *cobra.Command {
	var (
		limit  int
		all    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List recent sessions",
		Long:    "List logged sessions, newest first. Shows the most recent 20 unless --limit or --all is given.",
		Args:    cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App) error {
			n := opts.recentLimit()
			if cmd.Flags().Changed("limit") {
				n = limit
			}
			if all {
				n = 0
			}
			sessions := a.Recent(n)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sessions)
			}

			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions logged yet. Use 'sendit log' to record your first session.")
				return nil
			}

			writeSessionTable(cmd.OutOrStdout(), sessions, a.Now())
			if total := len(a.Sessions()); total > len(sessions) {
				fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d sessions. Use --all to see everything.\n", len(sessions), total)
			}
			return nil
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum sessions to show")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show every session")
	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")
	return cmd
}

func newShowCmd(opts *RootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a session and its climbs",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App) error {
			s, err := a.FindSession(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			writeSessionDetail(cmd.OutOrStdout(), s, a.Now())
			return nil
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")
	return cmd
}
