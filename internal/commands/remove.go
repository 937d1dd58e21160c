package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/sendit/internal/app"
	"github.com/balkashynov/sendit/internal/parser"
)

func newRemoveCmd(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <session-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a session",
		Long:    "Delete a session and all of its climbs. Asks for confirmation unless --yes is given.",
		Args:    cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App) error {
			s, err := a.FindSession(args[0])
			if err != nil {
				return err
			}

			label := parser.FormatSessionDate(s.Date, a.Now())
			if s.GymName != "" {
				label += " at " + s.GymName
			}

			if !yes {
				question := fmt.Sprintf("Delete session %s (%s, %d climbs)?", shortID(s.ID), label, len(s.Climbs))
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), question) {
					fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
					return nil
				}
			}

			if err := a.DeleteSession(s.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted session %s: %s\n", shortID(s.ID), label)
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// confirm asks a yes/no question and defaults to no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
