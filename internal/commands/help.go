package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Show comprehensive help for sendit",
		Long:  `Display detailed help for all sendit commands and flags.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 {
				if target, _, err := cmd.Root().Find(args); err == nil && target != cmd.Root() {
					_ = target.Help()
					return
				}
			}
			showCustomHelp(cmd.OutOrStdout())
		},
	}
}

func showCustomHelp(w io.Writer) {
	fmt.Fprint(w, `
███████╗███████╗███╗   ██╗██████╗ ██╗████████╗
██╔════╝██╔════╝████╗  ██║██╔══██╗██║╚══██╔══╝
███████╗█████╗  ██╔██╗ ██║██║  ██║██║   ██║
╚════██║██╔══╝  ██║╚██╗██║██║  ██║██║   ██║
███████║███████╗██║ ╚████║██████╔╝██║   ██║
╚══════╝╚══════╝╚═╝  ╚═══╝╚═════╝ ╚═╝   ╚═╝

sendit - Climbing Session Tracker

COMMANDS:

  log                     Log a session (interactive form with no flags)
    -d, --date            today|yesterday|3 days ago|dd/mm/yyyy|yyyy-mm-dd
    -g, --gym             Gym name
    --duration            Minutes (90, 90m)
    --energy-before       exhausted|low|moderate|strong|peak
    --energy-after        exhausted|low|moderate|strong|peak
    --skin                fresh|good|tender|raw|wrecked
    --psych               1-5
    -n, --notes           Session notes
    --next                Focus for next session
    -c, --climb           Add a climb (repeatable, quick syntax below)
    -i, --interactive     Open the form even with flags

    Climb quick syntax:
      V5 / VB       Grade (required)
      x3, 3x        Attempts
      sent, flash   Outcome (default: project)
      #red          Hold colour
      @overhang     Style (@comp-style for spaces)
      "..."         Notes

    Example:
      sendit log -g "The Arch" --duration 90 -c "V5 x3 sent #red" -c "V7 x6 @overhang"

  edit <id>               Edit a session (same flags as log)
  ls                      List recent sessions, newest first
    -l, --limit           Maximum sessions to show
    -a, --all             Show every session
    --json                JSON output
  show <id>               Show a session and its climbs
  rm <id>                 Delete a session
    -y, --yes             Skip confirmation

  climb add <id> <climb>  Add a climb with quick syntax
  climb edit <id> <n>     Edit climb n (or id prefix)
    --grade --attempts --sent --flash --color --style --notes
  climb rm <id> <n>       Remove climb n

  goals                   Show training goals
  goals set               Update goals
    -t, --target          Target grade
    -w, --per-week        Sessions per week
    --comp-name           Competition name
    --comp-date           Competition date ('none' to clear)
    -n, --notes           Goal notes

  stats                   Weekly progress, streak, best send, totals
    --json                JSON output
  progress                Sends per grade chart
  dash                    Interactive dashboard
  version                 Print version information
  help                    Show this help

GLOBAL FLAGS:
  --config                Config file (default ~/.sendit/config.yaml)
  --db                    Database file (default ~/.sendit/sendit.db)
  --memory                Throwaway in-memory store
  -v, --verbose           Debug logging

Session ids can be shortened to their first 4+ characters.

`)
}
