package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/balkashynov/sendit/internal/app"
	"github.com/balkashynov/sendit/internal/models"
	"github.com/balkashynov/sendit/internal/parser"
	"github.com/balkashynov/sendit/internal/stats"
)

func newGoalsCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show your training goals",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App) error {
			writeGoals(cmd.OutOrStdout(), a.Goals(), a.Stats(), a.Now())
			return nil
		}),
	}

	cmd.AddCommand(newGoalsSetCmd(opts))
	return cmd
}

func newGoalsSetCmd(opts *RootOptions) *cobra.Command {
	var (
		target   string
		perWeek  int
		compName string
		compDate string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update your training goals",
		Long: `Update your training goals. Only the flags given are changed.

  sendit goals set --target V9 --per-week 4
  sendit goals set --comp-name "Regionals" --comp-date 14/11/2026
  sendit goals set --comp-date none`,
		Args: cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App) error {
			fs := cmd.Flags()
			if !anyChanged(fs, "target", "per-week", "comp-name", "comp-date", "notes") {
				return fmt.Errorf("nothing to change; see 'sendit goals set --help'")
			}

			var g models.Grade
			if fs.Changed("target") {
				parsed, err := models.ParseGrade(target)
				if err != nil {
					return err
				}
				g = parsed
			}
			if fs.Changed("per-week") && perWeek < 1 {
				return fmt.Errorf("--per-week must be at least 1")
			}
			var d models.Date
			if fs.Changed("comp-date") && !isNone(compDate) {
				parsed, err := parser.ParseSessionDate(compDate, a.Now())
				if err != nil {
					return fmt.Errorf("invalid --comp-date: %w", err)
				}
				d = parsed
			}

			goals := a.UpdateGoals(func(goals *models.Goals) {
				if fs.Changed("target") {
					goals.TargetGrade = g
				}
				if fs.Changed("per-week") {
					goals.SessionsPerWeek = perWeek
				}
				if fs.Changed("comp-name") {
					goals.CompName = strings.TrimSpace(compName)
				}
				if fs.Changed("comp-date") {
					goals.CompDate = d
				}
				if fs.Changed("notes") {
					goals.Notes = notes
				}
			})

			fmt.Fprintln(cmd.OutOrStdout(), "✅ Goals updated")
			writeGoals(cmd.OutOrStdout(), goals, a.Stats(), a.Now())
			return nil
		}),
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Target grade (VB, V0-V12)")
	cmd.Flags().IntVarP(&perWeek, "per-week", "w", 3, "Sessions per week")
	cmd.Flags().StringVar(&compName, "comp-name", "", "Competition name")
	cmd.Flags().StringVar(&compDate, "comp-date", "", "Competition date (dd/mm/yyyy or yyyy-mm-dd, 'none' to clear)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Goal notes")
	return cmd
}

func anyChanged(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

func isNone(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "clear", "-":
		return true
	}
	return false
}

func writeGoals(w io.Writer, g models.Goals, sum stats.Summary, now time.Time) {
	fmt.Fprintln(w, "🎯 Goals")
	fmt.Fprintf(w, "  Target grade:  %s (best send %s)\n", g.TargetGrade, sum.HighestSend)
	fmt.Fprintf(w, "  Sessions/week: %d (%d this week)\n", g.SessionsPerWeek, sum.WeekSessions)
	if comp := compLine(g, sum); comp != "" {
		fmt.Fprintf(w, "  Competition:   %s\n", comp)
	}
	if !g.CompDate.IsZero() {
		fmt.Fprintf(w, "  Comp date:     %s\n", parser.FormatSessionDate(g.CompDate, now))
	}
	if g.Notes != "" {
		fmt.Fprintf(w, "  Notes:         %s\n", g.Notes)
	}
}

// compLine is "Regionals · 28 days out", just "Regionals" without a date,
// or "" when no competition is set.
func compLine(g models.Goals, sum stats.Summary) string {
	if g.CompName == "" && sum.CompDaysOut == nil {
		return ""
	}
	name := g.CompName
	if name == "" {
		name = "Competition"
	}
	if sum.CompDaysOut == nil {
		return name
	}
	return name + " · " + parser.FormatCountdown(*sum.CompDaysOut)
}
