package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/balkashynov/sendit/internal/app"
	"github.com/balkashynov/sendit/internal/models"
	"github.com/balkashynov/sendit/internal/parser"
	"github.com/balkashynov/sendit/internal/tui"
)

// sessionFlags are the session fields settable from the command line.
type sessionFlags struct {
	date         string
	gym          string
	duration     string
	energyBefore string
	energyAfter  string
	skin         string
	psych        int
	notes        string
	goals        string
	climbs       []string
	interactive  bool
}

func (f *sessionFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.date, "date", "d", "", "Session date (today, yesterday, 3 days ago, dd/mm/yyyy, yyyy-mm-dd)")
	fs.StringVarP(&f.gym, "gym", "g", "", "Gym name")
	fs.StringVar(&f.duration, "duration", "", "Duration in minutes (e.g. 90, 90m)")
	fs.StringVar(&f.energyBefore, "energy-before", "", "Energy before: exhausted|low|moderate|strong|peak")
	fs.StringVar(&f.energyAfter, "energy-after", "", "Energy after: exhausted|low|moderate|strong|peak")
	fs.StringVar(&f.skin, "skin", "", "Skin condition: fresh|good|tender|raw|wrecked")
	fs.IntVar(&f.psych, "psych", models.DefaultPsych, "Psych level 1-5")
	fs.StringVarP(&f.notes, "notes", "n", "", "Session notes")
	fs.StringVar(&f.goals, "next", "", "Focus for next session")
	fs.StringArrayVarP(&f.climbs, "climb", "c", nil, `Add a climb, quick syntax: 'V5 x3 sent #red @overhang "notes"' (repeatable)`)
	fs.BoolVarP(&f.interactive, "interactive", "i", false, "Open the interactive form")
}

// apply copies every flag the user set onto s. Nothing is written on error.
func (f *sessionFlags) apply(fs *pflag.FlagSet, s *models.Session, a *app.App) error {
	if fs.Changed("date") {
		d, err := parser.ParseSessionDate(f.date, a.Now())
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		s.Date = d
	}
	if fs.Changed("gym") {
		s.GymName = strings.TrimSpace(f.gym)
	}
	if fs.Changed("duration") {
		s.Duration = parser.ParseMinutes(f.duration)
	}
	if fs.Changed("energy-before") {
		e, err := models.ParseEnergyLevel(f.energyBefore)
		if err != nil {
			return err
		}
		s.EnergyBefore = e
	}
	if fs.Changed("energy-after") {
		e, err := models.ParseEnergyLevel(f.energyAfter)
		if err != nil {
			return err
		}
		s.EnergyAfter = e
	}
	if fs.Changed("skin") {
		sk, err := models.ParseSkinCondition(f.skin)
		if err != nil {
			return err
		}
		s.SkinCondition = sk
	}
	if fs.Changed("psych") {
		s.PsychLevel = models.ClampPsych(f.psych)
	}
	if fs.Changed("notes") {
		s.Notes = f.notes
	}
	if fs.Changed("next") {
		s.Goals = f.goals
	}
	for _, spec := range f.climbs {
		parsed := parser.ParseClimb(spec)
		if len(parsed.Errors) > 0 {
			return fmt.Errorf("climb %q: %s", spec, strings.Join(parsed.Errors, "; "))
		}
		c := a.NewClimb()
		parsed.Apply(&c)
		s.Climbs = append(s.Climbs, c)
	}
	return nil
}

// wantsForm decides between the interactive form and direct flag mode.
func (f *sessionFlags) wantsForm(cmd *cobra.Command) bool {
	if f.interactive {
		return true
	}
	if anyChanged(cmd.Flags(), "date", "gym", "duration", "energy-before", "energy-after", "skin", "psych", "notes", "next", "climb") {
		return false
	}
	return isTerminal(cmd.InOrStdin()) && isTerminal(cmd.OutOrStdout())
}

func newLogCmd(opts *RootOptions) *cobra.Command {
	flags := &sessionFlags{}

	cmd := &cobra.Command{
		Use:     "log",
		Aliases: []string{"add", "new"},
		Short:   "Log a climbing session",
		Long: `Log a climbing session.

Modes:
  Interactive: sendit log (in a terminal, with no flags) or sendit log -i
  Direct:      sendit log --gym "The Arch" --duration 90 -c "V5 x3 sent #red"

Climb quick syntax (-c, repeatable):
  V5 / VB       Grade (required)
  x3, 3x        Attempts
  sent | flash  Outcome (default: project)
  #red          Hold colour
  @overhang     Style (dashes for spaces: @comp-style)
  "..."         Notes`,
		Args: cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App) error {
			s := a.NewSession()
			if err := flags.apply(cmd.Flags(), &s, a); err != nil {
				return err
			}

			if flags.wantsForm(cmd) {
				saved, ok, err := tui.RunSessionForm(a, s, false)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled, nothing saved.")
					return nil
				}
				printLogged(cmd, saved, a.Now())
				return nil
			}

			printLogged(cmd, a.SaveSession(s), a.Now())
			return nil
		}),
	}

	flags.register(cmd.Flags())
	return cmd
}

func printLogged(cmd *cobra.Command, s models.Session, now time.Time) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ Logged session %s on %s\n", shortID(s.ID), parser.FormatSessionDate(s.Date, now))
	if s.GymName != "" {
		fmt.Fprintf(out, "  Gym: %s\n", s.GymName)
	}
	fmt.Fprintf(out, "  %s\n", formatSessionSummary(s))
}

func newEditCmd(opts *RootOptions) *cobra.Command {
	flags := &sessionFlags{}

	cmd := &cobra.Command{
		Use:   "edit <session-id>",
		Short: "Edit a logged session",
		Long: `Edit a logged session. Flags overwrite the matching fields; --climb appends climbs.
With no flags in a terminal, opens the interactive form pre-filled with the session.`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App) error {
			s, err := a.FindSession(args[0])
			if err != nil {
				return err
			}
			if err := flags.apply(cmd.Flags(), &s, a); err != nil {
				return err
			}

			if flags.wantsForm(cmd) {
				saved, ok, err := tui.RunSessionForm(a, s, true)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled, nothing saved.")
					return nil
				}
				s = saved
			} else {
				s = a.SaveSession(s)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "📝 Updated session %s on %s\n", shortID(s.ID), parser.FormatSessionDate(s.Date, a.Now()))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", formatSessionSummary(s))
			return nil
		}),
	}

	flags.register(cmd.Flags())
	return cmd
}
