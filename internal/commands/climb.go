package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/sendit/internal/app"
	"github.com/balkashynov/sendit/internal/models"
	"github.com/balkashynov/sendit/internal/parser"
)

func newClimbCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "climb",
		Short: "Add, edit or remove climbs in a session",
		Long: `Manage the climbs of a logged session.

Climbs are referenced by their position in the session (1, 2, ...) or by id prefix,
as shown by 'sendit show <session-id>'.`,
	}

	cmd.AddCommand(newClimbAddCmd(opts))
	cmd.AddCommand(newClimbEditCmd(opts))
	cmd.AddCommand(newClimbRemoveCmd(opts))
	return cmd
}

func newClimbAddCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <session-id> <climb>",
		Short: "Add a climb using quick syntax",
		Long: `Add a climb to a session.

  sendit climb add 1a2b3c4d V6 x4 sent #blue @overhang "drop knee at the lip"`,
		Args: cobra.MinimumNArgs(2),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App) error {
			s, err := a.FindSession(args[0])
			if err != nil {
				return err
			}

			spec := strings.Join(args[1:], " ")
			parsed := parser.ParseClimb(spec)
			if len(parsed.Errors) > 0 {
				return fmt.Errorf("could not parse climb: %s", strings.Join(parsed.Errors, "; "))
			}

			c := a.NewClimb()
			parsed.Apply(&c)
			c, err = a.AddClimb(s.ID, c)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "🧗 Added to session %s:\n  %s\n", shortID(s.ID), formatClimb(len(s.Climbs), c))
			return nil
		}),
	}
}

func newClimbEditCmd(opts *RootOptions) *cobra.Command {
	var (
		grade    string
		attempts int
		sent     bool
		flash    bool
		color    string
		style    string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "edit <session-id> <climb>",
		Short: "Edit a climb",
		Long: `Edit a climb. Only the flags given are changed.

A flash is always a send on the first attempt: --flash sets attempts to 1,
--attempts above 1 clears the flash, and --sent=false clears both.`,
		Args: cobra.ExactArgs(2),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App) error {
			s, err := a.FindSession(args[0])
			if err != nil {
				return err
			}
			idx, err := resolveClimb(s, args[1])
			if err != nil {
				return err
			}

			fs := cmd.Flags()
			var g models.Grade
			if fs.Changed("grade") {
				if g, err = models.ParseGrade(grade); err != nil {
					return err
				}
			}
			if fs.Changed("flash") && flash && fs.Changed("sent") && !sent {
				return fmt.Errorf("--flash and --sent=false conflict: a flash is always a send")
			}
			if fs.Changed("color") && color != "" && models.NormalizeColor(color) == "" {
				return fmt.Errorf("unknown colour %q. Use: %s", color, strings.Join(models.Colors, ", "))
			}
			if fs.Changed("style") && style != "" && models.NormalizeStyle(style) == "" {
				return fmt.Errorf("unknown style %q. Use: %s", style, strings.Join(models.Styles, ", "))
			}

			c, err := a.UpdateClimb(s.ID, s.Climbs[idx].ID, func(c *models.Climb) {
				if fs.Changed("grade") {
					c.Grade = g
				}
				if fs.Changed("attempts") {
					c.SetAttempts(attempts)
				}
				if fs.Changed("sent") {
					c.SetSent(sent)
				}
				if fs.Changed("flash") {
					c.SetFlash(flash)
				}
				if fs.Changed("color") {
					c.Color = color
				}
				if fs.Changed("style") {
					c.Style = style
				}
				if fs.Changed("notes") {
					c.Notes = notes
				}
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "📝 Updated climb in session %s:\n  %s\n", shortID(s.ID), formatClimb(idx, c))
			return nil
		}),
	}

	cmd.Flags().StringVar(&grade, "grade", "", "Grade (VB, V0-V12)")
	cmd.Flags().IntVar(&attempts, "attempts", 1, "Number of attempts")
	cmd.Flags().BoolVar(&sent, "sent", false, "Mark as sent (--sent=false for a project)")
	cmd.Flags().BoolVar(&flash, "flash", false, "Mark as flashed")
	cmd.Flags().StringVar(&color, "color", "", "Hold colour")
	cmd.Flags().StringVar(&style, "style", "", "Style")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	return cmd
}

func newClimbRemoveCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <session-id> <climb>",
		Short: "Remove a climb",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App) error {
			s, err := a.FindSession(args[0])
			if err != nil {
				return err
			}
			idx, err := resolveClimb(s, args[1])
			if err != nil {
				return err
			}
			c := s.Climbs[idx]
			if err := a.RemoveClimb(s.ID, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed %s %s from session %s\n", c.Grade, strings.ToLower(string(c.Status())), shortID(s.ID))
			return nil
		}),
	}
}

// resolveClimb finds a climb by 1-based position or by id prefix.
func resolveClimb(s models.Session, ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.Climbs) {
			return -1, fmt.Errorf("%w: session %s has %d climbs", app.ErrClimbNotFound, shortID(s.ID), len(s.Climbs))
		}
		return n - 1, nil
	}

	match := -1
	for i, c := range s.Climbs {
		if c.ID == ref {
			return i, nil
		}
		if strings.HasPrefix(c.ID, ref) {
			if match >= 0 {
				return -1, fmt.Errorf("climb id %q is ambiguous", ref)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %s", app.ErrClimbNotFound, ref)
	}
	return match, nil
}
