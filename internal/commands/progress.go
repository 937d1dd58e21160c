package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/balkashynov/sendit/internal/app"
	"github.com/balkashynov/sendit/internal/models"
	"github.com/balkashynov/sendit/internal/stats"
)

// chartWidth is the length of the longest bar in the progression chart.
const chartWidth = 30

func newProgressCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "progress",
		Aliases: []string{"pyramid"},
		Short:   "Show sends per grade",
		Args:    cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App) error {
			writeProgressChart(cmd.OutOrStdout(), a.Stats().Histogram, chartWidth)
			return nil
		}),
	}
}

// barLength scales count against max. Non-zero counts always get a visible bar.
func barLength(count, max, width int) int {
	if count <= 0 {
		return 0
	}
	n := count * width / max
	if minimum := width * 8 / 100; n < minimum {
		n = minimum
	}
	if n < 1 {
		n = 1
	}
	return n
}

func writeProgressChart(w io.Writer, h stats.Histogram, width int) {
	fmt.Fprintln(w, "Grade progression · sends per grade")
	fmt.Fprintln(w)

	highest := h.Max()
	for _, g := range models.Grades() {
		count := h.Count(g)
		line := fmt.Sprintf("%3s │ %s", g.Short(), strings.Repeat("█", barLength(count, highest, width)))
		if count > 0 {
			line += fmt.Sprintf(" %d", count)
		}
		fmt.Fprintln(w, line)
	}

	total := h.Total()
	if total == 0 {
		fmt.Fprintln(w, "\nNo sends yet. Log a session with 'sendit log'.")
		return
	}

	grades := 0
	for _, n := range h {
		if n > 0 {
			grades++
		}
	}
	fmt.Fprintf(w, "\n%s across %s\n", english.Plural(total, "send", "sends"), english.Plural(grades, "grade", "grades"))
}
