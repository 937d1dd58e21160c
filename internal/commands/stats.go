package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/balkashynov/sendit/internal/app"
	"github.com/balkashynov/sendit/internal/models"
	"github.com/balkashynov/sendit/internal/parser"
	"github.com/balkashynov/sendit/internal/stats"
)

type gradeCount struct {
	Grade string `json:"grade"`
	Count int    `json:"count"`
}

// statsOutput is the --json shape of the stats command.
type statsOutput struct {
	stats.Summary
	HighestSend string       `json:"highest_send"`
	TargetGrade string       `json:"target_grade"`
	Histogram   []gradeCount `json:"histogram"`
}

func newStatsOutput(sum stats.Summary, goals models.Goals) statsOutput {
	out := statsOutput{
		Summary:     sum,
		HighestSend: sum.HighestSend.String(),
		TargetGrade: goals.TargetGrade.String(),
	}
	for _, g := range models.Grades() {
		out.Histogram = append(out.Histogram, gradeCount{Grade: g.String(), Count: sum.Histogram.Count(g)})
	}
	return out
}

func newStatsCmd(opts *RootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show weekly progress, streak and totals",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App) error {
			sum := a.Stats()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(newStatsOutput(sum, a.Goals()))
			}
			writeStats(cmd.OutOrStdout(), sum, a.Goals(), a.Now())
			return nil
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")
	return cmd
}

func writeStats(w io.Writer, sum stats.Summary, goals models.Goals, now time.Time) {
	fmt.Fprintf(w, "📊 Stats · %s\n", parser.FormatSessionDate(models.DateOf(now), now))

	progress := sum.Progress()
	status := ""
	if progress.Met() {
		status = " ✓ goal met"
	}
	fmt.Fprintf(w, "  This week:   %d/%d sessions %s%s\n", progress.Count, progress.Target, progressBar(progress.Ratio(), 20), status)
	fmt.Fprintf(w, "  Streak:      %s\n", english.Plural(sum.Streak, "day", "days"))
	fmt.Fprintf(w, "  Best send:   %s (target %s)\n", sum.HighestSend, goals.TargetGrade)
	fmt.Fprintf(w, "  Total sends: %s\n", humanize.Comma(int64(sum.TotalSends)))
	fmt.Fprintf(w, "  Attempts:    %s\n", humanize.Comma(int64(sum.TotalAttempts)))
	if comp := compLine(goals, sum); comp != "" {
		fmt.Fprintf(w, "  Training for %s\n", comp)
	}
}

// progressBar draws ratio (0..1) as a fixed-width bar.
func progressBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(math.Round(ratio * float64(width)))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
