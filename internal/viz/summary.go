package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/storage"
)

// RenderSummary formats a finished run for the terminal.
func RenderSummary(cfg *config.Config, res *sim.Result, files int) string {
	n, dx := cfg.Grid()

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(cfg.ProbName)) + "\n")
	s.WriteString(row("Algorithm", res.Algorithm))
	s.WriteString(row("IC", cfg.IC))
	s.WriteString(row("Grid", fmt.Sprintf("%d points, dx=%.4g", n, dx)))
	s.WriteString(row("r", fmt.Sprintf("%.4g", cfg.Params().R())))
	s.WriteString(row("Steps", fmt.Sprintf("%d (%s)", res.Steps, res.Stop)))
	s.WriteString(row("Time", fmt.Sprintf("%.4g", res.FinalTime)))
	s.WriteString(row("Change", fmt.Sprintf("%g", res.FinalChange)))
	if res.ErrorHistory != nil {
		s.WriteString(row("Error", fmt.Sprintf("%g", res.FinalError)))
	}
	s.WriteString(row("Counts", res.Counts.String()))
	if files > 0 {
		s.WriteString(row("Curves", fmt.Sprintf("%d in %s", files, cfg.OutDir)))
	}
	return panelStyle.Render(strings.TrimRight(s.String(), "\n"))
}

// RenderComparison tabulates a comparison, one row per algorithm.
func RenderComparison(rows []sim.Comparison) string {
	muted := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	head := lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Accent).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(muted).
		Headers("ALGORITHM", "STEPS", "STOP", "CHANGE", "MAX |DIFF|", "REFERENCE", "TIME").
		StyleFunc(func(r, c int) lipgloss.Style {
			if r == table.HeaderRow {
				return head
			}
			return cell
		})

	for _, c := range rows {
		if c.Err != nil {
			t.Row(c.Algorithm, "-", "failed", "-", "-", errorStyle.Render(c.Err.Error()), "-")
			continue
		}
		ref := "steady state"
		if c.ClosedForm {
			ref = "exact"
		}
		t.Row(
			c.Algorithm,
			fmt.Sprintf("%d", c.Result.Steps),
			string(c.Result.Stop),
			fmt.Sprintf("%.3e", c.Result.FinalChange),
			fmt.Sprintf("%.3e", c.MaxDiff),
			ref,
			c.Elapsed.Round(time.Microsecond).String(),
		)
	}
	return t.Render()
}

// PlotCurve draws a curve file with asciigraph.
func PlotCurve(c *storage.Curve, width, height int) string {
	if c.Len() == 0 {
		return c.Name + ": empty curve"
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Caption(c.Name),
		asciigraph.SeriesColors(CurrentTheme.Series),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.Plot(c.Y, opts...)
}
