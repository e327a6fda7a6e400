// Package report renders the pipeline's plain-text result report: held-out
// error and correlation, the regularization sweep, spot-check predictions,
// and the user-factor summary.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/Avik9/Sentimental-Analysis/predict"
)

// snippetWidth caps the review excerpt shown in the spot-check table.
const snippetWidth = 48

// SpotCheck is one spot-checked item id: either a matched trial row with
// its predicted and true ratings, or a miss reported as "not in file".
type SpotCheck struct {
	ItemID    int
	Found     bool
	Predicted float64
	Truth     int
	Snippet   string
}

// Report holds everything the console report shows.
type Report struct {
	TrialFile string
	BestAlpha float64
	MAE       float64
	PearsonR  float64
	PearsonP  float64
	Sweeps    []predict.Sweep
	Checks    []SpotCheck

	// Stage 2 summary.
	UserCount int
	FactorDim int
}

type styles struct {
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	miss   lipgloss.Style
	chosen lipgloss.Style
}

func newStyles() styles {
	accentColor := lipgloss.Color("#FF87D7")
	dimColor := lipgloss.Color("#6C6C6C")

	return styles{
		header: lipgloss.NewStyle().Bold(true).Foreground(accentColor),
		label:  lipgloss.NewStyle().Foreground(dimColor),
		value:  lipgloss.NewStyle().Bold(true),
		miss:   lipgloss.NewStyle().Foreground(dimColor).Italic(true),
		chosen: lipgloss.NewStyle().Bold(true).Foreground(accentColor),
	}
}

// Render formats the report for the console.
func (r Report) Render() string {
	s := newStyles()
	var b strings.Builder

	b.WriteString(s.header.Render("Stage 1 Checkpoint") + "\n\n")

	b.WriteString(fmt.Sprintf("%s %s\n",
		s.label.Render("Mean absolute error (test):"),
		s.value.Render(fmt.Sprintf("%.4f", r.MAE))))
	b.WriteString(fmt.Sprintf("%s %s\n",
		s.label.Render("Pearson correlation (test):"),
		s.value.Render(fmt.Sprintf("r=%.4f p=%.4g", r.PearsonR, r.PearsonP))))

	b.WriteString("\n" + s.label.Render("Regularization sweep:") + "\n")
	for _, sweep := range r.Sweeps {
		line := fmt.Sprintf("  alpha=%-8g MAE=%.4f", sweep.Alpha, sweep.MAE)
		if sweep.Alpha == r.BestAlpha {
			line = s.chosen.Render(line + "  <- selected")
		}
		b.WriteString(line + "\n")
	}

	if len(r.Checks) > 0 {
		b.WriteString("\n" + s.label.Render("Spot checks:") + "\n")
		for _, check := range r.Checks {
			if !check.Found {
				b.WriteString(s.miss.Render(fmt.Sprintf("  %d not in %s", check.ItemID, r.TrialFile)) + "\n")
				continue
			}
			b.WriteString(fmt.Sprintf("  %-6d predicted %.3f  true %d  %s\n",
				check.ItemID, check.Predicted, check.Truth,
				s.label.Render(truncate.StringWithTail(check.Snippet, snippetWidth, "..."))))
		}
	}

	b.WriteString("\n" + s.header.Render("Stage 2 Checkpoint") + "\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		s.label.Render("Users profiled:"),
		s.value.Render(fmt.Sprintf("%d", r.UserCount))))
	b.WriteString(fmt.Sprintf("%s %s\n",
		s.label.Render("User factors:"),
		s.value.Render(fmt.Sprintf("%d per user", r.FactorDim))))

	return b.String()
}
