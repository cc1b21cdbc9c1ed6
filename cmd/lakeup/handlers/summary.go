package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakeup/lakeup/internal/config"
	"github.com/lakeup/lakeup/internal/provisioning"
)

var (
	summaryColorGreen  = lipgloss.Color("#22c55e")
	summaryColorRed    = lipgloss.Color("#ef4444")
	summaryColorYellow = lipgloss.Color("#eab308")
	summaryColorDim    = lipgloss.Color("#6b7280")
	summaryColorWhite  = lipgloss.Color("#f9fafb")
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(summaryColorWhite)

	summaryDimStyle = lipgloss.NewStyle().
			Foreground(summaryColorDim)

	summaryDoneStyle = lipgloss.NewStyle().
				Foreground(summaryColorGreen)

	summarySkippedStyle = lipgloss.NewStyle().
				Foreground(summaryColorYellow)

	summaryFailedStyle = lipgloss.NewStyle().
				Foreground(summaryColorRed)
)

// renderRunSummary produces a lipgloss-styled per-step result table.
func renderRunSummary(cfg *config.Config, results []provisioning.StepResult) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(summaryTitleStyle.Render(fmt.Sprintf("  lakeup: %s stack in namespace %s", cfg.Variant, cfg.Namespace)))
	b.WriteString("\n")
	b.WriteString(summaryDimStyle.Render("  " + strings.Repeat("═", 50)))
	b.WriteString("\n")

	b.WriteString(summaryDimStyle.Render(fmt.Sprintf("  %-20s %-10s %10s", "Step", "Status", "Duration")))
	b.WriteString("\n")

	for _, r := range results {
		line := fmt.Sprintf("  %-20s %-10s %10s", r.ID, r.Status, formatDuration(r.Duration))
		b.WriteString(styleForStatus(r.Status).Render(line))
		b.WriteString("\n")
		if r.Err != nil {
			b.WriteString(summaryDimStyle.Render(fmt.Sprintf("      %v", r.Err)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func styleForStatus(status provisioning.StepStatus) lipgloss.Style {
	switch status {
	case provisioning.StatusDone:
		return summaryDoneStyle
	case provisioning.StatusSkipped:
		return summarySkippedStyle
	case provisioning.StatusFailed:
		return summaryFailedStyle
	default:
		return summaryDimStyle
	}
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}
