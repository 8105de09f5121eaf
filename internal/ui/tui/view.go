package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/napo-io/k8sway/internal/ui/benchmarks"
)

// maxResourceRows bounds the resource table.
const maxResourceRows = 12

// state is the display state shared by phase and resource rows.
type state int

const (
	statePending state = iota
	stateActive
	stateDone
	stateFailed
)

// mark returns the row icon and the style for the row label.
func (m Model) mark(s state) (string, lipgloss.Style) {
	switch s {
	case stateFailed:
		return failedStyle.Render(crossMark), failedStyle
	case stateDone:
		return readyStyle.Render(checkMark), readyStyle
	case stateActive:
		return activeStyle.Render(currentSpinner(m.SpinnerFrame)), activeStyle
	default:
		return dimStyle.Render(pending), dimStyle
	}
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderPhases(&b, m)

	if len(m.Images) > 0 {
		renderImages(&b, m)
	}
	if len(m.Resources) > 0 {
		renderResources(&b, m)
	}
	if len(m.Warnings) > 0 {
		renderWarnings(&b, m)
	}
	if len(m.Logs) > 0 {
		renderLogs(&b, m)
	}

	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("k8sway %s: %s", m.Mode, m.StackName)
	if m.Region != "" {
		title += fmt.Sprintf(" (%s)", m.Region)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done:
		status += readyStyle.Render("Done")
	case m.ActivePhase() != "":
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render(phaseNames[m.ActivePhase()])
	default:
		status += dimStyle.Render("Starting...")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	width := 40
	if m.Width > 0 && m.Width < 80 {
		width = max(m.Width-30, 10)
	}
	progress := calculateProgress(m)

	fmt.Fprintf(b, "  %s %3d%%", bar(width, progress), int(progress*100))
	if m.EstimatedRemaining > 0 {
		b.WriteString(" ETA " + formatDuration(m.EstimatedRemaining))
	}
	if m.PerformanceScale != 0 && m.PerformanceScale != 1.0 {
		fmt.Fprintf(b, "  speed x%.2f", m.PerformanceScale)
	}
	b.WriteString("\n")
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Phases"))
	b.WriteString("\n")

	for _, phase := range m.Phases {
		s := statePending
		switch {
		case phase.Err != nil:
			s = stateFailed
		case phase.Done:
			s = stateDone
		case phase.Active:
			s = stateActive
		}
		icon, style := m.mark(s)

		dur := ""
		switch {
		case phase.EndedAt != nil && !phase.StartedAt.IsZero():
			dur = formatDuration(phase.EndedAt.Sub(phase.StartedAt))
		case phase.Active:
			dur = formatDuration(time.Since(phase.StartedAt))
		}
		fmt.Fprintf(b, "    %s %s %s\n", icon, style.Width(28).Render(phase.Name), dimStyle.Render(dur))
	}
}

func renderImages(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Images"))
	b.WriteString("\n")

	for _, img := range m.Images {
		if img.Err != "" {
			fmt.Fprintf(b, "    %s %-16s %s\n", failedStyle.Render(crossMark), img.Region, dimStyle.Render(img.Err))
			continue
		}
		fmt.Fprintf(b, "    %s %-16s %s\n", readyStyle.Render(checkMark), img.Region, img.ImageID)
	}
}

func renderResources(b *strings.Builder, m Model) {
	complete, failed := 0, 0
	for _, r := range m.Resources {
		switch {
		case r.Failed():
			failed++
		case !r.InProgress():
			complete++
		}
	}
	header := fmt.Sprintf("  Stack resources %d/%d", complete, len(m.Resources))
	if failed > 0 {
		header += fmt.Sprintf(", %d failed", failed)
	}
	b.WriteString(sectionStyle.Render(header))
	b.WriteString("\n")

	rows := m.Resources
	if len(rows) > maxResourceRows {
		rows = rows[len(rows)-maxResourceRows:]
	}
	for _, r := range rows {
		renderResourceRow(b, m, r)
	}
}

func renderResourceRow(b *strings.Builder, m Model, r Resource) {
	s := stateDone
	switch {
	case r.Failed():
		s = stateFailed
	case r.InProgress():
		s = stateActive
	}
	icon, style := m.mark(s)

	extra := dimStyle.Render(r.Status)
	if r.Failed() && r.Reason != "" {
		extra = warningStyle.Render(r.Reason)
	}

	fmt.Fprintf(b, "    %s %s %s", icon, style.Width(30).Render(r.LogicalID), extra)
	if r.InProgress() {
		expected := 10 * time.Second
		if exp, ok := benchmarks.ResourceExpectedDuration(r.Type); ok {
			expected = time.Duration(float64(exp) * m.PerformanceScale)
		}
		b.WriteString(" " + bar(10, float64(time.Since(r.FirstSeen))/float64(expected)))
	}
	b.WriteString("\n")
}

func renderWarnings(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Warnings"))
	b.WriteString("\n")

	for _, w := range m.Warnings {
		fmt.Fprintf(b, "    %s %s\n", warningStyle.Render(warnMark), w)
	}
}

func renderLogs(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Log"))
	b.WriteString("\n")

	for _, line := range m.Logs {
		fmt.Fprintf(b, "    %s\n", dimStyle.Render(line))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	pulse := ""
	if !m.Done && m.Err == nil {
		pulse = "  |  " + currentSpinner(m.SpinnerFrame) + " working"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed: %s%s  |  q: quit", elapsed, pulse)))
	b.WriteString("\n")
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

// bar draws a progress bar of width cells, clamping progress to [0, 1].
func bar(width int, progress float64) string {
	filled := int(float64(width) * min(max(progress, 0), 1))
	return progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", width-filled))
}

// calculateProgress weights phases by their benchmark durations. The running
// phase counts by elapsed time and never exceeds 95% of its weight.
func calculateProgress(m Model) float64 {
	if m.Done {
		return 1.0
	}

	var total, progress float64
	for _, phase := range m.Phases {
		weight := float64(benchmarks.DefaultTimings[phase.Key])
		if weight == 0 {
			weight = 1
		}
		total += weight

		switch {
		case phase.Done:
			progress += weight
		case phase.Active && !phase.StartedAt.IsZero():
			expected := weight * float64(time.Second) * m.PerformanceScale
			if expected <= 0 {
				expected = weight * float64(time.Second)
			}
			progress += weight * min(float64(time.Since(phase.StartedAt))/expected, 0.95)
		}
	}
	if total == 0 {
		return 0
	}
	return progress / total
}

// formatDuration prints whole seconds, minutes and seconds, or hours and
// minutes, whichever is the coarsest unit that fits.
func formatDuration(d time.Duration) string {
	s := int(d.Round(time.Second).Seconds())
	switch {
	case s < 60:
		return fmt.Sprintf("%ds", s)
	case s < 3600:
		return fmt.Sprintf("%dm%ds", s/60, s%60)
	default:
		return fmt.Sprintf("%dh%dm", s/3600, s%3600/60)
	}
}
