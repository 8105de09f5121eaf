package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/platform/aws"
)

// Colors matching internal/ui/tui/styles.go palette.
var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorOrange = lipgloss.Color("#ff9900")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	greenStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	redStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// renderImageSummary lists the selected image or the failure of every
// queried region.
func renderImageSummary(res *image.Result) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  Machine images: %d of %d regions", res.Mapping.Len(), len(res.Regions()))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n")

	regions := res.Regions()
	sort.Strings(regions)
	failures := res.Failures()
	for _, region := range regions {
		if err, ok := failures[region]; ok {
			fmt.Fprintf(&b, "  %s %-16s %s\n", redStyle.Render("✗"), region, dimStyle.Render(err.Error()))
			continue
		}
		img, _ := res.Image(region)
		fmt.Fprintf(&b, "  %s %-16s %-22s %s\n", greenStyle.Render("✓"), region, img.ID, dimStyle.Render(img.Name))
	}

	return b.String()
}

// renderStackSummary shows the stack status and its outputs sorted by key.
func renderStackSummary(stack *aws.Stack, changed bool) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  Stack %s", stack.Name)))
	b.WriteString(" ")
	if changed {
		b.WriteString(greenStyle.Render(stack.Status))
	} else {
		b.WriteString(dimStyle.Render(stack.Status + " (no changes)"))
	}
	b.WriteString("\n")

	if len(stack.Outputs) == 0 {
		return b.String()
	}

	b.WriteString(sectionStyle.Render("  Outputs"))
	b.WriteString("\n")
	keys := make([]string, 0, len(stack.Outputs))
	for k := range stack.Outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "    %-28s %s\n", k, stack.Outputs[k])
	}
	return b.String()
}
