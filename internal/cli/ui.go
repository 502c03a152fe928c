package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jinwoohan/plotgrid/pkg/compliance"
)

// Terminal palette. ANSI 256 colors so output degrades gracefully on
// basic terminals.
var (
	colorCyan   = lipgloss.Color("36")  // primary accents
	colorGreen  = lipgloss.Color("35")  // compliant
	colorYellow = lipgloss.Color("220") // near-limit warnings
	colorRed    = lipgloss.Color("167") // violations
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted text
)

// Styles shared across commands.
var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for compliant metrics.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for near-limit metrics.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for violations.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

var styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// statusLine prints an icon-prefixed message, the shared shape of all
// status output.
func statusLine(icon string, iconStyle, msgStyle lipgloss.Style, format string, args ...any) {
	fmt.Println(iconStyle.Render(icon) + " " + msgStyle.Render(fmt.Sprintf(format, args...)))
}

func printSuccess(format string, args ...any) {
	statusLine(iconSuccess, StyleSuccess, lipgloss.NewStyle(), format, args...)
}

func printError(format string, args ...any) {
	statusLine(iconError, StyleError, lipgloss.NewStyle(), format, args...)
}

func printWarning(format string, args ...any) {
	statusLine(iconWarning, StyleWarning, StyleWarning, format, args...)
}

func printInfo(format string, args ...any) {
	statusLine(iconInfo, lipgloss.NewStyle().Foreground(colorGray), lipgloss.NewStyle(), format, args...)
}

// printDetail prints an indented detail line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written-file line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value with the label padded to align
// columns across consecutive calls.
func printKeyValue(key, value string) {
	label := lipgloss.NewStyle().Foreground(colorGray).Width(18).Render(key)
	fmt.Println(label + " " + StyleValue.Render(value))
}

// printStats prints a one-line evaluation summary: cell and floor
// counts plus whether the geometry came from cache.
func printStats(cellCount, floorCount int, cached bool) {
	parts := make([]string, 0, 3)
	if cellCount > 0 {
		parts = append(parts, fmt.Sprintf("%d cells", cellCount))
	}
	if floorCount > 0 {
		parts = append(parts, fmt.Sprintf("%d floors", floorCount))
	}
	if cached {
		parts = append(parts, StyleSuccess.Render(iconCached))
	} else {
		parts = append(parts, iconFresh)
	}
	fmt.Println("  " + StyleDim.Render(strings.Join(parts, " · ")))
}

// levelStyle maps a compliance level to its display style.
func levelStyle(l compliance.Level) lipgloss.Style {
	switch l {
	case compliance.LevelViolation:
		return StyleError
	case compliance.LevelWarning:
		return StyleWarning
	default:
		return StyleSuccess
	}
}

// metricSegment formats one metric as "label current/max" in the level color.
func metricSegment(label string, m compliance.Metric, unit string) string {
	var text string
	if m.Max <= 0 {
		text = fmt.Sprintf("%s %.1f%s/-", label, m.Current, unit)
	} else {
		text = fmt.Sprintf("%s %.1f/%.1f%s", label, m.Current, m.Max, unit)
	}
	return levelStyle(m.Level).Render(text)
}

// statusBar renders a one-line compliance summary in the style of the
// editor's status bar: one colored segment per metric plus the overall
// verdict.
func statusBar(status compliance.Status) string {
	sep := StyleDim.Render(" │ ")
	segments := []string{
		metricSegment("건폐율", status.CoverageRatio, "%"),
		metricSegment("용적률", status.FloorAreaRatio, "%"),
		metricSegment("높이", status.Height, "m"),
		fmt.Sprintf("%s %s",
			levelStyle(status.Floors.Level).Render(fmt.Sprintf("층수 %.0f", status.Floors.Current)),
			boundarySegment(status.Boundary)),
	}

	overall := levelStyle(status.Overall).Bold(true).Render(strings.ToUpper(string(status.Overall)))
	return overall + sep + strings.Join(segments, sep)
}

func boundarySegment(m compliance.Metric) string {
	if m.Level == compliance.LevelViolation {
		return StyleError.Render("경계 이탈")
	}
	return StyleSuccess.Render("경계 내")
}

// printCompliance prints the status bar and any warning or violation
// messages beneath it.
func printCompliance(status compliance.Status) {
	fmt.Println(statusBar(status))
	for _, msg := range status.Messages {
		switch status.Overall {
		case compliance.LevelViolation:
			printError("%s", msg)
		default:
			printWarning("%s", msg)
		}
	}
}
