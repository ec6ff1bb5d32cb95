package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mikecinchan/tcg-deck-editor/pkg/catalog"
)

// out receives all human-readable command output.
var out io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, "  "+StyleDim.Render(msg))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(out, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Catalog Display
// =============================================================================

// printCatalogStats prints item and group counts with the snapshot age on
// a single line.
func printCatalogStats(st catalog.Status) {
	parts := []string{
		fmt.Sprintf("%d cards", st.Items),
		fmt.Sprintf("%d sets", st.Groups),
	}
	if !st.FetchedAt.IsZero() {
		parts = append(parts, "fetched "+formatRelativeTime(st.FetchedAt))
	}
	fmt.Fprintln(out, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// renderCardTable renders items as a rounded table.
func renderCardTable(items []catalog.Item) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ID,
			it.Name,
			it.Attributes.Category,
			strings.Join(it.Attributes.Types, "/"),
			intOrDash(it.Attributes.HP),
			dashIfEmpty(it.Attributes.Rarity),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Category", "Type", "HP", "Rarity").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 {
				return StyleNumber
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// printCard prints every attribute of one item.
func printCard(it *catalog.Item) {
	a := it.Attributes
	fmt.Fprintln(out, StyleTitle.Render(it.Name)+" "+StyleDim.Render(it.ID))
	printKeyValue("Set", fmt.Sprintf("%s (%s)", it.Group.Name, it.Group.ID))
	printKeyValue("Number", it.LocalID)
	printKeyValue("Category", dashIfEmpty(a.Category))
	if len(a.Types) > 0 {
		printKeyValue("Types", strings.Join(a.Types, ", "))
	}
	if a.HP != nil {
		printKeyValue("HP", strconv.Itoa(*a.HP))
	}
	if a.Stage != "" {
		printKeyValue("Stage", a.Stage)
	}
	if a.EvolveFrom != "" {
		printKeyValue("Evolves from", a.EvolveFrom)
	}
	if a.Retreat != nil {
		printKeyValue("Retreat", strconv.Itoa(*a.Retreat))
	}
	if a.Rarity != "" {
		printKeyValue("Rarity", a.Rarity)
	}
	if a.Effect != "" {
		printKeyValue("Effect", a.Effect)
	}
	if a.Description != "" {
		printKeyValue("Description", a.Description)
	}
	if it.ImageURL != "" {
		printKeyValue("Image", StyleLink.Render(it.ImageURL))
	}
}

// =============================================================================
// Utilities
// =============================================================================

func intOrDash(v *int) string {
	if v == nil {
		return "—"
	}
	return strconv.Itoa(*v)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// formatRelativeTime renders t as "just now", "5m ago", "3h ago" or "2d ago".
func formatRelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
