package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorSecondary = lipgloss.Color("10")  // bright green
	colorDim       = lipgloss.Color("240") // gray
	colorHighlight = lipgloss.Color("11")  // bright yellow
	colorBorder    = lipgloss.Color("238") // dark gray
	colorWarn      = lipgloss.Color("9")   // bright red

	// heat scale from cold to hot, used by the heatmap and word cloud
	heatColors = []lipgloss.Color{"236", "24", "31", "37", "172", "202", "196"}

	// Input area
	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	// List items
	styleListSelected = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	styleListActive = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleListNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleUser = lipgloss.NewStyle().
			Foreground(colorPrimary)

	// Tabs
	styleTabActive = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	styleTab = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	// Metric boxes on the stats tab
	styleMetric = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2).
			Align(lipgloss.Center)

	styleMetricValue = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	styleBar = lipgloss.NewStyle().
			Foreground(colorPrimary)

	styleWarn = lipgloss.NewStyle().
			Foreground(colorWarn)

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	// Section titles
	styleTitle = lipgloss.NewStyle().
			Foreground(colorDim).
			Bold(true)
)

// heatStyle colors n on the heat scale relative to max.
func heatStyle(n, max int) lipgloss.Style {
	idx := 0
	if max > 0 && n > 0 {
		idx = 1 + (n*(len(heatColors)-2))/max
		if idx >= len(heatColors) {
			idx = len(heatColors) - 1
		}
	}
	return lipgloss.NewStyle().Background(heatColors[idx]).Foreground(lipgloss.Color("255"))
}
