package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// RenderBox draws a collapsible bordered box of the given outer size.
// A collapsed box keeps its frame and shows only the toggle marker.
func RenderBox(content string, open, focused bool, width, height int) string {
	style := styles.InactiveBorder
	if focused {
		style = styles.ActiveBorder
	}

	marker := "[-]"
	if !open {
		marker = "[+]"
		content = ""
	}
	frameW, frameH := style.GetFrameSize()
	innerW := max(width-frameW, 1)
	innerH := max(height-frameH, 1)

	header := lipgloss.PlaceHorizontal(innerW, lipgloss.Right, styles.DimStyle.Render(marker))
	body := lipgloss.NewStyle().MaxHeight(innerH - 1).Render(content)

	return style.
		Width(innerW).
		Height(innerH).
		Render(header + "\n" + body)
}
