package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText wraps words to the given display width, measured as the terminal
// renders them. Words wider than the width stay on their own line.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	lineWidth := runewidth.StringWidth(words[0])
	for _, word := range words[1:] {
		w := runewidth.StringWidth(word)
		if lineWidth+1+w > width {
			lines = append(lines, line)
			line = word
			lineWidth = w
			continue
		}
		line += " " + word
		lineWidth += 1 + w
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
