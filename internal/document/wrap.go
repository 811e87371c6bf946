package document

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultWrapWidth is the character budget of narrative lines on forms.
const DefaultWrapWidth = 75

// Wrap splits text into lines of at most width display columns, filling each
// line greedily. Line breaks in the input start a new line; runs of spaces
// collapse. A word wider than width gets a line of its own. width <= 0 means
// no wrapping.
func Wrap(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}
		if width <= 0 {
			lines = append(lines, strings.Join(words, " "))
			continue
		}

		line := words[0]
		lineWidth := runewidth.StringWidth(line)
		for _, w := range words[1:] {
			ww := runewidth.StringWidth(w)
			if lineWidth+1+ww <= width {
				line += " " + w
				lineWidth += 1 + ww
				continue
			}
			lines = append(lines, line)
			line, lineWidth = w, ww
		}
		lines = append(lines, line)
	}
	return lines
}
