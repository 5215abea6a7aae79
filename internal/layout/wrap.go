package layout

import "strings"

// MeasureFunc returns the advance width of s at the given font size.
type MeasureFunc func(s string, size float64) float64

// approxGlyph is the average advance of a proportional sans glyph per unit
// of font size.
const approxGlyph = 0.55

// ApproxMeasure estimates text width without a font.
func ApproxMeasure(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * approxGlyph
}

// Wrap breaks text into lines no wider than maxWidth. A word wider than
// maxWidth gets a line of its own.
func Wrap(text string, maxWidth, size float64, measure MeasureFunc) []string {
	if measure == nil {
		measure = ApproxMeasure
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if measure(line+" "+w, size) > maxWidth {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
