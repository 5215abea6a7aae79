package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/idate-tech/luminous/internal/game"
	"github.com/idate-tech/luminous/internal/world"
)

type rgb struct{ R, G, B uint8 }

var (
	colBackground = rgb{2, 2, 3}
	colInk        = rgb{255, 255, 255}
	colSuccess    = rgb{74, 222, 128}
	colWarning    = rgb{251, 191, 36}
)

// baseStyle is the style of an empty cell.
var baseStyle = tcell.StyleDefault.
	Background(tcell.NewRGBColor(int32(colBackground.R), int32(colBackground.G), int32(colBackground.B))).
	Foreground(tcell.NewRGBColor(int32(colInk.R), int32(colInk.G), int32(colInk.B)))

// over blends c onto bg with opacity a; terminals have no alpha channel.
func (c rgb) over(bg rgb, a float64) tcell.Color {
	a = math.Max(0, math.Min(1, a))
	mix := func(f, b uint8) int32 {
		return int32(math.Round(float64(b) + (float64(f)-float64(b))*a))
	}
	return tcell.NewRGBColor(mix(c.R, bg.R), mix(c.G, bg.G), mix(c.B, bg.B))
}

// fg returns the base style with c at opacity a as foreground.
func fg(c rgb, a float64) tcell.Style {
	return baseStyle.Foreground(c.over(colBackground, a))
}

// accents parses the scene accents; unparseable ones fall back to ink.
func accents(reg *world.Registry) []rgb {
	out := make([]rgb, reg.Len())
	for i := range out {
		c, err := world.ParseHexColor(reg.Scene(i).Accent)
		if err != nil {
			out[i] = colInk
			continue
		}
		out[i] = rgb{c.R, c.G, c.B}
	}
	return out
}

func messageStyle(pr game.MsgPriority, accent rgb) tcell.Style {
	switch pr {
	case game.MsgScene:
		return fg(accent, 1)
	case game.MsgSuccess:
		return fg(colSuccess, 1)
	case game.MsgWarning:
		return fg(colWarning, 1)
	default:
		return fg(colInk, 0.5)
	}
}

// iconGlyphs maps item icon identifiers to a single cell glyph.
var iconGlyphs = map[string]rune{
	"globe":      '◎',
	"line-chart": '↗',
	"cpu":        '▣',
	"palette":    '◐',
	"share":      '⇄',
	"rocket":     '▲',
	"zap":        'ϟ',
	"network":    '⌘',
}

func iconGlyph(id string) rune {
	if g, ok := iconGlyphs[id]; ok {
		return g
	}
	return '○'
}
