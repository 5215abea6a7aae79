package render

import (
	"image/color"

	"github.com/idate-tech/luminous/internal/game"
	"github.com/idate-tech/luminous/internal/world"
)

// Fixed UI colors.
var (
	ColorBackground = color.NRGBA{2, 2, 3, 255}
	ColorInk        = color.NRGBA{255, 255, 255, 255}
	ColorSuccess    = color.NRGBA{74, 222, 128, 255}
	ColorWarning    = color.NRGBA{251, 191, 36, 255}
)

// Fade returns c with its alpha scaled to a in [0,1].
func Fade(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(float64(c.A) * a)
	return c
}

// Palette holds the accent color of every scene, indexed like the registry.
type Palette []color.NRGBA

// NewPalette parses the scene accents. Unparseable accents fall back to ink.
func NewPalette(reg *world.Registry) Palette {
	p := make(Palette, reg.Len())
	for i := range p {
		c, err := world.ParseHexColor(reg.Scene(i).Accent)
		if err != nil {
			p[i] = ColorInk
			continue
		}
		p[i] = color.NRGBA{c.R, c.G, c.B, 255}
	}
	return p
}

// Accent returns the accent of scene i.
func (p Palette) Accent(i int) color.NRGBA {
	if i < 0 || i >= len(p) {
		return ColorInk
	}
	return p[i]
}

// MessageColor colors an activity line by priority.
func (p Palette) MessageColor(pr game.MsgPriority, scene int) color.NRGBA {
	switch pr {
	case game.MsgScene:
		return p.Accent(scene)
	case game.MsgSuccess:
		return ColorSuccess
	case game.MsgWarning:
		return ColorWarning
	default:
		return Fade(ColorInk, 0.5)
	}
}
