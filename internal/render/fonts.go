package render

import (
	"bytes"
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts holds the embedded Go font sources and a cache of sized faces.
type Fonts struct {
	Regular *text.GoTextFaceSource
	Bold    *text.GoTextFaceSource

	faces map[faceKey]*text.GoTextFace
}

type faceKey struct {
	size int // quarter pixels
	bold bool
}

// LoadFonts parses the embedded Go Regular and Go Bold faces.
func LoadFonts() (*Fonts, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	log.Printf("[Font] Sans-serif: Go Regular (embedded)")

	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	log.Printf("[Font] Sans-serif bold: Go Bold (embedded)")

	return &Fonts{Regular: regular, Bold: bold, faces: make(map[faceKey]*text.GoTextFace)}, nil
}

// Face returns a face of the given pixel size.
func (f *Fonts) Face(size float64, bold bool) *text.GoTextFace {
	key := faceKey{size: int(math.Round(size * 4)), bold: bold}
	if face, ok := f.faces[key]; ok {
		return face
	}
	src := f.Regular
	if bold {
		src = f.Bold
	}
	face := &text.GoTextFace{Source: src, Size: float64(key.size) / 4}
	f.faces[key] = face
	return face
}

// Measure returns the advance of s in the bold face, the widest one used
// for wrapped text. It satisfies layout.MeasureFunc.
func (f *Fonts) Measure(s string, size float64) float64 {
	w, _ := text.Measure(s, f.Face(size, true), 0)
	return w
}
