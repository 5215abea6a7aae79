package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/skip2/go-qrcode"
)

// qrPixels is the source resolution of generated codes; they are scaled
// down when drawn.
const qrPixels = 256

// NewQRImage encodes content as a QR code drawn in ink on a transparent
// background.
func NewQRImage(content string) (*ebiten.Image, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr %q: %w", content, err)
	}
	q.DisableBorder = true
	q.ForegroundColor = ColorInk
	q.BackgroundColor = color.Transparent
	return ebiten.NewImageFromImage(q.Image(qrPixels)), nil
}
