package sfx

import (
	"encoding/binary"
	"math"

	"github.com/gopxl/beep"
)

// PCM16 drains a finite streamer into interleaved little-endian signed
// 16-bit stereo, the format ebiten's audio players consume.
func PCM16(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}
