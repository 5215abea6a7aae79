// Package sfx synthesizes the scene-transition chime. The chime is a beep
// streamer, so it can be played live through the beep speaker or rendered
// to PCM for ebiten's audio player.
package sfx

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Chime timing.
const (
	ChimeDuration = 420 * time.Millisecond
	chimeAttack   = 8 * time.Millisecond
	chimeDecay    = 9.0 // exponential decay rate per second
	chimeLow      = 523.25
	chimeHigh     = 783.99
	chimeSweep    = 1.06 // end frequency as a multiple of the start
)

// sweep is a sine oscillator gliding exponentially between two frequencies
// with a short linear attack and an exponential tail.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	phase    float64
	pos      int
	total    int
	attack   int
}

func newSweep(rate beep.SampleRate, from, to float64, d time.Duration) *sweep {
	return &sweep{
		rate:   rate,
		from:   from,
		to:     to,
		total:  rate.N(d),
		attack: rate.N(chimeAttack),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from * math.Pow(s.to/s.from, progress)

		t := float64(s.pos) / float64(s.rate)
		env := math.Exp(-chimeDecay * t)
		if s.pos < s.attack {
			env *= float64(s.pos) / float64(s.attack)
		}

		v := math.Sin(2*math.Pi*s.phase) * env
		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// Chime returns a new two-tone transition chime at the given volume in
// [0,1]. Every call returns a fresh, finite streamer.
func Chime(rate beep.SampleRate, volume float64) beep.Streamer {
	low := newSweep(rate, chimeLow, chimeLow*chimeSweep, ChimeDuration)
	high := newSweep(rate, chimeHigh, chimeHigh*chimeSweep, ChimeDuration*2/3)
	mixed := beep.Mix(gain(low, 0.6), gain(high, 0.4))
	return beep.Take(rate.N(ChimeDuration), gain(mixed, volume))
}

// gain scales a streamer linearly. Zero mutes it.
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}
