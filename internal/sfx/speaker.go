package sfx

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Speaker plays chimes through the system audio device. A muted or
// uninitialized Speaker is a silent no-op.
type Speaker struct {
	Rate   beep.SampleRate
	Volume float64
	Muted  bool

	ready bool
}

// NewSpeaker opens the audio device unless muted.
func NewSpeaker(rate beep.SampleRate, volume float64, muted bool) (*Speaker, error) {
	sp := &Speaker{Rate: rate, Volume: volume, Muted: muted}
	if muted {
		return sp, nil
	}
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return sp, fmt.Errorf("init speaker: %w", err)
	}
	sp.ready = true
	return sp, nil
}

// Chime plays one transition chime without blocking.
func (s *Speaker) Chime() {
	if s == nil || s.Muted || !s.ready {
		return
	}
	speaker.Play(Chime(s.Rate, s.Volume))
}

// Close releases the audio device.
func (s *Speaker) Close() {
	if s == nil || !s.ready {
		return
	}
	speaker.Close()
	s.ready = false
}
