// Package beepsink plays audio cues through the system speaker. Cues are
// synthesized with beep so no sound assets are needed. It is the only
// package that links the speaker backend.
package beepsink

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/animal-bridge/internal/audio"
	"github.com/vovakirdan/animal-bridge/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// BeepSink plays cues through the system speaker.
type BeepSink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewBeepSink opens the speaker and starts the mixer.
func NewBeepSink(volume float64) (*BeepSink, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	s := &BeepSink{
		mixer:       &beep.Mixer{},
		volume:      volume,
		initialized: true,
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Play mixes the cue in. Unknown cues are ignored.
func (s *BeepSink) Play(c audio.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	st := cueStreamer(c, sampleRate, s.volume)
	if st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences the mixer and releases the speaker.
func (s *BeepSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}

// Open returns the sink to use for cfg. A disabled or muted config, or a
// speaker that cannot be opened, yields a silent sink; the latter is logged.
// The returned close function is always safe to call.
func Open(cfg config.AudioConfig, muted bool, logger *log.Logger) (audio.Sink, func()) {
	if logger == nil {
		logger = log.Default()
	}
	if muted || !cfg.Enabled || cfg.Volume <= 0 {
		return audio.NopSink{}, func() {}
	}

	s, err := NewBeepSink(cfg.Volume)
	if err != nil {
		logger.Warn("audio unavailable, continuing without sound", "err", err)
		return audio.NopSink{}, func() {}
	}
	logger.Debug("audio ready", "sample_rate", int(sampleRate), "volume", cfg.Volume)
	return s, s.Close
}
