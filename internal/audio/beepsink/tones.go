package beepsink

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/animal-bridge/internal/audio"
)

// cueStreamer builds a finite streamer for c at the given volume (0..1).
func cueStreamer(c audio.Cue, sr beep.SampleRate, volume float64) beep.Streamer {
	var st beep.Streamer

	switch c {
	case audio.CueJump:
		// Rising chirp.
		st = beep.Take(sr.N(120*time.Millisecond), newSweep(sr, 320, 640, 120*time.Millisecond, 6))
	case audio.CuePlace:
		// Low thud.
		st = beep.Take(sr.N(90*time.Millisecond), newSweep(sr, 200, 110, 90*time.Millisecond, 25))
	case audio.CueError:
		st = beep.Take(sr.N(200*time.Millisecond), newBuzz(sr, 120))
	case audio.CueGameOver:
		// Major arpeggio.
		notes := []float64{523.25, 659.25, 783.99, 1046.5}
		parts := make([]beep.Streamer, len(notes))
		for i, f := range notes {
			parts[i] = beep.Take(sr.N(110*time.Millisecond), newSweep(sr, f, f, 110*time.Millisecond, 10))
		}
		st = beep.Seq(parts...)
	case audio.CueDestroy:
		st = beep.Take(sr.N(250*time.Millisecond), newCrackle(sr))
	case audio.CueClick:
		sine, err := generators.SineTone(sr, 1000)
		if err != nil {
			return nil
		}
		st = beep.Take(sr.N(30*time.Millisecond), sine)
	default:
		return nil
	}

	// Gain multiplies by 1+Gain.
	return &effects.Gain{Streamer: st, Gain: clamp01(volume)*0.5 - 1}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// sweep is a sine tone gliding from one frequency to another with an
// exponential decay envelope.
type sweep struct {
	sr       beep.SampleRate
	from, to float64
	length   float64 // seconds
	decay    float64
	pos      int
	phase    float64
}

func newSweep(sr beep.SampleRate, from, to float64, d time.Duration, decay float64) *sweep {
	return &sweep{sr: sr, from: from, to: to, length: d.Seconds(), decay: decay}
}

func (g *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		k := math.Min(t/g.length, 1)
		freq := g.from + (g.to-g.from)*k
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		attack := math.Min(t/0.005, 1)
		sample := 0.8 * attack * math.Exp(-t*g.decay) * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error {
	return nil
}

// buzz is a harsh tone made of a few harmonics.
type buzz struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newBuzz(sr beep.SampleRate, freq float64) *buzz {
	return &buzz{sr: sr, freq: freq}
}

func (g *buzz) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.5*math.Sin(2*math.Pi*g.freq*t) +
			0.25*math.Sin(2*math.Pi*g.freq*2*t) +
			0.125*math.Sin(2*math.Pi*g.freq*3*t)
		sample *= math.Min(t/0.02, 1)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *buzz) Err() error {
	return nil
}

// crackle is decaying noise over a low rumble. The noise sequence is fixed
// so the cue sounds the same every time.
type crackle struct {
	sr   beep.SampleRate
	pos  int
	seed uint32
}

func newCrackle(sr beep.SampleRate) *crackle {
	return &crackle{sr: sr, seed: 0x2545f491}
}

func (g *crackle) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1

		rumble := 0.4 * math.Sin(2*math.Pi*80*t)
		sample := math.Exp(-t*10) * (0.5*noise + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *crackle) Err() error {
	return nil
}
