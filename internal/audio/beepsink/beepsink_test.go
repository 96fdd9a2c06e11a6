package beepsink

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/animal-bridge/internal/audio"
	"github.com/vovakirdan/animal-bridge/internal/config"
)

func drain(st beep.Streamer) (count int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := st.Stream(buf)
		for _, s := range buf[:n] {
			peak = math.Max(peak, math.Abs(s[0]))
		}
		count += n
		if !ok || n == 0 {
			return count, peak
		}
	}
}

func TestCueStreamersAreFiniteAndAudible(t *testing.T) {
	sr := beep.SampleRate(8000)

	tests := []struct {
		cue  audio.Cue
		want time.Duration
	}{
		{audio.CueJump, 120 * time.Millisecond},
		{audio.CuePlace, 90 * time.Millisecond},
		{audio.CueError, 200 * time.Millisecond},
		{audio.CueGameOver, 440 * time.Millisecond},
		{audio.CueDestroy, 250 * time.Millisecond},
		{audio.CueClick, 30 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(string(tt.cue), func(t *testing.T) {
			st := cueStreamer(tt.cue, sr, 1)
			if st == nil {
				t.Fatal("cueStreamer() = nil")
			}
			count, peak := drain(st)
			if count != sr.N(tt.want) {
				t.Errorf("samples = %d, expected %d", count, sr.N(tt.want))
			}
			if peak == 0 {
				t.Error("cue is silent")
			}
			if peak > 1 {
				t.Errorf("peak = %v, expected <= 1", peak)
			}
		})
	}
}

func TestEveryCueHasStreamer(t *testing.T) {
	sr := beep.SampleRate(8000)
	for _, c := range audio.AllCues {
		if cueStreamer(c, sr, 1) == nil {
			t.Errorf("cueStreamer(%q) = nil, expected a streamer", c)
		}
	}
}

func TestCueStreamerVolume(t *testing.T) {
	sr := beep.SampleRate(8000)

	_, loud := drain(cueStreamer(audio.CueError, sr, 1))
	_, quiet := drain(cueStreamer(audio.CueError, sr, 0.25))
	if quiet >= loud {
		t.Errorf("quiet peak %v should be below loud peak %v", quiet, loud)
	}

	_, muted := drain(cueStreamer(audio.CueError, sr, 0))
	if muted != 0 {
		t.Errorf("volume 0 peak = %v, expected 0", muted)
	}

	if cueStreamer(audio.Cue("unknown"), sr, 1) != nil {
		t.Error("unknown cue should have no streamer")
	}
}

func TestOpenMutedIsSilent(t *testing.T) {
	sink, closeFn := Open(config.AudioConfig{Enabled: true, Volume: 0.5}, true, nil)
	defer closeFn()

	if _, ok := sink.(audio.NopSink); !ok {
		t.Errorf("Open(muted) = %T, expected NopSink", sink)
	}

	sink, closeFn2 := Open(config.AudioConfig{Enabled: false, Volume: 0.5}, false, nil)
	defer closeFn2()
	if _, ok := sink.(audio.NopSink); !ok {
		t.Errorf("Open(disabled) = %T, expected NopSink", sink)
	}
	sink.Play(audio.CueJump)
}
