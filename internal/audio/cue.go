// Package audio defines the sound cues of game events and the Sink the game
// plays them through. Speaker output lives in the beepsink subpackage, so
// the simulation builds without an audio backend.
package audio

import "sync"

// Cue names a game event with a sound.
type Cue string

const (
	CueJump     Cue = "jump"
	CuePlace    Cue = "place"
	CueError    Cue = "error"
	CueGameOver Cue = "game_over"
	CueDestroy  Cue = "destroy"
	CueClick    Cue = "click"
)

// AllCues lists every cue.
var AllCues = []Cue{CueJump, CuePlace, CueError, CueGameOver, CueDestroy, CueClick}

// Sink receives cues. Play must not block.
type Sink interface {
	Play(c Cue)
}

// NopSink discards every cue.
type NopSink struct{}

// Play does nothing.
func (NopSink) Play(Cue) {}

// Recorder keeps every cue it receives. Useful in tests and replays.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

// Play records the cue.
func (r *Recorder) Play(c Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
}

// Cues returns a copy of the recorded cues.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}

// Count returns how many times c was played.
func (r *Recorder) Count(c Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}
