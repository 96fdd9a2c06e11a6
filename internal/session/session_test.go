package session

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/animal-bridge/internal/audio"
	"github.com/vovakirdan/animal-bridge/internal/catalog"
	"github.com/vovakirdan/animal-bridge/internal/config"
	"github.com/vovakirdan/animal-bridge/internal/core"
	"github.com/vovakirdan/animal-bridge/internal/storage"
)

const (
	stageTrough = 1
	stageFloor  = 2
	stagePit    = 3
)

// testCatalog builds three stages:
//   - a trough between two platforms that one plank fills flush,
//   - a flat floor for predation,
//   - a bottomless pit.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	animals := []catalog.Animal{
		{ID: "plank", Name: "Plank", Grid: []string{"11111"}},
		{ID: "tiger", Name: "Tiger", Carnivore: true, Grid: []string{"21111", "10001"}},
		{ID: "rabbit", Name: "Rabbit", Grid: []string{"11"}},
	}
	stages := []catalog.Stage{
		{
			ID:      stageTrough,
			Name:    "Trough",
			Animals: []string{"plank", "rabbit"},
			Terrain: []catalog.Terrain{
				{X: 150, Y: 400, W: 300, H: 40},    // Left platform, top 380, x 0..300
				{X: 734, Y: 400, W: 300, H: 40},    // Right platform, top 380, x 584..884
				{X: 442, Y: 446.25, W: 284, H: 20}, // Trough bottom, top 436.25
			},
			Goal: core.V(760, 380),
		},
		{
			ID:      stageFloor,
			Name:    "Floor",
			Animals: []string{"tiger", "rabbit", "plank"},
			Terrain: []catalog.Terrain{{X: 640, Y: 600, W: 1280, H: 40}},
			Goal:    core.V(1200, 580),
		},
		{
			ID:      stagePit,
			Name:    "Pit",
			Animals: []string{"rabbit"},
			Goal:    core.V(1200, 580),
		},
	}
	c, err := catalog.New(animals, stages)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

type memRecorder struct {
	stage   int
	entries []storage.RankingEntry
	err     error
}

func (r *memRecorder) AddEntry(stage int, e storage.RankingEntry) error {
	r.stage = stage
	r.entries = append(r.entries, e)
	return r.err
}

func newTestSession(t *testing.T, stageID int, mutate func(*Options)) *Session {
	t.Helper()
	cat := testCatalog(t)
	stage, ok := cat.Stage(stageID)
	if !ok {
		t.Fatalf("stage %d missing", stageID)
	}
	opts := Options{
		Catalog:    cat,
		Stage:      stage,
		Config:     config.DefaultGameConfig(),
		TickRate:   60,
		PlayerName: "ana",
		Logger:     log.New(io.Discard),
	}
	if mutate != nil {
		mutate(&opts)
	}
	s, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func holding(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Hold(a)
	return in
}

func action(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func pointer(kind core.PointerKind, p core.Vec) core.InputFrame {
	in := core.NewInputFrame()
	in.AddPointer(kind, p, core.ButtonPrimary)
	return in
}

func hasCue(cues []audio.Cue, c audio.Cue) bool {
	for _, got := range cues {
		if got == c {
			return true
		}
	}
	return false
}

func TestNewRejectsUnknownStageAnimal(t *testing.T) {
	cat := testCatalog(t)
	stage, _ := cat.Stage(stageFloor)
	stage.Animals = append(stage.Animals, "yak")

	_, err := New(Options{Catalog: cat, Stage: stage, Config: config.DefaultGameConfig(), Logger: log.New(io.Discard)})
	if !errors.Is(err, catalog.ErrUnknownAnimal) {
		t.Errorf("New() error = %v, expected ErrUnknownAnimal", err)
	}
}

func TestBridgingScenarioClearsWithOneBlock(t *testing.T) {
	rec := &memRecorder{}
	s := newTestSession(t, stageTrough, func(o *Options) { o.Recorder = rec })

	if err := s.Place("plank", core.V(442, 100), 0); err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	for i := 0; i < 120; i++ {
		s.Step(idle())
	}
	if s.BlockCount() != 1 || s.blocks[0].IsDying() {
		t.Fatal("plank should rest in the trough")
	}

	var cleared *ClearResult
	var cues []audio.Cue
	for i := 0; i < 900 && cleared == nil; i++ {
		res := s.Step(holding(core.ActionMoveRight))
		cleared = res.Cleared
		cues = res.Cues
	}

	if cleared == nil {
		t.Fatalf("stage not cleared, player at %v", s.PlayerPosition())
	}
	if s.State() != StateCleared {
		t.Errorf("State() = %v, expected %v", s.State(), StateCleared)
	}
	if cleared.BlocksUsed != 1 {
		t.Errorf("BlocksUsed = %d, expected 1", cleared.BlocksUsed)
	}
	if cleared.Eaten != 0 {
		t.Errorf("Eaten = %d, expected 0", cleared.Eaten)
	}
	if cleared.ElapsedSeconds <= 2 {
		t.Errorf("ElapsedSeconds = %v, expected more than 2", cleared.ElapsedSeconds)
	}
	if !hasCue(cues, audio.CueGameOver) {
		t.Errorf("clear cues = %v, expected %q", cues, audio.CueGameOver)
	}

	if len(rec.entries) != 1 || rec.stage != stageTrough {
		t.Fatalf("recorded %d entries for stage %d, expected 1 for stage %d", len(rec.entries), rec.stage, stageTrough)
	}
	want := storage.RankingEntry{Name: "ana", Blocks: 1, Time: cleared.ElapsedSeconds, Eaten: 0}
	if rec.entries[0] != want {
		t.Errorf("recorded %+v, expected %+v", rec.entries[0], want)
	}

	// A finished session ignores further input.
	res := s.Step(holding(core.ActionMoveRight))
	if res.State != StateCleared || res.Cleared != nil {
		t.Errorf("Step() after clear = %+v, expected a no-op", res)
	}
}

func TestTroughWithoutBridgeIsNotCleared(t *testing.T) {
	s := newTestSession(t, stageTrough, nil)

	for i := 0; i < 600; i++ {
		if res := s.Step(holding(core.ActionMoveRight)); res.Cleared != nil {
			t.Fatalf("stage cleared at tick %d without a bridge", i)
		}
	}
	if p := s.PlayerPosition(); p.Y < 400 {
		t.Errorf("player y = %v, expected it to drop into the trough", p.Y)
	}
}

func TestClearPersistenceFailureIsReported(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	s := newTestSession(t, stageTrough, func(o *Options) { o.Recorder = rec })

	if err := s.Place("plank", core.V(442, 100), 0); err != nil {
		t.Fatal(err)
	}
	var res StepResult
	for i := 0; i < 1000 && res.Cleared == nil; i++ {
		res = s.Step(holding(core.ActionMoveRight))
	}
	if res.Cleared == nil {
		t.Fatal("stage not cleared")
	}
	if res.Err == nil || s.State() != StateCleared {
		t.Errorf("Step() = (err %v, state %v), expected an error with state cleared", res.Err, s.State())
	}
}

func TestSameFramePredationAndDecayWindow(t *testing.T) {
	s := newTestSession(t, stageFloor, func(o *Options) {
		o.TickRate = 50
		o.Config.Predation.DecaySeconds = 0.5
	})

	// Tiger head cell centre lands at (587.5, 71.875); the rabbit's right
	// edge sits 5 units left of the head cell.
	if err := s.Place("tiger", core.V(700, 100), 0); err != nil {
		t.Fatal(err)
	}
	if err := s.Place("rabbit", core.V(498.125, 71.875), 0); err != nil {
		t.Fatal(err)
	}
	tiger, rabbit := s.blocks[0], s.blocks[1]

	res := s.Step(idle())
	if s.Eaten() != 1 {
		t.Fatalf("Eaten() = %d, expected 1", s.Eaten())
	}
	if !rabbit.IsDying() || s.world.HasBody(rabbit.Handle) {
		t.Error("eaten rabbit should leave the world on the same frame")
	}
	if tiger.IsDying() {
		t.Error("tiger should survive")
	}
	if !hasCue(res.Cues, audio.CueDestroy) {
		t.Errorf("Cues = %v, expected %q", res.Cues, audio.CueDestroy)
	}

	// 0.5 s at 50 fps is 25 ticks; the block is purged once that is exceeded.
	for i := 0; i < 25; i++ {
		s.Step(idle())
	}
	if s.BlockCount() != 2 {
		t.Fatalf("BlockCount() = %d, expected 2 at the end of the decay window", s.BlockCount())
	}
	frame := s.Snapshot()
	if frame.Blocks[1].Dying != 1 {
		t.Errorf("Dying = %v, expected 1", frame.Blocks[1].Dying)
	}

	s.Step(idle())
	if s.BlockCount() != 1 {
		t.Errorf("BlockCount() = %d, expected 1 after the decay window", s.BlockCount())
	}
	if s.Eaten() != 1 {
		t.Errorf("Eaten() = %d, expected 1", s.Eaten())
	}
}

func TestPlacementExclusivity(t *testing.T) {
	s := newTestSession(t, stageFloor, nil)
	zone := s.DropZone()
	at := zone.Center()

	if err := s.Place("plank", at, 90); err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if err := s.Place("plank", at, 0); !errors.Is(err, ErrAnimalUsed) {
		t.Errorf("second Place() error = %v, expected ErrAnimalUsed", err)
	}
	if got := s.Remaining("plank"); got != 0 {
		t.Errorf("Remaining(plank) = %d, expected 0", got)
	}
	if s.BlocksUsed() != 1 {
		t.Errorf("BlocksUsed() = %d, expected 1", s.BlocksUsed())
	}

	tests := []struct {
		name   string
		animal string
		at     core.Vec
		want   error
	}{
		{"unknown animal", "yak", at, catalog.ErrUnknownAnimal},
		{"not in stage", "lion", at, catalog.ErrUnknownAnimal},
		{"above the zone", "rabbit", core.V(at.X, zone.Y-1), ErrOutsideDropZone},
		{"right edge exclusive", "rabbit", core.V(zone.Right(), at.Y), ErrOutsideDropZone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Place(tt.animal, tt.at, 0); !errors.Is(err, tt.want) {
				t.Errorf("Place(%q) error = %v, expected %v", tt.animal, err, tt.want)
			}
		})
	}
	if s.BlocksUsed() != 1 {
		t.Errorf("BlocksUsed() = %d after rejected placements, expected 1", s.BlocksUsed())
	}
}

func TestDragPlacementThroughPointer(t *testing.T) {
	s := newTestSession(t, stageFloor, nil)
	icon, ok := s.PaletteIcon("rabbit")
	if !ok {
		t.Fatal("rabbit has no palette icon")
	}
	zone := s.DropZone()

	s.Step(pointer(core.PointerDown, icon.Center()))
	if d, ok := s.Drag(); !ok || d.AnimalID != "rabbit" {
		t.Fatalf("Drag() = %+v, %v, expected rabbit", d, ok)
	}

	// Rotation cycles a quarter turn per press and closes after four.
	for _, want := range []int{90, 180, 270, 0} {
		s.Step(action(core.ActionRotate))
		if d, _ := s.Drag(); d.Rotation != want {
			t.Errorf("Rotation = %d, expected %d", d.Rotation, want)
		}
	}

	// Release outside the zone cancels without side effects.
	res := s.Step(pointer(core.PointerUp, core.V(zone.X-10, zone.Y+10)))
	if _, ok := s.Drag(); ok {
		t.Error("drag should be cancelled")
	}
	if s.BlocksUsed() != 0 || s.Remaining("rabbit") != 1 || len(res.Cues) != 0 {
		t.Errorf("cancelled drop changed state: used %d, remaining %d, cues %v",
			s.BlocksUsed(), s.Remaining("rabbit"), res.Cues)
	}

	s.Step(pointer(core.PointerDown, icon.Center()))
	s.Step(pointer(core.PointerMove, zone.Center()))
	if d, _ := s.Drag(); d.Pos != zone.Center() {
		t.Errorf("drag position = %v, expected %v", d.Pos, zone.Center())
	}
	if f := s.Snapshot(); f.Drag == nil || !f.Drag.Valid || len(f.Drag.Cells) != 2 {
		t.Errorf("Snapshot().Drag = %+v, expected a valid two-cell preview", f.Drag)
	}

	res = s.Step(pointer(core.PointerUp, zone.Center()))
	if !hasCue(res.Cues, audio.CuePlace) {
		t.Errorf("Cues = %v, expected %q", res.Cues, audio.CuePlace)
	}
	if s.BlocksUsed() != 1 || s.Remaining("rabbit") != 0 {
		t.Errorf("after drop: used %d, remaining %d, expected 1 and 0", s.BlocksUsed(), s.Remaining("rabbit"))
	}

	// A spent icon cannot be dragged again.
	s.Step(pointer(core.PointerDown, icon.Center()))
	if _, ok := s.Drag(); ok {
		t.Error("spent animal should not start a drag")
	}
}

func TestSecondaryClickCancelsDrag(t *testing.T) {
	s := newTestSession(t, stageFloor, nil)
	icon, _ := s.PaletteIcon("rabbit")

	s.Step(pointer(core.PointerDown, icon.Center()))
	if _, ok := s.Drag(); !ok {
		t.Fatal("Drag() ok = false, expected a candidate")
	}

	in := core.NewInputFrame()
	in.AddPointer(core.PointerDown, s.DropZone().Center(), core.ButtonSecondary)
	res := s.Step(in)
	if _, ok := s.Drag(); ok {
		t.Error("secondary click should cancel the drag")
	}
	if s.BlocksUsed() != 0 || s.Remaining("rabbit") != 1 || len(res.Cues) != 0 {
		t.Errorf("cancel changed state: used %d, remaining %d, cues %v",
			s.BlocksUsed(), s.Remaining("rabbit"), res.Cues)
	}

	// The restart button ignores secondary clicks.
	s.Step(pointer(core.PointerDown, icon.Center()))
	in = core.NewInputFrame()
	in.AddPointer(core.PointerDown, core.V(30, 30), core.ButtonSecondary)
	if res := s.Step(in); hasCue(res.Cues, audio.CueClick) {
		t.Error("secondary click on the restart button should not restart")
	}
}

func TestPaletteLayout(t *testing.T) {
	s := newTestSession(t, stageFloor, nil)
	f := s.Snapshot()

	if len(f.Palette) != 3 {
		t.Fatalf("palette size = %d, expected 3", len(f.Palette))
	}
	// Slot i is centred at (140 + 160*i, 720 - 120 + 30).
	for i, slot := range f.Palette {
		c := slot.Icon.Center()
		want := core.V(140+160*float64(i), 630)
		if c != want {
			t.Errorf("slot %d centre = %v, expected %v", i, c, want)
		}
	}
	// The plank is 5x1: icon 60 wide, 12 tall.
	if ic := f.Palette[2].Icon; ic.W != 60 || ic.H != 12 {
		t.Errorf("plank icon = %vx%v, expected 60x12", ic.W, ic.H)
	}
	if f.DropZone != (core.Box{X: 300, Y: 30, W: 680, H: 130}) {
		t.Errorf("DropZone = %+v", f.DropZone)
	}
}

func TestPlayerRespawnsAfterFalling(t *testing.T) {
	s := newTestSession(t, stagePit, nil)

	respawned := false
	for i := 0; i < 180 && !respawned; i++ {
		res := s.Step(idle())
		respawned = hasCue(res.Cues, audio.CueError)
	}
	if !respawned {
		t.Fatalf("player never respawned, at %v", s.PlayerPosition())
	}
	if p := s.PlayerPosition(); p.Y > 300 {
		t.Errorf("player y after respawn = %v, expected near the start", p.Y)
	}
	if s.State() != StatePlaying {
		t.Errorf("State() = %v, expected playing", s.State())
	}
}

func TestJumpCue(t *testing.T) {
	s := newTestSession(t, stageFloor, nil)
	for i := 0; i < 120; i++ {
		s.Step(idle())
	}

	s.Step(idle()) // Ground contact is read at the start of the next step.
	res := s.Step(action(core.ActionJump))
	if !hasCue(res.Cues, audio.CueJump) {
		t.Errorf("Cues = %v, expected %q", res.Cues, audio.CueJump)
	}
}

func TestExits(t *testing.T) {
	tests := []struct {
		name   string
		action core.Action
		exit   Exit
	}{
		{"back", core.ActionBack, ExitStageSelect},
		{"quit", core.ActionQuit, ExitQuit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, stageFloor, nil)
			res := s.Step(action(tt.action))
			if res.State != StateAborted || res.Exit != tt.exit {
				t.Errorf("Step() = (%v, %v), expected (%v, %v)", res.State, res.Exit, StateAborted, tt.exit)
			}
			if s.world != nil {
				t.Error("world should be closed on exit")
			}
			if err := s.Place("rabbit", s.DropZone().Center(), 0); !errors.Is(err, ErrNotPlaying) {
				t.Errorf("Place() after exit error = %v, expected ErrNotPlaying", err)
			}
			if res := s.Step(idle()); res.State != StateAborted {
				t.Errorf("Step() after exit state = %v, expected aborted", res.State)
			}
		})
	}
}

func TestRestartResetsCounters(t *testing.T) {
	s := newTestSession(t, stageFloor, nil)
	if err := s.Place("plank", s.DropZone().Center(), 0); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 30; i++ {
		s.Step(idle())
	}

	res := s.Step(pointer(core.PointerDown, core.V(30, 30)))
	if !hasCue(res.Cues, audio.CueClick) {
		t.Errorf("Cues = %v, expected %q", res.Cues, audio.CueClick)
	}
	if s.BlocksUsed() != 0 || s.BlockCount() != 0 || s.Remaining("plank") != 1 {
		t.Errorf("after restart: used %d, blocks %d, remaining %d", s.BlocksUsed(), s.BlockCount(), s.Remaining("plank"))
	}
	if s.Elapsed() > time.Second/30 {
		t.Errorf("Elapsed() = %v, expected it to restart", s.Elapsed())
	}
	if err := s.Place("plank", s.DropZone().Center(), 0); err != nil {
		t.Errorf("Place() after restart error = %v", err)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	s := newTestSession(t, stagePit, nil)
	s.Step(idle())

	s.Step(action(core.ActionPause))
	if !s.Paused() {
		t.Fatal("Paused() = false, expected true")
	}
	before, elapsed := s.PlayerPosition(), s.Elapsed()
	for i := 0; i < 10; i++ {
		s.Step(holding(core.ActionMoveRight))
	}
	if s.PlayerPosition() != before || s.Elapsed() != elapsed {
		t.Error("paused session should not move or count time")
	}

	s.Step(action(core.ActionPause))
	if s.Paused() {
		t.Error("Paused() = true after second toggle, expected false")
	}
	s.Step(idle())
	if s.PlayerPosition() == before {
		t.Error("unpaused session should move again")
	}
}

func TestSnapshotHUD(t *testing.T) {
	s := newTestSession(t, stageFloor, nil)
	for i := 0; i < 90; i++ {
		s.Step(idle())
	}
	f := s.Snapshot()
	if f.HUD.Time != "1.50s" {
		t.Errorf("HUD.Time = %q, expected %q", f.HUD.Time, "1.50s")
	}
	if f.HUD.Stage != stageFloor || f.HUD.StageName != "Floor" {
		t.Errorf("HUD = %+v", f.HUD)
	}
	if len(f.Terrain) != 1 || f.PlayerRadius != 20 {
		t.Errorf("Snapshot terrain %d, radius %v", len(f.Terrain), f.PlayerRadius)
	}
}

func TestFormatSeconds(t *testing.T) {
	if got := FormatSeconds(12.345); got != "12.35s" && got != "12.34s" {
		t.Errorf("FormatSeconds(12.345) = %q", got)
	}
	if got := FormatSeconds(3); got != "3.00s" {
		t.Errorf("FormatSeconds(3) = %q, expected %q", got, "3.00s")
	}
}
