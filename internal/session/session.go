// Package session runs one stage: it owns the physics world, steps the
// simulation once per tick in a fixed order, handles block placement and
// decides when the stage is cleared.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/animal-bridge/internal/block"
	"github.com/vovakirdan/animal-bridge/internal/catalog"
	"github.com/vovakirdan/animal-bridge/internal/config"
	"github.com/vovakirdan/animal-bridge/internal/core"
	"github.com/vovakirdan/animal-bridge/internal/entity"
	"github.com/vovakirdan/animal-bridge/internal/physics"
	"github.com/vovakirdan/animal-bridge/internal/predation"
	"github.com/vovakirdan/animal-bridge/internal/storage"
)

var (
	// ErrAnimalUsed is returned when placing an animal whose use is spent.
	ErrAnimalUsed = errors.New("session: animal already used")
	// ErrOutsideDropZone is returned when placing outside the drop zone.
	ErrOutsideDropZone = errors.New("session: position outside drop zone")
	// ErrNotPlaying is returned for actions on a finished session.
	ErrNotPlaying = errors.New("session: not playing")
)

// State is the session lifecycle state.
type State int

const (
	StatePlaying State = iota
	StateCleared
	StateAborted
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateCleared:
		return "cleared"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Exit tells the caller where to go after an aborted session.
type Exit int

const (
	ExitNone Exit = iota
	ExitStageSelect
	ExitQuit
)

func (e Exit) String() string {
	switch e {
	case ExitNone:
		return "none"
	case ExitStageSelect:
		return "stage_select"
	case ExitQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Recorder persists a ranking entry on stage clear.
// storage.Store satisfies it.
type Recorder interface {
	AddEntry(stage int, e storage.RankingEntry) error
}

// Options configures a session.
type Options struct {
	Catalog    *catalog.Catalog
	Stage      catalog.Stage
	Config     config.GameConfig
	Viewport   core.ViewportConfig // Display size; only used when physics scales with it
	TickRate   int                 // Frames per second; defaults to 60
	Clock      core.Clock          // Nil means a tick clock advanced by Step
	PlayerName string
	Recorder   Recorder // Nil disables persistence
	Logger     *log.Logger
}

// ClearResult describes a finished stage.
type ClearResult struct {
	Stage          int
	BlocksUsed     int
	Eaten          int
	ElapsedSeconds float64
}

// DragCandidate is an animal being dragged from the palette.
type DragCandidate struct {
	AnimalID string
	Rotation int
	Pos      core.Vec
}

// Session is one play-through of a stage. It is not safe for concurrent use.
type Session struct {
	opts   Options
	cfg    config.GameConfig
	logger *log.Logger

	width, height float64
	layout        layout
	engine        predation.Engine
	flag          entity.Flag

	world  *physics.World
	player *entity.Player
	blocks []*entity.AnimalBlock

	clock     core.Clock
	tickClock *core.TickClock // Set when the session owns the clock
	start     time.Duration
	pausedAt  time.Duration
	pausedFor time.Duration

	drag       *DragCandidate
	blocksUsed int
	eaten      int
	state      State
	paused     bool
	cleared    *ClearResult
}

// New builds the stage world and returns a session ready to step.
func New(opts Options) (*Session, error) {
	if opts.Catalog == nil {
		return nil, errors.New("session: catalog is required")
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Viewport.BaseWidth == 0 || opts.Viewport.BaseHeight == 0 {
		opts.Viewport = core.DesignViewport()
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	animals := make([]catalog.Animal, 0, len(opts.Stage.Animals))
	for _, id := range opts.Stage.Animals {
		a, ok := opts.Catalog.Animal(id)
		if !ok {
			return nil, fmt.Errorf("session: stage %d: %w %q", opts.Stage.ID, catalog.ErrUnknownAnimal, id)
		}
		animals = append(animals, a)
	}

	cfg := opts.Config
	width, height := float64(opts.Viewport.BaseWidth), float64(opts.Viewport.BaseHeight)
	s := &Session{
		opts:   opts,
		cfg:    cfg,
		logger: opts.Logger,
		width:  width,
		height: height,
		layout: newLayout(animals, cfg.Layout, width, height),
		engine: predation.Engine{
			EatingRange:   cfg.Predation.EatingRange,
			DecayDuration: cfg.Predation.DecayDuration(),
			BlockDeathY:   height + cfg.Bounds.BlockDeathMargin,
			HazardFloor:   opts.Stage.HazardFloor,
			HazardY:       opts.Stage.HazardY,
		},
		flag:  entity.NewFlag(opts.Stage.Goal),
		clock: opts.Clock,
	}
	if s.clock == nil {
		s.tickClock = core.NewTickClock(opts.TickRate)
		s.clock = s.tickClock
	}

	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

// build creates a fresh world and resets every counter.
func (s *Session) build() error {
	scale := 1.0
	if s.cfg.Physics.ScaleWithDisplay {
		scale = s.opts.Viewport.VerticalRatio()
	}

	world := physics.NewWorld(s.cfg.Physics.Gravity * scale)
	_, err := physics.BuildLevel(world, s.opts.Stage.Terrain, physics.LevelParams{
		Width:      s.width,
		Height:     s.height,
		Elasticity: s.cfg.Physics.TerrainElasticity,
		Friction:   s.cfg.Physics.TerrainFriction,
	})
	if err != nil {
		world.Close()
		return fmt.Errorf("session: stage %d: %w", s.opts.Stage.ID, err)
	}

	pc := s.cfg.Player
	player, err := entity.NewPlayer(world, entity.PlayerParams{
		Start:         core.V(pc.StartX, pc.StartY),
		Radius:        pc.Radius,
		Mass:          pc.Mass,
		Elasticity:    pc.Elasticity,
		Friction:      pc.Friction,
		CustomGravity: pc.CustomGravity,
		JumpImpulse:   pc.JumpImpulse,
		GroundNormal:  pc.GroundNormal,
		ForceScale:    scale,
	})
	if err != nil {
		world.Close()
		return fmt.Errorf("session: stage %d: %w", s.opts.Stage.ID, err)
	}

	s.world = world
	s.player = player
	s.blocks = nil
	s.drag = nil
	s.blocksUsed = 0
	s.eaten = 0
	s.state = StatePlaying
	s.paused = false
	s.cleared = nil
	s.pausedFor = 0
	for i := range s.layout.palette {
		s.layout.palette[i].Remaining = 1
	}
	s.start = s.clock.Now()
	return nil
}

// Restart discards the world and starts the stage over.
func (s *Session) Restart() error {
	s.closeWorld()
	if err := s.build(); err != nil {
		s.state = StateAborted
		return err
	}
	s.logger.Debug("stage restarted", "stage", s.opts.Stage.ID)
	return nil
}

// Close releases the physics world. The session can no longer step.
func (s *Session) Close() {
	s.closeWorld()
	if s.state == StatePlaying {
		s.state = StateAborted
	}
}

func (s *Session) closeWorld() {
	if s.world != nil {
		s.world.Close()
		s.world = nil
	}
	s.blocks = nil
	s.drag = nil
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Stage returns the stage definition.
func (s *Session) Stage() catalog.Stage {
	return s.opts.Stage
}

// Paused reports whether the help overlay froze the simulation.
func (s *Session) Paused() bool {
	return s.paused
}

// BlocksUsed returns how many blocks were placed.
func (s *Session) BlocksUsed() int {
	return s.blocksUsed
}

// Eaten returns how many blocks were eaten.
func (s *Session) Eaten() int {
	return s.eaten
}

// BlockCount returns the blocks alive or fading.
func (s *Session) BlockCount() int {
	return len(s.blocks)
}

// Cleared returns the clear result once the stage is cleared.
func (s *Session) Cleared() *ClearResult {
	return s.cleared
}

// Drag returns the current drag candidate, if any.
func (s *Session) Drag() (DragCandidate, bool) {
	if s.drag == nil {
		return DragCandidate{}, false
	}
	return *s.drag, true
}

// Remaining returns the uses left for an animal of this stage.
func (s *Session) Remaining(animalID string) int {
	for _, slot := range s.layout.palette {
		if slot.AnimalID == animalID {
			return slot.Remaining
		}
	}
	return 0
}

// PlayerPosition returns the ball center.
func (s *Session) PlayerPosition() core.Vec {
	if s.world == nil {
		return core.Vec{}
	}
	return s.player.Position(s.world)
}

// DropZone returns the placement rectangle.
func (s *Session) DropZone() core.Box {
	return s.layout.dropZone
}

// PaletteIcon returns the icon rectangle of an animal.
func (s *Session) PaletteIcon(animalID string) (core.Box, bool) {
	for _, slot := range s.layout.palette {
		if slot.AnimalID == animalID {
			return slot.Icon, true
		}
	}
	return core.Box{}, false
}

// Elapsed returns play time since the stage started, excluding pauses.
func (s *Session) Elapsed() time.Duration {
	now := s.clock.Now()
	if s.paused {
		now = s.pausedAt
	}
	return now - s.start - s.pausedFor
}

func (s *Session) deathLine() float64 {
	if s.opts.Stage.HazardFloor {
		return s.opts.Stage.HazardY
	}
	return s.height + s.cfg.Bounds.PlayerDeathMargin
}

func (s *Session) blockParams() block.Params {
	return block.Params{
		CellSize:   s.cfg.Blocks.CellSize,
		CellMass:   s.cfg.Blocks.CellMass,
		Elasticity: s.cfg.Blocks.Elasticity,
		Friction:   s.cfg.Blocks.Friction,
	}
}
