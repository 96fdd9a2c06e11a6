package session

import (
	"github.com/vovakirdan/animal-bridge/internal/audio"
	"github.com/vovakirdan/animal-bridge/internal/core"
	"github.com/vovakirdan/animal-bridge/internal/storage"
)

// StepResult reports what one tick did.
type StepResult struct {
	State   State
	Exit    Exit
	Cleared *ClearResult // Set on the tick the stage is cleared
	Err     error        // Placement or persistence failure, non-fatal
	Cues    []audio.Cue
}

// Step advances the session by one frame. The order is fixed: session
// actions, pointer events, player control, the death check, the physics
// substeps, the block lifecycle and finally the goal check.
func (s *Session) Step(in core.InputFrame) StepResult {
	var res StepResult
	if s.state != StatePlaying {
		res.State = s.state
		return res
	}

	switch {
	case in.Has(core.ActionQuit):
		return s.abort(ExitQuit)
	case in.Has(core.ActionBack):
		res = s.abort(ExitStageSelect)
		res.Cues = append(res.Cues, audio.CueClick)
		return res
	}

	if in.Has(core.ActionPause) {
		s.togglePause()
	}

	if in.Has(core.ActionRestart) || s.restartClicked(in) {
		res.Cues = append(res.Cues, audio.CueClick)
		if err := s.Restart(); err != nil {
			res.Err = err
			res.State = s.state
			return res
		}
	}

	if s.paused {
		res.State = s.state
		return res
	}

	s.handlePointer(in, &res)
	if in.Has(core.ActionRotate) {
		s.RotateDrag()
	}

	s.player.Update(s.world)
	vx := 0.0
	if in.IsHeld(core.ActionMoveLeft) {
		vx -= s.cfg.Player.MoveSpeed
	}
	if in.IsHeld(core.ActionMoveRight) {
		vx += s.cfg.Player.MoveSpeed
	}
	s.player.SetHorizontalVelocity(s.world, vx)
	if in.Has(core.ActionJump) && s.player.Jump(s.world) {
		res.Cues = append(res.Cues, audio.CueJump)
	}

	if s.player.IsDead(s.world, s.deathLine()) {
		s.player.Respawn(s.world)
		res.Cues = append(res.Cues, audio.CueError)
		s.logger.Debug("player respawned", "stage", s.opts.Stage.ID)
	}

	s.world.StepFrame(s.opts.TickRate, s.cfg.Physics.Substeps)
	if s.tickClock != nil {
		s.tickClock.Advance()
	}

	if s.runLifecycle() > 0 {
		res.Cues = append(res.Cues, audio.CueDestroy)
	}

	if s.flag.Reached(s.player.Position(s.world)) {
		s.clear(&res)
	}

	res.State = s.state
	return res
}

// runLifecycle applies predation and bounds and returns how many blocks
// started dying.
func (s *Session) runLifecycle() int {
	blocks, rep := s.engine.Run(s.world, s.blocks, s.clock.Now())
	s.blocks = blocks
	s.eaten += rep.Eaten
	if rep.Eaten > 0 || rep.Fallen > 0 {
		s.logger.Debug("blocks lost", "eaten", rep.Eaten, "fallen", rep.Fallen)
	}
	return rep.Eaten + rep.Fallen
}

func (s *Session) handlePointer(in core.InputFrame, res *StepResult) {
	for _, ev := range in.Pointer {
		switch ev.Kind {
		case core.PointerDown:
			if ev.Button == core.ButtonSecondary {
				s.CancelDrag()
			} else {
				s.BeginDrag(ev.Pos)
			}
		case core.PointerMove:
			s.MoveDrag(ev.Pos)
		case core.PointerUp:
			placed, err := s.Drop(ev.Pos)
			switch {
			case err != nil:
				res.Err = err
				res.Cues = append(res.Cues, audio.CueError)
			case placed:
				res.Cues = append(res.Cues, audio.CuePlace)
			}
		}
	}
}

func (s *Session) restartClicked(in core.InputFrame) bool {
	for _, ev := range in.Pointer {
		if ev.Kind == core.PointerDown && ev.Button != core.ButtonSecondary && s.layout.restart.Contains(ev.Pos) {
			return true
		}
	}
	return false
}

func (s *Session) togglePause() {
	now := s.clock.Now()
	if s.paused {
		s.pausedFor += now - s.pausedAt
		s.paused = false
		return
	}
	s.pausedAt = now
	s.paused = true
}

func (s *Session) abort(exit Exit) StepResult {
	s.closeWorld()
	s.state = StateAborted
	s.logger.Debug("stage left", "stage", s.opts.Stage.ID, "exit", exit)
	return StepResult{State: s.state, Exit: exit}
}

func (s *Session) clear(res *StepResult) {
	result := &ClearResult{
		Stage:          s.opts.Stage.ID,
		BlocksUsed:     s.blocksUsed,
		Eaten:          s.eaten,
		ElapsedSeconds: s.Elapsed().Seconds(),
	}
	s.cleared = result
	s.state = StateCleared
	s.drag = nil
	res.Cleared = result
	res.Cues = append(res.Cues, audio.CueGameOver)

	s.logger.Info("stage cleared",
		"stage", result.Stage,
		"blocks", result.BlocksUsed,
		"eaten", result.Eaten,
		"time", FormatSeconds(result.ElapsedSeconds),
	)

	if s.opts.Recorder == nil {
		return
	}
	entry := storage.RankingEntry{
		Name:   s.opts.PlayerName,
		Blocks: result.BlocksUsed,
		Time:   result.ElapsedSeconds,
		Eaten:  result.Eaten,
	}
	if err := s.opts.Recorder.AddEntry(result.Stage, entry); err != nil {
		s.logger.Warn("failed to record ranking", "stage", result.Stage, "err", err)
		res.Err = err
	}
}
