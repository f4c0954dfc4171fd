package engine

import (
	zlog "github.com/rs/zerolog/log"

	"github.com/brelied/strum/internal/control"
)

// applyResult tells playTrack how to proceed after a command.
type applyResult int

const (
	applyNone   applyResult = iota // keep playing the current track
	applyReload                    // cursors changed, load whatever they point at
	applyQuit                      // terminal
)

// drainCommands applies every pending command. Quit returns immediately;
// otherwise the result reports whether any command moved the cursors.
func (e *Engine) drainCommands() applyResult {
	res := applyNone
	for {
		cmd, ok := e.cmds.Poll()
		if !ok {
			return res
		}
		switch e.apply(cmd) {
		case applyQuit:
			return applyQuit
		case applyReload:
			res = applyReload
		case applyNone:
		}
	}
}

// apply executes one control command against the engine state. Commands
// that change the cursors stop the sink themselves and return applyReload.
func (e *Engine) apply(cmd control.Command) applyResult {
	zlog.Debug().Stringer("command", cmd).Msg("applying command")

	switch cmd {
	case control.TogglePause:
		e.togglePause()

	case control.SkipTrackForward:
		e.sink.Stop()
		e.skipTrack(1)
		return applyReload

	case control.SkipTrackBackward:
		e.sink.Stop()
		e.skipTrack(-1)
		return applyReload

	case control.ResetTrack:
		e.sink.Stop()
		e.resetTrack()
		return applyReload

	case control.SkipPlaylistForward:
		e.sink.Stop()
		e.skipPlaylist(1)
		return applyReload

	case control.SkipPlaylistBackward:
		e.sink.Stop()
		e.skipPlaylist(-1)
		return applyReload

	case control.ResetPlaylist:
		e.sink.Stop()
		e.resetPlaylist()
		return applyReload

	case control.VolumeUp:
		e.setVolume(e.volume + e.cfg.VolumeStep)

	case control.VolumeDown:
		e.setVolume(e.volume - e.cfg.VolumeStep)

	case control.ToggleMute:
		e.toggleMute()

	case control.ResetVolume:
		e.setVolume(1.0)

	case control.Quit:
		return applyQuit
	}
	return applyNone
}

func (e *Engine) togglePause() {
	switch e.state {
	case Playing:
		e.sink.Pause()
		e.setState(Paused)
	case Paused:
		e.sink.Resume()
		e.setState(Playing)
	case Stopped:
	}
}

// setVolume applies an explicit volume level. Explicit changes while muted
// unmute first so the adjustment is audible.
func (e *Engine) setVolume(level float64) {
	level = clampVolume(level)

	e.mu.Lock()
	e.volume = level
	e.muted = false
	e.preMute = 0
	e.mu.Unlock()

	e.sink.SetVolume(level)
	e.publishVolume(VolumeChange{Volume: level})
}

// toggleMute swaps the volume with the saved pre-mute level (0 before the
// first mute), so muting twice restores the exact previous volume.
func (e *Engine) toggleMute() {
	e.mu.Lock()
	e.volume, e.preMute = e.preMute, e.volume
	e.muted = !e.muted
	level := e.volume
	muted := e.muted
	e.mu.Unlock()

	e.sink.SetVolume(level)
	e.publishVolume(VolumeChange{Volume: level, Muted: muted})
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
