// Package engine drives playback: it decides what plays next, applies
// control commands, and owns all navigation cursors and volume state.
// Everything here mutates on the single goroutine running Run; other
// goroutines only read snapshots or receive events.
package engine

import (
	"context"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/brelied/strum/internal/audio"
	"github.com/brelied/strum/internal/control"
	"github.com/brelied/strum/internal/pathexpand"
	"github.com/brelied/strum/internal/playlist"
)

// Config tunes the engine.
type Config struct {
	// PollInterval bounds command latency and the finished check.
	PollInterval time.Duration
	// VolumeStep is the increment applied by VolumeUp/VolumeDown.
	VolumeStep float64
	// InitialVolume is the starting level in [0, 1].
	InitialVolume float64
	// InitialMuted starts the run muted, with InitialVolume saved for unmute.
	InitialMuted bool
}

// DefaultConfig returns the stock engine tuning.
func DefaultConfig() Config {
	return Config{
		PollInterval:  100 * time.Millisecond,
		VolumeStep:    0.05,
		InitialVolume: 1.0,
	}
}

// Snapshot is a point-in-time copy of the engine's visible state.
type Snapshot struct {
	State         State
	Volume        float64
	Muted         bool
	PlaylistIndex int
	PlaylistCount int
	SongIndex     int
	SongCount     int
	Playlist      string
	Song          string
	Path          string
	Position      time.Duration
	Duration      time.Duration
}

// Engine is the playback state machine.
type Engine struct {
	set  *playlist.Set
	sink audio.Interface
	cmds *control.Channel
	cfg  Config

	mu       sync.Mutex
	state    State
	volume   float64
	preMute  float64
	muted    bool
	plIdx    int
	songIdx  int
	path     string
	position time.Duration
	duration time.Duration

	// Remaining repeat counters for the current song, current playlist,
	// and the whole set. Reinitialized on entry to each level.
	songLeft int
	plLeft   int
	setLeft  int

	subs   []*Subscription
	subsMu sync.RWMutex
	closed bool

	done chan struct{}
}

// New creates an engine over a non-empty playlist set.
func New(set *playlist.Set, sink audio.Interface, cmds *control.Channel, cfg Config) *Engine {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultConfig().PollInterval
	}
	if cfg.VolumeStep <= 0 {
		cfg.VolumeStep = DefaultConfig().VolumeStep
	}

	e := &Engine{
		set:     set,
		sink:    sink,
		cmds:    cmds,
		cfg:     cfg,
		volume:  clampVolume(cfg.InitialVolume),
		setLeft: set.Repeat,
		done:    make(chan struct{}),
	}
	if cfg.InitialMuted {
		e.preMute = e.volume
		e.volume = 0
		e.muted = true
	}
	e.enterPlaylist()
	return e
}

// Subscribe creates a new event subscription. Subscriptions are closed when
// the run finishes. Subscribing after the run has finished yields an
// already-closed subscription.
func (e *Engine) Subscribe() *Subscription {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	sub := newSubscription()
	if e.closed {
		sub.close()
		return sub
	}
	e.subs = append(e.subs, sub)
	return sub
}

// Snapshot returns a copy of the current state, safe to call from any
// goroutine.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	pl := e.set.Playlists[e.plIdx]
	return Snapshot{
		State:         e.state,
		Volume:        e.volume,
		Muted:         e.muted,
		PlaylistIndex: e.plIdx,
		PlaylistCount: len(e.set.Playlists),
		SongIndex:     e.songIdx,
		SongCount:     len(pl.Songs),
		Playlist:      pl.DisplayName(),
		Song:          pl.Songs[e.songIdx].DisplayName(),
		Path:          e.path,
		Position:      e.position,
		Duration:      e.duration,
	}
}

// Done is closed when Run returns.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// trackOutcome reports how playTrack ended.
type trackOutcome int

const (
	outcomeNext trackOutcome = iota // cursors point at the next track to load
	outcomeDone                     // the whole set played to completion
	outcomeQuit                     // Quit command or context cancellation
)

// Run executes the playback loop until the set completes, a Quit command
// arrives, or ctx is cancelled. It must only be called once.
func (e *Engine) Run(ctx context.Context) error {
	defer e.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		pl := e.set.Playlists[e.plIdx]
		song := pl.Songs[e.songIdx]

		path, err := pathexpand.Expand(song.File)
		if err == nil {
			err = e.sink.Play(path)
		}
		if err != nil {
			// A bad file must not halt the rest of the run: log it and
			// advance as if the track had finished. Commands stay live and
			// the retry is paced, so an infinitely repeating unplayable
			// track can still be quit or skipped past.
			zlog.Warn().Str("song", song.DisplayName()).Err(err).Msg("skipping unplayable track")
			e.publishError(ErrorEvent{Song: song.DisplayName(), Path: path, Err: err})

			switch e.drainCommands() {
			case applyQuit:
				e.setState(Stopped)
				return nil
			case applyReload:
				continue
			case applyNone:
			}

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(e.cfg.PollInterval):
			}

			if !e.advanceAfterFinish() {
				return nil
			}
			continue
		}

		e.startTrack(pl, song, path)

		switch e.playTrack(ctx) {
		case outcomeQuit, outcomeDone:
			return nil
		case outcomeNext:
		}
	}
}

// playTrack polls for commands and track completion while one track plays.
func (e *Engine) playTrack(ctx context.Context) trackOutcome {
	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.sink.Stop()
			e.setState(Stopped)
			return outcomeQuit
		case <-ticker.C:
		}

		switch e.drainCommands() {
		case applyQuit:
			e.sink.Stop()
			e.setState(Stopped)
			return outcomeQuit
		case applyReload:
			return outcomeNext
		case applyNone:
		}

		if e.sink.Finished() {
			if !e.advanceAfterFinish() {
				e.setState(Stopped)
				return outcomeDone
			}
			return outcomeNext
		}

		e.mu.Lock()
		e.position = e.sink.Position()
		e.duration = e.sink.Duration()
		e.mu.Unlock()
	}
}

// startTrack records the new current track and applies volume and state.
func (e *Engine) startTrack(pl *playlist.Playlist, song playlist.Song, path string) {
	e.sink.SetVolume(e.volume)

	e.mu.Lock()
	e.path = path
	e.position = 0
	e.duration = e.sink.Duration()
	prev := e.state
	e.state = Playing
	e.mu.Unlock()

	zlog.Info().Str("playlist", pl.DisplayName()).Str("song", song.DisplayName()).Msg("playing")
	e.publishTrack(TrackChange{
		PlaylistIndex: e.plIdx,
		SongIndex:     e.songIdx,
		Playlist:      pl.DisplayName(),
		Song:          song.DisplayName(),
		Path:          path,
	})
	if prev != Playing {
		e.publishState(StateChange{Previous: prev, Current: Playing})
	}
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	prev := e.state
	e.state = s
	e.mu.Unlock()
	if prev != s {
		e.publishState(StateChange{Previous: prev, Current: s})
	}
}

func (e *Engine) shutdown() {
	e.setState(Stopped)
	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	e.closed = true
	e.subsMu.Unlock()
	close(e.done)
}

func (e *Engine) publishState(ev StateChange) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, sub := range e.subs {
		sub.sendState(ev)
	}
}

func (e *Engine) publishTrack(ev TrackChange) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, sub := range e.subs {
		sub.sendTrack(ev)
	}
}

func (e *Engine) publishVolume(ev VolumeChange) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, sub := range e.subs {
		sub.sendVolume(ev)
	}
}

func (e *Engine) publishError(ev ErrorEvent) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, sub := range e.subs {
		sub.sendError(ev)
	}
}
