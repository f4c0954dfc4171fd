// Package app wires the player together: configuration, playlists, audio
// output, the playback engine and either the interactive UI or the headless
// wait loop.
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	zlog "github.com/rs/zerolog/log"

	"github.com/brelied/strum/internal/audio"
	"github.com/brelied/strum/internal/config"
	"github.com/brelied/strum/internal/control"
	"github.com/brelied/strum/internal/engine"
	"github.com/brelied/strum/internal/logger"
	"github.com/brelied/strum/internal/mpris"
	"github.com/brelied/strum/internal/notify"
	"github.com/brelied/strum/internal/playlist"
	"github.com/brelied/strum/internal/state"
	"github.com/brelied/strum/internal/stderr"
	"github.com/brelied/strum/internal/ui"
)

// Options are the command line choices for one run.
type Options struct {
	NoShuffle     bool
	Flatten       bool
	RepeatForever bool
	RepeatTracks  bool
	Headless      bool
	Verbose       bool
	Files         []string
}

// Run plays the given playlists to completion. It returns once the whole set
// has finished, the user quit, or startup failed.
func Run(opts Options) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	headless := opts.Headless || !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd())

	level := "info"
	if opts.Verbose {
		level = "debug"
	}
	if err := logger.Init(logger.Config{Level: level, ToFile: !headless}); err != nil {
		return errors.Wrap(err, "initializing logger")
	}

	set, err := buildSet(opts, cfg)
	if err != nil {
		return err
	}

	engCfg := engine.DefaultConfig()
	engCfg.PollInterval = time.Duration(cfg.PollInterval()) * time.Millisecond
	engCfg.VolumeStep = cfg.VolumeStep()
	engCfg.InitialVolume = cfg.VolumeDefault()

	// Saved volume from the previous session wins over the config default.
	store, err := state.Open()
	if err != nil {
		zlog.Warn().Err(err).Msg("state database unavailable, volume will not persist")
		store = nil
	}
	if store != nil && cfg.RestoreVolume() {
		if vs, err := store.GetVolume(); err == nil {
			engCfg.InitialVolume = vs.Volume
			engCfg.InitialMuted = vs.Muted
		}
	}

	cmds := control.NewChannel()
	eng := engine.New(set, audio.New(), cmds, engCfg)

	if cfg.NotificationsEnabled() && !headless {
		go notifyOnTrackChange(eng)
	}
	if store != nil {
		go persistVolume(eng, store)
		defer store.Close()
	}

	if cfg.MprisEnabled() {
		if adapter, err := mpris.New(eng, cmds); err == nil {
			defer adapter.Close()
		} else {
			zlog.Warn().Err(err).Msg("mpris unavailable")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engineDone := make(chan error, 1)
	go func() { engineDone <- eng.Run(ctx) }()

	if headless {
		return <-engineDone
	}

	// ALSA prints warnings straight to fd 2, capture them so they do not
	// tear up the display. Captured lines land in the log file instead.
	if err := stderr.Start(); err == nil {
		defer stderr.Stop()
		go func() {
			for line := range stderr.Lines {
				zlog.Debug().Str("source", "stderr").Msg(line)
			}
		}()
	}

	program := tea.NewProgram(ui.New(eng, cmds))
	if _, err := program.Run(); err != nil {
		// The terminal refused raw mode, keep playing without controls.
		zlog.Warn().Err(err).Msg("terminal unavailable, continuing headless")
		return <-engineDone
	}

	// The UI exits when the engine shuts down, but cover the path where
	// bubbletea quit first.
	cmds.Push(control.Quit)
	return <-engineDone
}

// buildSet loads the playlists and applies the command line transforms.
func buildSet(opts Options, cfg *config.Config) (*playlist.Set, error) {
	set, err := playlist.Load(opts.Files, cfg.ShuffleEnabled() && !opts.NoShuffle)
	if err != nil {
		return nil, err
	}
	if opts.Flatten {
		set = set.Flatten()
	}
	if opts.RepeatForever {
		set.Repeat = -1
	}
	if opts.RepeatTracks {
		set.RepeatAllTracks()
	}
	return set, nil
}

// notifyOnTrackChange mirrors track changes into desktop notifications,
// replacing the previous notification so skips do not stack popups.
func notifyOnTrackChange(eng *engine.Engine) {
	notifier, err := notify.New()
	if err != nil {
		return
	}

	sub := eng.Subscribe()
	var lastID uint32
	for {
		select {
		case ev, ok := <-sub.TrackChanged:
			if !ok {
				return
			}
			title := ev.Song
			if info, err := audio.ReadTrackInfo(ev.Path); err == nil && info.Title != "" {
				title = info.Title
			}
			if id, err := notifier.Notify(notify.ForTrack(title, ev.Playlist, lastID)); err == nil {
				lastID = id
			}
		case <-sub.Done:
			return
		}
	}
}

// persistVolume saves every volume change so the next session starts where
// this one left off.
func persistVolume(eng *engine.Engine, store *state.Manager) {
	sub := eng.Subscribe()
	for {
		select {
		case ev, ok := <-sub.VolumeChanged:
			if !ok {
				return
			}
			if ev.Muted {
				// Keep the last audible level, restoring a mute as
				// volume zero would lose it.
				continue
			}
			if err := store.SaveVolume(ev.Volume, ev.Muted); err != nil {
				zlog.Debug().Err(err).Msg("saving volume")
			}
		case <-sub.Done:
			return
		}
	}
}
