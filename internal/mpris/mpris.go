//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/brelied/strum/internal/audio"
	"github.com/brelied/strum/internal/control"
	"github.com/brelied/strum/internal/engine"
)

// Adapter publishes the player on the session bus as an MPRIS media player.
// Desktop controls are translated into playback commands, state queries are
// answered from engine snapshots.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(eng *engine.Engine, cmds *control.Channel) (*Adapter, error) {
	a := &Adapter{}

	root := &rootAdapter{cmds: cmds}
	player := &playerAdapter{eng: eng, cmds: cmds}

	a.server = server.NewServer("strum", root, player)

	// Serve in the background, the bus connection lives until Close.
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	cmds *control.Channel
}

func (r *rootAdapter) Raise() error {
	return nil // no window to raise
}

func (r *rootAdapter) Quit() error {
	r.cmds.Push(control.Quit)
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return true, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "strum", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/ogg", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	eng  *engine.Engine
	cmds *control.Channel
}

func (p *playerAdapter) Next() error {
	p.cmds.Push(control.SkipTrackForward)
	return nil
}

func (p *playerAdapter) Previous() error {
	p.cmds.Push(control.SkipTrackBackward)
	return nil
}

func (p *playerAdapter) Pause() error {
	if p.eng.Snapshot().State == engine.Playing {
		p.cmds.Push(control.TogglePause)
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.cmds.Push(control.TogglePause)
	return nil
}

func (p *playerAdapter) Stop() error {
	p.cmds.Push(control.Quit)
	return nil
}

func (p *playerAdapter) Play() error {
	if p.eng.Snapshot().State == engine.Paused {
		p.cmds.Push(control.TogglePause)
	}
	return nil
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // seeking not supported
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // seeking not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // playlists are fixed at startup
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.eng.Snapshot().State {
	case engine.Playing:
		return types.PlaybackStatusPlaying, nil
	case engine.Paused:
		return types.PlaybackStatusPaused, nil
	case engine.Stopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.eng.Snapshot()
	if snap.Path == "" {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(snap.Path)),
		Length:  types.Microseconds(snap.Duration.Microseconds()),
		Title:   snap.Song,
		Album:   snap.Playlist,
	}

	if info, err := audio.ReadTrackInfo(snap.Path); err == nil {
		if info.Title != "" {
			meta.Title = info.Title
		}
		if info.Artist != "" {
			meta.Artist = []string{info.Artist}
		}
		if info.Album != "" {
			meta.Album = info.Album
		}
	}

	if art := findCoverArt(snap.Path); art != "" {
		meta.ArtUrl = "file://" + art
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.eng.Snapshot().Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	// Only coarse adjustments are available, nudge toward the requested level.
	if v < p.eng.Snapshot().Volume {
		p.cmds.Push(control.VolumeDown)
	} else {
		p.cmds.Push(control.VolumeUp)
	}
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.eng.Snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
