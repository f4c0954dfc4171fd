// Package audio decodes and plays audio files through the default output
// device. It exposes the small surface the playback engine needs: load and
// start a file, pause/resume, volume, and a finished check.
package audio

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ErrUnsupportedFormat is returned for file extensions no decoder handles.
var ErrUnsupportedFormat = errors.New("audio: unsupported format")

// Interface is the sink contract consumed by the playback engine.
// Implementations are not safe for concurrent use; the engine is the only
// caller on its own goroutine.
type Interface interface {
	// Play decodes path and starts playback from the beginning,
	// replacing whatever was playing.
	Play(path string) error
	// Stop halts playback and releases the current track's resources.
	Stop()
	Pause()
	Resume()
	// SetVolume sets the output level, clamped to [0, 1].
	SetVolume(level float64)
	// Finished reports whether the current track has played to its end.
	Finished() bool
	Position() time.Duration
	Duration() time.Duration
}

// Verify implementations at compile time.
var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Mock)(nil)
)
