package engine

import "github.com/brelied/strum/internal/playlist"

// Cursor movement. All helpers run on the engine goroutine; the mutex is
// taken only around index writes so Snapshot never observes a half-move.

// enterPlaylist resets both in-playlist cursors and repeat counters for the
// playlist e.plIdx points at.
func (e *Engine) enterPlaylist() {
	pl := e.set.Playlists[e.plIdx]
	e.plLeft = pl.Repeat
	e.songIdx = 0
	e.songLeft = pl.Songs[0].Repeat
}

// enterSong resets the song repeat counter for the song the cursors point at.
func (e *Engine) enterSong() {
	e.songLeft = e.set.Playlists[e.plIdx].Songs[e.songIdx].Repeat
}

// skipTrack moves the song cursor through the global song sequence: stepping
// back from the very first song wraps to the last song of the last playlist,
// and forward from the very last wraps to the start.
func (e *Engine) skipTrack(delta int) {
	e.mu.Lock()
	e.songIdx += delta
	switch {
	case e.songIdx < 0:
		e.plIdx--
		if e.plIdx < 0 {
			e.plIdx = len(e.set.Playlists) - 1
		}
		e.songIdx = len(e.set.Playlists[e.plIdx].Songs) - 1
		e.plLeft = e.set.Playlists[e.plIdx].Repeat
	case e.songIdx >= len(e.set.Playlists[e.plIdx].Songs):
		e.plIdx++
		if e.plIdx >= len(e.set.Playlists) {
			e.plIdx = 0
		}
		e.songIdx = 0
		e.plLeft = e.set.Playlists[e.plIdx].Repeat
	}
	e.mu.Unlock()
	e.enterSong()
}

// skipPlaylist moves the playlist cursor with wraparound and rewinds the
// song cursor to the playlist's first song.
func (e *Engine) skipPlaylist(delta int) {
	e.mu.Lock()
	e.plIdx += delta
	if e.plIdx < 0 {
		e.plIdx = len(e.set.Playlists) - 1
	} else if e.plIdx >= len(e.set.Playlists) {
		e.plIdx = 0
	}
	e.songIdx = 0
	e.mu.Unlock()
	e.enterPlaylist()
}

// resetTrack restarts the current song with a fresh repeat counter.
func (e *Engine) resetTrack() {
	e.enterSong()
}

// resetPlaylist restarts the current playlist from its first song.
func (e *Engine) resetPlaylist() {
	e.mu.Lock()
	e.songIdx = 0
	e.mu.Unlock()
	e.enterPlaylist()
}

// advanceAfterFinish applies the repeat/advance policy after a track ends
// naturally (or fails to load). It returns false when the whole run is
// complete.
func (e *Engine) advanceAfterFinish() bool {
	// Song-level repeats first: replay the same song.
	if playlist.CanRepeat(e.songLeft) {
		e.songLeft = playlist.DecRepeat(e.songLeft)
		return true
	}

	pl := e.set.Playlists[e.plIdx]

	e.mu.Lock()
	e.songIdx++
	inPlaylist := e.songIdx < len(pl.Songs)
	e.mu.Unlock()

	if inPlaylist {
		e.enterSong()
		return true
	}

	// Ran off the end of the playlist: playlist-level repeats restart it.
	if playlist.CanRepeat(e.plLeft) {
		left := playlist.DecRepeat(e.plLeft)
		e.mu.Lock()
		e.songIdx = 0
		e.mu.Unlock()
		e.enterSong()
		e.plLeft = left
		return true
	}

	e.mu.Lock()
	e.plIdx++
	inSet := e.plIdx < len(e.set.Playlists)
	if !inSet {
		e.plIdx = 0
	}
	e.songIdx = 0
	e.mu.Unlock()

	if inSet {
		e.enterPlaylist()
		return true
	}

	// Ran off the end of the set: set-level repeats wrap the whole run.
	if playlist.CanRepeat(e.setLeft) {
		e.setLeft = playlist.DecRepeat(e.setLeft)
		e.enterPlaylist()
		return true
	}
	return false
}
