// Package playlist holds the in-memory model of playlists and songs
// loaded from TOML playlist files.
package playlist

import (
	"path/filepath"
	"strings"
)

// Song is one entry of a playlist. File is the raw, unexpanded path as it
// appears in the playlist file. Repeat follows the repeat convention:
// 0 plays once, N > 0 plays N+1 times, negative repeats forever.
type Song struct {
	Name   string
	File   string
	Repeat int
}

// DisplayName returns the song name, falling back to the file's base name.
func (s Song) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	base := filepath.Base(s.File)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Playlist is an ordered sequence of songs with a playlist-level repeat
// count. Vary controls whether the playlist participates in shuffling.
type Playlist struct {
	Name   string
	Songs  []Song
	Repeat int
	Vary   bool
}

// DisplayName returns the playlist name, or "untitled" if it has none.
func (p *Playlist) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return "untitled"
}

// Set is the ordered collection of all playlists for one run. Repeat applies
// to the whole set: negative means the run wraps around forever.
type Set struct {
	Playlists []*Playlist
	Repeat    int
}

// Empty reports whether the set contains no songs at all.
func (s *Set) Empty() bool {
	for _, p := range s.Playlists {
		if len(p.Songs) > 0 {
			return false
		}
	}
	return true
}

// TotalSongs counts songs over all playlists.
func (s *Set) TotalSongs() int {
	n := 0
	for _, p := range s.Playlists {
		n += len(p.Songs)
	}
	return n
}

// RepeatAllTracks marks every song as repeating forever. Used by the -t flag.
func (s *Set) RepeatAllTracks() {
	for _, p := range s.Playlists {
		for i := range p.Songs {
			p.Songs[i].Repeat = -1
		}
	}
}

// CanRepeat reports whether a repeat counter allows another round.
// Counters repeat while non-zero; negative counters never exhaust.
func CanRepeat(counter int) bool {
	return counter != 0
}

// DecRepeat consumes one round from a repeat counter. Negative counters are
// left untouched so they never reach zero.
func DecRepeat(counter int) int {
	if counter > 0 {
		return counter - 1
	}
	return counter
}
