package playlist

import "strings"

// Flatten merges every playlist of the set into a single one, preserving
// song order. The merged repeat count keeps an infinite count if any list
// has one, otherwise the maximum; this way no list loses rounds it was
// promised. Names are joined for display.
func (s *Set) Flatten() *Set {
	if len(s.Playlists) <= 1 {
		return s
	}

	merged := &Playlist{Vary: true}
	names := make([]string, 0, len(s.Playlists))
	repeat := s.Playlists[0].Repeat
	for _, p := range s.Playlists {
		if p.Name != "" {
			names = append(names, p.Name)
		}
		if repeat >= 0 {
			if p.Repeat < 0 {
				repeat = p.Repeat
			} else if p.Repeat > repeat {
				repeat = p.Repeat
			}
		}
		if !p.Vary {
			merged.Vary = false
		}
		merged.Songs = append(merged.Songs, p.Songs...)
	}
	merged.Name = strings.Join(names, ", with ")
	merged.Repeat = repeat

	return &Set{Playlists: []*Playlist{merged}, Repeat: s.Repeat}
}
