package audio

import (
	"os"

	"github.com/dhowden/tag"
)

// TrackInfo is the tag metadata shown in the status bar and notifications.
type TrackInfo struct {
	Title  string
	Artist string
	Album  string
}

// ReadTrackInfo reads tag metadata from an audio file. Files without
// readable tags return an error; callers fall back to playlist names.
func ReadTrackInfo(path string) (*TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}
	return &TrackInfo{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
	}, nil
}
