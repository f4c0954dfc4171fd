//go:build linux

package mpris

import (
	"os"
	"path/filepath"
)

var coverStems = []string{"cover", "folder", "album", "front"}
var coverExts = []string{".jpg", ".png", ".jpeg"}

// findCoverArt looks for album art next to the track file. Returns the path
// to the art file, or empty string if none exists.
func findCoverArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, stem := range coverStems {
		for _, ext := range coverExts {
			path := filepath.Join(dir, stem+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}
