package playlist

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// ParseError reports a playlist file that failed TOML deserialization.
// It is fatal: the whole load aborts, no partial set is returned.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse playlist %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// playlistFile mirrors the TOML document layout. Pointer fields distinguish
// absent from zero so defaults can be applied after decoding.
type playlistFile struct {
	Name *string    `toml:"name"`
	Time *int       `toml:"time"`
	Vary *bool      `toml:"vary"`
	Song []songFile `toml:"song"`
}

type songFile struct {
	Name *string `toml:"name"`
	File string  `toml:"file"`
	Time *int    `toml:"time"`
}

// Load builds a Set from the given file paths. Paths whose contents are not
// valid UTF-8 text are treated as bare audio tracks and collected into a
// trailing outlier playlist; text files must parse as playlists or the whole
// load fails with a *ParseError. When shuffle is set, each playlist that has
// not opted out via vary = false gets a one-time random permutation.
func Load(paths []string, shuffle bool) (*Set, error) {
	return load(paths, shuffle, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func load(paths []string, shuffle bool, rng *rand.Rand) (*Set, error) {
	set := &Set{}
	outliers := &Playlist{Name: "command line", Vary: true}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil || !utf8.Valid(data) {
			// Not a playlist document. Treat the argument as a track.
			outliers.Songs = append(outliers.Songs, Song{File: path})
			continue
		}
		pl, err := decode(path, data)
		if err != nil {
			return nil, err
		}
		if len(pl.Songs) == 0 {
			continue
		}
		set.Playlists = append(set.Playlists, pl)
	}
	if len(outliers.Songs) > 0 {
		set.Playlists = append(set.Playlists, outliers)
	}

	if set.Empty() {
		return nil, errors.New("no songs in any playlist")
	}

	if shuffle {
		for _, p := range set.Playlists {
			if p.Vary {
				p.shuffle(rng)
			}
		}
	}
	return set, nil
}

func decode(path string, data []byte) (*Playlist, error) {
	var pf playlistFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, &ParseError{File: path, Err: err}
	}

	pl := &Playlist{
		Name: nameOrDerived(pf.Name, path),
		Vary: pf.Vary == nil || *pf.Vary,
	}
	if pf.Time != nil {
		pl.Repeat = *pf.Time
	}
	for i, sf := range pf.Song {
		if sf.File == "" {
			return nil, &ParseError{
				File: path,
				Err:  errors.Newf("song %d: missing required field %q", i+1, "file"),
			}
		}
		song := Song{File: sf.File}
		if sf.Name != nil {
			song.Name = *sf.Name
		}
		if sf.Time != nil {
			song.Repeat = *sf.Time
		}
		pl.Songs = append(pl.Songs, song)
	}
	return pl, nil
}

func nameOrDerived(name *string, path string) string {
	if name != nil && *name != "" {
		return *name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// shuffle applies a uniform Fisher-Yates permutation to the song order.
func (p *Playlist) shuffle(rng *rand.Rand) {
	rng.Shuffle(len(p.Songs), func(i, j int) {
		p.Songs[i], p.Songs[j] = p.Songs[j], p.Songs[i]
	})
}
