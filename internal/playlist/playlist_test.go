package playlist

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_Basic(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "evening.toml", `
name = "Evening"
time = 2

[[song]]
name = "Opener"
file = "/music/opener.mp3"
time = 1

[[song]]
file = "/music/closer.flac"
`)

	set, err := Load([]string{path}, false)
	require.NoError(t, err)
	require.Len(t, set.Playlists, 1)

	pl := set.Playlists[0]
	assert.Equal(t, "Evening", pl.Name)
	assert.Equal(t, 2, pl.Repeat)
	assert.True(t, pl.Vary)
	require.Len(t, pl.Songs, 2)
	assert.Equal(t, Song{Name: "Opener", File: "/music/opener.mp3", Repeat: 1}, pl.Songs[0])
	assert.Equal(t, Song{File: "/music/closer.flac"}, pl.Songs[1])
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mix.toml", `
[[song]]
file = "a.mp3"
`)

	set, err := Load([]string{path}, false)
	require.NoError(t, err)

	pl := set.Playlists[0]
	assert.Equal(t, "mix", pl.Name) // derived from file name
	assert.Equal(t, 0, pl.Repeat)
	assert.Equal(t, 0, pl.Songs[0].Repeat)
	assert.Equal(t, "a", pl.Songs[0].DisplayName())
}

func TestLoad_ParseErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.toml", "[[song]]\nfile = \"a.mp3\"\n")
	bad := writeFile(t, dir, "bad.toml", "this = [is not\nvalid toml")

	_, err := Load([]string{good, bad}, false)
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, bad, perr.File)
}

func TestLoad_MissingFileFieldIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.toml", "[[song]]\nname = \"no path\"\n")

	_, err := Load([]string{path}, false)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
}

func TestLoad_NonTextArgsBecomeOutlierTracks(t *testing.T) {
	dir := t.TempDir()
	list := writeFile(t, dir, "list.toml", "[[song]]\nfile = \"a.mp3\"\n")
	raw := filepath.Join(dir, "raw.mp3")
	require.NoError(t, os.WriteFile(raw, []byte{0xff, 0xfb, 0x90, 0x00, 0x80}, 0o644))

	set, err := Load([]string{list, raw}, false)
	require.NoError(t, err)
	require.Len(t, set.Playlists, 2)
	outlier := set.Playlists[1]
	require.Len(t, outlier.Songs, 1)
	assert.Equal(t, raw, outlier.Songs[0].File)
}

func TestLoad_EmptySetFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.toml", "name = \"nothing\"\n")

	_, err := Load([]string{path}, false)
	assert.Error(t, err)
}

func TestLoad_ShuffleRespectsVary(t *testing.T) {
	contents := "vary = false\n"
	for _, f := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		contents += "[[song]]\nfile = \"" + f + ".mp3\"\n"
	}
	dir := t.TempDir()
	fixed := writeFile(t, dir, "fixed.toml", contents)

	set, err := load([]string{fixed}, true, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	var got []string
	for _, s := range set.Playlists[0].Songs {
		got = append(got, s.File)
	}
	assert.Equal(t, []string{"a.mp3", "b.mp3", "c.mp3", "d.mp3", "e.mp3", "f.mp3", "g.mp3", "h.mp3"}, got)
}

func TestLoad_ShufflePermutes(t *testing.T) {
	contents := ""
	want := make(map[string]bool)
	for _, f := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		contents += "[[song]]\nfile = \"" + f + ".mp3\"\n"
		want[f+".mp3"] = true
	}
	dir := t.TempDir()
	path := writeFile(t, dir, "mix.toml", contents)

	set, err := load([]string{path}, true, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	songs := set.Playlists[0].Songs
	require.Len(t, songs, len(want))
	for _, s := range songs {
		assert.True(t, want[s.File], "unexpected song %s", s.File)
	}
}

func TestRepeatCounters(t *testing.T) {
	assert.False(t, CanRepeat(0))
	assert.True(t, CanRepeat(2))
	assert.True(t, CanRepeat(-1))

	assert.Equal(t, 1, DecRepeat(2))
	assert.Equal(t, 0, DecRepeat(1))
	assert.Equal(t, -1, DecRepeat(-1))
}

func TestFlatten(t *testing.T) {
	set := &Set{Playlists: []*Playlist{
		{Name: "one", Repeat: 1, Vary: true, Songs: []Song{{File: "a.mp3"}}},
		{Name: "two", Repeat: 3, Vary: true, Songs: []Song{{File: "b.mp3"}, {File: "c.mp3"}}},
	}}

	flat := set.Flatten()
	require.Len(t, flat.Playlists, 1)
	pl := flat.Playlists[0]
	assert.Equal(t, "one, with two", pl.Name)
	assert.Equal(t, 3, pl.Repeat) // max wins when no infinite count
	require.Len(t, pl.Songs, 3)
	assert.Equal(t, "a.mp3", pl.Songs[0].File)
	assert.Equal(t, "c.mp3", pl.Songs[2].File)
}

func TestFlatten_InfiniteWins(t *testing.T) {
	set := &Set{Playlists: []*Playlist{
		{Repeat: 5, Vary: true, Songs: []Song{{File: "a.mp3"}}},
		{Repeat: -1, Vary: true, Songs: []Song{{File: "b.mp3"}}},
	}}

	flat := set.Flatten()
	assert.Equal(t, -1, flat.Playlists[0].Repeat)
}

func TestRepeatAllTracks(t *testing.T) {
	set := &Set{Playlists: []*Playlist{
		{Songs: []Song{{File: "a.mp3"}, {File: "b.mp3", Repeat: 2}}},
	}}
	set.RepeatAllTracks()
	for _, s := range set.Playlists[0].Songs {
		assert.Equal(t, -1, s.Repeat)
	}
}
