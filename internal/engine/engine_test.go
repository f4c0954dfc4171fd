package engine

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brelied/strum/internal/audio"
	"github.com/brelied/strum/internal/control"
	"github.com/brelied/strum/internal/playlist"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PollInterval = time.Millisecond
	return cfg
}

func makeSet(lists ...*playlist.Playlist) *playlist.Set {
	return &playlist.Set{Playlists: lists}
}

func makePlaylist(name string, repeat int, files ...string) *playlist.Playlist {
	pl := &playlist.Playlist{Name: name, Repeat: repeat, Vary: true}
	for _, f := range files {
		pl.Songs = append(pl.Songs, playlist.Song{File: f})
	}
	return pl
}

func runToCompletion(t *testing.T, e *Engine) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not finish")
	}
}

func TestRun_PlaysEverythingInOrder(t *testing.T) {
	sink := audio.NewMock()
	sink.AutoFinish = true
	set := makeSet(
		makePlaylist("one", 0, "/a.mp3", "/b.mp3"),
		makePlaylist("two", 0, "/c.mp3", "/d.mp3"),
	)
	e := New(set, sink, control.NewChannel(), testConfig())

	runToCompletion(t, e)

	assert.Equal(t, []string{"/a.mp3", "/b.mp3", "/c.mp3", "/d.mp3"}, sink.PlayCalls)
	assert.Equal(t, Stopped, e.Snapshot().State)
}

func TestRun_SongRepeatCount(t *testing.T) {
	sink := audio.NewMock()
	sink.AutoFinish = true
	pl := makePlaylist("one", 0, "/a.mp3", "/b.mp3")
	pl.Songs[0].Repeat = 2 // plays three times in total
	e := New(makeSet(pl), sink, control.NewChannel(), testConfig())

	runToCompletion(t, e)

	assert.Equal(t, []string{"/a.mp3", "/a.mp3", "/a.mp3", "/b.mp3"}, sink.PlayCalls)
}

func TestRun_PlaylistRepeatCount(t *testing.T) {
	sink := audio.NewMock()
	sink.AutoFinish = true
	e := New(makeSet(makePlaylist("one", 1, "/a.mp3", "/b.mp3")), sink, control.NewChannel(), testConfig())

	runToCompletion(t, e)

	assert.Equal(t, []string{"/a.mp3", "/b.mp3", "/a.mp3", "/b.mp3"}, sink.PlayCalls)
}

func TestRun_LoadErrorAdvances(t *testing.T) {
	sink := audio.NewMock()
	sink.AutoFinish = true
	sink.PlayErrs["/bad.mp3"] = errors.New("corrupt header")
	e := New(makeSet(makePlaylist("one", 0, "/a.mp3", "/bad.mp3", "/c.mp3")), sink, control.NewChannel(), testConfig())
	sub := e.Subscribe()

	runToCompletion(t, e)

	assert.Equal(t, []string{"/a.mp3", "/bad.mp3", "/c.mp3"}, sink.PlayCalls)

	select {
	case ev := <-sub.Error:
		assert.Equal(t, "/bad.mp3", ev.Path)
	default:
		t.Fatal("expected an error event for the unplayable track")
	}
}

func TestRun_QuitInterruptsRepeatingUnplayableTrack(t *testing.T) {
	sink := audio.NewMock()
	sink.PlayErrs["/bad.mp3"] = errors.New("no such device")
	pl := makePlaylist("one", 0, "/bad.mp3")
	pl.Songs[0].Repeat = -1
	cmds := control.NewChannel()
	e := New(makeSet(pl), sink, cmds, testConfig())

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	cmds.Push(control.Quit)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("quit never interrupted the failing track")
	}
	assert.Equal(t, Stopped, e.Snapshot().State)
}

func TestRun_SkipEscapesRepeatingUnplayableTrack(t *testing.T) {
	sink := audio.NewMock()
	sink.AutoFinish = true
	sink.PlayErrs["/bad.mp3"] = errors.New("no such device")
	pl := makePlaylist("one", 0, "/bad.mp3", "/b.mp3")
	pl.Songs[0].Repeat = -1
	cmds := control.NewChannel()
	e := New(makeSet(pl), sink, cmds, testConfig())

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	cmds.Push(control.SkipTrackForward)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("skip never escaped the failing track")
	}
	require.NotEmpty(t, sink.PlayCalls)
	assert.Equal(t, "/b.mp3", sink.PlayCalls[len(sink.PlayCalls)-1])
}

func TestSubscribe_AfterRunIsClosed(t *testing.T) {
	sink := audio.NewMock()
	sink.AutoFinish = true
	e := New(makeSet(makePlaylist("one", 0, "/a.mp3")), sink, control.NewChannel(), testConfig())
	runToCompletion(t, e)

	sub := e.Subscribe()
	select {
	case <-sub.Done:
	default:
		t.Fatal("a subscription created after the run should start closed")
	}
}

func TestRun_QuitIsTerminal(t *testing.T) {
	sink := audio.NewMock()
	cmds := control.NewChannel()
	cmds.Push(control.Quit)
	e := New(makeSet(makePlaylist("one", 0, "/a.mp3")), sink, cmds, testConfig())

	runToCompletion(t, e)

	assert.Equal(t, []string{"/a.mp3"}, sink.PlayCalls)
	assert.GreaterOrEqual(t, sink.StopCount(), 1)
	assert.Equal(t, Stopped, e.Snapshot().State)
}

func TestRun_ContextCancelStops(t *testing.T) {
	sink := audio.NewMock()
	e := New(makeSet(makePlaylist("one", 0, "/a.mp3")), sink, control.NewChannel(), testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop on context cancellation")
	}
	assert.Equal(t, Stopped, e.Snapshot().State)
}

func TestAdvance_InfiniteSongRepeatNeverAdvances(t *testing.T) {
	pl := makePlaylist("one", 0, "/a.mp3", "/b.mp3")
	pl.Songs[0].Repeat = -1
	e := New(makeSet(pl), audio.NewMock(), control.NewChannel(), testConfig())

	for i := 0; i < 50; i++ {
		require.True(t, e.advanceAfterFinish())
		assert.Equal(t, 0, e.songIdx)
	}
}

func TestAdvance_SetRepeatWrapsToStart(t *testing.T) {
	set := makeSet(
		makePlaylist("one", 0, "/a.mp3"),
		makePlaylist("two", 0, "/b.mp3"),
	)
	set.Repeat = -1
	e := New(set, audio.NewMock(), control.NewChannel(), testConfig())

	require.True(t, e.advanceAfterFinish()) // a -> b
	assert.Equal(t, 1, e.plIdx)
	require.True(t, e.advanceAfterFinish()) // b wraps to a
	assert.Equal(t, 0, e.plIdx)
	assert.Equal(t, 0, e.songIdx)
}

func TestAdvance_CompletesWithoutSetRepeat(t *testing.T) {
	set := makeSet(makePlaylist("one", 0, "/a.mp3"))
	e := New(set, audio.NewMock(), control.NewChannel(), testConfig())

	assert.False(t, e.advanceAfterFinish())
}

func TestSkipTrack_GlobalWraparound(t *testing.T) {
	set := makeSet(
		makePlaylist("one", 0, "/a.mp3", "/b.mp3"),
		makePlaylist("two", 0, "/c.mp3", "/d.mp3"),
	)
	e := New(set, audio.NewMock(), control.NewChannel(), testConfig())

	// Backward from the very first song wraps to the very last.
	e.skipTrack(-1)
	assert.Equal(t, 1, e.plIdx)
	assert.Equal(t, 1, e.songIdx)

	// Forward from the very last wraps back to the very first.
	e.skipTrack(1)
	assert.Equal(t, 0, e.plIdx)
	assert.Equal(t, 0, e.songIdx)
}

func TestSkipTrack_CrossesPlaylistBoundary(t *testing.T) {
	set := makeSet(
		makePlaylist("one", 0, "/a.mp3", "/b.mp3"),
		makePlaylist("two", 0, "/c.mp3"),
	)
	e := New(set, audio.NewMock(), control.NewChannel(), testConfig())

	e.skipTrack(1)
	assert.Equal(t, 0, e.plIdx)
	assert.Equal(t, 1, e.songIdx)
	e.skipTrack(1)
	assert.Equal(t, 1, e.plIdx)
	assert.Equal(t, 0, e.songIdx)
}

func TestSkipPlaylist_ForwardTwiceReturnsToStart(t *testing.T) {
	set := makeSet(
		makePlaylist("one", 0, "/a.mp3", "/b.mp3"),
		makePlaylist("two", 0, "/c.mp3", "/d.mp3"),
	)
	e := New(set, audio.NewMock(), control.NewChannel(), testConfig())
	e.skipTrack(1) // move off song 0 first

	e.apply(control.SkipPlaylistForward)
	assert.Equal(t, 1, e.plIdx)
	assert.Equal(t, 0, e.songIdx)

	e.apply(control.SkipPlaylistForward)
	assert.Equal(t, 0, e.plIdx)
	assert.Equal(t, 0, e.songIdx)
}

func TestApply_VolumeStepAndClamp(t *testing.T) {
	sink := audio.NewMock()
	cfg := testConfig()
	cfg.InitialVolume = 0.95
	e := New(makeSet(makePlaylist("one", 0, "/a.mp3")), sink, control.NewChannel(), cfg)

	e.apply(control.VolumeUp)
	assert.Equal(t, 1.0, e.Snapshot().Volume)
	e.apply(control.VolumeUp)
	assert.Equal(t, 1.0, e.Snapshot().Volume)

	for i := 0; i < 30; i++ {
		e.apply(control.VolumeDown)
	}
	assert.Equal(t, 0.0, e.Snapshot().Volume)

	e.apply(control.ResetVolume)
	assert.Equal(t, 1.0, e.Snapshot().Volume)
	assert.Equal(t, 1.0, sink.Volume())
}

func TestApply_MuteToggleRestoresExactVolume(t *testing.T) {
	sink := audio.NewMock()
	cfg := testConfig()
	cfg.InitialVolume = 0.7
	e := New(makeSet(makePlaylist("one", 0, "/a.mp3")), sink, control.NewChannel(), cfg)

	e.apply(control.ToggleMute)
	snap := e.Snapshot()
	assert.True(t, snap.Muted)
	assert.Equal(t, 0.0, snap.Volume)
	assert.Equal(t, 0.0, sink.Volume())

	e.apply(control.ToggleMute)
	snap = e.Snapshot()
	assert.False(t, snap.Muted)
	assert.Equal(t, 0.7, snap.Volume)
	assert.Equal(t, 0.7, sink.Volume())
}

func TestApply_TogglePause(t *testing.T) {
	sink := audio.NewMock()
	e := New(makeSet(makePlaylist("one", 0, "/a.mp3")), sink, control.NewChannel(), testConfig())
	require.NoError(t, sink.Play("/a.mp3"))
	e.state = Playing

	e.apply(control.TogglePause)
	assert.Equal(t, Paused, e.Snapshot().State)
	assert.True(t, sink.Paused())

	e.apply(control.TogglePause)
	assert.Equal(t, Playing, e.Snapshot().State)
	assert.False(t, sink.Paused())
}

func TestApply_ResetTrackRestoresRepeatCounter(t *testing.T) {
	pl := makePlaylist("one", 0, "/a.mp3", "/b.mp3")
	pl.Songs[0].Repeat = 2
	e := New(makeSet(pl), audio.NewMock(), control.NewChannel(), testConfig())

	require.True(t, e.advanceAfterFinish()) // consumes one repeat
	assert.Equal(t, 1, e.songLeft)

	e.apply(control.ResetTrack)
	assert.Equal(t, 2, e.songLeft)
	assert.Equal(t, 0, e.songIdx)
}

func TestSnapshot(t *testing.T) {
	set := makeSet(
		makePlaylist("morning", 0, "/a.mp3", "/b.mp3"),
		makePlaylist("evening", 0, "/c.mp3"),
	)
	e := New(set, audio.NewMock(), control.NewChannel(), testConfig())

	snap := e.Snapshot()
	assert.Equal(t, Stopped, snap.State)
	assert.Equal(t, "morning", snap.Playlist)
	assert.Equal(t, "a", snap.Song)
	assert.Equal(t, 2, snap.PlaylistCount)
	assert.Equal(t, 2, snap.SongCount)
	assert.Equal(t, 1.0, snap.Volume)
}

func TestRun_InitialMutedStartsSilent(t *testing.T) {
	sink := audio.NewMock()
	sink.AutoFinish = true
	cfg := testConfig()
	cfg.InitialVolume = 0.6
	cfg.InitialMuted = true
	e := New(makeSet(makePlaylist("one", 0, "/a.mp3")), sink, control.NewChannel(), cfg)

	snap := e.Snapshot()
	assert.True(t, snap.Muted)
	assert.Equal(t, 0.0, snap.Volume)

	e.apply(control.ToggleMute)
	assert.Equal(t, 0.6, e.Snapshot().Volume)
}
