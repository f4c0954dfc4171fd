package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brelied/strum/internal/control"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+j":
		return tea.KeyMsg{Type: tea.KeyCtrlJ}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestCommandFor(t *testing.T) {
	keys := defaultKeyMap()

	tests := []struct {
		key      string
		expected control.Command
	}{
		{key: "k", expected: control.TogglePause},
		{key: " ", expected: control.TogglePause},
		{key: "l", expected: control.SkipTrackForward},
		{key: "j", expected: control.SkipTrackBackward},
		{key: "ctrl+l", expected: control.SkipPlaylistForward},
		{key: "ctrl+j", expected: control.SkipPlaylistBackward},
		{key: "L", expected: control.VolumeUp},
		{key: "J", expected: control.VolumeDown},
		{key: "K", expected: control.ToggleMute},
		{key: "m", expected: control.ToggleMute},
		{key: "0", expected: control.ResetVolume},
		{key: "r", expected: control.ResetTrack},
		{key: "R", expected: control.ResetPlaylist},
		{key: "q", expected: control.Quit},
		{key: "ctrl+k", expected: control.Quit},
		{key: "ctrl+c", expected: control.Quit},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cmd, ok := keys.commandFor(keyMsg(tt.key))
			require.True(t, ok, "no command bound to %q", tt.key)
			assert.Equal(t, tt.expected, cmd)
		})
	}
}

func TestCommandFor_UnboundKey(t *testing.T) {
	keys := defaultKeyMap()

	_, ok := keys.commandFor(keyMsg("x"))
	assert.False(t, ok)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{d: 0, expected: "0:00"},
		{d: 9 * time.Second, expected: "0:09"},
		{d: 61 * time.Second, expected: "1:01"},
		{d: 10*time.Minute + 30*time.Second, expected: "10:30"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.expected {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.expected)
		}
	}
}

func TestFormatVolume(t *testing.T) {
	assert.Equal(t, "vol 100%", formatVolume(1.0, false))
	assert.Equal(t, "vol  50%", formatVolume(0.5, false))
	assert.Equal(t, "muted", formatVolume(0, true))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "long…", truncate("long string", 5))
	assert.Equal(t, "…", truncate("long string", 1))
	assert.Equal(t, "", truncate("anything", 0))
}
