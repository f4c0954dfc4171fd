package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brelied/strum/internal/control"
)

// keyMap defines the player key bindings.
type keyMap struct {
	TogglePause  key.Binding
	NextTrack    key.Binding
	PrevTrack    key.Binding
	NextPlaylist key.Binding
	PrevPlaylist key.Binding
	VolumeUp     key.Binding
	VolumeDown   key.Binding
	Mute         key.Binding
	ResetVolume  key.Binding
	ResetTrack   key.Binding
	ResetList    key.Binding
	Quit         key.Binding
	Help         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		TogglePause: key.NewBinding(
			key.WithKeys("k", " "),
			key.WithHelp("k/space", "pause"),
		),
		NextTrack: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "next track"),
		),
		PrevTrack: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "previous track"),
		),
		NextPlaylist: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "next playlist"),
		),
		PrevPlaylist: key.NewBinding(
			key.WithKeys("ctrl+j"),
			key.WithHelp("ctrl+j", "previous playlist"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "volume down"),
		),
		Mute: key.NewBinding(
			key.WithKeys("K", "m"),
			key.WithHelp("K/m", "mute"),
		),
		ResetVolume: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset volume"),
		),
		ResetTrack: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart track"),
		),
		ResetList: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "restart playlist"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+k", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// commandFor translates a key press into a playback command.
func (k keyMap) commandFor(msg tea.KeyMsg) (control.Command, bool) {
	switch {
	case key.Matches(msg, k.TogglePause):
		return control.TogglePause, true
	case key.Matches(msg, k.NextTrack):
		return control.SkipTrackForward, true
	case key.Matches(msg, k.PrevTrack):
		return control.SkipTrackBackward, true
	case key.Matches(msg, k.NextPlaylist):
		return control.SkipPlaylistForward, true
	case key.Matches(msg, k.PrevPlaylist):
		return control.SkipPlaylistBackward, true
	case key.Matches(msg, k.VolumeUp):
		return control.VolumeUp, true
	case key.Matches(msg, k.VolumeDown):
		return control.VolumeDown, true
	case key.Matches(msg, k.Mute):
		return control.ToggleMute, true
	case key.Matches(msg, k.ResetVolume):
		return control.ResetVolume, true
	case key.Matches(msg, k.ResetTrack):
		return control.ResetTrack, true
	case key.Matches(msg, k.ResetList):
		return control.ResetPlaylist, true
	case key.Matches(msg, k.Quit):
		return control.Quit, true
	}
	return 0, false
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TogglePause, k.NextTrack, k.PrevTrack, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TogglePause, k.NextTrack, k.PrevTrack, k.ResetTrack},
		{k.NextPlaylist, k.PrevPlaylist, k.ResetList},
		{k.VolumeUp, k.VolumeDown, k.Mute, k.ResetVolume},
		{k.Quit, k.Help},
	}
}
