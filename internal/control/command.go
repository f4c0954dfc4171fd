// Package control carries commands from input producers (keyboard, MPRIS,
// signals) to the playback engine. Producers never block and never touch
// playback state directly; the engine is the only consumer.
package control

// Command is a single playback control instruction.
type Command int

const (
	TogglePause Command = iota
	SkipTrackForward
	SkipTrackBackward
	ResetTrack
	SkipPlaylistForward
	SkipPlaylistBackward
	ResetPlaylist
	VolumeUp
	VolumeDown
	ToggleMute
	ResetVolume
	Quit
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case TogglePause:
		return "TogglePause"
	case SkipTrackForward:
		return "SkipTrackForward"
	case SkipTrackBackward:
		return "SkipTrackBackward"
	case ResetTrack:
		return "ResetTrack"
	case SkipPlaylistForward:
		return "SkipPlaylistForward"
	case SkipPlaylistBackward:
		return "SkipPlaylistBackward"
	case ResetPlaylist:
		return "ResetPlaylist"
	case VolumeUp:
		return "VolumeUp"
	case VolumeDown:
		return "VolumeDown"
	case ToggleMute:
		return "ToggleMute"
	case ResetVolume:
		return "ResetVolume"
	case Quit:
		return "Quit"
	default:
		return "Unknown"
	}
}
