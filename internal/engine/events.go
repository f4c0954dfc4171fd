package engine

// StateChange is emitted when the playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when playback starts on a track, including
// restarts of the same track via repeat counters or ResetTrack.
type TrackChange struct {
	PlaylistIndex int
	SongIndex     int
	Playlist      string
	Song          string
	Path          string
}

// VolumeChange is emitted when volume or mute state changes.
type VolumeChange struct {
	Volume float64
	Muted  bool
}

// ErrorEvent is emitted for non-fatal in-loop failures, such as a track
// that could not be expanded or loaded. The run continues past them.
type ErrorEvent struct {
	Song string
	Path string
	Err  error
}
