package engine

// State represents the playback state.
//
// Valid transitions:
//   - Stopped → Playing (first track loads)
//   - Playing → Paused  (TogglePause)
//   - Paused  → Playing (TogglePause)
//   - Playing/Paused → Stopped (Quit or natural completion; terminal)
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
