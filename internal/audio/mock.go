package audio

import "time"

// Mock is a scriptable test double for the engine tests. Not safe for
// concurrent use, mirroring the real player's contract.
type Mock struct {
	PlayCalls  []string
	PlayErrs   map[string]error // per-path load failures
	AutoFinish bool             // every track finishes as soon as it starts

	playing  bool
	paused   bool
	finished bool
	level    float64
	position time.Duration
	duration time.Duration
	stops    int
}

// NewMock creates a mock sink.
func NewMock() *Mock {
	return &Mock{PlayErrs: map[string]error{}, level: 1.0}
}

func (m *Mock) Play(path string) error {
	m.PlayCalls = append(m.PlayCalls, path)
	if err := m.PlayErrs[path]; err != nil {
		return err
	}
	m.playing = true
	m.paused = false
	m.finished = m.AutoFinish
	return nil
}

func (m *Mock) Stop() {
	m.playing = false
	m.paused = false
	m.stops++
}

func (m *Mock) Pause() {
	if m.playing {
		m.paused = true
	}
}

func (m *Mock) Resume() {
	m.paused = false
}

func (m *Mock) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	m.level = level
}

func (m *Mock) Finished() bool          { return m.finished }
func (m *Mock) Position() time.Duration { return m.position }
func (m *Mock) Duration() time.Duration { return m.duration }

// FinishTrack marks the current track as naturally finished.
func (m *Mock) FinishTrack() { m.finished = true }

// Volume returns the last applied level.
func (m *Mock) Volume() float64 { return m.level }

// Paused reports the pause state.
func (m *Mock) Paused() bool { return m.paused }

// StopCount returns how many times Stop was called.
func (m *Mock) StopCount() int { return m.stops }
