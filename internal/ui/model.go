// Package ui renders the interactive status display with bubbletea. It owns
// the terminal while playback runs and turns key presses into commands for
// the playback engine.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brelied/strum/internal/control"
	"github.com/brelied/strum/internal/engine"
)

const refreshInterval = 250 * time.Millisecond

// Model is the bubbletea model for the player display.
type Model struct {
	eng  *engine.Engine
	cmds *control.Channel
	sub  *engine.Subscription
	keys keyMap
	help help.Model

	snap     engine.Snapshot
	lastErr  string
	width    int
	showHelp bool
}

// New builds the UI model. The subscription feeds engine events into the
// update loop so track changes show up without waiting for the next tick.
func New(eng *engine.Engine, cmds *control.Channel) Model {
	return Model{
		eng:  eng,
		cmds: cmds,
		sub:  eng.Subscribe(),
		keys: defaultKeyMap(),
		help: help.New(),
		snap: eng.Snapshot(),
	}
}

type tickMsg time.Time

type engineEventMsg struct{}

type engineErrorMsg struct {
	ev engine.ErrorEvent
}

type engineDoneMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitEvent blocks on the engine subscription until something happens.
func waitEvent(sub *engine.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case _, ok := <-sub.StateChanged:
			if !ok {
				return engineDoneMsg{}
			}
			return engineEventMsg{}
		case _, ok := <-sub.TrackChanged:
			if !ok {
				return engineDoneMsg{}
			}
			return engineEventMsg{}
		case _, ok := <-sub.VolumeChanged:
			if !ok {
				return engineDoneMsg{}
			}
			return engineEventMsg{}
		case ev, ok := <-sub.Error:
			if !ok {
				return engineDoneMsg{}
			}
			return engineErrorMsg{ev: ev}
		case <-sub.Done:
			return engineDoneMsg{}
		}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), waitEvent(m.sub))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if cmd, ok := m.keys.commandFor(msg); ok {
			m.cmds.Push(cmd)
			// The engine confirms Quit by closing the subscription,
			// which arrives as engineDoneMsg.
			return m, nil
		}
		if msg.String() == "?" {
			m.showHelp = !m.showHelp
		}
		return m, nil

	case tickMsg:
		m.snap = m.eng.Snapshot()
		return m, tick()

	case engineEventMsg:
		m.snap = m.eng.Snapshot()
		return m, waitEvent(m.sub)

	case engineErrorMsg:
		m.snap = m.eng.Snapshot()
		m.lastErr = msg.ev.Song + ": " + msg.ev.Err.Error()
		return m, waitEvent(m.sub)

	case engineDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}
