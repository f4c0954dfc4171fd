package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/brelied/strum/internal/engine"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "❙❙"
	minBarWidth = 10
)

var (
	barStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	songStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0c0c0")).Bold(true)
	playlistStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555"))

	progressFilled = lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa"))
	progressEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("#585858"))
)

func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(renderBar(m.snap, width))
	b.WriteString("\n")
	if m.lastErr != "" {
		b.WriteString(errorStyle.Render(truncate(m.lastErr, width-2)))
		b.WriteString("\n")
	}
	if m.showHelp {
		m.help.ShowAll = true
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func renderBar(snap engine.Snapshot, width int) string {
	innerWidth := max(width-6, 0)

	status := playSymbol
	if snap.State == engine.Paused {
		status = pauseSymbol
	}

	position := fmt.Sprintf("[%d/%d] ", snap.SongIndex+1, snap.SongCount)
	track := playlistStyle.Render(snap.Playlist) + metaStyle.Render(" / ") + songStyle.Render(snap.Song)
	trackWidth := lipgloss.Width(snap.Playlist) + 3 + lipgloss.Width(snap.Song)

	timeStr := fmt.Sprintf("%s / %s", formatDuration(snap.Position), formatDuration(snap.Duration))
	volStr := formatVolume(snap.Volume, snap.Muted)

	separator := "   "
	fixed := lipgloss.Width(status) + 2 + len(position) + len(timeStr) + len(volStr) + 3*len(separator)

	barWidth := innerWidth - fixed - trackWidth
	if barWidth < minBarWidth {
		// Drop the track text before shrinking the progress bar away.
		maxTrack := max(innerWidth-fixed-minBarWidth, 0)
		plain := truncate(snap.Playlist+" / "+snap.Song, maxTrack)
		track = songStyle.Render(plain)
		trackWidth = lipgloss.Width(plain)
		barWidth = max(innerWidth-fixed-trackWidth, minBarWidth)
	}

	var ratio float64
	if snap.Duration > 0 {
		ratio = float64(snap.Position) / float64(snap.Duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)
	bar := progressFilled.Render(strings.Repeat("━", filled)) +
		progressEmpty.Render(strings.Repeat("─", barWidth-filled))

	var content strings.Builder
	content.WriteString(track)
	content.WriteString(separator)
	content.WriteString(metaStyle.Render(position))
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(bar)
	content.WriteString(separator)
	content.WriteString(metaStyle.Render(timeStr))
	content.WriteString(separator)
	content.WriteString(metaStyle.Render(volStr))

	return barStyle.Padding(0, 2).Width(width - 2).Render(content.String())
}

// formatVolume renders "vol 80%" or "muted" while the volume is swapped out.
func formatVolume(volume float64, muted bool) string {
	if muted {
		return "muted"
	}
	return fmt.Sprintf("vol %3d%%", int(volume*100+0.5))
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	if maxWidth == 1 {
		return "…"
	}
	if len(runes) > maxWidth-1 {
		runes = runes[:maxWidth-1]
	}
	return string(runes) + "…"
}
