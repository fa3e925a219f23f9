// Package tui runs match-3 games in the terminal with Bubble Tea.
// It maps keys and mouse presses to game input, drives the fixed-rate
// tick loop and hosts the menu, scoreboard and SSH session screens.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one game simulation tick.
// Gen identifies the game model whose tick loop sent it.
type TickMsg struct {
	At  time.Time
	Gen uint64
}

var lastGen atomic.Uint64

// nextGen returns a fresh tick loop generation.
func nextGen() uint64 {
	return lastGen.Add(1)
}

// tickCmd schedules the next tick of loop gen at tickRate ticks per second.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
