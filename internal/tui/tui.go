// Package tui implements the optional "sim --watch" live debugger: a
// bubbletea program that renders Machine snapshots as they arrive over a
// channel. It never touches simulated state directly and never affects
// any on-disk artifact; the cycle loop runs exactly as it would without
// a watcher attached.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/saleh2411/ISA-Project/internal/machine"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	haltStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

// Debugger owns the channel a Machine publishes Snapshot values to and
// the bubbletea program that renders them.
type Debugger struct {
	snapshots chan machine.Snapshot
	program   *tea.Program
	done      chan struct{}
}

// New allocates a Debugger with a small buffer; a full buffer means the
// Machine silently drops the snapshot rather than blocking the cycle
// loop on a slow terminal.
func New() *Debugger {
	return &Debugger{
		snapshots: make(chan machine.Snapshot, 8),
		done:      make(chan struct{}),
	}
}

// Feed returns the send side of the snapshot channel, assigned directly
// to Machine.Watch by the caller.
func (d *Debugger) Feed() chan<- machine.Snapshot {
	return d.snapshots
}

// Start runs the bubbletea program in its own goroutine.
func (d *Debugger) Start() {
	d.program = tea.NewProgram(model{ch: d.snapshots})
	go func() {
		d.program.Run()
		close(d.done)
	}()
}

// Stop closes the snapshot channel and waits for the program to exit.
func (d *Debugger) Stop() {
	close(d.snapshots)
	if d.program != nil {
		d.program.Quit()
	}
	<-d.done
}

type snapshotMsg machine.Snapshot
type closedMsg struct{}

// listenCmd blocks on the channel and turns the next value (or its
// closure) into a tea.Msg; model.Update re-issues it after each message
// so the program keeps draining the channel.
func listenCmd(ch <-chan machine.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return snapshotMsg(snap)
	}
}

type model struct {
	ch   <-chan machine.Snapshot
	last machine.Snapshot
	have bool
}

func (m model) Init() tea.Cmd { return listenCmd(m.ch) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case snapshotMsg:
		m.last = machine.Snapshot(msg)
		m.have = true
		return m, listenCmd(m.ch)
	case closedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if !m.have {
		return "waiting for first cycle...\n"
	}

	s := m.last

	var regs strings.Builder
	for i, r := range s.R {
		fmt.Fprintf(&regs, "r%-2d=%08x ", i, uint32(r))
		if i%4 == 3 {
			regs.WriteByte('\n')
		}
	}

	status := headerStyle.Render(fmt.Sprintf("cycle %d  pc=%03x", s.Cycles, s.PC))
	if s.Halted {
		status = haltStyle.Render(status + "  HALTED")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		status,
		regs.String(),
		spew.Sdump(s.IO),
		"(press q to quit)",
	)
}
