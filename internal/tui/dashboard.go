package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/masa-umich/limewire/internal/bridge"
)

// pollInterval is how often the dashboard re-reads the supervisor's
// snapshot. Cheap enough to poll at this rate; Snapshot only takes a
// mutex.
const pollInterval = 250 * time.Millisecond

// tickMsg triggers the next poll of the supervisor.
type tickMsg time.Time

type keyMap struct {
	Quit key.Binding
}

var defaultKeyMap = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// DashboardModel is a read-only bubbletea model over a bridge supervisor's
// state. It issues no commands to the supervisor; it only displays what
// Snapshot reports.
type DashboardModel struct {
	sup       *bridge.Supervisor
	fcAddress string

	width  int
	height int
}

// NewDashboardModel builds a dashboard over sup for the given FC address
// (shown in the dashboard body).
func NewDashboardModel(sup *bridge.Supervisor, fcAddress string) DashboardModel {
	w, h := TerminalSize()
	return DashboardModel{sup: sup, fcAddress: fcAddress, width: w, height: h}
}

func (m DashboardModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, defaultKeyMap.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		return m, tick()
	}
	return m, nil
}

func (m DashboardModel) View() string {
	snap := m.sup.Snapshot()
	content := m.buildContent(snap)
	return renderContainer(content, "q/esc/ctrl+c quit", m.width, m.height)
}

func (m DashboardModel) buildContent(snap bridge.Snapshot) string {
	stateStyle := ValueStyle.Foreground(stateColor(snap.State.String()))

	lines := []string{
		fmt.Sprintf("%s  %s", LabelStyle.Render("fc address"), ValueStyle.Render(m.fcAddress)),
		fmt.Sprintf("%s  %s", LabelStyle.Render("state"), stateStyle.Render(snap.State.String())),
		fmt.Sprintf("%s  %d / %d", LabelStyle.Render("queue depth"), snap.QueueDepth, snap.QueueCapacity),
		fmt.Sprintf("%s  %s", LabelStyle.Render("reconnects"), ValueStyle.Render(fmt.Sprintf("%d", snap.ReconnectCount))),
	}

	if snap.LastHeartbeatAck.IsZero() {
		lines = append(lines, fmt.Sprintf("%s  %s", LabelStyle.Render("last heartbeat ack"), ValueStyle.Render("none yet")))
	} else {
		lines = append(lines, fmt.Sprintf("%s  %s", LabelStyle.Render("last heartbeat ack"), ValueStyle.Render(snap.LastHeartbeatAck.Format(time.RFC3339))))
	}

	out := ""
	for i, line := range lines {
		if i > 0 {
			out += "\n"
		}
		out += line
	}
	return out
}

// Run starts the dashboard as a full-screen bubbletea program and blocks
// until the operator quits it. It is the caller's responsibility to only
// call Run when stdout IsTerminal; Run itself does not check.
func Run(sup *bridge.Supervisor, fcAddress string) error {
	p := tea.NewProgram(NewDashboardModel(sup, fcAddress), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
