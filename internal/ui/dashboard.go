package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avcontrol/lyngdorf/pkg/lyngdorf"
)

// StatusMsg signals that the device mirror changed and the view should be
// redrawn. The watch command sends one from the receiver's change callback.
type StatusMsg struct{}

// ConnectionLostMsg carries the reason the device link dropped.
type ConnectionLostMsg struct {
	Err error
}

// dashboardKeyMap defines key bindings for the live status dashboard
type dashboardKeyMap struct {
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Mute       key.Binding
	Power      key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.VolumeUp, k.VolumeDown, k.Mute, k.Power, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.VolumeUp, k.VolumeDown, k.Mute},
		{k.Power, k.Quit},
	}
}

func newDashboardKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "volume down"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle mute"),
		),
		Power: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle power"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DashboardModel renders a live device status view. The receiver keeps its
// own state mirror current from pushed status frames, so View reads the
// getters directly and Update only decides when to redraw.
type DashboardModel struct {
	receiver *lyngdorf.Receiver
	keys     dashboardKeyMap
	help     help.Model
	spinner  spinner.Model

	width  int
	height int

	lostErr error
}

// NewDashboard creates a dashboard model for a connected receiver.
func NewDashboard(r *lyngdorf.Receiver) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	width, height := GetTerminalSize()

	return DashboardModel{
		receiver: r,
		keys:     newDashboardKeyMap(),
		help:     help.New(),
		spinner:  s,
		width:    width,
		height:   height,
	}
}

// Init implements tea.Model
func (m DashboardModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width > MaxContentWidth {
			m.width = MaxContentWidth
		}
		m.height = msg.Height
		m.help.Width = m.width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StatusMsg:
		// State lives in the receiver; redraw happens on return.
		return m, nil

	case ConnectionLostMsg:
		m.lostErr = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.VolumeUp):
		_ = m.receiver.VolumeUp()

	case key.Matches(msg, m.keys.VolumeDown):
		_ = m.receiver.VolumeDown()

	case key.Matches(msg, m.keys.Mute):
		muted, _ := m.receiver.Mute()
		_ = m.receiver.SetMute(!muted)

	case key.Matches(msg, m.keys.Power):
		on, _ := m.receiver.Power()
		_ = m.receiver.SetPower(!on)
	}
	return m, nil
}

// View implements tea.Model
func (m DashboardModel) View() string {
	var b strings.Builder

	name, ok := m.receiver.Name()
	if !ok {
		name = m.receiver.Model().String()
	}
	b.WriteString(TitleStyle.Render(name))
	b.WriteString("  ")
	b.WriteString(SubtitleStyle.Render(m.receiver.Host()))
	b.WriteString("\n")

	if m.lostErr != nil {
		b.WriteString(ErrorStyle.Render(FailureMarker + " connection lost: " + m.lostErr.Error()))
		b.WriteString("\n")
	} else if !m.receiver.Connected() {
		b.WriteString(m.spinner.View())
		b.WriteString(SubtitleStyle.Render(" connecting..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.statusRows())
	}

	content := BoxStyle(m.width).Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left,
		content,
		HelpStyle.Render(m.help.View(m.keys)),
	)
}

func (m DashboardModel) statusRows() string {
	desc := m.receiver.Model().Descriptor()
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(LabelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Power", m.onOffValue(m.receiver.Power()))
	row("Volume", m.volumeValue())
	row("Source", plainValue(m.receiver.Source()))

	if in, ok := m.receiver.AudioInput(); ok {
		row("Audio in", ValueStyle.Render(in))
	}
	if desc.HasVideo {
		if in, ok := m.receiver.VideoInput(); ok {
			row("Video in", ValueStyle.Render(in))
		}
		row("Audio mode", plainValue(m.receiver.AudioMode()))
	}
	if st, ok := m.receiver.StreamType(); ok {
		row("Stream", ValueStyle.Render(st))
	}
	if desc.HasRoomPerfect {
		row("RoomPerfect", plainValue(m.receiver.RoomPerfectPosition()))
		row("Voicing", plainValue(m.receiver.Voicing()))
	}
	if info, ok := m.receiver.AudioInfo(); ok {
		row("Audio", ValueStyle.Render(info))
	}
	if info, ok := m.receiver.VideoInfo(); ok {
		row("Video", ValueStyle.Render(info))
	}

	if desc.HasZoneB {
		b.WriteString(SubtitleStyle.Render("Zone B"))
		b.WriteString("\n")
		row("Power", m.onOffValue(m.receiver.ZoneBPower()))
		row("Volume", m.zoneBVolumeValue())
		row("Source", plainValue(m.receiver.ZoneBSource()))
	}

	return b.String()
}

func (m DashboardModel) onOffValue(on, known bool) string {
	if !known {
		return OffStyle.Render(PendingMarker)
	}
	if on {
		return OnStyle.Render("on")
	}
	return OffStyle.Render("off")
}

func (m DashboardModel) volumeValue() string {
	db, ok := m.receiver.Volume()
	if !ok {
		return OffStyle.Render(PendingMarker)
	}
	value := fmt.Sprintf("%.1f dB", db)
	if muted, known := m.receiver.Mute(); known && muted {
		return MutedValueStyle.Render(value + " (muted)")
	}
	return ValueStyle.Render(value)
}

func (m DashboardModel) zoneBVolumeValue() string {
	db, ok := m.receiver.ZoneBVolume()
	if !ok {
		return OffStyle.Render(PendingMarker)
	}
	value := fmt.Sprintf("%.1f dB", db)
	if muted, known := m.receiver.ZoneBMute(); known && muted {
		return MutedValueStyle.Render(value + " (muted)")
	}
	return ValueStyle.Render(value)
}

func plainValue(s string, ok bool) string {
	if !ok {
		return OffStyle.Render(PendingMarker)
	}
	return ValueStyle.Render(s)
}

// RenderStatus renders a one-shot status report for non-interactive use.
// The watch command falls back to this when stdout is not a terminal.
func RenderStatus(r *lyngdorf.Receiver) string {
	m := NewDashboard(r)
	return m.View()
}
