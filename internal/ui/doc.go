// Package ui provides terminal UI components for the lyngdorf-ctl CLI.
//
// This package uses Bubble Tea and Lipgloss to render terminal output for
// device commands. It has two modes: the interactive dashboard used by the
// watch command, and a plain Printer used by run-once commands like status.
//
// # Dashboard
//
// DashboardModel is a Bubble Tea model that shows a live view of a device's
// state. The receiver keeps its own state mirror current from pushed status
// frames, so the model never polls. The watch command wires the receiver's
// change callback to program.Send:
//
//	r, _ := lyngdorf.NewReceiver(host, model)
//	p := tea.NewProgram(ui.NewDashboard(r))
//	r.OnChange(func() { p.Send(ui.StatusMsg{}) })
//	r.OnConnectionLost(func(err error) { p.Send(ui.ConnectionLostMsg{Err: err}) })
//	_, err := p.Run()
//
// The dashboard also accepts key presses for common adjustments (volume,
// mute, power) and forwards them to the receiver.
//
// # Logging Integration
//
// This package expects logging to be controlled via the LYNGDORF_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly. Set LYNGDORF_LOG_LEVEL to
// "debug", "info", "warn", or "error" to enable logging output.
package ui
