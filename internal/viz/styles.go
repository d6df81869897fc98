package viz

import "github.com/charmbracelet/lipgloss"

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	traceStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	runningStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	pausedStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	massStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	targetStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
)
