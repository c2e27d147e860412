package tui

import "github.com/charmbracelet/lipgloss"

var (
	panelStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	selectedPanelStyle = panelStyle.BorderForeground(lipgloss.Color("86"))
	headerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	valueStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	rateStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true)
	activeParamStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)
