package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	fieldErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Italic(true)
	taglineStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb347")).Italic(true)

	logoStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff8c00")).Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	statCellStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	statValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd166"))

	toastSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#a3be8c")).Padding(0, 1)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff4d0")).Background(lipgloss.Color("#bf616a")).Padding(0, 1)

	tagOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a3be8c"))
	tagOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	logTypeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("147"))

	tableHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("240"))
	tableSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Bold(false)
)
