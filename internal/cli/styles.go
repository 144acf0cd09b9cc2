package cli

import (
	"io"

	"github.com/bushkit/bush/internal/branding"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	SubtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	leafStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	groupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	gapStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// newLogger returns the run logger. Node loggers derive from it with
// WithPrefix.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: branding.CLIName()})
	styles := log.DefaultStyles()
	styles.Prefix = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	logger.SetStyles(styles)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
