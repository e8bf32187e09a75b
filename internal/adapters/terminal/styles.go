package terminal

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kmdb/kmdb-cli/internal/ports"
)

var (
	noticeInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	noticeWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	noticeErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func noticeStyle(level ports.NoticeLevel) lipgloss.Style {
	switch level {
	case ports.NoticeWarning:
		return noticeWarningStyle
	case ports.NoticeError:
		return noticeErrorStyle
	default:
		return noticeInfoStyle
	}
}

// RenderNotice formats an inline banner. Line endings are CRLF because the
// viewport runs in raw mode.
func RenderNotice(level ports.NoticeLevel, text string) string {
	return "\r\n" + noticeStyle(level).Render("[kmdb] "+text) + "\r\n"
}
