// Package listing renders catalog tables, connection history and the
// in-session tab list.
package listing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/kmdb/kmdb-cli/internal/application"
	"github.com/kmdb/kmdb-cli/internal/domain"
)

const favoriteMark = "★"

func RenderAssets(assets []domain.Asset) (string, error) {
	return render(func(s styles) string { return assetsView(assets, s) })
}

func RenderCredentials(credentials []domain.Credential) (string, error) {
	return render(func(s styles) string { return credentialsView(credentials, s) })
}

func RenderProjects(projects []domain.Project) (string, error) {
	return render(func(s styles) string { return projectsView(projects, s) })
}

// RenderHistory shows entries with their age relative to now.
func RenderHistory(entries []domain.HistoryEntry, now time.Time) (string, error) {
	return render(func(s styles) string { return historyView(entries, now, s) })
}

// SessionList is the tab list shown inside a running multiplexer. It uses
// CRLF line endings for a raw-mode terminal.
func SessionList(infos []application.SessionInfo) string {
	s := newStyles()
	if len(infos) == 0 {
		return s.empty.Render("no open sessions")
	}

	lines := make([]string, 0, len(infos)+1)
	lines = append(lines, s.title.Render(fmt.Sprintf("sessions: %d", len(infos))))
	for i, info := range infos {
		marker := " "
		label := s.detail.Render(info.Label)
		if info.Active {
			marker = s.active.Render(">")
			label = s.active.Render(info.Label)
		}
		lines = append(lines, fmt.Sprintf("%s %d %s %s", marker, i+1, label, stateBadge(info.State, s)))
	}
	return strings.Join(lines, "\r\n")
}

func stateBadge(state domain.SessionState, s styles) string {
	text := "[" + string(state) + "]"
	switch state {
	case domain.SessionConnected:
		return s.connected.Render(text)
	case domain.SessionConnecting:
		return s.pending.Render(text)
	default:
		return s.dead.Render(text)
	}
}

func assetsView(assets []domain.Asset, s styles) string {
	lines := []string{
		s.title.Render("Assets"),
		s.header.Render(fmt.Sprintf("assets: %d", len(assets))),
	}
	if len(assets) == 0 {
		lines = append(lines, s.empty.Render("No assets match."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([][]string, 0, len(assets))
	for _, asset := range assets {
		mark := " "
		if asset.Favorite {
			mark = s.favorite.Render(favoriteMark)
		}
		rows = append(rows, []string{mark, string(asset.ID), s.name.Render(asset.Label()), asset.IP, string(asset.ProjectID)})
	}

	lines = append(lines, table([]string{"", "ID", "NAME", "IP", "PROJECT"}, rows, s)...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func credentialsView(credentials []domain.Credential, s styles) string {
	lines := []string{
		s.title.Render("Credentials"),
		s.header.Render(fmt.Sprintf("credentials: %d", len(credentials))),
	}
	if len(credentials) == 0 {
		lines = append(lines, s.empty.Render("No credentials available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([][]string, 0, len(credentials))
	for _, credential := range credentials {
		scope := "any asset"
		if credential.AssetID != "" {
			scope = "asset " + string(credential.AssetID)
		}
		rows = append(rows, []string{string(credential.ID), s.name.Render(credential.Name), credential.Username, string(credential.AuthType), scope})
	}

	lines = append(lines, table([]string{"ID", "NAME", "USER", "AUTH", "SCOPE"}, rows, s)...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func projectsView(projects []domain.Project, s styles) string {
	lines := []string{
		s.title.Render("Projects"),
		s.header.Render(fmt.Sprintf("projects: %d", len(projects))),
	}
	if len(projects) == 0 {
		lines = append(lines, s.empty.Render("No projects available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([][]string, 0, len(projects))
	for _, project := range projects {
		rows = append(rows, []string{string(project.ID), s.name.Render(project.Name)})
	}

	lines = append(lines, table([]string{"ID", "NAME"}, rows, s)...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func historyView(entries []domain.HistoryEntry, now time.Time, s styles) string {
	lines := []string{
		s.title.Render("Recent connections"),
		s.header.Render(fmt.Sprintf("entries: %d", len(entries))),
	}
	if len(entries) == 0 {
		lines = append(lines, s.empty.Render("No connections yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		identity := entry.Username
		if entry.CredentialID != "" {
			identity = "credential " + string(entry.CredentialID)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			s.name.Render(entry.Asset.Label()),
			identity,
			formatAge(entry.LastUsedAt, now),
			fmt.Sprintf("%d", entry.UseCount),
		})
	}

	lines = append(lines, table([]string{"#", "ASSET", "AS", "LAST USED", "USES"}, rows, s)...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// table pads every column to its widest visible cell.
func table(headers []string, rows [][]string, s styles) []string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = lipgloss.Width(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	lines := make([]string, 0, len(rows)+1)
	headerCells := make([]string, len(headers))
	for i, header := range headers {
		headerCells[i] = s.column.Render(pad(header, widths[i]))
	}
	lines = append(lines, strings.TrimRight(strings.Join(headerCells, "  "), " "))

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = pad(cell, widths[i])
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
	return lines
}

func pad(cell string, width int) string {
	if gap := width - lipgloss.Width(cell); gap > 0 {
		return cell + strings.Repeat(" ", gap)
	}
	return cell
}

func formatAge(at, now time.Time) string {
	if at.IsZero() {
		return "never"
	}
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour") + " ago"
	default:
		return plural(int(math.Floor(elapsed.Hours()/24)), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
