// Package shows renders the show inventory for terminal output.
package shows

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dvrsweep/internal/domain"
)

// Render returns a styled listing of every show group with its recording
// count. Groups are expected in the order domain.GroupByShow produces
// (sorted by title).
func Render(groups []domain.ShowGroup) string {
	s := newStyles()

	lines := []string{
		s.title.Render("DVR Recordings"),
		s.header.Render(fmt.Sprintf("shows: %d", len(groups))),
	}

	if len(groups) == 0 {
		lines = append(lines, s.empty.Render("No recordings on the device."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, group := range groups {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.show.Render(group.Title),
			" ",
			s.count.Render(fmt.Sprintf("%d recording(s)", group.Count())),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
