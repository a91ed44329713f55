package nowplaying

import (
	"strings"

	"github.com/llehouerou/aurex/internal/ui/playerbar"
	"github.com/llehouerou/aurex/internal/ui/render"
	"github.com/llehouerou/aurex/internal/ui/styles"
)

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(playerbar.Render(playerbar.NewState(m.snap, m.position), m.width))
	b.WriteString("\n")
	if q := m.queue.View(); q != "" {
		b.WriteString(q)
		b.WriteString("\n")
	}
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine() string {
	if m.searching {
		return m.input.View()
	}
	s := styles.T().S()
	text := render.Truncate(m.status, m.width)
	if m.isError {
		return s.Error.Render(text)
	}
	return s.Muted.Render(text)
}
