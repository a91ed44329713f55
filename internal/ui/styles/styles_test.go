package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestBlend(t *testing.T) {
	assert.Nil(t, Blend("#000000", "#ffffff", 0))
	assert.Equal(t, []lipgloss.Color{"#000000"}, Blend("#000000", "#ffffff", 1))

	colors := Blend("#000000", "#ffffff", 5)
	assert.Len(t, colors, 5)
	assert.Equal(t, lipgloss.Color("#000000"), colors[0])
	assert.Equal(t, lipgloss.Color("#ffffff"), colors[4])
}

func TestBlend_NonHexKeepsEnds(t *testing.T) {
	colors := Blend("39", "240", 3)
	assert.Equal(t, lipgloss.Color("39"), colors[0])
	assert.Equal(t, lipgloss.Color("240"), colors[2])
	assert.Regexp(t, `^#[0-9a-f]{6}$`, string(colors[1]))
}

func TestApplyGradient_KeepsText(t *testing.T) {
	assert.Empty(t, ApplyGradient("", "#000000", "#ffffff"))
	assert.Equal(t, "━━━━", ansi.Strip(ApplyGradient("━━━━", T().Primary, T().Secondary)))
	assert.Equal(t, "e\u0301!", ansi.Strip(ApplyGradient("e\u0301!", T().Primary, T().Secondary)))
}

func TestThemeStylesCached(t *testing.T) {
	s := T().S()
	assert.Same(t, s, T().S())
}

func TestPanelStyle(t *testing.T) {
	assert.Equal(t, T().BorderFocus, PanelStyle(true).GetBorderTopForeground())
	assert.Equal(t, T().Border, PanelStyle(false).GetBorderTopForeground())
}
