package ui

// Base tracks the focus and size of a component. Embed it in a model.
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

func (b Base) IsFocused() bool {
	return b.focused
}

func (b *Base) SetSize(width, height int) {
	b.width = max(width, 0)
	b.height = max(height, 0)
}

func (b Base) Width() int {
	return b.width
}

func (b Base) Height() int {
	return b.height
}

// ListHeight is the height left for rows after overhead.
func (b Base) ListHeight(overhead int) int {
	return max(b.height-overhead, 0)
}
