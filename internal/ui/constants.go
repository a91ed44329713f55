// Package ui holds layout constants and the focus and size bookkeeping
// shared by terminal UI components.
package ui

const (
	// ScrollMargin is the number of rows kept visible around a cursor.
	ScrollMargin = 2

	// BorderHeight is the rows taken by a rounded panel border.
	BorderHeight = 2

	// HeaderHeight is the rows taken by a panel header and its separator.
	HeaderHeight = 2

	// PanelOverhead is what a bordered panel with a header loses to chrome.
	PanelOverhead = BorderHeight + HeaderHeight
)
