package testutil

// lineData holds everything needed to write one outline line.
type lineData struct {
	bullet bool
	depth  int
	text   string
	marker byte
	tabs   bool
}

// LineOption configures one line.
type LineOption func(*lineData)

// WithMarker uses '-', '*' or '+' instead of '-'.
func WithMarker(m byte) LineOption {
	return func(l *lineData) { l.marker = m }
}

// WithTabs indents with one tab per level instead of two spaces.
func WithTabs() LineOption {
	return func(l *lineData) { l.tabs = true }
}
