// Package markdown renders tutor replies and lesson text for the terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// Style selects the color scheme.
type Style int

const (
	// Dark is the colored scheme used by the full-screen UI.
	Dark Style = iota
	// Plain renders without escape sequences, for pipes and files.
	Plain
)

type key struct {
	style Style
	width int
}

var (
	mu        sync.Mutex
	renderers = map[key]*glamour.TermRenderer{}
)

// Render renders md wrapped to width. Input that fails to render is
// returned unchanged.
func Render(md string, width int, style Style) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	width = max(width, 20)

	mu.Lock()
	defer mu.Unlock()

	r, ok := renderers[key{style, width}]
	if !ok {
		name := styles.DarkStyle
		if style == Plain {
			name = styles.NoTTYStyle
		}
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(name),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		renderers[key{style, width}] = r
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
