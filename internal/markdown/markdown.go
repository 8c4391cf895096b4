// Package markdown renders todo descriptions for the terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nhle/todo/internal/model"
)

// Style picks the glamour palette.
type Style int

const (
	StyleASCII Style = iota
	StyleDark
	StyleLight
)

// StyleFor returns the palette for a UI theme.
func StyleFor(t model.Theme) Style {
	if t.IsDark() {
		return StyleDark
	}
	return StyleLight
}

type rendererKey struct {
	width int
	style Style
}

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]*glamour.TermRenderer{}
)

// Render formats markdown for a terminal of the given width. When
// rendering fails the text is word wrapped instead.
func Render(input string, width int, style Style) string {
	value := strings.TrimRight(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if width < 1 {
		width = 1
	}

	if r := renderer(width, style); r != nil {
		if out, err := r.Render(value); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return Wrap(value, width)
}

// Wrap word wraps plain text at width without interpreting markdown.
func Wrap(input string, width int) string {
	if width < 1 {
		width = 1
	}
	return wordwrap.String(input, width)
}

func renderer(width int, style Style) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	key := rendererKey{width: width, style: style}
	if cached, ok := renderers[key]; ok {
		return cached
	}

	var cfg ansi.StyleConfig
	switch style {
	case StyleDark:
		cfg = styles.DarkStyleConfig
	case StyleLight:
		cfg = styles.LightStyleConfig
	default:
		cfg = styles.ASCIIStyleConfig
		cfg.Item.BlockPrefix = "- "
	}

	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(cfg),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[key] = created
	return created
}
