package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

const listLevelIndent = 2

// createRenderer creates a glamour renderer with a static style.
// A static style keeps glamour from querying the terminal, whose replies would end up in the input.
func createRenderer(width int) *glamour.TermRenderer {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}

	return renderer
}

func markdownStyle() ansi.StyleConfig { //nolint:funlen // pure struct literal definition
	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			Margin: uintPtr(0),
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr("203"),
				Bold:  boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "# "}},
		H2: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## "}},
		H3: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "### "}},
		Paragraph: ansi.StyleBlock{
			Margin: uintPtr(0),
		},
		List: ansi.StyleList{
			LevelIndent: listLevelIndent,
		},
		Item:        ansi.StylePrimitive{BlockPrefix: "• "},
		Enumeration: ansi.StylePrimitive{BlockPrefix: ". "},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr("209"),
			},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color: stringPtr("250"),
				},
				Margin: uintPtr(1),
			},
			Chroma: &ansi.Chroma{
				Text:          ansi.StylePrimitive{Color: stringPtr("#d0d0d0")},
				Keyword:       ansi.StylePrimitive{Color: stringPtr("#ff5f5f")},
				Name:          ansi.StylePrimitive{Color: stringPtr("#87d7ff")},
				NameTag:       ansi.StylePrimitive{Color: stringPtr("#87afff")},
				LiteralString: ansi.StylePrimitive{Color: stringPtr("#afd787")},
				LiteralNumber: ansi.StylePrimitive{Color: stringPtr("#d7875f")},
				Comment:       ansi.StylePrimitive{Color: stringPtr("#6c6c6c")},
			},
		},
		Table: ansi.StyleTable{
			CenterSeparator: stringPtr("│"),
			ColumnSeparator: stringPtr("│"),
			RowSeparator:    stringPtr("─"),
		},
		Emph:   ansi.StylePrimitive{Italic: boolPtr(true)},
		Strong: ansi.StylePrimitive{Bold: boolPtr(true)},
		Link: ansi.StylePrimitive{
			Color:     stringPtr("203"),
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: stringPtr("210"),
		},
	}
}

// renderMarkdown renders content with renderer, falling back to the raw text.
func renderMarkdown(renderer *glamour.TermRenderer, content string) string {
	if renderer == nil {
		return content
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(out, "\n")
}

func stringPtr(s string) *string { return &s }
func boolPtr(b bool) *bool       { return &b }
func uintPtr(u uint) *uint       { return &u }
