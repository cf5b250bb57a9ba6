// Package render provides markdown rendering utilities for terminal output.
package render

import (
	"github.com/charmbracelet/glamour"
)

// Options configures the markdown renderer behavior.
type Options struct {
	// Width defines the maximum output width (default: 80)
	Width int

	// Style defines the theme: "dark", "light", or path to JSON file
	Style string

	// EnableEmoji converts :emoji: to unicode characters
	EnableEmoji bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:       80,
		Style:       "dark",
		EnableEmoji: true,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// Markdown renders markdown content for terminal display.
func Markdown(content string, opts Options) (string, error) {
	glamourOpts := []glamour.TermRendererOption{
		glamour.WithWordWrap(opts.Width),
	}

	if opts.Style == "dark" || opts.Style == "light" {
		glamourOpts = append(glamourOpts, glamour.WithStandardStyle(opts.Style))
	} else if opts.Style != "" {
		glamourOpts = append(glamourOpts, glamour.WithStylePath(opts.Style))
	} else {
		glamourOpts = append(glamourOpts, glamour.WithAutoStyle())
	}

	if opts.EnableEmoji {
		glamourOpts = append(glamourOpts, glamour.WithEmoji())
	}

	renderer, err := glamour.NewTermRenderer(glamourOpts...)
	if err != nil {
		return "", err
	}

	return renderer.Render(content)
}

// MarkdownWithWidth is a convenience function for rendering with specific width.
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}
