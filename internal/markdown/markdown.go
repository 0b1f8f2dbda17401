// Package markdown turns post bodies into HTML for clients that display it.
package markdown

import (
	"bytes"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Fenced code blocks are part of CommonMark; hard wraps turn every newline
// into <br>. Raw HTML in the source is omitted because WithUnsafe is not set.
var md = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Render converts text to HTML. It is safe for concurrent use.
func Render(text string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		log.Warn().Err(err).Msg("markdown conversion failed")
		return ""
	}
	return buf.String()
}
