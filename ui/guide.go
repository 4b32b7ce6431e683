package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// usageGuide is the how-to text shown before any data is loaded.
const usageGuide = `## How to use this app

1. Upload an Excel or CSV file, or load the example data
2. Pick the plot type (line, scatter, bar or area)
3. Choose the x-axis, typically a date column
4. Select one or more numeric y-axis variables
5. Leave the animation column on *progressive frames* to watch the data
   build up row by row, or pick an existing column to step through its values
6. Press play

**Animation controls:** the play button starts the animation, the slider
scrubs through frames, and hovering shows point details.`

// renderGuide converts the markdown guide to embeddable HTML once at
// startup.
func renderGuide() template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(usageGuide), p, renderer))
}
