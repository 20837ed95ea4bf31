// Package templates embeds the console's server-rendered pages.
package templates

import (
	"embed"
	"html/template"
)

//go:embed pages/*.html
var pagesFS embed.FS

// Pages holds every page template, addressable by its define name.
var Pages = template.Must(template.New("").ParseFS(pagesFS, "pages/*.html"))
