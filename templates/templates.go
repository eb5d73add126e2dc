package templates

import "embed"

// FS holds the dashboard pages. layout.html wraps every other page.
//
//go:embed *.html
var FS embed.FS
