// Package web holds the embedded browser assets served by the HTTP layer.
package web

import "embed"

//go:embed *.html *.js *.css
var FS embed.FS
