// Package views embeds the HTML templates of the product forms.
package views

import "embed"

//go:embed *.html
var FS embed.FS
