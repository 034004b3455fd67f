package scaffold

import "embed"

//go:embed templates/*.tmpl
var scaffoldFS embed.FS
