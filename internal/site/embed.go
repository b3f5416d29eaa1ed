package site

import (
	"embed"
	"io/fs"
)

// Templates and assets ship inside the binary so serve and export agree on
// the exact same page.
//
//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Assets is the embedded static tree, rooted so that "css/site.css" is the
// file served at /static/css/site.css.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return sub
}
