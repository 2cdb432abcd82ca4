package web

import (
	"embed"
	"io/fs"
)

var (
	//go:embed static/*
	embeddedStaticFiles embed.FS

	//go:embed templates/*
	embeddedTemplates embed.FS
)

// siteTemplates returns the page and layout templates rooted at templates/,
// so views are looked up as "site/home" or "layouts/base".
func siteTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// only fails for an invalid directory name
		panic(err)
	}

	return sub
}
