package paramform

import (
	"io/fs"

	"github.com/goliatone/go-paramform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in panel templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// PanelAssetsFS exposes the bundled panel stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(paramform.PanelAssetsFS()),
//	  ),
//	)
func PanelAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
