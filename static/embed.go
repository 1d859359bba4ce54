// Package staticfiles embeds the browser assets so the binary is
// self-contained. A disk override exists for development.
package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed css/* js/*
var embedded embed.FS

func EmbeddedFS() fs.FS {
	return embedded
}
