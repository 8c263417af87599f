// Package gamedata provides embedded game data and utilities for loading it.
package gamedata

import (
	"embed"
	"io/fs"
)

// dataFS embeds the data files and dialogue stories at build time.
//
//go:embed *.json *.yaml dialogue/*.lua
var dataFS embed.FS

// DialoguePattern matches the embedded dialogue stories within FS.
const DialoguePattern = "dialogue/*.lua"

// FS returns the embedded filesystem containing game data.
func FS() fs.FS {
	return dataFS
}
