// Package assets embeds the data files shipped with the binary.
package assets

import "embed"

// Scenes holds the scene tables under scenes/.
//
//go:embed scenes/*.yaml
var Scenes embed.FS
