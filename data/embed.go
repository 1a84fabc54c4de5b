package data

import (
	_ "embed"
)

// DefaultsJSON is the compiled-in site content document. It seeds the local
// store on first boot and is the last resort of the read fallback chain.
//
//go:embed defaults.json
var DefaultsJSON []byte
