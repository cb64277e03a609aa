package assets

import (
	_ "embed"
)

//go:embed specgen.toml
var defaultConfig []byte

// GetDefaultConfig returns the embedded default specgen.toml
func GetDefaultConfig() []byte {
	return defaultConfig
}
