package cli

import (
	"bytes"
	_ "embed"
)

// embeddedConfigurationTypeConstant names the format of default_config.yaml and of
// user configuration files found on the search paths.
const embeddedConfigurationTypeConstant = "yaml"

//go:embed default_config.yaml
var embeddedCleanupDefaults []byte

// EmbeddedDefaultConfiguration returns a private copy of the built-in gitsweep
// defaults together with their format. Configuration files, GITSWEEP_*
// environment variables, and flags all layer on top of these values.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return bytes.Clone(embeddedCleanupDefaults), embeddedConfigurationTypeConstant
}
