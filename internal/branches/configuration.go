package branches

import "strings"

const (
	configurationTargetKeyConstant    = "target"
	configurationDryRunKeyConstant    = "dry_run"
	configurationAssumeYesKeyConstant = "assume_yes"
	configurationKeySeparatorConstant = "."
)

// CommandConfiguration captures configuration values for the cleanup command.
type CommandConfiguration struct {
	Target    string `mapstructure:"target"`
	DryRun    bool   `mapstructure:"dry_run"`
	AssumeYes bool   `mapstructure:"assume_yes"`
}

// DefaultCommandConfiguration provides baseline configuration values for the cleanup command.
// An empty target enables main/master auto-detection.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Target:    "",
		DryRun:    false,
		AssumeYes: false,
	}
}

// DefaultConfigurationValues exposes the defaults as viper keys nested under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefixedKey(prefix, configurationTargetKeyConstant):    defaults.Target,
		prefixedKey(prefix, configurationDryRunKeyConstant):    defaults.DryRun,
		prefixedKey(prefix, configurationAssumeYesKeyConstant): defaults.AssumeYes,
	}
}

// Sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Target = strings.TrimSpace(configuration.Target)
	return sanitized
}

func prefixedKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
