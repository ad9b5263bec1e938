// Package cli constructs the gitsweep command-line interface. It wires the
// cleanup command from internal/branches as the Cobra root, layers embedded
// defaults, configuration files, and GITSWEEP_* environment variables through
// Viper, and creates the zap logger used for diagnostics.
package cli
