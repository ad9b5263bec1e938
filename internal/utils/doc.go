// Package utils exposes the ambient plumbing shared by gitsweep commands:
// the Viper-backed ConfigurationLoader, the zap LoggerFactory, the command
// context accessor, and a flushing writer for console reports.
package utils
