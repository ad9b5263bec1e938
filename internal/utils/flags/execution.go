// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ExecutionDefaults describes default flag values shared across commands.
type ExecutionDefaults struct {
	DryRun    bool
	AssumeYes bool
}

// ExecutionFlagDefinition captures a single flag's configuration.
type ExecutionFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// ExecutionFlagDefinitions groups execution flag definitions.
type ExecutionFlagDefinitions struct {
	DryRun    ExecutionFlagDefinition
	AssumeYes ExecutionFlagDefinition
}

// ExecutionFlags reports the execution flag values together with whether each was set explicitly.
type ExecutionFlags struct {
	DryRun       bool
	DryRunSet    bool
	AssumeYes    bool
	AssumeYesSet bool
}

// DefaultExecutionFlagDefinitions enables the dry-run and assume-yes flags with their shared names.
func DefaultExecutionFlagDefinitions() ExecutionFlagDefinitions {
	return ExecutionFlagDefinitions{
		DryRun:    ExecutionFlagDefinition{Name: DryRunFlagName, Usage: DryRunFlagUsage, Enabled: true},
		AssumeYes: ExecutionFlagDefinition{Name: AssumeYesFlagName, Usage: AssumeYesFlagUsage, Shorthand: AssumeYesFlagShorthand, Enabled: true},
	}
}

// BindExecutionFlags attaches standardized execution flags to the provided command.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, definitions ExecutionFlagDefinitions) {
	if command == nil {
		return
	}

	flagSet := command.Flags()

	bindBoolFlag(flagSet, definitions.DryRun, defaults.DryRun)
	bindBoolFlag(flagSet, definitions.AssumeYes, defaults.AssumeYes)
}

// ResolveExecutionFlags reads the shared execution flags from the command.
// The boolean result is false when the command defines none of them.
func ResolveExecutionFlags(command *cobra.Command) (ExecutionFlags, bool) {
	if command == nil {
		return ExecutionFlags{}, false
	}

	flagSet := command.Flags()
	dryRunFlag := flagSet.Lookup(DryRunFlagName)
	assumeYesFlag := flagSet.Lookup(AssumeYesFlagName)
	if dryRunFlag == nil && assumeYesFlag == nil {
		return ExecutionFlags{}, false
	}

	resolved := ExecutionFlags{}
	if dryRunFlag != nil {
		resolved.DryRun, _ = flagSet.GetBool(DryRunFlagName)
		resolved.DryRunSet = dryRunFlag.Changed
	}
	if assumeYesFlag != nil {
		resolved.AssumeYes, _ = flagSet.GetBool(AssumeYesFlagName)
		resolved.AssumeYesSet = assumeYesFlag.Changed
	}
	return resolved, true
}

func bindBoolFlag(flagSet *pflag.FlagSet, definition ExecutionFlagDefinition, defaultValue bool) {
	if flagSet == nil {
		return
	}
	if !definition.Enabled {
		return
	}
	if len(definition.Name) == 0 {
		return
	}

	if len(definition.Shorthand) > 0 {
		flagSet.BoolP(definition.Name, definition.Shorthand, defaultValue, definition.Usage)
		return
	}

	flagSet.Bool(definition.Name, defaultValue, definition.Usage)
}
