package flags

import "github.com/spf13/cobra"

const (
	// TargetFlagName exposes the shared target branch flag name.
	TargetFlagName = "target"
	// TargetFlagShorthand provides the shorthand for the target branch flag.
	TargetFlagShorthand = "t"
	// TargetFlagUsage describes the shared target branch flag purpose.
	TargetFlagUsage = "Branch that merged status is evaluated against (auto-detects main, then master)"
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Preview deletions without making changes"
	// AssumeYesFlagName exposes the shared assume-yes flag name.
	AssumeYesFlagName = "yes"
	// AssumeYesFlagShorthand provides the shorthand for the assume-yes flag.
	AssumeYesFlagShorthand = "y"
	// AssumeYesFlagUsage describes the shared assume-yes flag purpose.
	AssumeYesFlagUsage = "Skip the selection prompt and select every merged branch"
)

// BranchFlagDefinition captures configuration for branch context flags.
type BranchFlagDefinition struct {
	Name      string
	Shorthand string
	Usage     string
	Enabled   bool
}

// BranchFlagValues stores branch context flag values.
type BranchFlagValues struct {
	Name string
}

// BindBranchFlags attaches a branch name flag to the provided command.
func BindBranchFlags(command *cobra.Command, defaults BranchFlagValues, definition BranchFlagDefinition) *BranchFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled || len(definition.Name) == 0 {
		return &values
	}

	if len(definition.Shorthand) > 0 {
		command.Flags().StringVarP(&values.Name, definition.Name, definition.Shorthand, defaults.Name, definition.Usage)
		return &values
	}

	command.Flags().StringVar(&values.Name, definition.Name, defaults.Name, definition.Usage)
	return &values
}

// BranchFlagChanged reports whether the named branch flag was supplied on the command line.
func BranchFlagChanged(command *cobra.Command, definition BranchFlagDefinition) bool {
	if command == nil || len(definition.Name) == 0 {
		return false
	}
	return command.Flags().Changed(definition.Name)
}
