package ui

import (
	"io"

	"github.com/fatih/color"

	"github.com/temirov/gitsweep/internal/utils"
)

const (
	searchingTemplateConstant            = "Searching for branches merged into %s...\n"
	targetUnavailableMessageConstant     = "Error: target branch not found or not a git repository."
	nothingToCleanMessageConstant        = "Clean! No merged branches to delete."
	candidatesFoundTemplateConstant      = "Found %d branches to delete:\n"
	selectionCancelledMessageConstant    = "Cancelled. No branches were deleted."
	dryRunDeletionTemplateConstant       = "[Dry-Run] Would delete: %s\n"
	branchDeletedTemplateConstant        = "Deleted: %s\n"
	branchDeletionFailedTemplateConstant = "Error deleting: %s\n"
	branchDeletionReasonTemplateConstant = "Error deleting: %s (%s)\n"
	cleanupFinishedMessageConstant       = "Done!"
)

// ConsoleReporter prints the user-facing progress of a cleanup run with terminal colors.
// Regular progress goes to output; failures go to errorOutput.
type ConsoleReporter struct {
	output        io.Writer
	errorOutput   io.Writer
	statusColor   *color.Color
	emphasisColor *color.Color
	successColor  *color.Color
	warningColor  *color.Color
	errorColor    *color.Color
}

// NewConsoleReporter constructs a reporter writing to the provided streams.
func NewConsoleReporter(output io.Writer, errorOutput io.Writer) *ConsoleReporter {
	if output == nil {
		output = io.Discard
	}
	if errorOutput == nil {
		errorOutput = io.Discard
	}
	return &ConsoleReporter{
		output:        utils.NewFlushingWriter(output),
		errorOutput:   utils.NewFlushingWriter(errorOutput),
		statusColor:   color.New(color.FgCyan),
		emphasisColor: color.New(color.Bold),
		successColor:  color.New(color.FgGreen),
		warningColor:  color.New(color.FgYellow),
		errorColor:    color.New(color.FgRed),
	}
}

// SearchingMergedBranches announces the merged-branch query for target.
func (reporter *ConsoleReporter) SearchingMergedBranches(target string) {
	reporter.statusColor.Fprintf(reporter.output, searchingTemplateConstant, reporter.emphasisColor.Sprint(target))
}

// TargetUnavailable reports that the target could not be queried.
func (reporter *ConsoleReporter) TargetUnavailable() {
	reporter.errorColor.Fprintln(reporter.errorOutput, targetUnavailableMessageConstant)
}

// NothingToClean reports an empty candidate list.
func (reporter *ConsoleReporter) NothingToClean() {
	reporter.successColor.Fprintln(reporter.output, nothingToCleanMessageConstant)
}

// CandidatesFound reports how many branches are offered for deletion.
func (reporter *ConsoleReporter) CandidatesFound(count int) {
	reporter.statusColor.Fprintf(reporter.output, candidatesFoundTemplateConstant, count)
}

// SelectionCancelled reports that nothing was selected.
func (reporter *ConsoleReporter) SelectionCancelled() {
	reporter.warningColor.Fprintln(reporter.output, selectionCancelledMessageConstant)
}

// DryRunDeletion reports a deletion that was skipped because of dry-run mode.
func (reporter *ConsoleReporter) DryRunDeletion(branchName string) {
	reporter.warningColor.Fprintf(reporter.output, dryRunDeletionTemplateConstant, branchName)
}

// BranchDeleted reports a successful deletion.
func (reporter *ConsoleReporter) BranchDeleted(branchName string) {
	reporter.successColor.Fprintf(reporter.output, branchDeletedTemplateConstant, branchName)
}

// BranchDeletionFailed reports a branch git refused to delete, including git's reason when present.
func (reporter *ConsoleReporter) BranchDeletionFailed(branchName string, reason string) {
	if len(reason) == 0 {
		reporter.errorColor.Fprintf(reporter.errorOutput, branchDeletionFailedTemplateConstant, branchName)
		return
	}
	reporter.errorColor.Fprintf(reporter.errorOutput, branchDeletionReasonTemplateConstant, branchName, reason)
}

// CleanupFinished reports the end of a non-dry run.
func (reporter *ConsoleReporter) CleanupFinished() {
	reporter.successColor.Fprintln(reporter.output, cleanupFinishedMessageConstant)
}
