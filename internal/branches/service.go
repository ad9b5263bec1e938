package branches

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitsweep/internal/execshell"
)

const (
	gitExecutorMissingMessageConstant      = "git executor not configured"
	selectorMissingMessageConstant         = "branch selector not configured"
	vcsUnavailableMessageConstant          = "target branch not found or not a git repository"
	vcsUnavailableTemplateConstant         = "%w: %v"
	mergedListingFailureTemplateConstant   = "failed to list branches merged into %s: %w"
	branchSelectionFailureTemplateConstant = "unable to select branches: %w"
	branchDeletionFailureTemplateConstant  = "failed to delete branch %s: %w"
	defaultTargetBranchConstant            = "main"
	fallbackTargetBranchConstant           = "master"
	gitRevParseSubcommandConstant          = "rev-parse"
	gitVerifyFlagConstant                  = "--verify"
	gitBranchSubcommandConstant            = "branch"
	gitNoColorFlagConstant                 = "--no-color"
	gitMergedFlagConstant                  = "--merged"
	gitDeleteFlagConstant                  = "--delete"
	gitLocaleVariableConstant              = "LC_ALL"
	gitLocaleValueConstant                 = "C"
	currentBranchMarkerConstant            = "*"
	worktreeBranchMarkerConstant           = "+"
	listingLineSeparatorConstant           = "\n"
	targetResolvedMessageConstant          = "target branch resolved"
	candidatesFilteredMessageConstant      = "merged branch candidates filtered"
	branchesSelectedMessageConstant        = "branches selected for deletion"
	branchDeletionRejectedMessageConstant  = "git refused to delete branch"
	logFieldTargetConstant                 = "target"
	logFieldCandidateCountConstant         = "candidate_count"
	logFieldSelectedBranchesConstant       = "selected_branches"
	logFieldBranchConstant                 = "branch"
	logFieldDryRunConstant                 = "dry_run"
	logFieldAssumeYesConstant              = "assume_yes"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrSelectorNotConfigured indicates an interactive run without a branch selector.
var ErrSelectorNotConfigured = errors.New(selectorMissingMessageConstant)

// ErrVcsUnavailable indicates git could not list merged branches, either because
// the target does not exist or because the directory is not a repository.
var ErrVcsUnavailable = errors.New(vcsUnavailableMessageConstant)

// GitExecutor exposes the subset of the shell executor the service relies on.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// BranchSelector asks the user which candidates to delete and returns ascending indices.
type BranchSelector interface {
	SelectBranches(executionContext context.Context, candidates []string) ([]int, error)
}

// Reporter receives the user-facing progress of a cleanup run.
type Reporter interface {
	SearchingMergedBranches(target string)
	TargetUnavailable()
	NothingToClean()
	CandidatesFound(count int)
	SelectionCancelled()
	DryRunDeletion(branchName string)
	BranchDeleted(branchName string)
	BranchDeletionFailed(branchName string, reason string)
	CleanupFinished()
}

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	Logger      *zap.Logger
	GitExecutor GitExecutor
	Selector    BranchSelector
	Reporter    Reporter
}

// CleanupOptions configures a single cleanup run.
type CleanupOptions struct {
	TargetBranch     string
	DryRun           bool
	AssumeYes        bool
	WorkingDirectory string
}

// DeletionOutcome records what happened to one selected branch.
type DeletionOutcome struct {
	BranchName string
	Deleted    bool
	DryRun     bool
	Failure    error
}

// CleanupResult summarizes a cleanup run.
type CleanupResult struct {
	TargetBranch      string
	TargetUnavailable bool
	Candidates        []string
	SelectedBranches  []string
	Outcomes          []DeletionOutcome
}

// Service removes local branches already merged into a target branch.
type Service struct {
	logger   *zap.Logger
	executor GitExecutor
	selector BranchSelector
	reporter Reporter
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = silentReporter{}
	}

	return &Service{
		logger:   logger,
		executor: dependencies.GitExecutor,
		selector: dependencies.Selector,
		reporter: reporter,
	}, nil
}

// Cleanup runs the whole pipeline: resolve the target, list and filter merged
// branches, obtain a selection, and delete the selected branches.
// A missing target or repository is reported and yields a nil error.
func (service *Service) Cleanup(executionContext context.Context, options CleanupOptions) (CleanupResult, error) {
	target := service.ResolveTarget(executionContext, options.TargetBranch, options.WorkingDirectory)
	result := CleanupResult{TargetBranch: target}

	service.logger.Debug(
		targetResolvedMessageConstant,
		zap.String(logFieldTargetConstant, target),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
		zap.Bool(logFieldAssumeYesConstant, options.AssumeYes),
	)
	service.reporter.SearchingMergedBranches(target)

	listing, listingError := service.ListMergedBranches(executionContext, target, options.WorkingDirectory)
	if listingError != nil {
		if errors.Is(listingError, ErrVcsUnavailable) {
			service.reporter.TargetUnavailable()
			result.TargetUnavailable = true
			return result, nil
		}
		return result, listingError
	}

	candidates := FilterCandidates(listing, target)
	result.Candidates = candidates
	service.logger.Debug(candidatesFilteredMessageConstant, zap.Int(logFieldCandidateCountConstant, len(candidates)))

	if len(candidates) == 0 {
		service.reporter.NothingToClean()
		return result, nil
	}

	service.reporter.CandidatesFound(len(candidates))

	selectedBranches, selectionError := service.selectBranches(executionContext, candidates, options.AssumeYes)
	if selectionError != nil {
		return result, selectionError
	}
	result.SelectedBranches = selectedBranches
	service.logger.Debug(branchesSelectedMessageConstant, zap.Strings(logFieldSelectedBranchesConstant, selectedBranches))

	if len(selectedBranches) == 0 {
		service.reporter.SelectionCancelled()
		return result, nil
	}

	outcomes, deletionError := service.DeleteBranches(executionContext, selectedBranches, options)
	result.Outcomes = outcomes
	if deletionError != nil {
		return result, deletionError
	}

	if !options.DryRun {
		service.reporter.CleanupFinished()
	}
	return result, nil
}

// ResolveTarget returns the requested branch when provided, otherwise the first of
// main and master that exists, otherwise main.
func (service *Service) ResolveTarget(executionContext context.Context, requestedTarget string, workingDirectory string) string {
	trimmedTarget := strings.TrimSpace(requestedTarget)
	if len(trimmedTarget) > 0 {
		return trimmedTarget
	}

	for _, candidate := range []string{defaultTargetBranchConstant, fallbackTargetBranchConstant} {
		if service.branchExists(executionContext, candidate, workingDirectory) {
			return candidate
		}
	}
	return defaultTargetBranchConstant
}

// ListMergedBranches returns the raw listing of local branches merged into target.
// A non-zero git exit is reported as ErrVcsUnavailable.
func (service *Service) ListMergedBranches(executionContext context.Context, target string, workingDirectory string) (string, error) {
	result, executionError := service.executor.ExecuteGit(executionContext, gitCommandDetails(workingDirectory, gitBranchSubcommandConstant, gitNoColorFlagConstant, gitMergedFlagConstant, target))
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return "", fmt.Errorf(vcsUnavailableTemplateConstant, ErrVcsUnavailable, commandFailure)
		}
		return "", fmt.Errorf(mergedListingFailureTemplateConstant, target, executionError)
	}
	return result.StandardOutput, nil
}

// DeleteBranches deletes branchNames in order with git's merge-safe delete. Branches git
// refuses to delete are reported and skipped; an error is returned only when git could not run.
func (service *Service) DeleteBranches(executionContext context.Context, branchNames []string, options CleanupOptions) ([]DeletionOutcome, error) {
	outcomes := make([]DeletionOutcome, 0, len(branchNames))

	for _, branchName := range branchNames {
		if options.DryRun {
			service.reporter.DryRunDeletion(branchName)
			outcomes = append(outcomes, DeletionOutcome{BranchName: branchName, DryRun: true})
			continue
		}

		_, deletionError := service.executor.ExecuteGit(executionContext, gitCommandDetails(options.WorkingDirectory, gitBranchSubcommandConstant, gitDeleteFlagConstant, branchName))
		if deletionError != nil {
			var commandFailure execshell.CommandFailedError
			if !errors.As(deletionError, &commandFailure) {
				return outcomes, fmt.Errorf(branchDeletionFailureTemplateConstant, branchName, deletionError)
			}

			service.logger.Debug(branchDeletionRejectedMessageConstant, zap.String(logFieldBranchConstant, branchName), zap.Error(deletionError))
			service.reporter.BranchDeletionFailed(branchName, strings.TrimSpace(commandFailure.Result.StandardError))
			outcomes = append(outcomes, DeletionOutcome{BranchName: branchName, Failure: deletionError})
			continue
		}

		service.reporter.BranchDeleted(branchName)
		outcomes = append(outcomes, DeletionOutcome{BranchName: branchName, Deleted: true})
	}

	return outcomes, nil
}

// FilterCandidates extracts deletable branch names from a `git branch --merged` listing.
// It drops blank lines, the current checkout, branches checked out in other
// worktrees, and the target itself, preserving listing order.
func FilterCandidates(listing string, target string) []string {
	trimmedTarget := strings.TrimSpace(target)
	candidates := make([]string, 0)

	for _, line := range strings.Split(listing, listingLineSeparatorConstant) {
		branchName := strings.TrimSpace(line)
		switch {
		case len(branchName) == 0:
			continue
		case strings.HasPrefix(branchName, currentBranchMarkerConstant):
			continue
		case strings.HasPrefix(branchName, worktreeBranchMarkerConstant):
			continue
		case branchName == trimmedTarget:
			continue
		}
		candidates = append(candidates, branchName)
	}

	return candidates
}

func (service *Service) branchExists(executionContext context.Context, branchName string, workingDirectory string) bool {
	_, probeError := service.executor.ExecuteGit(executionContext, gitCommandDetails(workingDirectory, gitRevParseSubcommandConstant, gitVerifyFlagConstant, branchName))
	return probeError == nil
}

// gitCommandDetails pins git to the C locale so the listing and the stderr shown
// for refused deletions do not depend on the user's language settings.
func gitCommandDetails(workingDirectory string, arguments ...string) execshell.CommandDetails {
	return execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     workingDirectory,
		EnvironmentVariables: map[string]string{gitLocaleVariableConstant: gitLocaleValueConstant},
	}
}

func (service *Service) selectBranches(executionContext context.Context, candidates []string, assumeYes bool) ([]string, error) {
	if assumeYes {
		return append([]string{}, candidates...), nil
	}
	if service.selector == nil {
		return nil, ErrSelectorNotConfigured
	}

	selectedIndices, selectionError := service.selector.SelectBranches(executionContext, append([]string{}, candidates...))
	if selectionError != nil {
		return nil, fmt.Errorf(branchSelectionFailureTemplateConstant, selectionError)
	}

	return resolveSelection(candidates, selectedIndices), nil
}

// resolveSelection maps indices to names in ascending order, ignoring duplicates and out-of-range values.
func resolveSelection(candidates []string, selectedIndices []int) []string {
	orderedIndices := append([]int{}, selectedIndices...)
	sort.Ints(orderedIndices)

	selectedBranches := make([]string, 0, len(orderedIndices))
	previousIndex := -1
	for _, index := range orderedIndices {
		if index < 0 || index >= len(candidates) || index == previousIndex {
			continue
		}
		previousIndex = index
		selectedBranches = append(selectedBranches, candidates[index])
	}
	return selectedBranches
}

type silentReporter struct{}

func (silentReporter) SearchingMergedBranches(string)      {}
func (silentReporter) TargetUnavailable()                  {}
func (silentReporter) NothingToClean()                     {}
func (silentReporter) CandidatesFound(int)                 {}
func (silentReporter) SelectionCancelled()                 {}
func (silentReporter) DryRunDeletion(string)               {}
func (silentReporter) BranchDeleted(string)                {}
func (silentReporter) BranchDeletionFailed(string, string) {}
func (silentReporter) CleanupFinished()                    {}
