package branches

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitsweep/internal/execshell"
	"github.com/temirov/gitsweep/internal/ui"
	"github.com/temirov/gitsweep/internal/utils"
	flagutils "github.com/temirov/gitsweep/internal/utils/flags"
)

const (
	commandUseConstant                    = "cleanup"
	commandShortDescriptionConstant       = "Delete local branches already merged into main or master"
	commandLongDescriptionConstant        = "cleanup lists local branches merged into the target branch, lets you pick which ones to delete, and removes them with git's merge-safe delete. The target defaults to main, then master."
	commandExampleConstant                = "gitsweep --dry-run\ngitsweep --target develop\ngitsweep --yes"
	commandExecutionErrorTemplateConstant = "branch cleanup failed: %w"
	commandStartedMessageConstant         = "branch cleanup starting"
	logFieldConfigurationFileConstant     = "config_file"
	logFieldWorkingDirectoryConstant      = "working_directory"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for merged branch cleanup.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	GitExecutor                  GitExecutor
	Selector                     BranchSelector
}

// Build constructs the cleanup command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.run,
	}

	flagutils.BindBranchFlags(command, flagutils.BranchFlagValues{}, targetFlagDefinition())
	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.DefaultExecutionFlagDefinitions())

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options := builder.resolveOptions(command)

	logger := builder.resolveLogger()
	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	logger.Debug(commandStartedMessageConstant,
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
		zap.String(logFieldWorkingDirectoryConstant, options.WorkingDirectory),
		zap.String(logFieldTargetConstant, options.TargetBranch),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
		zap.Bool(logFieldAssumeYesConstant, options.AssumeYes),
	)

	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return executorError
	}

	selector := builder.Selector
	if selector == nil {
		selector = ui.NewTerminalBranchSelector(command.InOrStdin(), command.OutOrStdout())
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:      logger,
		GitExecutor: gitExecutor,
		Selector:    selector,
		Reporter:    ui.NewConsoleReporter(command.OutOrStdout(), command.ErrOrStderr()),
	})
	if serviceError != nil {
		return serviceError
	}

	if _, cleanupError := service.Cleanup(command.Context(), options); cleanupError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, cleanupError)
	}
	return nil
}

// resolveOptions layers explicit flags over configuration values.
func (builder *CommandBuilder) resolveOptions(command *cobra.Command) CleanupOptions {
	configuration := builder.resolveConfiguration()
	options := CleanupOptions{
		TargetBranch: configuration.Target,
		DryRun:       configuration.DryRun,
		AssumeYes:    configuration.AssumeYes,
	}

	if flagutils.BranchFlagChanged(command, targetFlagDefinition()) {
		targetValue, _ := command.Flags().GetString(flagutils.TargetFlagName)
		options.TargetBranch = strings.TrimSpace(targetValue)
	}

	if executionFlags, available := flagutils.ResolveExecutionFlags(command); available {
		if executionFlags.DryRunSet {
			options.DryRun = executionFlags.DryRun
		}
		if executionFlags.AssumeYesSet {
			options.AssumeYes = executionFlags.AssumeYes
		}
	}

	if workingDirectory, exists := utils.NewCommandContextAccessor().WorkingDirectory(command.Context()); exists {
		options.WorkingDirectory = workingDirectory
	}

	return options
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	var eventObserver execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		eventObserver = ui.NewConsoleCommandEventLogger(logger)
	}

	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, execshell.NewOSCommandRunner(), eventObserver)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

func targetFlagDefinition() flagutils.BranchFlagDefinition {
	return flagutils.BranchFlagDefinition{
		Name:      flagutils.TargetFlagName,
		Shorthand: flagutils.TargetFlagShorthand,
		Usage:     flagutils.TargetFlagUsage,
		Enabled:   true,
	}
}
