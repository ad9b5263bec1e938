package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

const (
	selectionPromptConstant                 = "Space to select/unselect, Enter to confirm"
	selectionFailureTemplateConstant        = "branch selection failed: %w"
	selectionInterruptedMessageConstant     = "branch selection interrupted"
	selectionUnavailableMessageConstant     = "interactive branch selection requires a terminal; rerun with --yes to delete every merged branch"
	unexpectedSelectionModelMessageConstant = "branch selection returned an unexpected model"
	cursorIndicatorConstant                 = "› "
	cursorPaddingConstant                   = "  "
	selectedCheckboxConstant                = "[x] "
	unselectedCheckboxConstant              = "[ ] "
	selectionLineSeparatorConstant          = "\n"
	selectionHelpSeparatorConstant          = "\n\n"
	selectionSummaryTemplateConstant        = "%d of %d selected"
	selectionPromptSummarySeparatorConstant = "  "
	selectionPromptColorConstant            = "12"
	selectionCursorColorConstant            = "212"
	selectionCheckedColorConstant           = "10"
	selectionDimmedColorConstant            = "241"
	selectionModelFinishedViewConstant      = ""
)

// ErrSelectionInterrupted indicates the user interrupted the prompt with ctrl+c.
var ErrSelectionInterrupted = errors.New(selectionInterruptedMessageConstant)

// ErrSelectionUnavailable indicates the prompt cannot run because input is not a terminal.
var ErrSelectionUnavailable = errors.New(selectionUnavailableMessageConstant)

var errUnexpectedSelectionModel = errors.New(unexpectedSelectionModelMessageConstant)

type selectionOutcome int

const (
	selectionOutcomePending selectionOutcome = iota
	selectionOutcomeConfirmed
	selectionOutcomeCancelled
	selectionOutcomeInterrupted
)

var (
	selectionPromptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(selectionPromptColorConstant)).Bold(true)
	selectionCursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(selectionCursorColorConstant)).Bold(true)
	selectionCheckedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(selectionCheckedColorConstant))
	selectionDimmedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(selectionDimmedColorConstant))
)

// branchSelectionModel is a multi-select list in which every item starts selected.
type branchSelectionModel struct {
	items    []string
	selected []bool
	cursor   int
	keys     SelectionKeyMap
	help     help.Model
	outcome  selectionOutcome
}

func newBranchSelectionModel(items []string, keys SelectionKeyMap) *branchSelectionModel {
	selected := make([]bool, len(items))
	for index := range selected {
		selected[index] = true
	}
	return &branchSelectionModel{
		items:    append([]string{}, items...),
		selected: selected,
		keys:     keys,
		help:     help.New(),
	}
}

func (model *branchSelectionModel) Init() tea.Cmd {
	return nil
}

func (model *branchSelectionModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, isKeyMessage := message.(tea.KeyMsg)
	if !isKeyMessage {
		return model, nil
	}

	switch {
	case key.Matches(keyMessage, model.keys.Interrupt):
		model.outcome = selectionOutcomeInterrupted
		return model, tea.Quit
	case key.Matches(keyMessage, model.keys.Cancel):
		model.outcome = selectionOutcomeCancelled
		return model, tea.Quit
	case key.Matches(keyMessage, model.keys.Confirm):
		model.outcome = selectionOutcomeConfirmed
		return model, tea.Quit
	case key.Matches(keyMessage, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(keyMessage, model.keys.Down):
		if model.cursor < len(model.items)-1 {
			model.cursor++
		}
	case key.Matches(keyMessage, model.keys.Toggle):
		if len(model.selected) > 0 {
			model.selected[model.cursor] = !model.selected[model.cursor]
		}
	case key.Matches(keyMessage, model.keys.ToggleAll):
		model.toggleAll()
	}

	return model, nil
}

// toggleAll selects everything unless everything is already selected, in which case it clears the selection.
func (model *branchSelectionModel) toggleAll() {
	allSelected := true
	for _, isSelected := range model.selected {
		if !isSelected {
			allSelected = false
			break
		}
	}
	for index := range model.selected {
		model.selected[index] = !allSelected
	}
}

func (model *branchSelectionModel) View() string {
	if model.outcome != selectionOutcomePending {
		return selectionModelFinishedViewConstant
	}

	var builder strings.Builder
	builder.WriteString(selectionPromptStyle.Render(selectionPromptConstant))
	builder.WriteString(selectionPromptSummarySeparatorConstant)
	builder.WriteString(selectionDimmedStyle.Render(fmt.Sprintf(selectionSummaryTemplateConstant, len(model.selectedIndices()), len(model.items))))
	builder.WriteString(selectionLineSeparatorConstant)

	for index, item := range model.items {
		prefix := cursorPaddingConstant
		if index == model.cursor {
			prefix = selectionCursorStyle.Render(cursorIndicatorConstant)
		}

		line := unselectedCheckboxConstant + item
		if model.selected[index] {
			line = selectionCheckedStyle.Render(selectedCheckboxConstant + item)
		}

		builder.WriteString(prefix)
		builder.WriteString(line)
		builder.WriteString(selectionLineSeparatorConstant)
	}

	builder.WriteString(selectionLineSeparatorConstant)
	builder.WriteString(model.help.View(model.keys))
	builder.WriteString(selectionHelpSeparatorConstant)
	return builder.String()
}

func (model *branchSelectionModel) selectedIndices() []int {
	indices := make([]int, 0, len(model.selected))
	for index, isSelected := range model.selected {
		if isSelected {
			indices = append(indices, index)
		}
	}
	return indices
}

// result converts the final model state into the selection returned to callers.
func (model *branchSelectionModel) result() ([]int, error) {
	switch model.outcome {
	case selectionOutcomeConfirmed:
		return model.selectedIndices(), nil
	case selectionOutcomeInterrupted:
		return nil, ErrSelectionInterrupted
	default:
		return nil, nil
	}
}

type terminalDetector func(input io.Reader) bool

type fileDescriptorReader interface {
	Fd() uintptr
}

// isTerminalInput reports whether input is an interactive terminal. A nil input
// stands for standard input, which bubbletea reads by default.
func isTerminalInput(input io.Reader) bool {
	if input == nil {
		input = os.Stdin
	}
	descriptorReader, hasDescriptor := input.(fileDescriptorReader)
	if !hasDescriptor {
		return false
	}
	descriptor := descriptorReader.Fd()
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}

// TerminalBranchSelector prompts for branches with an interactive bubbletea list.
type TerminalBranchSelector struct {
	input      io.Reader
	output     io.Writer
	keys       SelectionKeyMap
	isTerminal terminalDetector
}

// NewTerminalBranchSelector constructs a selector that reads keys from input and renders to output.
func NewTerminalBranchSelector(input io.Reader, output io.Writer) *TerminalBranchSelector {
	return &TerminalBranchSelector{
		input:      input,
		output:     output,
		keys:       DefaultSelectionKeyMap,
		isTerminal: isTerminalInput,
	}
}

// SelectBranches shows candidates with every item pre-selected and returns the
// ascending indices the user confirmed. Cancelling yields an empty selection.
// Input that is not a terminal never delivers key presses, so it fails with
// ErrSelectionUnavailable before the prompt starts.
func (selector *TerminalBranchSelector) SelectBranches(executionContext context.Context, candidates []string) ([]int, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if selector.isTerminal != nil && !selector.isTerminal(selector.input) {
		return nil, ErrSelectionUnavailable
	}
	if executionContext == nil {
		executionContext = context.Background()
	}

	model := newBranchSelectionModel(candidates, selector.keys)
	programOptions := []tea.ProgramOption{tea.WithContext(executionContext)}
	if selector.input != nil {
		programOptions = append(programOptions, tea.WithInput(selector.input))
	}
	if selector.output != nil {
		programOptions = append(programOptions, tea.WithOutput(selector.output))
	}

	finalModel, runError := tea.NewProgram(model, programOptions...).Run()
	if runError != nil {
		return nil, fmt.Errorf(selectionFailureTemplateConstant, runError)
	}

	completedModel, isSelectionModel := finalModel.(*branchSelectionModel)
	if !isSelectionModel {
		return nil, errUnexpectedSelectionModel
	}
	return completedModel.result()
}
