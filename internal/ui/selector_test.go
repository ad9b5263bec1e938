package ui

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

var testSelectionCandidates = []string{"feature-a", "feature-b", "feature-c"}

func TestBranchSelectionModelKeyHandling(testInstance *testing.T) {
	testCases := []struct {
		name              string
		keys              []tea.KeyMsg
		expectedIndices   []int
		expectedError     error
		expectedOutcome   selectionOutcome
		expectedQuitIssue bool
	}{
		{
			name:              "confirm_keeps_all_preselected",
			keys:              []tea.KeyMsg{{Type: tea.KeyEnter}},
			expectedIndices:   []int{0, 1, 2},
			expectedOutcome:   selectionOutcomeConfirmed,
			expectedQuitIssue: true,
		},
		{
			name: "toggle_with_space_removes_item",
			keys: []tea.KeyMsg{
				{Type: tea.KeyDown},
				{Type: tea.KeySpace, Runes: []rune{' '}},
				{Type: tea.KeyEnter},
			},
			expectedIndices:   []int{0, 2},
			expectedOutcome:   selectionOutcomeConfirmed,
			expectedQuitIssue: true,
		},
		{
			name: "toggle_with_x_and_vim_navigation",
			keys: []tea.KeyMsg{
				{Type: tea.KeyRunes, Runes: []rune{'j'}},
				{Type: tea.KeyRunes, Runes: []rune{'j'}},
				{Type: tea.KeyRunes, Runes: []rune{'x'}},
				{Type: tea.KeyRunes, Runes: []rune{'k'}},
				{Type: tea.KeyRunes, Runes: []rune{'k'}},
				{Type: tea.KeyRunes, Runes: []rune{'x'}},
				{Type: tea.KeyEnter},
			},
			expectedIndices:   []int{1},
			expectedOutcome:   selectionOutcomeConfirmed,
			expectedQuitIssue: true,
		},
		{
			name: "cursor_stays_within_bounds",
			keys: []tea.KeyMsg{
				{Type: tea.KeyUp},
				{Type: tea.KeyRunes, Runes: []rune{'x'}},
				{Type: tea.KeyDown},
				{Type: tea.KeyDown},
				{Type: tea.KeyDown},
				{Type: tea.KeyDown},
				{Type: tea.KeyRunes, Runes: []rune{'x'}},
				{Type: tea.KeyEnter},
			},
			expectedIndices:   []int{1},
			expectedOutcome:   selectionOutcomeConfirmed,
			expectedQuitIssue: true,
		},
		{
			name: "toggle_all_clears_full_selection",
			keys: []tea.KeyMsg{
				{Type: tea.KeyRunes, Runes: []rune{'a'}},
				{Type: tea.KeyEnter},
			},
			expectedIndices:   []int{},
			expectedOutcome:   selectionOutcomeConfirmed,
			expectedQuitIssue: true,
		},
		{
			name: "toggle_all_restores_partial_selection",
			keys: []tea.KeyMsg{
				{Type: tea.KeyRunes, Runes: []rune{'x'}},
				{Type: tea.KeyRunes, Runes: []rune{'a'}},
				{Type: tea.KeyEnter},
			},
			expectedIndices:   []int{0, 1, 2},
			expectedOutcome:   selectionOutcomeConfirmed,
			expectedQuitIssue: true,
		},
		{
			name:              "escape_cancels",
			keys:              []tea.KeyMsg{{Type: tea.KeyEsc}},
			expectedIndices:   nil,
			expectedOutcome:   selectionOutcomeCancelled,
			expectedQuitIssue: true,
		},
		{
			name:              "q_cancels",
			keys:              []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'q'}}},
			expectedIndices:   nil,
			expectedOutcome:   selectionOutcomeCancelled,
			expectedQuitIssue: true,
		},
		{
			name:              "ctrl_c_interrupts",
			keys:              []tea.KeyMsg{{Type: tea.KeyCtrlC}},
			expectedError:     ErrSelectionInterrupted,
			expectedOutcome:   selectionOutcomeInterrupted,
			expectedQuitIssue: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			model := newBranchSelectionModel(testSelectionCandidates, DefaultSelectionKeyMap)

			var lastCommand tea.Cmd
			for _, keyMessage := range testCase.keys {
				_, lastCommand = model.Update(keyMessage)
			}

			require.Equal(subtest, testCase.expectedOutcome, model.outcome)
			require.Equal(subtest, testCase.expectedQuitIssue, lastCommand != nil)

			indices, resultError := model.result()
			if testCase.expectedError != nil {
				require.ErrorIs(subtest, resultError, testCase.expectedError)
				require.Nil(subtest, indices)
				return
			}
			require.NoError(subtest, resultError)
			if testCase.expectedIndices == nil {
				require.Empty(subtest, indices)
				return
			}
			require.Equal(subtest, testCase.expectedIndices, indices)
		})
	}
}

func TestBranchSelectionModelIgnoresNonKeyMessages(testInstance *testing.T) {
	model := newBranchSelectionModel(testSelectionCandidates, DefaultSelectionKeyMap)

	_, command := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	require.Nil(testInstance, command)
	require.Equal(testInstance, selectionOutcomePending, model.outcome)
	require.Equal(testInstance, []int{0, 1, 2}, model.selectedIndices())
}

func TestBranchSelectionModelDoesNotMutateCandidates(testInstance *testing.T) {
	candidates := []string{"feature-a", "feature-b"}
	model := newBranchSelectionModel(candidates, DefaultSelectionKeyMap)

	model.items[0] = "changed"

	require.Equal(testInstance, "feature-a", candidates[0])
}

func TestBranchSelectionModelView(testInstance *testing.T) {
	model := newBranchSelectionModel(testSelectionCandidates, DefaultSelectionKeyMap)

	pendingView := model.View()
	require.Contains(testInstance, pendingView, selectionPromptConstant)
	for _, candidate := range testSelectionCandidates {
		require.Contains(testInstance, pendingView, candidate)
	}
	require.Contains(testInstance, pendingView, "3 of 3 selected")

	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(testInstance, selectionModelFinishedViewConstant, model.View())
}

func TestTerminalBranchSelectorSkipsPromptForEmptyCandidates(testInstance *testing.T) {
	output := &bytes.Buffer{}
	selector := NewTerminalBranchSelector(&bytes.Buffer{}, output)

	indices, selectionError := selector.SelectBranches(context.Background(), nil)

	require.NoError(testInstance, selectionError)
	require.Empty(testInstance, indices)
	require.Zero(testInstance, output.Len())
}

func TestTerminalBranchSelectorRejectsNonTerminalInput(testInstance *testing.T) {
	regularFile, createError := os.Create(filepath.Join(testInstance.TempDir(), "keys"))
	require.NoError(testInstance, createError)
	testInstance.Cleanup(func() { _ = regularFile.Close() })

	testCases := []struct {
		name  string
		input io.Reader
	}{
		{name: "exhausted_reader", input: strings.NewReader("")},
		{name: "scripted_reader", input: strings.NewReader(" \r")},
		{name: "regular_file", input: regularFile},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			executionContext, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			output := &bytes.Buffer{}
			selector := NewTerminalBranchSelector(testCase.input, output)

			indices, selectionError := selector.SelectBranches(executionContext, []string{"feature-a", "feature-b"})

			require.ErrorIs(subtest, selectionError, ErrSelectionUnavailable)
			require.Contains(subtest, selectionError.Error(), "--yes")
			require.Nil(subtest, indices)
			require.Zero(subtest, output.Len())
		})
	}
}

func TestTerminalBranchSelectorRunsProgramOnTerminalInput(testInstance *testing.T) {
	testCases := []struct {
		name            string
		input           string
		expectedIndices []int
		expectedError   error
	}{
		{name: "toggle_first_and_confirm", input: " \r", expectedIndices: []int{1, 2}},
		{name: "confirm_preselected", input: "\r", expectedIndices: []int{0, 1, 2}},
		{name: "cancel", input: "q", expectedIndices: nil},
		{name: "interrupt", input: "\x03", expectedError: ErrSelectionInterrupted},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			executionContext, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			selector := NewTerminalBranchSelector(strings.NewReader(testCase.input), &bytes.Buffer{})
			selector.isTerminal = func(io.Reader) bool { return true }

			indices, selectionError := selector.SelectBranches(executionContext, testSelectionCandidates)

			if testCase.expectedError != nil {
				require.ErrorIs(subtest, selectionError, testCase.expectedError)
				return
			}
			require.NoError(subtest, selectionError)
			require.Equal(subtest, testCase.expectedIndices, indices)
		})
	}
}

func TestIsTerminalInputRejectsPlainReaders(testInstance *testing.T) {
	require.False(testInstance, isTerminalInput(strings.NewReader("")))
	require.False(testInstance, isTerminalInput(&bytes.Buffer{}))
}
