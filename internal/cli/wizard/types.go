// Package wizard collects project answers through a sequence of huh prompts,
// or from a YAML answers file in headless mode.
package wizard

import (
	"errors"
)

// QuestionType represents the kind of answer a question expects.
type QuestionType int

const (
	// QuestionTypeYesNo is a y/n question.
	QuestionTypeYesNo QuestionType = iota
	// QuestionTypeCount is a non-negative integer question.
	QuestionTypeCount
	// QuestionTypeInput is a free text question.
	QuestionTypeInput
)

// Question defines a single wizard question.
type Question struct {
	ID          string             // Unique identifier
	Type        QuestionType       // YesNo, Count or Input
	Title       string             // Prompt shown to the user
	Description string             // Additional description
	Validate    func(string) error // Optional input validator
}

// Question IDs used by the answer collector.
const (
	QuestionAuthorization = "authorization"
	QuestionValidation    = "validation"
	QuestionModelCount    = "model_count"
	modelNamePrefix       = "model_name_"
)

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
	// ErrInvalidYesNo is returned for yes/no answers outside {y, yes, n, no}.
	ErrInvalidYesNo = errors.New("Please answer with yes or no.")
	// ErrInvalidModelCount is returned for counts that are not non-negative integers.
	ErrInvalidModelCount = errors.New("Please enter a valid non-negative number.")
	// ErrNoTerminal is returned when prompting is required but stdin is not a terminal.
	ErrNoTerminal = errors.New("wizard: stdin is not a terminal; use --answers")
	// ErrAnswersNotFound is returned when the answers file does not exist.
	ErrAnswersNotFound = errors.New("wizard: answers file not found")
	// ErrInvalidAnswers is returned when an answers file cannot be parsed or validated.
	ErrInvalidAnswers = errors.New("wizard: invalid answers file")
)
