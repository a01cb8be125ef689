package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/expressgen/expressgen/pkg/models"
)

// Asker prompts for a single question and returns the raw answer.
type Asker func(ctx context.Context, q *Question) (string, error)

// Collector asks the questions in order and builds the project answers.
type Collector struct {
	ask Asker
}

// NewCollector creates a Collector. A nil asker prompts through huh.
func NewCollector(ask Asker) *Collector {
	if ask == nil {
		ask = HuhAsker(newWizardTheme())
	}
	return &Collector{ask: ask}
}

// Collect asks whether authorization and validation are wanted, how many
// models there are, and then the name of each model.
func (c *Collector) Collect(ctx context.Context) (*models.ProjectAnswers, error) {
	answers, err := c.Run(ctx, DefaultQuestions())
	if err != nil {
		return nil, err
	}

	result := &models.ProjectAnswers{}
	// Already validated by Run.
	result.WantsAuthorization, _ = ParseYesNo(answers[QuestionAuthorization])
	result.WantsValidation, _ = ParseYesNo(answers[QuestionValidation])
	count, _ := ParseModelCount(answers[QuestionModelCount])

	// Name questions are built as they are asked.
	for i := 1; i <= count; i++ {
		q := ModelNameQuestion(i)
		names, err := c.Run(ctx, []Question{q})
		if err != nil {
			return nil, err
		}
		result.Models = append(result.Models, models.NewModelName(names[q.ID]))
	}
	return result, nil
}

// Run asks each question in order and returns the answers keyed by question ID.
// An answer failing the question's validator is asked again.
func (c *Collector) Run(ctx context.Context, questions []Question) (map[string]string, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	answers := make(map[string]string, len(questions))
	for i := range questions {
		q := &questions[i]
		for {
			if err := ctx.Err(); err != nil {
				return nil, ErrCancelled
			}
			val, err := c.ask(ctx, q)
			if err != nil {
				return nil, err
			}
			if q.Validate == nil || q.Validate(val) == nil {
				answers[q.ID] = strings.TrimSpace(val)
				break
			}
		}
	}
	return answers, nil
}

// HuhAsker returns an Asker that runs each question as its own huh form.
// Validation runs inline so invalid input is re-prompted by the form itself.
func HuhAsker(theme *huh.Theme) Asker {
	return func(ctx context.Context, q *Question) (string, error) {
		var value string
		inp := huh.NewInput().
			Title(q.Title).
			Value(&value)
		if q.Description != "" {
			inp = inp.Description(q.Description)
		}
		if q.Validate != nil {
			inp = inp.Validate(q.Validate)
		}

		form := huh.NewForm(huh.NewGroup(inp)).
			WithTheme(theme).
			WithAccessible(false)

		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
				return "", ErrCancelled
			}
			return "", fmt.Errorf("wizard error: %w", err)
		}
		return value, nil
	}
}
