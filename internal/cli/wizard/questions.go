package wizard

import "fmt"

// DefaultQuestions returns the fixed questions asked before model names.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:       QuestionAuthorization,
			Type:     QuestionTypeYesNo,
			Title:    "Will your project contain authorization? (y/n)",
			Validate: ValidateYesNo,
		},
		{
			ID:       QuestionValidation,
			Type:     QuestionTypeYesNo,
			Title:    "Will your project contain validation folder? (y/n)",
			Validate: ValidateYesNo,
		},
		{
			ID:       QuestionModelCount,
			Type:     QuestionTypeCount,
			Title:    "How many models do you have?",
			Validate: ValidateModelCount,
		},
	}
}

// ModelNameQuestion returns the free text question for the i-th model,
// numbered from 1.
func ModelNameQuestion(i int) Question {
	return Question{
		ID:    fmt.Sprintf("%s%d", modelNamePrefix, i),
		Type:  QuestionTypeInput,
		Title: fmt.Sprintf("Enter the name of model %d:", i),
	}
}
