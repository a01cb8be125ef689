package wizard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/expressgen/expressgen/pkg/models"
)

// answersFile is the on-disk form of a headless answers file:
//
//	authorization: "y"
//	validation: "no"
//	models: [user, post]
type answersFile struct {
	Authorization string   `yaml:"authorization" validate:"required"`
	Validation    string   `yaml:"validation" validate:"required"`
	Models        []string `yaml:"models"`
}

// LoadAnswers reads project answers from a YAML file. The yes/no fields go
// through the same validators as the interactive prompts.
func LoadAnswers(path string) (*models.ProjectAnswers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrAnswersNotFound)
		}
		return nil, fmt.Errorf("read answers %s: %w", path, err)
	}
	return ParseAnswers(data)
}

// ParseAnswers decodes and validates answers YAML.
func ParseAnswers(data []byte) (*models.ProjectAnswers, error) {
	var raw answersFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnswers, err)
	}
	if err := validator.New().Struct(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnswers, err)
	}

	auth, err := ParseYesNo(raw.Authorization)
	if err != nil {
		return nil, fmt.Errorf("%w: authorization: %w", ErrInvalidAnswers, err)
	}
	valid, err := ParseYesNo(raw.Validation)
	if err != nil {
		return nil, fmt.Errorf("%w: validation: %w", ErrInvalidAnswers, err)
	}

	answers := &models.ProjectAnswers{
		WantsAuthorization: auth,
		WantsValidation:    valid,
	}
	for _, name := range raw.Models {
		answers.Models = append(answers.Models, models.NewModelName(name))
	}
	return answers, nil
}
