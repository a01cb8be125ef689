package template

import (
	"github.com/expressgen/expressgen/pkg/models"
)

// DefaultEnvKeys are the variables written, empty, to the generated .env file.
var DefaultEnvKeys = []string{"PORT", "DB", "ADMIN", "USER", "JWTKEY"}

// ModelContext is the data passed to per-model templates.
type ModelContext struct {
	Lower       string // e.g. "userprofile"
	Capitalized string // e.g. "UserProfile"
}

// NewModelContext derives the template data for one model name.
func NewModelContext(name models.ModelName) ModelContext {
	return ModelContext{
		Lower:       name.Lower(),
		Capitalized: name.Capitalized(),
	}
}

// ProjectContext is the data passed to project-wide templates
// (entry point, .env, shared middleware).
type ProjectContext struct {
	// Credentials is the literal value of the CORS credentials flag.
	Credentials bool

	Models  []ModelContext
	EnvKeys []string
}

// ContextOption configures a ProjectContext.
type ContextOption func(*ProjectContext)

// WithEnvKeys overrides the .env variable names.
func WithEnvKeys(keys []string) ContextOption {
	return func(c *ProjectContext) {
		if len(keys) > 0 {
			c.EnvKeys = keys
		}
	}
}

// NewProjectContext builds the project-wide template data from the answers.
func NewProjectContext(answers *models.ProjectAnswers, opts ...ContextOption) *ProjectContext {
	ctx := &ProjectContext{
		Credentials: answers.WantsAuthorization,
		Models:      make([]ModelContext, 0, len(answers.Models)),
		EnvKeys:     DefaultEnvKeys,
	}
	for _, m := range answers.Models {
		ctx.Models = append(ctx.Models, NewModelContext(m))
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}
