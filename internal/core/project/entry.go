package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/expressgen/expressgen/internal/config"
	"github.com/expressgen/expressgen/internal/defs"
	"github.com/expressgen/expressgen/internal/template"
	"github.com/expressgen/expressgen/pkg/models"
)

// createEntry renders the entry point with one import and one mount per model.
func (g *Generator) createEntry(root string, answers *models.ProjectAnswers, res *Result) error {
	e := g.manifest.Entry
	pc := template.NewProjectContext(answers, template.WithEnvKeys(g.manifest.Env.Keys))
	msg := fmt.Sprintf("%s file created successfully.", path.Base(e.Path))
	return g.emitFile(root, StepEntry, e.Path, e.Template, pc, msg, res)
}

// createInitialFiles writes .env and creates or amends .gitignore.
func (g *Generator) createInitialFiles(ctx context.Context, root string, answers *models.ProjectAnswers, res *Result) error {
	env := g.manifest.Env
	pc := template.NewProjectContext(answers, template.WithEnvKeys(env.Keys))
	msg := fmt.Sprintf("%s file created successfully.", path.Base(env.Path))
	if err := g.emitFile(root, StepInitialFiles, env.Path, env.Template, pc, msg, res); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.updateGitignore(root, pc, res)
}

// updateGitignore creates the ignore file from its template when absent.
// Otherwise the configured entry is appended on a new line unless the file
// already mentions it.
func (g *Generator) updateGitignore(root string, pc *template.ProjectContext, res *Result) error {
	gi := g.manifest.Gitignore
	abs, err := resolvePath(root, gi.Path)
	if err != nil {
		return err
	}

	existing, err := os.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		msg := fmt.Sprintf("%s file created successfully.", path.Base(gi.Path))
		return g.emitFile(root, StepInitialFiles, gi.Path, gi.Template, pc, msg, res)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", gi.Path, err)
	}

	if strings.Contains(string(existing), gi.Entry) {
		g.reporter.Report(Event{
			Step:    StepInitialFiles,
			Kind:    EventFileUnchanged,
			Path:    gi.Path,
			Message: fmt.Sprintf("%s is already in %s.", envName(g.manifest), path.Base(gi.Path)),
		})
		return nil
	}

	f, err := os.OpenFile(abs, os.O_APPEND|os.O_WRONLY, defs.FilePerm)
	if err != nil {
		return fmt.Errorf("open %s: %w", gi.Path, err)
	}
	if _, err := f.WriteString("\n" + gi.Entry); err != nil {
		_ = f.Close()
		return fmt.Errorf("append %s: %w", gi.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", gi.Path, err)
	}

	res.addFile(gi.Path)
	g.reporter.Report(Event{
		Step:    StepInitialFiles,
		Kind:    EventFileWritten,
		Path:    gi.Path,
		Message: fmt.Sprintf("%s added to %s.", envName(g.manifest), path.Base(gi.Path)),
	})
	return nil
}

// envName returns the base name of the manifest's env file.
func envName(m *config.Manifest) string {
	return path.Base(m.Env.Path)
}
