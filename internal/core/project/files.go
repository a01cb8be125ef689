package project

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/expressgen/expressgen/internal/config"
	"github.com/expressgen/expressgen/internal/template"
	"github.com/expressgen/expressgen/pkg/models"
)

// createModelFiles renders every active model file kind for every model,
// then the shared files. Existing files are overwritten.
func (g *Generator) createModelFiles(ctx context.Context, root string, answers *models.ProjectAnswers, res *Result) error {
	specs := g.manifest.ActiveModelFiles(answers)
	scheduled := make(map[string]bool, len(specs))
	for _, s := range specs {
		scheduled[s.Kind] = true
	}

	var errs []error
	for _, m := range answers.Models {
		mc := template.NewModelContext(m)
		for _, spec := range specs {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			relPath, err := modelFilePath(spec, m)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			g.checkRequires(res, spec, m, relPath, scheduled)
			if err := g.emitFile(root, StepModelFiles, relPath, spec.Template, mc, "", res); err != nil {
				errs = append(errs, err)
			}
		}
	}

	pc := template.NewProjectContext(answers, template.WithEnvKeys(g.manifest.Env.Keys))
	for _, f := range g.manifest.SharedFiles {
		if !f.When.Holds(answers) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if err := g.emitFile(root, StepModelFiles, f.Path, f.Template, pc, "", res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// modelFilePath returns the slash-separated path of the model's file for
// spec. The file must land inside the kind's folder.
func modelFilePath(spec config.ModelFileSpec, m models.ModelName) (string, error) {
	folder := path.Clean(spec.Folder)
	relPath := path.Join(folder, spec.FileName(m))
	if !strings.HasPrefix(relPath, folder+"/") {
		return "", fmt.Errorf("%w: model %q escapes %s", ErrPathTraversal, m.String(), folder)
	}
	return relPath, nil
}

// checkRequires warns about each module the file imports by naming
// convention that this run does not generate. The file is written anyway.
func (g *Generator) checkRequires(res *Result, spec config.ModelFileSpec, m models.ModelName, relPath string, scheduled map[string]bool) {
	for _, kind := range spec.Requires {
		if scheduled[kind] {
			continue
		}
		missing := kind
		for _, other := range g.manifest.ModelFiles {
			if other.Kind == kind {
				missing = path.Join(other.Folder, other.FileName(m))
				break
			}
		}
		g.warn(res, StepModelFiles, relPath,
			fmt.Sprintf("%s requires %s, which is not generated", relPath, missing))
	}
}
