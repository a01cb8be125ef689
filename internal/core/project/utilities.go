package project

import (
	"context"
	"errors"
)

// createUtilities ensures the configurations folder exists and writes the
// static helper files.
func (g *Generator) createUtilities(ctx context.Context, root string, res *Result) error {
	u := g.manifest.Utilities
	if err := g.ensureFolder(root, StepUtilities, u.Folder, res); err != nil {
		return err
	}

	var errs []error
	for _, f := range u.Files {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if err := g.emitFile(root, StepUtilities, f.Path, f.Template, nil, "", res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
