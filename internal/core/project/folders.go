package project

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/expressgen/expressgen/pkg/models"
)

// createFolders ensures every active manifest folder exists. Folders are
// independent: a failure is recorded and the remaining folders are still
// attempted.
func (g *Generator) createFolders(ctx context.Context, root string, answers *models.ProjectAnswers, res *Result) error {
	var errs []error
	for _, name := range g.manifest.ActiveFolders(answers) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := g.ensureFolder(root, StepFolders, name, res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ensureFolder creates relPath if missing and reports the outcome.
func (g *Generator) ensureFolder(root string, step Step, relPath string, res *Result) error {
	created, err := ensureDir(root, relPath)
	if err != nil {
		return err
	}
	res.addDir(relPath, created)

	name := path.Base(relPath)
	ev := Event{Step: step, Kind: EventFolderExists, Path: relPath, Message: fmt.Sprintf("%s folder already exists.", name)}
	if created {
		ev.Kind = EventFolderCreated
		ev.Message = fmt.Sprintf("%s folder created.", name)
	}
	g.reporter.Report(ev)
	return nil
}
