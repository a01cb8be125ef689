package project

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/expressgen/expressgen/internal/config"
	"github.com/expressgen/expressgen/internal/installer"
	"github.com/expressgen/expressgen/internal/template"
	"github.com/expressgen/expressgen/pkg/models"
)

// Installer installs the project's dependencies.
type Installer interface {
	Plan(answers *models.ProjectAnswers) []installer.Command
	Install(ctx context.Context, answers *models.ProjectAnswers) error
}

// Generator scaffolds a project from a manifest and a set of answers.
type Generator struct {
	manifest  *config.Manifest
	renderer  template.Renderer
	installer Installer // nil skips the install step
	reporter  Reporter
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithInstaller enables the install step.
func WithInstaller(inst Installer) Option {
	return func(g *Generator) {
		g.installer = inst
	}
}

// WithReporter sets the receiver of progress events.
func WithReporter(rep Reporter) Option {
	return func(g *Generator) {
		if rep != nil {
			g.reporter = rep
		}
	}
}

// WithLogger sets the generator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a Generator for the given manifest and renderer.
func NewGenerator(m *config.Manifest, r template.Renderer, opts ...Option) *Generator {
	g := &Generator{
		manifest: m,
		renderer: r,
		reporter: discardReporter{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// stepOrder fixes the order in which step failures are reported.
var stepOrder = []Step{StepFolders, StepInstall, StepInitialFiles, StepModelFiles, StepUtilities, StepEntry}

// Generate creates the folders first, then runs the install, initial
// files, model files, utilities and entry steps concurrently and waits for
// all of them. A failing step does not stop its siblings. Nothing is rolled
// back. The returned Result is always non-nil when root is valid; the error
// is a *StepErrors listing every failed step.
func (g *Generator) Generate(ctx context.Context, root string, answers *models.ProjectAnswers) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, root)
	}

	g.logger.Info("generating project",
		"root", root,
		"models", answers.ModelCount(),
		"authorization", answers.WantsAuthorization,
		"validation", answers.WantsValidation,
	)

	res := &Result{}
	for _, dup := range answers.DuplicateModels() {
		g.warn(res, StepModelFiles, "", fmt.Sprintf("model %q is listed more than once; its files are overwritten", dup))
	}

	var (
		mu       sync.Mutex
		failures []*StepError
	)
	record := func(step Step, err error) {
		if err == nil {
			return
		}
		g.logger.Error("step failed", "step", step, "error", err)
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, &StepError{Step: step, Err: err})
	}

	record(StepFolders, g.createFolders(ctx, root, answers, res))

	var eg errgroup.Group
	run := func(step Step, fn func() error) {
		eg.Go(func() error {
			record(step, fn())
			return nil
		})
	}

	if g.installer != nil {
		run(StepInstall, func() error {
			if err := g.installer.Install(ctx, answers); err != nil {
				return err
			}
			res.setInstalled()
			return nil
		})
	}
	run(StepInitialFiles, func() error { return g.createInitialFiles(ctx, root, answers, res) })
	run(StepModelFiles, func() error { return g.createModelFiles(ctx, root, answers, res) })
	run(StepUtilities, func() error { return g.createUtilities(ctx, root, res) })
	run(StepEntry, func() error { return g.createEntry(root, answers, res) })

	_ = eg.Wait()
	res.sort()

	g.logger.Info("project generated",
		"dirs", len(res.CreatedDirs),
		"files", len(res.WrittenFiles),
		"warnings", len(res.Warnings),
		"failed_steps", len(failures),
	)

	if len(failures) > 0 {
		slices.SortFunc(failures, func(a, b *StepError) int {
			return slices.Index(stepOrder, a.Step) - slices.Index(stepOrder, b.Step)
		})
		return res, &StepErrors{Errors: failures}
	}
	return res, nil
}

// Units returns the number of completion events a full run emits for the
// answers. It sizes progress bars.
func (g *Generator) Units(answers *models.ProjectAnswers) int {
	m := g.manifest
	n := len(m.ActiveFolders(answers))
	n += len(m.ActiveModelFiles(answers)) * answers.ModelCount()
	for _, f := range m.SharedFiles {
		if f.When.Holds(answers) {
			n++
		}
	}
	n += 1 + len(m.Utilities.Files) // configurations folder and its files
	n += 3                          // entry, env and gitignore
	if g.installer != nil {
		n += len(g.installer.Plan(answers))
	}
	return n
}

// emitFile renders tmpl with data and writes the trimmed output to relPath.
func (g *Generator) emitFile(root string, step Step, relPath, tmpl string, data any, msg string, res *Result) error {
	out, err := g.renderer.Render(tmpl, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", relPath, err)
	}
	if err := writeFile(root, relPath, bytes.TrimSpace(out)); err != nil {
		return err
	}
	res.addFile(relPath)
	if msg == "" {
		msg = fmt.Sprintf("%s created successfully.", path.Base(relPath))
	}
	g.reporter.Report(Event{Step: step, Kind: EventFileWritten, Path: relPath, Message: msg})
	g.logger.Debug("file written", "path", relPath, "template", tmpl, "bytes", len(out))
	return nil
}

// warn records a warning and reports it.
func (g *Generator) warn(res *Result, step Step, relPath, msg string) {
	res.addWarning(msg)
	g.reporter.Report(Event{Step: step, Kind: EventWarning, Path: relPath, Message: "warning: " + msg})
	g.logger.Warn(msg, "step", step)
}
