// Package cli provides the Cobra command tree and dependency injection
// wiring for expressgen. This file defines the Dependencies struct
// (Composition Root) that wires the domain packages together.
package cli

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/expressgen/expressgen/internal/cli/wizard"
	"github.com/expressgen/expressgen/internal/config"
	"github.com/expressgen/expressgen/internal/core/project"
	"github.com/expressgen/expressgen/internal/installer"
	"github.com/expressgen/expressgen/internal/template"
	"github.com/expressgen/expressgen/internal/ui"
)

// InstallerFactory builds the dependency installer for a project root.
type InstallerFactory func(cfg config.InstallConfig, dir string, progress installer.ProgressFunc, logger *slog.Logger) project.Installer

// Dependencies holds the services used by CLI commands. This is the
// Composition Root: the only place where concrete types are instantiated
// and wired together.
type Dependencies struct {
	Templates    fs.FS
	Headless     *ui.HeadlessManager
	Asker        wizard.Asker // nil prompts through huh
	NewInstaller InstallerFactory
	Logger       *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates and wires all domain dependencies.
// It should be called once during application startup.
func InitDependencies() error {
	fsys, err := template.EmbeddedTemplates()
	if err != nil {
		return fmt.Errorf("load embedded templates: %w", err)
	}

	deps = &Dependencies{
		Templates:    fsys,
		Headless:     ui.NewHeadlessManager(),
		NewInstaller: newPackageInstaller,
		// Quiet unless --verbose replaces it.
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return nil
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// newPackageInstaller wires the package manager installer.
func newPackageInstaller(cfg config.InstallConfig, dir string, progress installer.ProgressFunc, logger *slog.Logger) project.Installer {
	return installer.New(cfg, dir,
		installer.WithProgress(progress),
		installer.WithLogger(logger),
	)
}
