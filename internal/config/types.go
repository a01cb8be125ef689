package config

import (
	"github.com/expressgen/expressgen/pkg/models"
)

// Condition decides whether a manifest entry applies to a project.
type Condition string

const (
	// Always applies to every project. The empty condition means the same.
	Always Condition = "always"
	// WhenValidation applies only when a validation layer was requested.
	WhenValidation Condition = "validation"
	// WhenAuthorization applies only when authorization was requested.
	WhenAuthorization Condition = "authorization"
)

// Holds reports whether the condition is satisfied by the answers.
func (c Condition) Holds(a *models.ProjectAnswers) bool {
	switch c {
	case "", Always:
		return true
	case WhenValidation:
		return a.WantsValidation
	case WhenAuthorization:
		return a.WantsAuthorization
	}
	return false
}

// Manifest is the data-driven description of what gets generated.
type Manifest struct {
	Install     InstallConfig   `yaml:"install"`
	Folders     []FolderSpec    `yaml:"folders" validate:"required,min=1,dive"`
	ModelFiles  []ModelFileSpec `yaml:"model_files" validate:"dive"`
	SharedFiles []FileSpec      `yaml:"shared_files" validate:"dive"`
	Utilities   UtilitiesSpec   `yaml:"utilities"`
	Entry       FileSpec        `yaml:"entry"`
	Env         EnvSpec         `yaml:"env"`
	Gitignore   GitignoreSpec   `yaml:"gitignore"`
}

// InstallConfig describes the package manager invocations.
type InstallConfig struct {
	PackageManager string        `yaml:"package_manager" validate:"required"`
	InitArgs       []string      `yaml:"init_args,omitempty"`
	InstallArgs    []string      `yaml:"install_args" validate:"required,min=1"`
	Packages       []PackageSpec `yaml:"packages" validate:"dive"`
}

// PackageSpec is a single package to install.
type PackageSpec struct {
	Name  string    `yaml:"name" validate:"required"`
	Label string    `yaml:"label,omitempty"` // Display name, e.g. "Express"
	When  Condition `yaml:"when,omitempty" validate:"omitempty,oneof=always validation authorization"`
}

// DisplayName returns Label, falling back to Name.
func (p PackageSpec) DisplayName() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Name
}

// FolderSpec is a top-level folder of the generated project.
type FolderSpec struct {
	Name string    `yaml:"name" validate:"required"`
	When Condition `yaml:"when,omitempty" validate:"omitempty,oneof=always validation authorization"`
}

// ModelFileSpec is a file rendered once per model.
type ModelFileSpec struct {
	Kind     string    `yaml:"kind" validate:"required"`
	Folder   string    `yaml:"folder" validate:"required"`
	Suffix   string    `yaml:"suffix" validate:"required"` // Appended to the lowercase name, e.g. "Routes.js"
	Template string    `yaml:"template" validate:"required"`
	When     Condition `yaml:"when,omitempty" validate:"omitempty,oneof=always validation authorization"`
	// Requires lists the kinds this file imports by naming convention.
	Requires []string `yaml:"requires,omitempty"`
}

// FileName returns the generated file name for a model.
func (s ModelFileSpec) FileName(m models.ModelName) string {
	return m.Lower() + s.Suffix
}

// FileSpec is a single project-wide file.
type FileSpec struct {
	Path     string    `yaml:"path" validate:"required"`
	Template string    `yaml:"template" validate:"required"`
	When     Condition `yaml:"when,omitempty" validate:"omitempty,oneof=always validation authorization"`
}

// UtilitiesSpec describes the shared helper files and their nested folder.
type UtilitiesSpec struct {
	Folder string     `yaml:"folder" validate:"required"`
	Files  []FileSpec `yaml:"files" validate:"dive"`
}

// EnvSpec describes the generated .env file.
type EnvSpec struct {
	Path     string   `yaml:"path" validate:"required"`
	Template string   `yaml:"template" validate:"required"`
	Keys     []string `yaml:"keys" validate:"dive,required"`
}

// GitignoreSpec describes the generated or amended .gitignore file.
type GitignoreSpec struct {
	Path     string `yaml:"path" validate:"required"`
	Template string `yaml:"template" validate:"required"`
	// Entry is appended to an existing file that does not contain it yet.
	Entry string `yaml:"entry" validate:"required"`
}

// ActiveFolders returns the folder names whose condition holds, in manifest order.
func (m *Manifest) ActiveFolders(a *models.ProjectAnswers) []string {
	var names []string
	for _, f := range m.Folders {
		if f.When.Holds(a) {
			names = append(names, f.Name)
		}
	}
	return names
}

// ActiveModelFiles returns the model file specs whose condition holds.
func (m *Manifest) ActiveModelFiles(a *models.ProjectAnswers) []ModelFileSpec {
	var specs []ModelFileSpec
	for _, s := range m.ModelFiles {
		if s.When.Holds(a) {
			specs = append(specs, s)
		}
	}
	return specs
}

// ActivePackages returns the packages to install for the answers, in order.
func (m *Manifest) ActivePackages(a *models.ProjectAnswers) []PackageSpec {
	var pkgs []PackageSpec
	for _, p := range m.Install.Packages {
		if p.When.Holds(a) {
			pkgs = append(pkgs, p)
		}
	}
	return pkgs
}
