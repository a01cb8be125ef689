package config

import (
	"github.com/expressgen/expressgen/internal/defs"
	"github.com/expressgen/expressgen/internal/template"
)

// Default values for the generated project.
const (
	DefaultPackageManager = "npm"
	DefaultEntryFile      = defs.EntryJS
	DefaultEnvFile        = defs.EnvFile
	DefaultGitignoreFile  = defs.GitignoreFile
	DefaultGitignoreEntry = defs.GitignoreEnvEntry
	DefaultConfigFolder   = defs.ConfigurationsDir
)

// Model file kinds.
const (
	KindModel      = "model"
	KindController = "controller"
	KindRoute      = "route"
	KindValidation = "validation"
	KindMiddleware = "middleware"
)

// NewDefaultManifest returns the manifest for the classic Express/Mongoose layout.
// Each call returns a fresh value so callers may mutate it freely.
func NewDefaultManifest() *Manifest {
	return &Manifest{
		Install:     NewDefaultInstallConfig(),
		Folders:     NewDefaultFolders(),
		ModelFiles:  NewDefaultModelFiles(),
		SharedFiles: NewDefaultSharedFiles(),
		Utilities:   NewDefaultUtilities(),
		Entry: FileSpec{
			Path:     DefaultEntryFile,
			Template: template.EntryTemplate,
		},
		Env: EnvSpec{
			Path:     DefaultEnvFile,
			Template: template.EnvTemplate,
			Keys:     append([]string(nil), template.DefaultEnvKeys...),
		},
		Gitignore: GitignoreSpec{
			Path:     DefaultGitignoreFile,
			Template: template.GitignoreTemplate,
			Entry:    DefaultGitignoreEntry,
		},
	}
}

// NewDefaultInstallConfig returns npm with the base packages followed by
// the authorization packages.
func NewDefaultInstallConfig() InstallConfig {
	return InstallConfig{
		PackageManager: DefaultPackageManager,
		InitArgs:       []string{"init", "-y"},
		InstallArgs:    []string{"i"},
		Packages: []PackageSpec{
			{Name: "express", Label: "Express"},
			{Name: "mongoose", Label: "Mongoose"},
			{Name: "dotenv", Label: "dotenv"},
			{Name: "cors", Label: "CORS"},
			{Name: "multer", Label: "Multer"},
			{Name: "jsonwebtoken", Label: "JWT", When: WhenAuthorization},
			{Name: "argon2", Label: "argon2", When: WhenAuthorization},
		},
	}
}

// NewDefaultFolders returns the top-level project folders.
func NewDefaultFolders() []FolderSpec {
	return []FolderSpec{
		{Name: "controllers"},
		{Name: "routes"},
		{Name: "models"},
		{Name: defs.UtilitiesDir},
		{Name: "middlewares"},
		{Name: "uploads"},
		{Name: "validations", When: WhenValidation},
	}
}

// NewDefaultModelFiles returns the per-model file kinds.
func NewDefaultModelFiles() []ModelFileSpec {
	return []ModelFileSpec{
		{Kind: KindModel, Folder: "models", Suffix: ".js", Template: template.ModelTemplate},
		{Kind: KindController, Folder: "controllers", Suffix: "Controllers.js", Template: template.ControllerTemplate,
			Requires: []string{KindModel}},
		{Kind: KindRoute, Folder: "routes", Suffix: "Routes.js", Template: template.RouteTemplate,
			Requires: []string{KindController, KindValidation, KindMiddleware}},
		{Kind: KindValidation, Folder: "validations", Suffix: "Validations.js", Template: template.ValidationTemplate,
			When: WhenValidation},
		{Kind: KindMiddleware, Folder: "middlewares", Suffix: "Middlewares.js", Template: template.MiddlewareTemplate},
	}
}

// NewDefaultSharedFiles returns files rendered once per project.
func NewDefaultSharedFiles() []FileSpec {
	return []FileSpec{
		{Path: "middlewares/authorizationMiddlewares.js", Template: template.AuthorizationTemplate, When: WhenAuthorization},
	}
}

// NewDefaultUtilities returns the helper files under utilities/.
func NewDefaultUtilities() UtilitiesSpec {
	return UtilitiesSpec{
		Folder: DefaultConfigFolder,
		Files: []FileSpec{
			{Path: DefaultConfigFolder + "/DBConfigurations.js", Template: template.DBConfigTemplate},
			{Path: DefaultConfigFolder + "/multerConfigurations.js", Template: template.MulterConfigTemplate},
			{Path: defs.UtilitiesDir + "/responseMessages.js", Template: template.ResponseMessagesTemplate},
		},
	}
}
