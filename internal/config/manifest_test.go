package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/expressgen/expressgen/internal/template"
	"github.com/expressgen/expressgen/pkg/models"
)

func knownTemplates(t *testing.T) []string {
	t.Helper()
	fsys, err := template.EmbeddedTemplates()
	if err != nil {
		t.Fatalf("EmbeddedTemplates() error: %v", err)
	}
	return template.ListTemplates(fsys)
}

func TestConditionHolds(t *testing.T) {
	t.Parallel()

	both := &models.ProjectAnswers{WantsAuthorization: true, WantsValidation: true}
	none := &models.ProjectAnswers{}

	tests := []struct {
		cond Condition
		both bool
		none bool
	}{
		{"", true, true},
		{Always, true, true},
		{WhenValidation, true, false},
		{WhenAuthorization, true, false},
		{Condition("bogus"), false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.cond), func(t *testing.T) {
			t.Parallel()
			if got := tt.cond.Holds(both); got != tt.both {
				t.Errorf("Holds(both) = %v, want %v", got, tt.both)
			}
			if got := tt.cond.Holds(none); got != tt.none {
				t.Errorf("Holds(none) = %v, want %v", got, tt.none)
			}
		})
	}
}

func TestDefaultManifestIsValid(t *testing.T) {
	t.Parallel()

	if err := Validate(NewDefaultManifest(), knownTemplates(t)); err != nil {
		t.Fatalf("default manifest invalid: %v", err)
	}
}

func TestActiveFolders(t *testing.T) {
	t.Parallel()

	m := NewDefaultManifest()
	base := []string{"controllers", "routes", "models", "utilities", "middlewares", "uploads"}

	t.Run("without_validation", func(t *testing.T) {
		got := m.ActiveFolders(&models.ProjectAnswers{})
		if !slices.Equal(got, base) {
			t.Errorf("ActiveFolders = %v, want %v", got, base)
		}
	})

	t.Run("with_validation", func(t *testing.T) {
		got := m.ActiveFolders(&models.ProjectAnswers{WantsValidation: true})
		want := append(slices.Clone(base), "validations")
		if !slices.Equal(got, want) {
			t.Errorf("ActiveFolders = %v, want %v", got, want)
		}
	})
}

func TestActiveModelFilesNames(t *testing.T) {
	t.Parallel()

	m := NewDefaultManifest()
	user := models.NewModelName("User")

	names := func(a *models.ProjectAnswers) []string {
		var out []string
		for _, s := range m.ActiveModelFiles(a) {
			out = append(out, s.Folder+"/"+s.FileName(user))
		}
		return out
	}

	got := names(&models.ProjectAnswers{})
	want := []string{
		"models/user.js",
		"controllers/userControllers.js",
		"routes/userRoutes.js",
		"middlewares/userMiddlewares.js",
	}
	if !slices.Equal(got, want) {
		t.Errorf("files without validation = %v, want %v", got, want)
	}

	got = names(&models.ProjectAnswers{WantsValidation: true})
	if !slices.Contains(got, "validations/userValidations.js") {
		t.Errorf("files with validation = %v, missing validations/userValidations.js", got)
	}
}

func TestActivePackages(t *testing.T) {
	t.Parallel()

	m := NewDefaultManifest()
	pkgNames := func(a *models.ProjectAnswers) []string {
		var out []string
		for _, p := range m.ActivePackages(a) {
			out = append(out, p.Name)
		}
		return out
	}

	base := []string{"express", "mongoose", "dotenv", "cors", "multer"}
	if got := pkgNames(&models.ProjectAnswers{}); !slices.Equal(got, base) {
		t.Errorf("packages = %v, want %v", got, base)
	}

	want := append(slices.Clone(base), "jsonwebtoken", "argon2")
	if got := pkgNames(&models.ProjectAnswers{WantsAuthorization: true}); !slices.Equal(got, want) {
		t.Errorf("packages with authorization = %v, want %v", got, want)
	}
}

func TestPackageDisplayName(t *testing.T) {
	t.Parallel()

	if got := (PackageSpec{Name: "cors"}).DisplayName(); got != "cors" {
		t.Errorf("DisplayName() = %q, want %q", got, "cors")
	}
	if got := (PackageSpec{Name: "cors", Label: "Cors"}).DisplayName(); got != "Cors" {
		t.Errorf("DisplayName() = %q, want %q", got, "Cors")
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(m *Manifest)
		field   string
		wantErr error
	}{
		{
			name:    "missing_package_manager",
			mutate:  func(m *Manifest) { m.Install.PackageManager = "" },
			field:   "install.package_manager",
			wantErr: ErrInvalidManifest,
		},
		{
			name:    "no_folders",
			mutate:  func(m *Manifest) { m.Folders = nil },
			field:   "folders",
			wantErr: ErrInvalidManifest,
		},
		{
			name:    "bad_condition",
			mutate:  func(m *Manifest) { m.Folders[0].When = "sometimes" },
			field:   "folders[0].when",
			wantErr: ErrInvalidManifest,
		},
		{
			name:    "undeclared_requires",
			mutate:  func(m *Manifest) { m.ModelFiles[0].Requires = []string{"service"} },
			field:   "model_files[0].requires",
			wantErr: ErrUnknownKind,
		},
		{
			name:    "duplicate_kind",
			mutate:  func(m *Manifest) { m.ModelFiles[1].Kind = KindModel },
			field:   "model_files[1].kind",
			wantErr: ErrInvalidManifest,
		},
		{
			name:    "escaping_folder",
			mutate:  func(m *Manifest) { m.Folders[0].Name = "../outside" },
			field:   "folders[0].name",
			wantErr: ErrUnsafePath,
		},
		{
			name:    "absolute_entry",
			mutate:  func(m *Manifest) { m.Entry.Path = "/etc/index.js" },
			field:   "entry.path",
			wantErr: ErrUnsafePath,
		},
		{
			name:    "suffix_with_separator",
			mutate:  func(m *Manifest) { m.ModelFiles[0].Suffix = "/x.js" },
			field:   "model_files[0].suffix",
			wantErr: ErrUnsafePath,
		},
		{
			name:    "unknown_template",
			mutate:  func(m *Manifest) { m.Utilities.Files[0].Template = "missing.tmpl" },
			field:   "utilities.files[0].template",
			wantErr: ErrUnknownTemplate,
		},
		{
			name:    "dynamic_token",
			mutate:  func(m *Manifest) { m.Env.Path = "${HOME}/.env" },
			field:   "env.path",
			wantErr: ErrInvalidManifest,
		},
	}

	known := knownTemplates(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewDefaultManifest()
			tt.mutate(m)

			err := Validate(m, known)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			var verrs *ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error type = %T, want *ValidationErrors", err)
			}
			found := false
			for _, ve := range verrs.Errors {
				if ve.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %v", tt.field, err)
			}
		})
	}
}

func TestValidateSkipsTemplatesWithoutKnownList(t *testing.T) {
	t.Parallel()

	m := NewDefaultManifest()
	m.Entry.Template = "custom.tmpl"
	if err := Validate(m, nil); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestLoaderLoad(t *testing.T) {
	t.Parallel()

	t.Run("empty_path_returns_defaults", func(t *testing.T) {
		t.Parallel()
		m, err := NewLoader().Load("")
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if m.Install.PackageManager != DefaultPackageManager {
			t.Errorf("PackageManager = %q, want %q", m.Install.PackageManager, DefaultPackageManager)
		}
	})

	t.Run("missing_file", func(t *testing.T) {
		t.Parallel()
		_, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrManifestNotFound) {
			t.Errorf("error = %v, want ErrManifestNotFound", err)
		}
	})

	t.Run("invalid_yaml", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "manifest.yaml")
		if err := os.WriteFile(path, []byte("folders: [unclosed"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := NewLoader().Load(path)
		if !errors.Is(err, ErrInvalidYAML) {
			t.Errorf("error = %v, want ErrInvalidYAML", err)
		}
	})

	t.Run("partial_override_keeps_other_sections", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "manifest.yaml")
		content := "install:\n  package_manager: pnpm\n  install_args: [add]\n  packages:\n    - name: express\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		m, err := NewLoader(WithKnownTemplates(knownTemplates(t))).Load(path)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if m.Install.PackageManager != "pnpm" {
			t.Errorf("PackageManager = %q, want pnpm", m.Install.PackageManager)
		}
		if len(m.Install.Packages) != 1 {
			t.Errorf("len(Packages) = %d, want 1", len(m.Install.Packages))
		}
		if len(m.Folders) != len(NewDefaultFolders()) {
			t.Errorf("Folders replaced: got %d entries", len(m.Folders))
		}
	})

	t.Run("override_fails_validation", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "manifest.yaml")
		if err := os.WriteFile(path, []byte("folders: []\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := NewLoader().Load(path)
		if !errors.Is(err, ErrInvalidManifest) {
			t.Errorf("error = %v, want ErrInvalidManifest", err)
		}
	})
}

func TestMarshalRoundTripsThroughLoader(t *testing.T) {
	t.Parallel()

	data, err := Marshal(NewDefaultManifest())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), "package_manager: npm") {
		t.Errorf("marshalled manifest missing package manager:\n%s", data)
	}

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := NewLoader(WithKnownTemplates(knownTemplates(t))).Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !slices.Equal(m.Env.Keys, template.DefaultEnvKeys) {
		t.Errorf("Env.Keys = %v, want %v", m.Env.Keys, template.DefaultEnvKeys)
	}
}

func TestValidationErrorFormatting(t *testing.T) {
	t.Parallel()

	ve := &ValidationError{Field: "entry.path", Message: "is required"}
	if got := ve.Error(); !strings.Contains(got, `"entry.path"`) {
		t.Errorf("Error() = %q, missing field name", got)
	}

	empty := &ValidationErrors{}
	if got := empty.Error(); got != "validation: no errors" {
		t.Errorf("Error() = %q", got)
	}
}
