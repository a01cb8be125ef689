package project

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/expressgen/expressgen/internal/config"
	"github.com/expressgen/expressgen/internal/installer"
	"github.com/expressgen/expressgen/internal/template"
	"github.com/expressgen/expressgen/pkg/models"
)

// fakeInstaller plans a fixed command list and optionally fails.
type fakeInstaller struct {
	cmds     []installer.Command
	err      error
	progress installer.ProgressFunc
	calls    int
}

func (f *fakeInstaller) Plan(*models.ProjectAnswers) []installer.Command { return f.cmds }

func (f *fakeInstaller) Install(context.Context, *models.ProjectAnswers) error {
	f.calls++
	for _, c := range f.cmds {
		if f.progress != nil {
			f.progress(c, "")
		}
	}
	return f.err
}

// eventLog collects reported events.
type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) Report(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.events))
	for i, e := range l.events {
		out[i] = e.Message
	}
	return out
}

func (l *eventLog) completed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.events {
		if e.Completes() {
			n++
		}
	}
	return n
}

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	fsys, err := template.EmbeddedTemplates()
	if err != nil {
		t.Fatalf("EmbeddedTemplates() error: %v", err)
	}
	return NewGenerator(config.NewDefaultManifest(), template.NewRenderer(fsys), opts...)
}

func answers(auth, valid bool, names ...string) *models.ProjectAnswers {
	a := &models.ProjectAnswers{WantsAuthorization: auth, WantsValidation: valid}
	for _, n := range names {
		a.Models = append(a.Models, models.NewModelName(n))
	}
	return a
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func assertExists(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Errorf("expected %s to exist: %v", rel, err)
		}
	}
}

func assertMissing(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected %s to be absent, stat error = %v", rel, err)
		}
	}
}

func TestGenerate_FullProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	res, err := newTestGenerator(t).Generate(context.Background(), root, answers(true, true, "User"))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	assertExists(t, root,
		"controllers", "routes", "models", "utilities", "middlewares", "uploads", "validations",
		"models/user.js",
		"controllers/userControllers.js",
		"routes/userRoutes.js",
		"validations/userValidations.js",
		"middlewares/userMiddlewares.js",
		"middlewares/authorizationMiddlewares.js",
		"utilities/configurations/DBConfigurations.js",
		"utilities/configurations/multerConfigurations.js",
		"utilities/responseMessages.js",
		"index.js", ".env", ".gitignore",
	)
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
	if !slices.IsSorted(res.WrittenFiles) {
		t.Errorf("WrittenFiles not sorted: %v", res.WrittenFiles)
	}
	if !strings.Contains(readFile(t, root, "models/user.js"), `mongoose.model("User", userSchema)`) {
		t.Error("model file does not use the capitalized name")
	}
	if !strings.Contains(readFile(t, root, "index.js"), "credentials: true") {
		t.Error("index.js should enable credentials with authorization")
	}
}

func TestGenerate_ValidationDisabled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	res, err := newTestGenerator(t).Generate(context.Background(), root, answers(false, false, "user"))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	assertMissing(t, root, "validations", "validations/userValidations.js", "middlewares/authorizationMiddlewares.js")

	route := readFile(t, root, "routes/userRoutes.js")
	if !strings.Contains(route, `require("./../validations/userValidations")`) {
		t.Error("route file should still reference the validations module")
	}

	want := "routes/userRoutes.js requires validations/userValidations.js, which is not generated"
	if !slices.Contains(res.Warnings, want) {
		t.Errorf("Warnings = %v, want %q", res.Warnings, want)
	}
	if !strings.Contains(readFile(t, root, "index.js"), "credentials: false") {
		t.Error("index.js should disable credentials without authorization")
	}
}

func TestGenerate_FoldersIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	g := newTestGenerator(t)
	a := answers(false, true)

	first, err := g.Generate(context.Background(), root, a)
	if err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}
	second, err := g.Generate(context.Background(), root, a)
	if err != nil {
		t.Fatalf("second Generate() error: %v", err)
	}

	if len(second.CreatedDirs) != 0 {
		t.Errorf("second run created %v", second.CreatedDirs)
	}
	if !slices.Equal(first.CreatedDirs, second.ExistingDirs) {
		t.Errorf("existing dirs %v, want %v", second.ExistingDirs, first.CreatedDirs)
	}
}

func TestGenerate_OverwriteIsByteIdentical(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	g := newTestGenerator(t)
	a := answers(true, true, "user", "post")

	snapshot := func() map[string][]byte {
		files := map[string][]byte{}
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := os.ReadFile(p)
			files[p] = data
			return err
		})
		if err != nil {
			t.Fatal(err)
		}
		return files
	}

	if _, err := g.Generate(context.Background(), root, a); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	before := snapshot()

	// Tamper with a generated file; the next run must restore it.
	if err := os.WriteFile(filepath.Join(root, "models", "user.js"), []byte("edited"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Generate(context.Background(), root, a); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	after := snapshot()

	if len(before) != len(after) {
		t.Fatalf("file count changed: %d -> %d", len(before), len(after))
	}
	for p, data := range before {
		if !bytes.Equal(data, after[p]) {
			t.Errorf("%s differs between runs", p)
		}
	}
}

func TestGenerate_ZeroModels(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	res, err := newTestGenerator(t).Generate(context.Background(), root, answers(false, false))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	index := readFile(t, root, "index.js")
	for _, want := range []string{"app.listen(process.env.PORT", `app.use("/uploads", express.static("uploads"));`, "app.use(express.json());"} {
		if !strings.Contains(index, want) {
			t.Errorf("index.js missing %q", want)
		}
	}
	if strings.Contains(index, "Routes = require") {
		t.Error("index.js should have no route imports")
	}

	entries, err := os.ReadDir(filepath.Join(root, "routes"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("routes/ has %d entries, want 0", len(entries))
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v", res.Warnings)
	}
}

func TestGenerate_EntryMountsEveryModel(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if _, err := newTestGenerator(t).Generate(context.Background(), root, answers(false, true, "User", "Post")); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	index := readFile(t, root, "index.js")
	for _, want := range []string{
		`const userRoutes = require("./routes/userRoutes");`,
		`const postRoutes = require("./routes/postRoutes");`,
		`app.use('/user', userRoutes);`,
		`app.use('/post', postRoutes);`,
	} {
		if !strings.Contains(index, want) {
			t.Errorf("index.js missing %q", want)
		}
	}
}

func TestGenerate_InitialFiles(t *testing.T) {
	t.Parallel()

	t.Run("env_and_new_gitignore", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		if _, err := newTestGenerator(t).Generate(context.Background(), root, answers(false, false)); err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		wantEnv := "PORT = \"\"\nDB = \"\"\nADMIN = \"\"\nUSER = \"\"\nJWTKEY = \"\""
		if got := readFile(t, root, ".env"); got != wantEnv {
			t.Errorf(".env = %q, want %q", got, wantEnv)
		}
		if got := readFile(t, root, ".gitignore"); got != "./node_modules/\n./env" {
			t.Errorf(".gitignore = %q", got)
		}
	})

	t.Run("append_to_existing_gitignore", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte("dist/"), 0o644); err != nil {
			t.Fatal(err)
		}
		log := &eventLog{}
		if _, err := newTestGenerator(t, WithReporter(log)).Generate(context.Background(), root, answers(false, false)); err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if got := readFile(t, root, ".gitignore"); got != "dist/\n./env" {
			t.Errorf(".gitignore = %q", got)
		}
		if !slices.Contains(log.messages(), ".env added to .gitignore.") {
			t.Errorf("messages = %v", log.messages())
		}
	})

	t.Run("entry_already_present", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		original := "node_modules\n./env\n"
		if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte(original), 0o644); err != nil {
			t.Fatal(err)
		}
		log := &eventLog{}
		if _, err := newTestGenerator(t, WithReporter(log)).Generate(context.Background(), root, answers(false, false)); err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if got := readFile(t, root, ".gitignore"); got != original {
			t.Errorf(".gitignore = %q, want unchanged", got)
		}
		if !slices.Contains(log.messages(), ".env is already in .gitignore.") {
			t.Errorf("messages = %v", log.messages())
		}
	})
}

func TestGenerate_InstallFailureDoesNotStopSiblings(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	inst := &fakeInstaller{
		cmds: []installer.Command{{Label: "Installing Express...", Name: "npm", Args: []string{"i", "express"}}},
		err:  installer.ErrCommandFailed,
	}
	res, err := newTestGenerator(t, WithInstaller(inst)).Generate(context.Background(), root, answers(false, false, "user"))

	var stepErrs *StepErrors
	if !errors.As(err, &stepErrs) {
		t.Fatalf("error = %v, want *StepErrors", err)
	}
	if !errors.Is(err, installer.ErrCommandFailed) {
		t.Errorf("errors.Is(err, ErrCommandFailed) = false for %v", err)
	}
	if !stepErrs.Failed(StepInstall) || len(stepErrs.Errors) != 1 {
		t.Errorf("failed steps = %v", stepErrs.Errors)
	}
	if res == nil || res.Installed {
		t.Fatalf("result = %+v", res)
	}
	assertExists(t, root, "models/user.js", "index.js", ".env", "utilities/responseMessages.js")
}

func TestGenerate_InstallRuns(t *testing.T) {
	t.Parallel()

	inst := &fakeInstaller{}
	res, err := newTestGenerator(t, WithInstaller(inst)).Generate(context.Background(), t.TempDir(), answers(false, false))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if inst.calls != 1 || !res.Installed {
		t.Errorf("install calls = %d, Installed = %v", inst.calls, res.Installed)
	}
}

func TestGenerate_DuplicateModelsWarn(t *testing.T) {
	t.Parallel()

	res, err := newTestGenerator(t).Generate(context.Background(), t.TempDir(), answers(false, true, "User", "user"))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	want := `model "user" is listed more than once; its files are overwritten`
	if !slices.Contains(res.Warnings, want) {
		t.Errorf("Warnings = %v, want %q", res.Warnings, want)
	}
}

func TestGenerate_UnsafeModelName(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "project")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatal(err)
	}
	_, err := newTestGenerator(t).Generate(context.Background(), root, answers(false, false, "../../evil"))

	var stepErrs *StepErrors
	if !errors.As(err, &stepErrs) {
		t.Fatalf("error = %v, want *StepErrors", err)
	}
	if !stepErrs.Failed(StepModelFiles) {
		t.Errorf("model-files step should fail: %v", err)
	}
	if !errors.Is(err, ErrPathTraversal) {
		t.Errorf("errors.Is(err, ErrPathTraversal) = false for %v", err)
	}
	assertExists(t, root, "index.js")
}

func TestGenerate_ModelNameLeavingFolder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, err := newTestGenerator(t).Generate(context.Background(), root, answers(false, false, "../index"))
	if !errors.Is(err, ErrPathTraversal) {
		t.Fatalf("error = %v, want ErrPathTraversal", err)
	}
	var stepErrs *StepErrors
	if !errors.As(err, &stepErrs) || stepErrs.Failed(StepEntry) {
		t.Errorf("only model-files should fail: %v", err)
	}
	if got := readFile(t, root, "index.js"); !strings.Contains(got, "app.listen") {
		t.Errorf("index.js was replaced by a model file:\n%s", got)
	}
}

func TestGenerate_PlaceholderLikeModelName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, err := newTestGenerator(t).Generate(context.Background(), root, answers(false, false, "${id}"))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	assertExists(t, root, "models/${id}.js", "routes/${id}Routes.js")
	if got := readFile(t, root, "index.js"); !strings.Contains(got, `require("./routes/${id}Routes")`) {
		t.Errorf("index.js does not import the model's routes:\n%s", got)
	}
}

func TestGenerate_InvalidRoot(t *testing.T) {
	t.Parallel()

	_, err := newTestGenerator(t).Generate(context.Background(), filepath.Join(t.TempDir(), "missing"), answers(false, false))
	if !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("error = %v, want ErrInvalidRoot", err)
	}
}

func TestGenerate_FolderBlockedByFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "uploads"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := newTestGenerator(t).Generate(context.Background(), root, answers(false, false))
	if !errors.Is(err, ErrNotADirectory) {
		t.Fatalf("error = %v, want ErrNotADirectory", err)
	}
	// The other folders are still created.
	if !slices.Contains(res.CreatedDirs, "models") {
		t.Errorf("CreatedDirs = %v", res.CreatedDirs)
	}
}

func TestGenerate_ReportsEvents(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "models"), 0o755); err != nil {
		t.Fatal(err)
	}
	log := &eventLog{}
	inst := &fakeInstaller{
		cmds: []installer.Command{
			{Label: "Initializing new Node.js project...", Name: "npm", Args: []string{"init", "-y"}},
			{Label: "Installing Express...", Name: "npm", Args: []string{"i", "express"}},
		},
		progress: InstallProgress(log),
	}
	g := newTestGenerator(t, WithReporter(log), WithInstaller(inst))
	a := answers(true, false, "user")

	if _, err := g.Generate(context.Background(), root, a); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	msgs := log.messages()
	for _, want := range []string{
		"controllers folder created.",
		"models folder already exists.",
		"configurations folder created.",
		"user.js created successfully.",
		"userRoutes.js created successfully.",
		"authorizationMiddlewares.js created successfully.",
		"DBConfigurations.js created successfully.",
		"index.js file created successfully.",
		".env file created successfully.",
		".gitignore file created successfully.",
		"Installing Express...",
	} {
		if !slices.Contains(msgs, want) {
			t.Errorf("missing message %q in %v", want, msgs)
		}
	}

	if got, want := log.completed(), g.Units(a); got != want {
		t.Errorf("completed events = %d, Units() = %d", got, want)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestGenerator(t).Generate(ctx, t.TempDir(), answers(false, false, "user"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestStepErrors(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("disk full")
	errs := &StepErrors{Errors: []*StepError{
		{Step: StepEntry, Err: sentinel},
		{Step: StepUtilities, Err: errors.New("boom")},
	}}

	if !errors.Is(errs, sentinel) {
		t.Error("errors.Is should find the wrapped step error")
	}
	var se *StepError
	if !errors.As(errs, &se) || se.Step != StepEntry {
		t.Errorf("errors.As = %v", se)
	}
	if !errs.Failed(StepUtilities) || errs.Failed(StepInstall) {
		t.Error("Failed() mismatch")
	}
	if got := errs.Error(); !strings.HasPrefix(got, "2 step(s) failed: entry: disk full") {
		t.Errorf("Error() = %q", got)
	}
}

func TestResolvePath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	tests := []struct {
		rel string
		ok  bool
	}{
		{"models/user.js", true},
		{"./index.js", true},
		{"a/../b.js", true},
		{"../escape.js", false},
		{"..", false},
		{"/etc/passwd", false},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			t.Parallel()
			_, err := resolvePath(root, tt.rel)
			if tt.ok && err != nil {
				t.Errorf("resolvePath(%q) error: %v", tt.rel, err)
			}
			if !tt.ok && !errors.Is(err, ErrPathTraversal) {
				t.Errorf("resolvePath(%q) = %v, want ErrPathTraversal", tt.rel, err)
			}
		})
	}
}
