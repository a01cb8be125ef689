package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gertd/go-pluralize"
	"github.com/spf13/cobra"

	"github.com/expressgen/expressgen/internal/cli/wizard"
	"github.com/expressgen/expressgen/internal/config"
	"github.com/expressgen/expressgen/internal/defs"
	"github.com/expressgen/expressgen/internal/core/project"
	"github.com/expressgen/expressgen/internal/template"
	"github.com/expressgen/expressgen/internal/ui"
	"github.com/expressgen/expressgen/pkg/models"
)

// runScaffold collects answers, then generates the project into --dir.
func runScaffold(cmd *cobra.Command, _ []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := &printer{w: cmd.OutOrStdout(), plain: getBoolFlag(cmd, "no-color")}

	logger := deps.Logger
	if getBoolFlag(cmd, "verbose") {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	root, err := resolveRoot(getStringFlag(cmd, "dir"))
	if err != nil {
		return err
	}

	manifest, err := config.NewLoader(
		config.WithLogger(logger),
		config.WithKnownTemplates(template.ListTemplates(deps.Templates)),
	).Load(getStringFlag(cmd, "manifest"))
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	answers, err := collectAnswers(ctx, getStringFlag(cmd, "answers"))
	if err != nil {
		if errors.Is(err, wizard.ErrCancelled) {
			out.println("Project setup cancelled.")
			return nil
		}
		return err
	}
	printSetup(out, answers)

	theme := ui.NewTheme(out.plain)
	var bar ui.ProgressBar
	reporter := project.ReporterFunc(func(ev project.Event) {
		line := ev.Message
		if ev.Kind == project.EventWarning {
			line = out.render(cliWarn, line)
		}
		if ev.Kind == project.EventCommandStarted {
			bar.SetTitle(ev.Message)
		}
		bar.Println(line)
		if ev.Completes() {
			bar.Increment(1)
		}
	})

	opts := []project.Option{
		project.WithReporter(reporter),
		project.WithLogger(logger),
	}
	if !getBoolFlag(cmd, "skip-install") {
		inst := deps.NewInstaller(manifest.Install, root, project.InstallProgress(reporter), logger)
		opts = append(opts, project.WithInstaller(inst))
	}
	gen := project.NewGenerator(manifest, template.NewRenderer(deps.Templates), opts...)

	genCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	bar = ui.NewProgress(theme, deps.Headless, out.w, ui.WithInterrupt(cancel)).
		Start("Generating project", gen.Units(answers))
	res, genErr := gen.Generate(genCtx, root, answers)
	bar.SetTitle(finishedTitle(genCtx, genErr))
	bar.Done()

	if res == nil {
		return genErr
	}
	printSummary(out, answers, res, genErr)
	if genErr != nil {
		return genErr
	}
	printNextSteps(out, manifest, answers, getBoolFlag(cmd, "skip-install"))
	return nil
}

// resolveRoot returns the absolute project root, defaulting to the working directory.
func resolveRoot(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve project path %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, defs.DirPerm); err != nil {
		return "", fmt.Errorf("create project directory %q: %w", dir, err)
	}
	return abs, nil
}

// collectAnswers reads the answers file when given, otherwise prompts.
// Prompting requires a terminal on stdin.
func collectAnswers(ctx context.Context, answersPath string) (*models.ProjectAnswers, error) {
	if answersPath != "" {
		return wizard.LoadAnswers(answersPath)
	}
	if deps.Headless.IsHeadless() {
		return nil, wizard.ErrNoTerminal
	}
	return wizard.NewCollector(deps.Asker).Collect(ctx)
}

// printSetup echoes the collected answers.
func printSetup(out *printer, a *models.ProjectAnswers) {
	names := make([]string, len(a.Models))
	for i, m := range a.Models {
		names[i] = m.String()
	}
	modelList := strings.Join(names, ", ")
	if modelList == "" {
		modelList = out.render(cliMuted, "none")
	}
	out.println("Your project setup:")
	out.println(out.renderKeyValueLines([]kvPair{
		{"Authorization", yesNo(a.WantsAuthorization)},
		{"Validation", yesNo(a.WantsValidation)},
		{"Models", modelList},
	}))
	out.println()
}

// printSummary shows the result card, listing warnings and failed steps.
func printSummary(out *printer, a *models.ProjectAnswers, res *project.Result, genErr error) {
	plural := pluralize.NewClient()
	details := []string{
		out.renderKeyValueLines([]kvPair{
			{"Models", plural.Pluralize("model", a.ModelCount(), true)},
			{"Folders", fmt.Sprintf("%s created, %d already present",
				plural.Pluralize("folder", len(res.CreatedDirs), true), len(res.ExistingDirs))},
			{"Files", plural.Pluralize("file", len(res.WrittenFiles), true) + " written"},
			{"Dependencies", installedLabel(res.Installed)},
		}),
	}
	for _, w := range res.Warnings {
		details = append(details, out.symWarning()+" "+out.render(cliWarn, w))
	}

	title, border := "Project generated", cliSuccess
	var stepErrs *project.StepErrors
	if errors.As(genErr, &stepErrs) {
		title = fmt.Sprintf("Project generated with %s",
			plural.Pluralize("failed step", len(stepErrs.Errors), true))
		border = cliError
		for _, se := range stepErrs.Errors {
			details = append(details, out.symError()+" "+out.render(cliError, se.Error()))
		}
	} else {
		title = out.symSuccess() + " " + title
	}

	out.println()
	out.println(out.renderCard(title, border, details...))
}

// printNextSteps renders the follow-up instructions as markdown.
func printNextSteps(out *printer, m *config.Manifest, a *models.ProjectAnswers, skippedInstall bool) {
	var b strings.Builder
	b.WriteString("## Next steps\n\n")
	step := 1
	if skippedInstall {
		var pkgs []string
		for _, p := range m.ActivePackages(a) {
			pkgs = append(pkgs, p.Name)
		}
		fmt.Fprintf(&b, "%d. Install dependencies: `%s %s %s`\n", step,
			m.Install.PackageManager, strings.Join(m.Install.InstallArgs, " "), strings.Join(pkgs, " "))
		step++
	}
	fmt.Fprintf(&b, "%d. Fill in `%s` in `%s`\n", step, strings.Join(m.Env.Keys, "`, `"), m.Env.Path)
	step++
	fmt.Fprintf(&b, "%d. Start the server with `node %s`\n", step, m.Entry.Path)
	out.println(out.renderMarkdown(b.String()))
}

// finishedTitle labels the progress bar once generation returns.
func finishedTitle(ctx context.Context, err error) string {
	switch {
	case ctx.Err() != nil:
		return "Generation cancelled"
	case err != nil:
		return "Generation finished with errors"
	}
	return "Project generated"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func installedLabel(installed bool) string {
	if installed {
		return "installed"
	}
	return "not installed"
}
