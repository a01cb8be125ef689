// Package installer runs the package manager commands that set up a
// generated project's dependencies.
package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/expressgen/expressgen/internal/config"
	"github.com/expressgen/expressgen/pkg/models"
)

// Command is a single package manager invocation.
type Command struct {
	Label string   // Progress line printed before the command runs
	Name  string   // Binary, e.g. "npm"
	Args  []string // Arguments, e.g. ["i", "express"]
}

// String returns the command line.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// ProgressFunc receives each command before it runs, with an empty output,
// and again with its trimmed stdout when it printed anything.
type ProgressFunc func(cmd Command, output string)

// execFunc runs a command in dir and returns its captured output.
type execFunc func(ctx context.Context, dir, name string, args ...string) (stdout, stderr string, err error)

// Installer runs install commands one at a time in the project directory.
type Installer struct {
	cfg      config.InstallConfig
	dir      string
	logger   *slog.Logger
	execFn   execFunc
	progress ProgressFunc
}

// Option configures an Installer.
type Option func(*Installer)

// WithLogger sets the installer's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Installer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithProgress sets the callback receiving command starts and output.
func WithProgress(fn ProgressFunc) Option {
	return func(i *Installer) {
		if fn != nil {
			i.progress = fn
		}
	}
}

// withExec replaces the command runner.
func withExec(fn execFunc) Option {
	return func(i *Installer) {
		i.execFn = fn
	}
}

// New creates an Installer for the project rooted at dir.
func New(cfg config.InstallConfig, dir string, opts ...Option) *Installer {
	i := &Installer{
		cfg:      cfg,
		dir:      dir,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		execFn:   execCommand,
		progress: func(Command, string) {},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Plan returns the commands Install would run: the init command, then one
// install command per package whose condition holds, in manifest order.
func (i *Installer) Plan(answers *models.ProjectAnswers) []Command {
	var cmds []Command
	if len(i.cfg.InitArgs) > 0 {
		cmds = append(cmds, Command{
			Label: "Initializing new Node.js project...",
			Name:  i.cfg.PackageManager,
			Args:  append([]string(nil), i.cfg.InitArgs...),
		})
	}
	for _, pkg := range i.cfg.Packages {
		if !pkg.When.Holds(answers) {
			continue
		}
		args := append(append([]string(nil), i.cfg.InstallArgs...), pkg.Name)
		cmds = append(cmds, Command{
			Label: fmt.Sprintf("Installing %s...", pkg.DisplayName()),
			Name:  i.cfg.PackageManager,
			Args:  args,
		})
	}
	return cmds
}

// Install runs the planned commands sequentially. The first failing command
// aborts the rest; commands already run are not undone.
func (i *Installer) Install(ctx context.Context, answers *models.ProjectAnswers) error {
	for _, cmd := range i.Plan(answers) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("install: %w", err)
		}

		i.progress(cmd, "")
		i.logger.Debug("running install command", "cmd", cmd.String(), "dir", i.dir)

		stdout, stderr, err := i.execFn(ctx, i.dir, cmd.Name, cmd.Args...)
		if out := strings.TrimSpace(stdout); out != "" {
			i.progress(cmd, out)
		}

		errMsg := strings.TrimSpace(stderr)
		if err != nil {
			if errors.Is(err, ErrPackageManagerNotFound) {
				return err
			}
			if errMsg == "" {
				errMsg = err.Error()
			}
			return fmt.Errorf("execute %s: %w: %s", cmd, ErrCommandFailed, errMsg)
		}
		if errMsg != "" {
			return fmt.Errorf("execute %s: %w: %s", cmd, ErrCommandFailed, errMsg)
		}
	}
	return nil
}

// execCommand runs a command and returns its stdout and stderr.
func execCommand(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return "", "", fmt.Errorf("%s lookup: %w", name, ErrPackageManagerNotFound)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), stderr.String(), err
}
