package runtime

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/bushkit/bush/internal/platform"
	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ShellExecutor creates directories on Fs and runs commands with the
// mvdan.cc/sh interpreter. Output is discarded unless Stdout or Stderr are
// set. Env defaults to the process environment.
type ShellExecutor struct {
	Fs     afero.Fs
	Stdout io.Writer
	Stderr io.Writer
	Env    []string
}

// NewShellExecutor returns an executor over fsys.
func NewShellExecutor(fsys afero.Fs) *ShellExecutor {
	return &ShellExecutor{Fs: fsys}
}

// EnsureDir creates dir on the executor's filesystem.
func (e *ShellExecutor) EnsureDir(_ context.Context, dir string) error {
	return platform.EnsureDir(e.Fs, dir)
}

// Invoke runs inv and waits for it. A non-zero exit is a *ProcessError.
func (e *ShellExecutor) Invoke(ctx context.Context, inv Invocation) error {
	line, err := CommandLine(inv)
	if err != nil {
		return &ProcessError{Command: inv.Manager, Dir: inv.Dir, ExitCode: -1, Err: err}
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(line), "manager")
	if err != nil {
		return &ProcessError{Command: line, Dir: inv.Dir, ExitCode: -1, Err: err}
	}

	env := e.Env
	if env == nil {
		env = os.Environ()
	}

	runner, err := interp.New(
		interp.Dir(inv.Dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, writerOrDiscard(e.Stdout), writerOrDiscard(e.Stderr)),
	)
	if err != nil {
		return &ProcessError{Command: line, Dir: inv.Dir, ExitCode: -1, Err: err}
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return &ProcessError{Command: line, Dir: inv.Dir, ExitCode: int(exitStatus)}
		}
		return &ProcessError{Command: line, Dir: inv.Dir, ExitCode: -1, Err: err}
	}
	return nil
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
