package runtime

import (
	"context"
	"fmt"
)

// Executor performs the side effects of a scaffolding run.
type Executor interface {
	// EnsureDir creates dir and any missing parents.
	EnsureDir(ctx context.Context, dir string) error
	// Invoke runs one package-manager command.
	Invoke(ctx context.Context, inv Invocation) error
}

// Action is the package-manager operation requested.
type Action string

// Supported actions.
const (
	ActionInstall Action = "install"
	ActionAdd     Action = "add"
)

// SaveMode selects the manifest bucket an added dependency is saved to.
type SaveMode int

// Save modes.
const (
	SaveProd SaveMode = iota
	SaveDev
	SavePeer
)

func (m SaveMode) String() string {
	switch m {
	case SaveDev:
		return "dev"
	case SavePeer:
		return "peer"
	default:
		return "prod"
	}
}

// Invocation describes one package-manager command. Dir is the working
// directory of the command; the process directory is never changed.
type Invocation struct {
	Dir       string
	Manager   string
	Action    Action
	Specifier string
	Save      SaveMode
}

// ProcessError reports a command that could not run or exited non-zero.
type ProcessError struct {
	Command  string
	Dir      string
	ExitCode int
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("running %q in %s: %v", e.Command, e.Dir, e.Err)
	}
	return fmt.Sprintf("running %q in %s: exit status %d", e.Command, e.Dir, e.ExitCode)
}

func (e *ProcessError) Unwrap() error { return e.Err }
