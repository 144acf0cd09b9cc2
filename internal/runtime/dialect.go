package runtime

import (
	"fmt"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Dialect holds the command-line vocabulary of a package manager.
type Dialect struct {
	Add  string
	Dev  string
	Peer string
}

var dialects = map[string]Dialect{
	"npm":  {Add: "install", Dev: "--save-dev", Peer: "--save-peer"},
	"pnpm": {Add: "add", Dev: "--save-dev", Peer: "--save-peer"},
	"yarn": {Add: "add", Dev: "--dev", Peer: "--peer"},
	"bun":  {Add: "add", Dev: "--dev", Peer: "--peer"},
}

// DialectFor returns the dialect of manager. The manager may be a command
// line such as "corepack pnpm"; its last word names the tool. Unknown tools
// use the pnpm dialect.
func DialectFor(manager string) Dialect {
	fields := strings.Fields(manager)
	if len(fields) > 0 {
		tool := filepath.Base(fields[len(fields)-1])
		if d, ok := dialects[tool]; ok {
			return d
		}
	}
	return dialects["pnpm"]
}

// Args returns the arguments appended to the manager for inv.
func Args(inv Invocation) ([]string, error) {
	switch inv.Action {
	case ActionInstall:
		return []string{"install"}, nil
	case ActionAdd:
		if inv.Specifier == "" {
			return nil, fmt.Errorf("add requires a package specifier")
		}
		d := DialectFor(inv.Manager)
		args := []string{d.Add}
		switch inv.Save {
		case SaveDev:
			args = append(args, d.Dev)
		case SavePeer:
			args = append(args, d.Peer)
		}
		return append(args, inv.Specifier), nil
	default:
		return nil, fmt.Errorf("unknown action %q", inv.Action)
	}
}

// CommandLine renders inv as a shell command line. Arguments are quoted;
// the manager is used verbatim.
func CommandLine(inv Invocation) (string, error) {
	manager := strings.TrimSpace(inv.Manager)
	if manager == "" {
		return "", fmt.Errorf("no package manager configured")
	}
	args, err := Args(inv)
	if err != nil {
		return "", err
	}

	parts := []string{manager}
	for _, a := range args {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("quoting %q: %w", a, err)
		}
		parts = append(parts, q)
	}
	return strings.Join(parts, " "), nil
}
