package matcher

import (
	"errors"
	"testing"

	"github.com/bushkit/bush/internal/bushfile"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		address string
		want    bool
	}{
		{"svc.auth", "svc.auth", true},
		{"svc.auth", "svc.auth.jwt", false},
		{"/^svc\\..*/", "svc.auth", true},
		{"/^svc\\..*/", "libs.core", false},
		{"/^SVC\\./", "svc.auth", true},
		{"/core$/", "libs.core", true},
		{"/core$/", "libs.core.x", false},
		{"/^svc/", "", false},
		{"svc", "", false},
	}

	m := New()
	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.address, func(t *testing.T) {
			got, err := m.Match(tt.pattern, tt.address)
			if err != nil {
				t.Fatalf("Match error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.address, got, tt.want)
			}
		})
	}
}

func TestMatch_InvalidPatternFailsOnUse(t *testing.T) {
	m := New()

	if ok, err := m.Match("/([/", ""); err != nil || ok {
		t.Fatalf("root address should not compile the pattern, got %v, %v", ok, err)
	}

	_, err := m.Match("/([/", "libs.core")
	var pe *PatternError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PatternError, got %v", err)
	}
	if pe.Pattern != "/([/" {
		t.Errorf("Pattern = %q", pe.Pattern)
	}
}

func TestIsRegex(t *testing.T) {
	for p, want := range map[string]bool{"/a/": true, "//": true, "/": false, "a": false, "/a": false} {
		if got := IsRegex(p); got != want {
			t.Errorf("IsRegex(%q) = %v, want %v", p, got, want)
		}
	}
}

func parseConfig(t *testing.T, src string) *bushfile.Config {
	t.Helper()
	cfg, err := bushfile.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return cfg
}

func TestExternals_LastMatchingRuleWinsPerDependency(t *testing.T) {
	cfg := parseConfig(t, `
workspaces:
  a:
    attributes:
      a.b.c:
        references:
          x: {version: "1.0.0"}
          y: {version: "2.0.0", is-dev: yes}
      "/^a\\./":
        references:
          x: {version: "9.9.9", save-peer: yes}
`)
	m := New()
	set, err := m.Externals(cfg, cfg.Workspace("a"), "a.b.c")
	if err != nil {
		t.Fatalf("Externals error: %v", err)
	}

	x, ok := set.Get("x")
	if !ok || x.Version != "9.9.9" || !x.Peer {
		t.Errorf("x = %+v, want the later rule's value", x)
	}
	y, ok := set.Get("y")
	if !ok || y.Version != "2.0.0" || !y.Dev {
		t.Errorf("y = %+v, want the earlier rule's dependency kept", y)
	}
	if set.Len() != 2 {
		t.Errorf("Len = %d, want 2", set.Len())
	}
}

func TestExternals_RuleExample(t *testing.T) {
	cfg := parseConfig(t, `
workspaces:
  w:
    attributes:
      "/^svc\\..*/":
        references:
          left-pad: {version: 1.0.0, is-dev: true}
`)
	m := New()

	set, err := m.Externals(cfg, cfg.Workspace("w"), "svc.auth")
	if err != nil {
		t.Fatalf("Externals error: %v", err)
	}
	if d, ok := set.Get("left-pad"); !ok || d.Version != "1.0.0" || !d.Dev {
		t.Errorf("left-pad = %+v, %v", d, ok)
	}

	set, err = m.Externals(cfg, cfg.Workspace("w"), "libs.core")
	if err != nil {
		t.Fatalf("Externals error: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("libs.core should match nothing, got %v", set.List())
	}
}

func TestResolve_Precedence(t *testing.T) {
	cfg := parseConfig(t, `
packages:
  react: {version: "^18.0.0", save-peer: yes}
  "\\@types/node": {is-dev: yes}
references:
  react: {version: "ignored"}
  lodash: {version: "4.17.21"}
`)

	tests := []struct {
		name string
		ref  bushfile.Ref
		want Dependency
	}{
		{"react", bushfile.Ref{}, Dependency{Name: "react", Version: "^18.0.0", Peer: true}},
		{"react", bushfile.Ref{Version: "17.0.0", SavePeer: bushfile.NewFlag(false)}, Dependency{Name: "react", Version: "17.0.0"}},
		{"lodash", bushfile.Ref{}, Dependency{Name: "lodash", Version: "4.17.21"}},
		{`\@types/node`, bushfile.Ref{}, Dependency{Name: "@types/node", Version: "latest", Dev: true}},
		{"unknown", bushfile.Ref{IsDev: bushfile.NewFlag(true)}, Dependency{Name: "unknown", Version: "latest", Dev: true}},
	}
	for _, tt := range tests {
		if got := Resolve(cfg, tt.name, tt.ref); got != tt.want {
			t.Errorf("Resolve(%q) = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestExternals_InvalidPattern(t *testing.T) {
	cfg := parseConfig(t, "workspaces:\n  w:\n    attributes:\n      \"/(/\":\n        references:\n          x:\n")
	_, err := New().Externals(cfg, cfg.Workspace("w"), "svc")
	var pe *PatternError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PatternError, got %v", err)
	}
}
