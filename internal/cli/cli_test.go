package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bushkit/bush/internal/bushfile"
	"github.com/bushkit/bush/internal/doctor"
	"github.com/bushkit/bush/internal/workspace"
)

func TestResolveRoot(t *testing.T) {
	doc := &bushfile.Document{Config: &bushfile.Config{}, Path: "/repo/config/bush.yaml"}
	cwd, _ := filepath.Abs(".")

	tests := []struct {
		name     string
		explicit string
		start    string
		want     string
	}{
		{"explicit wins", "/elsewhere", "..", "/elsewhere"},
		{"start-location relative to document", "", "..", "/repo"},
		{"absolute start-location", "", "/abs", "/abs"},
		{"current directory", "", "", cwd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc.Config.StartLocation = tt.start
			got, err := resolveRoot(tt.explicit, doc)
			if err != nil {
				t.Fatalf("resolveRoot() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveRoot() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderTree(t *testing.T) {
	cfg, err := bushfile.Parse([]byte(`
workspaces:
  libs:
    scope: acme
    tree: {core: , utils: {fmt: }, draft: }
    names: {core: core, utils.fmt: fmt}
  apps:
    tree: {web: }
    names: {web: web}
`))
	if err != nil {
		t.Fatal(err)
	}
	repo, err := workspace.NewRepository(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	renderTree(&buf, repo)
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	checks := []struct {
		line     int
		contains []string
	}{
		{0, []string{"libs", "@acme"}},
		{1, []string{"core", "LEAF", "@acme/core"}},
		{2, []string{"utils", "GROUP"}},
		{3, []string{"    fmt", "LEAF", "@acme/fmt"}},
		{4, []string{"draft", "GAP"}},
		{6, []string{"apps", "@apps"}},
		{7, []string{"web", "LEAF", "@apps/web"}},
	}
	if len(lines) != 8 {
		t.Fatalf("renderTree() printed %d lines, want 8:\n%s", len(lines), out)
	}
	for _, c := range checks {
		for _, want := range c.contains {
			if !strings.Contains(lines[c.line], want) {
				t.Errorf("line %d = %q, want it to contain %q", c.line, lines[c.line], want)
			}
		}
	}
}

func TestPrintReport(t *testing.T) {
	report := &doctor.Report{Findings: []doctor.Finding{
		{Level: doctor.LevelOK, Check: doctor.CheckManager, Subject: "pnpm", Message: "found at /usr/bin/pnpm"},
		{Level: doctor.LevelError, Check: doctor.CheckLinks, Subject: "libs.references[core] -> ghost@x", Message: `unknown workspace "ghost"`},
		{Level: doctor.LevelInfo, Check: doctor.CheckGaps, Subject: "libs@draft", Message: "unnamed package"},
	}}

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	for _, want := range []string{
		"Package manager check:",
		"[ OK ] pnpm: found at /usr/bin/pnpm",
		"Link check:",
		`[FAIL] libs.references[core] -> ghost@x: unknown workspace "ghost"`,
		"Gap check:",
		"[INFO] libs@draft: unnamed package",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "No problems found.") {
		t.Error("report with findings printed the all-clear line")
	}
}

func TestVersionString(t *testing.T) {
	buildVersion, buildCommit, buildDate = "dev", "unknown", "unknown"
	if got := versionString(); got != "dev (built from source)" {
		t.Errorf("versionString() = %q", got)
	}
	buildVersion, buildCommit, buildDate = "1.2.3", "abc", "2026-01-01"
	if got := versionString(); got != "1.2.3 (commit: abc, built: 2026-01-01)" {
		t.Errorf("versionString() = %q", got)
	}
}
