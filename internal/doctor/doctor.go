package doctor

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/bushkit/bush/internal/bushfile"
	"github.com/bushkit/bush/internal/linker"
	"github.com/bushkit/bush/internal/manifest"
	"github.com/bushkit/bush/internal/matcher"
	"github.com/bushkit/bush/internal/workspace"
)

// Level grades a finding.
type Level int

// Finding levels.
const (
	LevelOK Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Marker returns the bracketed tag printed before a finding.
func (l Level) Marker() string {
	switch l {
	case LevelInfo:
		return "[INFO]"
	case LevelWarn:
		return "[WARN]"
	case LevelError:
		return "[FAIL]"
	default:
		return "[ OK ]"
	}
}

// Finding is one diagnostic.
type Finding struct {
	Level   Level
	Check   string
	Subject string
	Message string
}

func (f Finding) String() string {
	if f.Subject == "" {
		return f.Message
	}
	return f.Subject + ": " + f.Message
}

// Report collects findings in check order.
type Report struct {
	Findings []Finding
}

func (r *Report) add(level Level, check, subject, format string, args ...interface{}) {
	r.Findings = append(r.Findings, Finding{
		Level:   level,
		Check:   check,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}

// Count returns the number of findings at level.
func (r *Report) Count(level Level) int {
	n := 0
	for _, f := range r.Findings {
		if f.Level == level {
			n++
		}
	}
	return n
}

// HasErrors reports whether any finding is an error.
func (r *Report) HasErrors() bool { return r.Count(LevelError) > 0 }

// Check names.
const (
	CheckManager  = "manager"
	CheckTemplate = "template"
	CheckPatterns = "patterns"
	CheckVersions = "versions"
	CheckLinks    = "links"
	CheckGaps     = "gaps"
)

// Options configure a Doctor.
type Options struct {
	// LookPath resolves the package manager binary. Defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

// Doctor runs every check over one repository.
type Doctor struct {
	repo    *workspace.Repository
	matcher *matcher.Matcher
	opts    Options
}

// New returns a Doctor for repo.
func New(repo *workspace.Repository, opts Options) *Doctor {
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}
	return &Doctor{repo: repo, matcher: matcher.New(), opts: opts}
}

// Run performs all checks.
func (d *Doctor) Run() *Report {
	r := &Report{}
	d.checkManager(r)
	d.checkTemplate(r)
	d.checkPatterns(r)
	d.checkVersions(r)
	d.checkLinks(r)
	d.checkGaps(r)
	return r
}

func (d *Doctor) checkManager(r *Report) {
	manager := d.repo.Config.ManagerOrDefault()
	fields := strings.Fields(manager)
	if len(fields) == 0 {
		r.add(LevelError, CheckManager, "", "no package manager configured")
		return
	}
	path, err := d.opts.LookPath(fields[0])
	if err != nil {
		r.add(LevelWarn, CheckManager, fields[0], "not found on PATH")
		return
	}
	r.add(LevelOK, CheckManager, fields[0], "found at %s", path)
}

func (d *Doctor) checkTemplate(r *Report) {
	if _, err := manifest.Parse([]byte(d.repo.Config.TemplateOrDefault())); err != nil {
		r.add(LevelError, CheckTemplate, "", "not a JSON object: %v", err)
		return
	}
	r.add(LevelOK, CheckTemplate, "", "valid")
}

func (d *Doctor) checkPatterns(r *Report) {
	before := len(r.Findings)
	for _, ws := range d.repo.Workspaces() {
		d.checkRuleKeys(r, ws, "attributes", ws.Config.Attributes.Keys())
		d.checkRuleKeys(r, ws, "references", ws.Config.References.Keys())
	}
	if len(r.Findings) == before {
		r.add(LevelOK, CheckPatterns, "", "all rule patterns compile")
	}
}

func (d *Doctor) checkRuleKeys(r *Report, ws *workspace.Workspace, table string, keys []string) {
	for _, key := range keys {
		subject := fmt.Sprintf("%s.%s[%s]", ws.Name, table, key)
		if matcher.IsRegex(key) {
			if _, err := d.matcher.Compile(key); err != nil {
				r.add(LevelError, CheckPatterns, subject, "%v", err)
				continue
			}
		}
		if !d.selectsAny(ws, key) {
			r.add(LevelWarn, CheckPatterns, subject, "matches no address")
		}
	}
}

func (d *Doctor) selectsAny(ws *workspace.Workspace, pattern string) bool {
	for _, addr := range ws.Tree.Addresses() {
		if ok, err := d.matcher.Match(pattern, addr); err == nil && ok {
			return true
		}
	}
	return false
}

func (d *Doctor) checkVersions(r *Report) {
	cfg := d.repo.Config
	before := len(r.Findings)

	d.checkRefs(r, "packages", &cfg.Packages)
	d.checkRefs(r, "references", &cfg.References)
	d.checkRefs(r, "root.references", &cfg.Root.References)
	for _, ws := range d.repo.Workspaces() {
		for _, key := range ws.Config.Attributes.Keys() {
			rule, _ := ws.Config.Attributes.Get(key)
			d.checkRefs(r, fmt.Sprintf("%s.attributes[%s]", ws.Name, key), &rule.References)
		}
	}

	if len(r.Findings) == before {
		r.add(LevelOK, CheckVersions, "", "all external versions are valid")
	}
}

func (d *Doctor) checkRefs(r *Report, where string, refs *bushfile.Ordered[bushfile.Ref]) {
	for _, name := range refs.Keys() {
		ref, _ := refs.Get(name)
		if ref.Version == "" {
			continue
		}
		if !ValidVersion(ref.Version) {
			r.add(LevelWarn, CheckVersions, where+"."+name, "%q is neither a semver range, a dist-tag nor a protocol specifier", ref.Version)
		}
	}
}

func (d *Doctor) checkLinks(r *Report) {
	before := len(r.Findings)
	for _, ws := range d.repo.Workspaces() {
		refs := &ws.Config.References
		for _, key := range refs.Keys() {
			targets, _ := refs.Get(key)
			for _, raw := range targets.Keys() {
				subject := fmt.Sprintf("%s.references[%s] -> %s", ws.Name, key, raw)
				if _, _, err := linker.ResolveTarget(d.repo, raw, ws.Name); err != nil {
					r.add(LevelError, CheckLinks, subject, "%v", err)
				}
			}
		}
	}
	if len(r.Findings) == before {
		r.add(LevelOK, CheckLinks, "", "all link targets resolve")
	}
}

func (d *Doctor) checkGaps(r *Report) {
	for _, ws := range d.repo.Workspaces() {
		for _, addr := range ws.Tree.Addresses() {
			node, _ := ws.Tree.Lookup(addr)
			if len(node.Children) == 0 && !ws.HasName(addr) {
				r.add(LevelInfo, CheckGaps, ws.Name+"@"+addr, "unnamed package; run with --fill-gaps to add a placeholder")
			}
		}
	}
}
