//go:build integration

package integration_test

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bushkit/bush/internal/bushfile"
	"github.com/bushkit/bush/internal/runtime"
	"github.com/bushkit/bush/internal/walker"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // BUSH_HOME
	RepoDir string // repository root holding bush.yaml
}

// setupTestEnv creates isolated temp directories and points BUSH_HOME at one
// of them. The env var is restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		RepoDir: t.TempDir(),
	}
	t.Setenv("BUSH_HOME", env.HomeDir)
	return env
}

// writeDocument writes bush.yaml into the repository and returns its path.
func (e *testEnv) writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(e.RepoDir, "bush.yaml")
	writeFile(t, path, content)
	return path
}

// run loads the document on the real filesystem and walks it with the
// shell executor.
func (e *testEnv) run(t *testing.T, opts walker.Options) (*walker.Summary, error) {
	t.Helper()

	fsys := afero.NewOsFs()
	doc, err := bushfile.Load(fsys, filepath.Join(e.RepoDir, "bush.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	opts.Root = e.RepoDir
	w, err := walker.New(fsys, doc, runtime.NewShellExecutor(fsys), log.New(io.Discard), opts)
	if err != nil {
		t.Fatalf("walker.New: %v", err)
	}
	return w.Run(t.Context())
}

// fakeManager writes a package-manager stand-in script that appends its
// working directory and arguments to a log file. It returns the manager
// command line and the log path.
func fakeManager(t *testing.T, body string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	script := filepath.Join(dir, "fake-pm.sh")
	writeFile(t, script, "echo \"$PWD $*\" >> '"+logPath+"'\n"+body)
	return "sh " + script, logPath
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the contents of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// readManifest decodes the package.json at path.
func readManifest(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(readFile(t, path)), &m); err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
	return m
}

// bucket returns one dependency bucket of a decoded manifest.
func bucket(m map[string]interface{}, name string) map[string]interface{} {
	b, _ := m[name].(map[string]interface{})
	return b
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
