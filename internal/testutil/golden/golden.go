// Package golden reads and refreshes expected-output files for rendered
// release notes. Run tests with -update to rewrite the files.
package golden

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Update rewrites golden files from the current output when set.
var Update = flag.Bool("update", false, "update golden files")

// TestdataDir returns the testdata directory next to the calling test file.
func TestdataDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(1)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}

// Read returns the content of <dir>/<name>.golden, or "" if it does not exist.
func Read(t *testing.T, dir, name string) string {
	t.Helper()
	checkName(t, name)

	path := filepath.Join(dir, name+".golden")
	data, err := os.ReadFile(path) //nolint:gosec // testdata path controlled by test
	if err != nil {
		if os.IsNotExist(err) {
			t.Logf("golden file %s missing; run with -update to create it", path)
			return ""
		}
		t.Fatalf("reading golden %s: %v", path, err)
	}
	return string(data)
}

// Write stores content as <dir>/<name>.golden.
func Write(t *testing.T, dir, name, content string) {
	t.Helper()
	checkName(t, name)

	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("creating testdata dir: %v", err)
	}
	path := filepath.Join(dir, name+".golden")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing golden %s: %v", path, err)
	}
}

func checkName(t *testing.T, name string) {
	t.Helper()
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		t.Fatalf("invalid golden name %q", name)
	}
}
