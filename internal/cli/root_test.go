package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDesign = `
name = "pairtest"

[[modules]]
name   = "m1"
width  = 6
height = 10

[[modules]]
name   = "m2"
width  = 6
height = 10

[symmetry]
type  = "vertical"
pairs = [["m1", "m2"]]
`

func writeTestDesign(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "design.toml")
	if err := os.WriteFile(path, []byte(testDesign), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI executes the command tree with the given arguments and returns its
// stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := runCLI(t, "--help")
	if err != nil {
		t.Fatalf("--help error = %v", err)
	}
	for _, cmd := range []string{"pack", "anneal", "render", "serve", "cache"} {
		if !strings.Contains(out, cmd) {
			t.Errorf("help output missing %q", cmd)
		}
	}
}

func TestPackCommand(t *testing.T) {
	design := writeTestDesign(t)
	out, err := runCLI(t, "--cache", "none", "pack", design)
	if err != nil {
		t.Fatalf("pack error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "pairtest") {
		t.Errorf("summary missing design name:\n%s", out)
	}
	if !strings.Contains(out, "m1") || !strings.Contains(out, "m2") {
		t.Errorf("summary missing modules:\n%s", out)
	}
}

func TestPackCommandWritesLayout(t *testing.T) {
	design := writeTestDesign(t)
	out := filepath.Join(t.TempDir(), "layout.json")
	if _, err := runCLI(t, "--cache", "none", "pack", design, "--out", out); err != nil {
		t.Fatalf("pack error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("layout not written: %v", err)
	}
	if !strings.Contains(string(data), `"axis"`) {
		t.Errorf("layout JSON missing axis:\n%s", data)
	}
}

func TestPackCommandBadDesign(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not toml ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "--cache", "none", "pack", path); err == nil {
		t.Error("pack of invalid design should fail")
	}
}

func TestRenderCommand(t *testing.T) {
	design := writeTestDesign(t)
	outDir := t.TempDir()
	if _, err := runCLI(t, "--cache", "none", "render", design,
		"--format", "svg,json,dot", "--out", outDir); err != nil {
		t.Fatalf("render error = %v", err)
	}
	for _, ext := range []string{"svg", "json", "dot"} {
		path := filepath.Join(outDir, "design."+ext)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("artifact %s not written: %v", path, err)
		}
	}
}

func TestAnnealCommand(t *testing.T) {
	design := writeTestDesign(t)
	out, err := runCLI(t, "--cache", "none", "anneal", design, "--steps", "50", "--seed", "3")
	if err != nil {
		t.Fatalf("anneal error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "steps") {
		t.Errorf("anneal summary missing steps:\n%s", out)
	}
}

func TestCacheDirCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "--cache-dir", dir, "cache", "dir")
	if err != nil {
		t.Fatalf("cache dir error = %v", err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache dir = %q, want %q", strings.TrimSpace(out), dir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "entry.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "--cache-dir", dir, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir not empty after clear: %v", entries)
	}
}

func TestUnknownCacheBackend(t *testing.T) {
	design := writeTestDesign(t)
	if _, err := runCLI(t, "--cache", "bogus", "pack", design); err == nil {
		t.Error("unknown cache backend should fail")
	}
}
