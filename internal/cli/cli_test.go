package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	ogio "github.com/matzehuels/outlinegraph/pkg/io"
)

// testCLI returns a CLI with a disabled cache and captured stdout, plus the
// path of an outline file holding sampleOutline.
func testCLI(t *testing.T) (*CLI, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "outlinegraph.toml")
	cfg := "[cache]\nbackend = \"none\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	docPath := filepath.Join(dir, "outline.txt")
	if err := os.WriteFile(docPath, []byte(sampleOutline), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	c := New(&stderr, LogInfo)
	c.configPath = cfgPath
	c.stdout = &stdout
	return c, &stdout, docPath
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(c.stdout)
	root.SetErr(&bytes.Buffer{})
	return root.Execute()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,dot,json", []string{"svg", "dot", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "notes/plan.txt", "notes/plan"},
		{"", "-", "outline"},
		{"out.svg", "plan.txt", "out"},
		{"out/diagram", "plan.txt", "out/diagram"},
		{"diagram.v2", "plan.txt", "diagram.v2"},
	}
	for _, tt := range tests {
		if got := outputBase(tt.output, tt.input); got != tt.want {
			t.Errorf("outputBase(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"dot":  []byte("digraph {}"),
		"json": []byte("{}"),
	}

	t.Run("multiple", func(t *testing.T) {
		base := filepath.Join(dir, "multi")
		paths, err := writeArtifacts(artifacts, []string{"dot", "json", "dot"}, base, "")
		if err != nil {
			t.Fatalf("writeArtifacts: %v", err)
		}
		want := []string{base + ".dot", base + ".json"}
		if !reflect.DeepEqual(paths, want) {
			t.Errorf("paths = %v, want %v", paths, want)
		}
	})

	t.Run("single explicit output", func(t *testing.T) {
		out := filepath.Join(dir, "graph.gv")
		paths, err := writeArtifacts(artifacts, []string{"dot"}, "ignored", out)
		if err != nil {
			t.Fatalf("writeArtifacts: %v", err)
		}
		if len(paths) != 1 || paths[0] != out {
			t.Errorf("paths = %v, want [%s]", paths, out)
		}
		if got := readFile(t, out); got != "digraph {}" {
			t.Errorf("content = %q", got)
		}
	})
}

func TestPollerChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.txt")
	if err := os.WriteFile(path, []byte("- A\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newPoller(path)
	if changed, err := p.changed(); err != nil || !changed {
		t.Fatalf("first call = %v, %v; want true", changed, err)
	}
	if changed, _ := p.changed(); changed {
		t.Error("unchanged file reported as changed")
	}

	if err := os.WriteFile(path, []byte("- A\n- B\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if changed, _ := p.changed(); !changed {
		t.Error("size change not detected")
	}

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if changed, _ := p.changed(); !changed {
		t.Error("mtime change not detected")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := p.changed(); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "ab")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{filepath.Join(dir, "one"), filepath.Join(sub, "two"), filepath.Join(sub, "three")} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	n, err := clearDir(dir)
	if err != nil {
		t.Fatalf("clearDir: %v", err)
	}
	if n != 3 {
		t.Errorf("cleared %d, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d entries left", len(entries))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir itself should remain: %v", err)
	}
}

func TestFoldCommand(t *testing.T) {
	c, _, path := testCLI(t)

	if err := execute(t, c, "fold", path, "id_c2"); err != nil {
		t.Fatalf("fold: %v", err)
	}
	lines := strings.Split(readFile(t, path), "\n")
	if !strings.Contains(lines[2], "fold") {
		t.Errorf("line 3 = %q, want a fold marker", lines[2])
	}

	if err := execute(t, c, "show", path, "3"); err != nil {
		t.Fatalf("show: %v", err)
	}
	lines = strings.Split(readFile(t, path), "\n")
	if strings.Contains(lines[2], "fold") || !strings.Contains(lines[2], "id_c2") {
		t.Errorf("after show, line 3 = %q", lines[2])
	}
}

func TestEditDryRun(t *testing.T) {
	c, stdout, path := testCLI(t)

	if err := execute(t, c, "highlight", "--dry-run", path, "1"); err != nil {
		t.Fatalf("highlight: %v", err)
	}
	if got := readFile(t, path); got != sampleOutline {
		t.Error("dry run modified the file")
	}
	first, _, _ := strings.Cut(stdout.String(), "\n")
	if !strings.Contains(first, "!") {
		t.Errorf("dry-run output line 1 = %q, want a highlight", first)
	}
}

func TestEditUnknownRef(t *testing.T) {
	c, _, path := testCLI(t)

	for _, args := range [][]string{
		{"hide", path, "nope"},
		{"fold", path, "99"},
		{"link", path, "1", "missing"},
	} {
		if err := execute(t, c, args...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
	if got := readFile(t, path); got != sampleOutline {
		t.Error("failed edit modified the file")
	}
}

func TestIDCommand(t *testing.T) {
	c, stdout, path := testCLI(t)

	if err := execute(t, c, "id", path, "1", "id_c2"); err != nil {
		t.Fatalf("id: %v", err)
	}
	out := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(out) != 2 {
		t.Fatalf("output = %q, want two lines", stdout.String())
	}
	if out[1] != "3\tid_c2" {
		t.Errorf("existing id line = %q", out[1])
	}
	num, id, _ := strings.Cut(out[0], "\t")
	if num != "1" || id == "" {
		t.Fatalf("new id line = %q", out[0])
	}
	if !strings.Contains(readFile(t, path), id) {
		t.Errorf("id %q not written to the file", id)
	}
}

func TestLinkCommand(t *testing.T) {
	c, _, path := testCLI(t)

	if err := execute(t, c, "link", path, "c1", "id_c2"); err != nil {
		t.Fatalf("link: %v", err)
	}
	lines := strings.Split(readFile(t, path), "\n")
	if !strings.Contains(lines[4], ">id_c2") {
		t.Errorf("line 5 = %q, want >id_c2", lines[4])
	}
}

func TestCompileFormatJSON(t *testing.T) {
	c, stdout, path := testCLI(t)

	if err := execute(t, c, "compile", "--format", "json", "--fold", "id_c2", path); err != nil {
		t.Fatalf("compile: %v", err)
	}
	g, err := ogio.ReadJSON(stdout)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(g.Nodes) != 4 {
		t.Errorf("nodes = %d, want 4", len(g.Nodes))
	}
	if g.Stats == nil || g.Stats.Collapsed != 1 {
		t.Errorf("stats = %+v, want 1 collapsed", g.Stats)
	}
}

func TestCompileStdin(t *testing.T) {
	c, stdout, _ := testCLI(t)
	c.stdin = strings.NewReader("- A\n  - B\n")

	if err := execute(t, c, "compile", "-f", "yaml", "-"); err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !strings.Contains(stdout.String(), "label: B") {
		t.Errorf("yaml output missing B:\n%s", stdout)
	}
}

func TestRenderDOT(t *testing.T) {
	c, _, path := testCLI(t)
	out := filepath.Join(filepath.Dir(path), "graph.dot")

	if err := execute(t, c, "render", "-f", "dot", "--rankdir", "lr", "-o", out, path); err != nil {
		t.Fatalf("render: %v", err)
	}
	dot := readFile(t, out)
	if !strings.HasPrefix(dot, "digraph") {
		t.Errorf("not a DOT file: %.40q", dot)
	}
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("rankdir flag was not applied")
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	c, _, path := testCLI(t)
	if err := execute(t, c, "render", "-f", "gif", path); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestCachePath(t *testing.T) {
	c, stdout, _ := testCLI(t)
	if err := execute(t, c, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != c.Config.Cache.Dir {
		t.Errorf("cache path = %q, want %q", stdout, c.Config.Cache.Dir)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		c, stdout, _ := testCLI(t)
		if err := execute(t, c, "completion", shell); err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(stdout.String(), "outlinegraph") {
			t.Errorf("%s script does not mention outlinegraph", shell)
		}
	}
}
