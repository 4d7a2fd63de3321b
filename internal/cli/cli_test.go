package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolate points config and store at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("SWIPELIST_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("SWIPELIST_STORE_DIR", "")
	t.Setenv("SWIPELIST_FORMAT", "")
	return filepath.Join(dir, "store")
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: swipelist %v\nerr: %v\nstderr:\n%s", args, err, stderr)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s", err, stdout)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func dataList(t *testing.T, env map[string]any) []map[string]any {
	t.Helper()
	xs, ok := env["data"].([]any)
	if !ok {
		t.Fatalf("expected data to be a list; got %#v", env["data"])
	}
	out := make([]map[string]any, len(xs))
	for i, x := range xs {
		out[i], _ = x.(map[string]any)
	}
	return out
}

func titlesOf(es []map[string]any) string {
	var ts []string
	for _, e := range es {
		s, _ := e["title"].(string)
		ts = append(ts, s)
	}
	return strings.Join(ts, ",")
}

func TestCLI_InitWritesStoreAndConfig(t *testing.T) {
	dir := isolate(t)
	env := mustRun(t, "--dir", dir, "init")
	data, _ := env["data"].(map[string]any)
	if data["dir"] != dir {
		t.Fatalf("expected dir %s; got %v", dir, data["dir"])
	}
	if _, err := os.Stat(filepath.Join(dir, "entries.sqlite")); err != nil {
		t.Fatalf("expected the database file: %v", err)
	}
	if _, err := os.Stat(os.Getenv("SWIPELIST_CONFIG")); err != nil {
		t.Fatalf("expected a default config file: %v", err)
	}

	// A second init leaves the config alone.
	env = mustRun(t, "--dir", dir, "init")
	if data, _ := env["data"].(map[string]any); data["config"] != "" {
		t.Fatalf("expected no config write on re-init; got %v", data["config"])
	}
}

func TestCLI_AddListMoveRm(t *testing.T) {
	dir := isolate(t)
	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		env := mustRun(t, "--dir", dir, "add", "--title", title)
		es := dataList(t, env)
		if len(es) != 1 {
			t.Fatalf("expected one added entry; got %d", len(es))
		}
		id, _ := es[0]["id"].(string)
		if !strings.HasPrefix(id, "e-") {
			t.Fatalf("expected an e- entry id; got %q", id)
		}
		ids = append(ids, id)
	}

	if got := titlesOf(dataList(t, mustRun(t, "--dir", dir, "list"))); got != "a,b,c" {
		t.Fatalf("expected a,b,c; got %s", got)
	}
	if got := titlesOf(dataList(t, mustRun(t, "--dir", dir, "move", ids[2], "0"))); got != "c,a,b" {
		t.Fatalf("expected move to return c,a,b; got %s", got)
	}
	if got := titlesOf(dataList(t, mustRun(t, "--dir", dir, "move", ids[2], "99"))); got != "a,b,c" {
		t.Fatalf("expected an index past the end to move to the end; got %s", got)
	}

	mustRun(t, "--dir", dir, "rm", ids[0])
	if got := titlesOf(dataList(t, mustRun(t, "--dir", dir, "list"))); got != "b,c" {
		t.Fatalf("expected b,c after rm; got %s", got)
	}

	mustRun(t, "--dir", dir, "done", ids[1])
	shown := mustRun(t, "--dir", dir, "show", ids[1])
	if e, _ := shown["data"].(map[string]any); e["done"] != true {
		t.Fatalf("expected done entry; got %v", shown["data"])
	}
}

func TestCLI_Errors(t *testing.T) {
	dir := isolate(t)
	mustRun(t, "--dir", dir, "init")

	_, stderr, err := runCLI(t, []string{"--dir", dir, "show", "e-missing"})
	var nf notFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected notFoundError; got %v", err)
	}
	if !strings.Contains(string(stderr), "entry not found: e-missing") {
		t.Fatalf("expected the error on stderr; got %q", stderr)
	}

	_, _, err = runCLI(t, []string{"--dir", dir, "move", "e-missing", "x"})
	var bi badIndexError
	if !errors.As(err, &bi) {
		t.Fatalf("expected badIndexError; got %v", err)
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "add", "--title", "  "}); err == nil {
		t.Fatalf("expected an empty title to fail")
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "rm", "e-missing"}); err == nil {
		t.Fatalf("expected rm of a missing entry to fail")
	}
}

func TestCLI_TextFormat(t *testing.T) {
	dir := isolate(t)
	mustRun(t, "--dir", dir, "add", "--title", "first")
	mustRun(t, "--dir", dir, "add", "--title", "second")

	stdout, _, err := runCLI(t, []string{"--dir", dir, "--format", "text", "list"})
	if err != nil {
		t.Fatalf("list --format text: %v", err)
	}
	out := string(stdout)
	for _, want := range []string{"TITLE", "first", "second"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table output; got:\n%s", want, out)
		}
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "--format", "text", "state"}); err == nil {
		t.Fatalf("expected text format to be rejected for state")
	}
}

func TestCLI_StateDefaults(t *testing.T) {
	dir := isolate(t)
	env := mustRun(t, "--dir", dir, "state")
	data, _ := env["data"].(map[string]any)
	if data["saved"] != false {
		t.Fatalf("expected no saved view state; got %v", data)
	}
	vs, _ := data["viewState"].(map[string]any)
	if vs["version"] != float64(1) {
		t.Fatalf("expected version 1; got %v", vs)
	}
}

func TestCLI_Docs(t *testing.T) {
	isolate(t)
	env := mustRun(t, "docs")
	data, _ := env["data"].(map[string]any)
	if topics, _ := data["topics"].([]any); len(topics) == 0 {
		t.Fatalf("expected topics; got %v", data)
	}

	stdout, _, err := runCLI(t, []string{"docs", "modes", "--raw"})
	if err != nil || !strings.HasPrefix(string(stdout), "# Modes") {
		t.Fatalf("expected raw markdown; got %q (err %v)", stdout, err)
	}
	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected an unknown topic to fail")
	}
}
