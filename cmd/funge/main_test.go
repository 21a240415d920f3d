package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/funge/journal"
	"github.com/chazu/funge/vm"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// inTempDir moves the test into an empty directory, optionally with a funge.toml.
func inTempDir(t *testing.T, toml string) string {
	t.Helper()
	dir := t.TempDir()
	if toml != "" {
		if err := os.WriteFile(filepath.Join(dir, "funge.toml"), []byte(toml), 0644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
	return dir
}

func TestRunHello(t *testing.T) {
	inTempDir(t, "")
	code, out, errOut := runCLI(t, "-program", "hello")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	want := "H e l l o ,   W o r l d ! " + vm.DefaultBanner
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRunCountdown(t *testing.T) {
	inTempDir(t, "")
	code, out, errOut := runCLI(t, "-program", "countdown")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	if !strings.HasPrefix(out, "5 4 3 2 1 \n") {
		t.Errorf("output = %q", out)
	}
}

func TestRunRandomAlwaysHaltsOrHitsLimit(t *testing.T) {
	inTempDir(t, "")
	for _, seed := range []string{"1", "2", "3"} {
		code, out, errOut := runCLI(t, "-seed", seed, "-max-steps", "200000")
		if code == 0 && !strings.HasSuffix(out, vm.DefaultBanner) {
			t.Errorf("seed %s: output %q missing banner", seed, out)
		}
		if code != 0 && !strings.Contains(errOut, "step limit exceeded") {
			t.Errorf("seed %s: exit %d, stderr = %s", seed, code, errOut)
		}
	}
}

func TestRunManifestSettings(t *testing.T) {
	inTempDir(t, `
[run]
program = "countdown"
banner = ""
`)
	code, out, errOut := runCLI(t)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	if out != "5 4 3 2 1 " {
		t.Errorf("output = %q, want %q", out, "5 4 3 2 1 ")
	}
}

func TestRunStepLimit(t *testing.T) {
	inTempDir(t, "")
	code, _, errOut := runCLI(t, "-program", "hello", "-max-steps", "3")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(errOut, "step limit exceeded") {
		t.Errorf("stderr = %q, want step limit message", errOut)
	}
}

func TestRunUnknownProgram(t *testing.T) {
	inTempDir(t, "")
	code, _, errOut := runCLI(t, "-program", "nope")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(errOut, `unknown program "nope"`) {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRunList(t *testing.T) {
	code, out, _ := runCLI(t, "-list")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	for _, name := range sampleNames() {
		if !strings.Contains(out, name) {
			t.Errorf("list output missing %s:\n%s", name, out)
		}
	}
}

func TestRunBadFlag(t *testing.T) {
	code, _, _ := runCLI(t, "-no-such-flag")
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestRunJournal(t *testing.T) {
	dir := inTempDir(t, "")
	code, out, errOut := runCLI(t, "-program", "selfmod", "-journal")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	if strings.Contains(errOut, "Warning") {
		t.Errorf("stderr = %q", errOut)
	}

	j, err := journal.Open(filepath.Join(dir, ".funge", "journal.db"))
	if err != nil {
		t.Fatalf("journal.Open failed: %v", err)
	}
	defer j.Close()

	runs, err := j.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.Program != "selfmod" || r.Output != out || r.Err != "" {
		t.Errorf("run = %+v", r)
	}

	snap, err := vm.UnmarshalSnapshot(r.Snapshot)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot failed: %v", err)
	}
	if !snap.Halted || snap.RunID != r.ID || snap.Steps != r.Steps {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Grid[0] != `"@"055+p5.@` {
		t.Errorf("final grid = %q", snap.Grid[0])
	}
}

func TestSamplesHalt(t *testing.T) {
	for _, name := range []string{"hello", "selfmod", "countdown"} {
		s, err := lookupSample(name)
		if err != nil {
			t.Fatal(err)
		}
		interp := vm.NewInterpreter(s.program(), vm.WithOutput(&bytes.Buffer{}), vm.WithStepLimit(10000))
		if err := interp.Execute(context.Background()); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}
