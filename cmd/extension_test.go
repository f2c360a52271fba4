package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeExtension writes an executable shell script named sbk-<name> in dir.
func writeExtension(t *testing.T, dir, name, script string) {
	t.Helper()
	path := filepath.Join(dir, "sbk-"+name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("Failed to write sbk-%s: %v", name, err)
	}
}

// withLedgerFlag sets the -ledger global flag for the duration of the test.
func withLedgerFlag(t *testing.T, path string) {
	t.Helper()
	old := *ledgerFile
	*ledgerFile = path
	t.Cleanup(func() { *ledgerFile = old })
}

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are tested with shell scripts")
	}
	tempDir := t.TempDir()
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv(EnvCurrency, "EUR")
	t.Setenv(EnvStore, "sqlite")
	t.Setenv(EnvLogLevel, "debug")

	ledger := filepath.Join(tempDir, "random_ledger.db")
	withLedgerFlag(t, ledger)

	writeExtension(t, tempDir, "hello", `echo "$SBK_LEDGER_FILE|$SBK_STORE|$SBK_CURRENCY|$LOG_LEVEL|$*" > "$1"`)
	out := filepath.Join(tempDir, "out.txt")

	found, code := RunExtension("hello", []string{out, "extra"})
	if !found {
		t.Fatal("RunExtension() did not find sbk-hello")
	}
	if code != 0 {
		t.Fatalf("RunExtension() exit code = %d, want 0", code)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("extension did not write its output: %v", err)
	}
	want := ledger + "|sqlite|EUR|debug|" + out + " extra"
	if got := strings.TrimSpace(string(data)); got != want {
		t.Errorf("extension output = %q, want %q", got, want)
	}
}

func TestExtensionExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are tested with shell scripts")
	}
	tempDir := t.TempDir()
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	withLedgerFlag(t, filepath.Join(tempDir, "trades.jsonl"))

	writeExtension(t, tempDir, "fail", "exit 3\n")

	found, code := RunExtension("fail", nil)
	if !found {
		t.Fatal("RunExtension() did not find sbk-fail")
	}
	if code != 3 {
		t.Errorf("RunExtension() exit code = %d, want 3", code)
	}
}

func TestExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, code := RunExtension("nothing-like-this", nil); found || code != 0 {
		t.Errorf("RunExtension() = (%v, %d), want (false, 0)", found, code)
	}
}
