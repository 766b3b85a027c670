// Package cli_test provides tests for the CLI package.
package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/tagtint/internal/cli"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// setupGame creates a small game tree and returns its path.
func setupGame(t *testing.T) string {
	t.Helper()
	game := t.TempDir()

	writeFile(t, filepath.Join(game, "common", "country_tags", "00_countries.txt"),
		"SWE = \"countries/Sweden.txt\"\nDAN = \"countries/Denmark.txt\"\n")
	writeFile(t, filepath.Join(game, "common", "countries", "Sweden.txt"), "color = { 5 78 139 }\n")
	writeFile(t, filepath.Join(game, "common", "countries", "Denmark.txt"), "color = { 200 10 10 }\n")
	writeFile(t, filepath.Join(game, "history", "provinces", "1-Stockholm.txt"), "owner = SWE\ncontroller = SWE\n")
	writeFile(t, filepath.Join(game, "events", "Danish.txt"), "tag = DAN\n")

	return game
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return outBuf.String(), err
}

func TestRecolourCommand(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	game := setupGame(t)
	out := filepath.Join(t.TempDir(), "mod", "common")

	stdout, err := run(t, "recolour", "-q", "--game-process", "", game, out)
	if err != nil {
		t.Fatalf("recolour failed: %v", err)
	}

	for _, name := range []string{"Sweden.txt", "Denmark.txt"} {
		data, err := os.ReadFile(filepath.Join(out, "countries", name))
		if err != nil {
			t.Errorf("%s not written: %v", name, err)
			continue
		}
		if !strings.HasPrefix(string(data), "color = { ") {
			t.Errorf("%s has unexpected content %q", name, data)
		}
	}

	swe := strings.Index(stdout, "SWE")
	dan := strings.Index(stdout, "DAN")
	if swe < 0 || dan < 0 || swe > dan {
		t.Errorf("Expected SWE (2 hits) listed before DAN (1 hit):\n%s", stdout)
	}
	if !strings.Contains(stdout, "Recoloured 2 tags") {
		t.Errorf("Missing summary line:\n%s", stdout)
	}
}

func TestRecolourDryRun(t *testing.T) {
	game := setupGame(t)
	out := filepath.Join(t.TempDir(), "out")

	stdout, err := run(t, "recolour", "-q", "--dry-run", "--game-process", "", game, out)
	if err != nil {
		t.Fatalf("recolour --dry-run failed: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("Dry run created the output directory")
	}
	if !strings.Contains(stdout, "Dry run: 2 tags planned") {
		t.Errorf("Missing dry run summary:\n%s", stdout)
	}
}

func TestRecolourArchive(t *testing.T) {
	game := setupGame(t)
	archive := filepath.Join(t.TempDir(), "colours.tar.xz")

	if _, err := run(t, "recolour", "-q", "--archive", "--game-process", "", game, archive); err != nil {
		t.Fatalf("recolour --archive failed: %v", err)
	}
	info, err := os.Stat(archive)
	if err != nil {
		t.Fatalf("Archive not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Archive is empty")
	}
}

func TestRecolourPaletteExhausted(t *testing.T) {
	game := setupGame(t)

	_, err := run(t, "recolour", "-q", "--palette-size", "1", "--game-process", "", game, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "palette exhausted") {
		t.Errorf("Expected palette exhausted error, got %v", err)
	}
}

func TestRecolourFailureKeepsExistingArchive(t *testing.T) {
	game := setupGame(t)
	dir := t.TempDir()
	archive := filepath.Join(dir, "colours.tar.xz")
	writeFile(t, archive, "previous good archive")

	_, err := run(t, "recolour", "-q", "--archive", "--palette-size", "1", "--game-process", "", game, archive)
	if err == nil || !strings.Contains(err.Error(), "palette exhausted") {
		t.Fatalf("Expected palette exhausted error, got %v", err)
	}

	data, err := os.ReadFile(archive)
	if err != nil {
		t.Fatalf("Existing archive removed: %v", err)
	}
	if string(data) != "previous good archive" {
		t.Errorf("Existing archive was overwritten with %d bytes", len(data))
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Failed run left %d files in the output directory, want 1", len(entries))
	}
}

func TestRecolourConfigFile(t *testing.T) {
	game := setupGame(t)
	// Restrict the corpus to events so DAN outranks SWE.
	writeFile(t, filepath.Join(game, "tagtint.yaml"), "corpus_dirs:\n  - events\ngame_process: \"\"\n")

	stdout, err := run(t, "recolour", "-q", "--dry-run", game, t.TempDir())
	if err != nil {
		t.Fatalf("recolour failed: %v", err)
	}
	if strings.Index(stdout, "DAN") > strings.Index(stdout, "SWE") {
		t.Errorf("Config file corpus_dirs not applied:\n%s", stdout)
	}
}

func TestRecolourInvalidFlags(t *testing.T) {
	game := setupGame(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown metric", args: []string{"recolour", "--metric", "hsv", game, t.TempDir()}},
		{name: "negative palette", args: []string{"recolour", "--palette-size", "-3", game, t.TempDir()}},
		{name: "missing output", args: []string{"recolour", game}},
		{name: "missing config", args: []string{"recolour", "--config", filepath.Join(game, "nope.yaml"), game, t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Errorf("Expected %v to fail", tt.args)
			}
		})
	}
}

func TestRankCommand(t *testing.T) {
	game := setupGame(t)

	stdout, err := run(t, "rank", "-q", game)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}

	lines := strings.Split(stdout, "\n")
	if len(lines) < 4 {
		t.Fatalf("Unexpected rank output:\n%s", stdout)
	}
	if !strings.Contains(lines[2], "SWE") || !strings.Contains(lines[2], "2") {
		t.Errorf("Expected SWE with 2 hits first, got %q", lines[2])
	}
	if !strings.Contains(stdout, "2 tags, 2 corpus files") {
		t.Errorf("Missing summary line:\n%s", stdout)
	}

	limited, err := run(t, "rank", "-q", "--limit", "1", game)
	if err != nil {
		t.Fatalf("rank --limit failed: %v", err)
	}
	if strings.Contains(limited, "DAN") {
		t.Errorf("--limit 1 still listed DAN:\n%s", limited)
	}
}

func TestPaletteCommand(t *testing.T) {
	stdout, err := run(t, "palette", "-c", "8")
	if err != nil {
		t.Fatalf("palette failed: %v", err)
	}
	lines := strings.Fields(stdout)
	if len(lines) != 8 {
		t.Errorf("Expected 8 colours, got %d:\n%s", len(lines), stdout)
	}
	if lines[0] != "#404040" {
		t.Errorf("First colour = %s, want #404040", lines[0])
	}

	jsonOut, err := run(t, "palette", "-c", "27", "-f", "json")
	if err != nil {
		t.Fatalf("palette -f json failed: %v", err)
	}
	var decoded struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(jsonOut), &decoded); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if decoded.Count != 27 {
		t.Errorf("count = %d, want 27", decoded.Count)
	}

	if _, err := run(t, "palette", "-c", "0"); err == nil {
		t.Error("palette -c 0 should fail")
	}
	if _, err := run(t, "palette", "-f", "xml"); err == nil {
		t.Error("palette -f xml should fail")
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "tagtint version") {
		t.Errorf("Unexpected version output %q", stdout)
	}
}
