package gamefile

import (
	"archive/tar"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/tagtint/internal/colour"
	"github.com/ulikunitz/xz"
)

const swedenScript = `graphical_culture = scandinaviangfx

color = { 5  78 139 }

revolutionary_colors = { 1 2 3 }

historical_idea_groups = {
	economic_ideas
}
`

func TestDecodeEncodeLatin1(t *testing.T) {
	raw := []byte{'G', 0xF6, 't', 'a'} // "Göta" in ISO-8859-1

	text, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if text != "Göta" {
		t.Errorf("Decode() = %q, want Göta", text)
	}

	back, err := Encode(text)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if string(back) != string(raw) {
		t.Errorf("Encode() = %v, want %v", back, raw)
	}
}

func TestEncodeRejectsNonLatin1(t *testing.T) {
	if _, err := Encode("Москва"); err == nil {
		t.Error("Encode() should fail for runes outside ISO-8859-1")
	}
}

func TestColourRange(t *testing.T) {
	start, end, ok := ColourRange(swedenScript)
	if !ok {
		t.Fatal("ColourRange() found no colour field")
	}
	if got := swedenScript[start:end]; got != "color = { 5  78 139 }" {
		t.Errorf("ColourRange() selected %q", got)
	}

	if _, _, ok := ColourRange("revolutionary_colors = { 1 2 3 }\n"); ok {
		t.Error("ColourRange() should not match revolutionary_colors")
	}
}

func TestColourBody(t *testing.T) {
	body, ok := ColourBody("\tcolor={ 1 2 3 }")
	if !ok {
		t.Fatal("ColourBody() found no colour field")
	}
	if body != " 1 2 3 " {
		t.Errorf("ColourBody() = %q", body)
	}
}

func TestReplaceColour(t *testing.T) {
	got, err := ReplaceColour(swedenScript, colour.RGB{R: 10, G: 20, B: 30})
	if err != nil {
		t.Fatalf("ReplaceColour() error: %v", err)
	}

	want := `graphical_culture = scandinaviangfx

color = { 10 20 30 }

revolutionary_colors = { 1 2 3 }

historical_idea_groups = {
	economic_ideas
}
`
	if got != want {
		t.Errorf("ReplaceColour() =\n%s\nwant\n%s", got, want)
	}

	if _, err := ReplaceColour("graphical_culture = x\n", colour.RGB{}); !errors.Is(err, ErrNoColourField) {
		t.Errorf("ReplaceColour() error = %v, want ErrNoColourField", err)
	}
}

func TestDirWriter(t *testing.T) {
	root := t.TempDir()
	w := NewDirWriter(root)

	if err := w.WriteFile(filepath.Join("countries", "Sweden.txt"), []byte("data")); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "countries", "Sweden.txt"))
	if err != nil {
		t.Fatalf("Output file missing: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("Output file = %q, want data", got)
	}

	if err := w.WriteFile("../escape.txt", []byte("x")); err == nil {
		t.Error("WriteFile() should reject paths outside the output root")
	}
}

func TestArchiveWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "colours.tar.xz")

	w, err := NewArchiveWriter(path)
	if err != nil {
		t.Fatalf("NewArchiveWriter() error: %v", err)
	}
	files := map[string]string{
		"countries/Sweden.txt":  "color = { 1 2 3 }",
		"countries/Denmark.txt": "color = { 4 5 6 }",
	}
	for _, name := range []string{"countries/Sweden.txt", "countries/Denmark.txt"} {
		if err := w.WriteFile(name, []byte(files[name])); err != nil {
			t.Fatalf("WriteFile(%s) error: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Archive missing: %v", err)
	}
	defer f.Close()

	xzr, err := xz.NewReader(f)
	if err != nil {
		t.Fatalf("xz.NewReader() error: %v", err)
	}
	tr := tar.NewReader(xzr)

	found := 0
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Reading archive: %v", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("Reading %s: %v", header.Name, err)
		}
		if want, ok := files[header.Name]; !ok || string(data) != want {
			t.Errorf("Unexpected entry %s = %q", header.Name, data)
		}
		found++
	}
	if found != len(files) {
		t.Errorf("Archive has %d entries, want %d", found, len(files))
	}
}

func TestArchiveWriterStagesUntilClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colours.tar.xz")
	if err := os.WriteFile(path, []byte("previous archive"), 0o600); err != nil {
		t.Fatalf("Failed to seed archive: %v", err)
	}

	w, err := NewArchiveWriter(path)
	if err != nil {
		t.Fatalf("NewArchiveWriter() error: %v", err)
	}
	if err := w.WriteFile("countries/Sweden.txt", []byte("color = { 1 2 3 }")); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "previous archive" {
		t.Errorf("Destination changed before Close: %q, %v", data, err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Archive missing after Close: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("Archive mode = %v, want 0644", info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the archive in %s, found %d entries", dir, len(entries))
	}
}

func TestArchiveWriterDiscard(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colours.tar.xz")
	if err := os.WriteFile(path, []byte("previous archive"), 0o600); err != nil {
		t.Fatalf("Failed to seed archive: %v", err)
	}

	w, err := NewArchiveWriter(path)
	if err != nil {
		t.Fatalf("NewArchiveWriter() error: %v", err)
	}
	if err := w.WriteFile("countries/Sweden.txt", []byte("color = { 1 2 3 }")); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if err := w.Discard(); err != nil {
		t.Fatalf("Discard() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "previous archive" {
		t.Errorf("Discard() touched the destination: %q, %v", data, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Staged file left behind: %d entries in %s", len(entries), dir)
	}
}
