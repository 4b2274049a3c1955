package stopwords

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	s, err := Read(strings.NewReader("# comment\nThe\n\nand  hai\n"))
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{"the", "and", "hai"} {
		if !s.Contains(w) {
			t.Errorf("missing %q", w)
		}
	}
	if s.Contains("# comment") || s.Contains("comment") {
		t.Error("comment line was read as words")
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	if err := os.WriteFile(path, []byte("foo\nbar\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains("foo") || s.Contains("the") {
		t.Errorf("unexpected set %v", s)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}

func TestDefault(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains("the") || !s.Contains("hai") {
		t.Error("built-in list lacks expected words")
	}

	var empty Set
	if empty.Contains("the") {
		t.Error("nil set contains a word")
	}
}
