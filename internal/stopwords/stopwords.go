// Package stopwords loads the flat word list excluded from word counts.
package stopwords

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed default.txt
var defaultList string

// Set is a lowercase word set. The nil Set is empty.
type Set map[string]struct{}

func (s Set) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Default returns the built-in list.
func Default() Set {
	s, _ := Read(strings.NewReader(defaultList))
	return s
}

// Load reads the list at path, or the built-in list when path is empty.
func Load(path string) (Set, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stopwords: %w", err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read stopwords %s: %w", path, err)
	}
	return s, nil
}

// Read parses whitespace separated words; '#' starts a comment line.
func Read(r io.Reader) (Set, error) {
	s := make(Set)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, w := range strings.Fields(line) {
			s[strings.ToLower(w)] = struct{}{}
		}
	}
	return s, scanner.Err()
}
