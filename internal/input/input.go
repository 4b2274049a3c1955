// Package input loads the single chat export a session works on.
package input

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxExportSize bounds what is read into memory.
const maxExportSize = 256 * 1024 * 1024

var (
	ErrUnsupported = errors.New("archive holds no chat text file")
	ErrNotUTF8     = errors.New("chat export is not valid UTF-8")
	ErrTooLarge    = errors.New("chat export too large")
)

// Export is the raw text of one chat export.
type Export struct {
	Name string // file name, archive entry, or "stdin"
	Text string
	// Plain is true when Name is a plain text file that can be opened at a line.
	Plain bool
}

// Load reads path: "-" for stdin, a WhatsApp .zip export, or a text file.
func Load(path string) (*Export, error) {
	switch {
	case path == "-":
		return read("stdin", os.Stdin, false)
	case strings.EqualFold(filepath.Ext(path), ".zip"):
		return loadZip(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(path, f, true)
}

func loadZip(path string) (*Export, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	entry := chatEntry(zr.File)
	if entry == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", entry.Name, err)
	}
	defer rc.Close()
	return read(path+":"+entry.Name, rc, false)
}

// chatEntry picks the chat text inside an export archive, preferring the
// names WhatsApp uses over any other .txt file.
func chatEntry(files []*zip.File) *zip.File {
	var fallback *zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".txt") {
			continue
		}
		base := filepath.Base(f.Name)
		if base == "_chat.txt" || strings.HasPrefix(base, "WhatsApp Chat") {
			return f
		}
		if fallback == nil {
			fallback = f
		}
	}
	return fallback
}

func read(name string, r io.Reader, plain bool) (*Export, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxExportSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) > maxExportSize {
		return nil, fmt.Errorf("%s: %w", name, ErrTooLarge)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotUTF8)
	}
	return &Export{Name: name, Text: string(data), Plain: plain}, nil
}
