package open

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		want   []string
	}{
		{"nvim", []string{"+12", "chat.txt"}},
		{"/usr/bin/vim", []string{"+12", "chat.txt"}},
		{"code", []string{"--goto", "chat.txt:12"}},
		{"less", []string{"+12", "chat.txt"}},
		{"nano", []string{"+12", "chat.txt"}},
		{"ed", []string{"chat.txt"}},
	}
	for _, tt := range tests {
		cmd := editorCommand(tt.editor, "chat.txt", 12)
		if got := cmd.Args[1:]; !reflect.DeepEqual(got, tt.want) {
			t.Errorf("editorCommand(%q) args = %v, want %v", tt.editor, got, tt.want)
		}
	}
}

func TestOpenAtMissingFile(t *testing.T) {
	if err := OpenAt(filepath.Join(t.TempDir(), "missing.txt"), 1); err == nil {
		t.Error("OpenAt on missing file succeeded")
	}
}
