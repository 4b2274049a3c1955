package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// OpenAt opens the export file in $EDITOR (less if unset) at line.
func OpenAt(filePath string, line int) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file not found: %s", filePath)
	}
	if line < 1 {
		line = 1
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	cmd := editorCommand(editor, filePath, line)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// editorCommand builds the jump-to-line invocation for editors that have one.
func editorCommand(editor, filePath string, line int) *exec.Cmd {
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return exec.Command(editor, fmt.Sprintf("+%d", line), filePath)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(line))
	case strings.Contains(editor, "less") || strings.Contains(editor, "nano"):
		return exec.Command(editor, "+"+strconv.Itoa(line), filePath)
	default:
		return exec.Command(editor, filePath)
	}
}
