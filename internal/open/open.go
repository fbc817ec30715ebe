package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// File opens a prompt or scrap file in $EDITOR, falling back to less.
func File(path string) error {
	return FileAt(path, 1)
}

// FileAt opens the file at a 1-based line for editors that support
// jumping.
func FileAt(path string, line int) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	if line < 1 {
		line = 1
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	cmd := editorCommand(editor, path, line)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func editorCommand(editor, path string, line int) *exec.Cmd {
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return exec.Command(editor, fmt.Sprintf("+%d", line), path)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", path+":"+strconv.Itoa(line))
	case strings.Contains(editor, "less"):
		return exec.Command(editor, "+"+strconv.Itoa(line), path)
	default:
		return exec.Command(editor, path)
	}
}
