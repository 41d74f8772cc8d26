package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $EDITOR (fallback: "vi").
// The caller runs the command through tea.Exec so the terminal is released
// while the editor is open.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const instructionComment = `<!--
Rivals Nexus: write your post below.

- The first line starting with "# " becomes the title.
- Use #hashtags anywhere in the text.
- SAVE and EXIT to continue (e.g., :wq in vi).
- Emptying the file cancels.
-->

`

// Cmd writes the instruction block, an optional title line and content to a
// temp file and returns the editor command for it.
func (e *EnvEditor) Cmd(title, content string) (*exec.Cmd, string, error) {
	editorCmd := os.Getenv("EDITOR")
	if editorCmd == "" {
		editorCmd = "vi"
	}

	tmpFile, err := os.CreateTemp("", "rivalsnexus-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	body := instructionComment
	if title != "" {
		body += "# " + title + "\n\n"
	}
	body += content
	if _, err := tmpFile.WriteString(body); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	return exec.Command(editorCmd, tmpPath), tmpPath, nil
}

// ReadContent reads and removes the temp file, strips the instruction block
// and splits off a leading "# " title line.
func (e *EnvEditor) ReadContent(path string) (title, text string, err error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading temp file: %w", err)
	}

	content := string(data)
	if idx := strings.Index(content, "-->"); idx != -1 {
		content = content[idx+3:]
	}
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "# ") {
		line, rest, _ := strings.Cut(content, "\n")
		title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		content = strings.TrimSpace(rest)
	}
	return title, content, nil
}
