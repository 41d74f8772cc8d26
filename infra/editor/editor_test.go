package editor

import (
	"os"
	"strings"
	"testing"
)

func TestCmd_UsesEditorAndWritesTemplate(t *testing.T) {
	t.Setenv("EDITOR", "cat")
	e := NewEnvEditor()

	cmd, path, err := e.Cmd("Team-up idea", "hello #Jeff")
	if err != nil {
		t.Fatalf("cmd failed: %v", err)
	}
	defer os.Remove(path)
	if cmd.Args[0] != "cat" || cmd.Args[len(cmd.Args)-1] != path {
		t.Fatalf("unexpected args: %v", cmd.Args)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read temp file failed: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "# Team-up idea\n") || !strings.Contains(text, "hello #Jeff") {
		t.Fatalf("unexpected template content: %q", text)
	}
}

func TestReadContent_StripsInstructionAndDeletesFile(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantTitle string
		wantText  string
	}{
		{"text only", "\nline1\nline2\n", "", "line1\nline2"},
		{"title and text", "# My title \n\nbody #tag\n", "My title", "body #tag"},
		{"hashtag line is not a title", "#Galacta rules\n", "", "#Galacta rules"},
		{"empty", "\n\n", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnvEditor()
			f, err := os.CreateTemp("", "rivalsnexus-test-*.md")
			if err != nil {
				t.Fatalf("create temp failed: %v", err)
			}
			path := f.Name()
			_, _ = f.WriteString(instructionComment + tt.body)
			_ = f.Close()

			title, text, err := e.ReadContent(path)
			if err != nil {
				t.Fatalf("read content failed: %v", err)
			}
			if title != tt.wantTitle || text != tt.wantText {
				t.Fatalf("got (%q, %q), want (%q, %q)", title, text, tt.wantTitle, tt.wantText)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Fatalf("expected temp file to be deleted")
			}
		})
	}
}
