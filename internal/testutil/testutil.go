// Package testutil provides helpers for building fixture workspaces in tests
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

// Workspace is a fixture AI workspace rooted in a temporary directory
type Workspace struct {
	t    *testing.T
	Root string
}

// NewWorkspace creates an empty fixture workspace
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return &Workspace{t: t, Root: t.TempDir()}
}

// Path returns the absolute path of rel inside the workspace
func (w *Workspace) Path(rel string) string {
	return filepath.Join(w.Root, filepath.FromSlash(rel))
}

// WriteFile writes content to rel, creating parent directories
func (w *Workspace) WriteFile(rel, content string) *Workspace {
	w.t.Helper()
	return w.WriteFileMode(rel, content, 0o644)
}

// WriteFileMode writes content to rel with the given permissions
func (w *Workspace) WriteFileMode(rel, content string, mode os.FileMode) *Workspace {
	w.t.Helper()
	path := w.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.t.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		w.t.Fatalf("Failed to write %s: %v", rel, err)
	}
	if err := os.Chmod(path, mode); err != nil {
		w.t.Fatalf("Failed to chmod %s: %v", rel, err)
	}
	return w
}

// Mkdir creates rel and its parents
func (w *Workspace) Mkdir(rel string) *Workspace {
	w.t.Helper()
	if err := os.MkdirAll(w.Path(rel), 0o755); err != nil {
		w.t.Fatalf("Failed to create %s: %v", rel, err)
	}
	return w
}

// Touch sets the modification time of rel to now minus age
func (w *Workspace) Touch(rel string, age time.Duration) *Workspace {
	w.t.Helper()
	ts := time.Now().Add(-age)
	if err := os.Chtimes(w.Path(rel), ts, ts); err != nil {
		w.t.Fatalf("Failed to touch %s: %v", rel, err)
	}
	return w
}

// WriteNotes writes n markdown files named note-<i>.md under dir
func (w *Workspace) WriteNotes(dir string, n int) *Workspace {
	w.t.Helper()
	for i := 0; i < n; i++ {
		w.WriteFile(filepath.ToSlash(filepath.Join(dir, "note-"+strconv.Itoa(i)+".md")), "# Note\n")
	}
	return w
}

// MinimalWorkspace creates a workspace with only a short CLAUDE.md
func MinimalWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return NewWorkspace(t).WriteFile("CLAUDE.md", "# Project\n")
}

// RichInstructions is a CLAUDE.md exercising every instruction-based check
var RichInstructions = strings.Join([]string{
	"# Project",
	"",
	"## Overview",
	"See @docs/overview.md and @docs/api.md and [design](docs/design.md).",
	"",
	"## Conventions",
	"- Use table tests.",
	"- Never commit secrets.",
	"- Do not push to main.",
	"- Never run destructive migrations.",
	"",
	"## Architecture",
	"Delegate research to subagents.",
	"",
	"## Verification",
	"Run go test ./... and the linter before finishing.",
	"",
	"## Workflow",
	strings.Repeat("Keep changes small and focused. ", 50),
	"",
}, "\n")

// CompleteWorkspace creates a workspace that satisfies the reference catalog
func CompleteWorkspace(t *testing.T) *Workspace {
	t.Helper()
	w := NewWorkspace(t).
		WriteFile("CLAUDE.md", RichInstructions).
		WriteFile(".claude/settings.json", `{
  "permissions": {"allow": ["Bash(go test:*)"], "deny": ["Bash(rm -rf:*)"]},
  "hooks": {"PostToolUse": [{"matcher": "Edit", "hooks": [{"type": "command", "command": "gofmt -w ."}]}]}
}`).
		WriteFileMode(".claude/hooks/format.sh", "#!/bin/sh\ngofmt -w .\n", 0o755).
		WriteFile(".claude/agents/researcher.md", "# Researcher\n").
		WriteFile(".claude/agents/reviewer.md", "# Reviewer\n").
		WriteFile("memory/MEMORY.md", "# Memory index\n").
		WriteNotes("memory", 10).
		WriteNotes("knowledge", 5).
		WriteNotes(".claude/commands", 5)

	for _, name := range []string{"review", "release", "triage"} {
		w.WriteFile(".claude/skills/"+name+"/SKILL.md", "---\nname: "+name+"\ndescription: Handles "+name+"\n---\n\nSteps.\n")
	}
	return w
}
