// Package instructions contains prompt construction for LLM calls.
//
// renderer.go renders named prompt templates from a prompt directory. The
// bundled prompts are embedded; a configured directory replaces them.
package instructions

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"text/template"
)

// Template names used by the planner.
const (
	PlannerSystemTemplate = "planner_sp.tmpl"
	PlannerUserTemplate   = "planner_up.tmpl"
)

//go:embed prompts/*.tmpl
var bundled embed.FS

// Renderer renders templates resolved relative to one prompt directory.
// It holds no mutable state and is safe for concurrent use.
type Renderer struct {
	fsys fs.FS
}

// NewRenderer returns a Renderer over dir, or over the bundled prompts if
// dir is empty.
func NewRenderer(dir string) (*Renderer, error) {
	if dir == "" {
		sub, err := fs.Sub(bundled, "prompts")
		if err != nil {
			return nil, fmt.Errorf("failed to open bundled prompts: %w", err)
		}
		return NewRendererFS(sub), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("prompt directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("prompt directory %s is not a directory", dir)
	}
	return NewRendererFS(os.DirFS(dir)), nil
}

// NewRendererFS returns a Renderer over an arbitrary file system.
func NewRendererFS(fsys fs.FS) *Renderer {
	return &Renderer{fsys: fsys}
}

// Render executes the named template with vars. A missing template or a
// template referencing an absent variable is an error.
func (r *Renderer) Render(name string, vars map[string]any) (string, error) {
	t, err := template.New(name).Option("missingkey=error").ParseFS(r.fsys, name)
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}
