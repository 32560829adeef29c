package instructions

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_Bundled(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	sp, err := r.Render(PlannerSystemTemplate, map[string]any{"planning_examples": "EXAMPLES_HERE"})
	require.NoError(t, err)
	assert.Contains(t, sp, "<analysis>")
	assert.Contains(t, sp, "EXAMPLES_HERE")

	up, err := r.Render(PlannerUserTemplate, map[string]any{
		"question":         "What now?",
		"available_agents": "- a: b\n",
		"background_info":  "",
	})
	require.NoError(t, err)
	assert.Contains(t, up, "Question: What now?")
	assert.Contains(t, up, "- a: b")
	assert.NotContains(t, up, "Background Information")
}

func TestRender_BackgroundSection(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	up, err := r.Render(PlannerUserTemplate, map[string]any{
		"question":         "q",
		"available_agents": "",
		"background_info":  "cols",
	})
	require.NoError(t, err)
	assert.Contains(t, up, "Background Information:\ncols")
}

func TestRender_MissingVariable(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	_, err = r.Render(PlannerUserTemplate, map[string]any{"question": "q"})
	assert.Error(t, err)
}

func TestRender_MissingTemplate(t *testing.T) {
	r := NewRendererFS(fstest.MapFS{})
	_, err := r.Render("nope.tmpl", nil)
	assert.Error(t, err)
}

func TestNewRenderer_CustomDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PlannerSystemTemplate), []byte("custom {{.planning_examples}}"), 0o644))

	r, err := NewRenderer(dir)
	require.NoError(t, err)

	out, err := r.Render(PlannerSystemTemplate, map[string]any{"planning_examples": "ex"})
	require.NoError(t, err)
	assert.Equal(t, "custom ex", out)
}

func TestNewRenderer_BadDir(t *testing.T) {
	_, err := NewRenderer(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = NewRenderer(file)
	assert.Error(t, err)
}
