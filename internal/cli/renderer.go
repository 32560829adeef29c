package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfateev/agent-planner/internal/models"
)

// DefaultWidth is the wrap width used when the terminal width is unknown.
const DefaultWidth = 80

// Renderer writes plans to a terminal.
type Renderer struct {
	w          io.Writer
	noColor    bool
	noMarkdown bool
	width      int

	md *glamour.TermRenderer

	headerStyle lipgloss.Style
	indexStyle  lipgloss.Style
	agentStyle  lipgloss.Style
	warnStyle   lipgloss.Style
}

// NewRenderer creates a renderer. With noMarkdown the analysis is printed as
// is; with noColor no ANSI styling is emitted.
func NewRenderer(w io.Writer, noColor, noMarkdown bool, width int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	r := &Renderer{
		w:          w,
		noColor:    noColor,
		noMarkdown: noMarkdown,
		width:      width,
	}

	if !noColor {
		r.headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		r.indexStyle = lipgloss.NewStyle().Faint(true)
		r.agentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
		r.warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	}

	if !noMarkdown {
		style := "dark"
		if noColor {
			style = "notty"
		}
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			r.md = md
		}
	}
	return r
}

// RenderPlan writes the analysis and the numbered subtasks.
func (r *Renderer) RenderPlan(plan models.Plan) {
	if plan.Analysis != "" {
		fmt.Fprintln(r.w, r.style(r.headerStyle, "Analysis"))
		fmt.Fprintln(r.w, r.renderMarkdown(plan.Analysis))
		fmt.Fprintln(r.w)
	}

	if plan.IsEmpty() {
		fmt.Fprintln(r.w, r.style(r.warnStyle, "No subtasks were planned."))
		return
	}

	fmt.Fprintln(r.w, r.style(r.headerStyle, "Plan"))
	for i, st := range plan.Todo {
		mark := " "
		if st.Completed {
			mark = "x"
		}
		fmt.Fprintf(r.w, "%s [%s] %s %s\n",
			r.style(r.indexStyle, fmt.Sprintf("%2d.", i+1)),
			mark,
			r.style(r.agentStyle, st.AgentName+":"),
			st.Task)
	}
}

// RenderJSON writes the plan as indented JSON.
func (r *Renderer) RenderJSON(plan models.Plan) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(plan)
}

func (r *Renderer) renderMarkdown(text string) string {
	if r.md == nil {
		return text
	}
	out, err := r.md.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.noColor {
		return text
	}
	return s.Render(text)
}
