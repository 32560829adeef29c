package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mfateev/agent-planner/internal/models"
)

// FormatExamples renders few-shot examples in load order, one
// Question / Available Agents / <analysis> / <plan> block each.
func FormatExamples(examples []models.PlanningExample) string {
	blocks := make([]string, 0, len(examples))
	for _, ex := range examples {
		blocks = append(blocks, fmt.Sprintf(
			"Question: %s\nAvailable Agents: %s\n\n<analysis>%s</analysis>\n<plan>%s</plan>\n",
			ex.Question, ex.AvailableAgents, ex.Analysis, formatPlanEntries(ex.Plan)))
	}
	return strings.Join(blocks, "\n")
}

// FormatAgents renders the worker roster, one entry per agent. Strengths are
// preferred over weaknesses; at most one of the two is shown.
func FormatAgents(agents []models.AgentDescriptor) string {
	lines := make([]string, 0, len(agents))
	for _, a := range agents {
		var b strings.Builder
		fmt.Fprintf(&b, "- %s: %s\n", a.Name, a.Description)
		switch {
		case a.Strengths != "":
			fmt.Fprintf(&b, "  Best for: %s\n", a.Strengths)
		case a.Weaknesses != "":
			fmt.Fprintf(&b, "  Weaknesses: %s\n", a.Weaknesses)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// formatPlanEntries writes entries as a JSON list with fields in the order
// the parser expects: agent_name, task, completed.
func formatPlanEntries(entries []models.PlanEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf(`{"agent_name": %s, "task": %s, "completed": %t}`,
			quoteJSON(e.AgentName), quoteJSON(e.Task), e.Completed))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// quoteJSON encodes s as a JSON string without HTML escaping.
func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
