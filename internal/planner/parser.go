package planner

import (
	"regexp"
	"strings"

	"github.com/mfateev/agent-planner/internal/models"
)

// Model output is not guaranteed to be valid JSON, so each plan entry is
// matched on its own. A fragment whose values contain a double quote (escaped
// or not) does not match and is dropped.
var (
	analysisPattern = regexp.MustCompile(`(?s)<analysis>(.*?)</analysis>`)
	planPattern     = regexp.MustCompile(`(?s)<plan>\s*\[(.*?)\]\s*</plan>`)
	subtaskPattern  = regexp.MustCompile(`(?i)\{"agent_name":\s*"([^"]+)",\s*"task":\s*"([^"]+)",\s*"completed":\s*(true|false)\s*\}`)
)

// Parse converts a model response into a Plan. It never fails: missing or
// malformed sections yield an empty analysis and/or an empty todo list.
func Parse(text string) models.Plan {
	return models.Plan{
		Analysis: ExtractAnalysis(text),
		Todo:     ExtractPlan(text),
	}
}

// ExtractAnalysis returns the trimmed content of the first
// <analysis>...</analysis> block, or "" if there is none.
func ExtractAnalysis(text string) string {
	m := analysisPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ExtractPlan returns the subtasks listed inside the first <plan>[...]</plan>
// block, in source order. Returns an empty slice when no block is found.
func ExtractPlan(text string) []models.Subtask {
	m := planPattern.FindStringSubmatch(text)
	if m == nil {
		return []models.Subtask{}
	}
	content := strings.TrimSpace(m[1])

	matches := subtaskPattern.FindAllStringSubmatch(content, -1)
	tasks := make([]models.Subtask, 0, len(matches))
	for _, fm := range matches {
		tasks = append(tasks, models.Subtask{
			AgentName: fm[1],
			Task:      fm[2],
			Completed: strings.EqualFold(fm[3], "true"),
		})
	}
	return tasks
}
