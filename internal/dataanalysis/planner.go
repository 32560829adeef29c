// Package dataanalysis specializes the planner for data-analysis tasks: when
// the task names a data file in backticks, the file's columns are described
// to the planning model as private background information.
package dataanalysis

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mfateev/agent-planner/internal/config"
	"github.com/mfateev/agent-planner/internal/llm"
	"github.com/mfateev/agent-planner/internal/log"
	"github.com/mfateev/agent-planner/internal/models"
	"github.com/mfateev/agent-planner/internal/planner"
)

// PrivacyNote is appended to the column summary. The planner sees the
// summary; worker agents do not.
const PrivacyNote = "**Note**: This background information is invisible to other agents, " +
	"but can help you to make a better plan. So your plan should be based on the assumption " +
	"that the agents are initially unaware of this information."

var filePathPattern = regexp.MustCompile("`([^`]+)`")

// ColumnInspector describes the columns of a data file. An error or an empty
// summary both mean no information is available.
type ColumnInspector interface {
	ColumnInfo(ctx context.Context, path string) (string, error)
}

// ExtractFilePath returns the trimmed content of the first backtick pair in
// task, or "" if there is none.
func ExtractFilePath(task string) string {
	m := filePathPattern.FindStringSubmatch(task)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Background is a planner.BackgroundProvider that inspects the file named in
// the task. At most one inspection is made per call.
type Background struct {
	inspector ColumnInspector
}

// NewBackground creates a Background backed by inspector.
func NewBackground(inspector ColumnInspector) *Background {
	return &Background{inspector: inspector}
}

// BackgroundInfo returns the column summary of the referenced file followed
// by PrivacyNote, or "" if the task names no file or nothing could be learned.
func (b *Background) BackgroundInfo(ctx context.Context, task models.TaskContext) string {
	path := ExtractFilePath(task.Task)
	if path == "" {
		return ""
	}

	columns, err := b.inspector.ColumnInfo(ctx, path)
	if err != nil {
		log.Warn("no column information for task file", "path", path, "trace_id", task.TraceID, "error", err)
		return ""
	}
	columns = strings.TrimSpace(columns)
	if columns == "" {
		return ""
	}
	return fmt.Sprintf("Data columns of `%s`:\n%s\n%s", path, columns, PrivacyNote)
}

// NewPlanner creates a planner whose prompts carry the column summary of the
// data file referenced by each task.
func NewPlanner(cfg *config.Config, client llm.LLMClient, inspector ColumnInspector, opts ...planner.Option) (*planner.Planner, error) {
	opts = append(opts, planner.WithBackground(NewBackground(inspector)))
	return planner.New(cfg, client, opts...)
}
