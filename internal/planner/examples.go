package planner

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mfateev/agent-planner/internal/models"
)

//go:embed data/planner_examples.json
var defaultExamples []byte

// LoadExamples reads few-shot examples from path. When path is empty or does
// not exist the bundled examples are used. An unreadable or corrupt file is
// an error.
func LoadExamples(path string) ([]models.PlanningExample, error) {
	data := defaultExamples
	source := "bundled"
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read planner examples %s: %w", path, err)
			}
			data = b
			source = path
		}
	}

	var examples []models.PlanningExample
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("failed to parse planner examples (%s): %w", source, err)
	}
	return examples, nil
}

// LoadAgents copies the configured worker roster, dropping entries without a name.
func LoadAgents(workers []models.AgentDescriptor) []models.AgentDescriptor {
	agents := make([]models.AgentDescriptor, 0, len(workers))
	for _, w := range workers {
		if w.Name == "" {
			continue
		}
		agents = append(agents, w)
	}
	return agents
}
