// survey.go
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SurveyQuestion describes one onboarding question as defined in
// config/survey.yaml. Aliases list the legacy field names a client may
// still submit for the same concept; the repository folds them onto the
// canonical id before anything is stored.
type SurveyQuestion struct {
	ID       string         `yaml:"id"`
	Title    string         `yaml:"title"`
	Kind     string         `yaml:"kind"` // scale, choice, list or text
	Required bool           `yaml:"required"`
	Aliases  []string       `yaml:"aliases,omitempty"`
	Options  []SurveyOption `yaml:"options,omitempty"`
}

// SurveyOption is one selectable answer for a choice question.
type SurveyOption struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Survey holds the full onboarding questionnaire definition.
type Survey struct {
	Questions []SurveyQuestion `yaml:"questions"`
}

// LoadSurvey reads and parses the survey definition file.
func LoadSurvey(path string) (*Survey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey file: %w", err)
	}

	var survey Survey
	if err := yaml.Unmarshal(data, &survey); err != nil {
		return nil, fmt.Errorf("failed to unmarshal survey YAML: %w", err)
	}

	return &survey, nil
}

// Question looks a question up by its canonical id.
func (s *Survey) Question(id string) (SurveyQuestion, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return SurveyQuestion{}, false
}

// CanonicalID resolves a submitted key, which may be an alias, to the
// canonical question id. Unknown keys come back unchanged.
func (s *Survey) CanonicalID(key string) string {
	for _, q := range s.Questions {
		if q.ID == key {
			return q.ID
		}
		for _, alias := range q.Aliases {
			if alias == key {
				return q.ID
			}
		}
	}
	return key
}
