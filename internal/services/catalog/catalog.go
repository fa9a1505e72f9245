package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	TypeTechnical  = "technical"
	TypeBehavioral = "behavioral"
	TypeScenario   = "scenario"
)

//go:embed questions.yaml
var embedded []byte

// FieldQuestions groups a field's questions by type.
type FieldQuestions struct {
	Technical  []string `yaml:"technical"`
	Behavioral []string `yaml:"behavioral"`
	Scenario   []string `yaml:"scenario"`
}

// FieldInfo describes one internship field offered to candidates.
type FieldInfo struct {
	Name             string   `yaml:"name" json:"name"`
	Description      string   `yaml:"description" json:"description"`
	ExperienceLevels []string `yaml:"experience_levels" json:"experience_levels"`
	Skills           []string `yaml:"skills" json:"skills"`
}

var experienceLevels = map[string]bool{"entry": true, "mid": true, "senior": true}

// Catalog is the static question data used by the static and local paths.
type Catalog struct {
	DefaultQuestions      []string                  `yaml:"default_questions"`
	JobQuestions          map[string][]string       `yaml:"job_questions"`
	FieldQuestions        map[string]FieldQuestions `yaml:"field_questions"`
	GenericFieldQuestions FieldQuestions            `yaml:"generic_field_questions"`
	CommonQuestions       map[string][]string       `yaml:"common_questions"`
	Fields                []FieldInfo               `yaml:"fields"`
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	data := embedded
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read question catalog: %w", err)
		}
		data = raw
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse question catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) Validate() error {
	if len(c.DefaultQuestions) == 0 {
		return fmt.Errorf("question catalog: default_questions must not be empty")
	}
	for title, questions := range c.JobQuestions {
		if len(questions) == 0 {
			return fmt.Errorf("question catalog: job_questions[%q] must not be empty", title)
		}
	}
	if len(c.CommonQuestions["en"]) == 0 {
		return fmt.Errorf("question catalog: common_questions.en must not be empty")
	}
	return c.validateFields()
}

// validateFields checks every listed field. When fields are listed, each
// field_questions title must be one of them.
func (c *Catalog) validateFields() error {
	names := make(map[string]bool, len(c.Fields))
	for i, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("question catalog: fields[%d] has no name", i)
		}
		if names[f.Name] {
			return fmt.Errorf("question catalog: field %q is listed twice", f.Name)
		}
		names[f.Name] = true

		if f.Description == "" {
			return fmt.Errorf("question catalog: field %q has no description", f.Name)
		}
		if len(f.ExperienceLevels) == 0 {
			return fmt.Errorf("question catalog: field %q has no experience_levels", f.Name)
		}
		for _, level := range f.ExperienceLevels {
			if !experienceLevels[level] {
				return fmt.Errorf("question catalog: field %q has unknown experience level %q", f.Name, level)
			}
		}
		if len(f.Skills) == 0 {
			return fmt.Errorf("question catalog: field %q has no skills", f.Name)
		}
	}

	if len(c.Fields) == 0 {
		return nil
	}
	for title := range c.FieldQuestions {
		if !names[title] {
			return fmt.Errorf("question catalog: field_questions[%q] is not listed in fields", title)
		}
	}
	return nil
}

// ListFields returns a copy of the listed fields in catalog order.
func (c *Catalog) ListFields() []FieldInfo {
	out := make([]FieldInfo, len(c.Fields))
	for i, f := range c.Fields {
		f.ExperienceLevels = append([]string(nil), f.ExperienceLevels...)
		f.Skills = append([]string(nil), f.Skills...)
		out[i] = f
	}
	return out
}

// ForJob returns the fixed list for jobTitle, or the default list.
func (c *Catalog) ForJob(jobTitle string) []string {
	if questions, ok := c.JobQuestions[jobTitle]; ok {
		return append([]string(nil), questions...)
	}
	return append([]string(nil), c.DefaultQuestions...)
}

// Field returns the typed questions for jobTitle. ok is false when the
// title has no entry of its own.
func (c *Catalog) Field(jobTitle string) (FieldQuestions, bool) {
	fq, ok := c.FieldQuestions[jobTitle]
	return fq, ok
}

func (c *Catalog) Common(language string) []string {
	return append([]string(nil), c.CommonQuestions[language]...)
}

// Select concatenates the enabled types in technical, behavioral,
// scenario order.
func (f FieldQuestions) Select(technical, behavioral, scenario bool) []string {
	var out []string
	if technical {
		out = append(out, f.Technical...)
	}
	if behavioral {
		out = append(out, f.Behavioral...)
	}
	if scenario {
		out = append(out, f.Scenario...)
	}
	return out
}
