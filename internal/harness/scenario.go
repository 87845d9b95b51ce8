package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/bfi/internal/engine"
)

// Scenario defines a conformance test scenario: one program, its input,
// and the expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description" json:"description"`

	// Source is the program text. Exactly one of Source and SourceFile is set.
	Source string `yaml:"source,omitempty" json:"source,omitempty"`

	// SourceFile is a path to the program, relative to the scenario file.
	// LoadScenario resolves it to a usable path.
	SourceFile string `yaml:"source_file,omitempty" json:"source_file,omitempty"`

	// Input is fed to the program's Input instructions.
	Input string `yaml:"input,omitempty" json:"input,omitempty"`

	// MaxSteps bounds the run. Zero means DefaultMaxSteps.
	MaxSteps int64 `yaml:"max_steps,omitempty" json:"max_steps,omitempty"`

	// Strict turns an unmatched "]" into a parse error.
	Strict bool `yaml:"strict,omitempty" json:"strict,omitempty"`

	// Expect lists what the run must produce.
	Expect Expect `yaml:"expect" json:"expect"`
}

// Expect specifies expected run behavior. Nil or empty fields are not checked,
// except Error: an empty Error means the run must succeed.
type Expect struct {
	// Output is the exact expected output.
	Output *string `yaml:"output,omitempty" json:"output,omitempty"`

	// Cells maps tape index to expected value. Subset match.
	Cells map[int]int `yaml:"cells,omitempty" json:"cells,omitempty"`

	// Cursor is the expected final cursor.
	Cursor *uint `yaml:"cursor,omitempty" json:"cursor,omitempty"`

	// Error is the expected error code, e.g. "TAPE_BOUNDS".
	Error string `yaml:"error,omitempty" json:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
//
// A relative source_file is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "ouput:" vs "output:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSchema(path, data); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if scenario.SourceFile != "" && !filepath.IsAbs(scenario.SourceFile) {
		scenario.SourceFile = filepath.Join(filepath.Dir(path), scenario.SourceFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarioFiles returns the .yaml and .yml files under dir in lexical
// order. When filter is non-empty only files whose base name (without
// extension) matches the glob are returned.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter pattern: %w", err)
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			if matched, _ := filepath.Match(filter, name); !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// validateScenario checks cross-field rules the schema cannot express
// conveniently.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Source != "" && s.SourceFile != "":
		return fmt.Errorf("source and source_file are mutually exclusive")
	case s.Source == "" && s.SourceFile == "":
		return fmt.Errorf("one of source or source_file is required")
	}

	if s.SourceFile != "" {
		if _, err := os.Stat(s.SourceFile); os.IsNotExist(err) {
			return fmt.Errorf("source file not found: %s", s.SourceFile)
		}
	}

	if s.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be positive")
	}

	for idx, value := range s.Expect.Cells {
		if idx < 0 || idx >= engine.TapeSize {
			return fmt.Errorf("expect.cells: index %d outside tape [0, %d)", idx, engine.TapeSize)
		}
		if value < 0 || value > 255 {
			return fmt.Errorf("expect.cells[%d]: value %d is not a byte", idx, value)
		}
	}

	return nil
}
