package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// Request is a calculation loaded from an input file.
type Request struct {
	Calculator domain.CalculatorName
	Input      domain.Input
}

// NamedInput is one scenario of a scenario file.
type NamedInput struct {
	Name        string
	Description string
	Input       domain.Input
}

// ScenarioFile holds a base input and the alternatives to compare it with.
// Every input belongs to the same calculator.
type ScenarioFile struct {
	Calculator domain.CalculatorName
	Base       NamedInput
	Scenarios  []NamedInput
}

// Scenario returns the scenario with the given name, or the base when name
// matches it.
func (sf *ScenarioFile) Scenario(name string) (NamedInput, bool) {
	if sf.Base.Name == name {
		return sf.Base, true
	}
	for _, s := range sf.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return NamedInput{}, false
}

// rawInput defers decoding of an input document until the calculator is known.
type rawInput interface {
	empty() bool
	decode(v any) error
}

type yamlInput struct{ node *yaml.Node }

func (n *yamlInput) UnmarshalYAML(value *yaml.Node) error {
	n.node = value
	return nil
}

func (n *yamlInput) empty() bool        { return n.node == nil || n.node.Tag == "!!null" }
func (n *yamlInput) decode(v any) error { return n.node.Decode(v) }

type jsonInput struct{ json.RawMessage }

func (m *jsonInput) empty() bool        { return len(m.RawMessage) == 0 || string(m.RawMessage) == "null" }
func (m *jsonInput) decode(v any) error { return json.Unmarshal(m.RawMessage, v) }

type yamlRequest struct {
	Calculator domain.CalculatorName `yaml:"calculator"`
	Input      yamlInput             `yaml:"input"`
}

type jsonRequest struct {
	Calculator domain.CalculatorName `json:"calculator"`
	Input      jsonInput             `json:"input"`
}

type yamlScenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Input       yamlInput `yaml:"input"`
}

type yamlScenarioFile struct {
	Calculator domain.CalculatorName `yaml:"calculator"`
	Base       yamlScenario          `yaml:"base"`
	Scenarios  []yamlScenario        `yaml:"scenarios"`
}

type jsonScenario struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Input       jsonInput `json:"input"`
}

type jsonScenarioFile struct {
	Calculator domain.CalculatorName `json:"calculator"`
	Base       jsonScenario          `json:"base"`
	Scenarios  []jsonScenario        `json:"scenarios"`
}

// InputParser handles parsing of calculator input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// isJSON reports whether the file should be read with JSON field names.
// YAML files use snake_case keys, JSON files the camelCase API names.
func isJSON(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".json")
}

// LoadFromFile loads a calculation request from a YAML or JSON file and
// validates its input.
func (ip *InputParser) LoadFromFile(filename string) (*Request, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, isJSON(filename))
}

// Parse decodes a calculation request document.
func (ip *InputParser) Parse(data []byte, asJSON bool) (*Request, error) {
	var (
		name domain.CalculatorName
		raw  rawInput
	)
	if asJSON {
		var req jsonRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		name, raw = req.Calculator, &req.Input
	} else {
		var req yamlRequest
		if err := yaml.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		name, raw = req.Calculator, &req.Input
	}

	input, err := ip.decodeInput(name, raw)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &Request{Calculator: name, Input: input}, nil
}

// LoadInput loads a bare input document for the named calculator from a
// YAML or JSON file and validates it.
func (ip *InputParser) LoadInput(name domain.CalculatorName, filename string) (domain.Input, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseInput(name, data, isJSON(filename))
}

// ParseInput decodes a bare input document for the named calculator.
func (ip *InputParser) ParseInput(name domain.CalculatorName, data []byte, asJSON bool) (domain.Input, error) {
	var raw rawInput
	if asJSON {
		raw = &jsonInput{RawMessage: json.RawMessage(data)}
	} else {
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		var node *yaml.Node
		if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
			node = doc.Content[0]
		}
		raw = &yamlInput{node: node}
	}

	input, err := ip.decodeInput(name, raw)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return input, nil
}

// LoadScenarios loads a scenario file for comparison. Every scenario input
// is validated.
func (ip *InputParser) LoadScenarios(filename string) (*ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseScenarios(data, isJSON(filename))
}

// ParseScenarios decodes a scenario file document.
func (ip *InputParser) ParseScenarios(data []byte, asJSON bool) (*ScenarioFile, error) {
	type entry struct {
		name, description string
		raw               rawInput
	}
	var (
		name    domain.CalculatorName
		entries []entry
	)

	if asJSON {
		var f jsonScenarioFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		name = f.Calculator
		entries = append(entries, entry{f.Base.Name, f.Base.Description, &f.Base.Input})
		for i := range f.Scenarios {
			s := &f.Scenarios[i]
			entries = append(entries, entry{s.Name, s.Description, &s.Input})
		}
	} else {
		var f yamlScenarioFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		name = f.Calculator
		entries = append(entries, entry{f.Base.Name, f.Base.Description, &f.Base.Input})
		for i := range f.Scenarios {
			s := &f.Scenarios[i]
			entries = append(entries, entry{s.Name, s.Description, &s.Input})
		}
	}

	if len(entries) < 2 {
		return nil, fmt.Errorf("no scenarios provided")
	}

	file := &ScenarioFile{Calculator: name}
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		label := e.name
		if label == "" {
			if i == 0 {
				label = "base"
			} else {
				label = fmt.Sprintf("scenario-%d", i)
			}
		}
		if seen[label] {
			return nil, fmt.Errorf("duplicate scenario name %q", label)
		}
		seen[label] = true

		input, err := ip.decodeInput(name, e.raw)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", label, err)
		}
		if err := input.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %s validation failed: %w", label, err)
		}

		ni := NamedInput{Name: label, Description: e.description, Input: input}
		if i == 0 {
			file.Base = ni
		} else {
			file.Scenarios = append(file.Scenarios, ni)
		}
	}
	return file, nil
}

func (ip *InputParser) decodeInput(name domain.CalculatorName, raw rawInput) (domain.Input, error) {
	if name == "" {
		return nil, fmt.Errorf("calculator is required")
	}
	input, err := calculation.NewInput(name)
	if err != nil {
		return nil, err
	}
	if raw.empty() {
		return nil, fmt.Errorf("input is required for %s", name)
	}
	if err := raw.decode(input); err != nil {
		return nil, fmt.Errorf("failed to decode %s input: %w", name, err)
	}
	return input, nil
}
