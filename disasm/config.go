package disasm

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Config holds rendering options for the disassembler.
type Config struct {
	// LabelPrefix is prepended to the assignment number of each label.
	// Default: "label_".
	LabelPrefix string `json:"label_prefix"`

	// Annotate prefixes each instruction line with its word index and the
	// raw word in hex. Label lines are unaffected. Default: false.
	Annotate bool `json:"annotate"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LabelPrefix: DefaultLabelPrefix,
		Annotate:    false,
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read disassembler config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse disassembler config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize disassembler config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write disassembler config file: %w", err)
	}

	return nil
}

// Validate checks that the label prefix can form a label definition line.
func (c *Config) Validate() error {
	if c.LabelPrefix == "" {
		return fmt.Errorf("label_prefix must not be empty")
	}
	if strings.Contains(c.LabelPrefix, ":") ||
		strings.IndexFunc(c.LabelPrefix, unicode.IsSpace) >= 0 {
		return fmt.Errorf("label_prefix must not contain whitespace or ':'")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	return &Config{
		LabelPrefix: c.LabelPrefix,
		Annotate:    c.Annotate,
	}
}
