package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Rule names understood by the linter.
const (
	RuleAssignToReg        = "assign-to-reg"
	RuleProcAssignToWire   = "procedural-assign-to-wire"
	RuleUndeclaredSignal   = "undeclared-signal"
	RuleUnreferencedSignal = "unreferenced-signal"
)

// Config is the top-level configuration for verilog-lint
type Config struct {
	// Files lists glob patterns for Verilog sources to lint when a
	// directory is given
	Files FilesConfig `json:"files,omitempty"`

	// Lint contains linting rule configuration
	Lint LintConfig `json:"lint,omitempty"`
}

// FilesConfig selects the source files for directory targets
type FilesConfig struct {
	// Include is a list of glob patterns (doublestar supported)
	Include []string `json:"include"`

	// Exclude is a list of glob patterns to drop from the include set
	Exclude []string `json:"exclude,omitempty"`
}

// LintConfig contains linting configuration
type LintConfig struct {
	// Rules maps rule names to severity: "off", "warning", "error"
	Rules map[string]string `json:"rules,omitempty"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Files: FilesConfig{
			Include: []string{"*.v", "*.sv", "**/*.v", "**/*.sv"},
			Exclude: []string{},
		},
		Lint: LintConfig{
			Rules: map[string]string{
				RuleAssignToReg:        "warning",
				RuleProcAssignToWire:   "warning",
				RuleUndeclaredSignal:   "warning",
				RuleUnreferencedSignal: "warning",
			},
		},
	}
}

// Severity returns the configured severity for a rule, defaulting to
// "warning" for rules the config does not mention.
func (c *Config) Severity(rule string) string {
	if sev, ok := c.Lint.Rules[rule]; ok {
		return sev
	}
	return "warning"
}

// Load finds and loads the configuration file
// Search order:
//  1. ./verilog_lint.json (current working directory)
//  2. ./.verilog_lint.json (current working directory)
//  3. <rootPath>/verilog_lint.json (if different from cwd)
//  4. ~/.config/verilog_lint/config.json
//
// Returns DefaultConfig if no config file is found
func Load(rootPath string) (*Config, error) {
	cwd, _ := os.Getwd()

	searchPaths := []string{
		filepath.Join(cwd, "verilog_lint.json"),
		filepath.Join(cwd, ".verilog_lint.json"),
	}

	if info, err := os.Stat(rootPath); err == nil && info.IsDir() {
		absRoot, _ := filepath.Abs(rootPath)
		if absRoot != cwd {
			searchPaths = append(searchPaths,
				filepath.Join(rootPath, "verilog_lint.json"),
				filepath.Join(rootPath, ".verilog_lint.json"),
			)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "verilog_lint", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to a file as indented JSON
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}

	return nil
}
