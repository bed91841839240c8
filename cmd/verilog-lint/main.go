// =============================================================================
// Verilog Linter - Main Entry Point
// =============================================================================
//
// verilog-lint flags four classes of signal-usage defects in a Verilog
// module: undeclared references, declared-but-unused signals, continuous
// assignment to a reg, and procedural assignment to a wire.
//
// THE PIPELINE:
//   1. Normalizer blanks comments and sized literals (line numbers survive)
//   2. Tokenizer produces a flat token stream with positions
//   3. Extractor scans declaration shapes into fact tables
//   4. CUE validator enforces the fact-table contract (crash on mismatch)
//   5. OPA evaluates the signal rules against the tables
//   6. Warnings are reported as path:line: warning: message
//
// WHEN INVESTIGATING FALSE POSITIVES:
//   Start at the beginning of the pipeline, not the end!
//   Normalizer issues → Extractor issues → Policy issues
// =============================================================================

package main

import (
	"fmt"
	"os"

	"github.com/robert-at-pretension-io/verilog-lint/internal/config"
	"github.com/robert-at-pretension-io/verilog-lint/internal/linter"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	switch cmd {
	case "init":
		runInit()
	case "-v", "--verbose":
		if len(os.Args) < 3 {
			printUsage()
			os.Exit(1)
		}
		runLint(os.Args[2:], true)
	case "-h", "--help", "help":
		printUsage()
	case "-c", "--config":
		if len(os.Args) < 4 {
			printUsage()
			os.Exit(1)
		}
		runLintWithConfig(os.Args[2], os.Args[3:])
	default:
		runLint(os.Args[1:], false)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: verilog-lint [command] [options] <file.v|path> [more paths...]

Commands:
  init              Create a verilog_lint.json configuration file
  <path>            Lint Verilog files at the given path(s)

Options:
  -v, --verbose     Enable verbose output
  -c, --config      Specify config file: verilog-lint -c config.json <path>
  -h, --help        Show this help message

Configuration:
  verilog-lint looks for configuration in:
    1. ./verilog_lint.json
    2. ./.verilog_lint.json
    3. ~/.config/verilog_lint/config.json

  Run 'verilog-lint init' to create a default configuration file.`)
}

func runInit() {
	configPath := "verilog_lint.json"

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file %s already exists. Overwrite? [y/N]: ", configPath)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return
		}
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created %s\n", configPath)
	fmt.Println("\nEdit this file to configure:")
	fmt.Println("  - Source file patterns")
	fmt.Println("  - Rule severities (off, warning, error)")
}

func runLint(paths []string, verbose bool) {
	cfg, err := config.Load(paths[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	lint, err := linter.NewWithConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	lint.Verbose = verbose

	rc, err := lint.Run(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(rc)
}

func runLintWithConfig(configPath string, paths []string) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config %s: %v\n", configPath, err)
		os.Exit(1)
	}

	lint, err := linter.NewWithConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rc, err := lint.Run(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(rc)
}
