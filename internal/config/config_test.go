package config

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Files.Include) == 0 {
		t.Fatal("default config has no include patterns")
	}
	for _, rule := range []string{
		RuleAssignToReg,
		RuleProcAssignToWire,
		RuleUndeclaredSignal,
		RuleUnreferencedSignal,
	} {
		if got := cfg.Severity(rule); got != "warning" {
			t.Errorf("Severity(%q) = %q, want \"warning\"", rule, got)
		}
	}
}

func TestSeverityUnknownRuleDefaultsToWarning(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Severity("no-such-rule"); got != "warning" {
		t.Errorf("Severity for unknown rule = %q, want \"warning\"", got)
	}
}

func TestSaveAndLoadFileRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lint.Rules[RuleUnreferencedSignal] = "off"
	cfg.Lint.Rules[RuleAssignToReg] = "error"
	cfg.Files.Exclude = []string{"generated/**"}

	path := filepath.Join(t.TempDir(), "verilog_lint.json")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

// A partial config file keeps defaults for everything it does not set.
func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	content := `{"lint": {"rules": {"assign-to-reg": "off"}}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := cfg.Severity(RuleAssignToReg); got != "off" {
		t.Errorf("assign-to-reg severity = %q, want \"off\"", got)
	}
	if len(cfg.Files.Include) == 0 {
		t.Error("include patterns lost, want defaults preserved")
	}
}

func TestLoadFindsConfigInRoot(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Lint.Rules[RuleUndeclaredSignal] = "error"
	if err := cfg.Save(filepath.Join(dir, "verilog_lint.json")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.Severity(RuleUndeclaredSignal); got != "error" {
		t.Errorf("undeclared-signal severity = %q, want \"error\"", got)
	}
}

func TestResolveFiles(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "top.v"))
	mustWrite(t, filepath.Join(dir, "cpu.sv"))
	mustWrite(t, filepath.Join(dir, "notes.txt"))
	if err := os.MkdirAll(filepath.Join(dir, "rtl"), 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(dir, "rtl", "alu.v"))

	cfg := DefaultConfig()
	files, err := cfg.ResolveFiles(dir)
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}

	want := []string{
		filepath.Join(dir, "cpu.sv"),
		filepath.Join(dir, "rtl", "alu.v"),
		filepath.Join(dir, "top.v"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("ResolveFiles = %v, want %v", files, want)
	}
	if !sort.StringsAreSorted(files) {
		t.Error("ResolveFiles output is not sorted")
	}
}

func TestResolveFilesExclude(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "top.v"))
	mustWrite(t, filepath.Join(dir, "top_tb.v"))

	cfg := DefaultConfig()
	cfg.Files.Exclude = []string{"*_tb.v"}

	files, err := cfg.ResolveFiles(dir)
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}
	want := []string{filepath.Join(dir, "top.v")}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("ResolveFiles = %v, want %v", files, want)
	}
}

func TestResolveFilesEmptyDir(t *testing.T) {
	cfg := DefaultConfig()
	files, err := cfg.ResolveFiles(t.TempDir())
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("ResolveFiles on empty dir = %v, want none", files)
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("// placeholder\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}
