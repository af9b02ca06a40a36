package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/rowsift/internal/tui/styles"
)

const testTheme = `name: "Test Theme"
description: "for tests"
version: "1"
colors:
  primary: "#A78BFA"
  secondary: "#10B981"
  warning: "#F59E0B"
  error: "#F87171"
  muted: "#9CA3AF"
  surface: "#1F2937"
  text: "#F9FAFB"
  border: "#6B7280"
`

// useThemesDir points the theme commands at a temp directory.
func useThemesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig := themesDir
	themesDir = func() string { return dir }
	styles.ClearCustomThemes()
	t.Cleanup(func() {
		themesDir = orig
		styles.ClearCustomThemes()
	})
	return dir
}

// capture wires cmd to fresh output buffers.
func capture(cmd *cobra.Command) (out, errOut *bytes.Buffer) {
	out, errOut = new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return out, errOut
}

func TestRunThemeList(t *testing.T) {
	dir := useThemesDir(t)
	if err := os.WriteFile(filepath.Join(dir, "testtheme.yaml"), []byte(testTheme), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("version: 2"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, errOut := capture(themeListCmd)
	if err := runThemeList(themeListCmd, nil); err != nil {
		t.Fatalf("runThemeList() error = %v", err)
	}
	if !strings.Contains(out.String(), "testtheme: for tests") {
		t.Errorf("custom theme missing from output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "- nord") {
		t.Errorf("built-in themes missing from output:\n%s", out.String())
	}
	if !strings.Contains(errOut.String(), "broken.yaml") {
		t.Errorf("load error not reported: %q", errOut.String())
	}
}

func TestRunThemeExport(t *testing.T) {
	useThemesDir(t)
	outputPath := filepath.Join(t.TempDir(), "exported.yaml")

	capture(themeExportCmd)
	if err := runThemeExport(themeExportCmd, []string{"default", outputPath}); err != nil {
		t.Fatalf("runThemeExport() error = %v", err)
	}

	theme, err := styles.LoadThemeFile(outputPath)
	if err != nil {
		t.Fatalf("exported theme does not load: %v", err)
	}
	if theme.Colors.Primary == "" {
		t.Error("exported theme missing primary color")
	}
}

func TestRunThemeExportStdout(t *testing.T) {
	useThemesDir(t)
	out, _ := capture(themeExportCmd)

	if err := runThemeExport(themeExportCmd, []string{"nord"}); err != nil {
		t.Fatalf("runThemeExport() error = %v", err)
	}
	if !strings.Contains(out.String(), "primary:") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunThemeExportInvalidTheme(t *testing.T) {
	dir := useThemesDir(t)
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("version: 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	capture(themeExportCmd)

	if err := runThemeExport(themeExportCmd, []string{"nonexistent"}); err == nil {
		t.Error("expected error for unknown theme")
	}

	err := runThemeExport(themeExportCmd, []string{"broken"})
	if err == nil || !strings.Contains(err.Error(), "failed to load") {
		t.Errorf("broken theme error = %v", err)
	}
}

func TestRunThemeInfo(t *testing.T) {
	useThemesDir(t)
	out, _ := capture(themeInfoCmd)

	if err := runThemeInfo(themeInfoCmd, []string{"default"}); err != nil {
		t.Fatalf("runThemeInfo() error = %v", err)
	}
	if !strings.Contains(out.String(), "Type: Built-in") {
		t.Errorf("output = %q", out.String())
	}
	if err := runThemeInfo(themeInfoCmd, []string{"nonexistent"}); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestRunThemeCreate(t *testing.T) {
	dir := useThemesDir(t)
	capture(themeCreateCmd)

	if err := runThemeCreate(themeCreateCmd, []string{"newtheme"}); err != nil {
		t.Fatalf("runThemeCreate() error = %v", err)
	}

	theme, err := styles.LoadThemeFile(filepath.Join(dir, "newtheme.yaml"))
	if err != nil {
		t.Fatalf("created theme is invalid: %v", err)
	}
	if theme.Name != "Newtheme" {
		t.Errorf("Name = %q", theme.Name)
	}

	if err := runThemeCreate(themeCreateCmd, []string{"newtheme"}); err == nil {
		t.Error("expected error when theme already exists")
	}
}

func TestRunThemeCreateInvalidName(t *testing.T) {
	useThemesDir(t)
	capture(themeCreateCmd)

	for _, name := range []string{"", "my/theme", "my\\theme", "default"} {
		t.Run(name, func(t *testing.T) {
			if err := runThemeCreate(themeCreateCmd, []string{name}); err == nil {
				t.Errorf("expected error for name %q", name)
			}
		})
	}
}

func TestCapitalizeFirst(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", "Hello"},
		{"HELLO", "HELLO"},
		{"h", "H"},
		{"", ""},
		{"myTheme", "MyTheme"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := capitalizeFirst(tt.input); got != tt.expected {
				t.Errorf("capitalizeFirst(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
