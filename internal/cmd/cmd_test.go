package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/rowsift/internal/config"
	"github.com/Iron-Ham/rowsift/internal/errors"
	"github.com/Iron-Ham/rowsift/internal/logging"
)

const sampleCSV = `number,color,size
4,red,S
7,blue,M

10,red,L
`

// resetFlags restores every flag to its default so that package-level flag
// variables do not leak between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with args in an isolated
// configuration and returns captured stdout and stderr.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)
	resetFlags(rootCmd)

	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Name() != "rowsift" {
		t.Errorf("rootCmd.Name() = %q, want rowsift", rootCmd.Name())
	}

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"view", "query", "columns", "remainders", "logs", "config"} {
		if !names[want] {
			t.Errorf("expected subcommand %q not found", want)
		}
	}
}

func TestQuery_CSV(t *testing.T) {
	data := writeDataset(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "no filters",
			args: nil,
			want: "number,color,size\n4,red,S\n7,blue,M\n10,red,L\n",
		},
		{
			name: "where",
			args: []string{"--where", "color=red"},
			want: "number,color,size\n4,red,S\n10,red,L\n",
		},
		{
			name: "where on two columns",
			args: []string{"--where", "color=red", "--where", "size=L,M"},
			want: "number,color,size\n10,red,L\n",
		},
		{
			name: "modulo",
			args: []string{"--mod-base", "3", "--remainder", "1"},
			want: "number,color,size\n4,red,S\n7,blue,M\n10,red,L\n",
		},
		{
			name: "base without remainders keeps everything",
			args: []string{"--mod-base", "5"},
			want: "number,color,size\n4,red,S\n7,blue,M\n10,red,L\n",
		},
		{
			name: "modulo and where",
			args: []string{"--mod-base", "2", "--remainder", "0", "--where", "size=S"},
			want: "number,color,size\n4,red,S\n",
		},
		{
			name: "excluded column",
			args: []string{"--exclude", "si*"},
			want: "number,color\n4,red\n7,blue\n10,red\n",
		},
		{
			name: "sorted and paged",
			args: []string{"--sort", "number", "--desc", "--page-size", "2", "--page", "2"},
			want: "number,color,size\n4,red,S\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"query", data, "--format", "csv"}, tt.args...)
			stdout, _, err := executeCommand(t, args...)
			if err != nil {
				t.Fatalf("query failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, stdout); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuery_JSON(t *testing.T) {
	data := writeDataset(t)
	stdout, stderr, err := executeCommand(t, "query", data, "--mod-base", "2", "--remainder", "0", "--format", "json")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	var got []map[string]string
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	want := []map[string]string{
		{"number": "4", "color": "red", "size": "S"},
		{"number": "10", "color": "red", "size": "L"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(stderr, "2 of 3 rows match, page 1 of 1") {
		t.Errorf("summary = %q", stderr)
	}
}

func TestQuery_YAMLKeepsColumnOrder(t *testing.T) {
	data := writeDataset(t)
	stdout, _, err := executeCommand(t, "query", data, "--where", "color=blue", "--format", "yaml")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	want := "- number: \"7\"\n  color: \"blue\"\n  size: \"M\"\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery_Table(t *testing.T) {
	data := writeDataset(t)
	stdout, _, err := executeCommand(t, "query", data)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	for _, want := range []string{"Number", "color", "blue", "10"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("table missing %q:\n%s", want, stdout)
		}
	}
}

func TestQuery_Errors(t *testing.T) {
	data := writeDataset(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown column", []string{"query", data, "--where", "shape=round"}},
		{"malformed where", []string{"query", data, "--where", "color"}},
		{"invalid base", []string{"query", data, "--mod-base", "zero"}},
		{"remainder without base", []string{"query", data, "--remainder", "1"}},
		{"unknown sort column", []string{"query", data, "--sort", "weight"}},
		{"page out of range", []string{"query", data, "--page-size", "2", "--page", "3"}},
		{"bad format", []string{"query", data, "--format", "xml"}},
		{"missing file", []string{"query", filepath.Join(t.TempDir(), "none.csv")}},
		{"no source", []string{"query"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := executeCommand(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestQuery_NoNumberColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("id,color\n1,red\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err := executeCommand(t, "query", path)
	if !errors.Is(err, errors.ErrNoData) {
		t.Errorf("error = %v, want ErrNoData", err)
	}
}

func TestQuery_SourceFromConfig(t *testing.T) {
	data := writeDataset(t)
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgFile, []byte("dataset:\n  source: "+data+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCommand(t, "--config", cfgFile, "query", "--format", "csv", "--where", "color=blue")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if stdout != "number,color,size\n7,blue,M\n" {
		t.Errorf("output = %q", stdout)
	}
}

func TestColumns(t *testing.T) {
	data := writeDataset(t)

	t.Run("text", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "columns", data)
		if err != nil {
			t.Fatalf("columns failed: %v", err)
		}
		want := "color (2 options)\n  blue, red\nsize (3 options)\n  L, M, S\n"
		if diff := cmp.Diff(want, stdout); diff != "" {
			t.Errorf("output mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("json narrows other columns", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "columns", data, "--where", "color=red", "--format", "json")
		if err != nil {
			t.Fatalf("columns failed: %v", err)
		}
		var got []columnInfo
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		want := []columnInfo{
			{Name: "color", Selected: []string{"red"}, Options: []string{"blue", "red"}},
			{Name: "size", Options: []string{"L", "S"}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("columns mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestRemainders(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"all", []string{"--base", "3"}, "0\n1\n2\n"},
		{"query", []string{"--base", "12", "--query", "1"}, "1\n10\n11\n"},
		{"limit", []string{"--base", "1000", "--limit", "2"}, "0\n1\n"},
		{"fractional base truncates", []string{"--base", "2.9"}, "0\n1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, append([]string{"remainders"}, tt.args...)...)
			if err != nil {
				t.Fatalf("remainders failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, stdout); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}

	for _, args := range [][]string{{"--base", "0"}, {"--base", "-4"}, {"--base", "3", "--limit", "0"}, {}} {
		if _, _, err := executeCommand(t, append([]string{"remainders"}, args...)...); err == nil {
			t.Errorf("remainders %v: expected an error", args)
		}
	}
}

func TestLogs(t *testing.T) {
	dir := t.TempDir()
	lines := `{"time":"2026-01-02T10:00:00Z","level":"INFO","msg":"dataset loaded","component":"tui","dataset":"a.csv"}
{"time":"2026-01-02T10:00:02Z","level":"ERROR","msg":"reload failed","component":"watcher","dataset":"a.csv"}
`
	if err := os.WriteFile(filepath.Join(dir, logging.FileName), []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCommand(t, "logs", "--dir", dir, "--level", "error", "--format", "json")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	var entries []logging.LogEntry
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(entries) != 1 || entries[0].Message != "reload failed" {
		t.Errorf("entries = %+v", entries)
	}

	stdout, _, err = executeCommand(t, "logs", "--dir", dir, "--grep", "loaded")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	if !strings.Contains(stdout, "dataset loaded (component=tui, dataset=a.csv)") {
		t.Errorf("text output = %q", stdout)
	}

	stdout, _, err = executeCommand(t, "logs", "--dir", t.TempDir())
	if err != nil || !strings.Contains(stdout, "No logs found") {
		t.Errorf("empty dir: output = %q, err = %v", stdout, err)
	}

	if _, _, err := executeCommand(t, "logs", "--dir", dir, "--level", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestApplyViewFlags(t *testing.T) {
	resetFlags(rootCmd)
	cfg := config.Default()
	if err := viewCmd.Flags().Parse([]string{"--watch", "--theme", "nord", "--exclude", "a*,b"}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resetFlags(rootCmd) })

	if err := applyViewFlags(viewCmd, cfg); err != nil {
		t.Fatalf("applyViewFlags() error = %v", err)
	}
	if !cfg.Dataset.Watch || cfg.TUI.Theme != "nord" {
		t.Errorf("cfg = %+v", cfg)
	}
	if diff := cmp.Diff([]string{"a*", "b"}, cfg.Dataset.ExcludeColumns); diff != "" {
		t.Errorf("exclude mismatch (-want +got):\n%s", diff)
	}

	resetFlags(rootCmd)
	if err := viewCmd.Flags().Parse([]string{"--page-size", "0"}); err != nil {
		t.Fatal(err)
	}
	if err := applyViewFlags(viewCmd, config.Default()); err == nil {
		t.Error("expected validation error for page size 0")
	}
}

func TestResolveSource(t *testing.T) {
	cfg := config.Default()
	if _, err := resolveSource(nil, cfg); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}

	cfg.Dataset.Source = "from-config.csv"
	if got, _ := resolveSource(nil, cfg); got != "from-config.csv" {
		t.Errorf("resolveSource() = %q", got)
	}
	if got, _ := resolveSource([]string{"arg.csv"}, cfg); got != "arg.csv" {
		t.Errorf("resolveSource() = %q", got)
	}
}
