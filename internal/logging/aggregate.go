package logging

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"
)

// LogEntry is one parsed line of a rowsift log file.
type LogEntry struct {
	Timestamp time.Time      `json:"time"`
	Level     string         `json:"level"`
	Message   string         `json:"msg"`
	Dataset   string         `json:"dataset,omitempty"`
	Column    string         `json:"column,omitempty"`
	Component string         `json:"component,omitempty"`
	Attrs     map[string]any `json:"attrs,omitempty"`
}

// LogFilter selects log entries. Zero fields do not filter.
type LogFilter struct {
	// Level keeps entries at or above this level.
	Level string
	// Since keeps entries at or after this time.
	Since time.Time
	// Dataset keeps entries about this dataset source.
	Dataset string
	// Component keeps entries from this component.
	Component string
	// Pattern keeps entries whose message or attribute values match.
	Pattern *regexp.Regexp
}

var levelOrder = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

const maxLineSize = 1 << 20

// AggregateLogs reads rowsift.log in dir together with any uncompressed
// rotated backups, oldest first. Lines that are not JSON log entries are
// skipped. Entries are returned in timestamp order.
func AggregateLogs(dir string, maxBackups int) ([]LogEntry, error) {
	live := filepath.Join(dir, FileName)
	if _, err := os.Stat(live); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no log file found in %s: %w", dir, err)
		}
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	paths := backupPaths(live, maxBackups)
	slices.Reverse(paths)
	paths = append(paths, live)

	var entries []LogEntry
	for _, p := range paths {
		got, err := readLogFile(p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, got...)
	}

	slices.SortStableFunc(entries, func(a, b LogEntry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return entries, nil
}

func readLogFile(path string) ([]LogEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadLogEntries(file)
}

// ReadLogEntries parses JSON log lines from r, skipping blank and
// malformed lines.
func ReadLogEntries(r io.Reader) ([]LogEntry, error) {
	var entries []LogEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, err := ParseLogEntry(line)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading log file: %w", err)
	}
	return entries, nil
}

// ParseLogEntry parses a single JSON log line.
func ParseLogEntry(line string) (LogEntry, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return LogEntry{}, fmt.Errorf("invalid JSON: %w", err)
	}

	entry := LogEntry{}
	if ts, ok := raw["time"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			entry.Timestamp = t
		}
	}
	entry.Level, _ = raw["level"].(string)
	entry.Message, _ = raw["msg"].(string)
	entry.Dataset, _ = raw[KeyDataset].(string)
	entry.Column, _ = raw[KeyColumn].(string)
	entry.Component, _ = raw[KeyComponent].(string)

	for _, k := range []string{"time", "level", "msg", KeyDataset, KeyColumn, KeyComponent} {
		delete(raw, k)
	}
	if len(raw) > 0 {
		entry.Attrs = raw
	}
	return entry, nil
}

// FilterLogs returns the entries matching every set criterion of f.
func FilterLogs(entries []LogEntry, f LogFilter) []LogEntry {
	var out []LogEntry
	for _, e := range entries {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f LogFilter) matches(e LogEntry) bool {
	if f.Level != "" {
		floor := levelOrder[ParseLevel(f.Level)]
		if got, ok := levelOrder[strings.ToUpper(e.Level)]; ok && got < floor {
			return false
		}
	}
	if !f.Since.IsZero() && e.Timestamp.Before(f.Since) {
		return false
	}
	if f.Dataset != "" && e.Dataset != f.Dataset {
		return false
	}
	if f.Component != "" && e.Component != f.Component {
		return false
	}
	if f.Pattern != nil && !f.Pattern.MatchString(e.searchText()) {
		return false
	}
	return true
}

func (e LogEntry) searchText() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	for _, k := range e.attrKeys() {
		fmt.Fprintf(&sb, " %v", e.Attrs[k])
	}
	return sb.String()
}

func (e LogEntry) attrKeys() []string {
	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Tail returns the last n entries, or all of them when n <= 0.
func Tail(entries []LogEntry, n int) []LogEntry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

// ExportFormats lists the formats accepted by WriteLogEntries.
func ExportFormats() []string {
	return []string{"text", "json", "csv"}
}

// WriteLogEntries writes entries to w as "text", "json" or "csv".
func WriteLogEntries(w io.Writer, entries []LogEntry, format string) error {
	switch strings.ToLower(format) {
	case "text", "":
		for _, e := range entries {
			if _, err := fmt.Fprintln(w, FormatText(e)); err != nil {
				return fmt.Errorf("failed to write text entry: %w", err)
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "csv":
		return writeCSV(w, entries)
	default:
		return fmt.Errorf("unsupported export format: %s (supported: %s)", format, strings.Join(ExportFormats(), ", "))
	}
}

// FormatText renders an entry as a single human-readable line:
// [TIME] LEVEL message (context) key=value...
func FormatText(e LogEntry) string {
	parts := []string{
		"[" + e.Timestamp.Format("2006-01-02 15:04:05.000") + "]",
		e.Level,
		e.Message,
	}

	var ctx []string
	if e.Component != "" {
		ctx = append(ctx, "component="+e.Component)
	}
	if e.Dataset != "" {
		ctx = append(ctx, "dataset="+e.Dataset)
	}
	if e.Column != "" {
		ctx = append(ctx, "column="+e.Column)
	}
	if len(ctx) > 0 {
		parts = append(parts, "("+strings.Join(ctx, ", ")+")")
	}
	for _, k := range e.attrKeys() {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Attrs[k]))
	}
	return strings.Join(parts, " ")
}

func writeCSV(w io.Writer, entries []LogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "level", "msg", KeyDataset, KeyColumn, KeyComponent, "attrs"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, e := range entries {
		attrs := ""
		if len(e.Attrs) > 0 {
			if b, err := json.Marshal(e.Attrs); err == nil {
				attrs = string(b)
			}
		}
		record := []string{
			e.Timestamp.Format(time.RFC3339Nano),
			e.Level,
			e.Message,
			e.Dataset,
			e.Column,
			e.Component,
			attrs,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
