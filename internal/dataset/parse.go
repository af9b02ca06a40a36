package dataset

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/Iron-Ham/rowsift/internal/errors"
)

// Parse reads CSV text with a header row into a Dataset.
//
// Empty lines are skipped. Rows shorter than the header get empty cells and
// extra cells beyond the header are dropped. A header with duplicate or
// empty column names is rejected as a parse error.
func Parse(r io.Reader, source string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewDatasetError("source has no header row", errors.ErrNoData).
			WithSource(source)
	}
	if err != nil {
		return nil, parseError(err, source)
	}

	header = normalizeHeader(header)
	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if name == "" {
			return nil, errors.NewDatasetError("header has an empty column name", errors.ErrParse).
				WithSource(source).WithLine(1)
		}
		if _, dup := seen[name]; dup {
			return nil, errors.NewDatasetError("duplicate column in header", errors.ErrParse).
				WithSource(source).WithLine(1).WithColumn(name)
		}
		seen[name] = struct{}{}
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(err, source)
		}
		if isBlank(record) {
			continue
		}

		row := make(Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	return New(source, header, rows), nil
}

// normalizeHeader trims whitespace and a UTF-8 byte order mark from the
// header cells.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		out[i] = strings.TrimSpace(name)
	}
	return out
}

// isBlank reports whether a record holds a single empty field, as produced by
// a line containing only "".
func isBlank(record []string) bool {
	return len(record) == 1 && record[0] == ""
}

func parseError(err error, source string) error {
	dsErr := errors.NewDatasetError(err.Error(), errors.ErrParse).WithSource(source)
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		dsErr = errors.NewDatasetError(csvErr.Err.Error(), errors.ErrParse).
			WithSource(source).
			WithLine(csvErr.Line)
	}
	return dsErr
}
