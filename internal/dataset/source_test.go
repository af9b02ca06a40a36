package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Iron-Ham/rowsift/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.csv", "number,color\n4,red\n7,blue\n")

	ds, err := Load(context.Background(), path, LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ds.Len())
	}
	if ds.Source() != path {
		t.Errorf("Source() = %q, want %q", ds.Source(), path)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{"empty source", "", errors.ErrNoData},
		{"missing file", filepath.Join(dir, "nope.csv"), errors.ErrSourceUnavailable},
		{"header only", writeFile(t, dir, "header.csv", "number,color\n"), errors.ErrNoData},
		{"no number column", writeFile(t, dir, "nonum.csv", "id,color\n1,red\n"), errors.ErrNoData},
		{"malformed", writeFile(t, dir, "bad.csv", "number,color\n1,\"red\n"), errors.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.source, LoadOptions{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.IsUserFacing(err) {
				t.Errorf("Load() error should be user facing: %v", err)
			}
		})
	}
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dataset.csv":
			_, _ = w.Write([]byte("number,color\n1,red\n2,blue\n3,red\n"))
		case "/broken":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("fetches and parses", func(t *testing.T) {
		ds, err := Load(context.Background(), srv.URL+"/dataset.csv", LoadOptions{Client: srv.Client()})
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if ds.Len() != 3 {
			t.Errorf("Len() = %d, want 3", ds.Len())
		}
	})

	t.Run("not found is not retryable", func(t *testing.T) {
		_, err := Load(context.Background(), srv.URL+"/missing.csv", LoadOptions{Client: srv.Client()})
		if !errors.Is(err, errors.ErrSourceUnavailable) {
			t.Fatalf("Load() error = %v, want ErrSourceUnavailable", err)
		}
		if errors.IsRetryable(err) {
			t.Error("404 should not be retryable")
		}
	})

	t.Run("server error is retryable", func(t *testing.T) {
		_, err := Load(context.Background(), srv.URL+"/broken", LoadOptions{Client: srv.Client()})
		if !errors.IsRetryable(err) {
			t.Errorf("500 should be retryable: %v", err)
		}
	})
}

func TestLoad_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := Load(context.Background(), srv.URL, LoadOptions{Client: srv.Client(), Timeout: 50 * time.Millisecond})
	if !errors.Is(err, errors.ErrTimeout) {
		t.Errorf("Load() error = %v, want ErrTimeout", err)
	}
}

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"http://example.com/a.csv":  true,
		"https://example.com/a.csv": true,
		"data/a.csv":                false,
		"/abs/a.csv":                false,
		"ftp://example.com/a.csv":   false,
	}
	for source, want := range tests {
		if got := IsRemote(source); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", source, got, want)
		}
	}
}
