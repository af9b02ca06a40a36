package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Iron-Ham/rowsift/internal/errors"
)

// LoadOptions controls how a dataset source is fetched.
type LoadOptions struct {
	// Timeout bounds remote fetches. Zero means no timeout.
	Timeout time.Duration
	// Client is used for http(s) sources. Defaults to http.DefaultClient.
	Client *http.Client
}

// IsRemote reports whether source names an http(s) resource.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load fetches and parses the dataset at source, which is either a local
// path or an http(s) URL. The result is guaranteed to have at least one row
// and a NumberColumn header; anything else is reported as ErrNoData.
func Load(ctx context.Context, source string, opts LoadOptions) (*Dataset, error) {
	if source == "" {
		return nil, errors.NewDatasetError("no dataset source configured", errors.ErrNoData)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	rc, err := open(ctx, source, opts)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.NewTimeoutError("fetching "+source, opts.Timeout).WithCause(err)
		}
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	ds, err := Parse(rc, source)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.NewTimeoutError("reading "+source, opts.Timeout).WithCause(err)
		}
		return nil, err
	}

	if err := Validate(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Validate checks that ds can back a dashboard: it must have rows and a
// NumberColumn header.
func Validate(ds *Dataset) error {
	if ds == nil || ds.Empty() {
		source := ""
		if ds != nil {
			source = ds.Source()
		}
		return errors.NewDatasetError("dataset has no rows", errors.ErrNoData).WithSource(source)
	}
	if !ds.HasColumn(NumberColumn) {
		return errors.NewDatasetError("missing expected header", errors.ErrNoData).
			WithSource(ds.Source()).
			WithColumn(NumberColumn)
	}
	return nil
}

func open(ctx context.Context, source string, opts LoadOptions) (io.ReadCloser, error) {
	if !IsRemote(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, errors.NewDatasetError("cannot open dataset", errors.Join(errors.ErrSourceUnavailable, err)).
				WithSource(source)
		}
		return f, nil
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, errors.NewDatasetError("invalid dataset URL", errors.Join(errors.ErrSourceUnavailable, err)).
			WithSource(source)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.NewDatasetError("fetch failed", errors.Join(errors.ErrSourceUnavailable, err)).
			WithSource(source).
			WithRetryable(true)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, errors.NewDatasetError(fmt.Sprintf("fetch failed with status %d", resp.StatusCode), errors.ErrSourceUnavailable).
			WithSource(source).
			WithRetryable(resp.StatusCode >= 500)
	}
	return resp.Body, nil
}
