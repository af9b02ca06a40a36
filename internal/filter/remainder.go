package filter

import (
	"context"
	"strconv"
	"strings"
)

// MaxRemainderOptions caps the number of remainder options returned for a
// single query, independent of the base.
const MaxRemainderOptions = 100

// cancelCheckInterval is how many candidates are scanned between context
// checks in LoadRemainderOptions.
const cancelCheckInterval = 1 << 14

// RemainderOptions lists candidate remainders 0..base-1 in increasing order
// whose decimal form contains query, stopping after limit matches. An empty
// query matches everything. It returns nil when base is not positive.
func RemainderOptions(base int, query string, limit int) []Option {
	opts, _ := remainderOptions(context.Background(), base, query, limit)
	return opts
}

// LoadRemainderOptions returns the remainder options for the current base
// of mod, capped by the engine's limit. It is meant to be run off the UI
// loop; the scan stops early when ctx is done.
func (e *Engine) LoadRemainderOptions(ctx context.Context, mod Modulo, query string) ([]Option, error) {
	if !mod.Active() {
		return nil, nil
	}
	return remainderOptions(ctx, mod.Base(), query, e.maxRemainderOptions)
}

func remainderOptions(ctx context.Context, base int, query string, limit int) ([]Option, error) {
	if base <= 0 || limit <= 0 {
		return nil, nil
	}
	if strings.ContainsFunc(query, func(r rune) bool { return r < '0' || r > '9' }) {
		// Remainders are non-negative decimal integers.
		return []Option{}, nil
	}

	opts := make([]Option, 0, min(limit, base))
	for i := 0; i < base; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return opts, err
			}
		}
		val := strconv.Itoa(i)
		if query != "" && !strings.Contains(val, query) {
			continue
		}
		opts = append(opts, Option{Value: val, Label: val})
		if len(opts) >= limit {
			break
		}
	}
	return opts, nil
}
