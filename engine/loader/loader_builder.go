package loader

import (
	"net/http"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

func defaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// WithHTTPClient sets the client used for http(s) sources.
//
// Parameters:
//   - c: the HTTP client
//
// Returns:
//   - LoaderBuilderOption: a function that applies the client option to a loader
func WithHTTPClient(c *http.Client) LoaderBuilderOption {
	return func(l *loader) {
		if c != nil {
			l.http = httpBackend{client: c}
		}
	}
}

// WithWorkers sets the size of the asynchronous decode pool.
//
// Parameters:
//   - n: worker count (values < 1 are ignored)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithTimeout bounds each asynchronous load and the default HTTP client.
//
// Parameters:
//   - d: the timeout
//
// Returns:
//   - LoaderBuilderOption: a function that applies the timeout option to a loader
func WithTimeout(d time.Duration) LoaderBuilderOption {
	return func(l *loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithMaxDimension sets the largest texture edge kept after decoding.
//
// Parameters:
//   - px: the maximum edge in pixels
//
// Returns:
//   - LoaderBuilderOption: a function that applies the limit to a loader
func WithMaxDimension(px int) LoaderBuilderOption {
	return func(l *loader) {
		if px > 0 {
			l.maxDim = px
		}
	}
}

// WithTexture pre-populates the cache.
//
// Parameters:
//   - src: the cache key
//   - tex: the decoded texture
//
// Returns:
//   - LoaderBuilderOption: a function that seeds the cache
func WithTexture(src string, tex common.TextureStagingData) LoaderBuilderOption {
	return func(l *loader) {
		l.cache[src] = tex
	}
}

// WithLogger sets the loader's logger.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger to a loader
func WithLogger(log logger.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.log = log
	}
}
