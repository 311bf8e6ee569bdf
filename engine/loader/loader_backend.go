package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// SourceType identifies where a texture source is read from.
type SourceType int

const (
	// SourceFile reads from the local filesystem. A leading ~ is expanded to the home directory.
	SourceFile SourceType = iota
	// SourceHTTP fetches over http or https.
	SourceHTTP
)

// loaderBackend opens a texture source for reading.
type loaderBackend interface {
	// Open returns a stream of the encoded image at src.
	Open(ctx context.Context, src string) (io.ReadCloser, error)
}

// ClassifySource reports which backend serves src.
//
// Parameters:
//   - src: a local path, file:// URL, or http(s) URL
//
// Returns:
//   - SourceType: the source type
func ClassifySource(src string) SourceType {
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return SourceHTTP
	}
	return SourceFile
}

type fileBackend struct{}

// LocalPath resolves src to a filesystem path, stripping a file:// scheme and expanding ~.
//
// Parameters:
//   - src: a local path or file:// URL
//
// Returns:
//   - string: the resolved path
//   - error: error if the home directory cannot be determined or the URL is malformed
func LocalPath(src string) (string, error) {
	if strings.HasPrefix(strings.ToLower(src), "file://") {
		u, err := url.Parse(src)
		if err != nil {
			return "", fmt.Errorf("invalid file url %q: %w", src, err)
		}
		src = u.Path
	}
	return homedir.Expand(src)
}

func (fileBackend) Open(ctx context.Context, src string) (io.ReadCloser, error) {
	path, err := LocalPath(src)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

type httpBackend struct {
	client *http.Client
}

func (b httpBackend) Open(ctx context.Context, src string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", src, resp.Status)
	}
	return resp.Body, nil
}
