package fetcher

import (
	"context"
	"io"
)

// Fetcher downloads remote registry data.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path.
	// Feed archives run to hundreds of megabytes, so they always go
	// through a file rather than memory. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)

	// HeadETag performs a HEAD request and returns the ETag header value.
	// The registry republishes the feed daily; an unchanged ETag means a
	// reload can be skipped.
	HeadETag(ctx context.Context, url string) (string, error)
}
