// Package loader resolves schema and form-spec sources from disk, an fs.FS
// or HTTP.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-formschema/pkg/schema"
)

var (
	errNilSource    = errors.New("loader: source is nil")
	errHTTPDisabled = errors.New("loader: http support disabled")
)

// Loader implements schema.Loader. Concurrent loads of the same URL share a
// single request.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
	flights singleflight.Group
}

var _ schema.Loader = (*Loader)(nil)

// New builds a Loader from resolved options.
func New(options schema.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	case options.AllowHTTPFallback:
		client = &http.Client{Timeout: timeout}
	}

	return &Loader{
		files:   options.FileSystem,
		client:  client,
		timeout: timeout,
	}
}

// Load reads src and wraps the bytes in a Document.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errNilSource
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = readFile(ctx, src.Location())
	case schema.SourceKindFS:
		data, err = readFS(ctx, l.files, src.Location())
	case schema.SourceKindURL:
		if l.client == nil {
			return schema.Document{}, errHTTPDisabled
		}
		data, err = l.fetchShared(ctx, src.Location())
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return schema.Document{}, err
	}
	return schema.NewDocument(src, data)
}

// fetchShared joins or starts the request for url. The request runs detached
// from any one caller's cancellation and is bounded by the loader timeout;
// each caller still returns as soon as its own ctx is done.
func (l *Loader) fetchShared(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	flight := l.flights.DoChan(url, func() (any, error) {
		return fetch(context.WithoutCancel(ctx), l.client, url, l.timeout)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		data := res.Val.([]byte)
		return append([]byte(nil), data...), nil
	}
}
