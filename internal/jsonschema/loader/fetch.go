package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	pkgjsonschema "github.com/goliatone/go-jsonform/pkg/jsonschema"
)

// Fetcher implements pkgjsonschema.Loader by delegating to file, fs.FS, or
// HTTP strategies.
type Fetcher struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ pkgjsonschema.Loader = (*Fetcher)(nil)

// NewFetcher constructs a Fetcher from pre-resolved options.
func NewFetcher(options pkgjsonschema.LoaderOptions) *Fetcher {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Fetcher{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a document from the provided source and wraps it.
func (f *Fetcher) Load(ctx context.Context, src pkgjsonschema.Source) (pkgjsonschema.Document, error) {
	if src == nil {
		return pkgjsonschema.Document{}, errors.New("jsonschema loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgjsonschema.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgjsonschema.SourceKindFS:
		data, err = loadFromFS(ctx, f.fs, src.Location())
	case pkgjsonschema.SourceKindURL:
		if !f.allowHTTP {
			return pkgjsonschema.Document{}, errors.New("jsonschema loader: http support disabled")
		}
		data, err = loadHTTP(ctx, f.http, src.Location(), f.timeout)
	default:
		err = errors.New("jsonschema loader: unsupported source kind")
	}
	if err != nil {
		return pkgjsonschema.Document{}, err
	}

	return pkgjsonschema.NewDocument(src, data)
}
