// Package source provides the places guideline rows are read from.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/parser"
)

// DefaultTimeout bounds a single HTTP fetch when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// maxErrorBody limits how much of a failed response ends up in the error.
const maxErrorBody = 512

// Source yields the guideline rows of one location.
type Source interface {
	// Rows reads all rows. Every call reads the location again.
	Rows(ctx context.Context) (*models.RowSet, error)
	// Key identifies the location, suitable as a cache key.
	Key() string
}

// Options configures sources created by New.
type Options struct {
	// Load selects sheets and ranges of workbook files.
	Load guidedoc.LoadOptions
	// Timeout bounds HTTP fetches. Zero means DefaultTimeout.
	Timeout time.Duration
	// Client overrides the HTTP client.
	Client *http.Client
	Logger *zap.Logger
}

// New returns the source for location: http and https URLs are fetched as
// CSV exports, anything else is treated as a local file path.
func New(location string, opts Options) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", guidedoc.ErrUnsupportedSource)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if u, err := url.Parse(location); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		switch u.Scheme {
		case "http", "https":
			return &HTTP{URL: u.String(), Timeout: opts.Timeout, Client: opts.Client, log: log}, nil
		case "file":
			return &File{Path: filepath.FromSlash(u.Path), Options: opts.Load, log: log}, nil
		default:
			return nil, fmt.Errorf("%w: scheme %q", guidedoc.ErrUnsupportedSource, u.Scheme)
		}
	}
	return &File{Path: location, Options: opts.Load, log: log}, nil
}

// File reads rows from a local xlsx workbook or CSV file.
type File struct {
	Path    string
	Options guidedoc.LoadOptions
	log     *zap.Logger
}

// Rows implements Source.
func (s *File) Rows(ctx context.Context) (*models.RowSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	set, err := guidedoc.Load(s.Path, s.Options)
	if err != nil {
		return nil, err
	}
	logger(s.log).Debug("Rows loaded", zap.String("path", s.Path), zap.Int("rows", len(set.Rows)), zap.Int("rejected", set.Rejected))
	return set, nil
}

// Key implements Source.
func (s *File) Key() string {
	key := "file:" + s.Path
	if s.Options.Sheet != "" {
		key += "#" + s.Options.Sheet
	}
	if s.Options.Range != "" {
		key += "!" + s.Options.Range
	}
	return key
}

// HTTP fetches a CSV export of a guideline sheet.
type HTTP struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
	log     *zap.Logger
}

// Rows implements Source. The body is decoded from the charset named by the
// Content-Type header, or the sniffed one when the header names none.
func (s *HTTP) Rows(ctx context.Context) (*models.RowSet, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, guidedoc.NewLoadError(s.URL, "fetch", err)
	}
	req.Header.Set("Accept", "text/csv")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, guidedoc.NewLoadError(s.URL, "fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, guidedoc.NewLoadError(s.URL, "fetch", fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body))))
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, guidedoc.NewLoadError(s.URL, "fetch", err)
	}

	set, err := parser.ParseCSV(body)
	if err != nil {
		return nil, guidedoc.NewLoadError(s.URL, "rows", fmt.Errorf("%w: %v", guidedoc.ErrInvalidFormat, err))
	}
	set.BookName = s.URL

	logger(s.log).Debug("Rows fetched",
		zap.String("url", s.URL),
		zap.Int("rows", len(set.Rows)),
		zap.Int("rejected", set.Rejected),
		zap.Duration("elapsed", time.Since(start)))
	return &set, nil
}

// Key implements Source.
func (s *HTTP) Key() string {
	return s.URL
}

func logger(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
