package fetch

import (
	"log/slog"
	"net/http"

	"github.com/juglab/portfolio/internal/branding"
	"github.com/juglab/portfolio/internal/logger"
)

// Target is the part of a dataset entry the protocol needs.
type Target interface {
	Name() string
	URL() string
	FileName() string
	MD5() string
	// Stem names the extraction subdirectory.
	Stem() string
}

// ProgressFunc receives transfer progress. total is -1 when the server
// did not declare a size.
type ProgressFunc func(transferred, total int64)

// Request holds the per-call switches of a fetch.
type Request struct {
	// VerifyHash checks the archive MD5 before extraction.
	VerifyHash bool
	// CreateParents creates missing ancestors of the target directory.
	CreateParents bool
}

// DefaultRequest verifies the checksum and creates parent directories.
func DefaultRequest() Request {
	return Request{VerifyHash: true, CreateParents: true}
}

// Result describes what a fetch did on disk.
type Result struct {
	ArchivePath string
	ExtractDir  string
	Format      Format
	Downloaded  bool // false when the archive was already present
	Verified    bool
	Extracted   bool
}

// Fetcher runs the fetch protocol.
type Fetcher struct {
	httpClient *http.Client
	mirror     string
	userAgent  string
	logger     *slog.Logger
	progress   ProgressFunc
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithMirror downloads archives from <mirror>/<file name> instead of the
// entry's own URL.
func WithMirror(mirror string) Option {
	return func(f *Fetcher) {
		f.mirror = mirror
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLogger sets the logger used for protocol steps.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// WithProgress subscribes fn to download progress.
func WithProgress(fn ProgressFunc) Option {
	return func(f *Fetcher) {
		f.progress = fn
	}
}

// New creates a Fetcher with the given options.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: http.DefaultClient,
		userAgent:  branding.UserAgent(),
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}
