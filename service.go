package fontfiles

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/npillmayer/fontfiles/fontdirs"
	"github.com/npillmayer/fontfiles/fontindex"
	"github.com/npillmayer/fontfiles/otquery"
)

// FileScanner supplies the candidate font files to index, in scan order.
// fontdirs.Scanner is the default implementation.
type FileScanner interface {
	FontFiles() ([]string, error)
}

// Service answers font requests from an index of installed fonts.
//
// The index is built on first use, exactly once, even if many goroutines issue
// their first request at the same time. Once built, lookups do not lock.
// A Service is safe for concurrent use.
type Service struct {
	dirs    fontdirs.Scanner // default scanner
	scanner FileScanner
	conf    fontindex.Config
	mu      sync.Mutex // serializes index builds
	index   atomic.Pointer[fontindex.Index]
}

// New creates a service. Without options, it will scan the font directories of
// the platform the program runs on.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.scanner == nil {
		s.scanner = s.dirs
	}
	return s
}

// Find returns the path of the installed font file for family with the given
// style. It is FindContext with a background context.
func (s *Service) Find(family string, bold, italic bool) (string, error) {
	return s.FindContext(context.Background(), family, bold, italic)
}

// FindContext returns the path of the installed font file for family with the
// given style. The first call builds the index; ctx is honored during the build.
//
// If no font matches exactly, a *NotFoundError is returned. If the platform is
// not supported, a *fontdirs.UnsupportedPlatformError is returned and no font
// file has been read.
func (s *Service) FindContext(ctx context.Context, family string, bold, italic bool) (string, error) {
	inx, err := s.built(ctx)
	if err != nil {
		return "", err
	}
	req := otquery.Descriptor{Family: family, Bold: bold, Italic: italic}
	if path, ok := inx.Lookup(req); ok {
		tracer().Debugf("font %s found: %s", req, path)
		return path, nil
	}
	tracer().Debugf("font %s not found", req)
	return "", &NotFoundError{Request: req}
}

// built returns the index, building it if necessary.
func (s *Service) built(ctx context.Context) (*fontindex.Index, error) {
	if inx := s.index.Load(); inx != nil {
		return inx, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if inx := s.index.Load(); inx != nil { // built while we were waiting
		return inx, nil
	}
	inx, _, err := s.build(ctx)
	return inx, err
}

// build scans for font files and publishes a fresh index. s.mu must be held.
func (s *Service) build(ctx context.Context) (*fontindex.Index, *fontindex.Report, error) {
	paths, err := s.scanner.FontFiles()
	if err != nil {
		tracer().Errorf("cannot scan for font files: %v", err)
		return nil, nil, err
	}
	inx := fontindex.New(s.conf)
	report, err := inx.Build(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	s.index.Store(inx)
	return inx, report, nil
}

// Reindex scans the font directories again and replaces the index. Queries
// running concurrently are answered from the previous index until the new one
// is complete. If the rebuild fails, the previous index stays in place.
//
// Files which have been skipped are listed in the report; use Report.Err to
// treat them as errors.
func (s *Service) Reindex(ctx context.Context) (*fontindex.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, report, err := s.build(ctx)
	return report, err
}

// BuildAsync builds the index in the background, if it has not been built yet,
// and calls done on completion. Find may be called while the build is running,
// it waits for the build to complete. done may be nil.
func (s *Service) BuildAsync(ctx context.Context, done func(*fontindex.Report, error)) {
	go func() {
		report, err := s.buildOnce(ctx)
		if done != nil {
			done(report, err)
		}
	}()
}

func (s *Service) buildOnce(ctx context.Context) (*fontindex.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inx := s.index.Load(); inx != nil {
		return inx.Report(), nil
	}
	_, report, err := s.build(ctx)
	return report, err
}

// Report returns the diagnostics of the most recent index build, or nil if
// the index has not been built.
func (s *Service) Report() *fontindex.Report {
	if inx := s.index.Load(); inx != nil {
		return inx.Report()
	}
	return nil
}

// Families returns the descriptors of all indexed fonts, sorted by family name,
// then style. Like Find, it builds the index if necessary.
func (s *Service) Families(ctx context.Context) ([]otquery.Descriptor, error) {
	inx, err := s.built(ctx)
	if err != nil {
		return nil, err
	}
	return inx.Descriptors(), nil
}
