package fonttest

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// QuickConfig routes tracing to t for the tracers selected by keys, on level Debug,
// like gotestingadapter.QuickConfig does. Tracers configured this way may be used
// from more than one goroutine, as index builds do.
//
// The returned teardown function must be called before t completes.
func QuickConfig(t *testing.T, keys ...string) func() {
	t.Helper()
	var mu sync.Mutex
	tracing.RegisterTraceAdapter("fonttest", func() tracing.Trace {
		return &syncTrace{mu: &mu, tr: gotestingadapter.New(t)}
	}, true)
	c := testconfig.Conf{
		"tracing.adapter": "fonttest",
		"tracelevel.root": "Debug",
	}
	for _, key := range keys {
		c["tracelevel."+key] = "Debug"
	}
	if err := trace2go.ConfigureRoot(c, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		t.Fatal(err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return trace2go.Teardown
}

// syncTrace serializes all calls to a tracer which is not safe for concurrent use.
// Tracers created by one QuickConfig share a mutex.
type syncTrace struct {
	mu *sync.Mutex
	tr tracing.Trace
	p  string // context set by P, already escaped for use in a format
}

func (s *syncTrace) Errorf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tr.Errorf(s.p+format, args...)
}

func (s *syncTrace) Infof(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tr.Infof(s.p+format, args...)
}

func (s *syncTrace) Debugf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tr.Debugf(s.p+format, args...)
}

// P returns a tracer carrying the context key=val. Unlike most adapters, it does
// not modify s, so concurrent callers never see each other's context.
func (s *syncTrace) P(key string, val interface{}) tracing.Trace {
	p := strings.ReplaceAll(fmt.Sprintf("[%s=%v] ", key, val), "%", "%%")
	return &syncTrace{mu: s.mu, tr: s.tr, p: s.p + p}
}

func (s *syncTrace) SetTraceLevel(l tracing.TraceLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tr.SetTraceLevel(l)
}

func (s *syncTrace) GetTraceLevel() tracing.TraceLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tr.GetTraceLevel()
}

func (s *syncTrace) SetOutput(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tr.SetOutput(w)
}
