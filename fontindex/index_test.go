package fontindex

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/fontfiles/internal/fonttest"
	"github.com/npillmayer/fontfiles/ot"
	"github.com/npillmayer/fontfiles/otquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memFiles is an in-memory file system for Config.Open, counting reads.
type memFiles struct {
	files map[string][]byte
	opens atomic.Int32
}

func (m *memFiles) open(path string) (io.ReadCloser, error) {
	m.opens.Add(1)
	data, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func desc(family string, bold, italic bool) otquery.Descriptor {
	return otquery.Descriptor{Family: family, Bold: bold, Italic: italic}
}

func TestBuildAndLookup(t *testing.T) {
	teardown := fonttest.QuickConfig(t, "font.index")
	defer teardown()
	//
	fs := &memFiles{files: map[string][]byte{
		"/fonts/Gentium.ttf":       fonttest.Describe("Gentium", false, false),
		"/fonts/Gentium-Bold.ttf":  fonttest.Describe("Gentium", true, false),
		"/fonts/Gentium-BI.ttf":    fonttest.Describe("Gentium", true, true),
		"/fonts/Inter-Italic.otf":  fonttest.Describe("Inter", false, true),
		"/fonts/Broken.ttf":        {0, 1, 0, 0, 0, 1},
		"/fonts/Anonymous.ttf":     fonttest.Font{Tables: []fonttest.Table{{Tag: "OS/2", Data: fonttest.OS2(fonttest.FsBold)}}}.Bytes(),
		"/fonts/Inter-Italic2.otf": fonttest.Describe("Inter", false, true),
	}}
	paths := []string{
		"/fonts/Gentium.ttf",
		"/fonts/Broken.ttf",
		"/fonts/Gentium-Bold.ttf",
		"/fonts/Inter-Italic.otf",
		"/fonts/Missing.ttf",
		"/fonts/Anonymous.ttf",
		"/fonts/Gentium-BI.ttf",
		"/fonts/Inter-Italic2.otf",
	}
	inx := New(Config{Open: fs.open, Workers: 3})
	require.Equal(t, Empty, inx.State())
	report, err := inx.Build(context.Background(), paths)
	require.NoError(t, err)
	require.Equal(t, Built, inx.State())

	path, ok := inx.Lookup(desc("Gentium", true, false))
	assert.True(t, ok)
	assert.Equal(t, "/fonts/Gentium-Bold.ttf", path)
	path, ok = inx.Lookup(desc("Inter", false, true))
	assert.True(t, ok)
	assert.Equal(t, "/fonts/Inter-Italic2.otf", path, "later file should win")
	_, ok = inx.Lookup(desc("Gentium", false, true))
	assert.False(t, ok)
	_, ok = inx.Lookup(desc("gentium", false, false))
	assert.False(t, ok, "family names are case sensitive")

	assert.Equal(t, 4, inx.Len())
	expected := []otquery.Descriptor{
		desc("Gentium", false, false),
		desc("Gentium", true, false),
		desc("Gentium", true, true),
		desc("Inter", false, true),
	}
	if diff := cmp.Diff(expected, inx.Descriptors()); diff != "" {
		t.Errorf("descriptors mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 8, report.Candidates)
	assert.Equal(t, 5, report.Indexed)
	assert.Equal(t, 1, report.Replaced)
	require.Len(t, report.Skipped, 3)
	assert.Equal(t, "/fonts/Broken.ttf", report.Skipped[0].Path)
	assert.Equal(t, "/fonts/Missing.ttf", report.Skipped[1].Path)
	assert.True(t, errors.Is(report.Skipped[1].Err, os.ErrNotExist))
	assert.Equal(t, "/fonts/Anonymous.ttf", report.Skipped[2].Path)
	var ferr *ot.FormatError
	require.True(t, errors.As(report.Skipped[2].Err, &ferr))
	assert.Equal(t, ot.MissingNameTable, ferr.Kind)
	assert.True(t, errors.Is(report.Err(), ot.ErrMissingNameTable))
	assert.Same(t, report, inx.Report())
	t.Logf("report: %s", report)
}

func TestLastFileWins(t *testing.T) {
	teardown := fonttest.QuickConfig(t, "font.index")
	defer teardown()
	//
	fs := &memFiles{files: map[string][]byte{
		"/a/Serif.ttf": fonttest.Describe("Serif", false, false),
		"/b/Serif.otf": fonttest.Describe("Serif", false, false),
	}}
	for _, order := range [][]string{
		{"/a/Serif.ttf", "/b/Serif.otf"},
		{"/b/Serif.otf", "/a/Serif.ttf"},
	} {
		inx := New(Config{Open: fs.open})
		_, err := inx.Build(context.Background(), order)
		require.NoError(t, err)
		path, ok := inx.Lookup(desc("Serif", false, false))
		require.True(t, ok)
		assert.Equal(t, order[1], path)
	}
}

func TestBuildOnlyOnce(t *testing.T) {
	teardown := fonttest.QuickConfig(t, "font.index")
	defer teardown()
	//
	fs := &memFiles{files: map[string][]byte{"/Serif.ttf": fonttest.Describe("Serif", false, false)}}
	inx := New(Config{Open: fs.open})
	_, err := inx.Build(context.Background(), []string{"/Serif.ttf"})
	require.NoError(t, err)
	_, err = inx.Build(context.Background(), []string{"/Serif.ttf"})
	assert.ErrorIs(t, err, ErrAlreadyBuilt)
	assert.Equal(t, int32(1), fs.opens.Load())
}

func TestEmptyIndex(t *testing.T) {
	teardown := fonttest.QuickConfig(t, "font.index")
	defer teardown()
	//
	inx := New(Config{})
	assert.Panics(t, func() { inx.Lookup(desc("Serif", false, false)) })
	assert.Nil(t, inx.Descriptors())
	assert.Nil(t, inx.Report())
	report, err := inx.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Candidates)
	assert.Equal(t, 0, inx.Len())
	assert.NoError(t, report.Err())
	_, ok := inx.Lookup(desc("Serif", false, false))
	assert.False(t, ok)
}

func TestFileSizeLimit(t *testing.T) {
	teardown := fonttest.QuickConfig(t, "font.index")
	defer teardown()
	//
	font := fonttest.Describe("Serif", false, false)
	fs := &memFiles{files: map[string][]byte{"/Serif.ttf": font}}
	inx := New(Config{Open: fs.open, MaxFileSize: int64(len(font) - 1)})
	report, err := inx.Build(context.Background(), []string{"/Serif.ttf"})
	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	assert.ErrorIs(t, report.Skipped[0].Err, ErrFileTooLarge)
	//
	inx = New(Config{Open: fs.open, MaxFileSize: int64(len(font))})
	report, err = inx.Build(context.Background(), []string{"/Serif.ttf"})
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, 1, inx.Len())
}

// stalledReader blocks until it is closed.
type stalledReader struct {
	once   sync.Once
	closed chan struct{}
}

func (r *stalledReader) Read([]byte) (int, error) {
	<-r.closed
	return 0, os.ErrClosed
}

func (r *stalledReader) Close() error {
	r.once.Do(func() { close(r.closed) })
	return nil
}

func TestReadTimeout(t *testing.T) {
	teardown := fonttest.QuickConfig(t, "font.index")
	defer teardown()
	//
	stalled := &stalledReader{closed: make(chan struct{})}
	open := func(path string) (io.ReadCloser, error) {
		if path == "/stalled.ttf" {
			return stalled, nil
		}
		return io.NopCloser(bytes.NewReader(fonttest.Describe("Serif", false, false))), nil
	}
	inx := New(Config{Open: open, ReadTimeout: 20 * time.Millisecond})
	report, err := inx.Build(context.Background(), []string{"/stalled.ttf", "/Serif.ttf"})
	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	assert.ErrorIs(t, report.Skipped[0].Err, ErrReadTimeout)
	assert.Equal(t, 1, inx.Len())
	select {
	case <-stalled.closed:
	default:
		t.Error("expected stalled file to be closed")
	}
}

func TestBuildCanceled(t *testing.T) {
	teardown := fonttest.QuickConfig(t, "font.index")
	defer teardown()
	//
	fs := &memFiles{files: map[string][]byte{"/Serif.ttf": fonttest.Describe("Serif", false, false)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inx := New(Config{Open: fs.open})
	_, err := inx.Build(ctx, []string{"/Serif.ttf"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Empty, inx.State())
	assert.Nil(t, inx.Report())
}

// staticExtractor returns descriptors without parsing.
type staticExtractor map[string]otquery.Descriptor

func (x staticExtractor) Extract(data []byte) (otquery.Descriptor, error) {
	if d, ok := x[string(data)]; ok {
		return d, nil
	}
	return otquery.Descriptor{}, errors.New("unknown font")
}

func TestCustomExtractor(t *testing.T) {
	teardown := fonttest.QuickConfig(t, "font.index")
	defer teardown()
	//
	fs := &memFiles{files: map[string][]byte{"/x": []byte("x"), "/y": []byte("y")}}
	x := staticExtractor{"x": desc("Ex", true, false)}
	inx := New(Config{Open: fs.open, Extractor: x, Workers: 1})
	report, err := inx.Build(context.Background(), []string{"/x", "/y"})
	require.NoError(t, err)
	path, ok := inx.Lookup(desc("Ex", true, false))
	assert.True(t, ok)
	assert.Equal(t, "/x", path)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "/y", report.Skipped[0].Path)
}
