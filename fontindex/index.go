/*
Package fontindex maps font descriptors to font files.

An Index is built once from a list of font file paths. Every file is read and
handed to an Extractor; files which cannot be read or parsed are skipped and
reported, they never abort the build. If more than one file yields the same
descriptor, the file later in the list wins.

Files may be parsed in parallel, but results are always applied in list order,
so building from the same list of files results in the same index.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontindex

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/npillmayer/fontfiles/otquery"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/sync/errgroup"
)

// tracer writes to trace with key 'font.index'
func tracer() tracing.Trace {
	return tracing.Select("font.index")
}

// Extractor extracts a font descriptor from the raw bytes of a font file.
// otquery.SfntExtractor is the implementation for OpenType and TrueType fonts.
type Extractor interface {
	Extract(data []byte) (otquery.Descriptor, error)
}

// Opener opens a font file for reading.
type Opener func(path string) (io.ReadCloser, error)

// OpenFile is the default Opener, reading from the file system.
func OpenFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Defaults for Config.
const (
	DefaultMaxFileSize int64 = 32 << 20
	DefaultReadTimeout       = 5 * time.Second
)

// Config holds the collaborators and limits of an index build.
// Zero values select defaults.
type Config struct {
	Extractor   Extractor     // defaults to otquery.SfntExtractor
	Open        Opener        // defaults to OpenFile
	MaxFileSize int64         // files larger than this are skipped
	ReadTimeout time.Duration // per-file limit for reading a file
	Workers     int           // number of files parsed in parallel; defaults to GOMAXPROCS
}

func (conf Config) withDefaults() Config {
	if conf.Extractor == nil {
		conf.Extractor = otquery.SfntExtractor{}
	}
	if conf.Open == nil {
		conf.Open = OpenFile
	}
	if conf.MaxFileSize <= 0 {
		conf.MaxFileSize = DefaultMaxFileSize
	}
	if conf.ReadTimeout <= 0 {
		conf.ReadTimeout = DefaultReadTimeout
	}
	if conf.Workers <= 0 {
		conf.Workers = runtime.GOMAXPROCS(0)
	}
	return conf
}

// State is the lifecycle state of an Index.
type State int

const (
	Empty State = iota // initial state
	Built              // terminal state
)

func (s State) String() string {
	if s == Built {
		return "built"
	}
	return "empty"
}

// ErrAlreadyBuilt is returned when Build is called on an index which has been built before.
var ErrAlreadyBuilt = errors.New("font index has already been built")

// Index maps font descriptors to font file paths.
//
// Build must be called exactly once. After Build returns successfully, the
// index is immutable and may be queried concurrently.
type Index struct {
	conf   Config
	state  State
	fonts  map[otquery.Descriptor]string
	report *Report
}

// New creates an empty index.
func New(conf Config) *Index {
	return &Index{conf: conf.withDefaults()}
}

// State returns the lifecycle state of the index.
func (inx *Index) State() State {
	return inx.state
}

type result struct {
	desc otquery.Descriptor
	err  error
}

// Build reads all files in paths and indexes their descriptors, moving the index
// from state Empty to Built. A file which cannot be read or parsed is skipped and
// recorded in the report.
//
// If ctx is canceled before all files have been processed, Build returns the
// context's error and the index remains empty.
func (inx *Index) Build(ctx context.Context, paths []string) (*Report, error) {
	if inx.state == Built {
		return nil, ErrAlreadyBuilt
	}
	start := time.Now()
	results := make([]result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(inx.conf.Workers)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = inx.load(gctx, path)
			return nil
		})
	}
	_ = g.Wait() // workers never fail, errors go to results
	if err := ctx.Err(); err != nil {
		tracer().Errorf("font index build canceled: %v", err)
		return nil, err
	}
	// apply in path order: later files overwrite earlier ones
	fonts := make(map[otquery.Descriptor]string, len(paths))
	report := &Report{Candidates: len(paths)}
	for i, r := range results {
		if r.err != nil {
			tracer().Infof("skipping font file %s: %v", paths[i], r.err)
			report.Skipped = append(report.Skipped, Skipped{Path: paths[i], Err: r.err})
			continue
		}
		if prev, ok := fonts[r.desc]; ok {
			tracer().Debugf("font %s: %s replaces %s", r.desc, paths[i], prev)
			report.Replaced++
		}
		fonts[r.desc] = paths[i]
		report.Indexed++
	}
	report.Elapsed = time.Since(start)
	inx.fonts, inx.report, inx.state = fonts, report, Built
	tracer().Infof("font index built: %s", report)
	return report, nil
}

// load reads and parses a single font file.
func (inx *Index) load(ctx context.Context, path string) result {
	data, err := inx.readFile(ctx, path)
	if err != nil {
		return result{err: err}
	}
	d, err := inx.conf.Extractor.Extract(data)
	if err != nil {
		return result{err: err}
	}
	tracer().Debugf("font file %s: %s", path, d)
	return result{desc: d}
}

// Lookup returns the path of the font file for descriptor d.
//
// Lookup panics if the index has not been built; querying an index before
// building it is a programming error.
func (inx *Index) Lookup(d otquery.Descriptor) (string, bool) {
	if inx.state != Built {
		panic("fontindex: lookup in a font index which has not been built")
	}
	path, ok := inx.fonts[d]
	return path, ok
}

// Len returns the number of descriptors in the index.
func (inx *Index) Len() int {
	return len(inx.fonts)
}

// Descriptors returns all descriptors of the index, sorted by family name, then
// bold, then italic. For an index which has not been built, it returns nil.
func (inx *Index) Descriptors() []otquery.Descriptor {
	if inx.state != Built {
		return nil
	}
	descs := make([]otquery.Descriptor, 0, len(inx.fonts))
	for d := range inx.fonts {
		descs = append(descs, d)
	}
	slices.SortFunc(descs, compareDescriptors)
	return descs
}

func compareDescriptors(a, b otquery.Descriptor) int {
	if c := strings.Compare(a.Family, b.Family); c != 0 {
		return c
	}
	if a.Bold != b.Bold {
		return boolCompare(a.Bold, b.Bold)
	}
	return boolCompare(a.Italic, b.Italic)
}

func boolCompare(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

// Report returns diagnostics of the build, or nil if the index has not been built.
func (inx *Index) Report() *Report {
	return inx.report
}
