package fontindex

import (
	"errors"
	"fmt"
	"time"
)

// Skipped records a font file which has not been indexed, and why.
type Skipped struct {
	Path string
	Err  error
}

func (s Skipped) Error() string {
	return fmt.Sprintf("%s: %v", s.Path, s.Err)
}

func (s Skipped) Unwrap() error {
	return s.Err
}

// Report holds diagnostics of an index build. It does not influence lookups.
type Report struct {
	Candidates int           // number of candidate files
	Indexed    int           // files successfully parsed
	Replaced   int           // index entries overwritten by a later file
	Skipped    []Skipped     // files not indexed
	Elapsed    time.Duration // duration of the build
}

func (r *Report) String() string {
	if r == nil {
		return "<no report>"
	}
	return fmt.Sprintf("%d candidates, %d indexed, %d replaced, %d skipped in %s",
		r.Candidates, r.Indexed, r.Replaced, len(r.Skipped), r.Elapsed.Round(time.Millisecond))
}

// Err joins the errors of all skipped files, or returns nil if no file has been skipped.
// Each error matches errors.Is for its underlying cause.
func (r *Report) Err() error {
	if r == nil || len(r.Skipped) == 0 {
		return nil
	}
	errs := make([]error, len(r.Skipped))
	for i, s := range r.Skipped {
		errs[i] = s
	}
	return errors.Join(errs...)
}
