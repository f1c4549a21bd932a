package fontindex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

var (
	// ErrFileTooLarge marks files exceeding the configured maximum file size.
	ErrFileTooLarge = errors.New("font file too large")
	// ErrReadTimeout marks files which could not be read within the configured timeout.
	ErrReadTimeout = errors.New("timeout reading font file")
)

type readResult struct {
	data []byte
	err  error
}

// readFile reads a font file, bounded by the configured size and time limits.
// The file is closed on every path out of readFile.
func (inx *Index) readFile(ctx context.Context, path string) ([]byte, error) {
	f, err := inx.conf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open font file: %w", err)
	}
	closeFile := sync.OnceValue(f.Close)
	defer closeFile()

	ctx, cancel := context.WithTimeout(ctx, inx.conf.ReadTimeout)
	defer cancel()
	max := inx.conf.MaxFileSize
	ch := make(chan readResult, 1)
	go func() {
		data, err := io.ReadAll(io.LimitReader(f, max+1))
		ch <- readResult{data: data, err: err}
	}()
	select {
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("read font file: %w", r.err)
		}
		if int64(len(r.data)) > max {
			return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, max)
		}
		return r.data, nil
	case <-ctx.Done():
		closeFile() // unblocks the reader
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrReadTimeout, inx.conf.ReadTimeout)
		}
		return nil, ctx.Err()
	}
}
