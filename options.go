package fontfiles

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/npillmayer/fontfiles/fontdirs"
	"github.com/npillmayer/fontfiles/fontindex"
	"github.com/npillmayer/schuko"
)

// Option configures a Service.
type Option func(*Service)

// WithScanner replaces the platform directory scanner.
// Options WithPlatform, WithEnv and WithDirectories have no effect then.
func WithScanner(scanner FileScanner) Option {
	return func(s *Service) {
		s.scanner = scanner
	}
}

// WithPlatform selects the platform whose font directories are scanned,
// instead of the platform the program runs on.
func WithPlatform(p fontdirs.Platform) Option {
	return func(s *Service) {
		s.dirs.Platform = p
	}
}

// WithEnv sets the environment for resolving the platform's font directories.
func WithEnv(env fontdirs.Env) Option {
	return func(s *Service) {
		s.dirs.Env = env
	}
}

// WithDirectories adds directories to scan after the platform's font directories.
func WithDirectories(dirs ...string) Option {
	return func(s *Service) {
		s.dirs.Extra = append(s.dirs.Extra, dirs...)
	}
}

// WithExtractor replaces the extractor for font descriptors.
func WithExtractor(x fontindex.Extractor) Option {
	return func(s *Service) {
		s.conf.Extractor = x
	}
}

// WithOpener replaces the function used to open font files.
func WithOpener(open fontindex.Opener) Option {
	return func(s *Service) {
		s.conf.Open = open
	}
}

// WithWorkers sets the number of font files parsed in parallel.
func WithWorkers(n int) Option {
	return func(s *Service) {
		s.conf.Workers = n
	}
}

// WithMaxFileSize sets the size limit for font files; larger files are skipped.
func WithMaxFileSize(size int64) Option {
	return func(s *Service) {
		s.conf.MaxFileSize = size
	}
}

// WithReadTimeout sets the time limit for reading a single font file.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.conf.ReadTimeout = d
	}
}

// Configuration keys read by OptionsFromConfig.
const (
	ConfPlatform    = "fontfiles.platform"    // platform name, e.g. "linux"
	ConfWorkers     = "fontfiles.workers"     // number of parallel parsers
	ConfMaxFileSize = "fontfiles.maxfilesize" // in bytes
	ConfTimeout     = "fontfiles.timeout"     // in milliseconds
	ConfDirs        = "fontfiles.dirs"        // extra directories, separated by os.PathListSeparator
)

// OptionsFromConfig creates options from configuration values. Keys which are
// not set, or set to non-positive numbers, are ignored.
func OptionsFromConfig(conf schuko.Configuration) []Option {
	var opts []Option
	if conf == nil {
		return opts
	}
	if conf.IsSet(ConfPlatform) {
		if p := strings.TrimSpace(conf.GetString(ConfPlatform)); p != "" {
			opts = append(opts, WithPlatform(fontdirs.Platform(strings.ToLower(p))))
		}
	}
	if n := conf.GetInt(ConfWorkers); conf.IsSet(ConfWorkers) && n > 0 {
		opts = append(opts, WithWorkers(n))
	}
	if n := conf.GetInt(ConfMaxFileSize); conf.IsSet(ConfMaxFileSize) && n > 0 {
		opts = append(opts, WithMaxFileSize(int64(n)))
	}
	if n := conf.GetInt(ConfTimeout); conf.IsSet(ConfTimeout) && n > 0 {
		opts = append(opts, WithReadTimeout(time.Duration(n)*time.Millisecond))
	}
	if conf.IsSet(ConfDirs) {
		var dirs []string
		for _, d := range filepath.SplitList(conf.GetString(ConfDirs)) {
			if d = strings.TrimSpace(d); d != "" {
				dirs = append(dirs, d)
			}
		}
		if len(dirs) > 0 {
			opts = append(opts, WithDirectories(dirs...))
		}
	}
	tracer().Debugf("%d options from configuration", len(opts))
	return opts
}
