package fontdirs

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FontExtensions are the file extensions of candidate font files, in lower case.
var FontExtensions = []string{".otf", ".ttf"}

// IsFontFile reports whether name carries one of FontExtensions, ignoring case.
func IsFontFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range FontExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// CandidateFiles walks each of dirs recursively and returns the absolute paths of
// all font files found. Directories are walked in the order given; within a
// directory, entries are visited in lexical order. Directories which do not exist
// or cannot be read are skipped.
//
// A directory in dirs may be a symbolic link; it is resolved and walked, with
// paths reported below the link. Symbolic links further down are not followed.
func CandidateFiles(dirs []string) []string {
	var files []string
	for _, dir := range dirs {
		root, err := filepath.EvalSymlinks(dir)
		if err != nil {
			tracer().Debugf("skipping font directory %s: %v", dir, err)
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				tracer().Debugf("skipping %s: %v", p, err)
				if d != nil && d.IsDir() && p != root {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !IsFontFile(d.Name()) {
				return nil
			}
			if rel, err := filepath.Rel(root, p); err == nil {
				p = filepath.Join(dir, rel)
			}
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil
			}
			files = append(files, abs)
			return nil
		})
		if err != nil {
			tracer().Errorf("walking font directory %s: %v", dir, err)
		}
	}
	tracer().Infof("found %d candidate font files in %d directories", len(files), len(dirs))
	return files
}

// Scanner supplies the candidate font files of a platform.
type Scanner struct {
	Platform Platform // defaults to Current()
	Env      Env      // defaults to the process environment
	Extra    []string // directories scanned after the platform's directories
}

// FontFiles returns candidate font files from the platform's font directories,
// followed by those from s.Extra. If the platform is not supported, an
// *UnsupportedPlatformError is returned and no directory is touched.
func (s Scanner) FontFiles() ([]string, error) {
	p := s.Platform
	if p == "" {
		p = Current()
	}
	dirs, err := Directories(p, s.Env)
	if err != nil {
		return nil, err
	}
	dirs = append(dirs, s.Extra...)
	tracer().Debugf("font directories for %s: %v", p, dirs)
	return CandidateFiles(dirs), nil
}
