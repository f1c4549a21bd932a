/*
Package fontdirs knows where fonts are installed on a host.

For each supported platform it lists directories likely to contain font files, and
it walks these directories to collect candidate OpenType and TrueType files.
Font content is not looked at; a file qualifies by its extension alone.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontdirs

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.dirs'
func tracer() tracing.Trace {
	return tracing.Select("font.dirs")
}

// Platform is an operating system, named as by runtime.GOOS.
type Platform string

// Supported platforms.
const (
	Darwin  Platform = "darwin"
	Windows Platform = "windows"
	Linux   Platform = "linux"
)

// Current returns the platform the program is running on.
func Current() Platform {
	return Platform(runtime.GOOS)
}

// Supported reports whether font directories are known for p.
func (p Platform) Supported() bool {
	_, ok := platformDirs[p]
	return ok
}

// UnsupportedPlatformError is returned for platforms without a known
// list of font directories.
type UnsupportedPlatformError struct {
	Platform Platform
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported operating system: %q", string(e.Platform))
}

// Env looks up environment variables. A nil Env reads the process environment.
type Env func(key string) string

func (env Env) get(key string) string {
	if env == nil {
		return os.Getenv(key)
	}
	return env(key)
}

// MapEnv is an Env backed by a map.
func MapEnv(m map[string]string) Env {
	return func(key string) string {
		return m[key]
	}
}

var platformDirs = map[Platform]func(Env) []string{
	Darwin:  darwinFontDirectories,
	Windows: windowsFontDirectories,
	Linux:   linuxFontDirectories,
}

// Directories returns directory paths likely to contain fonts on platform p,
// in the order they should be scanned. Fonts found in later directories
// take precedence over fonts with the same descriptor in earlier ones.
//
// For platforms without known font directories, an *UnsupportedPlatformError
// is returned.
func Directories(p Platform, env Env) ([]string, error) {
	dirs, ok := platformDirs[p]
	if !ok {
		return nil, &UnsupportedPlatformError{Platform: p}
	}
	return dirs(env), nil
}

func darwinFontDirectories(env Env) []string {
	dirs := []string{
		"/Library/Fonts",
		"/Network/Library/Fonts",
		"/System/Library/Fonts",
	}
	if home := env.get("HOME"); home != "" {
		dirs = append(dirs,
			path.Join(home, "Library", "Fonts"),
			path.Join(home, ".fonts"),
		)
	}
	return dirs
}

func windowsFontDirectories(env Env) []string {
	windir := env.get("WINDIR")
	if windir == "" {
		windir = env.get("SystemRoot")
	}
	if windir == "" {
		windir = `C:\Windows`
	}
	dirs := []string{winJoin(windir, "Fonts")}
	if local := env.get("LOCALAPPDATA"); local != "" {
		dirs = append(dirs, winJoin(local, "Microsoft", "Windows", "Fonts"))
	}
	return dirs
}

func linuxFontDirectories(env Env) []string {
	dirs := []string{
		"/usr/share/fonts",
		"/usr/local/share/fonts",
	}
	home := env.get("HOME")
	if data := env.get("XDG_DATA_HOME"); data != "" {
		dirs = append(dirs, path.Join(data, "fonts"))
	} else if home != "" {
		dirs = append(dirs, path.Join(home, ".local", "share", "fonts"))
	}
	if home != "" {
		dirs = append(dirs, path.Join(home, ".fonts"))
	}
	return dirs
}

func winJoin(elem ...string) string {
	for i, e := range elem {
		elem[i] = strings.TrimRight(e, `\/`)
	}
	return strings.Join(elem, `\`)
}
