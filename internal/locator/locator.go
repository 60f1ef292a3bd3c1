// Package locator finds and validates the on-disk Peacock installation.
//
// Discovery is a prioritized, short-circuiting sequence: explicit
// environment override, cached path from a previous run, a depth-bounded
// search of common user folders, a drive-letter sweep on Windows, and
// finally a fixed list of well-known fallback paths. Every heuristic find
// is persisted to the cache so subsequent runs skip the search entirely.
package locator

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"peacockedit/internal/fsutil"
	"peacockedit/internal/logging"
)

// EnvPathVar overrides all discovery heuristics when it names a valid
// installation directory.
const EnvPathVar = "PEACOCK_PATH"

// Depth limits are load-bearing termination guarantees, not tuning knobs.
const (
	userFolderDepth = 5
	driveProbeDepth = 3
	wideSweepDepth  = 2
)

var markerFolders = []string{"contractdata", "contractSessions", "userdata", "static"}

// skipNames are OS and tooling directories that the user-folder search never
// descends into. Compared case-insensitively.
var skipNames = map[string]bool{
	"node_modules": true,
	"windows":      true,
	"appdata":      true,
	"programdata":  true,
	"system32":     true,
	"syswow64":     true,
}

// wideSkipNames is the slightly different blocklist used by the wide
// drive-root sweep, which additionally avoids Program Files wholesale.
var wideSkipNames = map[string]bool{
	"node_modules":  true,
	"$recycle.bin":  true,
	"windows":       true,
	"program files": true,
	"programdata":   true,
}

// IsInstallRoot reports whether dir looks like a Peacock installation.
// At least 3 of the 4 marker folders must exist directly under it; older or
// partially initialized installations may be missing contractSessions and
// should still be usable.
func IsInstallRoot(dir string) bool {
	if !fsutil.Exists(dir) {
		return false
	}
	found := 0
	for _, folder := range markerFolders {
		if fsutil.Exists(filepath.Join(dir, folder)) {
			found++
		}
	}
	return found >= 3
}

// Locator runs the discovery sequence. The zero value is not usable; call
// New, which wires the process environment and user home, or pass Options
// to pin every input down for tests.
type Locator struct {
	getenv      func(string) string
	homeDir     func() (string, error)
	getwd       func() (string, error)
	cache       *Cache
	drives      []string
	driveSearch bool
	logger      *logging.Logger
}

// Options pins down the inputs of the discovery sequence. Zero fields fall
// back to the process environment.
type Options struct {
	Getenv    func(string) string
	HomeDir   func() (string, error)
	Getwd     func() (string, error)
	CachePath string
	// Drives and DriveSearch control the Windows drive sweep; DriveSearch
	// defaults to true only on Windows.
	Drives      []string
	DriveSearch *bool
}

// New returns a Locator wired to the process environment.
func New() *Locator {
	return NewWithOptions(Options{})
}

// NewWithOptions returns a Locator with explicit inputs for testing.
func NewWithOptions(opts Options) *Locator {
	l := &Locator{
		getenv:      opts.Getenv,
		homeDir:     opts.HomeDir,
		getwd:       opts.Getwd,
		cache:       NewCache(opts.CachePath),
		drives:      opts.Drives,
		driveSearch: runtime.GOOS == "windows",
		logger:      logging.NewComponentLogger("Locator"),
	}
	if l.getenv == nil {
		l.getenv = os.Getenv
	}
	if l.homeDir == nil {
		l.homeDir = os.UserHomeDir
	}
	if l.getwd == nil {
		l.getwd = os.Getwd
	}
	if len(l.drives) == 0 {
		l.drives = []string{"C", "D", "E", "F", "G", "H"}
	}
	if opts.DriveSearch != nil {
		l.driveSearch = *opts.DriveSearch
	}
	return l
}

// Find locates the installation root. The second return value is false when
// no installation could be found; callers treat that as an expected
// "service unavailable" state, not a defect.
func (l *Locator) Find() (string, bool) {
	// 1. Explicit override wins over everything, but only when it actually
	// points at a valid installation.
	if envPath := l.getenv(EnvPathVar); envPath != "" && fsutil.Exists(envPath) {
		if IsInstallRoot(envPath) {
			return envPath, true
		}
	}

	// 2. Cached path from a previous run, revalidated so stale or moved
	// installations self-heal by falling through.
	if cached, ok := l.cache.Get(); ok && IsInstallRoot(cached) {
		return cached, true
	}

	// 3. Depth-bounded search of the common user folders.
	if found := l.searchUserFolders(); found != "" {
		l.cache.Put(found)
		return found, true
	}

	// 4. Drive-letter sweep (Windows only).
	if l.driveSearch {
		if found := l.searchDrives(); found != "" {
			l.cache.Put(found)
			return found, true
		}
	}

	// 5. Fixed fallback paths relative to the working directory and home.
	for _, candidate := range l.fallbackPaths() {
		if IsInstallRoot(candidate) {
			l.cache.Put(candidate)
			return candidate, true
		}
	}

	return "", false
}

func (l *Locator) searchUserFolders() string {
	home, err := l.homeDir()
	if err != nil {
		return ""
	}
	roots := []string{
		filepath.Join(home, "Desktop"),
		filepath.Join(home, "Documents"),
		filepath.Join(home, "Downloads"),
	}
	for _, root := range roots {
		if found := searchFolder(root, userFolderDepth, skipNames); found != "" {
			return found
		}
	}
	return ""
}

func (l *Locator) searchDrives() string {
	for _, drive := range l.drives {
		drivePath := drive + `:\`
		if !fsutil.Exists(drivePath) {
			continue
		}

		locations := []string{
			filepath.Join(drivePath, "Peacock"),
			filepath.Join(drivePath, "Games"),
			filepath.Join(drivePath, "Program Files"),
			filepath.Join(drivePath, "Program Files (x86)"),
			drivePath,
		}
		for _, location := range locations {
			if found := searchFolder(location, driveProbeDepth, skipNames); found != "" {
				return found
			}
		}

		// Wide sweep: probe well-known folders directly, then a shallow
		// descent from the drive root with the broader blocklist.
		for _, location := range []string{
			filepath.Join(drivePath, "Peacock"),
			filepath.Join(drivePath, "Games", "Peacock"),
			filepath.Join(drivePath, "Hitman", "Peacock"),
		} {
			if IsInstallRoot(location) {
				return location
			}
		}
		if found := searchFolder(drivePath, wideSweepDepth, wideSkipNames); found != "" {
			return found
		}
	}
	return ""
}

func (l *Locator) fallbackPaths() []string {
	var paths []string
	if cwd, err := l.getwd(); err == nil {
		paths = append(paths, cwd, filepath.Join(cwd, ".."))
	}
	if home, err := l.homeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, "Desktop", "Peacock"),
			filepath.Join(home, "Desktop", "Peacock-master", "Peacock-master"),
			filepath.Join(home, "Desktop", "Peacock-master"),
			filepath.Join(home, "Documents", "Peacock"),
			filepath.Join(home, "Downloads", "Peacock"),
		)
	}
	return paths
}

// searchFolder walks down from root looking for a valid installation. The
// explicit depth counter guarantees termination; directories that fail to
// list are skipped rather than aborting the whole search.
func searchFolder(root string, depth int, skip map[string]bool) string {
	if depth <= 0 {
		return ""
	}
	if !fsutil.Exists(root) {
		return ""
	}

	if IsInstallRoot(root) {
		return root
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "$") || skip[name] {
			continue
		}
		if found := searchFolder(filepath.Join(root, entry.Name()), depth-1, skip); found != "" {
			return found
		}
	}
	return ""
}
