// Package profile reads, writes, backs up and enumerates player profile
// files under the installation's userdata/users directory.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"peacockedit/internal/fsutil"
)

// Backup file naming: <uuid>.backup_<YYYY-MM-DDTHH-MM-SS>.json
const (
	backupMarker  = ".backup_"
	fileExtension = ".json"
)

var (
	// ErrNoProfiles means the users directory holds no valid profile file.
	ErrNoProfiles = errors.New("no profiles found")
	// ErrNoBackups means no timestamped backup sibling exists for a profile.
	ErrNoBackups = errors.New("no backups found")
)

// reservedStems are filenames the game server uses for its own bookkeeping;
// they are never treated as player profiles regardless of shape.
var reservedStems = map[string]bool{
	"lop":     true,
	"default": true,
	"example": true,
	"backup":  true,
}

// Store handles profile I/O for one installation root.
type Store struct {
	root string
}

// NewStore returns a store for the given installation root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// UsersDir returns the directory that holds the profile files.
func (s *Store) UsersDir() string {
	return filepath.Join(s.root, "userdata", "users")
}

// PathFor returns the on-disk path a profile id maps to, whether or not the
// file exists.
func (s *Store) PathFor(id string) string {
	return filepath.Join(s.UsersDir(), id+fileExtension)
}

// List enumerates valid profile files in filesystem order. A stem is a
// profile when it is exactly 36 characters, splits into 5 dash segments
// (canonical UUID shape) and is not a reserved name.
func (s *Store) List() ([]string, error) {
	usersDir := s.UsersDir()
	if !fsutil.Exists(usersDir) {
		return nil, nil
	}

	entries, err := os.ReadDir(usersDir)
	if err != nil {
		return nil, err
	}

	var profiles []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExtension) {
			continue
		}
		stem := strings.TrimSuffix(name, fileExtension)
		if reservedStems[stem] {
			continue
		}
		if len(stem) == 36 && len(strings.Split(stem, "-")) == 5 {
			profiles = append(profiles, filepath.Join(usersDir, name))
		}
	}
	return profiles, nil
}

// Resolve maps an optional explicit profile id to a concrete file path.
// An explicit id is used only when that exact file exists; otherwise the
// first enumerated profile acts as the active one. This fallback is the de
// facto "active profile" convention in a system with no session state.
func (s *Store) Resolve(explicitID string) (string, error) {
	profiles, err := s.List()
	if err != nil {
		return "", err
	}
	if explicitID != "" {
		custom := s.PathFor(explicitID)
		if fsutil.Exists(custom) {
			return custom, nil
		}
	}
	if len(profiles) == 0 {
		return "", ErrNoProfiles
	}
	return profiles[0], nil
}

// Read parses a profile file into a generic JSON object.
func (s *Store) Read(path string) (map[string]any, error) {
	value, err := fsutil.ReadJSONValue(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", filepath.Base(path), err)
	}
	return value, nil
}

// Write fully overwrites the profile file with 4-space indented JSON.
func (s *Store) Write(path string, value map[string]any) error {
	if err := fsutil.WriteJSON(path, value); err != nil {
		return fmt.Errorf("write profile %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Backup copies the profile to a timestamped sibling and returns the
// backup's filename. Backup is best-effort and never blocks the mutation it
// guards; callers treat an error as "no backup was taken" and continue.
func (s *Store) Backup(path string) (string, error) {
	backupPath := backupPathFor(path, time.Now().UTC())
	if err := fsutil.CopyFile(path, backupPath); err != nil {
		return "", err
	}
	return filepath.Base(backupPath), nil
}

// RestoreLatest copies the most recent backup sibling over the profile.
// The timestamp format sorts lexicographically, so the greatest match is
// the newest. Returns the restored backup's filename.
func (s *Store) RestoreLatest(path string) (string, error) {
	dir := filepath.Dir(path)
	stem := strings.TrimSuffix(filepath.Base(path), fileExtension)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var backups []string
	prefix := stem + backupMarker
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, fileExtension) {
			backups = append(backups, name)
		}
	}
	if len(backups) == 0 {
		return "", ErrNoBackups
	}
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))

	latest := backups[0]
	if err := fsutil.CopyFile(filepath.Join(dir, latest), path); err != nil {
		return "", err
	}
	return latest, nil
}

// backupPathFor derives the backup sibling name; colons and periods are
// stripped from the timestamp so the name is valid on every filesystem.
func backupPathFor(path string, now time.Time) string {
	timestamp := now.Format("2006-01-02T15-04-05")
	stem := strings.TrimSuffix(path, fileExtension)
	return stem + backupMarker + timestamp + fileExtension
}

// ID extracts the profile id from a profile file path.
func ID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), fileExtension)
}
