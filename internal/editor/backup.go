package editor

import (
	"fmt"

	"peacockedit/internal/activity"
	"peacockedit/internal/profile"
)

// CreateBackup snapshots the resolved profile next to the original.
func (e *Editor) CreateBackup(profileID string) (string, error) {
	root, err := e.Root()
	if err != nil {
		return "", err
	}
	store := profile.NewStore(root)
	path, err := store.Resolve(profileID)
	if err != nil {
		return "", err
	}
	name, err := store.Backup(path)
	if err != nil {
		return "", err
	}
	activity.NewLog(root).Append(fmt.Sprintf("Created backup: %s", name), activity.TypeProfile)
	return fmt.Sprintf("Backup created: %s", name), nil
}

// RestoreBackup replaces the resolved profile with its most recent backup.
func (e *Editor) RestoreBackup(profileID string) (string, error) {
	root, err := e.Root()
	if err != nil {
		return "", err
	}
	store := profile.NewStore(root)
	path, err := store.Resolve(profileID)
	if err != nil {
		return "", err
	}
	name, err := store.RestoreLatest(path)
	if err != nil {
		return "", err
	}
	activity.NewLog(root).Append(fmt.Sprintf("Restored from backup: %s", name), activity.TypeProfile)
	return fmt.Sprintf("Restored from backup: %s", name), nil
}
