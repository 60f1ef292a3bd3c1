// Package editor implements the mutating operations on a player profile:
// unlocks, locks, mastery edits, numeric profile edits and resets. Every
// operation follows the same transaction shape — resolve the installation,
// resolve the target profile, read, mutate an in-memory copy, write back,
// journal — so the shape lives here once instead of in every endpoint.
package editor

import (
	"errors"

	"peacockedit/internal/activity"
	"peacockedit/internal/gamedata"
	"peacockedit/internal/jsonmap"
	"peacockedit/internal/locator"
	"peacockedit/internal/logging"
	"peacockedit/internal/profile"
)

// ErrInstallNotFound is the expected "service unavailable" state when no
// installation can be discovered. It is a reported condition, not a defect.
var ErrInstallNotFound = errors.New("peacock installation not found")

// Editor orchestrates profile mutations.
type Editor struct {
	locator *locator.Locator
	loader  *gamedata.Loader
	logger  *logging.Logger
}

// New returns an editor over the given locator and static-data loader.
func New(loc *locator.Locator, loader *gamedata.Loader) *Editor {
	return &Editor{
		locator: loc,
		loader:  loader,
		logger:  logging.NewComponentLogger("Editor"),
	}
}

// Loader exposes the static-data loader for read-only consumers.
func (e *Editor) Loader() *gamedata.Loader {
	return e.loader
}

// Root resolves the installation root.
func (e *Editor) Root() (string, error) {
	root, ok := e.locator.Find()
	if !ok {
		return "", ErrInstallNotFound
	}
	return root, nil
}

// Store returns a profile store for the current installation.
func (e *Editor) Store() (*profile.Store, error) {
	root, err := e.Root()
	if err != nil {
		return nil, err
	}
	return profile.NewStore(root), nil
}

// session is the per-request mutation state: one resolved profile document
// held in memory between read and write.
type session struct {
	root  string
	store *profile.Store
	path  string
	doc   map[string]any
}

// begin resolves the installation and target profile and reads the profile
// document. profileID may be empty, in which case the first enumerated
// profile is the target.
func (e *Editor) begin(profileID string) (*session, error) {
	root, err := e.Root()
	if err != nil {
		return nil, err
	}
	store := profile.NewStore(root)
	path, err := store.Resolve(profileID)
	if err != nil {
		return nil, err
	}
	doc, err := store.Read(path)
	if err != nil {
		return nil, err
	}
	return &session{root: root, store: store, path: path, doc: doc}, nil
}

// commit writes the mutated document back, fully overwriting the file.
func (s *session) commit() error {
	return s.store.Write(s.path, s.doc)
}

// journal appends an activity record; failures never surface because the
// journal is diagnostic state, not part of the mutation.
func (s *session) journal(description, recordType string) {
	activity.NewLog(s.root).Append(description, recordType)
}

// extensions returns the document's Extensions object, creating it when the
// profile is fresh.
func (s *session) extensions() map[string]any {
	return jsonmap.Ensure(s.doc, "Extensions")
}

// progression returns Extensions.progression, creating it as needed.
func (s *session) progression() map[string]any {
	return jsonmap.Ensure(s.extensions(), "progression")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
