// Package activity keeps the append-bounded journal of mutations under
// userdata/activity_log.json. The journal is diagnostic, not authoritative:
// every failure here is swallowed so it can never block the mutation that
// produced the record.
package activity

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"peacockedit/internal/fsutil"
	"peacockedit/internal/logging"
)

// MaxRecords caps the journal; oldest entries drop off on every write.
const MaxRecords = 50

// Record types, matching what the mutation endpoints report.
const (
	TypeUnlock   = "unlock"
	TypeMastery  = "mastery"
	TypeProfile  = "profile"
	TypeSettings = "settings"
)

// Record is one journal entry.
type Record struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	Type        string `json:"type"`
}

// Log reads and writes the journal of one installation.
type Log struct {
	root   string
	logger *logging.Logger
}

// NewLog returns a journal for the given installation root.
func NewLog(root string) *Log {
	return &Log{
		root:   root,
		logger: logging.NewComponentLogger("ActivityLog"),
	}
}

func (l *Log) path() string {
	return filepath.Join(l.root, "userdata", "activity_log.json")
}

// List returns the journal newest-first, capped at MaxRecords. A missing or
// malformed file is an empty journal.
func (l *Log) List() []Record {
	var records []Record
	if err := fsutil.ReadJSON(l.path(), &records); err != nil {
		return nil
	}
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}
	return records
}

// Append prepends a record and truncates to the newest MaxRecords. Failures
// are logged and swallowed.
func (l *Log) Append(description, recordType string) {
	record := Record{
		ID:          uuid.NewString(),
		Description: description,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Type:        recordType,
	}

	records := append([]Record{record}, l.List()...)
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}
	if err := fsutil.WriteJSON(l.path(), records); err != nil {
		l.logger.Warn("Failed to append activity record: %v", err)
	}
}

// Clear empties the journal.
func (l *Log) Clear() error {
	return fsutil.WriteJSON(l.path(), []Record{})
}
