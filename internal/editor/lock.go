package editor

import (
	"fmt"

	"peacockedit/internal/activity"
	"peacockedit/internal/jsonmap"
)

// removeKeys deletes the listed ids from a progression map, returning how
// many were actually present.
func removeKeys(progression map[string]any, ids []string) int {
	removed := 0
	for _, id := range ids {
		if _, ok := progression[id]; ok {
			delete(progression, id)
			removed++
		}
	}
	return removed
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// LockStories removes the listed mission stories from the profile. A nil id
// list clears all of them.
func (e *Editor) LockStories(profileID string, ids []string) (string, error) {
	s, err := e.begin(profileID)
	if err != nil {
		return "", err
	}
	ext := s.extensions()

	var message string
	if ids == nil {
		total := len(jsonmap.Child(ext, "opportunityprogression"))
		ext["opportunityprogression"] = map[string]any{}
		message = fmt.Sprintf("Successfully locked all %d mission stories", total)
	} else {
		removed := removeKeys(jsonmap.Ensure(ext, "opportunityprogression"), ids)
		message = fmt.Sprintf("Successfully locked %d mission %s", removed, plural(removed, "story", "stories"))
	}
	if err := s.commit(); err != nil {
		return "", err
	}
	s.journal(message, activity.TypeUnlock)
	return message, nil
}

// LockChallenges removes the listed challenges from the profile. A nil id
// list clears all of them.
func (e *Editor) LockChallenges(profileID string, ids []string) (string, error) {
	s, err := e.begin(profileID)
	if err != nil {
		return "", err
	}
	ext := s.extensions()

	var message string
	if ids == nil {
		total := len(jsonmap.Child(ext, "ChallengeProgression"))
		ext["ChallengeProgression"] = map[string]any{}
		message = fmt.Sprintf("Successfully locked all %d challenges", total)
	} else {
		removed := removeKeys(jsonmap.Ensure(ext, "ChallengeProgression"), ids)
		message = fmt.Sprintf("Successfully locked %d %s", removed, plural(removed, "challenge", "challenges"))
	}
	if err := s.commit(); err != nil {
		return "", err
	}
	s.journal(message, activity.TypeUnlock)
	return message, nil
}

// LockEscalations removes the listed escalations, both their level entries
// and their completed markers. A nil id list clears all of them.
func (e *Editor) LockEscalations(profileID string, ids []string) (string, error) {
	s, err := e.begin(profileID)
	if err != nil {
		return "", err
	}
	ext := s.extensions()

	var message string
	if ids == nil {
		total := len(jsonmap.Child(ext, "PeacockEscalations"))
		ext["PeacockEscalations"] = map[string]any{}
		ext["PeacockCompletedEscalations"] = []string{}
		message = fmt.Sprintf("Successfully locked all %d escalations", total)
	} else {
		removed := removeKeys(jsonmap.Ensure(ext, "PeacockEscalations"), ids)

		locked := make(map[string]bool, len(ids))
		for _, id := range ids {
			locked[id] = true
		}
		completed := jsonmap.Strings(ext, "PeacockCompletedEscalations")
		kept := completed[:0]
		for _, id := range completed {
			if !locked[id] {
				kept = append(kept, id)
			}
		}
		ext["PeacockCompletedEscalations"] = kept
		message = fmt.Sprintf("Successfully locked %d %s", removed, plural(removed, "escalation", "escalations"))
	}
	if err := s.commit(); err != nil {
		return "", err
	}
	s.journal(message, activity.TypeUnlock)
	return message, nil
}
