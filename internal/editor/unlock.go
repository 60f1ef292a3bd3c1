package editor

import (
	"fmt"

	"peacockedit/internal/activity"
	"peacockedit/internal/gamedata"
	"peacockedit/internal/jsonmap"
)

// completedChallenge is the progression entry the game server writes for a
// finished challenge.
func completedChallenge() map[string]any {
	return map[string]any{
		"Completed": true,
		"State":     map[string]any{"CurrentState": "Success"},
	}
}

// UnlockChallenges marks the listed challenges completed on the profile.
// A nil id list unlocks the full catalog, replacing the progression map.
func (e *Editor) UnlockChallenges(profileID string, ids []string) (string, error) {
	s, err := e.begin(profileID)
	if err != nil {
		return "", err
	}
	catalog := e.loader.Challenges(s.root)

	ext := s.extensions()
	if ids == nil {
		unlocked := make(map[string]any, len(catalog))
		for _, c := range catalog {
			unlocked[c.ID] = completedChallenge()
		}
		ext["ChallengeProgression"] = unlocked
	} else {
		progression := jsonmap.Ensure(ext, "ChallengeProgression")
		for _, id := range ids {
			progression[id] = completedChallenge()
		}
	}
	if err := s.commit(); err != nil {
		return "", err
	}

	var message, description string
	switch {
	case ids == nil:
		message = fmt.Sprintf("Unlocked all %d challenges", len(catalog))
		description = "Unlocked all challenges"
	case len(ids) == 1:
		message = "Unlocked 1 challenge"
		description = fmt.Sprintf("Unlocked challenge: %s", e.loader.ChallengeName(s.root, ids[0]))
	default:
		message = fmt.Sprintf("Unlocked %d challenges", len(ids))
		description = message
	}
	s.journal(description, activity.TypeUnlock)
	return message, nil
}

// UnlockEscalations sets each listed escalation to its maximum level and
// records it completed. A nil id list unlocks the full catalog.
func (e *Editor) UnlockEscalations(profileID string, ids []string) (string, error) {
	s, err := e.begin(profileID)
	if err != nil {
		return "", err
	}
	catalog := e.loader.Escalations(s.root)
	levels := make(map[string]int, len(catalog))
	for _, esc := range catalog {
		levels[esc.ID] = esc.MaxLevel
	}

	ext := s.extensions()
	completed := jsonmap.Strings(ext, "PeacockCompletedEscalations")
	seen := make(map[string]bool, len(completed))
	for _, id := range completed {
		seen[id] = true
	}

	if ids == nil {
		unlocked := make(map[string]any, len(catalog))
		for _, esc := range catalog {
			unlocked[esc.ID] = esc.MaxLevel
			if !seen[esc.ID] {
				completed = append(completed, esc.ID)
				seen[esc.ID] = true
			}
		}
		ext["PeacockEscalations"] = unlocked
	} else {
		escalations := jsonmap.Ensure(ext, "PeacockEscalations")
		for _, id := range ids {
			level := levels[id]
			if level == 0 {
				level = gamedata.DefaultEscalationLevels
			}
			escalations[id] = level
			if !seen[id] {
				completed = append(completed, id)
				seen[id] = true
			}
		}
	}
	ext["PeacockCompletedEscalations"] = completed

	if err := s.commit(); err != nil {
		return "", err
	}

	var message, description string
	switch {
	case ids == nil:
		message = fmt.Sprintf("Unlocked all %d escalations", len(catalog))
		description = "Unlocked all escalations"
	case len(ids) == 1:
		message = "Unlocked 1 escalation"
		description = fmt.Sprintf("Unlocked escalation: %s", e.loader.EscalationName(s.root, ids[0]))
	default:
		message = fmt.Sprintf("Unlocked %d escalations", len(ids))
		description = message
	}
	s.journal(description, activity.TypeUnlock)
	return message, nil
}

// UnlockStories marks the listed mission stories completed. A nil id list
// unlocks the full catalog, replacing the progression map.
func (e *Editor) UnlockStories(profileID string, ids []string) (string, error) {
	s, err := e.begin(profileID)
	if err != nil {
		return "", err
	}
	catalog := e.loader.Stories(s.root)

	ext := s.extensions()
	if ids == nil {
		unlocked := make(map[string]any, len(catalog))
		for _, story := range catalog {
			unlocked[story.ID] = true
		}
		ext["opportunityprogression"] = unlocked
	} else {
		progression := jsonmap.Ensure(ext, "opportunityprogression")
		for _, id := range ids {
			progression[id] = true
		}
	}
	if err := s.commit(); err != nil {
		return "", err
	}

	var message, description string
	switch {
	case ids == nil:
		message = fmt.Sprintf("Unlocked all %d mission stories", len(catalog))
		description = "Unlocked all mission stories"
	case len(ids) == 1:
		message = "Unlocked 1 mission story"
		description = fmt.Sprintf("Unlocked story: %s", e.loader.StoryName(s.root, ids[0]))
	default:
		message = fmt.Sprintf("Unlocked %d mission stories", len(ids))
		description = message
	}
	s.journal(description, activity.TypeUnlock)
	return message, nil
}

// UnlockAll applies the full content unlock: every challenge, escalation
// and story, every location at its mastery cap, and a Freelancer campaign
// entry. The profile is backed up first because the edit touches everything.
func (e *Editor) UnlockAll(profileID string) (string, error) {
	s, err := e.begin(profileID)
	if err != nil {
		return "", err
	}
	if _, err := s.store.Backup(s.path); err != nil {
		e.logger.Warn("Backup before full unlock failed: %v", err)
	}

	challenges := e.loader.Challenges(s.root)
	escalations := e.loader.Escalations(s.root)
	stories := e.loader.Stories(s.root)
	caps := e.loader.MasteryCaps(s.root)

	ext := s.extensions()
	prog := s.progression()

	locations := jsonmap.Ensure(prog, "Locations")
	for locationID, cap := range caps {
		applyMastery(locations, locationID, cap)
	}

	challengeProgression := jsonmap.Ensure(ext, "ChallengeProgression")
	for _, c := range challenges {
		challengeProgression[c.ID] = completedChallenge()
	}

	storyProgression := jsonmap.Ensure(ext, "opportunityprogression")
	for _, story := range stories {
		storyProgression[story.ID] = true
	}

	escalationLevels := jsonmap.Ensure(ext, "PeacockEscalations")
	completed := jsonmap.Strings(ext, "PeacockCompletedEscalations")
	seen := make(map[string]bool, len(completed))
	for _, id := range completed {
		seen[id] = true
	}
	for _, esc := range escalations {
		escalationLevels[esc.ID] = esc.MaxLevel
		if !seen[esc.ID] {
			completed = append(completed, esc.ID)
			seen[esc.ID] = true
		}
	}
	ext["PeacockCompletedEscalations"] = completed

	cpd := jsonmap.Ensure(ext, "CPD")
	if _, ok := cpd[gamedata.FreelancerID]; !ok {
		cpd[gamedata.FreelancerID] = map[string]any{
			"MyMoney":        0,
			"EvergreenLevel": 0,
		}
	}

	if err := s.commit(); err != nil {
		return "", err
	}
	s.journal("Unlocked all challenges, escalations, stories, and max mastery", activity.TypeUnlock)
	return "Unlocked all content successfully", nil
}
