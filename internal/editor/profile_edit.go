package editor

import (
	"fmt"
	"strings"

	"peacockedit/internal/activity"
	"peacockedit/internal/gamedata"
	"peacockedit/internal/jsonmap"
)

// ProfileUpdate carries the editable numeric fields. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Level    *int `json:"level"`
	XP       *int `json:"xp"`
	Merces   *int `json:"merces"`
	Prestige *int `json:"prestige"`
}

// UpdateProfile edits the profile-wide numbers: player level, XP, Freelancer
// merces and prestige. The profile is backed up first and every field is
// clamped to its legal range rather than rejected.
func (e *Editor) UpdateProfile(profileID string, update ProfileUpdate) (string, error) {
	s, err := e.begin(profileID)
	if err != nil {
		return "", err
	}
	backupName, backupErr := s.store.Backup(s.path)
	if backupErr != nil {
		e.logger.Warn("Backup before profile update failed: %v", backupErr)
	}

	prog := s.progression()
	playerXP := jsonmap.Ensure(prog, "PlayerProfileXP")
	var changes []string

	if update.Level != nil {
		level := clamp(*update.Level, 1, gamedata.MaxLevel)
		prog["ProfileLevel"] = level
		playerXP["ProfileLevel"] = level
		changes = append(changes, fmt.Sprintf("level %d", level))
	}
	if update.XP != nil {
		xp := clamp(*update.XP, 0, gamedata.MaxXP)
		prog["XP"] = xp
		playerXP["Total"] = xp
		changes = append(changes, fmt.Sprintf("XP %d", xp))
	}
	if update.Merces != nil {
		merces := clamp(*update.Merces, 0, gamedata.MaxMerces)
		jsonmap.Ensure(prog, "Merces")["Total"] = merces
		changes = append(changes, fmt.Sprintf("merces %d", merces))
	}
	if update.Prestige != nil {
		prestige := clamp(*update.Prestige, 0, gamedata.MaxPrestige)
		cpd := jsonmap.Ensure(s.extensions(), "CPD")
		jsonmap.Ensure(cpd, gamedata.FreelancerID)["EvergreenLevel"] = prestige
		changes = append(changes, fmt.Sprintf("prestige %d", prestige))
	}

	if err := s.commit(); err != nil {
		return "", err
	}
	if len(changes) > 0 {
		s.journal("Updated profile: "+strings.Join(changes, ", "), activity.TypeProfile)
	}
	message := "Profile updated successfully"
	if backupErr == nil {
		message = fmt.Sprintf("%s (backup: %s)", message, backupName)
	}
	return message, nil
}

// ResetAll wipes the profile's progress back to a fresh state: level 1,
// zero XP and merces, no mastery, no completed challenges, escalations or
// stories. A backup is taken first.
func (e *Editor) ResetAll(profileID string) (string, error) {
	s, err := e.begin(profileID)
	if err != nil {
		return "", err
	}
	if _, err := s.store.Backup(s.path); err != nil {
		e.logger.Warn("Backup before reset failed: %v", err)
	}

	ext := s.extensions()
	prog := s.progression()

	prog["ProfileLevel"] = 1
	prog["XP"] = 0
	profileXP := jsonmap.Ensure(prog, "PlayerProfileXP")
	profileXP["ProfileLevel"] = 1
	profileXP["Total"] = 0
	merces := jsonmap.Ensure(prog, "Merces")
	merces["Total"] = 0
	merces["ProfileLevel"] = 1
	prog["Locations"] = map[string]any{}

	ext["ChallengeProgression"] = map[string]any{}
	ext["opportunityprogression"] = map[string]any{}
	ext["PeacockEscalations"] = map[string]any{}
	ext["PeacockCompletedEscalations"] = []string{}

	if cpd, ok := ext["CPD"].(map[string]any); ok {
		if entry, ok := cpd[gamedata.FreelancerID].(map[string]any); ok {
			entry["MyMoney"] = 0
			entry["EvergreenLevel"] = 0
		}
	}

	if err := s.commit(); err != nil {
		return "", err
	}
	s.journal("Reset all progress to level 1", activity.TypeProfile)
	return "Successfully reset all progress", nil
}
