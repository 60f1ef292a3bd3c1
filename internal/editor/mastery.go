package editor

import (
	"fmt"

	"peacockedit/internal/activity"
	"peacockedit/internal/gamedata"
	"peacockedit/internal/jsonmap"
)

// setMasteryLevel writes the level and the linear XP total it implies onto
// an existing progression entry. Other keys the game wrote stay untouched.
func setMasteryLevel(entry map[string]any, level int) {
	entry["Xp"] = gamedata.XPForLevel(level)
	entry["Level"] = level
	entry["PreviouslySeenXp"] = gamedata.XPForLevel(level)
}

// applyMastery writes the mastery level for one location. Sniper maps track
// mastery per rifle rather than per map, so those fan out into one entry per
// unlockable rifle.
func applyMastery(locations map[string]any, locationID string, level int) {
	entry := jsonmap.Ensure(locations, locationID)
	rifles, sniper := gamedata.SniperRifles[locationID]
	if !sniper {
		setMasteryLevel(entry, level)
		return
	}
	for _, rifle := range rifles {
		setMasteryLevel(jsonmap.Ensure(entry, rifle), level)
	}
}

// SetMastery sets one location's mastery level, clamped to the location's
// cap.
func (e *Editor) SetMastery(profileID, locationID string, level int) (string, error) {
	s, err := e.begin(profileID)
	if err != nil {
		return "", err
	}
	caps := e.loader.MasteryCaps(s.root)
	cap, ok := caps[locationID]
	if !ok {
		cap = gamedata.DefaultMasteryCap
	}
	level = clamp(level, 0, cap)

	locations := jsonmap.Ensure(s.progression(), "Locations")
	applyMastery(locations, locationID, level)

	if err := s.commit(); err != nil {
		return "", err
	}
	s.journal(fmt.Sprintf("Set %s mastery to level %d", gamedata.LocationName(locationID), level), activity.TypeMastery)
	return fmt.Sprintf("Set mastery for %s to level %d", locationID, level), nil
}

// MaxAllMastery sets every known location to its own mastery cap.
func (e *Editor) MaxAllMastery(profileID string) (string, error) {
	s, err := e.begin(profileID)
	if err != nil {
		return "", err
	}
	caps := e.loader.MasteryCaps(s.root)

	locations := jsonmap.Ensure(s.progression(), "Locations")
	for locationID, cap := range caps {
		applyMastery(locations, locationID, cap)
	}

	if err := s.commit(); err != nil {
		return "", err
	}
	message := fmt.Sprintf("Maxed all %d location masteries", len(caps))
	s.journal(message, activity.TypeMastery)
	return message, nil
}
