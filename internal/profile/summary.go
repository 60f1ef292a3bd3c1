package profile

import (
	"peacockedit/internal/gamedata"
	"peacockedit/internal/jsonmap"
)

// Summary is the flattened view of a profile the listing endpoints expose.
type Summary struct {
	ID                   string `json:"id"`
	Level                int    `json:"level"`
	XP                   int    `json:"xp"`
	Merces               int    `json:"merces"`
	Prestige             int    `json:"prestige"`
	ChallengesCompleted  int    `json:"challenges_completed"`
	LocationsCount       int    `json:"locations_count"`
	EscalationsCompleted int    `json:"escalations_completed"`
	StoriesCompleted     int    `json:"stories_completed"`
}

// Summarize extracts the summary fields from a parsed profile. The fallback
// chains mirror what the game server writes: PlayerProfileXP holds the
// authoritative level/XP when present, the flat progression fields
// otherwise, and level defaults to 1 for a fresh profile.
func Summarize(path string, p map[string]any) Summary {
	extensions := jsonmap.Child(p, "Extensions")
	progression := jsonmap.Child(extensions, "progression")
	playerXP := jsonmap.Child(progression, "PlayerProfileXP")

	level := jsonmap.Int(playerXP, "ProfileLevel")
	if level == 0 {
		level = jsonmap.Int(progression, "ProfileLevel")
	}
	if level == 0 {
		level = 1
	}

	xp := jsonmap.Int(playerXP, "Total")
	if xp == 0 {
		xp = jsonmap.Int(progression, "XP")
	}

	merces := jsonmap.Int(jsonmap.Child(progression, "Merces"), "Total")

	prestige := 0
	if cpd := jsonmap.Child(extensions, "CPD"); cpd != nil {
		prestige = jsonmap.Int(jsonmap.Child(cpd, gamedata.FreelancerID), "EvergreenLevel")
	}

	return Summary{
		ID:                   ID(path),
		Level:                level,
		XP:                   xp,
		Merces:               merces,
		Prestige:             prestige,
		ChallengesCompleted:  len(jsonmap.Child(extensions, "ChallengeProgression")),
		LocationsCount:       len(jsonmap.Child(progression, "Locations")),
		EscalationsCompleted: len(jsonmap.Strings(extensions, "PeacockCompletedEscalations")),
		StoriesCompleted:     len(jsonmap.Child(extensions, "opportunityprogression")),
	}
}
