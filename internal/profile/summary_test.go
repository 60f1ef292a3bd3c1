package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"peacockedit/internal/gamedata"
)

func TestSummarizeFreshProfile(t *testing.T) {
	s := Summarize("/tmp/"+testProfileA+".json", map[string]any{})

	assert.Equal(t, testProfileA, s.ID)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 0, s.XP)
	assert.Equal(t, 0, s.Merces)
	assert.Equal(t, 0, s.Prestige)
	assert.Equal(t, 0, s.ChallengesCompleted)
}

func TestSummarizePrefersPlayerProfileXP(t *testing.T) {
	doc := map[string]any{
		"Extensions": map[string]any{
			"progression": map[string]any{
				"ProfileLevel": float64(10),
				"XP":           float64(1000),
				"PlayerProfileXP": map[string]any{
					"ProfileLevel": float64(42),
					"Total":        float64(252000),
				},
				"Merces": map[string]any{"Total": float64(777)},
			},
			"CPD": map[string]any{
				gamedata.FreelancerID: map[string]any{"EvergreenLevel": float64(3)},
			},
		},
	}

	s := Summarize(testProfileA+".json", doc)
	assert.Equal(t, 42, s.Level)
	assert.Equal(t, 252000, s.XP)
	assert.Equal(t, 777, s.Merces)
	assert.Equal(t, 3, s.Prestige)
}

func TestSummarizeCountsProgress(t *testing.T) {
	doc := map[string]any{
		"Extensions": map[string]any{
			"ChallengeProgression": map[string]any{
				"a": map[string]any{"Completed": true},
				"b": map[string]any{"Completed": true},
			},
			"opportunityprogression": map[string]any{"story": true},
			"PeacockCompletedEscalations": []any{"esc1", "esc2", "esc3"},
			"progression": map[string]any{
				"Locations": map[string]any{
					"LOCATION_PARENT_PARIS": map[string]any{"Level": float64(5)},
				},
			},
		},
	}

	s := Summarize(testProfileA+".json", doc)
	assert.Equal(t, 2, s.ChallengesCompleted)
	assert.Equal(t, 1, s.StoriesCompleted)
	assert.Equal(t, 3, s.EscalationsCompleted)
	assert.Equal(t, 1, s.LocationsCount)
}

func TestSummarizeMalformedFieldsFallBack(t *testing.T) {
	doc := map[string]any{
		"Extensions": map[string]any{
			"progression": map[string]any{
				"ProfileLevel": "not a number",
				"Merces":       "also wrong",
			},
			"PeacockCompletedEscalations": "not a list",
		},
	}

	s := Summarize(testProfileA+".json", doc)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 0, s.Merces)
	assert.Equal(t, 0, s.EscalationsCompleted)
}
