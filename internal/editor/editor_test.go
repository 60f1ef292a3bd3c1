package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peacockedit/internal/fsutil"
	"peacockedit/internal/gamedata"
	"peacockedit/internal/jsonmap"
	"peacockedit/internal/locator"
	"peacockedit/internal/profile"
)

const testProfileID = "12345678-1234-1234-1234-123456789012"

// newTestInstall lays out a minimal but valid installation: the marker
// folders, one profile, and small catalogs of everything.
func newTestInstall(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{
		"contractdata/PARIS",
		"contractSessions",
		"userdata/users",
		"static",
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}

	require.NoError(t, fsutil.WriteJSON(
		filepath.Join(root, "static", "GlobalChallenges.json"),
		[]map[string]any{
			{"Id": "ch-1", "Name": "First Challenge"},
			{"Id": "ch-2", "Name": "Second Challenge"},
		}))
	require.NoError(t, fsutil.WriteJSON(
		filepath.Join(root, "static", "EscalationCodenames.json"),
		map[string]any{
			"paris": []any{
				map[string]any{"id": "esc-1", "name": "The Proloff Parable", "levels": float64(3)},
				map[string]any{"id": "esc-2", "name": "The Gauchito Antiquity", "levels": float64(5)},
			},
		}))
	require.NoError(t, fsutil.WriteJSON(
		filepath.Join(root, "static", "MissionStories.json"),
		map[string]any{
			"story-1": map[string]any{"Title": "A Bitter Pill"},
			"story-2": map[string]any{"Title": "Warm Reception"},
		}))
	require.NoError(t, fsutil.WriteJSON(
		filepath.Join(root, "contractdata", "PARIS", "PARIS_MASTERY.json"),
		map[string]any{"LocationId": "LOCATION_PARENT_PARIS", "MaxLevel": float64(20)}))

	require.NoError(t, fsutil.WriteJSON(
		filepath.Join(root, "userdata", "users", testProfileID+".json"),
		map[string]any{"Extensions": map[string]any{}}))

	return root
}

func newTestEditor(t *testing.T, root string) *Editor {
	t.Helper()
	off := false
	loc := locator.NewWithOptions(locator.Options{
		Getenv: func(key string) string {
			if key == locator.EnvPathVar {
				return root
			}
			return ""
		},
		HomeDir:     func() (string, error) { return t.TempDir(), nil },
		Getwd:       func() (string, error) { return root, nil },
		CachePath:   filepath.Join(t.TempDir(), "cache.json"),
		DriveSearch: &off,
	})
	return New(loc, gamedata.NewLoader())
}

func readTestProfile(t *testing.T, root string) map[string]any {
	t.Helper()
	doc, err := fsutil.ReadJSONValue(filepath.Join(root, "userdata", "users", testProfileID+".json"))
	require.NoError(t, err)
	return doc
}

func extensions(t *testing.T, root string) map[string]any {
	t.Helper()
	ext := jsonmap.Child(readTestProfile(t, root), "Extensions")
	require.NotNil(t, ext)
	return ext
}

func TestUnlockChallengesSpecificIDs(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	message, err := ed.UnlockChallenges("", []string{"ch-1"})
	require.NoError(t, err)
	assert.Equal(t, "Unlocked 1 challenge", message)

	progression := jsonmap.Child(extensions(t, root), "ChallengeProgression")
	require.Len(t, progression, 1)
	entry := jsonmap.Child(progression, "ch-1")
	assert.Equal(t, true, entry["Completed"])
	assert.Equal(t, "Success", jsonmap.Child(entry, "State")["CurrentState"])
}

func TestUnlockChallengesMergePreservesExisting(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	_, err := ed.UnlockChallenges("", []string{"ch-1"})
	require.NoError(t, err)
	_, err = ed.UnlockChallenges("", []string{"ch-2"})
	require.NoError(t, err)

	progression := jsonmap.Child(extensions(t, root), "ChallengeProgression")
	assert.Len(t, progression, 2)
}

func TestUnlockChallengesRepeatIsIdempotent(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	_, err := ed.UnlockChallenges("", []string{"ch-1", "ch-2"})
	require.NoError(t, err)
	once := jsonmap.Child(extensions(t, root), "ChallengeProgression")

	_, err = ed.UnlockChallenges("", []string{"ch-1", "ch-2"})
	require.NoError(t, err)
	twice := jsonmap.Child(extensions(t, root), "ChallengeProgression")

	assert.Equal(t, once, twice)
	assert.Len(t, twice, 2)
}

func TestUnlockChallengesAllReplacesMap(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	// Stale entry not in the catalog; unlocking everything overwrites the
	// whole map with the catalog.
	_, err := ed.UnlockChallenges("", []string{"ch-stale"})
	require.NoError(t, err)

	message, err := ed.UnlockChallenges("", nil)
	require.NoError(t, err)
	assert.Equal(t, "Unlocked all 2 challenges", message)

	progression := jsonmap.Child(extensions(t, root), "ChallengeProgression")
	assert.Len(t, progression, 2)
	assert.NotContains(t, progression, "ch-stale")
}

func TestUnlockEscalationsTracksCompletedList(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	_, err := ed.UnlockEscalations("", []string{"esc-2"})
	require.NoError(t, err)

	ext := extensions(t, root)
	levels := jsonmap.Child(ext, "PeacockEscalations")
	assert.Equal(t, 5, jsonmap.Int(levels, "esc-2"))
	assert.Equal(t, []string{"esc-2"}, jsonmap.Strings(ext, "PeacockCompletedEscalations"))

	// Unlocking again must not duplicate the completed marker.
	_, err = ed.UnlockEscalations("", []string{"esc-2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"esc-2"}, jsonmap.Strings(extensions(t, root), "PeacockCompletedEscalations"))
}

func TestUnlockEscalationsUnknownIDGetsDefaultLevels(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	_, err := ed.UnlockEscalations("", []string{"esc-unknown"})
	require.NoError(t, err)

	levels := jsonmap.Child(extensions(t, root), "PeacockEscalations")
	assert.Equal(t, gamedata.DefaultEscalationLevels, jsonmap.Int(levels, "esc-unknown"))
}

func TestUnlockEscalationsAll(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	message, err := ed.UnlockEscalations("", nil)
	require.NoError(t, err)
	assert.Equal(t, "Unlocked all 2 escalations", message)

	ext := extensions(t, root)
	assert.Len(t, jsonmap.Child(ext, "PeacockEscalations"), 2)
	assert.ElementsMatch(t, []string{"esc-1", "esc-2"}, jsonmap.Strings(ext, "PeacockCompletedEscalations"))
}

func TestUnlockStories(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	_, err := ed.UnlockStories("", []string{"story-1"})
	require.NoError(t, err)
	progression := jsonmap.Child(extensions(t, root), "opportunityprogression")
	assert.Equal(t, true, progression["story-1"])

	message, err := ed.UnlockStories("", nil)
	require.NoError(t, err)
	assert.Equal(t, "Unlocked all 2 mission stories", message)
	assert.Len(t, jsonmap.Child(extensions(t, root), "opportunityprogression"), 2)
}

func TestSetMasteryClampsToCap(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	message, err := ed.SetMastery("", "LOCATION_PARENT_PARIS", 99)
	require.NoError(t, err)
	assert.Equal(t, "Set mastery for LOCATION_PARENT_PARIS to level 20", message)

	prog := jsonmap.Child(extensions(t, root), "progression")
	entry := jsonmap.Child(jsonmap.Child(prog, "Locations"), "LOCATION_PARENT_PARIS")
	assert.Equal(t, 20, jsonmap.Int(entry, "Level"))
	assert.Equal(t, 20*gamedata.XPPerLevel, jsonmap.Int(entry, "Xp"))
	assert.Equal(t, 20*gamedata.XPPerLevel, jsonmap.Int(entry, "PreviouslySeenXp"))
}

func TestSetMasteryNegativeClampsToZero(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	_, err := ed.SetMastery("", "LOCATION_PARENT_PARIS", -5)
	require.NoError(t, err)

	prog := jsonmap.Child(extensions(t, root), "progression")
	entry := jsonmap.Child(jsonmap.Child(prog, "Locations"), "LOCATION_PARENT_PARIS")
	assert.Equal(t, 0, jsonmap.Int(entry, "Level"))
}

func TestSetMasterySniperFanOut(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	_, err := ed.SetMastery("", "LOCATION_PARENT_AUSTRIA", 7)
	require.NoError(t, err)

	prog := jsonmap.Child(extensions(t, root), "progression")
	entry := jsonmap.Child(jsonmap.Child(prog, "Locations"), "LOCATION_PARENT_AUSTRIA")
	require.Len(t, entry, 3)
	for _, rifle := range gamedata.SniperRifles["LOCATION_PARENT_AUSTRIA"] {
		rifleEntry := jsonmap.Child(entry, rifle)
		assert.Equal(t, 7, jsonmap.Int(rifleEntry, "Level"), rifle)
		assert.Equal(t, 7*gamedata.XPPerLevel, jsonmap.Int(rifleEntry, "Xp"), rifle)
	}
}

func TestSetMasteryKeepsSiblingKeys(t *testing.T) {
	root := newTestInstall(t)
	require.NoError(t, fsutil.WriteJSON(
		filepath.Join(root, "userdata", "users", testProfileID+".json"),
		map[string]any{"Extensions": map[string]any{
			"progression": map[string]any{
				"Locations": map[string]any{
					"LOCATION_PARENT_PARIS": map[string]any{
						"Level":          float64(2),
						"Xp":             float64(12000),
						"LastScoreCheck": float64(87000),
					},
				},
			},
		}}))
	ed := newTestEditor(t, root)

	_, err := ed.SetMastery("", "LOCATION_PARENT_PARIS", 5)
	require.NoError(t, err)

	prog := jsonmap.Child(extensions(t, root), "progression")
	entry := jsonmap.Child(jsonmap.Child(prog, "Locations"), "LOCATION_PARENT_PARIS")
	assert.Equal(t, 5, jsonmap.Int(entry, "Level"))
	assert.Equal(t, 5*gamedata.XPPerLevel, jsonmap.Int(entry, "Xp"))
	assert.Equal(t, 87000, jsonmap.Int(entry, "LastScoreCheck"))
}

func TestMaxAllMastery(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	_, err := ed.MaxAllMastery("")
	require.NoError(t, err)

	prog := jsonmap.Child(extensions(t, root), "progression")
	locations := jsonmap.Child(prog, "Locations")

	paris := jsonmap.Child(locations, "LOCATION_PARENT_PARIS")
	assert.Equal(t, 20, jsonmap.Int(paris, "Level"))

	// Sniper maps default to their cap and fan out per rifle.
	austria := jsonmap.Child(locations, "LOCATION_PARENT_AUSTRIA")
	require.Len(t, austria, 3)
	for _, rifle := range gamedata.SniperRifles["LOCATION_PARENT_AUSTRIA"] {
		assert.Equal(t, gamedata.DefaultSniperCap, jsonmap.Int(jsonmap.Child(austria, rifle), "Level"))
	}
}

func TestUnlockAll(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	message, err := ed.UnlockAll("")
	require.NoError(t, err)
	assert.Equal(t, "Unlocked all content successfully", message)

	ext := extensions(t, root)
	assert.Len(t, jsonmap.Child(ext, "ChallengeProgression"), 2)
	assert.Len(t, jsonmap.Child(ext, "opportunityprogression"), 2)
	assert.Len(t, jsonmap.Child(ext, "PeacockEscalations"), 2)

	cpd := jsonmap.Child(ext, "CPD")
	freelancer := jsonmap.Child(cpd, gamedata.FreelancerID)
	require.NotNil(t, freelancer)
	assert.Equal(t, 0, jsonmap.Int(freelancer, "EvergreenLevel"))

	// Sniper maps max out per rifle, the same shape the mastery routes
	// write and the locations listing reads.
	locations := jsonmap.Child(jsonmap.Child(ext, "progression"), "Locations")
	austria := jsonmap.Child(locations, "LOCATION_PARENT_AUSTRIA")
	require.Len(t, austria, 3)
	for _, rifle := range gamedata.SniperRifles["LOCATION_PARENT_AUSTRIA"] {
		assert.Equal(t, gamedata.DefaultSniperCap, jsonmap.Int(jsonmap.Child(austria, rifle), "Level"))
	}

	// A backup was taken before the edit.
	store := profile.NewStore(root)
	path := store.PathFor(testProfileID)
	_, err = store.RestoreLatest(path)
	assert.NoError(t, err)
}

func TestUnlockAllKeepsExistingFreelancerEntry(t *testing.T) {
	root := newTestInstall(t)
	require.NoError(t, fsutil.WriteJSON(
		filepath.Join(root, "userdata", "users", testProfileID+".json"),
		map[string]any{"Extensions": map[string]any{
			"CPD": map[string]any{
				gamedata.FreelancerID: map[string]any{"MyMoney": float64(5000), "EvergreenLevel": float64(12)},
			},
		}}))
	ed := newTestEditor(t, root)

	_, err := ed.UnlockAll("")
	require.NoError(t, err)

	freelancer := jsonmap.Child(jsonmap.Child(extensions(t, root), "CPD"), gamedata.FreelancerID)
	assert.Equal(t, 5000, jsonmap.Int(freelancer, "MyMoney"))
	assert.Equal(t, 12, jsonmap.Int(freelancer, "EvergreenLevel"))
}

func TestUpdateProfileClampsAndMirrors(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	level := 9999
	xp := -50
	merces := 1234
	prestige := 250
	_, err := ed.UpdateProfile(testProfileID, ProfileUpdate{
		Level:    &level,
		XP:       &xp,
		Merces:   &merces,
		Prestige: &prestige,
	})
	require.NoError(t, err)

	ext := extensions(t, root)
	prog := jsonmap.Child(ext, "progression")
	playerXP := jsonmap.Child(prog, "PlayerProfileXP")

	assert.Equal(t, gamedata.MaxLevel, jsonmap.Int(prog, "ProfileLevel"))
	assert.Equal(t, gamedata.MaxLevel, jsonmap.Int(playerXP, "ProfileLevel"))
	assert.Equal(t, 0, jsonmap.Int(prog, "XP"))
	assert.Equal(t, 0, jsonmap.Int(playerXP, "Total"))
	assert.Equal(t, 1234, jsonmap.Int(jsonmap.Child(prog, "Merces"), "Total"))

	freelancer := jsonmap.Child(jsonmap.Child(ext, "CPD"), gamedata.FreelancerID)
	assert.Equal(t, gamedata.MaxPrestige, jsonmap.Int(freelancer, "EvergreenLevel"))
}

func TestUpdateProfilePartialLeavesOtherFieldsAlone(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	merces := 777
	_, err := ed.UpdateProfile(testProfileID, ProfileUpdate{Merces: &merces})
	require.NoError(t, err)

	prog := jsonmap.Child(extensions(t, root), "progression")
	assert.Equal(t, 777, jsonmap.Int(jsonmap.Child(prog, "Merces"), "Total"))
	_, hasLevel := prog["ProfileLevel"]
	assert.False(t, hasLevel)
}

func TestLockStories(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	_, err := ed.UnlockStories("", nil)
	require.NoError(t, err)

	message, err := ed.LockStories("", []string{"story-1", "story-missing"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully locked 1 mission story", message)
	assert.Len(t, jsonmap.Child(extensions(t, root), "opportunityprogression"), 1)

	message, err = ed.LockStories("", nil)
	require.NoError(t, err)
	assert.Equal(t, "Successfully locked all 1 mission stories", message)
	assert.Empty(t, jsonmap.Child(extensions(t, root), "opportunityprogression"))
}

func TestLockEscalationsPrunesCompletedList(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	_, err := ed.UnlockEscalations("", nil)
	require.NoError(t, err)

	_, err = ed.LockEscalations("", []string{"esc-1"})
	require.NoError(t, err)

	ext := extensions(t, root)
	assert.Len(t, jsonmap.Child(ext, "PeacockEscalations"), 1)
	assert.Equal(t, []string{"esc-2"}, jsonmap.Strings(ext, "PeacockCompletedEscalations"))
}

func TestResetAll(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	_, err := ed.UnlockAll("")
	require.NoError(t, err)
	level := 500
	_, err = ed.UpdateProfile(testProfileID, ProfileUpdate{Level: &level})
	require.NoError(t, err)

	message, err := ed.ResetAll("")
	require.NoError(t, err)
	assert.Equal(t, "Successfully reset all progress", message)

	ext := extensions(t, root)
	prog := jsonmap.Child(ext, "progression")
	assert.Equal(t, 1, jsonmap.Int(prog, "ProfileLevel"))
	assert.Equal(t, 0, jsonmap.Int(prog, "XP"))
	assert.Equal(t, 1, jsonmap.Int(jsonmap.Child(prog, "PlayerProfileXP"), "ProfileLevel"))
	assert.Equal(t, 1, jsonmap.Int(jsonmap.Child(prog, "Merces"), "ProfileLevel"))
	assert.Empty(t, jsonmap.Child(prog, "Locations"))
	assert.Empty(t, jsonmap.Child(ext, "ChallengeProgression"))
	assert.Empty(t, jsonmap.Child(ext, "opportunityprogression"))
	assert.Empty(t, jsonmap.Child(ext, "PeacockEscalations"))
	assert.Empty(t, jsonmap.Strings(ext, "PeacockCompletedEscalations"))

	freelancer := jsonmap.Child(jsonmap.Child(ext, "CPD"), gamedata.FreelancerID)
	assert.Equal(t, 0, jsonmap.Int(freelancer, "EvergreenLevel"))
	assert.Equal(t, 0, jsonmap.Int(freelancer, "MyMoney"))
}

func TestResetAllKeepsXPSiblingKeys(t *testing.T) {
	root := newTestInstall(t)
	require.NoError(t, fsutil.WriteJSON(
		filepath.Join(root, "userdata", "users", testProfileID+".json"),
		map[string]any{"Extensions": map[string]any{
			"progression": map[string]any{
				"PlayerProfileXP": map[string]any{
					"ProfileLevel": float64(40),
					"Total":        float64(240000),
					"Sublocations": []any{"LOCATION_PARIS"},
				},
			},
		}}))
	ed := newTestEditor(t, root)

	_, err := ed.ResetAll("")
	require.NoError(t, err)

	profileXP := jsonmap.Child(jsonmap.Child(extensions(t, root), "progression"), "PlayerProfileXP")
	assert.Equal(t, 1, jsonmap.Int(profileXP, "ProfileLevel"))
	assert.Equal(t, 0, jsonmap.Int(profileXP, "Total"))
	assert.Contains(t, profileXP, "Sublocations")
}

func TestResetAllOnFreshProfile(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	_, err := ed.ResetAll("")
	require.NoError(t, err)

	prog := jsonmap.Child(extensions(t, root), "progression")
	assert.Equal(t, 1, jsonmap.Int(prog, "ProfileLevel"))
}

func TestOperationsWithoutProfiles(t *testing.T) {
	root := newTestInstall(t)
	require.NoError(t, os.Remove(filepath.Join(root, "userdata", "users", testProfileID+".json")))
	ed := newTestEditor(t, root)

	_, err := ed.UnlockChallenges("", nil)
	assert.ErrorIs(t, err, profile.ErrNoProfiles)
}

func TestOperationsWithoutInstall(t *testing.T) {
	ed := newTestEditor(t, filepath.Join(t.TempDir(), "nowhere"))

	_, err := ed.UnlockChallenges("", nil)
	assert.ErrorIs(t, err, ErrInstallNotFound)
}

func TestCreateAndRestoreBackup(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	message, err := ed.CreateBackup("")
	require.NoError(t, err)
	assert.Contains(t, message, "Backup created: "+testProfileID+".backup_")

	_, err = ed.UnlockChallenges("", nil)
	require.NoError(t, err)

	message, err = ed.RestoreBackup("")
	require.NoError(t, err)
	assert.Contains(t, message, "Restored from backup: ")
	assert.Empty(t, jsonmap.Child(extensions(t, root), "ChallengeProgression"))
}

func TestRestoreBackupWithoutBackups(t *testing.T) {
	root := newTestInstall(t)
	ed := newTestEditor(t, root)

	_, err := ed.RestoreBackup("")
	assert.ErrorIs(t, err, profile.ErrNoBackups)
}
