package options

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), settings)
}

func TestReadParsesValues(t *testing.T) {
	root := t.TempDir()
	content := strings.Join([]string{
		"; hand-written comment",
		"[peacock]",
		"gameplayUnlockAllShortcuts=FALSE",
		"mapDiscoveryState=CLOUDED",
		"enableMasteryProgression=true",
		"someUnknownKey=keepme",
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(content), 0o644))

	settings, err := Read(root)
	require.NoError(t, err)
	assert.False(t, settings.GameplayUnlockAllShortcuts)
	assert.Equal(t, "CLOUDED", settings.MapDiscoveryState)
	assert.True(t, settings.EnableMasteryProgression)
	// Keys the file does not mention keep their defaults.
	assert.True(t, settings.ElusivesAreShown)
	assert.True(t, settings.GetDefaultSuits)
}

func TestWriteCreatesFileWithHeader(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Write(root, Defaults()))

	data, err := os.ReadFile(filepath.Join(root, FileName))
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "; Peacock Options"))
	assert.Contains(t, content, "[peacock]")
	assert.Contains(t, content, "gameplayUnlockAllShortcuts=true")
	assert.Contains(t, content, "mapDiscoveryState=REVEALED")
}

func TestWritePreservesCommentsAndUnknownKeys(t *testing.T) {
	root := t.TempDir()
	original := strings.Join([]string{
		"; do not touch this comment",
		"[peacock]",
		"gameplayUnlockAllShortcuts=true",
		"customUserKey=hands off",
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(original), 0o644))

	settings := Defaults()
	settings.GameplayUnlockAllShortcuts = false
	require.NoError(t, Write(root, settings))

	data, err := os.ReadFile(filepath.Join(root, FileName))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "; do not touch this comment")
	assert.Contains(t, content, "customUserKey=hands off")
	assert.Contains(t, content, "gameplayUnlockAllShortcuts=false")
	assert.NotContains(t, content, "gameplayUnlockAllShortcuts=true")
}

func TestWriteSubstitutesInPlace(t *testing.T) {
	root := t.TempDir()
	original := "[peacock]\nmapDiscoveryState=REVEALED\ntrailing=stays"
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(original), 0o644))

	settings := Defaults()
	settings.MapDiscoveryState = "CLOUDED"
	require.NoError(t, Write(root, settings))

	data, err := os.ReadFile(filepath.Join(root, FileName))
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.Equal(t, "mapDiscoveryState=CLOUDED", lines[1])
	assert.Equal(t, "trailing=stays", lines[2])
}

func TestRoundTrip(t *testing.T) {
	root := t.TempDir()
	settings := Settings{
		GameplayUnlockAllShortcuts:           false,
		GameplayUnlockAllFreelancerMasteries: false,
		MapDiscoveryState:                    "CLOUDED",
		EnableMasteryProgression:             true,
		ElusivesAreShown:                     false,
		GetDefaultSuits:                      false,
	}
	require.NoError(t, Write(root, settings))

	got, err := Read(root)
	require.NoError(t, err)
	assert.Equal(t, settings, got)
}
