// Package options reads and writes the emulator's options.ini. The file is
// line-oriented key=value text that users also edit by hand, so the writer
// substitutes values in place and appends missing keys instead of
// regenerating the file; comments and unknown keys survive a round trip.
package options

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// FileName is the options file at the installation root.
const FileName = "options.ini"

const newFileHeader = "; Peacock Options (Configured by Save Editor)\n[peacock]\n"

// Settings are the editor-managed keys with their documented defaults.
// Field order matches the options file layout.
type Settings struct {
	GameplayUnlockAllShortcuts           bool   `json:"gameplayUnlockAllShortcuts"`
	GameplayUnlockAllFreelancerMasteries bool   `json:"gameplayUnlockAllFreelancerMasteries"`
	MapDiscoveryState                    string `json:"mapDiscoveryState"`
	EnableMasteryProgression             bool   `json:"enableMasteryProgression"`
	ElusivesAreShown                     bool   `json:"elusivesAreShown"`
	GetDefaultSuits                      bool   `json:"getDefaultSuits"`
}

// Defaults returns the settings used when the file or a key is absent.
func Defaults() Settings {
	return Settings{
		GameplayUnlockAllShortcuts:           true,
		GameplayUnlockAllFreelancerMasteries: true,
		MapDiscoveryState:                    "REVEALED",
		EnableMasteryProgression:             false,
		ElusivesAreShown:                     true,
		GetDefaultSuits:                      true,
	}
}

// Read parses options.ini under root. Every failure mode falls back to the
// defaults for the keys it affects.
func Read(root string) (Settings, error) {
	settings := Defaults()

	content, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}

	values := parse(string(content))
	if v, ok := values["gameplayUnlockAllShortcuts"]; ok {
		settings.GameplayUnlockAllShortcuts = v == "true"
	}
	if v, ok := values["gameplayUnlockAllFreelancerMasteries"]; ok {
		settings.GameplayUnlockAllFreelancerMasteries = v == "true"
	}
	if v, ok := values["mapDiscoveryState"]; ok {
		settings.MapDiscoveryState = v
	}
	if v, ok := values["enableMasteryProgression"]; ok {
		settings.EnableMasteryProgression = v == "true"
	}
	if v, ok := values["elusivesAreShown"]; ok {
		settings.ElusivesAreShown = v == "true"
	}
	if v, ok := values["getDefaultSuits"]; ok {
		settings.GetDefaultSuits = v == "true"
	}
	return settings, nil
}

// Write updates the editor-managed keys in options.ini. Existing lines are
// substituted in place; missing keys are appended; a missing file is seeded
// with a short header first.
func Write(root string, settings Settings) error {
	path := filepath.Join(root, FileName)

	content := newFileHeader
	if data, err := os.ReadFile(path); err == nil {
		content = string(data)
	}

	for _, kv := range []struct {
		key   string
		value string
	}{
		{"gameplayUnlockAllShortcuts", formatBool(settings.GameplayUnlockAllShortcuts)},
		{"gameplayUnlockAllFreelancerMasteries", formatBool(settings.GameplayUnlockAllFreelancerMasteries)},
		{"mapDiscoveryState", settings.MapDiscoveryState},
		{"enableMasteryProgression", formatBool(settings.EnableMasteryProgression)},
		{"elusivesAreShown", formatBool(settings.ElusivesAreShown)},
		{"getDefaultSuits", formatBool(settings.GetDefaultSuits)},
	} {
		content = upsertLine(content, kv.key, kv.value)
	}

	return os.WriteFile(path, []byte(content), 0644)
}

// parse extracts key=value pairs, normalizing boolean literals to
// lower-case "true"/"false" and leaving everything else as the raw string.
func parse(content string) map[string]string {
	values := map[string]string{}
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "=") || strings.HasPrefix(strings.TrimSpace(line), ";") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		switch strings.ToLower(value) {
		case "true":
			values[key] = "true"
		case "false":
			values[key] = "false"
		default:
			values[key] = value
		}
	}
	return values
}

func upsertLine(content, key, value string) string {
	pattern := regexp.MustCompile(`(?m)^(` + regexp.QuoteMeta(key) + `=).*$`)
	if pattern.MatchString(content) {
		// $ in the replacement would be read as a capture reference.
		return pattern.ReplaceAllString(content, "${1}"+strings.ReplaceAll(value, "$", "$$"))
	}
	return content + fmt.Sprintf("\n%s=%s", key, value)
}

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
