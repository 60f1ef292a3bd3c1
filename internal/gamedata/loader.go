// Package gamedata loads the read-only catalogs shipped with a Peacock
// installation: challenges, escalations, mission stories and per-location
// mastery caps. Each catalog is built by walking the installation's static
// and contractdata directories and cached for a short TTL so repeated
// requests do not turn into repeated directory walks.
package gamedata

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"peacockedit/internal/fsutil"
	"peacockedit/internal/jsonmap"
	"peacockedit/internal/logging"
)

const (
	defaultCacheTTL     = 60 * time.Second
	defaultCacheEntries = 16

	globalChallengesFile = "GlobalChallenges.json"
	missionStoriesFile   = "MissionStories.json"
	escalationsFile      = "EscalationCodenames.json"
)

// Challenge is one entry of the challenge catalog.
type Challenge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// Escalation is one entry of the escalation catalog.
type Escalation struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Codename string `json:"codename"`
	Location string `json:"location"`
	MaxLevel int    `json:"max_level"`
}

// Story is one entry of the mission-story catalog.
type Story struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Briefing string `json:"briefing"`
}

type cacheEntry struct {
	value    any
	storedAt time.Time
}

// Loader builds and caches the static catalogs. Concurrent cache misses may
// rebuild the same catalog twice; each rebuild is a pure function of the
// on-disk files, so the duplicate work is harmless and the fresh value
// atomically replaces the cached one.
type Loader struct {
	cache  *lru.Cache[string, cacheEntry]
	ttl    time.Duration
	now    func() time.Time
	logger *logging.Logger
}

// NewLoader returns a loader with the standard 60-second catalog TTL.
func NewLoader() *Loader {
	return NewLoaderWithClock(defaultCacheTTL, time.Now)
}

// NewLoaderWithClock pins the TTL and clock down, for tests.
func NewLoaderWithClock(ttl time.Duration, now func() time.Time) *Loader {
	cache, err := lru.New[string, cacheEntry](defaultCacheEntries)
	if err != nil {
		// lru.New only errors on a non-positive size.
		panic(err)
	}
	return &Loader{
		cache:  cache,
		ttl:    ttl,
		now:    now,
		logger: logging.NewComponentLogger("GameData"),
	}
}

// getOrBuild serves a catalog from cache or rebuilds it. There is no
// inter-call locking: rebuilding is idempotent and cheap relative to
// request volume.
func (l *Loader) getOrBuild(key string, build func() any) any {
	if entry, ok := l.cache.Get(key); ok {
		if l.now().Sub(entry.storedAt) < l.ttl {
			return entry.value
		}
		l.cache.Remove(key)
	}
	value := build()
	l.cache.Add(key, cacheEntry{value: value, storedAt: l.now()})
	return value
}

// Challenges returns the deduplicated challenge catalog for root. Global
// challenges are loaded first and win on id collision with per-location
// files; every merge in this subsystem is first-seen-wins, never implicit
// last-wins.
func (l *Loader) Challenges(root string) []Challenge {
	value := l.getOrBuild("challenges:"+root, func() any {
		return buildChallenges(root)
	})
	return value.([]Challenge)
}

// Escalations returns the escalation catalog for root.
func (l *Loader) Escalations(root string) []Escalation {
	value := l.getOrBuild("escalations:"+root, func() any {
		return buildEscalations(root)
	})
	return value.([]Escalation)
}

// Stories returns the mission-story catalog for root.
func (l *Loader) Stories(root string) []Story {
	value := l.getOrBuild("stories:"+root, func() any {
		return buildStories(root)
	})
	return value.([]Story)
}

// MasteryCaps returns the maximum mastery level per location. When several
// mastery files name the same location the maximum declared cap wins.
func (l *Loader) MasteryCaps(root string) map[string]int {
	value := l.getOrBuild("mastery:"+root, func() any {
		return buildMasteryCaps(root)
	})
	return value.(map[string]int)
}

// ChallengeName resolves a challenge id to its display name, falling back
// to the raw id.
func (l *Loader) ChallengeName(root, id string) string {
	for _, challenge := range l.Challenges(root) {
		if challenge.ID == id {
			if challenge.Name != "" {
				return challenge.Name
			}
			break
		}
	}
	return id
}

// EscalationName resolves an escalation id to its display name, falling
// back to the codename and then the raw id.
func (l *Loader) EscalationName(root, id string) string {
	for _, escalation := range l.Escalations(root) {
		if escalation.ID == id {
			if escalation.Name != "" {
				return escalation.Name
			}
			if escalation.Codename != "" {
				return escalation.Codename
			}
			break
		}
	}
	return id
}

// StoryName resolves a story id to its display name, falling back to the
// raw id.
func (l *Loader) StoryName(root, id string) string {
	for _, story := range l.Stories(root) {
		if story.ID == id {
			if story.Name != "" {
				return story.Name
			}
			break
		}
	}
	return id
}

func buildChallenges(root string) []Challenge {
	seen := map[string]bool{}
	var challenges []Challenge

	add := func(id, name, description, location string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		if name == "" {
			name = id
		}
		challenges = append(challenges, Challenge{
			ID:          id,
			Name:        name,
			Description: description,
			Location:    location,
		})
	}

	// Global challenges load first and take priority on id collision.
	var global []map[string]any
	globalPath := filepath.Join(root, "static", globalChallengesFile)
	if err := fsutil.ReadJSON(globalPath, &global); err == nil {
		for _, challenge := range global {
			add(
				stringField(challenge, "Id"),
				stringField(challenge, "Name"),
				stringField(challenge, "Description"),
				"Global",
			)
		}
	}

	for _, file := range findFiles(filepath.Join(root, "contractdata"), isChallengeFile) {
		data, err := fsutil.ReadJSONValue(file)
		if err != nil {
			continue
		}
		location := challengeFileLocation(file)
		groups, _ := data["groups"].([]any)
		for _, rawGroup := range groups {
			group, _ := rawGroup.(map[string]any)
			entries, _ := group["Challenges"].([]any)
			for _, rawChallenge := range entries {
				challenge, _ := rawChallenge.(map[string]any)
				add(
					stringField(challenge, "Id"),
					stringField(challenge, "Name"),
					stringField(challenge, "Description"),
					location,
				)
			}
		}
	}

	return challenges
}

func buildEscalations(root string) []Escalation {
	seen := map[string]bool{}
	var escalations []Escalation

	byLocation, err := fsutil.ReadJSONValue(filepath.Join(root, "static", escalationsFile))
	if err != nil {
		return escalations
	}

	// Map iteration order is random; sort locations so the catalog order is
	// stable across rebuilds.
	locations := make([]string, 0, len(byLocation))
	for location := range byLocation {
		locations = append(locations, location)
	}
	sort.Strings(locations)

	for _, location := range locations {
		escList, _ := byLocation[location].([]any)
		for _, rawEsc := range escList {
			esc, _ := rawEsc.(map[string]any)
			id := stringField(esc, "id")
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			maxLevel := jsonmap.Int(esc, "levels")
			if maxLevel == 0 {
				maxLevel = DefaultEscalationLevels
			}
			name := stringField(esc, "name")
			if name == "" {
				name = id
			}
			escalations = append(escalations, Escalation{
				ID:       id,
				Name:     name,
				Codename: stringField(esc, "codename"),
				Location: location,
				MaxLevel: maxLevel,
			})
		}
	}
	return escalations
}

func buildStories(root string) []Story {
	var stories []Story

	byID, err := fsutil.ReadJSONValue(filepath.Join(root, "static", missionStoriesFile))
	if err != nil {
		return stories
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		data, _ := byID[id].(map[string]any)
		name := stringField(data, "Title")
		if name == "" {
			name = id
		}
		location := stringField(data, "Location")
		if location == "" {
			location = "Unknown"
		}
		stories = append(stories, Story{
			ID:       id,
			Name:     name,
			Location: location,
			Briefing: stringField(data, "Briefing"),
		})
	}
	return stories
}

func buildMasteryCaps(root string) map[string]int {
	caps := map[string]int{}

	for _, file := range findFiles(filepath.Join(root, "contractdata"), isMasteryFile) {
		data, err := fsutil.ReadJSONValue(file)
		if err != nil {
			continue
		}
		locationID := stringField(data, "LocationId")
		if locationID == "" {
			continue
		}
		maxLevel := jsonmap.Int(data, "MaxLevel")
		if maxLevel == 0 {
			maxLevel = DefaultMasteryCap
		}
		if maxLevel > caps[locationID] {
			caps[locationID] = maxLevel
		}
	}

	// Sniper maps ship no mastery file; default their cap if unseen.
	for location := range SniperRifles {
		if caps[location] == 0 {
			caps[location] = DefaultSniperCap
		}
	}
	return caps
}

// findFiles walks dir recursively collecting files that match. Unreadable
// directories are skipped.
func findFiles(dir string, match func(string) bool) []string {
	var files []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return files
	}
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			files = append(files, findFiles(full, match)...)
		} else if match(entry.Name()) {
			files = append(files, full)
		}
	}
	return files
}

func isChallengeFile(name string) bool {
	return strings.Contains(name, "CHALLENGE") && strings.HasSuffix(name, ".json")
}

func isMasteryFile(name string) bool {
	return strings.Contains(name, "_MASTERY.json")
}

func challengeFileLocation(file string) string {
	location := filepath.Base(file)
	location = strings.TrimSuffix(location, "_CHALLENGES.json")
	location = strings.TrimSuffix(location, "_CHALLENGE.json")
	return location
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
