package gamedata

// LocationNames maps internal location ids to human-readable names for the
// World of Assassination destinations.
var LocationNames = map[string]string{
	"LOCATION_PARENT_PARIS":        "Paris - The Showstopper",
	"LOCATION_PARENT_COASTALTOWN":  "Sapienza - World of Tomorrow",
	"LOCATION_PARENT_MARRAKECH":    "Marrakesh - A Gilded Cage",
	"LOCATION_PARENT_BANGKOK":      "Bangkok - Club 27",
	"LOCATION_PARENT_COLORADO":     "Colorado - Freedom Fighters",
	"LOCATION_PARENT_HOKKAIDO":     "Hokkaido - Situs Inversus",
	"LOCATION_PARENT_NEWZEALAND":   "Hawke's Bay - Nightcall",
	"LOCATION_PARENT_MIAMI":        "Miami - The Finish Line",
	"LOCATION_PARENT_COLOMBIA":     "Santa Fortuna - Three-Headed Serpent",
	"LOCATION_PARENT_MUMBAI":       "Mumbai - Chasing a Ghost",
	"LOCATION_PARENT_NORTHAMERICA": "Whittleton Creek - Another Life",
	"LOCATION_PARENT_NORTHSEA":     "Isle of Sgail - The Ark Society",
	"LOCATION_PARENT_GREEDY":       "New York - Golden Handshake",
	"LOCATION_PARENT_OPULENT":      "Haven Island - The Last Resort",
	"LOCATION_PARENT_ELEGANT":      "Mendoza - The Farewell",
	"LOCATION_PARENT_ANCESTRAL":    "Dartmoor - Death in the Family",
	"LOCATION_PARENT_EDGY":         "Berlin - Apex Predator",
	"LOCATION_PARENT_WET":          "Chongqing - End of an Era",
	"LOCATION_PARENT_SALTY":        "Singapore - Hantu Port - The Pen and the Sword (Sniper)",
	"LOCATION_PARENT_TRAPPED":      "Carpathian Mountains - Untouchable",
	"LOCATION_PARENT_ICA_FACILITY": "ICA Facility",
	"LOCATION_PARENT_ROCKY":        "Ambrose Island",
	"LOCATION_PARENT_SNUG":         "Snug (Freelancer Safehouse)",
	"LOCATION_PARENT_AUSTRIA":      "Austria - Himmelstein - The Last Yardbird (Sniper)",
	"LOCATION_PARENT_CAGED":        "Russia - Siberia - Crime and Punishment (Sniper)",
}

// LocationGames maps location ids to the game they shipped with.
var LocationGames = map[string]string{
	"LOCATION_PARENT_PARIS":        "Hitman 1",
	"LOCATION_PARENT_COASTALTOWN":  "Hitman 1",
	"LOCATION_PARENT_MARRAKECH":    "Hitman 1",
	"LOCATION_PARENT_BANGKOK":      "Hitman 1",
	"LOCATION_PARENT_COLORADO":     "Hitman 1",
	"LOCATION_PARENT_HOKKAIDO":     "Hitman 1",
	"LOCATION_PARENT_ICA_FACILITY": "Hitman 1",
	"LOCATION_PARENT_NEWZEALAND":   "Hitman 2",
	"LOCATION_PARENT_MIAMI":        "Hitman 2",
	"LOCATION_PARENT_COLOMBIA":     "Hitman 2",
	"LOCATION_PARENT_MUMBAI":       "Hitman 2",
	"LOCATION_PARENT_NORTHAMERICA": "Hitman 2",
	"LOCATION_PARENT_NORTHSEA":     "Hitman 2",
	"LOCATION_PARENT_GREEDY":       "Hitman 2",
	"LOCATION_PARENT_OPULENT":      "Hitman 2",
	"LOCATION_PARENT_SALTY":        "Hitman 2",
	"LOCATION_PARENT_AUSTRIA":      "Hitman 2",
	"LOCATION_PARENT_CAGED":        "Hitman 2",
	"LOCATION_PARENT_ELEGANT":      "Hitman 3",
	"LOCATION_PARENT_ANCESTRAL":    "Hitman 3",
	"LOCATION_PARENT_EDGY":         "Hitman 3",
	"LOCATION_PARENT_WET":          "Hitman 3",
	"LOCATION_PARENT_TRAPPED":      "Hitman 3",
	"LOCATION_PARENT_ROCKY":        "Hitman 3",
	"LOCATION_PARENT_SNUG":         "Hitman 3",
}

// SniperRifles lists the three unlockable rifles per sniper map. Mastery on
// these locations is tracked per rifle, not per location, so mastery writes
// fan the same level/XP out to every rifle entry.
var SniperRifles = map[string][]string{
	"LOCATION_PARENT_AUSTRIA": {
		"FIREARMS_SC_HERO_SNIPER_HM",
		"FIREARMS_SC_HERO_SNIPER_KNIGHT",
		"FIREARMS_SC_HERO_SNIPER_STONE",
	},
	"LOCATION_PARENT_SALTY": {
		"FIREARMS_SC_SEAGULL_HM",
		"FIREARMS_SC_SEAGULL_KNIGHT",
		"FIREARMS_SC_SEAGULL_STONE",
	},
	"LOCATION_PARENT_CAGED": {
		"FIREARMS_SC_FALCON_HM",
		"FIREARMS_SC_FALCON_KNIGHT",
		"FIREARMS_SC_FALCON_STONE",
	},
}

// DefaultSniperCap is used for sniper maps that ship no mastery file.
const DefaultSniperCap = 20

// LocationName resolves a location id to its display name, falling back to
// the raw id.
func LocationName(id string) string {
	if name, ok := LocationNames[id]; ok {
		return name
	}
	return id
}

// IsSniperLocation reports whether mastery for the location is tracked per
// rifle.
func IsSniperLocation(id string) bool {
	_, ok := SniperRifles[id]
	return ok
}
