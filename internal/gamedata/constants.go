package gamedata

// FreelancerID is the CPD mode id the game uses for the Freelancer
// currency/prestige track. The client expects this entry to exist for
// escalations to render correctly.
const FreelancerID = "f8ec92c2-4fa2-471e-ae08-545480c746ee"

// Range limits for the editable progression fields. Out-of-range input is
// clamped, never rejected.
const (
	MaxLevel    = 7500
	MaxXP       = 45000000
	MaxMerces   = 99999999
	MaxPrestige = 100
)

// XPPerLevel is the game's linear mastery XP curve.
const XPPerLevel = 6000

// DefaultEscalationLevels is assumed for escalations whose contract files
// do not declare a level count.
const DefaultEscalationLevels = 3

// DefaultMasteryCap is assumed for locations whose mastery files declare no
// MaxLevel.
const DefaultMasteryCap = 20

// XPForLevel returns the total XP stored for a mastery level.
func XPForLevel(level int) int {
	return XPPerLevel * level
}
