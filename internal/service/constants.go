package service

// Scoring weights for the six match score components. They sum to 1.00;
// type matching dominates.
const (
	WeightTypes      = 0.50
	WeightColor      = 0.20
	WeightHabitat    = 0.15
	WeightAbilities  = 0.10
	WeightBaseStats  = 0.03
	WeightFlavorText = 0.02
)

// maxStatValue is the assumed per-stat maximum used to normalize the base
// stats score. Stats above it push the component past 1.0, which is accepted.
const maxStatValue = 150

// archetypeOrder is the fixed enumeration order of the ten personality
// archetypes. Ties in archetype derivation resolve to the earliest entry.
var archetypeOrder = []string{
	"adventurous",
	"empathetic",
	"introspective",
	"intense",
	"calm",
	"chaotic",
	"strategic",
	"protective",
	"reckless",
	"wise",
}

// typeArchetypes maps a preferred Pokemon type to the two archetypes it
// strengthens. Types not listed contribute nothing.
var typeArchetypes = map[string][2]string{
	"fire":     {"intense", "reckless"},
	"fighting": {"intense", "reckless"},
	"dragon":   {"intense", "reckless"},
	"water":    {"empathetic", "calm"},
	"grass":    {"empathetic", "calm"},
	"fairy":    {"empathetic", "calm"},
	"psychic":  {"introspective", "wise"},
	"ghost":    {"introspective", "wise"},
	"electric": {"chaotic", "adventurous"},
	"dark":     {"chaotic", "adventurous"},
	"steel":    {"protective", "strategic"},
	"rock":     {"protective", "strategic"},
}

// statArchetypes maps a preferred stat to the two archetypes each occurrence
// strengthens.
var statArchetypes = map[string][2]string{
	"attack":          {"intense", "reckless"},
	"defense":         {"protective", "calm"},
	"special-attack":  {"wise", "introspective"},
	"special-defense": {"empathetic", "strategic"},
	"speed":           {"adventurous", "chaotic"},
}

// archetypeStats maps an archetype tag to the base stats considered relevant
// when scoring a candidate's stats against a profile.
var archetypeStats = map[string][]string{
	"adventurous":   {"speed", "attack"},
	"empathetic":    {"special-defense", "hp"},
	"introspective": {"special-attack", "special-defense"},
	"intense":       {"attack", "speed"},
	"calm":          {"defense", "special-defense"},
	"chaotic":       {"speed", "special-attack"},
	"strategic":     {"special-attack", "defense"},
	"protective":    {"defense", "hp"},
	"reckless":      {"attack", "speed"},
	"wise":          {"special-attack", "special-defense"},
}
