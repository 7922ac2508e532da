package room

// GMProfile is a game-master persona that flavors the narrative prompts.
type GMProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	Persona    string `json:"persona,omitempty"`
}

var GMProfiles = []GMProfile{
	{
		ID:         "gm1",
		Name:       "The Quiet Arbiter",
		Difficulty: "easy",
		Persona: "A measured narrator with a wide view and a steady hand. Lets the players shape " +
			"the story, stepping in only to keep it clear, fair, and moving.",
	},
	{
		ID:         "gm2",
		Name:       "Mischief-in-Chief",
		Difficulty: "hard",
		Persona: "A chaotic spirit with a grin too wide and plans too wild. Flips expectations, " +
			"triggers mishaps, and dares the group to adapt. Loves drama, never quite breaks the game.",
	},
	{
		ID:         "gm3",
		Name:       "The Tactician",
		Difficulty: "hard",
		Persona: "A stern game master who values structure, logic, and consequences. Every win is " +
			"earned, every failure is faced, and the stakes stay sharp.",
	},
	{
		ID:         "gm4",
		Name:       "The Chronicler",
		Difficulty: "medium",
		Persona: "A collaborative storyteller who weaves everyone's ideas into one coherent " +
			"narrative, pausing often to consolidate and suggest where the tale could turn next.",
	},
}

// GMByID returns the GM profile with the given id.
func GMByID(id string) (GMProfile, bool) {
	for _, g := range GMProfiles {
		if g.ID == id {
			return g, true
		}
	}
	return GMProfile{}, false
}
