package room

// Scenario is a narrative setup the story engine runs. OutcomeLabel is the
// heading used when the resolution list is exported (and the prefix the
// oracle is told to use on its RESOLUTION line). Twists are scripted
// mid-story injections drawn without replacement.
type Scenario struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Setup        string   `json:"setup,omitempty"`
	OutcomeLabel string   `json:"outcome_label,omitempty"`
	MaxAgents    int      `json:"max_agents,omitempty"`
	Twists       []string `json:"-"`
}

var Scenarios = []Scenario{
	{
		ID:    "lifeboat",
		Title: "Lifeboat at Dawn",
		Setup: "The liner went down an hour before sunrise. Eight of you cling to a lifeboat " +
			"built for five, the horizon empty in every direction. The water ration fits in one " +
			"canvas bag. Someone has to decide who rows, who rests, and who waits when the next " +
			"wave comes over the side.",
		OutcomeLabel: "Survivors",
		MaxAgents:    8,
		Twists: []string{
			"A fin breaks the surface thirty feet off the port side, circles once, and vanishes.",
			"The canvas ration bag has been leaking; half the fresh water is brine.",
			"A distant engine drone passes overhead, then fades without slowing.",
			"The boat's seam starts weeping water faster than one bailer can clear it.",
		},
	},
	{
		ID:    "bank_heist",
		Title: "Four Minutes in the Vault",
		Setup: "The silent alarm tripped ninety seconds ago. The crew is still inside the vault " +
			"with the hostages seated along the teller wall, and the negotiator's phone is already " +
			"ringing. Every exit has a cost, and not everyone at the table agrees who pays it.",
		OutcomeLabel: "Released",
		MaxAgents:    8,
		Twists: []string{
			"One hostage quietly reveals she is an off-duty paramedic and offers a trade.",
			"The vault's secondary door begins an automatic time-lock countdown.",
			"A crew member's phone buzzes with a message from an unknown number: 'I can see you.'",
		},
	},
	{
		ID:    "mars_outpost",
		Title: "Outpost Callisto-9",
		Setup: "A micrometeorite shredded the electrolysis rack, and the outpost's oxygen reserve " +
			"now counts down in hours, not weeks. The relief lander arrives in three sols. The " +
			"numbers do not cover everyone, and the numbers are not negotiable.",
		OutcomeLabel: "Oxygen Recipients",
		MaxAgents:    8,
		Twists: []string{
			"Telemetry shows the relief lander slipping a further twelve hours behind schedule.",
			"The greenhouse module reads an oxygen surplus nobody logged.",
			"A suit recharge port shorts out, taking one EVA suit offline for good.",
		},
	},
	{
		ID:    "submarine_leak",
		Title: "Pressure Hull",
		Setup: "Seawater is past the battery deck and the boat is nose-down on a shelf at 140 " +
			"meters. The forward escape trunk cycles two at a time, and each cycle costs air the " +
			"rest of the crew breathes. Someone must set the order of the dive team.",
		OutcomeLabel: "Dive Team",
		MaxAgents:    8,
		Twists: []string{
			"The trunk's outer hatch jams halfway on the second cycle.",
			"Sonar picks up a surface vessel holding station directly above.",
			"The emergency lighting fails aft, leaving the stern compartments in the dark.",
		},
	},
	{
		ID:    "expedition_blizzard",
		Title: "Whiteout on the Col",
		Setup: "The storm pinned the expedition on the col with one intact tent and a stove that " +
			"sputters. The forecast window closes at dawn. Descending in the dark might save the " +
			"frostbitten; staying might save the rest. Nobody can do both.",
		OutcomeLabel: "Sheltered",
		MaxAgents:    8,
		Twists: []string{
			"A headlamp beam flickers far below on the glacier, moving upward.",
			"The tent's windward pole snaps; the fabric holds, for now.",
			"The radio catches half a forecast: the window may open two hours early.",
		},
	},
	{
		ID:    "time_paradox",
		Title: "The Anchor Point",
		Setup: "The field generator is folding back on itself, and everyone in the chamber now " +
			"exists in two timelines at once. Stabilizing the anchor will fix some of you in this " +
			"one and let the others unravel. The machine does not care who chooses.",
		OutcomeLabel: "Stabilized",
		MaxAgents:    8,
		Twists: []string{
			"A second copy of one participant flickers into view at the chamber door.",
			"The anchor's countdown display begins running backwards.",
			"A note in your own handwriting appears in your pocket: 'Do not trust the vote.'",
		},
	},
}

// ScenarioByID returns the scenario with the given id.
func ScenarioByID(id string) (Scenario, bool) {
	for _, s := range Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}
