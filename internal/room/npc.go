package room

// NPCProfile is a scripted cast member. NPCs fill out a narrative roster so
// a single player still faces a full group; the oracle speaks for them.
type NPCProfile struct {
	Name    string `json:"name"`
	Persona string `json:"persona"`
}

var NPCProfiles = []NPCProfile{
	{
		Name: "Ortiz",
		Persona: "A field paramedic with a decade of disaster deployments behind her. Calm under " +
			"pressure, blunt about triage, and quick to call out wishful thinking. She weighs every " +
			"choice in lives saved per minute and has no patience for speeches.",
	},
	{
		Name: "Webb",
		Persona: "A retired navy diver who has been in worse spots than this and never lets anyone " +
			"forget it. Gruff, methodical, loyal once earned. He trusts checklists over charisma and " +
			"volunteers for the dangerous jobs before anyone can argue.",
	},
	{
		Name: "Nasrin",
		Persona: "A logistics officer who thinks three moves ahead and counts every ration twice. " +
			"Soft-spoken but immovable once the numbers are on her side. She brokers compromises " +
			"nobody loves and everybody can live with.",
	},
	{
		Name: "Holloway",
		Persona: "A silver-tongued fixer of flexible ethics and excellent timing. Charming, evasive " +
			"about his past, and always negotiating something. He looks out for himself first, but a " +
			"debt honored in public is worth more to him than a secret advantage.",
	},
	{
		Name: "Price",
		Persona: "A junior meteorologist on her first real posting, brilliant with data and visibly " +
			"terrified of making the wrong call. She hedges everything, apologizes too much, and is " +
			"right more often than anyone gives her credit for.",
	},
	{
		Name: "Dmitri",
		Persona: "A ship's mechanic of few words and permanent grease stains. Fixes what can be " +
			"fixed, shrugs at what cannot, and measures people by whether they hold a flashlight " +
			"steady. Sentimental only about machines.",
	},
	{
		Name: "June",
		Persona: "A final-year medical student who signed up for adventure and got more than she " +
			"ordered. Relentlessly optimistic, occasionally naive, and braver than she believes. She " +
			"takes the group's morale as her personal responsibility.",
	},
	{
		Name: "Calloway",
		Persona: "An executive who chartered this trip and expects the org chart to survive the " +
			"emergency. Decisive, ruthless when cornered, and convinced that someone has to make the " +
			"hard calls. Useful in a crisis, dangerous in a vote.",
	},
}
