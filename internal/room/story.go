package room

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PhaseNames is the fixed narrative arc. The index into it is the phase
// state; it only ever moves forward, one step per accepted turn.
var PhaseNames = []string{"Introduction", "Decision 1", "Decision 2", "Resolution"}

// BioProvider supplies optional background for a participant's prompt block.
// Lookups are best-effort; a miss just leaves the block empty.
type BioProvider interface {
	Bio(name string) (string, bool)
}

// MemoryProvider recalls up to k stored memories for a participant, most
// relevant to the cue first. Best-effort like BioProvider.
type MemoryProvider interface {
	Relevant(name, cue string, k int) []string
}

// StoryRoom is the narrative session variant: a phase state machine driven
// by oracle turns, with deaths, a single resolution, and scripted twists.
type StoryRoom struct {
	Session

	oracle   Oracle
	scenario Scenario
	gm       GMProfile
	bios     BioProvider
	memories MemoryProvider

	phase    int
	gameOver bool
	outcome  []string
	twists   []string // pre-shuffled, popped front to back
}

// StoryConfig carries everything needed to open a narrative session.
type StoryConfig struct {
	ScenarioID      string
	GMID            string
	Oracle          Oracle
	Bios            BioProvider
	Memories        MemoryProvider
	MaxParticipants int

	// NPCCount controls how many scripted cast members are seated at
	// creation: negative fills every seat but one, zero leaves the cast to
	// human players.
	NPCCount int

	// CreatorName keeps an NPC with the same name off the cast.
	CreatorName string
}

func NewStoryRoom(cfg StoryConfig) (*StoryRoom, error) {
	scenario, ok := ScenarioByID(cfg.ScenarioID)
	if !ok {
		return nil, ErrScenarioUnknown
	}
	gm, ok := GMByID(cfg.GMID)
	if !ok {
		return nil, ErrGMUnknown
	}

	max := cfg.MaxParticipants
	if max <= 0 {
		max = scenario.MaxAgents
	}

	twists := make([]string, len(scenario.Twists))
	copy(twists, scenario.Twists)
	rand.Shuffle(len(twists), func(i, j int) { twists[i], twists[j] = twists[j], twists[i] })

	r := &StoryRoom{
		oracle:   cfg.Oracle,
		scenario: scenario,
		gm:       gm,
		bios:     cfg.Bios,
		memories: cfg.Memories,
		twists:   twists,
	}
	initSession(&r.Session, scenario.Title, max)
	r.seatNPCs(cfg.NPCCount, cfg.CreatorName)
	r.appendEvent(Event{Type: EventNarration, SenderID: "gm", SenderName: gm.Name, Content: scenario.Setup})
	return r, nil
}

// seatNPCs places shuffled catalog characters on the roster, always leaving
// at least one seat for a human. The room has not escaped yet, so no notices
// are logged for them.
func (r *StoryRoom) seatNPCs(count int, creatorName string) {
	limit := r.maxParticipants - 1
	if count < 0 || count > limit {
		count = limit
	}
	if count <= 0 {
		return
	}

	pool := make([]NPCProfile, 0, len(NPCProfiles))
	for _, n := range NPCProfiles {
		if !strings.EqualFold(n.Name, creatorName) {
			pool = append(pool, n)
		}
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if count > len(pool) {
		count = len(pool)
	}

	now := r.now()
	for _, n := range pool[:count] {
		r.participants = append(r.participants, &Participant{
			ID:          "npc-" + uuid.NewString(),
			DisplayName: n.Name,
			Persona:     n.Persona,
			JoinedAt:    now,
			LastActive:  now,
		})
	}
}

func (r *StoryRoom) Scenario() Scenario { return r.scenario }

func (r *StoryRoom) GM() GMProfile { return r.gm }

// TurnResult is what a submitted turn hands back to the caller.
type TurnResult struct {
	Text       string   `json:"dialogue_segment"`
	PhaseLabel string   `json:"phase_label"`
	GameOver   bool     `json:"game_over"`
	Outcome    []string `json:"outcome,omitempty"`
}

// SubmitTurn runs one logical turn: build the prompt, call the oracle (with
// exactly one corrective retry if the actor's line is missing), accept the
// text, then apply deaths, resolution, a possible scripted twist, and the
// phase step. After game over it is a no-op returning the frozen outcome.
func (r *StoryRoom) SubmitTurn(ctx context.Context, actorID, instruction string) (*TurnResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gameOver {
		return &TurnResult{
			PhaseLabel: PhaseNames[r.phase],
			GameOver:   true,
			Outcome:    r.outcome,
		}, nil
	}

	actor := r.participant(actorID)
	if actor == nil {
		return nil, ErrNotFound
	}

	sysPrompt, userPrompt := r.buildTurnPrompt(actor, instruction)
	opts := GenerateOptions{Temperature: 0.7, MaxTokens: 1000}

	raw, err := r.oracle.Generate(ctx, sysPrompt, userPrompt, opts)
	if err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)

	if !hasSpeakerLine(raw, actor.DisplayName) {
		// one corrective retry, then the text is accepted as-is
		retry, err := r.oracle.Generate(ctx, sysPrompt,
			userPrompt+fmt.Sprintf("\n(Previous reply lacked a line for %s.)", actor.DisplayName), opts)
		if err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(retry)
	}

	r.appendEvent(Event{
		Type:       EventNarration,
		SenderID:   "gm",
		SenderName: r.gm.Name,
		Content:    raw,
	})
	actor.LastActive = r.now()
	actor.MessageCount++

	// deaths are applied before the resolution is finalized
	for _, name := range parseDeaths(raw) {
		r.removeByName(name)
	}

	if names, ok := parseResolution(raw); ok {
		r.gameOver = true
		r.outcome = names
		r.active = false
		r.appendEvent(Event{
			Type:       EventOutcome,
			SenderID:   "gm",
			SenderName: r.gm.Name,
			Content:    r.scenario.OutcomeLabel + ": " + strings.Join(names, ", "),
		})
	}

	if !r.gameOver && r.phase < len(PhaseNames)-2 && len(r.twists) > 0 {
		twist := r.twists[0]
		r.twists = r.twists[1:]
		r.appendEvent(Event{
			Type:       EventTwist,
			SenderID:   "gm",
			SenderName: r.gm.Name,
			Content:    twist,
		})
	}

	if !r.gameOver && r.phase < len(PhaseNames)-1 {
		r.phase++
	}

	return &TurnResult{
		Text:       raw,
		PhaseLabel: PhaseNames[r.phase],
		GameOver:   r.gameOver,
		Outcome:    r.outcome,
	}, nil
}

// callers hold mu
func (r *StoryRoom) removeByName(name string) {
	for _, p := range r.participants {
		if strings.EqualFold(p.DisplayName, name) {
			r.removeParticipant(p.ID)
			return
		}
	}
}

// callers hold mu
func (r *StoryRoom) buildTurnPrompt(actor *Participant, instruction string) (string, string) {
	phaseName := PhaseNames[r.phase]

	var sys strings.Builder
	fmt.Fprintf(&sys, "### GM persona\n%s\n\n", r.gm.Persona)
	fmt.Fprintf(&sys, "Current phase: **%s**.\n", phaseName)
	fmt.Fprintf(&sys, "You control **GM** and **all NPCs** (everyone except %s).\n", actor.DisplayName)
	sys.WriteString("Produce **one turn** in this exact structure:\n")
	sys.WriteString("1. GM: narration for the current phase.\n")
	fmt.Fprintf(&sys, "2. %s: responds.\n", actor.DisplayName)
	sys.WriteString("3. One line for *each* other participant (order up to you).\n\n")
	sys.WriteString("FORMAT STRICTLY: each dialogue line must be `Speaker: dialogue` - " +
		"no markdown, bullets, or extra prefixes.\n\n")
	sys.WriteString("If any character dies or is lost this turn, add one line `DEAD: <name, name...>`.\n")
	fmt.Fprintf(&sys, "Only when the story fully resolves, end with one line `%s: %s: <name, name...>`.\n",
		markerResolution, strings.ToUpper(r.scenario.OutcomeLabel))

	var cast strings.Builder
	for _, p := range r.participants {
		fmt.Fprintf(&cast, "- %s: %s\n", p.DisplayName, p.Persona)
	}

	bioBlock := "*none*"
	if r.bios != nil {
		if bio, ok := r.bios.Bio(actor.DisplayName); ok {
			bioBlock = bio
		}
	}

	memBlock := "*none*"
	if r.memories != nil {
		if mems := r.memories.Relevant(actor.DisplayName, instruction, 3); len(mems) > 0 {
			var lines []string
			for _, m := range mems {
				lines = append(lines, "- "+m)
			}
			memBlock = strings.Join(lines, "\n")
		}
	}

	history := "*none yet*"
	if len(r.events) > 0 {
		var lines []string
		for _, ev := range r.events {
			lines = append(lines, ev.Content)
		}
		history = strings.Join(lines, "\n")
	}

	user := fmt.Sprintf(
		"### Scenario\n%s\n### Setup\n%s\n\n### Cast\n%s\n### %s bio\n%s\n\n"+
			"### %s memories (top-of-mind)\n%s\n\n"+
			"### Dialogue so far\n%s\n\n### Director's order to %s\n%s\n\n### Produce the next turn now.",
		r.scenario.Title, r.scenario.Setup, cast.String(),
		actor.DisplayName, bioBlock, actor.DisplayName, memBlock,
		history, actor.DisplayName, instruction,
	)
	return sys.String(), user
}

// StoryState is the narrative snapshot handed to callers.
type StoryState struct {
	SessionID     string        `json:"session_id"`
	ScenarioID    string        `json:"scenario_id"`
	ScenarioTitle string        `json:"scenario_title"`
	GMName        string        `json:"gm_name"`
	PhaseLabel    string        `json:"phase_label"`
	GameOver      bool          `json:"game_over"`
	Outcome       []string      `json:"outcome,omitempty"`
	OutcomeLabel  string        `json:"outcome_label,omitempty"`
	Active        bool          `json:"is_active"`
	Participants  []Participant `json:"participants"`
	Events        []Event       `json:"events"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (r *StoryRoom) State() StoryState {
	r.mu.Lock()
	defer r.mu.Unlock()

	participants := make([]Participant, len(r.participants))
	for i, p := range r.participants {
		participants[i] = *p
	}
	events := make([]Event, len(r.events))
	copy(events, r.events)

	return StoryState{
		SessionID:     r.id,
		ScenarioID:    r.scenario.ID,
		ScenarioTitle: r.scenario.Title,
		GMName:        r.gm.Name,
		PhaseLabel:    PhaseNames[r.phase],
		GameOver:      r.gameOver,
		Outcome:       r.outcome,
		OutcomeLabel:  r.scenario.OutcomeLabel,
		Active:        r.active,
		Participants:  participants,
		Events:        events,
		CreatedAt:     r.createdAt,
	}
}

// Transcript renders the session as markdown for download.
func (r *StoryRoom) Transcript() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n## GM: %s (%s)\n\n## Setup\n%s\n\n## Dialogue\n", r.scenario.Title, r.gm.Name, r.gm.Difficulty, r.scenario.Setup)
	for _, ev := range r.events {
		if ev.Type == EventNarration || ev.Type == EventMessage || ev.Type == EventTwist {
			b.WriteString(ev.Content)
			b.WriteString("\n\n")
		}
	}
	if r.gameOver && len(r.outcome) > 0 {
		fmt.Fprintf(&b, "## %s\n%s\n", r.scenario.OutcomeLabel, strings.Join(r.outcome, ", "))
	}
	return b.String()
}
