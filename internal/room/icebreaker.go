package room

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Activity categories escalate as the conversation matures: the first topic
// introduces people, the next ones dig deeper.
const (
	activityIntroductions = "introductions"
	activityGettingToKnow = "getting_to_know"
	activityCreative      = "creative"
	activityReflection    = "reflection"
)

const readyWindow = 60 * time.Second

var fallbackTopics = map[string]string{
	activityIntroductions: "What's your name and what's something you're excited about this semester?",
	activityGettingToKnow: "If you could have dinner with anyone, alive or dead, who would it be and why?",
	activityCreative:      "If you could have any superpower for just one day, what would you do with it?",
	activityReflection:    "What's one piece of advice you'd give to your freshman year self?",
}

// IcebreakerRoom is the chat session variant: a shared rotating topic with a
// readiness quorum. Timers are never scheduled; every read checks whether
// the countdown has run out and rotates then.
type IcebreakerRoom struct {
	Session

	oracle      Oracle
	facilitator string

	currentTopic string
	topicHistory []string
	contextTags  []string
	activityType string

	readyTimerStart *time.Time
	minting         bool // single-flight guard for topic generation
}

func NewIcebreakerRoom(title, facilitator string, oracle Oracle, maxParticipants int) *IcebreakerRoom {
	if facilitator == "" {
		facilitator = "Icebreaker Bot"
	}
	r := &IcebreakerRoom{
		oracle:       oracle,
		facilitator:  facilitator,
		activityType: activityIntroductions,
	}
	initSession(&r.Session, title, maxParticipants)
	return r
}

// SetContextTags attaches group hints (e.g. "engineering students") used in
// topic prompts.
func (r *IcebreakerRoom) SetContextTags(tags []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contextTags = tags
}

// ReadyStatus is the quorum tally returned by SetReady and in snapshots.
type ReadyStatus struct {
	ReadyCount        int  `json:"ready_count"`
	TotalParticipants int  `json:"total_participants"`
	TimerActive       bool `json:"timer_active"`
	SecondsRemaining  *int `json:"seconds_remaining"`
	NewTopic          bool `json:"new_topic_generated,omitempty"`
}

// SetReady flips a participant's ready flag. A full quorum (everyone ready,
// more than one present) mints a topic immediately; half or more readies
// start the countdown once.
func (r *IcebreakerRoom) SetReady(ctx context.Context, participantID string, ready bool) (ReadyStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// an already-due countdown rotates before this toggle counts
	r.refresh(ctx)

	p := r.participant(participantID)
	if p == nil {
		return ReadyStatus{}, ErrNotFound
	}
	p.Ready = ready

	readyCount := r.readyCount()
	total := len(r.participants)

	if readyCount == total && total > 1 {
		r.mintTopic(ctx)
		r.systemNotice("Everyone's ready! Here's a new icebreaker topic.")
		return ReadyStatus{
			ReadyCount:        0,
			TotalParticipants: total,
			NewTopic:          true,
		}, nil
	}

	if readyCount >= (total+1)/2 && r.readyTimerStart == nil {
		start := r.now()
		r.readyTimerStart = &start
		r.systemNotice(fmt.Sprintf("%d/%d participants are ready. New topic in %d seconds!",
			readyCount, total, int(readyWindow.Seconds())))
	}

	return ReadyStatus{
		ReadyCount:        readyCount,
		TotalParticipants: total,
		TimerActive:       r.readyTimerStart != nil,
		SecondsRemaining:  r.timerRemaining(),
	}, nil
}

// callers hold mu
func (r *IcebreakerRoom) readyCount() int {
	n := 0
	for _, p := range r.participants {
		if p.Ready {
			n++
		}
	}
	return n
}

// TimerRemaining reports the seconds left on the ready countdown, nil when
// no countdown is running.
func (r *IcebreakerRoom) TimerRemaining() *int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timerRemaining()
}

// callers hold mu
func (r *IcebreakerRoom) timerRemaining() *int {
	if r.readyTimerStart == nil {
		return nil
	}
	remaining := int(readyWindow.Seconds()) - int(r.now().Sub(*r.readyTimerStart).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// callers hold mu
func (r *IcebreakerRoom) topicDue() bool {
	if r.readyTimerStart == nil || r.minting {
		return false
	}
	rem := r.timerRemaining()
	return rem != nil && *rem == 0
}

// SendMessage appends a chat message after running the lazy deadline checks,
// so a due topic rotates before the message lands.
func (r *IcebreakerRoom) SendMessage(ctx context.Context, senderID, content string) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refresh(ctx)
	return r.addMessage(senderID, content)
}

// refresh evaluates every lazy deadline: expired votekicks are purged and a
// due topic countdown rotates the topic. callers hold mu.
func (r *IcebreakerRoom) refresh(ctx context.Context) {
	r.sweepExpiredVotekicks()
	if r.topicDue() {
		r.mintTopic(ctx)
	}
}

// mintTopic generates the next topic, resets every ready flag, and clears
// the countdown. It never fails: on oracle error a canned question for the
// current activity category is used instead. callers hold mu.
func (r *IcebreakerRoom) mintTopic(ctx context.Context) string {
	r.minting = true
	defer func() { r.minting = false }()

	category := r.activityCategory()
	r.activityType = category
	topic, err := r.generateTopic(ctx, category)
	if err != nil {
		topic = fallbackTopics[category]
	}

	r.currentTopic = topic
	r.topicHistory = append(r.topicHistory, topic)
	r.appendEvent(Event{
		Type:       EventIcebreaker,
		SenderID:   "icebreaker_bot",
		SenderName: r.facilitator,
		Content:    topic,
	})

	for _, p := range r.participants {
		p.Ready = false
	}
	r.readyTimerStart = nil
	return topic
}

// activityCategory derives the category from how many topics have already
// been issued: introductions first, then two getting-to-know, two creative,
// reflection from there on. callers hold mu.
func (r *IcebreakerRoom) activityCategory() string {
	switch n := len(r.topicHistory); {
	case n == 0:
		return activityIntroductions
	case n <= 2:
		return activityGettingToKnow
	case n <= 4:
		return activityCreative
	default:
		return activityReflection
	}
}

// callers hold mu
func (r *IcebreakerRoom) generateTopic(ctx context.Context, category string) (string, error) {
	sysPrompt := fmt.Sprintf(`You are an expert icebreaker facilitator for college students. Create engaging questions that:

1. Are appropriate for the current activity type: %s
2. Encourage participation from shy students
3. Are inclusive and culturally sensitive
4. Lead to interesting discussions
5. Are not too personal or invasive

Activity type guidelines:
- introductions: Help people share basic info about themselves
- getting_to_know: Deeper personal interests and experiences
- creative: Hypothetical scenarios, imagination, fun "what if" questions
- reflection: Thoughtful questions about experiences, values, growth

Generate ONE engaging icebreaker question. No explanations, just the question.`, category)

	contextInfo := fmt.Sprintf("Group size: %d college students", len(r.participants))
	if topics := r.recentMessageTopics(); len(topics) > 0 {
		contextInfo += ". Recent topics: " + strings.Join(topics, ", ")
	}
	if len(r.contextTags) > 0 {
		contextInfo += ". Group context: " + strings.Join(r.contextTags, ", ")
	}

	previous := ""
	if len(r.topicHistory) > 0 {
		recent := r.topicHistory
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		previous = "Previous questions asked: " + strings.Join(recent, "; ")
	}

	userPrompt := fmt.Sprintf("Context: %s\n\n%s\n\nGenerate a %s icebreaker question:",
		contextInfo, previous, category)

	raw, err := r.oracle.Generate(ctx, sysPrompt, userPrompt, GenerateOptions{Temperature: 0.9, MaxTokens: 100})
	if err != nil {
		return "", err
	}

	topic := strings.Trim(strings.TrimSpace(raw), `"'`)
	if !strings.HasSuffix(topic, "?") {
		topic += "?"
	}
	return topic, nil
}

// recentMessageTopics samples the tail of the chat for prompt context.
// callers hold mu.
func (r *IcebreakerRoom) recentMessageTopics() []string {
	recent := r.events
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	var topics []string
	for _, ev := range recent {
		if ev.Type == EventMessage && len(ev.Content) > 10 {
			content := ev.Content
			if len(content) > 50 {
				content = content[:50]
			}
			topics = append(topics, content)
		}
	}
	if len(topics) > 3 {
		topics = topics[len(topics)-3:]
	}
	return topics
}

// RoomState is the full chat snapshot. Reading it runs the lazy deadline
// checks first, so due rotations and expiries take effect.
type RoomState struct {
	SessionID        string          `json:"session_id"`
	RoomTitle        string          `json:"room_title"`
	FacilitatorName  string          `json:"facilitator_name"`
	Participants     []Participant   `json:"participants"`
	ParticipantCount int             `json:"participant_count"`
	MaxParticipants  int             `json:"max_participants"`
	Active           bool            `json:"is_active"`
	CurrentTopic     string          `json:"current_icebreaker,omitempty"`
	ActivityType     string          `json:"activity_type"`
	Events           []Event         `json:"chat_history"`
	ReadyStatus      ReadyStatus     `json:"ready_status"`
	ActiveVotekicks  []VotekickState `json:"active_votekicks"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (r *IcebreakerRoom) State(ctx context.Context) RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refresh(ctx)

	participants := make([]Participant, len(r.participants))
	for i, p := range r.participants {
		participants[i] = *p
	}
	events := make([]Event, len(r.events))
	copy(events, r.events)

	return RoomState{
		SessionID:        r.id,
		RoomTitle:        r.title,
		FacilitatorName:  r.facilitator,
		Participants:     participants,
		ParticipantCount: len(participants),
		MaxParticipants:  r.maxParticipants,
		Active:           r.active,
		CurrentTopic:     r.currentTopic,
		ActivityType:     r.activityType,
		Events:           events,
		ReadyStatus: ReadyStatus{
			ReadyCount:        r.readyCount(),
			TotalParticipants: len(participants),
			TimerActive:       r.readyTimerStart != nil,
			SecondsRemaining:  r.timerRemaining(),
		},
		ActiveVotekicks: r.votekickStates(),
		CreatedAt:       r.createdAt,
	}
}
