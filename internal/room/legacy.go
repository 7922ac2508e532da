package room

import (
	"context"
	"fmt"
	"strings"
)

// TurnTaker is the narrow surface older callers expect from a session:
// submit a turn, read the whole story. StoryRoom satisfies it natively;
// ChatAdapter grafts it onto an icebreaker room.
type TurnTaker interface {
	SubmitTurn(ctx context.Context, actorID, instruction string) (*TurnResult, error)
	FullStory() []string
}

// ChatAdapter presents an icebreaker room through the turn-based surface:
// a "turn" is just a chat message, and the story is the message history.
type ChatAdapter struct {
	room *IcebreakerRoom
}

func NewChatAdapter(room *IcebreakerRoom) *ChatAdapter {
	return &ChatAdapter{room: room}
}

func (a *ChatAdapter) SubmitTurn(ctx context.Context, actorID, instruction string) (*TurnResult, error) {
	ev, err := a.room.SendMessage(ctx, actorID, instruction)
	if err != nil {
		return nil, err
	}
	return &TurnResult{
		Text:       fmt.Sprintf("%s: %s", ev.SenderName, ev.Content),
		PhaseLabel: "Active Chat",
		GameOver:   false,
	}, nil
}

// FullStory returns the chat as speaker-prefixed lines, topics included.
func (a *ChatAdapter) FullStory() []string {
	var lines []string
	for _, ev := range a.room.Events() {
		if ev.Type == EventMessage || ev.Type == EventIcebreaker {
			lines = append(lines, fmt.Sprintf("%s: %s", ev.SenderName, ev.Content))
		}
	}
	return lines
}

// FullStory on the narrative variant is the transcript split into segments.
func (r *StoryRoom) FullStory() []string {
	var lines []string
	for _, ev := range r.Events() {
		if ev.Type == EventNarration || ev.Type == EventTwist {
			lines = append(lines, strings.TrimSpace(ev.Content))
		}
	}
	return lines
}
