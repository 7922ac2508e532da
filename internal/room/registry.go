package room

import (
	"sort"
	"sync"
	"time"
)

// DefaultSessionTTL is how long an idle session survives before the lazy
// sweep drops it.
const DefaultSessionTTL = 24 * time.Hour

// Registry is the process-wide session map. It is created at startup and
// injected; nothing in the engine reaches for a package-level singleton.
type Registry struct {
	mu      sync.RWMutex
	stories map[string]*StoryRoom
	rooms   map[string]*IcebreakerRoom
	ttl     time.Duration
	now     func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		stories: make(map[string]*StoryRoom),
		rooms:   make(map[string]*IcebreakerRoom),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *Registry) PutStory(s *StoryRoom) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stories[s.ID()] = s
}

func (r *Registry) Story(id string) (*StoryRoom, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stories[id]
	return s, ok
}

func (r *Registry) PutRoom(room *IcebreakerRoom) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[room.ID()] = room
}

func (r *Registry) Room(id string) (*IcebreakerRoom, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return room, ok
}

// Remove drops a session of either variant.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stories, id)
	delete(r.rooms, id)
}

// ActiveStories lists active narrative sessions, newest first. The TTL sweep
// runs first, so abandoned sessions disappear on read.
func (r *Registry) ActiveStories() []*StoryRoom {
	r.sweep()
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*StoryRoom
	for _, s := range r.stories {
		if s.Active() {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out
}

// ActiveRooms lists active icebreaker rooms, newest first.
func (r *Registry) ActiveRooms() []*IcebreakerRoom {
	r.sweep()
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*IcebreakerRoom
	for _, room := range r.rooms {
		if room.Active() {
			out = append(out, room)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out
}

// sweep drops sessions whose log has been idle past the TTL.
func (r *Registry) sweep() {
	cutoff := r.now().Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.stories {
		if s.LastEventAt().Before(cutoff) {
			delete(r.stories, id)
		}
	}
	for id, room := range r.rooms {
		if room.LastEventAt().Before(cutoff) {
			delete(r.rooms, id)
		}
	}
}
