package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/mateolarreaferro/Icebreakers/internal/models"

	"gorm.io/gorm"
)

// recallWindow caps how many stored rows a relevance query scans.
const recallWindow = 50

type MemoryService struct {
	db *gorm.DB
}

func NewMemoryService(db *gorm.DB) *MemoryService {
	return &MemoryService{db: db}
}

// Add appends a raw memory string for the named participant.
func (s *MemoryService) Add(name, text string) error {
	name = strings.TrimSpace(name)
	text = strings.TrimSpace(text)
	if name == "" || text == "" {
		return errors.New("name and text required")
	}
	return s.db.Create(&models.Memory{Name: name, Text: text}).Error
}

// Recent returns up to k of the newest memories for a name, newest first.
func (s *MemoryService) Recent(name string, k int) ([]models.Memory, error) {
	var rows []models.Memory
	err := s.db.Where("name = ?", name).
		Order("created_at DESC").Limit(k).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Relevant implements room.MemoryProvider: up to k memories scored by word
// overlap with the cue, most relevant first. When nothing overlaps it falls
// back to the newest k, and lookup failures just recall nothing.
func (s *MemoryService) Relevant(name, cue string, k int) []string {
	var rows []models.Memory
	err := s.db.Where("name = ?", name).
		Order("created_at DESC").Limit(recallWindow).Find(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil
	}

	cueWords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(cue)) {
		cueWords[w] = true
	}

	type scored struct {
		text  string
		score int
		idx   int
	}
	candidates := make([]scored, len(rows))
	for i, row := range rows {
		n := 0
		for _, w := range strings.Fields(strings.ToLower(row.Text)) {
			if cueWords[w] {
				n++
			}
		}
		candidates[i] = scored{text: row.Text, score: n, idx: i}
	}
	// rows arrive newest first, so the index is the recency tiebreak
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].idx < candidates[j].idx
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]string, 0, k)
	for _, c := range candidates[:k] {
		out = append(out, c.text)
	}
	return out
}
