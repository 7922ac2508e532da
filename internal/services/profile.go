package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mateolarreaferro/Icebreakers/internal/models"

	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Upsert creates or updates the profile keyed by name.
func (s *ProfileService) Upsert(profile *models.Profile) error {
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Persona = strings.TrimSpace(profile.Persona)
	if profile.Name == "" || profile.Persona == "" {
		return errors.New("name and persona required")
	}

	var existing models.Profile
	if err := s.db.Where("name = ?", profile.Name).First(&existing).Error; err == nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		return s.db.Save(profile).Error
	}
	return s.db.Create(profile).Error
}

func (s *ProfileService) Get(name string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("name = ?", name).First(&profile).Error; err != nil {
		return nil, errors.New("profile not found")
	}
	return &profile, nil
}

func (s *ProfileService) List() ([]string, error) {
	var names []string
	if err := s.db.Model(&models.Profile{}).Order("name ASC").Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// Bio implements room.BioProvider: the profile rendered as a prompt block.
// Misses and lookup failures both report not-found; prompts degrade cleanly.
func (s *ProfileService) Bio(name string) (string, bool) {
	profile, err := s.Get(name)
	if err != nil {
		return "", false
	}

	var lines []string
	if profile.Home != "" {
		lines = append(lines, fmt.Sprintf("- Home: %s", profile.Home))
	}
	if profile.Hobbies != "" {
		lines = append(lines, fmt.Sprintf("- Hobbies: %s", profile.Hobbies))
	}
	if profile.FunFact != "" {
		lines = append(lines, fmt.Sprintf("- Fun fact: %s", profile.FunFact))
	}
	if profile.Personality != "" {
		lines = append(lines, fmt.Sprintf("- Personality: %s", profile.Personality))
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}
