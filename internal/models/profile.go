package models

import "time"

// Profile is the name-keyed persona record used to enrich narrative prompts.
type Profile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Persona     string    `gorm:"type:text;not null" json:"persona"`
	Home        string    `gorm:"size:255" json:"home,omitempty"`
	Hobbies     string    `gorm:"size:255" json:"hobbies,omitempty"`
	FunFact     string    `gorm:"size:255" json:"fun_fact,omitempty"`
	Personality string    `gorm:"size:255" json:"personality,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
