package models

import "time"

// UserStats accumulates per-account activity across rooms. Writes are
// best-effort: a failed update never aborts a session mutation.
type UserStats struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	TotalMessages int       `gorm:"not null;default:0" json:"total_messages"`
	RoomsJoined   int       `gorm:"not null;default:0" json:"rooms_joined"`
	CurrentRoomID string    `gorm:"size:64" json:"current_room_id,omitempty"`
	LastActive    time.Time `json:"last_active"`
}

// RoomVisit is one row of a user's room history.
type RoomVisit struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	RoomSessionID string    `gorm:"size:64;not null;index" json:"room_session_id"`
	MessagesSent  int       `gorm:"not null;default:0" json:"messages_sent"`
	ReadyVotes    int       `gorm:"not null;default:0" json:"ready_votes"`
	JoinedAt      time.Time `json:"joined_at"`
}
