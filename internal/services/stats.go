package services

import (
	"errors"
	"log"
	"time"

	"github.com/mateolarreaferro/Icebreakers/internal/models"

	"gorm.io/gorm"
)

// StatsService tracks per-user activity. Every write is best-effort: errors
// are logged and swallowed so storage trouble never aborts a session
// mutation that already succeeded.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

func (s *StatsService) ensure(userID uint) *models.UserStats {
	var stats models.UserStats
	if err := s.db.Where("user_id = ?", userID).First(&stats).Error; err == nil {
		return &stats
	}
	stats = models.UserStats{UserID: userID, LastActive: time.Now()}
	if err := s.db.Create(&stats).Error; err != nil {
		log.Printf("stats: create for user %d failed: %v", userID, err)
		return nil
	}
	return &stats
}

// RecordMessage bumps the message counters for the user and their visit row.
func (s *StatsService) RecordMessage(userID uint, roomSessionID string) {
	stats := s.ensure(userID)
	if stats == nil {
		return
	}
	stats.TotalMessages++
	stats.LastActive = time.Now()
	if err := s.db.Save(stats).Error; err != nil {
		log.Printf("stats: message update for user %d failed: %v", userID, err)
	}
	s.db.Model(&models.RoomVisit{}).
		Where("user_id = ? AND room_session_id = ?", userID, roomSessionID).
		Update("messages_sent", gorm.Expr("messages_sent + 1"))
}

// RecordJoin notes a room join and points the user at their current room.
func (s *StatsService) RecordJoin(userID uint, roomSessionID string) {
	stats := s.ensure(userID)
	if stats == nil {
		return
	}
	stats.RoomsJoined++
	stats.CurrentRoomID = roomSessionID
	stats.LastActive = time.Now()
	if err := s.db.Save(stats).Error; err != nil {
		log.Printf("stats: join update for user %d failed: %v", userID, err)
	}

	visit := models.RoomVisit{UserID: userID, RoomSessionID: roomSessionID, JoinedAt: time.Now()}
	if err := s.db.Create(&visit).Error; err != nil {
		log.Printf("stats: visit row for user %d failed: %v", userID, err)
	}
}

// RecordReadyVote counts a readiness toggle toward the visit row.
func (s *StatsService) RecordReadyVote(userID uint, roomSessionID string) {
	s.db.Model(&models.RoomVisit{}).
		Where("user_id = ? AND room_session_id = ?", userID, roomSessionID).
		Update("ready_votes", gorm.Expr("ready_votes + 1"))
}

// RecordLeave clears the current-room pointer.
func (s *StatsService) RecordLeave(userID uint) {
	if err := s.db.Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Update("current_room_id", "").Error; err != nil {
		log.Printf("stats: leave update for user %d failed: %v", userID, err)
	}
}

// UserSummary is the aggregate view returned to the user.
type UserSummary struct {
	models.UserStats
	RoomsParticipated int `json:"rooms_participated"`
	TotalReadyVotes   int `json:"total_ready_votes"`
}

func (s *StatsService) Summary(userID uint) (*UserSummary, error) {
	var stats models.UserStats
	if err := s.db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, errors.New("stats not found")
	}

	var roomCount int64
	s.db.Model(&models.RoomVisit{}).Where("user_id = ?", userID).Count(&roomCount)

	var readyVotes int64
	s.db.Model(&models.RoomVisit{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(ready_votes), 0)").Scan(&readyVotes)

	return &UserSummary{
		UserStats:         stats,
		RoomsParticipated: int(roomCount),
		TotalReadyVotes:   int(readyVotes),
	}, nil
}
