package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Answer is one graded question of a finished interview. The whole set for a
// session is replaced when feedback is regenerated, never merged.
type Answer struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID     uuid.UUID      `gorm:"type:uuid;index" json:"session_id"`
	Question      string         `gorm:"type:text" json:"question"`
	CorrectAnswer string         `gorm:"type:text" json:"correct_answer"`
	UserAnswer    string         `gorm:"type:text" json:"user_answer"`
	IsCorrect     bool           `json:"is_correct"`
	Rating        int            `json:"rating"` // 1-5
	Feedback      string         `gorm:"type:text" json:"feedback"`
	Strengths     pq.StringArray `gorm:"type:text[]" json:"strengths"`
	Improvements  pq.StringArray `gorm:"type:text[]" json:"improvements"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
