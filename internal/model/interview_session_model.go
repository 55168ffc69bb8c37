package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type InterviewSession struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	InterviewType   string         `gorm:"type:varchar(50)" json:"interview_type"` // "behavioral", "technical", "system_design"
	DifficultyLevel string         `gorm:"type:varchar(50)" json:"difficulty_level"`
	Duration        int            `json:"duration"` // minutes
	InterviewMode   string         `gorm:"type:varchar(50)" json:"interview_mode"` // "text_chat", "voice", "video"
	ExperienceLevel string         `gorm:"type:varchar(50)" json:"experience_level"`
	JobPosition     string         `gorm:"type:varchar(100)" json:"job_position"`
	JobDescription  string         `gorm:"type:text" json:"job_description"`
	TechStack       pq.StringArray `gorm:"type:text[]" json:"tech_stack"`

	// Filled once feedback is generated, untouched afterward.
	Rating       float64        `json:"rating"`
	Summary      string         `gorm:"type:text" json:"summary"`
	Strengths    pq.StringArray `gorm:"type:text[]" json:"strengths"`
	Improvements pq.StringArray `gorm:"type:text[]" json:"improvements"`

	Answers   []Answer  `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"answers"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
