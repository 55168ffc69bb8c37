package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type User struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FullName          string         `gorm:"type:varchar(255)" json:"full_name"`
	Email             string         `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Password          string         `gorm:"type:varchar(255)" json:"-"`
	VerifyCode        string         `gorm:"type:varchar(10)" json:"-"`
	IsVerified        bool           `json:"is_verified"`
	Provider          string         `gorm:"type:varchar(50)" json:"provider"` // "credentials", "google", "github"
	Image             string         `gorm:"type:text" json:"image"`
	ExperienceLevel   string         `gorm:"type:varchar(50)" json:"experience_level"`
	TargetCompanySize string         `gorm:"type:varchar(50)" json:"target_company_size"`
	Industry          pq.StringArray `gorm:"type:text[]" json:"industry"`
	TargetRoles       pq.StringArray `gorm:"type:text[]" json:"target_roles"`
	FocusArea         pq.StringArray `gorm:"type:text[]" json:"focus_area"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}
