package repository

import (
	"github.com/codewithlokesh/intrvu-backend/internal/dto"
	"github.com/codewithlokesh/intrvu-backend/internal/model"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type InterviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db}
}

func (r *InterviewRepository) CreateSession(session *model.InterviewSession) error {
	return r.db.Create(session).Error
}

func (r *InterviewRepository) FindSessionByID(id string) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := r.db.Preload("Answers").First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *InterviewRepository) FindSessionsByUser(userID string, offset, limit int) ([]model.InterviewSession, int64, error) {
	var sessions []model.InterviewSession
	var total int64

	if err := r.db.Model(&model.InterviewSession{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *InterviewRepository) FindSessionsWithAnswers(userID string) ([]model.InterviewSession, error) {
	var sessions []model.InterviewSession
	err := r.db.Preload("Answers").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// ReplaceFeedback writes a sanitized feedback record: in one transaction the
// session's answers are dropped and recreated, and its top-level feedback
// fields updated. The last concurrent writer wins entirely.
func (r *InterviewRepository) ReplaceFeedback(sessionID string, rec dto.FeedbackRecord) error {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return err
	}

	answers := make([]model.Answer, 0, len(rec.Questions))
	for _, q := range rec.Questions {
		answers = append(answers, model.Answer{
			SessionID:     sid,
			Question:      q.Question,
			CorrectAnswer: q.CorrectAnswer,
			UserAnswer:    q.UserAnswer,
			IsCorrect:     q.IsCorrect,
			Rating:        q.Rating,
			Feedback:      q.Feedback,
			Strengths:     pq.StringArray(q.Strengths),
			Improvements:  pq.StringArray(q.Improvements),
		})
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sid).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		res := tx.Model(&model.InterviewSession{}).Where("id = ?", sid).Updates(map[string]any{
			"rating":       rec.Rating,
			"summary":      rec.Summary,
			"strengths":    pq.StringArray(rec.Strengths),
			"improvements": pq.StringArray(rec.Improvements),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
