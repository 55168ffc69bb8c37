package usecase

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/codewithlokesh/intrvu-backend/internal/dto"
	"github.com/codewithlokesh/intrvu-backend/internal/llmjson"
	"github.com/codewithlokesh/intrvu-backend/internal/model"
	"github.com/codewithlokesh/intrvu-backend/internal/prompt"
	"github.com/codewithlokesh/intrvu-backend/internal/sanitize"
	"github.com/codewithlokesh/intrvu-backend/internal/service"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/tidwall/gjson"
)

// InterviewStore is the persistence surface the pipeline needs. It is an
// interface so feedback writes can be mocked without a live database.
type InterviewStore interface {
	CreateSession(session *model.InterviewSession) error
	FindSessionByID(id string) (*model.InterviewSession, error)
	FindSessionsByUser(userID string, offset, limit int) ([]model.InterviewSession, int64, error)
	FindSessionsWithAnswers(userID string) ([]model.InterviewSession, error)
	ReplaceFeedback(sessionID string, rec dto.FeedbackRecord) error
}

type InterviewUsecase struct {
	interviews InterviewStore
	chat       service.ChatModel
}

func NewInterviewUsecase(interviews InterviewStore, chat service.ChatModel) *InterviewUsecase {
	return &InterviewUsecase{interviews: interviews, chat: chat}
}

const (
	questionTemperature = 0.3
	questionMaxTokens   = 800
	feedbackTemperature = 0.2
	feedbackMaxTokens   = 1200
)

// CreateSession persists a configured interview session and generates its
// questions. Unparsable model output degrades to an empty question list; the
// session itself is already created and still returned.
func (uc *InterviewUsecase) CreateSession(ctx context.Context, userID string, req dto.InterviewSetupRequest) (*dto.InterviewCreated, error) {
	uid, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	if err := validateSetup(req); err != nil {
		return nil, err
	}

	session := &model.InterviewSession{
		UserID:          uid,
		InterviewType:   req.InterviewType,
		DifficultyLevel: req.DifficultyLevel,
		Duration:        req.Duration,
		InterviewMode:   req.InterviewMode,
		ExperienceLevel: req.ExperienceLevel,
		JobPosition:     req.JobPosition,
		JobDescription:  req.JobDescription,
		TechStack:       pq.StringArray(req.TechStack),
	}
	if err := uc.interviews.CreateSession(session); err != nil {
		return nil, fmt.Errorf("%w: create interview session: %v", ErrSaveFailed, err)
	}

	system, user := prompt.Questions(setupParams(session))
	content, err := uc.chat.Complete(ctx, system, user, service.ChatOptions{
		Temperature: questionTemperature,
		MaxTokens:   questionMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if content == "" {
		content = "[]"
	}

	questions := []dto.GeneratedQuestion{}
	if fixed, err := llmjson.Array(content); err != nil {
		log.Printf("failed to parse question output for session %s, falling back to empty list", session.ID)
	} else {
		questions = sanitize.Questions(gjson.Parse(fixed))
	}

	return &dto.InterviewCreated{Interview: session, Questions: questions}, nil
}

// GenerateFeedback runs the feedback pipeline for a finished interview:
// prompt from the transcript, one completion call, repair/parse, sanitize,
// then replace the session's answers and feedback fields in one write.
// Unlike question generation there is no safe empty fallback, so unparsable
// output fails the operation without touching the store.
func (uc *InterviewUsecase) GenerateFeedback(ctx context.Context, userID, sessionID string, transcript []dto.TranscriptMessage) (*model.InterviewSession, error) {
	if _, err := requireUser(userID); err != nil {
		return nil, err
	}
	if len(transcript) == 0 {
		return nil, fmt.Errorf("%w: transcript is empty", ErrValidation)
	}

	session, err := uc.interviews.FindSessionByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: interview session", ErrNotFound)
	}
	if session.UserID.String() != userID {
		return nil, fmt.Errorf("%w: interview session", ErrNotFound)
	}

	utterances := make([]prompt.Utterance, 0, len(transcript))
	for _, m := range transcript {
		utterances = append(utterances, prompt.Utterance{Role: m.Role, Content: m.Content})
	}

	system, user := prompt.Feedback(setupParams(session), utterances)
	content, err := uc.chat.Complete(ctx, system, user, service.ChatOptions{
		Temperature: feedbackTemperature,
		MaxTokens:   feedbackMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	fixed, err := llmjson.Object(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModelOutput, err)
	}
	rec := sanitize.Feedback(gjson.Parse(fixed))

	if err := uc.interviews.ReplaceFeedback(sessionID, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return uc.interviews.FindSessionByID(sessionID)
}

// GetSession returns one session with its answers, only to its owner.
func (uc *InterviewUsecase) GetSession(userID, sessionID string) (*model.InterviewSession, error) {
	if _, err := requireUser(userID); err != nil {
		return nil, err
	}
	session, err := uc.interviews.FindSessionByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: interview session", ErrNotFound)
	}
	if session.UserID.String() != userID {
		return nil, fmt.Errorf("%w: interview session", ErrNotFound)
	}
	return session, nil
}

// History lists the user's sessions, newest first.
func (uc *InterviewUsecase) History(userID string, offset, limit int) ([]model.InterviewSession, int64, error) {
	if _, err := requireUser(userID); err != nil {
		return nil, 0, err
	}
	return uc.interviews.FindSessionsByUser(userID, offset, limit)
}

// Dashboard aggregates interview count, average rating and answer accuracy.
func (uc *InterviewUsecase) Dashboard(userID string) (*dto.DashboardStats, error) {
	if _, err := requireUser(userID); err != nil {
		return nil, err
	}
	sessions, err := uc.interviews.FindSessionsWithAnswers(userID)
	if err != nil {
		return nil, err
	}

	stats := &dto.DashboardStats{
		TotalInterviewCount: int64(len(sessions)),
		RecentInterviews:    sessions,
	}
	if len(stats.RecentInterviews) > 10 {
		stats.RecentInterviews = stats.RecentInterviews[:10]
	}

	var ratingSum float64
	var rated int
	var correct, total int
	for _, s := range sessions {
		if s.Rating > 0 {
			ratingSum += s.Rating
			rated++
		}
		for _, a := range s.Answers {
			total++
			if a.IsCorrect {
				correct++
			}
		}
	}
	if rated > 0 {
		stats.Rating = math.Round(ratingSum/float64(rated)*10) / 10
	}
	if total > 0 {
		stats.Accuracy = math.Round(float64(correct)/float64(total)*10000) / 100
	}
	return stats, nil
}

func requireUser(userID string) (uuid.UUID, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: user ID missing in session", ErrUnauthorized)
	}
	return uid, nil
}

func validateSetup(req dto.InterviewSetupRequest) error {
	switch {
	case req.JobPosition == "":
		return fmt.Errorf("%w: job position is required", ErrValidation)
	case len(req.TechStack) == 0:
		return fmt.Errorf("%w: at least one tech stack entry is required", ErrValidation)
	case req.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	return nil
}

func setupParams(s *model.InterviewSession) prompt.SetupParams {
	return prompt.SetupParams{
		JobPosition:     s.JobPosition,
		TechStack:       []string(s.TechStack),
		DifficultyLevel: s.DifficultyLevel,
		ExperienceLevel: s.ExperienceLevel,
		InterviewType:   s.InterviewType,
		InterviewMode:   s.InterviewMode,
		JobDescription:  s.JobDescription,
		Duration:        s.Duration,
	}
}
