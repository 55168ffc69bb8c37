package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/codewithlokesh/intrvu-backend/internal/dto"
	"github.com/codewithlokesh/intrvu-backend/internal/model"
	"github.com/codewithlokesh/intrvu-backend/internal/service"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeChat struct {
	reply string
	err   error
	calls int
}

func (f *fakeChat) Complete(ctx context.Context, system, user string, opts service.ChatOptions) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeStore struct {
	sessions  map[string]*model.InterviewSession
	replaced  map[string]dto.FeedbackRecord
	createErr error
	writeErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: map[string]*model.InterviewSession{},
		replaced: map[string]dto.FeedbackRecord{},
	}
}

func (f *fakeStore) CreateSession(session *model.InterviewSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	session.ID = uuid.New()
	f.sessions[session.ID.String()] = session
	return nil
}

func (f *fakeStore) FindSessionByID(id string) (*model.InterviewSession, error) {
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) FindSessionsByUser(userID string, offset, limit int) ([]model.InterviewSession, int64, error) {
	var out []model.InterviewSession
	for _, s := range f.sessions {
		if s.UserID.String() == userID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeStore) FindSessionsWithAnswers(userID string) ([]model.InterviewSession, error) {
	sessions, _, err := f.FindSessionsByUser(userID, 0, 100)
	return sessions, err
}

func (f *fakeStore) ReplaceFeedback(sessionID string, rec dto.FeedbackRecord) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if _, ok := f.sessions[sessionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.replaced[sessionID] = rec
	s := f.sessions[sessionID]
	s.Rating = rec.Rating
	s.Summary = rec.Summary
	s.Answers = nil
	for _, q := range rec.Questions {
		s.Answers = append(s.Answers, model.Answer{
			SessionID:     s.ID,
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
	return nil
}

func validSetup() dto.InterviewSetupRequest {
	return dto.InterviewSetupRequest{
		InterviewType:   "technical",
		DifficultyLevel: "medium",
		Duration:        30,
		InterviewMode:   "voice",
		ExperienceLevel: "mid",
		JobPosition:     "backend_developer",
		TechStack:       []string{"Go", "PostgreSQL"},
	}
}

func sampleTranscript() []dto.TranscriptMessage {
	return []dto.TranscriptMessage{
		{Role: "assistant", Content: "What is a goroutine?"},
		{Role: "user", Content: "A lightweight thread."},
		{Role: "user", Content: "It is scheduled by the runtime."},
		{Role: "user", Content: "Channels are used to communicate."},
	}
}

func TestCreateSessionUnauthorizedBeforeAnyWork(t *testing.T) {
	store := newFakeStore()
	chat := &fakeChat{reply: "[]"}
	uc := NewInterviewUsecase(store, chat)

	_, err := uc.CreateSession(context.Background(), "", validSetup())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, store.sessions, "no session may be created for an anonymous caller")
	assert.Zero(t, chat.calls, "the LLM must not be called for an anonymous caller")
}

func TestCreateSessionValidation(t *testing.T) {
	uc := NewInterviewUsecase(newFakeStore(), &fakeChat{})
	userID := uuid.NewString()

	req := validSetup()
	req.TechStack = nil
	_, err := uc.CreateSession(context.Background(), userID, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = validSetup()
	req.Duration = 0
	_, err = uc.CreateSession(context.Background(), userID, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateSessionHappyPath(t *testing.T) {
	store := newFakeStore()
	chat := &fakeChat{reply: `[{"question":"Q1","correctAnswer":"A1"},{"question":"Q2","correctAnswer":"A2"}]`}
	uc := NewInterviewUsecase(store, chat)

	result, err := uc.CreateSession(context.Background(), uuid.NewString(), validSetup())

	require.NoError(t, err)
	require.NotNil(t, result.Interview)
	assert.Len(t, store.sessions, 1)
	require.Len(t, result.Questions, 2)
	assert.Equal(t, "Q1", result.Questions[0].Question)
	assert.Equal(t, "A2", result.Questions[1].CorrectAnswer)
}

func TestCreateSessionEmptyModelContent(t *testing.T) {
	// the invoker returning no content degrades to an empty question list;
	// the session itself is still created and returned
	store := newFakeStore()
	uc := NewInterviewUsecase(store, &fakeChat{reply: ""})

	result, err := uc.CreateSession(context.Background(), uuid.NewString(), validSetup())

	require.NoError(t, err)
	require.NotNil(t, result.Interview)
	assert.Len(t, store.sessions, 1)
	assert.Equal(t, []dto.GeneratedQuestion{}, result.Questions)
}

func TestCreateSessionUnparsableOutputDegrades(t *testing.T) {
	store := newFakeStore()
	uc := NewInterviewUsecase(store, &fakeChat{reply: "I cannot generate questions right now."})

	result, err := uc.CreateSession(context.Background(), uuid.NewString(), validSetup())

	require.NoError(t, err)
	assert.Equal(t, []dto.GeneratedQuestion{}, result.Questions)
	assert.Len(t, store.sessions, 1)
}

func TestGenerateFeedbackHappyPath(t *testing.T) {
	store := newFakeStore()
	chat := &fakeChat{reply: `{
		"rating": 4,
		"summary": "Good interview.",
		"strengths": ["communication"],
		"improvements": ["depth"],
		"questions": [
			{"question": "Q1", "userAnswer": "u1", "isCorrect": true, "rating": 4},
			{"question": "Q2", "userAnswer": "u2", "isCorrect": false, "rating": 2},
			{"question": "Q3", "userAnswer": "u3", "isCorrect": true, "rating": 5, "strengths": ["precise"]}
		]
	}`}
	uc := NewInterviewUsecase(store, chat)

	userID := uuid.NewString()
	created, err := uc.CreateSession(context.Background(), userID, validSetup())
	require.NoError(t, err)
	sessionID := created.Interview.ID.String()

	session, err := uc.GenerateFeedback(context.Background(), userID, sessionID, sampleTranscript())

	require.NoError(t, err)
	assert.Equal(t, float64(4), session.Rating)
	assert.Equal(t, "Good interview.", session.Summary)
	require.Len(t, session.Answers, 3)
	// missing strengths keys came back as [], the provided one survived
	assert.Equal(t, []string{}, []string(session.Answers[0].Strengths))
	assert.Equal(t, []string{}, []string(session.Answers[1].Strengths))
	assert.Equal(t, []string{"precise"}, []string(session.Answers[2].Strengths))
}

func TestGenerateFeedbackUnparsableOutputIsFatal(t *testing.T) {
	store := newFakeStore()
	chat := &fakeChat{reply: "something went wrong, no JSON here"}
	uc := NewInterviewUsecase(store, chat)

	userID := uuid.NewString()
	created, err := uc.CreateSession(context.Background(), userID, validSetup())
	require.NoError(t, err)
	// reset the question-generation reply; feedback now gets garbage
	chat.reply = "still not JSON"

	_, err = uc.GenerateFeedback(context.Background(), userID, created.Interview.ID.String(), sampleTranscript())

	assert.ErrorIs(t, err, ErrInvalidModelOutput)
	assert.NotErrorIs(t, err, ErrSaveFailed)
	assert.Empty(t, store.replaced, "no store write may happen for unparsable output")
}

func TestGenerateFeedbackSessionVanishedIsSaveFailed(t *testing.T) {
	store := newFakeStore()
	chat := &fakeChat{reply: `{"rating": 3, "summary": "ok", "strengths": [], "improvements": [], "questions": []}`}
	uc := NewInterviewUsecase(store, chat)

	userID := uuid.NewString()
	created, err := uc.CreateSession(context.Background(), userID, validSetup())
	require.NoError(t, err)

	// session disappears after the ownership check but before the write
	store.writeErr = gorm.ErrRecordNotFound

	_, err = uc.GenerateFeedback(context.Background(), userID, created.Interview.ID.String(), sampleTranscript())

	assert.ErrorIs(t, err, ErrSaveFailed)
	assert.NotErrorIs(t, err, ErrInvalidModelOutput)
}

func TestGenerateFeedbackForeignSessionIsNotFound(t *testing.T) {
	store := newFakeStore()
	chat := &fakeChat{reply: "[]"}
	uc := NewInterviewUsecase(store, chat)

	ownerID := uuid.NewString()
	created, err := uc.CreateSession(context.Background(), ownerID, validSetup())
	require.NoError(t, err)
	chat.calls = 0

	_, err = uc.GenerateFeedback(context.Background(), uuid.NewString(), created.Interview.ID.String(), sampleTranscript())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, chat.calls, "the LLM must not be called for a foreign session")
}

func TestGenerateFeedbackEmptyTranscript(t *testing.T) {
	uc := NewInterviewUsecase(newFakeStore(), &fakeChat{})
	_, err := uc.GenerateFeedback(context.Background(), uuid.NewString(), uuid.NewString(), nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGenerateFeedbackChatFailure(t *testing.T) {
	store := newFakeStore()
	chat := &fakeChat{reply: "[]"}
	uc := NewInterviewUsecase(store, chat)

	userID := uuid.NewString()
	created, err := uc.CreateSession(context.Background(), userID, validSetup())
	require.NoError(t, err)

	chat.err = errors.New("connection refused")
	_, err = uc.GenerateFeedback(context.Background(), userID, created.Interview.ID.String(), sampleTranscript())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidModelOutput)
	assert.Empty(t, store.replaced)
}

func TestDashboard(t *testing.T) {
	store := newFakeStore()
	chat := &fakeChat{reply: "[]"}
	uc := NewInterviewUsecase(store, chat)

	userID := uuid.NewString()
	created, err := uc.CreateSession(context.Background(), userID, validSetup())
	require.NoError(t, err)

	chat.reply = `{
		"rating": 4,
		"summary": "ok",
		"strengths": [],
		"improvements": [],
		"questions": [
			{"question": "Q1", "isCorrect": true, "rating": 4},
			{"question": "Q2", "isCorrect": false, "rating": 2}
		]
	}`
	_, err = uc.GenerateFeedback(context.Background(), userID, created.Interview.ID.String(), sampleTranscript())
	require.NoError(t, err)

	stats, err := uc.Dashboard(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalInterviewCount)
	assert.Equal(t, float64(4), stats.Rating)
	assert.Equal(t, float64(50), stats.Accuracy)
}
