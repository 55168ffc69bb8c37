package dto

import "github.com/codewithlokesh/intrvu-backend/internal/model"

type InterviewSetupRequest struct {
	InterviewType     string   `json:"interview_type"`
	DifficultyLevel   string   `json:"difficulty_level"`
	Duration          int      `json:"duration"` // minutes
	InterviewMode     string   `json:"interview_mode"`
	ExperienceLevel   string   `json:"experience_level"`
	JobPosition       string   `json:"job_position"`
	JobDescription    string   `json:"job_description"`
	TechStack         []string `json:"tech_stack"`
	TargetCompanySize string   `json:"target_company_size"`
}

// GeneratedQuestion is produced by the LLM at session setup and handed to the
// live-interview step. It is never stored on its own.
type GeneratedQuestion struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
}

type InterviewCreated struct {
	Interview *model.InterviewSession `json:"interview"`
	Questions []GeneratedQuestion     `json:"questions"`
}

type TranscriptMessage struct {
	Role      string `json:"role"` // "assistant" or "user"
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type FeedbackRequest struct {
	Transcript []TranscriptMessage `json:"transcript"`
}

// QuestionFeedback mirrors one entry of the "questions" array the model is
// asked to return. JSON tags match the prompt schema exactly.
type QuestionFeedback struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correctAnswer"`
	UserAnswer    string   `json:"userAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
	Rating        int      `json:"rating"`
	Feedback      string   `json:"feedback"`
	Strengths     []string `json:"strengths"`
	Improvements  []string `json:"improvements"`
}

type DashboardStats struct {
	TotalInterviewCount int64                    `json:"totalInterviewCount"`
	Rating              float64                  `json:"rating"`
	Accuracy            float64                  `json:"accuracy"`
	RecentInterviews    []model.InterviewSession `json:"recentInterviews"`
}

// FeedbackRecord is the fully-typed result of sanitizing the model's feedback
// object. Every field is guaranteed present and well-typed before it reaches
// the persistence layer.
type FeedbackRecord struct {
	Rating       float64            `json:"rating"`
	Summary      string             `json:"summary"`
	Strengths    []string           `json:"strengths"`
	Improvements []string           `json:"improvements"`
	Questions    []QuestionFeedback `json:"questions"`
}
