// Package prompt builds the system/user prompt pairs sent to the interview
// LLM. Pure string assembly, no side effects.
package prompt

import (
	"fmt"
	"strings"
)

const (
	MinQuestions = 4
	MaxQuestions = 12
)

type SetupParams struct {
	JobPosition     string
	TechStack       []string
	DifficultyLevel string
	ExperienceLevel string
	InterviewType   string
	InterviewMode   string
	JobDescription  string
	Duration        int // minutes
}

type Utterance struct {
	Role    string
	Content string
}

// QuestionCount maps the requested interview duration to the number of
// questions to generate, clamped to [MinQuestions, MaxQuestions].
func QuestionCount(durationMinutes int) int {
	if durationMinutes < MinQuestions {
		return MinQuestions
	}
	if durationMinutes > MaxQuestions {
		return MaxQuestions
	}
	return durationMinutes
}

func spokenMode(mode string) bool {
	return mode == "voice" || mode == "video"
}

// Questions returns the prompt pair for question generation.
func Questions(p SetupParams) (system, user string) {
	count := QuestionCount(p.Duration)

	var sys strings.Builder
	fmt.Fprintf(&sys, `You are an expert technical interviewer.
- Generate exactly %d interview questions.
- Tailor them to the candidate's job position, tech stack, and difficulty level.
- Respond in JSON format as an array like:
[
    {"question": "...", "correctAnswer": "..."},
    {"question": "...", "correctAnswer": "..."}
]
- Keep questions concise and relevant.
- Avoid any extra text outside the JSON array.`, count)
	if spokenMode(p.InterviewMode) {
		sys.WriteString("\n- Questions will be read aloud: no code snippets, diagrams, or math notation.")
	}

	user = fmt.Sprintf(`Job Position: %s
Tech Stack: %s
Difficulty Level: %s
Experience Level: %s
Interview Type: %s
Mode: %s
Job Description: %s

Generate the %d best interview questions.`,
		p.JobPosition,
		strings.Join(p.TechStack, ", "),
		p.DifficultyLevel,
		p.ExperienceLevel,
		p.InterviewType,
		p.InterviewMode,
		orNA(p.JobDescription),
		count,
	)

	return sys.String(), user
}

// Feedback returns the prompt pair for post-interview feedback generation.
// The transcript is rendered as one role-tagged text block.
func Feedback(p SetupParams, transcript []Utterance) (system, user string) {
	system = `You are an expert interview evaluator reviewing a finished mock interview.
Return ONE JSON object with exactly this schema and nothing else:
{
  "rating": <overall number 1-5>,
  "summary": "<short overall summary>",
  "strengths": ["..."],
  "improvements": ["..."],
  "questions": [
    {
      "question": "...",
      "correctAnswer": "...",
      "userAnswer": "...",
      "isCorrect": true,
      "rating": <number 1-5>,
      "feedback": "...",
      "strengths": ["..."],
      "improvements": ["..."]
    }
  ]
}
Every field must be present and typed even when the candidate did not answer:
use "" for strings, false for booleans, 0 for numbers and [] for lists.
Never omit a field and never use null.`

	user = fmt.Sprintf(`Job Position: %s
Tech Stack: %s
Difficulty Level: %s
Experience Level: %s
Interview Type: %s

Interview transcript:
%s

Evaluate the candidate's performance.`,
		p.JobPosition,
		strings.Join(p.TechStack, ", "),
		p.DifficultyLevel,
		p.ExperienceLevel,
		p.InterviewType,
		RenderTranscript(transcript),
	)

	return system, user
}

// RenderTranscript flattens an ordered list of role-tagged utterances into a
// single text block.
func RenderTranscript(transcript []Utterance) string {
	var b strings.Builder
	for _, u := range transcript {
		fmt.Fprintf(&b, "%s: %s\n", u.Role, u.Content)
	}
	return b.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
