// Package sanitize coerces parsed-but-untrusted LLM output into fully-typed
// records. Missing or mistyped fields become safe defaults ("", false, 0,
// []), so the persistence layer never sees a type mismatch.
package sanitize

import (
	"github.com/codewithlokesh/intrvu-backend/internal/dto"
	"github.com/tidwall/gjson"
)

// Feedback sanitizes the feedback object field by field. Nested question
// entries are sanitized independently, so one malformed entry never
// invalidates the rest.
func Feedback(doc gjson.Result) dto.FeedbackRecord {
	rec := dto.FeedbackRecord{
		Rating:       Num(doc.Get("rating")),
		Summary:      Str(doc.Get("summary")),
		Strengths:    StringList(doc.Get("strengths")),
		Improvements: StringList(doc.Get("improvements")),
		Questions:    []dto.QuestionFeedback{},
	}
	// gjson wraps non-array values in a one-element array, so check first.
	if qs := doc.Get("questions"); qs.IsArray() {
		for _, q := range qs.Array() {
			rec.Questions = append(rec.Questions, questionFeedback(q))
		}
	}
	return rec
}

func questionFeedback(q gjson.Result) dto.QuestionFeedback {
	return dto.QuestionFeedback{
		Question:      Str(q.Get("question")),
		CorrectAnswer: Str(q.Get("correctAnswer")),
		UserAnswer:    Str(q.Get("userAnswer")),
		IsCorrect:     Bool(q.Get("isCorrect")),
		Rating:        int(Num(q.Get("rating"))),
		Feedback:      Str(q.Get("feedback")),
		Strengths:     StringList(q.Get("strengths")),
		Improvements:  StringList(q.Get("improvements")),
	}
}

// Questions sanitizes the generated-question array returned at session setup.
func Questions(doc gjson.Result) []dto.GeneratedQuestion {
	out := []dto.GeneratedQuestion{}
	if !doc.IsArray() {
		return out
	}
	for _, q := range doc.Array() {
		out = append(out, dto.GeneratedQuestion{
			Question:      Str(q.Get("question")),
			CorrectAnswer: Str(q.Get("correctAnswer")),
		})
	}
	return out
}

// Str passes a string value through and maps anything else to "".
func Str(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.Str
	}
	return ""
}

// Bool passes a boolean through and maps anything else to false.
func Bool(v gjson.Result) bool {
	return v.Type == gjson.True
}

// Num passes a number through and maps anything else to 0.
func Num(v gjson.Result) float64 {
	if v.Type == gjson.Number {
		return v.Num
	}
	return 0
}

// StringList passes a list through, keeping only its string-typed elements,
// and maps anything else to an empty list.
func StringList(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	for _, item := range v.Array() {
		if item.Type == gjson.String {
			out = append(out, item.Str)
		}
	}
	return out
}
