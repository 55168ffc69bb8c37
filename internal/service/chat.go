package service

import "context"

// ChatOptions carries the fixed sampling parameters for one completion call.
type ChatOptions struct {
	Temperature float64
	MaxTokens   int
}

// ChatModel is a hosted text-generation endpoint, treated as an opaque and
// possibly unreliable text source. Implementations make a single attempt per
// call; retrying is not their job.
type ChatModel interface {
	// Complete sends a system/user prompt pair and returns the first
	// completion's trimmed text. An answer with no content yields "" and
	// a nil error; only transport or API failures return an error.
	Complete(ctx context.Context, system, user string, opts ChatOptions) (string, error)
}
