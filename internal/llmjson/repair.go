// Package llmjson turns the loosely formatted text an LLM returns into valid
// JSON. Strict parsing is tried first; if that fails a best-effort structural
// repair pass runs before one re-parse. Text that survives neither is
// rejected rather than guessed at.
package llmjson

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrUnparsable means no JSON payload could be recovered from the text, even
// after repair.
var ErrUnparsable = errors.New("no parsable JSON payload in model output")

// Array extracts a JSON array from raw model output and returns it as valid
// JSON text.
func Array(raw string) (string, error) {
	return salvage(raw, '[', ']')
}

// Object extracts a JSON object from raw model output and returns it as
// valid JSON text.
func Object(raw string) (string, error) {
	return salvage(raw, '{', '}')
}

func salvage(raw string, open, closer byte) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrUnparsable
	}

	if json.Valid([]byte(s)) && s[0] == open {
		return s, nil
	}

	s = stripFences(s)
	s = extract(s, open, closer)
	if s == "" {
		return "", ErrUnparsable
	}
	if json.Valid([]byte(s)) {
		return s, nil
	}

	s = repair(s)
	if json.Valid([]byte(s)) && s[0] == open {
		return s, nil
	}
	return "", ErrUnparsable
}

// stripFences drops a surrounding markdown code fence, if any.
func stripFences(s string) string {
	start := strings.Index(s, "```")
	if start == -1 {
		return s
	}
	inner := s[start+3:]
	if nl := strings.IndexByte(inner, '\n'); nl != -1 {
		// skip a language tag like ```json
		if end := strings.Index(inner[nl:], "```"); end != -1 {
			return inner[nl : nl+end]
		}
		return inner[nl:]
	}
	return s
}

// extract returns the text from the first top-level opening delimiter to its
// matching close. Braces inside quoted strings are ignored. If the payload is
// truncated and never balances, everything from the opener onward is returned
// so the repair pass can close it.
func extract(s string, open, closer byte) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			if depth == 0 {
				start = i
			}
			depth++
		case ch == closer && depth > 0:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	if start != -1 {
		return s[start:]
	}
	return ""
}

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKeyRe   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_-]*)\s*:`)
)

// repair applies tolerant fixes for the malformations small models actually
// produce: trailing commas, unquoted keys, and truncated output.
func repair(s string) string {
	s = unquotedKeyRe.ReplaceAllString(s, `$1"$2":`)
	s = trailingCommaRe.ReplaceAllString(s, `$1`)
	return closeTruncated(s)
}

// closeTruncated balances a payload whose tail was cut off mid-generation:
// closes an open string, trims a dangling comma or colon, then appends the
// missing closing delimiters in stack order.
func closeTruncated(s string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			stack = append(stack, '}')
		case ch == '[':
			stack = append(stack, ']')
		case ch == '}' || ch == ']':
			if len(stack) > 0 && stack[len(stack)-1] == ch {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if inString {
		s += `"`
	}
	s = strings.TrimRight(s, " \t\r\n")
	if n := len(s); n > 0 && (s[n-1] == ',' || s[n-1] == ':') {
		if s[n-1] == ':' {
			s += `""`
		} else {
			s = s[:n-1]
		}
	}
	for i := len(stack) - 1; i >= 0; i-- {
		s += string(stack[i])
	}
	return s
}
