package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// It may normalize the value in place.
type SchemaValidator[T any] func(*T) error

// ExtractJSON extracts a JSON object of type T from raw LLM text output.
// Vendors wrap JSON in code fences and prose, so only the object span is parsed.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	cleaned := StripCodeFences(raw)

	candidates := make([]string, 0, 2)
	if greedy := greedyJSONSpan(cleaned); greedy != "" {
		candidates = append(candidates, greedy)
	}
	if balanced := balancedJSONBlock(cleaned); balanced != "" && (len(candidates) == 0 || balanced != candidates[0]) {
		candidates = append(candidates, balanced)
	}
	if len(candidates) == 0 {
		return zero, &ParseError{Raw: raw, Err: errors.New("no JSON object found in response")}
	}

	var lastErr error
	for _, candidate := range candidates {
		var result T
		if err := json.Unmarshal([]byte(candidate), &result); err != nil {
			lastErr = err
			continue
		}
		if validator != nil {
			if err := validator(&result); err != nil {
				return zero, &ParseError{Raw: raw, Err: errors.Join(errors.New("validation failed"), err)}
			}
		}
		return result, nil
	}

	return zero, &ParseError{Raw: raw, Err: lastErr}
}

// StripCodeFences removes leading and trailing markdown fences (```json / ```).
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// drop the language tag on the opening fence line
		if nl := strings.IndexByte(s, '\n'); nl != -1 && !strings.ContainsAny(s[:nl], "{[") {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "json")
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// greedyJSONSpan returns everything from the first '{' to the last '}'.
func greedyJSONSpan(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// balancedJSONBlock finds the first balanced { ... } block in the text.
func balancedJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
