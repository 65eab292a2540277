package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject pulls the first balanced JSON object out of a model
// response that may wrap it in markdown fences or surrounding prose. Returns
// an error when no well-formed object can be recovered; callers treat that as
// a normal failure branch, not a crash.
func ExtractJSONObject(response string) (string, error) {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	if start == -1 {
		return "", fmt.Errorf("no JSON object in response: %s", Truncate(response, 200))
	}

	end := findMatchingBrace(response, start)
	if end == -1 {
		return "", fmt.Errorf("unbalanced JSON object in response: %s", Truncate(response, 200))
	}

	candidate := response[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", fmt.Errorf("invalid JSON object in response: %s", Truncate(candidate, 200))
	}
	return candidate, nil
}

// findMatchingBrace finds the closing brace for the opening brace at start,
// honoring string literals and escape sequences.
func findMatchingBrace(s string, start int) int {
	if start >= len(s) || s[start] != '{' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// Truncate caps s at max bytes; enrichment errors are stored on the review
// row and must stay bounded.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
