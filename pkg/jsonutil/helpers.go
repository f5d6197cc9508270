// Package jsonutil provides small JSON helpers for astview.
//
// They are used when reporting undecodable parse-service responses,
// where the raw body is quoted back to the user in shortened form.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"strings"
)

// CompactJSON minifies a JSON string by removing whitespace.
// Returns the original string if it's not valid JSON.
func CompactJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}

// TruncateString truncates a string to maxLen characters, adding "..."
// if truncation occurred.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Snippet returns a one-line, shortened rendition of a response body for
// error messages.
func Snippet(body []byte, maxLen int) string {
	s := CompactJSON(strings.TrimSpace(string(body)))
	s = strings.Join(strings.Fields(s), " ")
	return TruncateString(s, maxLen)
}
