// Package response writes JSON, plain-text and structured error replies.
package response

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// ErrorBody is the body of every error reply.
type ErrorBody struct {
	Status    string `json:"status"`
	Code      string `json:"code"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

var codeNames = map[int]string{
	http.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
}

// CodeName returns the upper-case name of an HTTP status, e.g. "NOT_FOUND".
func CodeName(status int) string {
	if name, ok := codeNames[status]; ok {
		return name
	}
	text := http.StatusText(status)
	if text == "" {
		return "UNKNOWN"
	}
	text = strings.ReplaceAll(text, "-", " ")
	return strings.ToUpper(strings.Join(strings.Fields(text), "_"))
}

// Error writes an ErrorBody with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{
		Status:    "error",
		Code:      CodeName(status),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Message:   message,
	})
}

// JSON writes v as a JSON body.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Text writes a plain-text body.
func Text(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}
