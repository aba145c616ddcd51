package session

import (
	"errors"
	"fmt"
	"time"
)

// Mode tags how a session came into existence.
type Mode string

const (
	// ModePractice sessions are created implicitly by the first saved answer.
	ModePractice Mode = "practice"
	// ModeVoice sessions were started together with a remote voice assistant.
	ModeVoice Mode = "voice"
	// ModeText sessions were started explicitly without an assistant.
	ModeText Mode = "text"
)

// ErrValidation is matched by every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a missing or blank required field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("%s is required", e.Fields[0])
	}
	return fmt.Sprintf("%v are required", e.Fields)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// QARecord is one answered question. Records are never modified after they
// are appended.
type QARecord struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

type Session struct {
	ID        string     `json:"sessionId"`
	Mode      Mode       `json:"mode"`
	CreatedAt time.Time  `json:"createdAt"`
	Records   []QARecord `json:"qas"`
}

// Len returns the number of stored answers.
func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// SaveResult is returned by Service.SaveAnswer.
type SaveResult struct {
	SessionID    string `json:"sessionId"`
	TotalAnswers int    `json:"totalAnswers"`
}

// AnswersResult is returned by Service.Answers.
type AnswersResult struct {
	SessionID    string     `json:"sessionId"`
	QAs          []QARecord `json:"qas"`
	TotalAnswers int        `json:"totalAnswers"`
}
