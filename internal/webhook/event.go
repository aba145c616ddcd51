package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is the provider message type.
type Kind string

const (
	KindStatusUpdate Kind = "status-update"
	KindTranscript   Kind = "transcript"
	KindFunctionCall Kind = "function-call"
	KindCallStart    Kind = "call-start"
	KindCallEnd      Kind = "call-end"
)

var (
	// ErrMissingMessage is returned when the envelope has no message object.
	ErrMissingMessage = errors.New("missing message")
	// ErrMalformed is returned when the body is not a JSON envelope.
	ErrMalformed = errors.New("malformed webhook payload")
)

// Event is one provider notification. Only the fields relevant to its Kind
// are populated.
type Event struct {
	Kind   Kind
	CallID string
	Status string

	Role           string
	Transcript     string
	TranscriptType string

	FunctionName string
	Parameters   map[string]any

	EndedReason string
}

type envelope struct {
	Message *rawMessage `json:"message"`
}

type rawMessage struct {
	Type string `json:"type"`
	Call *struct {
		ID string `json:"id"`
	} `json:"call"`
	Status         string `json:"status"`
	Role           string `json:"role"`
	Transcript     string `json:"transcript"`
	TranscriptType string `json:"transcriptType"`
	FunctionCall   *struct {
		Name       string         `json:"name"`
		Parameters map[string]any `json:"parameters"`
	} `json:"functionCall"`
	EndedReason string `json:"endedReason"`
}

// Parse decodes a {"message": {...}} envelope.
func Parse(body []byte) (*Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Message == nil {
		return nil, ErrMissingMessage
	}

	msg := env.Message
	event := &Event{
		Kind:           Kind(msg.Type),
		Status:         msg.Status,
		Role:           msg.Role,
		Transcript:     msg.Transcript,
		TranscriptType: msg.TranscriptType,
		EndedReason:    msg.EndedReason,
	}
	if msg.Call != nil {
		event.CallID = msg.Call.ID
	}
	if msg.FunctionCall != nil {
		event.FunctionName = msg.FunctionCall.Name
		event.Parameters = msg.FunctionCall.Parameters
	}

	return event, nil
}
