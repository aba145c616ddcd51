package vapi

import (
	"fmt"
	"strings"
)

const (
	defaultModelProvider  = "openai"
	defaultModel          = "gpt-4o"
	defaultTemperature    = 0.7
	defaultVoiceProvider  = "11labs"
	defaultVoiceID        = "21m00Tcm4TlvDq8ikWAM"
	defaultMaxDuration    = 1800
	defaultSilenceTimeout = 30
)

var defaultEndCallPhrases = []string{
	"goodbye",
	"end interview",
	"that concludes our interview",
}

// Options holds the voice and call parameters shared by every assistant.
// Zero values fall back to the defaults above.
type Options struct {
	ModelProvider         string   `mapstructure:"model-provider"`
	Model                 string   `mapstructure:"model"`
	Temperature           float64  `mapstructure:"temperature"`
	VoiceProvider         string   `mapstructure:"voice-provider"`
	VoiceID               string   `mapstructure:"voice-id"`
	MaxDurationSeconds    int      `mapstructure:"max-duration-seconds"`
	SilenceTimeoutSeconds int      `mapstructure:"silence-timeout-seconds"`
	EndCallPhrases        []string `mapstructure:"end-call-phrases"`
	// ServerURL is where the provider posts webhook events for the call.
	ServerURL string `mapstructure:"server-url"`
}

func (o Options) withDefaults() Options {
	if o.ModelProvider == "" {
		o.ModelProvider = defaultModelProvider
	}
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.Temperature == 0 {
		o.Temperature = defaultTemperature
	}
	if o.VoiceProvider == "" {
		o.VoiceProvider = defaultVoiceProvider
	}
	if o.VoiceID == "" {
		o.VoiceID = defaultVoiceID
	}
	if o.MaxDurationSeconds <= 0 {
		o.MaxDurationSeconds = defaultMaxDuration
	}
	if o.SilenceTimeoutSeconds <= 0 {
		o.SilenceTimeoutSeconds = defaultSilenceTimeout
	}
	if len(o.EndCallPhrases) == 0 {
		o.EndCallPhrases = append([]string(nil), defaultEndCallPhrases...)
	}
	return o
}

// AssistantConfig is built per interview and handed to the provider. It is
// not stored locally.
type AssistantConfig struct {
	CandidateName string
	Questions     []string
	Name          string
	FirstMessage  string
	SystemPrompt  string
	Options       Options
}

// BuildAssistantConfig derives the greeting and the numbered system prompt.
// An empty question list is allowed and produces no numbered lines.
func BuildAssistantConfig(candidateName string, questions []string, opts Options) *AssistantConfig {
	candidateName = strings.TrimSpace(candidateName)

	return &AssistantConfig{
		CandidateName: candidateName,
		Questions:     questions,
		Name:          fmt.Sprintf("Interview - %s", candidateName),
		FirstMessage:  buildGreeting(candidateName, len(questions)),
		SystemPrompt:  buildSystemPrompt(candidateName, questions),
		Options:       opts.withDefaults(),
	}
}

func buildGreeting(candidateName string, count int) string {
	noun := "questions"
	if count == 1 {
		noun = "question"
	}
	return fmt.Sprintf(
		"Hello %s! Welcome to your practice interview. I have %d %s for you today. Take your time with each answer. Are you ready to begin?",
		candidateName, count, noun,
	)
}

func buildSystemPrompt(candidateName string, questions []string) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("You are a professional interviewer conducting a practice interview with %s.\n\n", candidateName))
	prompt.WriteString("Ask the following questions in order:\n")
	for i, question := range questions {
		prompt.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.TrimSpace(question)))
	}
	prompt.WriteString("\nInstructions:\n")
	prompt.WriteString("- Ask one question at a time and wait for the complete answer.\n")
	prompt.WriteString("- Acknowledge each answer briefly and neutrally before moving on.\n")
	prompt.WriteString("- Do not skip, reorder or invent questions.\n")
	prompt.WriteString("- After the last question, thank the candidate and say \"that concludes our interview\".\n")

	return prompt.String()
}

type createAssistantRequest struct {
	Name                  string         `json:"name"`
	FirstMessage          string         `json:"firstMessage"`
	Model                 modelRequest   `json:"model"`
	Voice                 voiceRequest   `json:"voice"`
	MaxDurationSeconds    int            `json:"maxDurationSeconds"`
	SilenceTimeoutSeconds int            `json:"silenceTimeoutSeconds"`
	EndCallPhrases        []string       `json:"endCallPhrases"`
	ServerURL             string         `json:"serverUrl,omitempty"`
	Metadata              map[string]any `json:"metadata,omitempty"`
}

type modelRequest struct {
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type voiceRequest struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId"`
}

func (c *AssistantConfig) request() *createAssistantRequest {
	return &createAssistantRequest{
		Name:         c.Name,
		FirstMessage: c.FirstMessage,
		Model: modelRequest{
			Provider:    c.Options.ModelProvider,
			Model:       c.Options.Model,
			Temperature: c.Options.Temperature,
			Messages:    []message{{Role: "system", Content: c.SystemPrompt}},
		},
		Voice: voiceRequest{
			Provider: c.Options.VoiceProvider,
			VoiceID:  c.Options.VoiceID,
		},
		MaxDurationSeconds:    c.Options.MaxDurationSeconds,
		SilenceTimeoutSeconds: c.Options.SilenceTimeoutSeconds,
		EndCallPhrases:        c.Options.EndCallPhrases,
		ServerURL:             c.Options.ServerURL,
		Metadata: map[string]any{
			"candidateName": c.CandidateName,
			"questionCount": len(c.Questions),
		},
	}
}
