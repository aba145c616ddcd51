package vapi

import (
	"strings"
	"testing"
)

func TestBuildAssistantConfigNumbersQuestions(t *testing.T) {
	cfg := BuildAssistantConfig("  Ada  ", []string{"Tell me about yourself", " Why this role? "}, Options{})

	if cfg.CandidateName != "Ada" {
		t.Fatalf("expected trimmed candidate name, got %q", cfg.CandidateName)
	}
	if cfg.Name != "Interview - Ada" {
		t.Fatalf("unexpected assistant name: %q", cfg.Name)
	}
	if !strings.Contains(cfg.FirstMessage, "Ada") || !strings.Contains(cfg.FirstMessage, "2 questions") {
		t.Fatalf("greeting must mention name and question count: %q", cfg.FirstMessage)
	}

	first := strings.Index(cfg.SystemPrompt, "1. Tell me about yourself\n")
	second := strings.Index(cfg.SystemPrompt, "2. Why this role?\n")
	if first == -1 || second == -1 || first > second {
		t.Fatalf("questions must be numbered in order, got prompt:\n%s", cfg.SystemPrompt)
	}
	if !strings.Contains(cfg.SystemPrompt, "one question at a time") {
		t.Fatalf("expected behavioural instructions in prompt")
	}
}

func TestBuildAssistantConfigWithoutQuestions(t *testing.T) {
	cfg := BuildAssistantConfig("Ada", nil, Options{})

	if strings.Contains(cfg.SystemPrompt, "1. ") {
		t.Fatalf("expected no numbered lines, got prompt:\n%s", cfg.SystemPrompt)
	}
	if !strings.Contains(cfg.FirstMessage, "0 questions") {
		t.Fatalf("unexpected greeting: %q", cfg.FirstMessage)
	}
}

func TestBuildAssistantConfigSingularGreeting(t *testing.T) {
	cfg := BuildAssistantConfig("Ada", []string{"Only one"}, Options{})
	if !strings.Contains(cfg.FirstMessage, "1 question for you") {
		t.Fatalf("unexpected greeting: %q", cfg.FirstMessage)
	}
}

func TestOptionsDefaults(t *testing.T) {
	t.Parallel()

	opts := Options{}.withDefaults()
	if opts.Model != defaultModel || opts.VoiceID != defaultVoiceID {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if opts.MaxDurationSeconds != defaultMaxDuration || opts.SilenceTimeoutSeconds != defaultSilenceTimeout {
		t.Fatalf("unexpected limits: %+v", opts)
	}
	if len(opts.EndCallPhrases) != len(defaultEndCallPhrases) {
		t.Fatalf("unexpected end call phrases: %v", opts.EndCallPhrases)
	}

	opts.EndCallPhrases[0] = "changed"
	if defaultEndCallPhrases[0] == "changed" {
		t.Fatal("defaults must not share backing storage")
	}

	custom := Options{Model: "gpt-4o-mini", MaxDurationSeconds: 600, EndCallPhrases: []string{"bye"}}.withDefaults()
	if custom.Model != "gpt-4o-mini" || custom.MaxDurationSeconds != 600 || custom.EndCallPhrases[0] != "bye" {
		t.Fatalf("custom values must win: %+v", custom)
	}
}

func TestAssistantRequestShape(t *testing.T) {
	cfg := BuildAssistantConfig("Ada", []string{"Q1"}, Options{ServerURL: "https://coach.example/api/vapi/webhook"})
	req := cfg.request()

	if len(req.Model.Messages) != 1 || req.Model.Messages[0].Role != "system" {
		t.Fatalf("expected a single system message, got %+v", req.Model.Messages)
	}
	if req.Model.Messages[0].Content != cfg.SystemPrompt {
		t.Fatalf("system message must carry the prompt")
	}
	if req.ServerURL != "https://coach.example/api/vapi/webhook" {
		t.Fatalf("unexpected server url: %q", req.ServerURL)
	}
	if req.Metadata["questionCount"] != 1 {
		t.Fatalf("unexpected metadata: %+v", req.Metadata)
	}
}
