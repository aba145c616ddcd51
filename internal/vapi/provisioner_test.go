package vapi

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubCreator struct {
	assistant *Assistant
	err       error
	calls     int
	last      *AssistantConfig
}

func (s *stubCreator) CreateAssistant(_ context.Context, cfg *AssistantConfig) (*Assistant, error) {
	s.calls++
	s.last = cfg
	return s.assistant, s.err
}

func newTestProvisioner(key string, creator assistantCreator, log *zap.Logger) *Provisioner {
	return &Provisioner{creator: creator, privateKey: key, logger: log}
}

func TestProvisionerCreate(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	stub := &stubCreator{assistant: &Assistant{ID: "asst_1", Name: "Interview - Ada"}}
	p := newTestProvisioner("sk_live_abc", stub, zap.New(core))

	got, err := p.Create(context.Background(), "Ada", []string{"Q1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "asst_1" {
		t.Fatalf("unexpected assistant: %+v", got)
	}
	if stub.calls != 1 || stub.last.Options.Model != defaultModel {
		t.Fatalf("expected a single call with defaults, got %d calls", stub.calls)
	}

	created := observed.FilterMessage("assistant created").All()
	if len(created) != 1 || created[0].ContextMap()["assistant_id"] != "asst_1" {
		t.Fatalf("expected assistant created log, got %+v", observed.All())
	}
}

func TestProvisionerConfigurationError(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "short", "not a key at all"} {
		stub := &stubCreator{}
		p := newTestProvisioner(key, stub, zap.NewNop())

		_, err := p.Create(context.Background(), "Ada", []string{"Q1"})
		var cerr *ConfigurationError
		if !errors.As(err, &cerr) {
			t.Fatalf("key %q: expected ConfigurationError, got %v", key, err)
		}
		if stub.calls != 0 {
			t.Fatalf("key %q: provider must not be called", key)
		}
	}
}

func TestProvisionerInvalidInput(t *testing.T) {
	stub := &stubCreator{}
	p := newTestProvisioner("sk_live_abc", stub, zap.NewNop())

	if _, err := p.Create(context.Background(), " ", []string{"Q1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := p.Create(context.Background(), "Ada", []string{"Q1", ""}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank question, got %v", err)
	}
	if stub.calls != 0 {
		t.Fatalf("provider must not be called for invalid input")
	}
}

func TestProvisionerPropagatesProviderError(t *testing.T) {
	upstream := &ProviderError{Op: "create assistant", StatusCode: 500, Body: "boom"}
	stub := &stubCreator{err: upstream}
	p := newTestProvisioner("sk_live_abc", stub, zap.NewNop())

	_, err := p.Create(context.Background(), "Ada", nil)
	if !errors.Is(err, upstream) {
		t.Fatalf("expected provider error to propagate, got %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", stub.calls)
	}
}
