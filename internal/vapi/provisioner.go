package vapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/logger"
)

// ErrInvalidInput is returned for a blank candidate name or a blank question.
var ErrInvalidInput = errors.New("invalid assistant input")

type assistantCreator interface {
	CreateAssistant(ctx context.Context, cfg *AssistantConfig) (*Assistant, error)
}

// Provisioner turns an interview request into a remote assistant.
type Provisioner struct {
	creator    assistantCreator
	privateKey string
	options    Options
	logger     *zap.Logger
}

// NewProvisioner wires a provisioner around a Vapi client for the given key.
// The key is validated on every call, so a misconfigured server still starts
// and reports the problem per request.
func NewProvisioner(client *Client, privateKey string, opts Options, log *zap.Logger) *Provisioner {
	return &Provisioner{
		creator:    client,
		privateKey: privateKey,
		options:    opts,
		logger:     logger.WithFields(log, zap.String("component", "provisioner")),
	}
}

// Create builds the assistant configuration and submits it once.
func (p *Provisioner) Create(ctx context.Context, candidateName string, questions []string) (*Assistant, error) {
	if err := ValidatePrivateKey(p.privateKey); err != nil {
		p.logger.Error("refusing to create assistant", zap.Error(err))
		return nil, err
	}

	if strings.TrimSpace(candidateName) == "" {
		return nil, fmt.Errorf("%w: candidateName is required", ErrInvalidInput)
	}
	for i, q := range questions {
		if strings.TrimSpace(q) == "" {
			return nil, fmt.Errorf("%w: question %d is empty", ErrInvalidInput, i+1)
		}
	}

	cfg := BuildAssistantConfig(candidateName, questions, p.options)

	p.logger.Info("creating assistant",
		zap.String("assistant_name", cfg.Name),
		zap.Int("questions", len(questions)),
		zap.String("model", cfg.Options.Model),
	)

	assistant, err := p.creator.CreateAssistant(ctx, cfg)
	if err != nil {
		p.logger.Error("creating assistant failed", zap.Error(err))
		return nil, err
	}

	p.logger.Info("assistant created",
		zap.String(logger.FieldAssistantID, assistant.ID),
		zap.String("assistant_name", assistant.Name),
	)

	return assistant, nil
}
