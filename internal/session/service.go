package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/logger"
)

// Service validates requests and records answers in the injected Store.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.WithFields(log, zap.String("component", "session")),
		now:    time.Now,
	}
}

// Start registers a session explicitly. A blank id gets a generated one;
// starting an existing session returns it unchanged.
func (s *Service) Start(ctx context.Context, sessionID string, mode Mode) (*Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if mode == "" {
		mode = ModeText
	}

	created, err := s.store.Create(ctx, sessionID, mode)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	logger.WithSession(s.logger, sessionID).Info("session started", zap.String("mode", string(created.Mode)))
	return created, nil
}

// SaveAnswer appends a question/answer pair stamped with the server clock.
func (s *Service) SaveAnswer(ctx context.Context, sessionID, question, answer string) (*SaveResult, error) {
	sessionID = strings.TrimSpace(sessionID)

	var missing []string
	if sessionID == "" {
		missing = append(missing, "sessionId")
	}
	if strings.TrimSpace(question) == "" {
		missing = append(missing, "question")
	}
	if strings.TrimSpace(answer) == "" {
		missing = append(missing, "answer")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	total, err := s.store.Append(ctx, sessionID, QARecord{
		Question:  question,
		Answer:    answer,
		Timestamp: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("append answer: %w", err)
	}

	logger.WithSession(s.logger, sessionID).Debug("answer saved", zap.Int("total_answers", total))
	return &SaveResult{SessionID: sessionID, TotalAnswers: total}, nil
}

// Answers returns the session history. Unknown sessions yield an empty list.
func (s *Service) Answers(ctx context.Context, sessionID string) (*AnswersResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, &ValidationError{Fields: []string{"sessionId"}}
	}

	existing, _, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	qas := []QARecord{}
	if existing.Len() > 0 {
		qas = existing.Records
	}

	return &AnswersResult{SessionID: sessionID, QAs: qas, TotalAnswers: len(qas)}, nil
}
