package webhook

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/logger"
	"github.com/spigell/interview-coach/internal/utils"
)

const (
	FunctionGetInterviewQuestion = "get_interview_question"
	FunctionSaveAnswer           = "save_answer"
)

// ErrUnknownFunction is returned for function names without a handler.
var ErrUnknownFunction = errors.New("unknown function")

// The canned question is not session aware.
var cannedQuestion = map[string]string{
	"question": "Can you tell me about a challenging project you worked on and how you handled it?",
	"followUp": "What would you do differently if you faced a similar situation again?",
}

// SaveAnswerParams are the parameters the assistant passes to save_answer.
type SaveAnswerParams struct {
	SessionID string `mapstructure:"sessionId"`
	Question  string `mapstructure:"question"`
	Answer    string `mapstructure:"answer"`
}

// Functions answers function calls made by the assistant during a call.
type Functions struct {
	logger    *zap.Logger
	maxLogLen int
}

func NewFunctions(log *zap.Logger, maxLogLen int) *Functions {
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}
	return &Functions{
		logger:    logger.WithFields(log, zap.String("component", "webhook-functions")),
		maxLogLen: maxLogLen,
	}
}

// Call runs the named function and returns the value for the "result" key of
// the response.
func (f *Functions) Call(_ context.Context, name string, params map[string]any) (any, error) {
	switch name {
	case FunctionGetInterviewQuestion:
		f.logger.Info("serving canned interview question")
		return cannedQuestion, nil
	case FunctionSaveAnswer:
		var p SaveAnswerParams
		if err := mapstructure.Decode(params, &p); err != nil {
			// Parameters are only logged; a decode failure must not fail the call.
			f.logger.Warn("decoding save_answer parameters", zap.Error(err))
		}
		logger.WithSession(f.logger, p.SessionID).Info("save_answer called",
			zap.String("question", utils.TruncateForLog(p.Question, f.maxLogLen)),
			zap.String("answer", utils.TruncateForLog(p.Answer, f.maxLogLen)),
		)
		return map[string]bool{"success": true}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
}
