package webhook

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/logger"
	"github.com/spigell/interview-coach/internal/utils"
)

const defaultMaxLogLength = 200

// Handler processes one kind of provider event.
type Handler interface {
	Kind() Kind
	Handle(ctx context.Context, event *Event) (any, error)
}

// Received is the acknowledgement body for events that produce no result.
type Received struct {
	Received bool `json:"received"`
}

var ack = Received{Received: true}

// Dispatcher routes events to handlers by kind. It holds no call state.
type Dispatcher struct {
	handlers map[Kind]Handler
	logger   *zap.Logger
}

// NewDispatcher registers the built-in handlers for every known kind.
func NewDispatcher(functions *Functions, log *zap.Logger, maxLogLen int) *Dispatcher {
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}
	log = logger.WithFields(log, zap.String("component", "webhook"))

	d := &Dispatcher{handlers: make(map[Kind]Handler), logger: log}
	d.Register(&statusHandler{logger: log})
	d.Register(&transcriptHandler{logger: log, maxLogLen: maxLogLen})
	d.Register(&functionCallHandler{functions: functions})
	d.Register(&lifecycleHandler{kind: KindCallStart, logger: log})
	d.Register(&lifecycleHandler{kind: KindCallEnd, logger: log})

	log.Debug("webhook handlers registered", zap.Strings("kinds", d.Kinds()))
	return d
}

// Register adds or replaces the handler for its kind.
func (d *Dispatcher) Register(h Handler) {
	d.handlers[h.Kind()] = h
}

// Kinds lists the registered kinds in a stable order.
func (d *Dispatcher) Kinds() []string {
	kinds := make([]string, 0, len(d.handlers))
	for kind := range d.handlers {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	return kinds
}

// Dispatch returns the response body for the event. Unknown kinds are
// acknowledged; only handler errors (such as ErrUnknownFunction) are returned.
func (d *Dispatcher) Dispatch(ctx context.Context, event *Event) (any, error) {
	h, ok := d.handlers[event.Kind]
	if !ok {
		d.logger.Warn("unknown webhook type", zap.String("type", string(event.Kind)))
		return ack, nil
	}

	result, err := h.Handle(ctx, event)
	if err != nil {
		d.logger.Warn("webhook handler failed",
			zap.String("type", string(event.Kind)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s: %w", event.Kind, err)
	}

	return result, nil
}

type statusHandler struct {
	logger *zap.Logger
}

func (h *statusHandler) Kind() Kind { return KindStatusUpdate }

func (h *statusHandler) Handle(_ context.Context, event *Event) (any, error) {
	h.logger.Info("call status update",
		append(logger.CallFields("", event.CallID), zap.String("status", event.Status))...,
	)
	return ack, nil
}

type transcriptHandler struct {
	logger    *zap.Logger
	maxLogLen int
}

func (h *transcriptHandler) Kind() Kind { return KindTranscript }

func (h *transcriptHandler) Handle(_ context.Context, event *Event) (any, error) {
	fields := append(logger.CallFields("", event.CallID),
		zap.String("role", event.Role),
		zap.String("text", utils.TruncateForLog(event.Transcript, h.maxLogLen)),
	)
	if event.TranscriptType != "" {
		fields = append(fields, zap.String("transcript_type", event.TranscriptType))
	}

	h.logger.Info("transcript", fields...)
	return ack, nil
}

type functionCallHandler struct {
	functions *Functions
}

func (h *functionCallHandler) Kind() Kind { return KindFunctionCall }

func (h *functionCallHandler) Handle(ctx context.Context, event *Event) (any, error) {
	result, err := h.functions.Call(ctx, event.FunctionName, event.Parameters)
	if err != nil {
		return nil, err
	}
	return map[string]any{"result": result}, nil
}

type lifecycleHandler struct {
	kind   Kind
	logger *zap.Logger
}

func (h *lifecycleHandler) Kind() Kind { return h.kind }

func (h *lifecycleHandler) Handle(_ context.Context, event *Event) (any, error) {
	fields := logger.CallFields("", event.CallID)

	switch h.kind {
	case KindCallStart:
		h.logger.Info("call started", fields...)
	case KindCallEnd:
		if event.EndedReason != "" {
			fields = append(fields, zap.String("ended_reason", event.EndedReason))
		}
		// Final transcript persistence would hook in here; nothing is stored.
		h.logger.Info("call ended", fields...)
	}

	return ack, nil
}
