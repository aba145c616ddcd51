package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/logger"
	"github.com/spigell/interview-coach/internal/webhook"
)

type createAssistantRequest struct {
	CandidateName string          `json:"candidateName"`
	Questions     json.RawMessage `json:"questions"`
}

type createAssistantResponse struct {
	AssistantID   string `json:"assistantId"`
	AssistantName string `json:"assistantName"`
}

func (s *Server) handleCreateAssistant(w http.ResponseWriter, r *http.Request) {
	var req createAssistantRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var questions []string
	if err := json.Unmarshal(req.Questions, &questions); err != nil || questions == nil {
		writeError(w, http.StatusBadRequest, "questions must be an array")
		return
	}
	if strings.TrimSpace(req.CandidateName) == "" {
		writeError(w, http.StatusBadRequest, "candidateName is required")
		return
	}

	assistant, err := s.deps.Provisioner.Create(r.Context(), req.CandidateName, questions)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, createAssistantResponse{
		AssistantID:   assistant.ID,
		AssistantName: assistant.Name,
	})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read body")
		return
	}

	event, err := webhook.Parse(body)
	if err != nil {
		s.logger.Warn("rejecting webhook", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.deps.Dispatcher.Dispatch(r.Context(), event)
	if err != nil {
		if errors.Is(err, webhook.ErrUnknownFunction) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown function: %s", event.FunctionName))
			return
		}
		s.logger.Error("webhook dispatch failed",
			append(logger.CallFields("", event.CallID), zap.Error(err))...,
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
