package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/logger"
	"github.com/spigell/interview-coach/internal/report"
	"github.com/spigell/interview-coach/internal/session"
)

type startRequest struct {
	SessionID     string          `json:"sessionId"`
	CandidateName string          `json:"candidateName"`
	Questions     json.RawMessage `json:"questions"`
}

type startResponse struct {
	SessionID     string       `json:"sessionId"`
	Mode          session.Mode `json:"mode"`
	AssistantID   string       `json:"assistantId,omitempty"`
	AssistantName string       `json:"assistantName,omitempty"`
}

// handleStart opens a session. With a candidate name it also provisions a
// voice assistant, and the session is only created once that succeeded.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var questions []string
	if len(req.Questions) > 0 && string(req.Questions) != "null" {
		if err := json.Unmarshal(req.Questions, &questions); err != nil {
			writeError(w, http.StatusBadRequest, "questions must be an array of strings")
			return
		}
	}

	resp := startResponse{Mode: session.ModeText}

	if strings.TrimSpace(req.CandidateName) != "" {
		assistant, err := s.deps.Provisioner.Create(r.Context(), req.CandidateName, questions)
		if err != nil {
			s.logger.Error("provisioning assistant for session failed", zap.Error(err))
			writeError(w, errorStatus(err), err.Error())
			return
		}
		resp.Mode = session.ModeVoice
		resp.AssistantID = assistant.ID
		resp.AssistantName = assistant.Name
	}

	started, err := s.deps.Sessions.Start(r.Context(), req.SessionID, resp.Mode)
	if err != nil {
		s.logger.Error("starting session failed", zap.Error(err))
		writeError(w, errorStatus(err), err.Error())
		return
	}

	resp.SessionID = started.ID
	resp.Mode = started.Mode
	writeJSON(w, http.StatusOK, resp)
}

type saveAnswerRequest struct {
	SessionID string `json:"sessionId"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}

type saveAnswerResponse struct {
	Saved        bool   `json:"saved"`
	SessionID    string `json:"sessionId"`
	TotalAnswers int    `json:"totalAnswers"`
}

func (s *Server) handleSaveAnswer(w http.ResponseWriter, r *http.Request) {
	var req saveAnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.deps.Sessions.SaveAnswer(r.Context(), req.SessionID, req.Question, req.Answer)
	if err != nil {
		status := errorStatus(err)
		if status >= http.StatusInternalServerError {
			logger.WithSession(s.logger, req.SessionID).Error("saving answer failed", zap.Error(err))
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, saveAnswerResponse{
		Saved:        true,
		SessionID:    res.SessionID,
		TotalAnswers: res.TotalAnswers,
	})
}

func (s *Server) handleAnswers(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Sessions.Answers(r.Context(), r.URL.Query().Get("sessionId"))
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleExport always answers with a document, empty sessions included.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")

	res, err := s.deps.Sessions.Answers(r.Context(), sessionID)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	sessionID = res.SessionID
	doc, err := report.Render(sessionID, res.QAs, time.Now().UTC())
	if err != nil {
		logger.WithSession(s.logger, sessionID).Error("rendering report failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(sessionID)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
