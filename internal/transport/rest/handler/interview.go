package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"ai-interview-coach-backend/internal/model"
	"ai-interview-coach-backend/internal/service"
	"ai-interview-coach-backend/internal/transport/rest/middleware"
)

// InterviewHandler handles the interview flow endpoints.
type InterviewHandler struct {
	interviewSvc *service.InterviewService
}

// NewInterviewHandler creates a new interview handler.
func NewInterviewHandler(interviewSvc *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewSvc: interviewSvc}
}

// Start handles POST /interview/start
func (h *InterviewHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req model.StartInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Role == "" || req.Experience == "" {
		writeError(w, http.StatusBadRequest, "role and experience are required")
		return
	}

	iv, err := h.interviewSvc.Start(
		r.Context(),
		middleware.GetUserUID(r.Context()),
		middleware.GetUserEmail(r.Context()),
		req.Role,
		req.Experience,
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.StartInterviewResponse{
		Message:       "Interview started successfully",
		InterviewID:   iv.ID,
		FirstQuestion: iv.Questions[0].Text,
	})
}

// Answer handles POST /interview/answer
func (h *InterviewHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.InterviewID == "" {
		writeError(w, http.StatusBadRequest, "interview_id is required")
		return
	}

	result, err := h.interviewSvc.Answer(
		r.Context(),
		middleware.GetUserUID(r.Context()),
		req.InterviewID,
		req.QuestionText,
		req.AnswerText,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInterviewNotFound):
			writeError(w, http.StatusNotFound, "Interview not found.")
		case errors.Is(err, service.ErrNotOwner), errors.Is(err, service.ErrInterviewNotActive):
			writeError(w, http.StatusForbidden, "Unauthorized or inactive interview.")
		case errors.Is(err, service.ErrConflict):
			writeError(w, http.StatusConflict, "Another answer is being processed for this interview.")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, model.SubmitAnswerResponse{
		Message:            "Answer submitted and next question generated successfully",
		NextQuestion:       result.NextQuestion,
		EvaluationFeedback: result.Evaluation,
		DisplayFeedback:    result.DisplayFeedback,
	})
}

// End handles POST /interview/end?interview_id=...
func (h *InterviewHandler) End(w http.ResponseWriter, r *http.Request) {
	interviewID := r.URL.Query().Get("interview_id")
	if interviewID == "" {
		writeError(w, http.StatusBadRequest, "interview_id is required")
		return
	}

	fb, err := h.interviewSvc.End(r.Context(), middleware.GetUserUID(r.Context()), interviewID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInterviewNotFound):
			writeError(w, http.StatusNotFound, "Interview not found.")
		case errors.Is(err, service.ErrNotOwner):
			writeError(w, http.StatusForbidden, "Not authorized to end this interview.")
		case errors.Is(err, service.ErrInterviewNotActive):
			writeError(w, http.StatusBadRequest, "Interview is not active or already ended.")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, model.EndInterviewResponse{
		Message:         "Interview ended successfully.",
		OverallFeedback: fb,
	})
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
