package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ai-interview-coach-backend/internal/config"
	"ai-interview-coach-backend/internal/model"
)

// Fallback question text returned when generation fails. Callers treat
// these as valid (if degraded) questions, never as errors, so the
// interview always advances.
const (
	firstQuestionFallback = "Failed to generate the first question. Please try again later."
	nextQuestionFallback  = "Failed to generate the next question. Please try again later."
)

// QuestionService produces the first and each subsequent interview question.
type QuestionService struct {
	gen    TextGenerator
	models config.GeminiModels
	logger *zap.Logger
}

// NewQuestionService creates a question service.
func NewQuestionService(gen TextGenerator, models config.GeminiModels, logger *zap.Logger) *QuestionService {
	return &QuestionService{
		gen:    gen,
		models: models,
		logger: logger,
	}
}

// FirstQuestion generates the opening question for a role and experience
// level. On any generation error it returns a fixed fallback string.
func (s *QuestionService) FirstQuestion(ctx context.Context, role, experience string) string {
	prompt := fmt.Sprintf(
		"You are an AI Interview Coach specializing in %s roles. "+
			"The candidate has %s of experience. "+
			"Start the interview by asking a relevant first question. "+
			"Keep the question concise and professional. Do not include any greetings or conversational fillers, just the question itself. "+
			"Example: Tell me about your experience with Python development. "+
			"Candidate: %s, Experience: %s. "+
			"First question:",
		role, experience, role, experience)

	text, err := s.gen.GenerateText(ctx, s.models.Question, prompt)
	if err != nil {
		s.logger.Warn("first question generation failed", zap.Error(err))
		return firstQuestionFallback
	}

	return strings.TrimSpace(text)
}

// NextQuestion generates the next question from the conversation so far.
// History must alternate model/candidate turns in chronological order and
// end with the candidate's newest answer. Same fallback policy as
// FirstQuestion.
func (s *QuestionService) NextQuestion(ctx context.Context, role, experience string, history []model.Turn) string {
	instruction := fmt.Sprintf(
		"You are an AI Interview Coach specializing in %s roles. "+
			"The candidate has %s of experience. "+
			"Based on the conversation so far, ask a relevant and challenging next question. "+
			"Do not greet the candidate or provide any feedback on their previous answer. "+
			"Just ask the next question directly. If the interview seems complete, ask a concluding question or suggest ending."+
			"\n\nWhat is the next question?",
		role, experience)

	text, err := s.gen.GenerateChat(ctx, s.models.Question, historyContents(history), instruction)
	if err != nil {
		s.logger.Warn("next question generation failed",
			zap.Int("history_turns", len(history)),
			zap.Error(err),
		)
		return nextQuestionFallback
	}

	return strings.TrimSpace(text)
}
