package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ai-interview-coach-backend/internal/config"
)

const (
	noAnswersFeedback       = "No questions were answered during this interview."
	summaryFailureFeedback  = "Failed to generate overall feedback due to an internal error."
	summaryLeadInstruction  = "You are an AI Interview Coach. Provide comprehensive overall feedback for an interview based on the following role, experience, and the questions asked, user's answers, and your previous evaluation for each answer.\n\n"
	summaryCloseInstruction = "**Overall Feedback Request:**\n" +
		"Based on the above, provide an overall assessment of the candidate's performance. Focus on:\n" +
		"- Strengths and weaknesses across the interview.\n" +
		"- Areas for improvement.\n" +
		"- General recommendation (e.g., 'Strong candidate', 'Needs more practice in X', 'Good foundational knowledge but lacks Y').\n" +
		"Keep the feedback concise but comprehensive, using clear bullet points or paragraphs for readability. " +
		"Structure the response with these bolded markdown headings: **Overall Assessment:**, **Strengths:**, **Weaknesses:**, **Areas for Improvement:**, **General Recommendation:** (e.g., **Strengths:**, - Point)."
)

// QAExchange is one completed question/answer/evaluation triple, with the
// evaluation already flattened to a single descriptive string.
type QAExchange struct {
	Question    string
	Answer      string
	EvalSummary string
}

// SummaryService aggregates a finished interview into one holistic
// free-text assessment. Parsing that text into structure belongs to the
// feedback package.
type SummaryService struct {
	gen    TextGenerator
	models config.GeminiModels
	logger *zap.Logger
}

// NewSummaryService creates a summary service.
func NewSummaryService(gen TextGenerator, models config.GeminiModels, logger *zap.Logger) *SummaryService {
	return &SummaryService{
		gen:    gen,
		models: models,
		logger: logger,
	}
}

// OverallFeedback generates the end-of-session assessment text. With no
// completed exchanges it short-circuits to a fixed string without calling
// the model. On generation failure it returns a fixed failure string; the
// caller formats whatever comes back.
func (s *SummaryService) OverallFeedback(ctx context.Context, role, experience string, exchanges []QAExchange) string {
	if len(exchanges) == 0 {
		return noAnswersFeedback
	}

	var b strings.Builder
	b.WriteString(summaryLeadInstruction)
	b.WriteString("**Interview Context:**\n")
	fmt.Fprintf(&b, "- Role: %s\n", role)
	fmt.Fprintf(&b, "- Experience: %s\n\n", experience)
	b.WriteString("**Interview Transcript and Evaluations:**\n")

	for i, ex := range exchanges {
		fmt.Fprintf(&b, "--- Question %d ---\n", i+1)
		fmt.Fprintf(&b, "Question: %s\n", ex.Question)
		fmt.Fprintf(&b, "User Answer: %s\n", ex.Answer)
		fmt.Fprintf(&b, "Evaluation: %s\n\n", ex.EvalSummary)
	}

	b.WriteString(summaryCloseInstruction)

	text, err := s.gen.GenerateText(ctx, s.models.Summary, b.String())
	if err != nil {
		s.logger.Warn("overall feedback generation failed",
			zap.Int("exchanges", len(exchanges)),
			zap.Error(err),
		)
		return summaryFailureFeedback
	}

	return text
}
