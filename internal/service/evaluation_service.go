package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ai-interview-coach-backend/internal/config"
	"ai-interview-coach-backend/internal/llm"
	"ai-interview-coach-backend/internal/model"
)

// evaluationSchema constrains the evaluation response to the record shape.
var evaluationSchema = &llm.Schema{
	Type: "OBJECT",
	Properties: map[string]*llm.Schema{
		"correctness":                 {Type: "STRING"},
		"depth":                       {Type: "STRING"},
		"relevance":                   {Type: "STRING"},
		"score":                       {Type: "NUMBER"},
		"detailed_feedback":           {Type: "STRING"},
		"suggestions_for_improvement": {Type: "STRING"},
	},
	Required: []string{
		"correctness", "depth", "relevance", "score",
		"detailed_feedback", "suggestions_for_improvement",
	},
}

// EvaluationService scores candidate answers. EvaluateAnswer never fails
// past its boundary: every failure path yields a well-formed, degraded
// record.
type EvaluationService struct {
	gen    TextGenerator
	models config.GeminiModels
	logger *zap.Logger
}

// NewEvaluationService creates an evaluation service.
func NewEvaluationService(gen TextGenerator, models config.GeminiModels, logger *zap.Logger) *EvaluationService {
	return &EvaluationService{
		gen:    gen,
		models: models,
		logger: logger,
	}
}

// EvaluateAnswer requests a schema-constrained JSON evaluation of one
// answer and normalizes the result into an EvaluationRecord.
func (s *EvaluationService) EvaluateAnswer(ctx context.Context, role, experience, question, answer string) model.EvaluationRecord {
	prompt := fmt.Sprintf(
		"You are an AI Interview Coach specializing in %s roles with %s of experience. "+
			"Evaluate the following answer to the question '%s'. "+
			"Candidate's answer: '%s'. "+
			"Provide a structured JSON output with the following fields:\n"+
			"- 'correctness': A brief assessment (e.g., 'Correct', 'Partially Correct', 'Incorrect').\n"+
			"- 'depth': A brief assessment of depth (e.g., 'Shallow', 'Good', 'Excellent').\n"+
			"- 'relevance': A brief assessment of relevance (e.g., 'High', 'Medium', 'Low').\n"+
			"- 'score': An integer score from 0 to 10, where 0 is completely incorrect/irrelevant and 10 is perfect.\n"+
			"- 'detailed_feedback': Comprehensive, constructive feedback on the answer. This should be concise paragraphs.\n"+
			"- 'suggestions_for_improvement': Actionable advice for the candidate to improve. Use bullet points if applicable.\n\n"+
			"Ensure the output is a valid JSON object. Do not include any other text outside the JSON.",
		role, experience, question, answer)

	raw, err := s.gen.GenerateJSON(ctx, s.models.Eval, prompt, evaluationSchema)
	if err != nil || strings.TrimSpace(raw) == "" {
		s.logger.Warn("answer evaluation returned no usable response", zap.Error(err))
		return fallbackRecord(
			"Evaluation failed: No valid response from AI.",
			"Please try again.",
		)
	}

	raw = strings.TrimSpace(raw)

	var parsed struct {
		Correctness               string      `json:"correctness"`
		Depth                     string      `json:"depth"`
		Relevance                 string      `json:"relevance"`
		Score                     json.Number `json:"score"`
		DetailedFeedback          string      `json:"detailed_feedback"`
		SuggestionsForImprovement string      `json:"suggestions_for_improvement"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s.logger.Warn("answer evaluation produced malformed JSON", zap.Error(err))
		return fallbackRecord(
			fmt.Sprintf("Evaluation failed: Invalid JSON format from AI. Error: %v. Raw: %s...", err, truncate(raw, 200)),
			"The AI provided malformed feedback. Please check AI response generation.",
		)
	}

	// Pass string fields through verbatim; only the score is coerced here.
	// Absent strings stay empty, since "N/A" defaulting belongs to the
	// failure paths above.
	return model.EvaluationRecord{
		Correctness:               parsed.Correctness,
		Depth:                     parsed.Depth,
		Relevance:                 parsed.Relevance,
		Score:                     coerceScore(parsed.Score),
		DetailedFeedback:          parsed.DetailedFeedback,
		SuggestionsForImprovement: parsed.SuggestionsForImprovement,
	}
}

// coerceScore turns the model's numeric score into an int in [0, 10],
// defaulting to 0 when absent or non-numeric.
func coerceScore(n json.Number) int {
	if n == "" {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return clampScore(int(i))
	}
	if f, err := n.Float64(); err == nil {
		return clampScore(int(f))
	}
	return 0
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// fallbackRecord is the degraded all-"N/A" record used on every failure
// path.
func fallbackRecord(detail, suggestion string) model.EvaluationRecord {
	return model.EvaluationRecord{
		Correctness:               "N/A",
		Depth:                     "N/A",
		Relevance:                 "N/A",
		Score:                     0,
		DetailedFeedback:          detail,
		SuggestionsForImprovement: suggestion,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
