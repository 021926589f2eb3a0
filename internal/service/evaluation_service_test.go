package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEvaluationService_EvaluateAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a well-formed evaluation", func(t *testing.T) {
		gen := &fakeGenerator{jsonResp: `{
			"correctness": "Correct",
			"depth": "Good",
			"relevance": "High",
			"score": 8,
			"detailed_feedback": "Covers the essentials.",
			"suggestions_for_improvement": "* Add an example"
		}`}
		svc := NewEvaluationService(gen, testModels(), zap.NewNop())

		rec := svc.EvaluateAnswer(ctx, "Backend Engineer", "5 years", "What is a channel?", "A typed conduit.")

		assert.Equal(t, "Correct", rec.Correctness)
		assert.Equal(t, "Good", rec.Depth)
		assert.Equal(t, "High", rec.Relevance)
		assert.Equal(t, 8, rec.Score)
		assert.Equal(t, "Covers the essentials.", rec.DetailedFeedback)
		assert.Equal(t, "* Add an example", rec.SuggestionsForImprovement)
	})

	t.Run("prompt carries the question and answer", func(t *testing.T) {
		gen := &fakeGenerator{jsonResp: `{"score": 5}`}
		svc := NewEvaluationService(gen, testModels(), zap.NewNop())

		svc.EvaluateAnswer(ctx, "Backend Engineer", "5 years", "What is a channel?", "A typed conduit.")

		require.Len(t, gen.jsonPrompts, 1)
		assert.Contains(t, gen.jsonPrompts[0], "'What is a channel?'")
		assert.Contains(t, gen.jsonPrompts[0], "'A typed conduit.'")
		require.Len(t, gen.jsonSchemas, 1)
		assert.Contains(t, gen.jsonSchemas[0].Required, "score")
		assert.Contains(t, gen.jsonSchemas[0].Required, "detailed_feedback")
	})

	t.Run("generation failure yields the degraded record", func(t *testing.T) {
		gen := &fakeGenerator{jsonErr: assert.AnError}
		svc := NewEvaluationService(gen, testModels(), zap.NewNop())

		rec := svc.EvaluateAnswer(ctx, "Backend Engineer", "5 years", "Q", "A")

		assert.Equal(t, "N/A", rec.Correctness)
		assert.Equal(t, "N/A", rec.Depth)
		assert.Equal(t, "N/A", rec.Relevance)
		assert.Equal(t, 0, rec.Score)
		assert.Equal(t, "Evaluation failed: No valid response from AI.", rec.DetailedFeedback)
		assert.Equal(t, "Please try again.", rec.SuggestionsForImprovement)
	})

	t.Run("blank response yields the degraded record", func(t *testing.T) {
		gen := &fakeGenerator{jsonResp: "  \n"}
		svc := NewEvaluationService(gen, testModels(), zap.NewNop())

		rec := svc.EvaluateAnswer(ctx, "Backend Engineer", "5 years", "Q", "A")

		assert.Equal(t, "N/A", rec.Correctness)
		assert.Equal(t, "Evaluation failed: No valid response from AI.", rec.DetailedFeedback)
	})

	t.Run("malformed JSON embeds the raw prefix in the feedback", func(t *testing.T) {
		gen := &fakeGenerator{jsonResp: "not json at all"}
		svc := NewEvaluationService(gen, testModels(), zap.NewNop())

		rec := svc.EvaluateAnswer(ctx, "Backend Engineer", "5 years", "Q", "A")

		assert.Equal(t, "N/A", rec.Correctness)
		assert.Equal(t, 0, rec.Score)
		assert.Contains(t, rec.DetailedFeedback, "Invalid JSON format from AI")
		assert.Contains(t, rec.DetailedFeedback, "not json at all")
		assert.Contains(t, rec.SuggestionsForImprovement, "malformed feedback")
	})

	t.Run("malformed JSON raw prefix is truncated", func(t *testing.T) {
		long := "{" + strings.Repeat("x", 500)
		gen := &fakeGenerator{jsonResp: long}
		svc := NewEvaluationService(gen, testModels(), zap.NewNop())

		rec := svc.EvaluateAnswer(ctx, "Backend Engineer", "5 years", "Q", "A")

		assert.NotContains(t, rec.DetailedFeedback, strings.Repeat("x", 300))
		assert.Contains(t, rec.DetailedFeedback, "Raw: {")
	})

	t.Run("fractional score truncates to int", func(t *testing.T) {
		gen := &fakeGenerator{jsonResp: `{"correctness": "Correct", "score": 7.6}`}
		svc := NewEvaluationService(gen, testModels(), zap.NewNop())

		rec := svc.EvaluateAnswer(ctx, "Backend Engineer", "5 years", "Q", "A")

		assert.Equal(t, 7, rec.Score)
	})

	t.Run("out-of-range scores clamp to the valid range", func(t *testing.T) {
		svc := NewEvaluationService(&fakeGenerator{jsonResp: `{"score": 12}`}, testModels(), zap.NewNop())
		rec := svc.EvaluateAnswer(ctx, "Backend Engineer", "5 years", "Q", "A")
		assert.Equal(t, 10, rec.Score)

		svc = NewEvaluationService(&fakeGenerator{jsonResp: `{"score": -3}`}, testModels(), zap.NewNop())
		rec = svc.EvaluateAnswer(ctx, "Backend Engineer", "5 years", "Q", "A")
		assert.Equal(t, 0, rec.Score)
	})

	t.Run("missing score defaults to zero", func(t *testing.T) {
		gen := &fakeGenerator{jsonResp: `{"correctness": "Correct"}`}
		svc := NewEvaluationService(gen, testModels(), zap.NewNop())

		rec := svc.EvaluateAnswer(ctx, "Backend Engineer", "5 years", "Q", "A")

		assert.Equal(t, 0, rec.Score)
		assert.Equal(t, "Correct", rec.Correctness)
	})
}
