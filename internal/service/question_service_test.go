package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ai-interview-coach-backend/internal/config"
	"ai-interview-coach-backend/internal/model"
)

func testModels() config.GeminiModels {
	return config.GeminiModels{Question: "q-model", Eval: "e-model", Summary: "s-model"}
}

func TestQuestionService_FirstQuestion(t *testing.T) {
	t.Run("returns the trimmed generated question", func(t *testing.T) {
		gen := &fakeGenerator{textResp: "  Tell me about your Go experience.\n"}
		svc := NewQuestionService(gen, testModels(), zap.NewNop())

		q := svc.FirstQuestion(context.Background(), "Backend Engineer", "5 years")

		assert.Equal(t, "Tell me about your Go experience.", q)
		require.Len(t, gen.textPrompts, 1)
		assert.Contains(t, gen.textPrompts[0], "Backend Engineer")
		assert.Contains(t, gen.textPrompts[0], "5 years")
		assert.Contains(t, gen.textPrompts[0], "First question:")
	})

	t.Run("falls back to a fixed question on generation failure", func(t *testing.T) {
		gen := &fakeGenerator{textErr: assert.AnError}
		svc := NewQuestionService(gen, testModels(), zap.NewNop())

		q := svc.FirstQuestion(context.Background(), "Backend Engineer", "5 years")

		assert.Equal(t, "Failed to generate the first question. Please try again later.", q)
	})
}

func TestQuestionService_NextQuestion(t *testing.T) {
	history := []model.Turn{
		{Speaker: model.SpeakerAI, Text: "What is a goroutine?"},
		{Speaker: model.SpeakerCandidate, Text: "A lightweight thread managed by the runtime."},
	}

	t.Run("passes the conversation history with generation roles", func(t *testing.T) {
		gen := &fakeGenerator{chatResp: "How does the scheduler multiplex goroutines?"}
		svc := NewQuestionService(gen, testModels(), zap.NewNop())

		q := svc.NextQuestion(context.Background(), "Backend Engineer", "5 years", history)

		assert.Equal(t, "How does the scheduler multiplex goroutines?", q)
		require.Len(t, gen.chatHistory, 1)
		sent := gen.chatHistory[0]
		require.Len(t, sent, 2)
		assert.Equal(t, "model", sent[0].Role)
		assert.Equal(t, "What is a goroutine?", sent[0].Parts[0].Text)
		assert.Equal(t, "user", sent[1].Role)
	})

	t.Run("instruction asks for the next question only", func(t *testing.T) {
		gen := &fakeGenerator{chatResp: "Next."}
		svc := NewQuestionService(gen, testModels(), zap.NewNop())

		svc.NextQuestion(context.Background(), "Backend Engineer", "5 years", history)

		require.Len(t, gen.chatPrompts, 1)
		assert.Contains(t, gen.chatPrompts[0], "What is the next question?")
		assert.Contains(t, gen.chatPrompts[0], "Do not greet the candidate")
	})

	t.Run("falls back to a fixed question on generation failure", func(t *testing.T) {
		gen := &fakeGenerator{chatErr: assert.AnError}
		svc := NewQuestionService(gen, testModels(), zap.NewNop())

		q := svc.NextQuestion(context.Background(), "Backend Engineer", "5 years", history)

		assert.Equal(t, "Failed to generate the next question. Please try again later.", q)
	})
}
