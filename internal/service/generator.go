package service

import (
	"context"

	"ai-interview-coach-backend/internal/llm"
	"ai-interview-coach-backend/internal/model"
)

// TextGenerator is the slice of the LLM client the services need. The
// production implementation is llm.GeminiClient; tests inject fakes.
type TextGenerator interface {
	GenerateText(ctx context.Context, modelName, prompt string) (string, error)
	GenerateChat(ctx context.Context, modelName string, history []llm.Content, prompt string) (string, error)
	GenerateJSON(ctx context.Context, modelName, prompt string, schema *llm.Schema) (string, error)
}

// historyContents converts speaker-tagged turns into the chat-history
// payload the generation API expects.
func historyContents(turns []model.Turn) []llm.Content {
	contents := make([]llm.Content, 0, len(turns))
	for _, t := range turns {
		contents = append(contents, llm.Content{
			Role:  string(t.Speaker),
			Parts: []llm.Part{{Text: t.Text}},
		})
	}
	return contents
}
