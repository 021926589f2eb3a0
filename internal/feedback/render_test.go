package feedback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-interview-coach-backend/internal/model"
)

func TestReflowBullets(t *testing.T) {
	t.Run("empty input stays empty", func(t *testing.T) {
		assert.Equal(t, "", ReflowBullets(""))
	})

	t.Run("run-together bullets land on their own lines", func(t *testing.T) {
		out := ReflowBullets("* Use interfaces * Add context propagation")

		assert.True(t, strings.HasPrefix(out, "* "))
		assert.Equal(t, 2, strings.Count(out, "* "))
		assert.Contains(t, out, "\n* Add context propagation")
	})

	t.Run("plain text gains a leading bullet", func(t *testing.T) {
		assert.Equal(t, "* Read up on goroutine leaks", ReflowBullets("Read up on goroutine leaks"))
	})

	t.Run("sentence followed by inline bullet", func(t *testing.T) {
		out := ReflowBullets("Practice more. * Review channels")

		assert.True(t, strings.HasPrefix(out, "* Practice more."))
		assert.Contains(t, out, "\n* Review channels")
	})
}

func TestRenderEvaluation(t *testing.T) {
	rec := model.EvaluationRecord{
		Correctness:               "Correct",
		Depth:                     "Good",
		Relevance:                 "High",
		Score:                     8,
		DetailedFeedback:          "A thorough answer covering the main points.",
		SuggestionsForImprovement: "* Mention trade-offs * Give an example",
	}

	out := RenderEvaluation(rec)

	assert.Contains(t, out, "**Correctness:** Correct")
	assert.Contains(t, out, "**Depth:** Good")
	assert.Contains(t, out, "**Relevance:** High")
	assert.Contains(t, out, "**Score:** 8/10")
	assert.Contains(t, out, "**Detailed Feedback:**\nA thorough answer covering the main points.")
	// Suggestions are reflowed so each bullet starts a line.
	assert.Contains(t, out, "\n* Give an example")
}

func TestFlattenEvaluation(t *testing.T) {
	rec := model.EvaluationRecord{
		Correctness:      "Partially Correct",
		Depth:            "Shallow",
		Relevance:        "Medium",
		Score:            4,
		DetailedFeedback: "Missed the main failure mode.",
	}

	out := FlattenEvaluation(rec)

	assert.Contains(t, out, "Correctness: Partially Correct, Depth: Shallow, Relevance: Medium, Score: 4/10.")
	assert.Contains(t, out, "Detailed Feedback: Missed the main failure mode.")
}
