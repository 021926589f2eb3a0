package feedback

import (
	"fmt"
	"regexp"
	"strings"

	"ai-interview-coach-backend/internal/model"
)

var starMarkerRe = regexp.MustCompile(`\*\s*`)

// ReflowBullets normalizes the suggestions text so every bullet-marked item
// starts on its own line. The model sometimes runs bullets together
// ("* Item1 * Item2" or "Item1. * Item2"); markdown rendering needs a
// newline before each marker.
func ReflowBullets(s string) string {
	if s == "" {
		return s
	}
	s = strings.TrimSpace(starMarkerRe.ReplaceAllString(s, "\n* "))
	if !strings.HasPrefix(s, "*") {
		s = "* " + s
	}
	s = strings.ReplaceAll(s, "\n* * ", "\n* ")
	s = strings.ReplaceAll(s, "\n\n*", "\n*")
	s = strings.ReplaceAll(s, ". *", ".\n*")
	return s
}

// RenderEvaluation builds the display-ready multi-line string returned
// alongside the structured record on every answer.
func RenderEvaluation(rec model.EvaluationRecord) string {
	return strings.TrimSpace(fmt.Sprintf(
		"**Correctness:** %s\n"+
			"**Depth:** %s\n"+
			"**Relevance:** %s\n"+
			"**Score:** %d/10\n\n"+
			"**Detailed Feedback:**\n%s\n\n"+
			"**Suggestions for Improvement:**\n%s",
		rec.Correctness, rec.Depth, rec.Relevance, rec.Score,
		rec.DetailedFeedback, ReflowBullets(rec.SuggestionsForImprovement)))
}

// FlattenEvaluation renders a record as the compact transcript line fed
// into the overall-feedback prompt.
func FlattenEvaluation(rec model.EvaluationRecord) string {
	return strings.TrimSpace(fmt.Sprintf(
		"Correctness: %s, Depth: %s, Relevance: %s, Score: %d/10.\n"+
			"Detailed Feedback: %s\n"+
			"Suggestions: %s",
		rec.Correctness, rec.Depth, rec.Relevance, rec.Score,
		rec.DetailedFeedback, rec.SuggestionsForImprovement))
}
