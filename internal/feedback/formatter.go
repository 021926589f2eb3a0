// Package feedback turns loosely formatted model output into the structured
// records the rest of the system stores and serves. Everything here is pure
// string processing: no I/O, no failure modes. The section parsing is
// deliberately isolated behind this package so that a drift in the model's
// formatting conventions touches only these functions and their fixtures.
package feedback

import (
	"regexp"
	"strings"

	"ai-interview-coach-backend/internal/model"
)

var (
	// headerRe matches the five bolded section headers the summary prompt
	// asks for, e.g. "**Strengths:**", case-insensitively.
	headerRe = regexp.MustCompile(`(?i)\*\*(Overall Assessment|Strengths|Weaknesses|Areas for Improvement|General Recommendation):\*\*`)

	// leadInRe strips the boilerplate phrase the model tends to open with
	// before the first real section.
	leadInRe = regexp.MustCompile(`(?i)^okay, based on the provided transcript and evaluations, here's an overall assessment of the candidate's performance:`)

	// bulletRe splits list content on line-leading "*" or "-" markers.
	bulletRe = regexp.MustCompile(`(?m)^\s*[*-]\s*`)
)

// Format parses a free-text overall-feedback response into a
// StructuredFeedback. It is total: unrecognized input yields the all-empty
// record, and sections absent from the text stay at their zero value. List
// fields are always non-nil so they serialize as [] rather than null.
func Format(raw string) model.StructuredFeedback {
	fb := model.StructuredFeedback{
		Strengths:           []string{},
		Weaknesses:          []string{},
		AreasForImprovement: []string{},
	}

	locs := headerRe.FindAllStringSubmatchIndex(raw, -1)

	// Text before the first recognized header is a candidate overall
	// assessment, once the boilerplate lead-in is stripped.
	preamble := raw
	if len(locs) > 0 {
		preamble = raw[:locs[0][0]]
	}
	preamble = strings.TrimSpace(leadInRe.ReplaceAllString(strings.TrimSpace(preamble), ""))
	if preamble != "" {
		fb.OverallAssessment = preamble
	}

	for i, loc := range locs {
		name := strings.ToLower(raw[loc[2]:loc[3]])
		name = strings.ReplaceAll(name, " ", "_")

		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		content := strings.TrimSpace(raw[loc[1]:end])

		switch name {
		case "overall_assessment":
			// Keep preamble text if both are present.
			if fb.OverallAssessment != "" && content != "" {
				fb.OverallAssessment = fb.OverallAssessment + "\n\n" + content
			} else if content != "" {
				fb.OverallAssessment = content
			}
		case "strengths":
			fb.Strengths = splitBullets(content)
		case "weaknesses":
			fb.Weaknesses = splitBullets(content)
		case "areas_for_improvement":
			fb.AreasForImprovement = splitBullets(content)
		case "general_recommendation":
			fb.GeneralRecommendation = content
		}
	}

	return fb
}

// splitBullets breaks bulleted section content into trimmed items,
// preserving order and dropping empties.
func splitBullets(content string) []string {
	items := []string{}
	for _, part := range bulletRe.Split(content, -1) {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}
