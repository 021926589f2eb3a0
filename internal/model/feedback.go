package model

// EvaluationRecord is the structured per-answer feedback produced by the
// evaluation model. All six fields are always present; on a failed
// generation or parse every field takes an explicit fallback value, so the
// record is never absent, only degraded.
type EvaluationRecord struct {
	Correctness               string `json:"correctness" bson:"correctness"`
	Depth                     string `json:"depth" bson:"depth"`
	Relevance                 string `json:"relevance" bson:"relevance"`
	Score                     int    `json:"score" bson:"score"`
	DetailedFeedback          string `json:"detailed_feedback" bson:"detailed_feedback"`
	SuggestionsForImprovement string `json:"suggestions_for_improvement" bson:"suggestions_for_improvement"`
}

// StructuredFeedback is the five-section end-of-session summary parsed from
// one free-text model response. Sections the model did not emit stay at
// their zero value; list fields are never nil.
type StructuredFeedback struct {
	OverallAssessment     string   `json:"overall_assessment" bson:"overall_assessment"`
	Strengths             []string `json:"strengths" bson:"strengths"`
	Weaknesses            []string `json:"weaknesses" bson:"weaknesses"`
	AreasForImprovement   []string `json:"areas_for_improvement" bson:"areas_for_improvement"`
	GeneralRecommendation string   `json:"general_recommendation" bson:"general_recommendation"`
}
