package model

import "time"

// TranscriptEntry is a single utterance stored on the interview document.
// Questions carry FromAI=true, candidate answers FromAI=false.
type TranscriptEntry struct {
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	FromAI    bool      `json:"from_ai" bson:"from_ai"`
}

// EvaluationEntry records one answered question together with its feedback.
// Entry i corresponds to Questions[i] and Answers[i].
type EvaluationEntry struct {
	Question  string           `json:"question" bson:"question"`
	Answer    string           `json:"answer" bson:"answer"`
	Feedback  EvaluationRecord `json:"feedback" bson:"feedback"`
	Timestamp time.Time        `json:"timestamp" bson:"timestamp"`
}

// Interview is one mock-interview session document. While the session is
// active there is always exactly one more question than answers (the
// pending, unanswered question at the tail).
type Interview struct {
	ID              string              `json:"id" bson:"_id,omitempty"`
	UserUID         string              `json:"user_uid" bson:"user_uid"`
	UserEmail       string              `json:"user_email" bson:"user_email"`
	Role            string              `json:"role" bson:"role"`
	Experience      string              `json:"experience" bson:"experience"`
	Questions       []TranscriptEntry   `json:"questions" bson:"questions"`
	Answers         []TranscriptEntry   `json:"answers" bson:"answers"`
	Evaluation      []EvaluationEntry   `json:"evaluation" bson:"evaluation"`
	IsActive        bool                `json:"is_active" bson:"is_active"`
	OverallFeedback *StructuredFeedback `json:"overall_feedback,omitempty" bson:"overall_feedback,omitempty"`
	// Version guards the read-modify-write append cycle; every append and
	// finish increments it, and appends condition on the value they read.
	// Kept in the JSON form so cached copies round-trip it.
	Version   int64      `json:"version" bson:"version"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty" bson:"ended_at,omitempty"`
}

// StartInterviewRequest is the request body for POST /interview/start.
type StartInterviewRequest struct {
	Role       string `json:"role"`
	Experience string `json:"experience"`
}

// StartInterviewResponse is returned after a session is created.
type StartInterviewResponse struct {
	Message       string `json:"message"`
	InterviewID   string `json:"interview_id"`
	FirstQuestion string `json:"first_question"`
}

// SubmitAnswerRequest is the request body for POST /interview/answer.
type SubmitAnswerRequest struct {
	InterviewID  string `json:"interview_id"`
	QuestionText string `json:"question_text"`
	AnswerText   string `json:"answer_text"`
}

// SubmitAnswerResponse carries the next question plus both renderings of the
// evaluation: the structured record and a display-ready multi-line string.
type SubmitAnswerResponse struct {
	Message            string           `json:"message"`
	NextQuestion       string           `json:"next_question"`
	EvaluationFeedback EvaluationRecord `json:"evaluation_feedback"`
	DisplayFeedback    string           `json:"display_feedback"`
}

// EndInterviewResponse is returned after a session is terminated.
type EndInterviewResponse struct {
	Message         string             `json:"message"`
	OverallFeedback StructuredFeedback `json:"overall_feedback"`
}
