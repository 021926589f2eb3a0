package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ai-interview-coach-backend/internal/cache"
	"ai-interview-coach-backend/internal/feedback"
	"ai-interview-coach-backend/internal/model"
	"ai-interview-coach-backend/internal/repository"
)

// AnswerResult is what Answer hands back to the transport layer.
type AnswerResult struct {
	NextQuestion    string
	Evaluation      model.EvaluationRecord
	DisplayFeedback string
}

// InterviewService is the session state machine: it owns the start/answer/
// end transitions, conversation-history reconstruction, and the ownership
// and single-active-session invariants. Generation failures never abort a
// transition; only not-found, ownership, state, and persistence problems
// surface as errors.
type InterviewService struct {
	interviews repository.InterviewRepository
	cache      cache.InterviewCache
	questions  *QuestionService
	evaluator  *EvaluationService
	summarizer *SummaryService
	logger     *zap.Logger
}

// NewInterviewService creates the interview state machine with its
// collaborators injected.
func NewInterviewService(
	interviews repository.InterviewRepository,
	ivCache cache.InterviewCache,
	questions *QuestionService,
	evaluator *EvaluationService,
	summarizer *SummaryService,
	logger *zap.Logger,
) *InterviewService {
	return &InterviewService{
		interviews: interviews,
		cache:      ivCache,
		questions:  questions,
		evaluator:  evaluator,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Start deactivates every session the user still has active, then creates a
// new active session seeded with one AI-authored question.
func (s *InterviewService) Start(ctx context.Context, userUID, userEmail, role, experience string) (*model.Interview, error) {
	if err := s.interviews.DeactivateActive(ctx, userUID); err != nil {
		return nil, fmt.Errorf("deactivating previous interviews: %w", err)
	}

	firstQuestion := s.questions.FirstQuestion(ctx, role, experience)
	now := time.Now().UTC()

	iv := &model.Interview{
		UserUID:    userUID,
		UserEmail:  userEmail,
		Role:       role,
		Experience: experience,
		Questions: []model.TranscriptEntry{
			{Text: firstQuestion, Timestamp: now, FromAI: true},
		},
		Answers:    []model.TranscriptEntry{},
		Evaluation: []model.EvaluationEntry{},
		IsActive:   true,
		Version:    1,
		CreatedAt:  now,
	}

	if err := s.interviews.Create(ctx, iv); err != nil {
		return nil, fmt.Errorf("creating interview: %w", err)
	}

	if err := s.cache.Set(ctx, iv); err != nil {
		s.logger.Debug("interview cache set failed", zap.String("interview_id", iv.ID), zap.Error(err))
	}

	s.logger.Info("interview started",
		zap.String("interview_id", iv.ID),
		zap.String("user_uid", userUID),
		zap.String("role", role),
	)

	return iv, nil
}

// Answer evaluates the candidate's answer, generates the next question from
// the full conversation history, and appends answer, evaluation, and next
// question to the session as one conditional write.
func (s *InterviewService) Answer(ctx context.Context, userUID, interviewID, questionText, answerText string) (*AnswerResult, error) {
	iv, err := s.getInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	if iv.UserUID != userUID {
		return nil, ErrNotOwner
	}
	if !iv.IsActive {
		return nil, ErrInterviewNotActive
	}

	// The evaluation and the next question depend only on data already in
	// hand, so the two model calls run concurrently.
	var (
		rec  model.EvaluationRecord
		next string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rec = s.evaluator.EvaluateAnswer(gctx, iv.Role, iv.Experience, questionText, answerText)
		return nil
	})
	g.Go(func() error {
		history := buildConversationHistory(iv.Questions, iv.Answers, answerText)
		next = s.questions.NextQuestion(gctx, iv.Role, iv.Experience, history)
		return nil
	})
	// Both branches absorb their own failures into fallback values.
	_ = g.Wait()

	now := time.Now().UTC()
	answerEntry := model.TranscriptEntry{Text: answerText, Timestamp: now, FromAI: false}
	evalEntry := model.EvaluationEntry{
		Question:  questionText,
		Answer:    answerText,
		Feedback:  rec,
		Timestamp: now,
	}
	nextEntry := model.TranscriptEntry{Text: next, Timestamp: now, FromAI: true}

	err = s.interviews.AppendExchange(ctx, iv.ID, iv.Version, answerEntry, evalEntry, nextEntry)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			return nil, ErrConflict
		case errors.Is(err, repository.ErrNotActive):
			// A concurrent end won; the stale active flag read above does
			// not matter because the append conditions on the stored one.
			return nil, ErrInterviewNotActive
		}
		return nil, fmt.Errorf("appending exchange: %w", err)
	}

	s.invalidate(ctx, iv.ID)

	s.logger.Info("answer recorded",
		zap.String("interview_id", iv.ID),
		zap.Int("question_index", len(iv.Answers)),
		zap.Int("score", rec.Score),
	)

	return &AnswerResult{
		NextQuestion:    next,
		Evaluation:      rec,
		DisplayFeedback: feedback.RenderEvaluation(rec),
	}, nil
}

// End terminates an active session: it synthesizes the overall feedback
// from every completed exchange, parses it into structure, and persists the
// ended state. A session that already ended is rejected before any
// generation work, and the conditional finish write guarantees stored
// feedback is never overwritten.
func (s *InterviewService) End(ctx context.Context, userUID, interviewID string) (model.StructuredFeedback, error) {
	var zero model.StructuredFeedback

	iv, err := s.getInterview(ctx, interviewID)
	if err != nil {
		return zero, err
	}

	if iv.UserUID != userUID {
		return zero, ErrNotOwner
	}
	if !iv.IsActive {
		return zero, ErrInterviewNotActive
	}

	raw := s.summarizer.OverallFeedback(ctx, iv.Role, iv.Experience, completedExchanges(iv))
	fb := feedback.Format(raw)

	if err := s.interviews.Finish(ctx, iv.ID, fb, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrNotActive) {
			return zero, ErrInterviewNotActive
		}
		return zero, fmt.Errorf("finishing interview: %w", err)
	}

	s.invalidate(ctx, iv.ID)

	s.logger.Info("interview ended",
		zap.String("interview_id", iv.ID),
		zap.Int("questions_answered", len(iv.Answers)),
	)

	return fb, nil
}

// getInterview reads through the cache, falling back to the repository.
func (s *InterviewService) getInterview(ctx context.Context, id string) (*model.Interview, error) {
	if iv, err := s.cache.Get(ctx, id); err == nil && iv != nil {
		return iv, nil
	} else if err != nil {
		s.logger.Debug("interview cache get failed", zap.String("interview_id", id), zap.Error(err))
	}

	iv, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("loading interview: %w", err)
	}

	if err := s.cache.Set(ctx, iv); err != nil {
		s.logger.Debug("interview cache set failed", zap.String("interview_id", id), zap.Error(err))
	}

	return iv, nil
}

func (s *InterviewService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, id); err != nil {
		s.logger.Debug("interview cache delete failed", zap.String("interview_id", id), zap.Error(err))
	}
}

// buildConversationHistory reconstructs the alternating model/candidate
// turn sequence from the stored question and answer logs, ending with the
// newly submitted answer: question[0], answer[0], question[1], ...,
// newAnswer.
func buildConversationHistory(questions, answers []model.TranscriptEntry, newAnswer string) []model.Turn {
	turns := make([]model.Turn, 0, len(questions)+len(answers)+1)
	for i, q := range questions {
		turns = append(turns, model.Turn{Speaker: model.SpeakerAI, Text: q.Text})
		if i < len(answers) {
			turns = append(turns, model.Turn{Speaker: model.SpeakerCandidate, Text: answers[i].Text})
		}
	}
	turns = append(turns, model.Turn{Speaker: model.SpeakerCandidate, Text: newAnswer})
	return turns
}

// completedExchanges flattens the first N triples where N = min(questions,
// answers, evaluations), guarding against the trailing unanswered question.
func completedExchanges(iv *model.Interview) []QAExchange {
	n := len(iv.Questions)
	if len(iv.Answers) < n {
		n = len(iv.Answers)
	}
	if len(iv.Evaluation) < n {
		n = len(iv.Evaluation)
	}

	exchanges := make([]QAExchange, 0, n)
	for i := 0; i < n; i++ {
		exchanges = append(exchanges, QAExchange{
			Question:    iv.Questions[i].Text,
			Answer:      iv.Answers[i].Text,
			EvalSummary: feedback.FlattenEvaluation(iv.Evaluation[i].Feedback),
		})
	}
	return exchanges
}
