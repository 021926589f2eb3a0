package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ai-interview-coach-backend/internal/llm"
	"ai-interview-coach-backend/internal/model"
	"ai-interview-coach-backend/internal/repository"
)

// fakeGenerator scripts TextGenerator responses and records every call. It
// is safe for the concurrent calls Answer makes.
type fakeGenerator struct {
	mu sync.Mutex

	textResp string
	textErr  error
	chatResp string
	chatErr  error
	jsonResp string
	jsonErr  error

	textPrompts []string
	chatPrompts []string
	chatHistory [][]llm.Content
	jsonPrompts []string
	jsonSchemas []*llm.Schema
}

func (f *fakeGenerator) GenerateText(ctx context.Context, modelName, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.textPrompts = append(f.textPrompts, prompt)
	return f.textResp, f.textErr
}

func (f *fakeGenerator) GenerateChat(ctx context.Context, modelName string, history []llm.Content, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatPrompts = append(f.chatPrompts, prompt)
	f.chatHistory = append(f.chatHistory, history)
	return f.chatResp, f.chatErr
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, modelName, prompt string, schema *llm.Schema) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jsonPrompts = append(f.jsonPrompts, prompt)
	f.jsonSchemas = append(f.jsonSchemas, schema)
	return f.jsonResp, f.jsonErr
}

// fakeInterviewRepo is an in-memory InterviewRepository with the same
// conditional-write semantics as the Mongo implementation.
type fakeInterviewRepo struct {
	mu         sync.Mutex
	interviews map[string]*model.Interview
	nextID     int
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{interviews: map[string]*model.Interview{}}
}

func (r *fakeInterviewRepo) Create(ctx context.Context, iv *model.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	iv.ID = fmt.Sprintf("iv-%d", r.nextID)
	stored := *iv
	r.interviews[iv.ID] = &stored
	return nil
}

func (r *fakeInterviewRepo) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.interviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *iv
	return &cp, nil
}

func (r *fakeInterviewRepo) DeactivateActive(ctx context.Context, userUID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	for _, iv := range r.interviews {
		if iv.UserUID == userUID && iv.IsActive {
			iv.IsActive = false
			iv.EndedAt = &now
		}
	}
	return nil
}

func (r *fakeInterviewRepo) AppendExchange(ctx context.Context, id string, version int64, answer model.TranscriptEntry, eval model.EvaluationEntry, question model.TranscriptEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.interviews[id]
	if !ok {
		return repository.ErrNotFound
	}
	if !iv.IsActive {
		return repository.ErrNotActive
	}
	if iv.Version != version {
		return repository.ErrVersionConflict
	}
	iv.Answers = append(iv.Answers, answer)
	iv.Evaluation = append(iv.Evaluation, eval)
	iv.Questions = append(iv.Questions, question)
	iv.Version++
	return nil
}

func (r *fakeInterviewRepo) Finish(ctx context.Context, id string, fb model.StructuredFeedback, endedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.interviews[id]
	if !ok {
		return repository.ErrNotFound
	}
	if !iv.IsActive {
		return repository.ErrNotActive
	}
	iv.IsActive = false
	iv.EndedAt = &endedAt
	iv.OverallFeedback = &fb
	iv.Version++
	return nil
}

// get returns the stored document for assertions.
func (r *fakeInterviewRepo) get(id string) *model.Interview {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interviews[id]
}

// fakeCache is a map-backed InterviewCache that records deletions.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*model.Interview
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*model.Interview{}}
}

func (c *fakeCache) Set(ctx context.Context, iv *model.Interview) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *iv
	c.entries[iv.ID] = &cp
	return nil
}

func (c *fakeCache) Get(ctx context.Context, id string) (*model.Interview, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	iv, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *iv
	return &cp, nil
}

func (c *fakeCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.deletes = append(c.deletes, id)
	return nil
}
