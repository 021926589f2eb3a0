package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"ai-interview-coach-backend/internal/model"
)

const interviewTTL = 10 * time.Minute

// InterviewCache is a read-through cache of interview documents in front of
// the repository. Misses return (nil, nil); every mutation of a session
// deletes its entry.
type InterviewCache interface {
	Set(ctx context.Context, iv *model.Interview) error
	Get(ctx context.Context, id string) (*model.Interview, error)
	Delete(ctx context.Context, id string) error
}

type interviewCache struct {
	client *redis.Client
}

// NewInterviewCache creates a Redis-backed interview cache.
func NewInterviewCache(client *redis.Client) InterviewCache {
	return &interviewCache{
		client: client,
	}
}

func (c *interviewCache) Set(ctx context.Context, iv *model.Interview) error {
	data, err := json.Marshal(iv)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "interview:"+iv.ID, data, interviewTTL).Err()
}

func (c *interviewCache) Get(ctx context.Context, id string) (*model.Interview, error) {
	data, err := c.client.Get(ctx, "interview:"+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var iv model.Interview
	err = json.Unmarshal([]byte(data), &iv)
	return &iv, err
}

func (c *interviewCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "interview:"+id).Err()
}
