package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
)

// AnalysisCache keeps completed analysis snapshots in Redis so history and
// polling reads skip Mongo. Only completed analyses are cached; they are
// immutable, so no invalidation is needed beyond the TTL.
type AnalysisCache interface {
	Get(ctx context.Context, responseID string) (*model.ResponseAnalysis, error)
	Set(ctx context.Context, analysis *model.ResponseAnalysis) error
}

type analysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalysisCache creates a new analysis cache
func NewAnalysisCache(client *redis.Client) AnalysisCache {
	return &analysisCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *analysisCache) key(responseID string) string {
	return fmt.Sprintf("analysis:%s", responseID)
}

func (c *analysisCache) Get(ctx context.Context, responseID string) (*model.ResponseAnalysis, error) {
	data, err := c.client.Get(ctx, c.key(responseID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var analysis model.ResponseAnalysis
	if err := json.Unmarshal([]byte(data), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (c *analysisCache) Set(ctx context.Context, analysis *model.ResponseAnalysis) error {
	if analysis.Status != model.StatusCompleted {
		return nil
	}

	data, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(analysis.ResponseID), data, c.ttl).Err()
}
