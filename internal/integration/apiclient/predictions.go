package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// PredictionService reads server-computed cycle predictions.
type PredictionService struct {
	client *Client
	cache  *resourceCache
}

// NewPredictionService creates a prediction service caching lists for ttl.
func NewPredictionService(client *Client, cache adapter.Cache, ttl time.Duration) *PredictionService {
	return &PredictionService{client: client, cache: newResourceCache(cache, ttl)}
}

var _ adapter.PredictionAPI = (*PredictionService)(nil)

// GetCyclePredictions lists predictions, most recent first.
func (s *PredictionService) GetCyclePredictions(ctx context.Context) ([]entity.CyclePrediction, error) {
	var predictions []entity.CyclePrediction
	if _, err := s.client.get(ctx, "/cycle-predictions", nil, &predictions); err != nil {
		return nil, fmt.Errorf("failed to fetch cycle predictions: %w", err)
	}
	if predictions == nil {
		predictions = []entity.CyclePrediction{}
	}
	return predictions, nil
}

// GetLatestPrediction returns the first prediction, or nil when there is none.
func (s *PredictionService) GetLatestPrediction(ctx context.Context) (*entity.CyclePrediction, error) {
	predictions, err := s.GetCyclePredictions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest prediction: %w", err)
	}
	if len(predictions) == 0 {
		return nil, nil
	}
	return &predictions[0], nil
}

// GetCyclePredictionsWithCache returns the cached list when fresh and non-empty.
func (s *PredictionService) GetCyclePredictionsWithCache(ctx context.Context, skipCache bool) ([]entity.CyclePrediction, error) {
	key, _ := sessionKey(ctx, keyPredictions)
	return loadCached(ctx, s.cache, key, skipCache, nonEmpty[entity.CyclePrediction], s.GetCyclePredictions)
}

// ClearPredictionsCache drops the cached list of the session in ctx.
func (s *PredictionService) ClearPredictionsCache(ctx context.Context) error {
	key, ok := sessionKey(ctx, keyPredictions)
	if !ok {
		return nil
	}
	return s.cache.invalidate(ctx, key)
}
