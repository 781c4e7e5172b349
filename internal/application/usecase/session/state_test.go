package session

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/application/async"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

type cachedPredictions struct {
	remote []entity.CyclePrediction
	cached []entity.CyclePrediction
}

func (c *cachedPredictions) GetCyclePredictionsWithCache(ctx context.Context, skip bool) ([]entity.CyclePrediction, error) {
	if !skip && c.cached != nil {
		return c.cached, nil
	}
	c.cached = c.remote
	return c.remote, nil
}

func (c *cachedPredictions) ClearPredictionsCache(ctx context.Context) error {
	c.cached = nil
	return nil
}

type cachedProducts struct {
	remote []entity.Product
	cached []entity.Product
}

func (c *cachedProducts) CreateProduct(ctx context.Context, input entity.ProductInput) (*entity.Product, error) {
	created := entity.Product{ID: "p-new", Title: input.Title, Price: input.Price}
	c.remote = append(c.remote, created)
	return &created, nil
}

func (c *cachedProducts) GetProductsWithCache(ctx context.Context, skip bool) ([]entity.Product, error) {
	if !skip && c.cached != nil {
		return c.cached, nil
	}
	c.cached = append([]entity.Product(nil), c.remote...)
	return c.cached, nil
}

func (c *cachedProducts) ClearProductsCache(ctx context.Context) error {
	c.cached = nil
	return nil
}

type acceptingCycles struct{}

func (acceptingCycles) SetUserCycle(ctx context.Context, settings entity.CycleSettings) (string, error) {
	return "Cycle information saved", nil
}

func newTestState(t *testing.T, predictions *cachedPredictions, products *cachedProducts) (context.Context, *State) {
	t.Helper()
	ctx := adapter.WithSessionID(context.Background(), uuid.New())
	state := Services{
		Predictions: predictions,
		Products:    products,
		Cycles:      acceptingCycles{},
		Fetch:       async.FetcherOptions{Immediate: true},
	}.NewState(ctx)
	t.Cleanup(state.Close)
	return ctx, state
}

func TestState_PredictionAfterCycleSetup(t *testing.T) {
	predictions := &cachedPredictions{remote: []entity.CyclePrediction{{ID: "old"}}}
	ctx, state := newTestState(t, predictions, &cachedProducts{})

	before := state.Prediction.Latest(ctx)
	if before.Prediction == nil || before.Prediction.ID != "old" {
		t.Fatalf("expected the old prediction, got %+v", before)
	}

	predictions.remote = []entity.CyclePrediction{{ID: "new"}}
	if _, err := state.Setup.Submit(ctx, entity.CycleSettings{CycleLength: 30}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := state.Prediction.Latest(ctx)
	if after.Prediction == nil || after.Prediction.ID != "new" {
		t.Errorf("expected the prediction for the new settings, got %+v", after)
	}
}

func TestState_CatalogAfterCreate(t *testing.T) {
	products := &cachedProducts{remote: []entity.Product{{ID: "p-1", Title: "Day Pads", Price: 120000}}}
	ctx, state := newTestState(t, &cachedPredictions{}, products)

	if n := len(state.Catalog.View(ctx, "", nil).Products); n != 1 {
		t.Fatalf("expected 1 product before create, got %d", n)
	}
	if _, err := state.Creator.Create(ctx, entity.ProductInput{Title: "Travel Pack", Price: 50000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := len(state.Catalog.View(ctx, "", nil).Products); n != 2 {
		t.Errorf("expected the created product listed, got %d products", n)
	}
}
