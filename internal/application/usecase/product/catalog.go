// Package product contains the pad shop catalog use cases.
package product

import (
	"context"
	"log/slog"
	"time"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/application/async"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// DefaultSearchDebounce is the pause before a product search runs.
const DefaultSearchDebounce = 300 * time.Millisecond

// View is an arranged read of the catalog.
type View struct {
	Products []entity.Product
	Status   async.Status
	Error    string
}

// Catalog holds the product list of one session.
type Catalog struct {
	products adapter.ProductAPI
	list     *async.Fetcher[[]entity.Product]
}

// NewCatalog creates a catalog. View fetches only when opts.Immediate is set.
func NewCatalog(products adapter.ProductAPI, opts async.FetcherOptions) *Catalog {
	return &Catalog{
		products: products,
		list: async.NewFetcher(func(ctx context.Context) ([]entity.Product, error) {
			return products.GetProductsWithCache(ctx, false)
		}, opts),
	}
}

// View reads the catalog through the shared cache, then sorts it by sortBy
// and narrows it by filter. Products created by any session show up once
// the cache entry is dropped.
func (c *Catalog) View(ctx context.Context, sortBy entity.ProductSort, filter *entity.PriceRange) View {
	_ = c.list.Start(ctx)
	state := c.list.State()
	return newView(state, sortBy, filter)
}

// Refresh drops the cached catalog and fetches again.
func (c *Catalog) Refresh(ctx context.Context) (View, error) {
	if err := c.products.ClearProductsCache(ctx); err != nil {
		return View{}, err
	}
	err := c.list.Run(ctx)
	state := c.list.State()
	return newView(state, "", nil), err
}

func newView(state async.FetchState[[]entity.Product], sortBy entity.ProductSort, filter *entity.PriceRange) View {
	products := entity.ArrangeProducts(state.Data, sortBy, filter)
	if products == nil {
		products = []entity.Product{}
	}
	return View{Products: products, Status: state.Status, Error: state.Error}
}

// Search runs debounced catalog searches for one session.
type Search struct {
	searcher *async.Searcher[entity.Product]
}

// NewSearch creates a search whose queries run against the cached catalog.
// parent bounds the lifetime of pending queries.
func NewSearch(parent context.Context, products adapter.ProductAPI, debounce time.Duration) *Search {
	fn := func(ctx context.Context, query string) ([]entity.Product, error) {
		list, err := products.GetProductsWithCache(ctx, false)
		if err != nil {
			return nil, err
		}
		return entity.SearchProducts(list, query), nil
	}
	return &Search{searcher: async.NewSearcher(parent, fn, debounce)}
}

// Query schedules a search for term.
func (s *Search) Query(term string) async.SearchState[entity.Product] {
	s.searcher.Search(term)
	return s.searcher.State()
}

// State returns the latest search state.
func (s *Search) State() async.SearchState[entity.Product] {
	return s.searcher.State()
}

// Close stops any pending query.
func (s *Search) Close() {
	s.searcher.Close()
}

// Creator adds products to the catalog.
type Creator struct {
	products adapter.ProductAPI
	submit   *async.Submitter[*entity.Product]
}

// NewCreator creates a product creator.
func NewCreator(products adapter.ProductAPI) *Creator {
	c := &Creator{products: products}
	c.submit = async.NewSubmitter[*entity.Product](async.SubmitterOptions{
		OnSuccess: func(ctx context.Context) {
			if err := products.ClearProductsCache(ctx); err != nil {
				slog.Warn("Failed to clear products cache after create", "error", err)
			}
		},
	})
	return c
}

// Create submits input and drops the cached catalog on success.
func (c *Creator) Create(ctx context.Context, input entity.ProductInput) (*entity.Product, error) {
	return c.submit.Submit(ctx, func(ctx context.Context) (*entity.Product, error) {
		return c.products.CreateProduct(ctx, input)
	})
}

// State returns the submission state.
func (c *Creator) State() async.SubmitState {
	return c.submit.State()
}
