package async

import (
	"context"
	"sync"

	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// DefaultPageSize is the page size used when none is given.
const DefaultPageSize = 10

// PageFunc loads one page and reports the total number of items.
type PageFunc[T any] func(ctx context.Context, page, pageSize int) ([]T, int, error)

// PageState is a point-in-time copy of a Paginator's state.
type PageState[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	Loading     bool
	Error       string
}

// Paginator walks a paged list. Navigation outside the known pages is a no-op.
type Paginator[T any] struct {
	fn       PageFunc[T]
	pageSize int

	run sync.Mutex

	mu          sync.RWMutex
	items       []T
	currentPage int
	totalPages  int
	loading     bool
	errMsg      string
}

// NewPaginator creates a paginator positioned before the first page.
func NewPaginator[T any](fn PageFunc[T], pageSize int) *Paginator[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator[T]{
		fn:          fn,
		pageSize:    pageSize,
		currentPage: 1,
		totalPages:  1,
	}
}

// Load fetches the first page.
func (p *Paginator[T]) Load(ctx context.Context) error {
	return p.fetchPage(ctx, 1)
}

// NextPage fetches the following page unless already on the last one.
func (p *Paginator[T]) NextPage(ctx context.Context) error {
	p.mu.RLock()
	current, total := p.currentPage, p.totalPages
	p.mu.RUnlock()
	if current >= total {
		return nil
	}
	return p.fetchPage(ctx, current+1)
}

// PrevPage fetches the preceding page unless already on the first one.
func (p *Paginator[T]) PrevPage(ctx context.Context) error {
	p.mu.RLock()
	current := p.currentPage
	p.mu.RUnlock()
	if current <= 1 {
		return nil
	}
	return p.fetchPage(ctx, current-1)
}

// GoToPage fetches page when it lies in [1, TotalPages].
func (p *Paginator[T]) GoToPage(ctx context.Context, page int) error {
	p.mu.RLock()
	total := p.totalPages
	p.mu.RUnlock()
	if page < 1 || page > total {
		return nil
	}
	return p.fetchPage(ctx, page)
}

// State returns a copy of the current state.
func (p *Paginator[T]) State() PageState[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	items := make([]T, len(p.items))
	copy(items, p.items)
	return PageState[T]{
		Items:       items,
		CurrentPage: p.currentPage,
		TotalPages:  p.totalPages,
		Loading:     p.loading,
		Error:       p.errMsg,
	}
}

func (p *Paginator[T]) fetchPage(ctx context.Context, page int) error {
	p.run.Lock()
	defer p.run.Unlock()

	p.mu.Lock()
	p.loading = true
	p.errMsg = ""
	p.mu.Unlock()

	items, total, err := p.fn(ctx, page, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		classified := domainerror.Classify(err)
		p.errMsg = classified.Display()
		return classified
	}
	p.items = items
	p.currentPage = page
	p.totalPages = (total + p.pageSize - 1) / p.pageSize
	return nil
}
