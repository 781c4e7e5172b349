package async

import (
	"context"
	"testing"
)

func pagesOf(total int) (PageFunc[int], *[]int) {
	var requested []int
	fn := func(ctx context.Context, page, pageSize int) ([]int, int, error) {
		requested = append(requested, page)
		start := (page - 1) * pageSize
		var items []int
		for i := start; i < start+pageSize && i < total; i++ {
			items = append(items, i)
		}
		return items, total, nil
	}
	return fn, &requested
}

func TestPaginator_Navigation(t *testing.T) {
	fn, requested := pagesOf(25)
	p := NewPaginator(fn, 10)
	ctx := context.Background()

	if err := p.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := p.State()
	if state.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", state.TotalPages)
	}
	if state.CurrentPage != 1 || len(state.Items) != 10 {
		t.Errorf("unexpected first page %+v", state)
	}

	_ = p.PrevPage(ctx)
	if len(*requested) != 1 {
		t.Errorf("expected PrevPage on first page to be a no-op, got requests %v", *requested)
	}

	_ = p.NextPage(ctx)
	_ = p.NextPage(ctx)
	_ = p.NextPage(ctx)
	state = p.State()
	if state.CurrentPage != 3 || len(state.Items) != 5 {
		t.Errorf("expected last page with 5 items, got %+v", state)
	}
	if len(*requested) != 3 {
		t.Errorf("expected NextPage on last page to be a no-op, got requests %v", *requested)
	}

	_ = p.PrevPage(ctx)
	if p.State().CurrentPage != 2 {
		t.Errorf("expected page 2, got %d", p.State().CurrentPage)
	}
}

func TestPaginator_GoToPageOutOfRange(t *testing.T) {
	fn, requested := pagesOf(25)
	p := NewPaginator(fn, 10)
	ctx := context.Background()
	_ = p.Load(ctx)

	tests := []struct {
		name    string
		page    int
		fetched bool
	}{
		{"zero", 0, false},
		{"negative", -1, false},
		{"past the end", 4, false},
		{"last page", 3, true},
		{"first page", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(*requested)
			_ = p.GoToPage(ctx, tt.page)
			fetched := len(*requested) > before
			if fetched != tt.fetched {
				t.Errorf("expected fetched=%v for page %d", tt.fetched, tt.page)
			}
			if tt.fetched && p.State().CurrentPage != tt.page {
				t.Errorf("expected current page %d, got %d", tt.page, p.State().CurrentPage)
			}
		})
	}
}

func TestPaginator_ErrorKeepsPosition(t *testing.T) {
	calls := 0
	p := NewPaginator(func(ctx context.Context, page, pageSize int) ([]string, int, error) {
		calls++
		if calls > 1 {
			return nil, 0, context.DeadlineExceeded
		}
		return []string{"a"}, 20, nil
	}, 10)
	ctx := context.Background()
	_ = p.Load(ctx)

	if err := p.NextPage(ctx); err == nil {
		t.Fatal("expected error")
	}
	state := p.State()
	if state.CurrentPage != 1 {
		t.Errorf("expected to stay on page 1, got %d", state.CurrentPage)
	}
	if state.Error == "" {
		t.Error("expected an error message")
	}
}
