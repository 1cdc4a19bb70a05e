package pager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhatminh/vifin/internal/api"
	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/service"
)

// fakeServer simulates a paginated dataset with the fixed server page size.
func fakeServer(total int) *service.MockTransactionService {
	svc := &service.MockTransactionService{}
	svc.ListTransactionsFn = func(_ context.Context, page int) (*api.TransactionPage, error) {
		start := (page - 1) * api.PageSize
		end := start + api.PageSize
		if end > total {
			end = total
		}

		var items []model.Transaction
		for id := start + 1; id <= end; id++ {
			items = append(items, model.Transaction{ID: id})
		}
		return &api.TransactionPage{
			Results:     items,
			Count:       total,
			HasNext:     end < total,
			HasPrevious: page > 1,
		}, nil
	}
	return svc
}

func TestLoadAdoptsServerCounts(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		wantTotalPages int
	}{
		{name: "empty dataset still has one page", total: 0, wantTotalPages: 1},
		{name: "exactly one page", total: 20, wantTotalPages: 1},
		{name: "one item over", total: 21, wantTotalPages: 2},
		{name: "several pages", total: 45, wantTotalPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(fakeServer(tt.total))
			require.NoError(t, c.Load(context.Background(), 1))

			assert.Equal(t, tt.wantTotalPages, c.TotalPages())
			assert.Equal(t, tt.total, c.Count())
			assert.Equal(t, 1, c.CurrentPage())
		})
	}
}

func TestGoToPageBounds(t *testing.T) {
	svc := fakeServer(45) // 3 pages
	c := NewController(svc)
	require.NoError(t, c.Load(context.Background(), 1))
	loadsSoFar := len(svc.ListTransactionsCalls)

	// Out-of-range targets are ignored without a request.
	require.NoError(t, c.GoToPage(context.Background(), 0))
	require.NoError(t, c.GoToPage(context.Background(), 4))
	assert.Equal(t, loadsSoFar, len(svc.ListTransactionsCalls))
	assert.Equal(t, 1, c.CurrentPage())

	require.NoError(t, c.GoToPage(context.Background(), 3))
	assert.Equal(t, 3, c.CurrentPage())
	assert.Len(t, c.Items(), 5)
}

func TestGoToPageSignalsScrollToTop(t *testing.T) {
	c := NewController(fakeServer(45))
	require.NoError(t, c.Load(context.Background(), 1))

	var scrolled int
	c.ScrollToTop = func() { scrolled++ }

	require.NoError(t, c.GoToPage(context.Background(), 2))
	assert.Equal(t, 1, scrolled)

	// A rejected navigation must not scroll.
	require.NoError(t, c.GoToPage(context.Background(), 99))
	assert.Equal(t, 1, scrolled)
}

func TestDeleteLastItemOnPageFallsBack(t *testing.T) {
	// 41 items: page 3 holds exactly one item.
	total := 41
	svc := fakeServer(total)
	svc.DeleteTransactionFn = func(context.Context, int) error {
		total--
		return nil
	}
	// Rebind the list so reloads reflect the deletion.
	svc.ListTransactionsFn = func(ctx context.Context, page int) (*api.TransactionPage, error) {
		fresh := fakeServer(total)
		return fresh.ListTransactionsFn(ctx, page)
	}

	c := NewController(svc)
	require.NoError(t, c.Load(context.Background(), 1))
	require.NoError(t, c.GoToPage(context.Background(), 3))
	require.Len(t, c.Items(), 1)

	require.NoError(t, c.Delete(context.Background(), c.Items()[0].ID))

	// The now-empty page 3 is abandoned for page 2.
	assert.Equal(t, 2, c.CurrentPage())
	assert.Len(t, c.Items(), api.PageSize)
	assert.Equal(t, []int{41}, svc.DeleteCalls)
}

func TestDeleteOnPartialPageStays(t *testing.T) {
	total := 5
	svc := fakeServer(total)
	svc.DeleteTransactionFn = func(context.Context, int) error {
		total--
		return nil
	}
	svc.ListTransactionsFn = func(ctx context.Context, page int) (*api.TransactionPage, error) {
		fresh := fakeServer(total)
		return fresh.ListTransactionsFn(ctx, page)
	}

	c := NewController(svc)
	require.NoError(t, c.Load(context.Background(), 1))

	require.NoError(t, c.Delete(context.Background(), 3))
	assert.Equal(t, 1, c.CurrentPage())
	assert.Len(t, c.Items(), 4)
}

func TestDeleteFailureLeavesStateAlone(t *testing.T) {
	svc := fakeServer(45)
	svc.DeleteTransactionFn = func(context.Context, int) error {
		return &api.APIError{StatusCode: 500, Message: "boom"}
	}

	c := NewController(svc)
	require.NoError(t, c.Load(context.Background(), 1))
	itemsBefore := c.Items()

	err := c.Delete(context.Background(), itemsBefore[0].ID)
	require.Error(t, err)
	assert.Equal(t, itemsBefore, c.Items())
	assert.Equal(t, 1, c.CurrentPage())
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{name: "single page", current: 1, total: 1, want: []int{1}},
		{name: "all pages fit", current: 2, total: 4, want: []int{1, 2, 3, 4}},
		{name: "exactly five", current: 5, total: 5, want: []int{1, 2, 3, 4, 5}},
		{name: "centered", current: 5, total: 9, want: []int{3, 4, 5, 6, 7}},
		{name: "clamped at start", current: 1, total: 9, want: []int{1, 2, 3, 4, 5}},
		{name: "clamped near start", current: 2, total: 9, want: []int{1, 2, 3, 4, 5}},
		{name: "clamped at end", current: 9, total: 9, want: []int{5, 6, 7, 8, 9}},
		{name: "clamped near end", current: 8, total: 9, want: []int{5, 6, 7, 8, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window(tt.current, tt.total))
		})
	}
}

func TestRefreshContracts(t *testing.T) {
	svc := fakeServer(45)
	c := NewController(svc)
	require.NoError(t, c.Load(context.Background(), 1))
	require.NoError(t, c.GoToPage(context.Background(), 2))

	// RefreshCurrent stays put; RefreshFirst rewinds.
	require.NoError(t, c.RefreshCurrent(context.Background()))
	assert.Equal(t, 2, c.CurrentPage())

	require.NoError(t, c.RefreshFirst(context.Background()))
	assert.Equal(t, 1, c.CurrentPage())
}
