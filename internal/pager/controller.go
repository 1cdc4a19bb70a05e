// Package pager maintains the paginated transaction list: page state
// consistent with server-reported counts, boundary-clamped navigation, and
// post-delete reconciliation so the displayed page is never spuriously
// empty.
package pager

import (
	"context"
	"sync"

	"github.com/nhatminh/vifin/internal/api"
	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/service"
)

// Controller drives one paginated transaction list.
type Controller struct {
	mu          sync.Mutex
	svc         service.TransactionService
	items       []model.Transaction
	count       int
	currentPage int
	totalPages  int
	hasNext     bool
	hasPrevious bool

	// ScrollToTop, when set, is invoked after successful page navigation.
	ScrollToTop func()
}

// NewController creates a controller over the given transaction service.
func NewController(svc service.TransactionService) *Controller {
	return &Controller{
		svc:         svc,
		currentPage: 1,
		totalPages:  1,
	}
}

// Items returns the currently loaded page of transactions.
func (c *Controller) Items() []model.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Transaction, len(c.items))
	copy(out, c.items)
	return out
}

// CurrentPage returns the 1-indexed current page.
func (c *Controller) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage
}

// TotalPages returns the page count, at least 1 even for an empty dataset.
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

// Count returns the server-reported total item count.
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// HasNext reports whether the server advertised a next page.
func (c *Controller) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasNext
}

// HasPrevious reports whether the server advertised a previous page.
func (c *Controller) HasPrevious() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasPrevious
}

// Load fetches one page and adopts the server-reported counts. A bare-array
// response (already normalized by the API layer) counts as a single full
// page.
func (c *Controller) Load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	result, err := c.svc.ListTransactions(ctx, page)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.adopt(page, result)
	c.mu.Unlock()
	return nil
}

// adopt must be called with the lock held.
func (c *Controller) adopt(page int, result *api.TransactionPage) {
	c.items = result.Results
	c.count = result.Count
	c.currentPage = page
	c.hasNext = result.HasNext
	c.hasPrevious = result.HasPrevious

	c.totalPages = (result.Count + api.PageSize - 1) / api.PageSize
	if c.totalPages < 1 {
		c.totalPages = 1
	}
}

// GoToPage navigates to page n. Out-of-range targets are a no-op; a
// successful navigation signals the scroll-to-top side effect.
func (c *Controller) GoToPage(ctx context.Context, n int) error {
	c.mu.Lock()
	total := c.totalPages
	c.mu.Unlock()

	if n < 1 || n > total {
		return nil
	}
	if err := c.Load(ctx, n); err != nil {
		return err
	}
	if c.ScrollToTop != nil {
		c.ScrollToTop()
	}
	return nil
}

// RefreshFirst reloads page 1: the post-ingestion contract for every
// creating modality.
func (c *Controller) RefreshFirst(ctx context.Context) error {
	return c.Load(ctx, 1)
}

// RefreshCurrent reloads the current page: the post-edit contract.
func (c *Controller) RefreshCurrent(ctx context.Context) error {
	c.mu.Lock()
	page := c.currentPage
	c.mu.Unlock()
	return c.Load(ctx, page)
}

// Delete removes a transaction and reconciles the page state: if the
// displayed page would now be empty and it is not the first page, the
// previous page is loaded; otherwise the current page is reloaded.
func (c *Controller) Delete(ctx context.Context, id int) error {
	if err := c.svc.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	page := c.currentPage
	remaining := 0
	for _, item := range c.items {
		if item.ID != id {
			remaining++
		}
	}
	c.mu.Unlock()

	if remaining == 0 && page > 1 {
		return c.Load(ctx, page-1)
	}
	return c.Load(ctx, page)
}

// Window returns the page numbers to render as controls: at most 5 buttons,
// all pages when totalPages <= 5, otherwise a window centered on the
// current page and clamped to [1, totalPages].
func (c *Controller) Window() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return window(c.currentPage, c.totalPages)
}

func window(current, total int) []int {
	const maxButtons = 5

	if total < 1 {
		total = 1
	}

	start := 1
	if total > maxButtons {
		start = current - maxButtons/2
		if start < 1 {
			start = 1
		}
		if start+maxButtons-1 > total {
			start = total - maxButtons + 1
		}
	}

	n := total
	if n > maxButtons {
		n = maxButtons
	}

	pages := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pages = append(pages, start+i)
	}
	return pages
}
