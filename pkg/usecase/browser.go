package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
)

// Browser pages through the registry for an interactive view. One
// navigation runs at a time; a navigation requested while another is
// outstanding fails with ErrFetchInProgress. A failed navigation keeps the
// last rendered page and the cursor stack as they were.
type Browser struct {
	risk     *RiskUseCase
	session  *model.Session
	pageSize int

	fetching sync.Mutex
	mu       sync.RWMutex
	pager    model.Pager
	page     *model.RiskPage
}

// NewBrowser creates a browser. pageSize 0 uses Notion's default.
func (uc *RiskUseCase) NewBrowser(session *model.Session, pageSize int) *Browser {
	return &Browser{
		risk:     uc,
		session:  session,
		pageSize: pageSize,
	}
}

// Page returns the last successfully fetched page, or nil before the first fetch
func (b *Browser) Page() *model.RiskPage {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.page
}

// PageNumber returns the 1-based number of the page on screen
func (b *Browser) PageNumber() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pager.Depth() + 1
}

// CanNext reports whether a following page exists
func (b *Browser) CanNext() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.page != nil && b.page.HasMore && b.page.NextCursor != ""
}

// CanPrev reports whether a preceding page exists
func (b *Browser) CanPrev() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pager.CanBack()
}

// First fetches the first page and clears the cursor stack
func (b *Browser) First(ctx context.Context) (*model.RiskPage, error) {
	return b.navigate(ctx, func(p *model.Pager) (model.PageCursor, func(), bool) {
		return "", p.Reset, true
	})
}

// Next fetches the page after the current one
func (b *Browser) Next(ctx context.Context) (*model.RiskPage, error) {
	return b.navigate(ctx, func(p *model.Pager) (model.PageCursor, func(), bool) {
		if b.page == nil || !b.page.HasMore || b.page.NextCursor == "" {
			return "", nil, false
		}
		next := b.page.NextCursor
		return next, func() { p.Forward(next) }, true
	})
}

// Prev fetches the page before the current one
func (b *Browser) Prev(ctx context.Context) (*model.RiskPage, error) {
	return b.navigate(ctx, func(p *model.Pager) (model.PageCursor, func(), bool) {
		prev, ok := p.PeekBack()
		if !ok {
			return "", nil, false
		}
		return prev, func() { p.Back() }, true
	})
}

// navigate fetches the page plan selects and applies plan's commit only if the fetch succeeds
func (b *Browser) navigate(ctx context.Context, plan func(p *model.Pager) (model.PageCursor, func(), bool)) (*model.RiskPage, error) {
	if !b.fetching.TryLock() {
		return nil, goerr.Wrap(model.ErrFetchInProgress, "navigation rejected",
			goerr.V(model.MessageKey, "a page is already loading"))
	}
	defer b.fetching.Unlock()

	b.mu.RLock()
	cursor, commit, ok := plan(&b.pager)
	b.mu.RUnlock()
	if !ok {
		return nil, model.NewValidationError("no page in that direction")
	}

	page, err := b.risk.FetchPage(ctx, b.session, model.PageRequest{Cursor: cursor, PageSize: b.pageSize})
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	commit()
	b.page = page
	b.mu.Unlock()

	return page, nil
}
