package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// MaxPageSize is the largest page size Notion accepts
const MaxPageSize = 100

// PageCursor is an opaque pagination token issued by Notion. Empty means the first page.
type PageCursor string

// PageRequest selects one page of the registry. PageSize 0 uses Notion's default.
type PageRequest struct {
	Cursor   PageCursor `json:"start_cursor,omitempty"`
	PageSize int        `json:"page_size,omitempty"`
}

// Validate checks the page size range
func (r PageRequest) Validate() error {
	if r.PageSize < 0 || r.PageSize > MaxPageSize {
		return NewValidationError("page size must be between 1 and 100", goerr.V("page_size", r.PageSize))
	}
	return nil
}

// RiskPage is one page of records returned by the Remote Risk Gateway
type RiskPage struct {
	Items      []*RiskRecord `json:"items"`
	NextCursor PageCursor    `json:"next_cursor"`
	HasMore    bool          `json:"has_more"`
}

// MarshalJSON encodes an empty NextCursor as null, as Notion does on the last page
func (p RiskPage) MarshalJSON() ([]byte, error) {
	type plain RiskPage
	out := struct {
		plain
		NextCursor *PageCursor `json:"next_cursor"`
	}{plain: plain(p)}
	if p.NextCursor != "" {
		out.NextCursor = &p.NextCursor
	}
	return json.Marshal(out)
}

// Pager tracks the cursor of the page on screen and a stack of cursors that
// produced earlier pages. Notion has no backward cursor, so going back pops
// the stack.
type Pager struct {
	current PageCursor
	history []PageCursor
}

// Current returns the cursor of the page on screen
func (p *Pager) Current() PageCursor {
	return p.current
}

// Depth returns the number of pages before the current one
func (p *Pager) Depth() int {
	return len(p.history)
}

// CanBack reports whether a previous page exists
func (p *Pager) CanBack() bool {
	return len(p.history) > 0
}

// Forward records that next is now on screen
func (p *Pager) Forward(next PageCursor) {
	p.history = append(p.history, p.current)
	p.current = next
}

// PeekBack returns the cursor Back would move to without moving
func (p *Pager) PeekBack() (PageCursor, bool) {
	if len(p.history) == 0 {
		return "", false
	}
	return p.history[len(p.history)-1], true
}

// Back pops the previous cursor and makes it current
func (p *Pager) Back() (PageCursor, bool) {
	prev, ok := p.PeekBack()
	if !ok {
		return "", false
	}
	p.history = p.history[:len(p.history)-1]
	p.current = prev
	return prev, true
}

// Reset returns to the first page
func (p *Pager) Reset() {
	p.current = ""
	p.history = nil
}
