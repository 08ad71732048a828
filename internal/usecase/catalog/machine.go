// Package catalog holds the product catalog's filter and pagination state.
//
// Machine is a pure state machine: it decides which request to issue for a
// user action and how to reconcile the response, but never performs I/O.
// Browser couples a Machine with a product fetcher.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"egreen-site/internal/common/pagination"
	"egreen-site/internal/infra/catalogapi"
)

// Phase is the coarse state of the catalog view.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	// ErrPageOutOfRange is returned by SelectPage for a page outside the
	// known bounds.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrStaleResult is returned when a fetch result belongs to a request
	// that has since been superseded. The result is discarded.
	ErrStaleResult = errors.New("stale fetch result")
)

// State is a snapshot of the machine. Pagination is the zero value until the
// first successful fetch for the current category.
type State struct {
	Phase      Phase
	Page       int
	Category   string
	Pagination pagination.Metadata
	Err        error
}

// Request is the fetch a transition asks the caller to perform.
type Request struct {
	Seq      uint64
	Page     int
	Category string
}

// Query converts the request into API parameters.
func (r Request) Query(limit int) catalogapi.Query {
	return catalogapi.Query{Page: r.Page, Limit: limit, Category: r.Category}
}

// Machine tracks the selected page and category. It is not safe for
// concurrent use; Browser adds locking.
type Machine struct {
	state   State
	seq     uint64
	pending uint64
}

// NewMachine starts Idle on page 1 of category ("" for all categories).
func NewMachine(category string) *Machine {
	return &Machine{state: State{Phase: PhaseIdle, Page: 1, Category: strings.TrimSpace(category)}}
}

// State returns the current snapshot.
func (m *Machine) State() State {
	return m.state
}

// Load requests the current page and category.
func (m *Machine) Load() Request {
	return m.begin()
}

// SelectCategory switches to category, resetting the page to 1 and forgetting
// the page bounds. Selecting the current category is a no-op and reports
// false.
func (m *Machine) SelectCategory(category string) (Request, bool) {
	category = strings.TrimSpace(category)
	if category == m.state.Category {
		return Request{}, false
	}
	m.state.Category = category
	m.state.Page = 1
	m.state.Pagination = pagination.Metadata{}
	return m.begin(), true
}

// SelectPage moves to page. Any page >= 1 is accepted until the bounds are
// known; after that the page must lie within them.
func (m *Machine) SelectPage(page int) (Request, error) {
	if page < 1 {
		return Request{}, fmt.Errorf("%w: %d", ErrPageOutOfRange, page)
	}
	if m.state.Pagination.Known() && page > m.state.Pagination.TotalPages {
		return Request{}, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, page, m.state.Pagination.TotalPages)
	}
	m.state.Page = page
	return m.begin(), nil
}

// Retry re-issues the request for the current page and category. It is the
// only way to recover from PhaseError.
func (m *Machine) Retry() Request {
	return m.begin()
}

// FetchSucceeded applies meta for req. The server's current page replaces the
// requested one when they differ.
func (m *Machine) FetchSucceeded(req Request, meta pagination.Metadata) error {
	if err := m.accept(req); err != nil {
		return err
	}
	page := m.state.Page
	if meta.CurrentPage > 0 {
		page = meta.CurrentPage
	}
	m.state.Page = pagination.Clamp(page, meta.TotalPages)
	m.state.Pagination = meta
	m.state.Phase = PhaseLoaded
	m.state.Err = nil
	return nil
}

// FetchFailed moves to PhaseError keeping the page and category for Retry.
func (m *Machine) FetchFailed(req Request, err error) error {
	if acceptErr := m.accept(req); acceptErr != nil {
		return acceptErr
	}
	m.state.Phase = PhaseError
	m.state.Err = err
	return nil
}

func (m *Machine) begin() Request {
	m.seq++
	m.pending = m.seq
	m.state.Phase = PhaseLoading
	m.state.Err = nil
	return Request{Seq: m.seq, Page: m.state.Page, Category: m.state.Category}
}

func (m *Machine) accept(req Request) error {
	if m.pending == 0 || req.Seq != m.pending {
		return ErrStaleResult
	}
	m.pending = 0
	return nil
}
