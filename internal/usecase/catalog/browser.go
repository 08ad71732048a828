package catalog

import (
	"context"
	"sync"

	"egreen-site/internal/common/pagination"
	"egreen-site/internal/domain/entity"
	"egreen-site/internal/infra/catalogapi"
)

// ProductFetcher loads one page of products.
type ProductFetcher interface {
	ListProducts(ctx context.Context, q catalogapi.Query) (*catalogapi.ProductPage, error)
}

// Snapshot is what a catalog view renders.
type Snapshot struct {
	State    State
	Products []entity.Product
	Buttons  []pagination.Button
	Nav      pagination.Nav
}

// Browser drives a Machine against a ProductFetcher. It is safe for
// concurrent use; when actions overlap only the latest one's result is
// applied.
type Browser struct {
	fetcher ProductFetcher
	limit   int

	mu       sync.Mutex
	machine  *Machine
	products []entity.Product
}

// NewBrowser creates a browser showing limit products per page.
func NewBrowser(fetcher ProductFetcher, limit int, category string) *Browser {
	return &Browser{
		fetcher: fetcher,
		limit:   limit,
		machine: NewMachine(category),
	}
}

// Load fetches the current page.
func (b *Browser) Load(ctx context.Context) (Snapshot, error) {
	b.mu.Lock()
	req := b.machine.Load()
	b.mu.Unlock()
	return b.run(ctx, req)
}

// SelectCategory switches category and fetches its first page. Selecting the
// current category returns the current snapshot without fetching.
func (b *Browser) SelectCategory(ctx context.Context, category string) (Snapshot, error) {
	b.mu.Lock()
	req, changed := b.machine.SelectCategory(category)
	if !changed {
		defer b.mu.Unlock()
		return b.snapshotLocked(), nil
	}
	b.products = nil
	b.mu.Unlock()
	return b.run(ctx, req)
}

// SelectPage fetches page.
func (b *Browser) SelectPage(ctx context.Context, page int) (Snapshot, error) {
	b.mu.Lock()
	req, err := b.machine.SelectPage(page)
	if err != nil {
		defer b.mu.Unlock()
		return b.snapshotLocked(), err
	}
	b.mu.Unlock()
	return b.run(ctx, req)
}

// Next moves one page forward when possible.
func (b *Browser) Next(ctx context.Context) (Snapshot, error) {
	return b.SelectPage(ctx, b.Snapshot().State.Page+1)
}

// Previous moves one page back when possible.
func (b *Browser) Previous(ctx context.Context) (Snapshot, error) {
	return b.SelectPage(ctx, b.Snapshot().State.Page-1)
}

// Retry re-fetches the current page and category.
func (b *Browser) Retry(ctx context.Context) (Snapshot, error) {
	b.mu.Lock()
	req := b.machine.Retry()
	b.mu.Unlock()
	return b.run(ctx, req)
}

// Snapshot returns the current view without fetching.
func (b *Browser) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// run performs req outside the lock and applies the result unless a newer
// request was issued meanwhile, in which case ErrStaleResult is returned
// with the current snapshot. When the machine clamps to a page the fetcher
// did not serve, that page is fetched once more.
func (b *Browser) run(ctx context.Context, req Request) (Snapshot, error) {
	for attempt := 0; ; attempt++ {
		page, fetchErr := b.fetcher.ListProducts(ctx, req.Query(b.limit))
		snap, next, err := b.apply(req, page, fetchErr, attempt == 0)
		if next == nil {
			return snap, err
		}
		req = *next
	}
}

// apply records the outcome of req. It returns a follow-up request when the
// served page differs from the clamped one and refetch is allowed.
func (b *Browser) apply(req Request, page *catalogapi.ProductPage, fetchErr error, refetch bool) (Snapshot, *Request, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if fetchErr != nil {
		if err := b.machine.FetchFailed(req, fetchErr); err != nil {
			return b.snapshotLocked(), nil, err
		}
		return b.snapshotLocked(), nil, fetchErr
	}
	if err := b.machine.FetchSucceeded(req, page.Pagination); err != nil {
		return b.snapshotLocked(), nil, err
	}
	served := page.Pagination.CurrentPage
	if served <= 0 {
		served = req.Page
	}
	if current := b.machine.State().Page; refetch && current != served {
		next, err := b.machine.SelectPage(current)
		if err != nil {
			return b.snapshotLocked(), nil, err
		}
		return b.snapshotLocked(), &next, nil
	}
	b.products = page.Products
	return b.snapshotLocked(), nil, nil
}

func (b *Browser) snapshotLocked() Snapshot {
	st := b.machine.State()
	snap := Snapshot{
		State:    st,
		Products: append([]entity.Product(nil), b.products...),
	}
	if st.Pagination.Known() {
		snap.Buttons = pagination.Buttons(st.Page, st.Pagination.TotalPages)
		snap.Nav = pagination.NavFor(st.Page, st.Pagination.TotalPages)
	}
	return snap
}
