package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"egreen-site/internal/common/pagination"
	"egreen-site/internal/domain/entity"
	"egreen-site/internal/infra/catalogapi"
	"egreen-site/internal/infra/catalogapi/catalogapitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedFetcher serves 5 pages and lets tests hold individual pages.
type gatedFetcher struct {
	mu      sync.Mutex
	gates   map[int]chan struct{}
	fail    error
	queries []catalogapi.Query
}

func (f *gatedFetcher) hold(page int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gates == nil {
		f.gates = map[int]chan struct{}{}
	}
	ch := make(chan struct{})
	f.gates[page] = ch
	return ch
}

func (f *gatedFetcher) ListProducts(ctx context.Context, q catalogapi.Query) (*catalogapi.ProductPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	gate := f.gates[q.Page]
	fail := f.fail
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if fail != nil {
		return nil, fail
	}
	return &catalogapi.ProductPage{
		Products:   []entity.Product{{ID: "page-" + string(rune('0'+q.Page))}},
		Pagination: pagination.Metadata{CurrentPage: q.Page, TotalPages: 5, Limit: q.Limit, Total: 45},
	}, nil
}

func TestBrowser_AgainstCatalogAPI(t *testing.T) {
	// Arrange
	srv := catalogapitest.NewServer()
	defer srv.Close()
	client, err := catalogapi.New(catalogapi.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	b := NewBrowser(client, 10, "")
	ctx := context.Background()

	// Act & Assert: first page
	snap, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Products, 10)
	assert.Equal(t, PhaseLoaded, snap.State.Phase)
	assert.True(t, snap.Nav.NextEnabled)
	assert.False(t, snap.Nav.PreviousEnabled)
	require.NotEmpty(t, snap.Buttons)
	assert.True(t, snap.Buttons[0].Current)

	// Page 3, then category: page resets to 1
	snap, err = b.SelectPage(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.State.Page)

	snap, err = b.SelectCategory(ctx, catalogapitest.CategoryFertilizers)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.State.Page)
	assert.Equal(t, 2, snap.State.Pagination.TotalPages)
	assert.Equal(t, 1, srv.Calls("/product?category="+catalogapitest.CategoryFertilizers+"&limit=10&page=1"))

	// Out of range once bounds are known
	_, err = b.SelectPage(ctx, 3)
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	// Next / Previous
	snap, err = b.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.State.Page)
	assert.False(t, snap.Nav.NextEnabled)

	snap, err = b.Previous(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.State.Page)

	_, err = b.Previous(ctx)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestBrowser_PageBeyondLastShowsLastPageItems(t *testing.T) {
	// gatedFetcher echoes the requested page instead of clamping it.
	f := &gatedFetcher{}
	b := NewBrowser(f, 10, "")

	snap, err := b.SelectPage(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, 5, snap.State.Page)
	assert.Equal(t, PhaseLoaded, snap.State.Phase)
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "page-5", snap.Products[0].ID)
	require.Len(t, f.queries, 2)
	assert.Equal(t, 9, f.queries[0].Page)
	assert.Equal(t, 5, f.queries[1].Page)
}

func TestBrowser_SameCategoryDoesNotFetch(t *testing.T) {
	f := &gatedFetcher{}
	b := NewBrowser(f, 10, "seeds")
	_, err := b.Load(context.Background())
	require.NoError(t, err)

	_, err = b.SelectCategory(context.Background(), "seeds")
	require.NoError(t, err)

	assert.Len(t, f.queries, 1)
}

func TestBrowser_FailureThenRetry(t *testing.T) {
	f := &gatedFetcher{fail: errors.New("catalog api unavailable")}
	b := NewBrowser(f, 10, "")

	snap, err := b.SelectPage(context.Background(), 2)
	require.Error(t, err)
	assert.Equal(t, PhaseError, snap.State.Phase)
	assert.Equal(t, 2, snap.State.Page)

	f.mu.Lock()
	f.fail = nil
	f.mu.Unlock()

	snap, err = b.Retry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseLoaded, snap.State.Phase)
	assert.Equal(t, 2, snap.State.Page)
	assert.Equal(t, 2, f.queries[1].Page)
}

func TestBrowser_OutOfOrderCompletionIsDiscarded(t *testing.T) {
	// Arrange
	f := &gatedFetcher{}
	b := NewBrowser(f, 10, "")
	_, err := b.Load(context.Background())
	require.NoError(t, err)
	slowGate := f.hold(2)

	// Act: page 2 is slow, page 3 completes first
	slowDone := make(chan error, 1)
	go func() {
		_, err := b.SelectPage(context.Background(), 2)
		slowDone <- err
	}()
	require.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return len(f.queries) == 2
	}, time.Second, 5*time.Millisecond)

	snap, err := b.SelectPage(context.Background(), 3)
	require.NoError(t, err)
	close(slowGate)
	slowErr := <-slowDone

	// Assert
	assert.ErrorIs(t, slowErr, ErrStaleResult)
	final := b.Snapshot()
	assert.Equal(t, 3, final.State.Page)
	assert.Equal(t, PhaseLoaded, final.State.Phase)
	assert.Equal(t, snap.Products, final.Products)
}
