package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"egreen-site/internal/common/pagination"
	"egreen-site/internal/domain/entity"
	"egreen-site/internal/i18n"
	"egreen-site/internal/infra/catalogapi"
	"egreen-site/internal/usecase/catalog"

	"golang.org/x/sync/errgroup"
)

// Catalog is the subset of the catalog API the product views need.
type Catalog interface {
	ListProducts(ctx context.Context, q catalogapi.Query) (*catalogapi.ProductPage, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	GetCategory(ctx context.Context, id string) (*entity.Category, error)
}

// Service provides the product use cases.
type Service struct {
	API      Catalog
	Locales  *i18n.Resolver
	PageSize int
	Logger   *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// List returns one page of limit products (PageSize when limit <= 0) in
// category ("" for all) projected onto locale. A page beyond the last is
// answered with the last page: when the API reports fewer pages than
// requested without serving the last one itself, that page is fetched once
// more. Categories are fetched alongside; if they fail the list is still
// returned without a filter.
func (s *Service) List(ctx context.Context, locale entity.Locale, page, limit int, category string) (*ListView, error) {
	if limit <= 0 {
		limit = s.PageSize
	}
	m := catalog.NewMachine(category)
	req, err := m.SelectPage(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}

	var (
		result     *catalogapi.ProductPage
		categories []entity.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result, err = s.fetchPage(gctx, m, req, limit)
		return err
	})
	g.Go(func() error {
		cats, err := s.API.ListCategories(gctx)
		if err != nil {
			s.logger().WarnContext(ctx, "category filter unavailable", slog.Any("error", err))
			return nil
		}
		categories = cats
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	st := m.State()
	if st.Page != page {
		pagination.RecordClamped("products")
	}

	view := &ListView{
		Locale:           locale,
		Direction:        s.Locales.Direction(locale),
		Products:         make([]Card, 0, len(result.Products)),
		Categories:       make([]CategoryOption, 0, len(categories)),
		SelectedCategory: st.Category,
		Pagination:       st.Pagination,
		Buttons:          pagination.Buttons(st.Page, st.Pagination.TotalPages),
		Nav:              pagination.NavFor(st.Page, st.Pagination.TotalPages),
		Empty:            len(result.Products) == 0,
	}
	view.Pagination.CurrentPage = st.Page
	for _, p := range result.Products {
		view.Products = append(view.Products, Card{
			ID:           p.ID,
			Name:         s.Locales.Resolve(p.Name, locale),
			Image:        p.Image,
			CategoryID:   p.Category.ID,
			CategoryName: s.Locales.Resolve(p.Category.Name, locale),
		})
	}
	for _, c := range categories {
		view.Categories = append(view.Categories, CategoryOption{
			ID:       c.ID,
			Name:     s.Locales.Resolve(c.Name, locale),
			Selected: c.ID == st.Category,
		})
	}
	return view, nil
}

// fetchPage performs req and applies the result to m. If m clamps the page
// to one the API did not serve, the clamped page is fetched once so the
// products always belong to the page m reports.
func (s *Service) fetchPage(ctx context.Context, m *catalog.Machine, req catalog.Request, limit int) (*catalogapi.ProductPage, error) {
	for attempt := 0; ; attempt++ {
		result, err := s.API.ListProducts(ctx, req.Query(limit))
		if err != nil {
			_ = m.FetchFailed(req, err)
			return nil, err
		}
		if err := m.FetchSucceeded(req, result.Pagination); err != nil {
			return nil, err
		}
		served := result.Pagination.CurrentPage
		if served <= 0 {
			served = req.Page
		}
		page := m.State().Page
		if page == served || attempt > 0 {
			return result, nil
		}
		if req, err = m.SelectPage(page); err != nil {
			return nil, err
		}
	}
}

// Get returns a product projected onto locale. When the product carries only
// a category id, the category is looked up for its name.
func (s *Service) Get(ctx context.Context, locale entity.Locale, id string) (*DetailView, error) {
	p, err := s.API.GetProduct(ctx, id)
	if err != nil {
		if catalogapi.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	category := p.Category
	if category.Name.IsZero() && category.ID != "" {
		c, err := s.API.GetCategory(ctx, category.ID)
		switch {
		case err == nil:
			category = *c
		case !errors.Is(err, context.Canceled):
			s.logger().WarnContext(ctx, "product category lookup failed",
				slog.String("product_id", p.ID),
				slog.String("category_id", category.ID),
				slog.Any("error", err))
		}
	}

	return &DetailView{
		Locale:       locale,
		Direction:    s.Locales.Direction(locale),
		ID:           p.ID,
		Name:         s.Locales.Resolve(p.Name, locale),
		Description:  s.Locales.Resolve(p.Description, locale),
		Image:        p.Image,
		CategoryID:   category.ID,
		CategoryName: s.Locales.Resolve(category.Name, locale),
	}, nil
}

// Categories returns every category projected onto locale, in API order.
func (s *Service) Categories(ctx context.Context, locale entity.Locale) ([]CategoryOption, error) {
	cats, err := s.API.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]CategoryOption, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryOption{ID: c.ID, Name: s.Locales.Resolve(c.Name, locale)})
	}
	return out, nil
}
