package article

import (
	"context"
	"fmt"
	"strings"
	"time"

	"egreen-site/internal/domain/entity"
	"egreen-site/internal/i18n"
	"egreen-site/internal/infra/catalogapi"
)

// Source is the subset of the catalog API the article views need.
type Source interface {
	ListArticles(ctx context.Context) ([]entity.Article, error)
	GetArticle(ctx context.Context, id string) (*entity.Article, error)
}

// Summary is an article card.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Category  string    `json:"category,omitempty"`
	Author    string    `json:"author,omitempty"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	ReadTime  int       `json:"readTime"`
	Featured  bool      `json:"featured"`
}

// ListView is the article index for one locale.
type ListView struct {
	Locale           entity.Locale `json:"locale"`
	Direction        string        `json:"dir"`
	Featured         []Summary     `json:"featured"`
	Articles         []Summary     `json:"articles"`
	Categories       []string      `json:"categories"`
	Search           string        `json:"search,omitempty"`
	SelectedCategory string        `json:"selectedCategory,omitempty"`
	Empty            bool          `json:"empty"`
}

// DetailView is a full article. Content is raw HTML.
type DetailView struct {
	Summary
	Locale    entity.Locale `json:"locale"`
	Direction string        `json:"dir"`
	Content   string        `json:"content"`
}

// Service provides the article use cases.
type Service struct {
	API     Source
	Locales *i18n.Resolver
}

// List returns the articles whose localized title or excerpt contains search
// (case-insensitive) and whose localized category equals category. Empty
// search or category match everything. Featured articles are listed
// separately. Categories lists every distinct localized category in order of
// first appearance, independent of the filters.
func (s *Service) List(ctx context.Context, locale entity.Locale, search, category string) (*ListView, error) {
	articles, err := s.API.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	search = strings.TrimSpace(search)
	category = strings.TrimSpace(category)
	needle := strings.ToLower(search)

	view := &ListView{
		Locale:           locale,
		Direction:        s.Locales.Direction(locale),
		Featured:         []Summary{},
		Articles:         []Summary{},
		Categories:       []string{},
		Search:           search,
		SelectedCategory: category,
	}
	seen := make(map[string]bool)
	for _, a := range articles {
		sum := s.summary(a, locale)
		if sum.Category != "" && !seen[sum.Category] {
			seen[sum.Category] = true
			view.Categories = append(view.Categories, sum.Category)
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(sum.Title), needle) &&
			!strings.Contains(strings.ToLower(sum.Excerpt), needle) {
			continue
		}
		if category != "" && sum.Category != category {
			continue
		}
		if sum.Featured {
			view.Featured = append(view.Featured, sum)
		} else {
			view.Articles = append(view.Articles, sum)
		}
	}
	view.Empty = len(view.Featured) == 0 && len(view.Articles) == 0
	return view, nil
}

// Get returns one article projected onto locale.
func (s *Service) Get(ctx context.Context, locale entity.Locale, id string) (*DetailView, error) {
	a, err := s.API.GetArticle(ctx, id)
	if err != nil {
		if catalogapi.IsNotFound(err) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &DetailView{
		Summary:   s.summary(*a, locale),
		Locale:    locale,
		Direction: s.Locales.Direction(locale),
		Content:   s.Locales.Resolve(a.Content, locale),
	}, nil
}

func (s *Service) summary(a entity.Article, locale entity.Locale) Summary {
	return Summary{
		ID:        a.ID,
		Title:     s.Locales.Resolve(a.Title, locale),
		Excerpt:   s.Locales.Resolve(a.Excerpt, locale),
		Category:  s.Locales.Resolve(a.Category, locale),
		Author:    s.Locales.Resolve(a.Author, locale),
		Image:     a.Image,
		CreatedAt: a.CreatedAt,
		ReadTime:  a.ReadTime,
		Featured:  a.Featured,
	}
}
