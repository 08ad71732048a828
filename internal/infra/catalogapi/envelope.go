package catalogapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"egreen-site/internal/common/pagination"
	"egreen-site/internal/domain/entity"
	"egreen-site/internal/utils/text"
)

// excerptLength is the number of plain-text characters used when an article
// has no excerpt for a locale.
const excerptLength = 100

// envelope is the wrapper every API response uses.
type envelope struct {
	Status  *bool           `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// parseEnvelope validates the outer wrapper. status false is a server error.
func parseEnvelope(httpStatus int, body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &FetchError{Kind: KindMalformed, Status: httpStatus, Message: "invalid response body", Err: err}
	}
	if env.Status == nil {
		return nil, &FetchError{Kind: KindMalformed, Status: httpStatus, Message: "response has no status"}
	}
	if !*env.Status {
		msg := env.Message
		if msg == "" {
			msg = "request rejected"
		}
		return nil, &FetchError{Kind: KindServer, Status: httpStatus, Message: msg}
	}
	return &env, nil
}

// errorMessage extracts the message of an error response, if any.
func errorMessage(body []byte) string {
	var env envelope
	if json.Unmarshal(body, &env) == nil && env.Message != "" {
		return env.Message
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// decodeData decodes the data member of a validated body and checks its shape.
func decodeData[T any](body []byte, check func(*T) error) (*T, error) {
	var wrapper struct {
		Data *T `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, &FetchError{Kind: KindMalformed, Message: "invalid data payload", Err: err}
	}
	if wrapper.Data == nil {
		return nil, &FetchError{Kind: KindMalformed, Message: "response has no data"}
	}
	if check != nil {
		if err := check(wrapper.Data); err != nil {
			return nil, &FetchError{Kind: KindMalformed, Message: err.Error()}
		}
	}
	return wrapper.Data, nil
}

// localized accepts either an object keyed by locale or a bare string, which
// applies to every locale.
type localized entity.LocalizedString

func (l *localized) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = localized{entity.LocaleEN: s, entity.LocaleAR: s, entity.LocaleFR: s}
		return nil
	}
	var m map[entity.Locale]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*l = localized(m)
	return nil
}

type wireCategory struct {
	ID   string    `json:"_id"`
	Name localized `json:"name"`
}

func (c wireCategory) toEntity() entity.Category {
	return entity.Category{ID: c.ID, Name: entity.LocalizedString(c.Name)}
}

// categoryRef is a product's category, either populated or a bare id.
type categoryRef struct {
	wireCategory
}

func (r *categoryRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &r.ID)
	}
	return json.Unmarshal(b, &r.wireCategory)
}

type wireProduct struct {
	ID          string      `json:"_id"`
	Name        localized   `json:"name"`
	Description localized   `json:"description"`
	Image       string      `json:"image"`
	Category    categoryRef `json:"category"`
}

func (p wireProduct) toEntity() entity.Product {
	return entity.Product{
		ID:          p.ID,
		Name:        entity.LocalizedString(p.Name),
		Description: entity.LocalizedString(p.Description),
		Image:       p.Image,
		Category:    p.Category.toEntity(),
	}
}

type wirePagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
}

type productListData struct {
	Products   []wireProduct   `json:"products"`
	Pagination *wirePagination `json:"pagination"`
}

func checkProductList(d *productListData) error {
	if d.Products == nil {
		return fmt.Errorf("response has no products")
	}
	return nil
}

// metadata returns the server pagination, synthesising it for an
// unpaginated response.
func (d *productListData) metadata(q Query) pagination.Metadata {
	if d.Pagination == nil {
		limit := q.Limit
		if limit <= 0 {
			limit = len(d.Products)
		}
		return pagination.Metadata{
			CurrentPage: 1,
			TotalPages:  1,
			Limit:       limit,
			Total:       int64(len(d.Products)),
		}
	}
	m := pagination.Metadata{
		CurrentPage: d.Pagination.CurrentPage,
		TotalPages:  d.Pagination.TotalPages,
		Limit:       d.Pagination.Limit,
		Total:       d.Pagination.Total,
	}
	if m.TotalPages < 1 {
		m.TotalPages = 1
	}
	if m.CurrentPage < 1 {
		m.CurrentPage = 1
	}
	return m
}

type productData struct {
	Product *wireProduct `json:"product"`
}

func checkProduct(d *productData) error {
	if d.Product == nil || d.Product.ID == "" {
		return fmt.Errorf("response has no product")
	}
	return nil
}

type categoryListData struct {
	Categories []wireCategory `json:"categories"`
}

func checkCategoryList(d *categoryListData) error {
	if d.Categories == nil {
		return fmt.Errorf("response has no categories")
	}
	return nil
}

type categoryData struct {
	Category *wireCategory `json:"category"`
}

func checkCategory(d *categoryData) error {
	if d.Category == nil || d.Category.ID == "" {
		return fmt.Errorf("response has no category")
	}
	return nil
}

type wireArticle struct {
	ID        string    `json:"_id"`
	Title     localized `json:"title"`
	Content   localized `json:"content"`
	Excerpt   localized `json:"excerpt"`
	Category  localized `json:"category"`
	Author    localized `json:"author"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt string    `json:"createdAt"`
	ReadTime  float64   `json:"readTime"`
	Featured  bool      `json:"featured"`
}

// toEntity converts the wire article and fills in the derived excerpt and
// read time.
func (a wireArticle) toEntity() entity.Article {
	content := entity.LocalizedString(a.Content)
	excerpt := entity.LocalizedString(a.Excerpt).Clone()
	if excerpt == nil {
		excerpt = entity.LocalizedString{}
	}

	readTime := int(math.Ceil(a.ReadTime))
	derived := 0
	for locale, html := range content {
		plain := text.PlainText(html)
		if minutes := text.ReadTime(plain); minutes > derived {
			derived = minutes
		}
		if _, ok := excerpt.Get(locale); ok || plain == "" {
			continue
		}
		excerpt[locale] = text.Truncate(plain, excerptLength, "") + "..."
	}

	if readTime <= 0 {
		readTime = derived
	}
	if readTime <= 0 {
		readTime = entity.DefaultReadTime
	}

	return entity.Article{
		ID:        a.ID,
		Title:     entity.LocalizedString(a.Title),
		Content:   content,
		Excerpt:   excerpt,
		Category:  entity.LocalizedString(a.Category),
		Author:    entity.LocalizedString(a.Author),
		Image:     a.ImageURL,
		CreatedAt: parseTime(a.CreatedAt),
		Featured:  a.Featured,
		ReadTime:  readTime,
	}
}

type articleListData struct {
	Articles []wireArticle `json:"articles"`
}

func checkArticleList(d *articleListData) error {
	if d.Articles == nil {
		return fmt.Errorf("response has no articles")
	}
	return nil
}

type articleData struct {
	Article *wireArticle `json:"article"`
}

func checkArticle(d *articleData) error {
	if d.Article == nil || d.Article.ID == "" {
		return fmt.Errorf("response has no article")
	}
	return nil
}

// parseTime accepts the timestamp layouts the API has been seen to emit.
// Unparseable values yield the zero time.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
