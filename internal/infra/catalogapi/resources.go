package catalogapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"egreen-site/internal/common/pagination"
	"egreen-site/internal/domain/entity"
)

// ProductPage is one page of the product listing.
type ProductPage struct {
	Products   []entity.Product
	Pagination pagination.Metadata
}

// ContactRequest is the contact form payload accepted by POST /contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message,omitempty"`
}

var (
	productTags  = []Tag{TagProducts}
	categoryTags = []Tag{TagCategories}
	articleTags  = []Tag{TagArticles}
)

// ListProducts fetches one page of products. The page in the result is the
// server's, which may differ from q.Page when the request was out of range.
func (c *Client) ListProducts(ctx context.Context, q Query) (*ProductPage, error) {
	data, err := fetch(ctx, c, "product", "/product", q, productTags, checkProductList)
	if err != nil {
		return nil, err
	}
	page := &ProductPage{
		Products:   make([]entity.Product, 0, len(data.Products)),
		Pagination: data.metadata(q),
	}
	for _, p := range data.Products {
		page.Products = append(page.Products, p.toEntity())
	}
	return page, nil
}

// GetProduct fetches a single product. A blank id is reported as not found
// without contacting the API.
func (c *Client) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	path, err := itemPath("product", id)
	if err != nil {
		return nil, err
	}
	data, err := fetch(ctx, c, "product/:id", path, Query{}, productTags, checkProduct)
	if err != nil {
		return nil, err
	}
	p := data.Product.toEntity()
	return &p, nil
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]entity.Category, error) {
	data, err := fetch(ctx, c, "category", "/category", Query{}, categoryTags, checkCategoryList)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Category, 0, len(data.Categories))
	for _, cat := range data.Categories {
		out = append(out, cat.toEntity())
	}
	return out, nil
}

// GetCategory fetches a single category.
func (c *Client) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	path, err := itemPath("category", id)
	if err != nil {
		return nil, err
	}
	data, err := fetch(ctx, c, "category/:id", path, Query{}, categoryTags, checkCategory)
	if err != nil {
		return nil, err
	}
	cat := data.Category.toEntity()
	return &cat, nil
}

// ListArticles fetches every article.
func (c *Client) ListArticles(ctx context.Context) ([]entity.Article, error) {
	data, err := fetch(ctx, c, "article", "/article", Query{}, articleTags, checkArticleList)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Article, 0, len(data.Articles))
	for _, a := range data.Articles {
		out = append(out, a.toEntity())
	}
	return out, nil
}

// GetArticle fetches a single article.
func (c *Client) GetArticle(ctx context.Context, id string) (*entity.Article, error) {
	path, err := itemPath("article", id)
	if err != nil {
		return nil, err
	}
	data, err := fetch(ctx, c, "article/:id", path, Query{}, articleTags, checkArticle)
	if err != nil {
		return nil, err
	}
	a := data.Article.toEntity()
	return &a, nil
}

// SubmitContact posts the contact form and returns the API's confirmation
// message. It is never cached; on success the Contact tag is invalidated.
func (c *Client) SubmitContact(ctx context.Context, req ContactRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &FetchError{Kind: KindNetwork, Message: "contact submission throttled", Err: err}
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return "", &FetchError{Kind: KindNetwork, Message: "encode contact request", Err: err}
	}
	body, err := c.send(ctx, http.MethodPost, "contact", "/contact", payload)
	if err != nil {
		return "", err
	}
	c.Invalidate(TagContact)

	env, err := parseEnvelope(http.StatusOK, body)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func itemPath(resource, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", &FetchError{Kind: KindNotFound, Message: resource + " id is empty"}
	}
	return "/" + resource + "/" + url.PathEscape(id), nil
}
