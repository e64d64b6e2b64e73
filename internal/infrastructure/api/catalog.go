package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/your-org/storefront-client/internal/domain/catalog"
)

// ProductQuery narrows a product list request. Zero values are omitted from
// the query string.
type ProductQuery struct {
	Category   string
	Filter     string
	Sort       string
	CategoryID int
	Limit      int
	Offset     int
}

// ProductList is the product list payload: one page of products plus the
// total count for pagination.
type ProductList struct {
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
}

// ListProducts fetches a page of products, retrying transient failures
// within the products budget.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (ProductList, error) {
	query := url.Values{}
	if q.Category != "" {
		query.Set("category", q.Category)
	}
	if q.Filter != "" {
		query.Set("filter", q.Filter)
	}
	if q.Sort != "" {
		query.Set("sort", q.Sort)
	}
	if q.CategoryID > 0 {
		query.Set("categoryId", strconv.Itoa(q.CategoryID))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		query.Set("offset", strconv.Itoa(q.Offset))
	}

	return doWithRetry(ctx, c.products, c.sleep, c.logger, "list products", func(ctx context.Context) (ProductList, error) {
		var list ProductList
		if err := c.do(ctx, http.MethodGet, "/products", query, nil, &list); err != nil {
			return ProductList{}, err
		}
		if list.Products == nil {
			list.Products = []catalog.Product{}
		}
		return list, nil
	})
}

// GetProduct fetches a single product by id under the products retry budget.
func (c *Client) GetProduct(ctx context.Context, id int) (catalog.Product, error) {
	return doWithRetry(ctx, c.products, c.sleep, c.logger, "get product", func(ctx context.Context) (catalog.Product, error) {
		var product catalog.Product
		if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &product); err != nil {
			return catalog.Product{}, err
		}
		return product, nil
	})
}

// ListCategories fetches all categories under the categories retry budget.
// Categories are normalized at this boundary: slugs are derived from the
// code field once, and entries missing a code still come out usable.
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return doWithRetry(ctx, c.categories, c.sleep, c.logger, "list categories", func(ctx context.Context) ([]catalog.Category, error) {
		var categories []catalog.Category
		if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
			return nil, err
		}
		for i := range categories {
			categories[i].Normalize()
		}
		return categories, nil
	})
}
