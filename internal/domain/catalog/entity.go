package catalog

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the canonical product shape used everywhere past the fetch
// boundary. Once a product lands in the cart it is treated as an immutable
// snapshot.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []Image         `json:"images"`
	Stock       int             `json:"stock"`
	Rating      float64         `json:"rating"`
	SellCount   int             `json:"sell_count"`
	CategoryID  int             `json:"category_id"`
}

// Image is a product image resolved to one canonical form at fetch time.
// The wire format is polymorphic: some payloads carry bare URL strings,
// others carry {"url": ..., "index": ...} objects.
type Image struct {
	URL   string `json:"url"`
	Index int    `json:"index"`
}

// UnmarshalJSON accepts both wire forms of a product image.
func (i *Image) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return err
		}
		i.URL = url
		i.Index = 0
		return nil
	}

	type imageObject Image
	var obj imageObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*i = Image(obj)
	return nil
}

// PrimaryImageURL returns the first image URL, or empty if the product has
// no images.
func (p *Product) PrimaryImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// Category is the canonical category shape. Slug and DisplayName are derived
// once from the wire payload instead of being re-parsed at every use.
type Category struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Gender string  `json:"gender"`
	Code   string  `json:"code"`
	Slug   string  `json:"-"`
	Image  string  `json:"img"`
	Rating float64 `json:"rating"`
}

// Normalize derives Slug and falls back to a usable Title for categories
// whose payload is missing the code field.
func (c *Category) Normalize() {
	if c.Code != "" {
		if _, slug, found := strings.Cut(c.Code, ":"); found && slug != "" {
			c.Slug = slug
			if c.Title == "" {
				c.Title = titleFromSlug(slug)
			}
			return
		}
		// A code without the prefix:slug form is used verbatim.
		c.Slug = c.Code
	}
	if c.Title == "" {
		c.Title = "Category"
	}
}

func titleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
