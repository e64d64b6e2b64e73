package catalog

import (
	"encoding/json"
	"testing"
)

func TestProductUnmarshalImageForms(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []Image
	}{
		{
			name:    "bare string images",
			payload: `{"id":1,"name":"Tee","images":["https://cdn.example/a.jpg","https://cdn.example/b.jpg"]}`,
			want: []Image{
				{URL: "https://cdn.example/a.jpg", Index: 0},
				{URL: "https://cdn.example/b.jpg", Index: 0},
			},
		},
		{
			name:    "object images",
			payload: `{"id":1,"name":"Tee","images":[{"url":"https://cdn.example/a.jpg","index":0},{"url":"https://cdn.example/b.jpg","index":1}]}`,
			want: []Image{
				{URL: "https://cdn.example/a.jpg", Index: 0},
				{URL: "https://cdn.example/b.jpg", Index: 1},
			},
		},
		{
			name:    "no images",
			payload: `{"id":1,"name":"Tee"}`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			if err := json.Unmarshal([]byte(tt.payload), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(p.Images) != len(tt.want) {
				t.Fatalf("got %d images, want %d", len(p.Images), len(tt.want))
			}
			for i, want := range tt.want {
				if p.Images[i] != want {
					t.Errorf("image %d = %+v, want %+v", i, p.Images[i], want)
				}
			}
		})
	}
}

func TestPrimaryImageURL(t *testing.T) {
	p := Product{Images: []Image{{URL: "https://cdn.example/a.jpg"}, {URL: "https://cdn.example/b.jpg"}}}
	if got := p.PrimaryImageURL(); got != "https://cdn.example/a.jpg" {
		t.Fatalf("PrimaryImageURL = %q", got)
	}

	empty := Product{}
	if got := empty.PrimaryImageURL(); got != "" {
		t.Fatalf("PrimaryImageURL on empty = %q, want empty", got)
	}
}

func TestCategoryNormalize(t *testing.T) {
	tests := []struct {
		name      string
		category  Category
		wantSlug  string
		wantTitle string
	}{
		{
			name:      "gender prefixed code",
			category:  Category{Code: "k:tisort", Title: "Tisort"},
			wantSlug:  "tisort",
			wantTitle: "Tisort",
		},
		{
			name:      "missing title derived from slug",
			category:  Category{Code: "e:slim-fit-jeans"},
			wantSlug:  "slim-fit-jeans",
			wantTitle: "Slim Fit Jeans",
		},
		{
			name:      "code without prefix used verbatim",
			category:  Category{Code: "outerwear", Title: "Outerwear"},
			wantSlug:  "outerwear",
			wantTitle: "Outerwear",
		},
		{
			name:      "empty code keeps fallback title",
			category:  Category{},
			wantSlug:  "",
			wantTitle: "Category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.category
			c.Normalize()
			if c.Slug != tt.wantSlug {
				t.Errorf("Slug = %q, want %q", c.Slug, tt.wantSlug)
			}
			if c.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", c.Title, tt.wantTitle)
			}
		})
	}
}
