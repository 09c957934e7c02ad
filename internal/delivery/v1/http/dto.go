package http

import (
	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/internal/usecase"
)

type ProductResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`
	ArticleType string `json:"article_type"`
	Colour      string `json:"colour"`
	Season      string `json:"season"`
	Usage       string `json:"usage"`
	Year        string `json:"year"`
	ImagePath   string `json:"image_path"`
	ImageURL    string `json:"image_url"`
}

type ProductListResponse struct {
	Total int               `json:"total"`
	Items []ProductResponse `json:"items"`
}

type SimilarResponse struct {
	ImagePath string            `json:"image_path"`
	Items     []ProductResponse `json:"items"`
}

type FacetOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FacetsResponse struct {
	GatingActive bool                     `json:"gating_active"`
	Facets       map[string][]FacetOption `json:"facets"`
}

// CartEntryRequest задаёт товар ссылкой на изображение каталога либо полным снимком полей.
type CartEntryRequest struct {
	ImagePath   string `json:"image_path"`
	ImageURL    string `json:"image_url"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Season      string `json:"season"`
	Usage       string `json:"usage"`
	Year        string `json:"year"`
}

type CartEntryResponse struct {
	ImageURL    string `json:"image_url"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Season      string `json:"season"`
	Usage       string `json:"usage"`
	Year        string `json:"year"`
}

type CartResponse struct {
	SessionID string              `json:"session_id"`
	Items     []CartEntryResponse `json:"items"`
	Count     int                 `json:"count"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
}

func newProductResponse(p domain.Product, tr Translator) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Gender:      tr.Label(domain.FacetGender, p.Gender),
		Category:    tr.Label(domain.FacetCategory, p.Category),
		SubCategory: tr.Label(domain.FacetSubCategory, p.SubCategory),
		ArticleType: p.ArticleType,
		Colour:      tr.Label(domain.FacetColor, p.BaseColour),
		Season:      tr.Label(domain.FacetSeason, p.Season),
		Usage:       tr.Label(domain.FacetUsage, p.Usage),
		Year:        p.Year,
		ImagePath:   p.ImagePath,
		ImageURL:    p.ImageURL,
	}
}

func newProductResponses(products []domain.Product, tr Translator) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i, p := range products {
		res[i] = newProductResponse(p, tr)
	}

	return res
}

func newFacetsResponse(res *usecase.FacetOptionsRes, tr Translator) *FacetsResponse {
	facets := make(map[string][]FacetOption, len(res.Options))
	for f, values := range res.Options {
		opts := make([]FacetOption, len(values))
		for i, v := range values {
			opts[i] = FacetOption{Value: v, Label: tr.Label(f, v)}
		}
		facets[string(f)] = opts
	}

	return &FacetsResponse{
		GatingActive: res.GatingActive,
		Facets:       facets,
	}
}

// toAddToCartReq: при заданном image_path снимок строится из каталога, остальные поля игнорируются.
func (c *CartEntryRequest) toAddToCartReq(sessionID string) *usecase.AddToCartReq {
	if c.ImagePath != "" || c.ImageURL == "" {
		return usecase.NewAddToCartReq(sessionID, c.ImagePath, nil)
	}

	return usecase.NewAddToCartReq(sessionID, "", &domain.CartEntry{
		ImageURL:    c.ImageURL,
		ProductName: c.ProductName,
		Category:    c.Category,
		Color:       c.Color,
		Season:      c.Season,
		Usage:       c.Usage,
		Year:        c.Year,
	})
}

func newCartResponse(res *usecase.CartRes, tr Translator) *CartResponse {
	items := make([]CartEntryResponse, len(res.Entries))
	for i, entry := range res.Entries {
		items[i] = CartEntryResponse{
			ImageURL:    entry.ImageURL,
			ProductName: entry.ProductName,
			Category:    tr.Label(domain.FacetCategory, entry.Category),
			Color:       tr.Label(domain.FacetColor, entry.Color),
			Season:      tr.Label(domain.FacetSeason, entry.Season),
			Usage:       tr.Label(domain.FacetUsage, entry.Usage),
			Year:        entry.Year,
		}
	}

	return &CartResponse{
		SessionID: res.SessionID,
		Items:     items,
		Count:     len(items),
	}
}
