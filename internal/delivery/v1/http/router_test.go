package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/internal/repository/memory"
	"github.com/DRSN-tech/go-recommender/internal/usecase"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	rows := []domain.StyleRow{
		{ID: "1", Name: "Blue Shirt", Gender: "Men", Category: "Apparel", SubCategory: "Topwear", BaseColour: "Blue", Season: "Summer", Usage: "Casual", Year: "2012"},
		{ID: "2", Name: "Navy Shirt", Gender: "Men", Category: "Apparel", SubCategory: "Topwear", BaseColour: "Navy Blue", Season: "Fall", Usage: "Casual", Year: "2011"},
		{ID: "3", Name: "Black Heels", Gender: "Women", Category: "Footwear", SubCategory: "Shoes", BaseColour: "Black", Season: "Winter", Usage: "Formal", Year: "2016"},
		{ID: "4", Name: "Perfume", Gender: "Unisex", Category: "Personal Care", SubCategory: "Fragrance", BaseColour: "Gold"},
	}
	index, err := domain.NewEmbeddingIndex(
		[]string{"1.jpg", "2.jpg", "3.jpg", "4.jpg"},
		[][]float32{{1, 0, 0}, {0.9, 0.1, 0}, {0, 1, 0}, {0, 0, 1}},
	)
	require.NoError(t, err)

	links := map[string]string{"1.jpg": "http://img/1.jpg", "2.jpg": "http://img/2.jpg"}
	catalog := domain.BuildCatalog(rows, links, index)

	catalogUC := usecase.NewCatalogUC(catalog, index, 2, 2, logger.Nop{})
	cartUC := usecase.NewCartUC(memory.NewCartRepo(), catalog, nil, logger.Nop{})

	reg := prometheus.NewRegistry()
	mux := chi.NewRouter()
	NewRouter(mux, logger.Nop{}, NewMetrics(reg), reg).Init(catalogUC, cartUC)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func doJSON(t *testing.T, method, target string, body string, out any) int {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func TestRouter_Healthz(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	assert.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/healthz", "", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_Products(t *testing.T) {
	srv := newTestServer(t)

	var list ProductListResponse
	code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/products", "", &list)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4, list.Total)
	require.Len(t, list.Items, 2, "page size caps the head")
	assert.Equal(t, int64(1), list.Items[0].ID)

	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products?category=Apparel,Footwear&color=Black&limit=10", "", &list)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "3.jpg", list.Items[0].ImagePath)

	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products?gender=Men&gender=Women&limit=10&lang=ru", "", &list)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, "Одежда", list.Items[0].Category)
	assert.Equal(t, "Синий", list.Items[0].Colour)

	q := url.Values{"category": {"Обувь"}, "lang": {"ru"}}
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products?"+q.Encode(), "", &list)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, list.Items, 1, "russian labels map back to raw values")
	assert.Equal(t, int64(3), list.Items[0].ID)

	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products?limit=0", "", &list)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4, list.Total)
	assert.Empty(t, list.Items, "explicit zero limit is not the default page")

	var errResp ErrorResponse
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products?limit=abc", "", &errResp)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_Facets(t *testing.T) {
	srv := newTestServer(t)

	var res FacetsResponse
	code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/facets?lang=ru", "", &res)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, res.GatingActive)
	require.Len(t, res.Facets["gender"], 3)
	assert.Equal(t, FacetOption{Value: "Men", Label: "Мужчины"}, res.Facets["gender"][0])
	assert.NotContains(t, res.Facets, "season")

	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/facets?category=Apparel", "", &res)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, res.GatingActive)
	assert.Equal(t, []FacetOption{{Value: "Topwear", Label: "Topwear"}}, res.Facets["subCategory"])
	assert.Len(t, res.Facets["color"], 4, "color options span the whole catalog")
}

func TestRouter_Similar(t *testing.T) {
	srv := newTestServer(t)

	var res SimilarResponse
	code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/1.jpg/similar?k=1", "", &res)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "1.jpg", res.ImagePath)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "2.jpg", res.Items[0].ImagePath)

	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/1.jpg/similar", "", &res)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, res.Items, 2, "default k")

	res = SimilarResponse{}
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/1.jpg/similar?k=0", "", &res)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, res.Items, "k=0 yields no neighbours")

	var errResp ErrorResponse
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/999.jpg/similar", "", &errResp)
	assert.Equal(t, http.StatusNotFound, code)

	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/1.jpg/similar?k=-3", "", &errResp)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_CartFlow(t *testing.T) {
	srv := newTestServer(t)

	var session SessionResponse
	require.Equal(t, http.StatusCreated, doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions", "", &session))
	require.NotEmpty(t, session.SessionID)

	cartURL := srv.URL + "/api/v1/sessions/" + session.SessionID + "/cart"

	var cart CartResponse
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, cartURL, "", &cart))
	assert.Zero(t, cart.Count)
	assert.NotNil(t, cart.Items)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, cartURL, `{"image_path":"1.jpg"}`, &cart))
	require.Equal(t, 1, cart.Count)
	assert.Equal(t, "http://img/1.jpg", cart.Items[0].ImageURL)
	assert.Equal(t, "Blue Shirt", cart.Items[0].ProductName)

	snapshot := `{"image_url":"http://img/x.jpg","product_name":"Scarf","category":"Accessories","color":"Red"}`
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, cartURL+"?lang=ru", snapshot, &cart))
	require.Equal(t, 2, cart.Count)
	assert.Equal(t, "Аксессуары", cart.Items[1].Category)
	assert.Equal(t, "Красный", cart.Items[1].Color)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodDelete, cartURL+"?image_url="+url.QueryEscape("http://img/1.jpg"), "", &cart))
	require.Equal(t, 1, cart.Count)
	assert.Equal(t, "Scarf", cart.Items[0].ProductName)

	var errResp ErrorResponse
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodDelete, cartURL, "", &errResp))
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, cartURL, `{}`, &errResp))
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, cartURL, `{not json`, &errResp))
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodPost, cartURL, `{"image_path":"42.jpg"}`, &errResp))
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodGet, srv.URL+"/api/v1/sessions/not-a-uuid/cart", "", &errResp))
}

func TestRouter_CartEntryWithoutImage(t *testing.T) {
	srv := newTestServer(t)

	var session SessionResponse
	require.Equal(t, http.StatusCreated, doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions", "", &session))
	cartURL := srv.URL + "/api/v1/sessions/" + session.SessionID + "/cart"

	var cart CartResponse
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, cartURL, `{"image_path":"3.jpg"}`, &cart))
	require.Equal(t, 1, cart.Count)
	assert.Empty(t, cart.Items[0].ImageURL)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodDelete, cartURL+"?image_url=", "", &cart))
	assert.Zero(t, cart.Count)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, cartURL, "", &cart))
	assert.Zero(t, cart.Count)
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/1.jpg/similar?k=1", "", nil)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "recommender_similar_query_duration_seconds_count 1")
	assert.Contains(t, buf.String(), `route="/api/v1/products/{imagePath}/similar"`)
}
