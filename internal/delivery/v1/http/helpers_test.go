package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"image not indexed", fmt.Errorf("%w: %q", e.ErrImageNotIndexed, "1.jpg"), http.StatusNotFound, e.ErrImageNotIndexed.Error()},
		{"not found", e.Wrap("CartUseCase.Add", e.ErrNotFound), http.StatusNotFound, e.ErrNotFound.Error()},
		{"invalid k", e.Wrap("k=-1", e.ErrInvalidK), http.StatusBadRequest, e.ErrInvalidK.Error()},
		{"invalid session", e.Wrap("op", e.ErrInvalidSession), http.StatusBadRequest, e.ErrInvalidSession.Error()},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, e.ErrInternalServerError.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := ToHTTPResponse(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestParseSelection(t *testing.T) {
	query := url.Values{
		"Category": {"Apparel, Footwear"},
		"color":    {"Blue", " ", "Red"},
		"page":     {"2"},
	}

	sel := parseSelection(query, NewTranslator(""))

	assert.Equal(t, []string{"Apparel", "Footwear"}, sel[domain.FacetCategory])
	assert.Equal(t, []string{"Blue", "Red"}, sel[domain.FacetColor])
	assert.Len(t, sel, 2)
}

func TestParseSelection_RussianLabels(t *testing.T) {
	query := url.Values{
		"category": {"Одежда"},
		"color":    {"Тёмно-синий,Blue"},
	}

	sel := parseSelection(query, NewTranslator("RU"))

	assert.Equal(t, []string{"Apparel"}, sel[domain.FacetCategory])
	assert.Equal(t, []string{"Navy Blue", "Blue"}, sel[domain.FacetColor])
}

func TestParseIntQuery(t *testing.T) {
	v, err := parseIntQuery(url.Values{}, "k", e.ErrInvalidK)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = parseIntQuery(url.Values{"k": {"0"}}, "k", e.ErrInvalidK)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Zero(t, *v)

	v, err = parseIntQuery(url.Values{"k": {" 7 "}}, "k", e.ErrInvalidK)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 7, *v)

	_, err = parseIntQuery(url.Values{"k": {"-1"}}, "k", e.ErrInvalidK)
	assert.ErrorIs(t, err, e.ErrInvalidK)

	_, err = parseIntQuery(url.Values{"limit": {"ten"}}, "limit", e.ErrInvalidLimit)
	assert.ErrorIs(t, err, e.ErrInvalidLimit)
}

func TestTranslator(t *testing.T) {
	ru := NewTranslator("ru")
	assert.Equal(t, "Обувь", ru.Label(domain.FacetCategory, "Footwear"))
	assert.Equal(t, "Footwear", ru.Value(domain.FacetCategory, "Обувь"))
	assert.Equal(t, "Unknown", ru.Label(domain.FacetCategory, "Unknown"))
	assert.Equal(t, "Footwear", ru.Value(domain.FacetCategory, "Footwear"))

	plain := NewTranslator("")
	assert.Equal(t, "Footwear", plain.Label(domain.FacetCategory, "Footwear"))
	assert.Equal(t, "Обувь", plain.Value(domain.FacetCategory, "Обувь"))
}
