package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// badRequestErrors отдаются клиенту с собственным текстом и кодом 400.
var badRequestErrors = []error{
	e.ErrInvalidK,
	e.ErrInvalidLimit,
	e.ErrSessionRequired,
	e.ErrInvalidSession,
	e.ErrImageURLRequired,
	e.ErrInvalidCartEntry,
	e.ErrStatusBadRequest,
}

func ToHTTPResponse(err error) (int, string) {
	if errors.Is(err, e.ErrImageNotIndexed) {
		return http.StatusNotFound, e.ErrImageNotIndexed.Error()
	}
	if errors.Is(err, e.ErrNotFound) {
		return http.StatusNotFound, e.ErrNotFound.Error()
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, target.Error()
		}
	}

	return http.StatusInternalServerError, e.ErrInternalServerError.Error()
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// parseSelection собирает выбор фасетов из query. Значение можно повторять или перечислять через запятую.
// С lang=ru значения могут приходить подписями, они приводятся к сырым.
func parseSelection(query url.Values, tr Translator) domain.Selection {
	sel := make(domain.Selection)
	for key, raw := range query {
		f, ok := domain.ParseFacet(key)
		if !ok {
			continue
		}

		for _, item := range raw {
			for _, v := range strings.Split(item, ",") {
				if v = strings.TrimSpace(v); v != "" {
					sel[f] = append(sel[f], tr.Value(f, v))
				}
			}
		}
	}

	return sel
}

// parseIntQuery возвращает nil, если параметр не задан. Явный 0 сохраняется.
func parseIntQuery(query url.Values, key string, invalid error) (*int, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, e.Wrap(key+"="+raw, invalid)
	}

	return &v, nil
}
