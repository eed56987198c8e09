package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathParam(t *testing.T) {
	tests := []struct {
		path     string
		prefix   string
		suffix   string
		expected string
	}{
		{"/api/properties/abc", "/api/properties/", "", "abc"},
		{"/api/properties/abc/simulate", "/api/properties/", "/simulate", "abc"},
		{"/api/properties/abc/alerts", "/api/properties/", "/alerts", "abc"},
		{"/api/properties/abc/extra", "/api/properties/", "", "abc"},
		{"/other/path", "/api/properties/", "", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		assert.Equal(t, tt.expected, PathParam(req, tt.prefix, tt.suffix), tt.path)
	}
}

func TestRequireMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/x", nil)
	rec := httptest.NewRecorder()

	ok := RequireMethod(rec, req, http.MethodGet, http.MethodPost)
	assert.False(t, ok)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	rec = httptest.NewRecorder()
	assert.True(t, RequireMethod(rec, req, http.MethodGet))
}

func TestDecodeJSON_SizeLimit(t *testing.T) {
	big := `{"nickname":"` + strings.Repeat("a", 1<<21) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(big))
	rec := httptest.NewRecorder()

	var v map[string]interface{}
	assert.False(t, DecodeJSON(rec, req, &v))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
