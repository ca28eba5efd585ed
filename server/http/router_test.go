package serverhttp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"match-service/internal/config"
)

func testRouterConfig() config.Config {
	return config.Config{
		AllowOrigins: []string{"*"},
		MaxUploadMB:  16,
		APIToken:     "secret",
	}
}

func TestHealth(t *testing.T) {
	r := NewRouter(testRouterConfig(), zerolog.Nop())
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestProcessingRequiresToken(t *testing.T) {
	r := NewRouter(testRouterConfig(), zerolog.Nop())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/processing/match-orders-tmc", strings.NewReader("")))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/processing/match-orders-tmc", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer wrong")
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// верный токен проходит авторизацию (и падает уже на пустой форме)
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/processing/match-orders-tmc", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer secret")
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
