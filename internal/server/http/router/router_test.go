package router

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	var deadline bool
	facade := testhelpers.StorefrontFacadeStub{
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			OrdersFn: func(ctx context.Context) ([]model.Order, error) {
				_, deadline = ctx.Deadline()
				return []model.Order{*testhelpers.SampleOrder("o1")}, nil
			},
		},
	}
	engine := Setup(facade, &config.Config{RequestTimeout: time.Second}, logger)

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/api/orders", "", http.StatusOK},
		{http.MethodPost, "/api/orders", `{"items":[{"product_id":"p1","quantity":1}]}`, http.StatusCreated},
		{http.MethodGet, "/api/orders/o1", "", http.StatusOK},
		{http.MethodPut, "/api/orders/o1", `{"items":[{"product_id":"p1","quantity":1}]}`, http.StatusOK},
		{http.MethodPatch, "/api/orders/o1/cancel", "", http.StatusOK},
		{http.MethodGet, "/api/products", "", http.StatusOK},
		{http.MethodPost, "/api/products", `{"name":"Widget","unit_price":1}`, http.StatusCreated},
		{http.MethodGet, "/api/products/p1", "", http.StatusOK},
		{http.MethodPut, "/api/products/p1", `{"name":"Widget","unit_price":1}`, http.StatusOK},
		{http.MethodPatch, "/api/products/p1", `{"stock_quantity":3}`, http.StatusOK},
		{http.MethodDelete, "/api/products/p1", "", http.StatusNoContent},
		{http.MethodGet, "/api/customers", "", http.StatusOK},
		{http.MethodPost, "/api/customers", `{"name":"Ana","email":"ana@example.com"}`, http.StatusCreated},
		{http.MethodGet, "/api/customers/c1", "", http.StatusOK},
		{http.MethodPut, "/api/customers/c1", `{"name":"Ana","email":"ana@example.com"}`, http.StatusOK},
		{http.MethodDelete, "/api/customers/c1", "", http.StatusNoContent},
	}
	for _, tc := range cases {
		var reader io.Reader
		if tc.body != "" {
			reader = bytes.NewReader([]byte(tc.body))
		}
		req := httptest.NewRequest(tc.method, tc.path, reader)
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != tc.status {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.status, resp.Code)
		}
		if resp.Header().Get(middleware.RequestIDHeader) == "" {
			t.Fatalf("%s %s: expected request id header", tc.method, tc.path)
		}
	}
	if !deadline {
		t.Fatalf("expected handlers to receive a bounded context")
	}
}

func TestSetupCompressesResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := Setup(testhelpers.StorefrontFacadeStub{}, &config.Config{}, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoded response")
	}
	reader, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer reader.Close()
	body, _ := io.ReadAll(reader)
	if !bytes.Contains(body, []byte(`"data"`)) {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestSetupUnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := Setup(testhelpers.StorefrontFacadeStub{}, &config.Config{}, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

var _ handlers.StorefrontFacade = testhelpers.StorefrontFacadeStub{}
