package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yasai-watch/radar/server/internal/model"
	"github.com/yasai-watch/radar/server/internal/service"
)

type stubRepository struct {
	rows []model.PriceRow
}

func (s *stubRepository) AllRecords(ctx context.Context) ([]model.PriceRow, error) {
	return s.rows, nil
}

func newTestRouter(rows []model.PriceRow) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPriceHandler(service.NewPriceService(&stubRepository{rows: rows}))
	router := gin.New()
	router.GET("/v1/vegetables", h.Query)
	return router
}

func doQuery(t *testing.T, router *gin.Engine, url string) (int, map[string]json.RawMessage) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response is not JSON: %v (%s)", err, w.Body.String())
	}
	return w.Code, body
}

func status(t *testing.T, body map[string]json.RawMessage) string {
	t.Helper()

	var s string
	if err := json.Unmarshal(body["status"], &s); err != nil {
		t.Fatalf("Missing status field: %v", err)
	}
	return s
}

func TestQueryLatestPrices(t *testing.T) {
	router := newTestRouter([]model.PriceRow{
		{Date: "2024-05-01", Item: "キャベツ", Price: 120},
	})

	code, body := doQuery(t, router, "/v1/vegetables?path=vegetables-list-with-prices")
	if code != http.StatusOK {
		t.Fatalf("Status code = %d", code)
	}
	if s := status(t, body); s != "success" {
		t.Errorf("status = %q", s)
	}

	var data struct {
		Items  []string                     `json:"items"`
		Prices map[string]model.LatestEntry `json:"prices"`
	}
	if err := json.Unmarshal(body["data"], &data); err != nil {
		t.Fatalf("Bad data field: %v", err)
	}
	if len(data.Items) != 1 || data.Items[0] != "キャベツ" {
		t.Errorf("Items = %v", data.Items)
	}
	if data.Prices["キャベツ"].Price != 120 {
		t.Errorf("Prices = %v", data.Prices)
	}
}

func TestQueryDefaultsToHistory(t *testing.T) {
	router := newTestRouter(nil)

	code, body := doQuery(t, router, "/v1/vegetables")
	if code != http.StatusOK {
		t.Fatalf("Status code = %d", code)
	}
	if s := status(t, body); s != "success" {
		t.Errorf("status = %q", s)
	}
	if _, ok := body["dates"]; !ok {
		t.Error("History response should carry a dates field")
	}
}

func TestQuerySnapshotEmptyStore(t *testing.T) {
	router := newTestRouter(nil)

	code, body := doQuery(t, router, "/v1/vegetables?path=vegetables")
	if code != http.StatusOK {
		t.Fatalf("Status code = %d", code)
	}

	var data []model.SnapshotItem
	if err := json.Unmarshal(body["data"], &data); err != nil {
		t.Fatalf("Bad data field: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Expected empty snapshot, got %v", data)
	}
}

func TestQueryUnknownPath(t *testing.T) {
	router := newTestRouter(nil)

	code, body := doQuery(t, router, "/v1/vegetables?path=fruits")
	if code != http.StatusBadRequest {
		t.Fatalf("Status code = %d, expected 400", code)
	}
	if s := status(t, body); s != "error" {
		t.Errorf("status = %q, expected error", s)
	}
	if _, ok := body["message"]; !ok {
		t.Error("Error response should carry a message field")
	}
}
