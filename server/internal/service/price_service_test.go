package service

import (
	"context"
	"testing"
	"time"

	"github.com/yasai-watch/radar/server/internal/model"
)

type stubRepository struct {
	rows []model.PriceRow
}

func (s *stubRepository) AllRecords(ctx context.Context) ([]model.PriceRow, error) {
	return s.rows, nil
}

func fixedService(rows []model.PriceRow, now time.Time) *PriceService {
	svc := NewPriceService(&stubRepository{rows: rows})
	svc.now = func() time.Time { return now }
	return svc
}

func TestLatestPrices(t *testing.T) {
	rows := []model.PriceRow{
		{Date: "2024-05-01", Item: "キャベツ", Price: 10},
		{Date: "2024-05-02", Item: "キャベツ", Price: 12},
		{Date: "2024-05-01", Item: "たまねぎ", Price: 5},
	}
	svc := fixedService(rows, time.Now())

	items, latest, err := svc.LatestPrices(context.Background())
	if err != nil {
		t.Fatalf("LatestPrices returned error: %v", err)
	}

	if len(items) != 2 || items[0] != "たまねぎ" || items[1] != "キャベツ" {
		t.Errorf("Items = %v, expected sorted [たまねぎ キャベツ]", items)
	}
	if entry := latest["キャベツ"]; entry.Price != 12 || entry.Date != "2024-05-02" {
		t.Errorf("キャベツ entry = %+v, expected the later price 12 on 2024-05-02", entry)
	}
	if entry := latest["たまねぎ"]; entry.Price != 5 || entry.Date != "2024-05-01" {
		t.Errorf("たまねぎ entry = %+v", entry)
	}
}

func TestLatestPricesEmptyStore(t *testing.T) {
	svc := fixedService(nil, time.Now())

	items, latest, err := svc.LatestPrices(context.Background())
	if err != nil {
		t.Fatalf("LatestPrices returned error: %v", err)
	}
	if len(items) != 0 || len(latest) != 0 {
		t.Errorf("Expected empty projection, got items=%v latest=%v", items, latest)
	}
}

func TestHistoryCutoff(t *testing.T) {
	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)
	// 30 days before 2024-05-31 is 2024-05-01.
	rows := []model.PriceRow{
		{Date: "2024-04-30", Item: "キャベツ", Price: 100},
		{Date: "2024-05-01", Item: "キャベツ", Price: 110},
		{Date: "2024-05-15", Item: "キャベツ", Price: 120},
		{Date: "2024-05-15", Item: "たまねぎ", Price: 90},
	}
	svc := fixedService(rows, now)

	history, dates, err := svc.History(context.Background())
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}

	points := history["キャベツ"]
	if len(points) != 2 {
		t.Fatalf("Expected 2 points for キャベツ, got %v", points)
	}
	if points[0].Date != "2024-05-01" {
		t.Errorf("Boundary date should be included, first point = %+v", points[0])
	}
	if points[1].Date != "2024-05-15" || points[1].Price != 120 {
		t.Errorf("Second point = %+v", points[1])
	}

	if len(dates) != 2 || dates[0] != "2024-05-01" || dates[1] != "2024-05-15" {
		t.Errorf("Dates = %v, expected ascending [2024-05-01 2024-05-15]", dates)
	}

	if _, ok := history["たまねぎ"]; !ok {
		t.Error("Expected たまねぎ in history")
	}
}

func TestHistoryPreservesRowOrder(t *testing.T) {
	now := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	rows := []model.PriceRow{
		{Date: "2024-05-10", Item: "キャベツ", Price: 100},
		{Date: "2024-05-11", Item: "キャベツ", Price: 105},
		{Date: "2024-05-12", Item: "キャベツ", Price: 95},
	}
	svc := fixedService(rows, now)

	history, _, err := svc.History(context.Background())
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}

	points := history["キャベツ"]
	expected := []float64{100, 105, 95}
	if len(points) != len(expected) {
		t.Fatalf("Expected %d points, got %d", len(expected), len(points))
	}
	for i, p := range points {
		if p.Price != expected[i] {
			t.Errorf("Point %d price = %v, expected %v", i, p.Price, expected[i])
		}
	}
}

func TestLatestSnapshot(t *testing.T) {
	rows := []model.PriceRow{
		{Date: "2024-05-01", Item: "キャベツ", Price: 100},
		{Date: "2024-05-02", Item: "キャベツ", Price: 110},
		{Date: "2024-05-02", Item: "たまねぎ", Price: 90},
	}
	svc := fixedService(rows, time.Now())

	snapshot, err := svc.LatestSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LatestSnapshot returned error: %v", err)
	}

	if len(snapshot) != 2 {
		t.Fatalf("Expected 2 snapshot items, got %v", snapshot)
	}
	if snapshot[0].Name != "キャベツ" || snapshot[0].Price != 110 {
		t.Errorf("First snapshot item = %+v", snapshot[0])
	}
	if snapshot[1].Name != "たまねぎ" || snapshot[1].Price != 90 {
		t.Errorf("Second snapshot item = %+v", snapshot[1])
	}
}

func TestLatestSnapshotEmptyStore(t *testing.T) {
	svc := fixedService(nil, time.Now())

	snapshot, err := svc.LatestSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LatestSnapshot returned error: %v", err)
	}
	if snapshot == nil || len(snapshot) != 0 {
		t.Errorf("Expected empty non-nil snapshot, got %v", snapshot)
	}
}
