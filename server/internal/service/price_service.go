package service

import (
	"context"
	"sort"
	"time"

	"github.com/yasai-watch/radar/server/internal/model"
	"github.com/yasai-watch/radar/server/internal/repository"
)

const historyWindow = 30 * 24 * time.Hour

// PriceService computes the read projections over the stored price history.
// Every projection re-scans the full store; nothing is cached between calls.
type PriceService struct {
	repo repository.PriceRepository
	now  func() time.Time
}

func NewPriceService(repo repository.PriceRepository) *PriceService {
	return &PriceService{
		repo: repo,
		now:  time.Now,
	}
}

// LatestPrices returns the lexicographically sorted item list and each
// item's most recently stored price and date.
func (ps *PriceService) LatestPrices(ctx context.Context) ([]string, map[string]model.LatestEntry, error) {
	rows, err := ps.repo.AllRecords(ctx)
	if err != nil {
		return nil, nil, err
	}

	// Newest rows are appended last; scanning backwards lets the first
	// hit per item win.
	latest := make(map[string]model.LatestEntry)
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		if _, seen := latest[row.Item]; seen {
			continue
		}
		latest[row.Item] = model.LatestEntry{Price: row.Price, Date: row.Date}
	}

	items := make([]string, 0, len(latest))
	for item := range latest {
		items = append(items, item)
	}
	sort.Strings(items)

	return items, latest, nil
}

// History returns per-item price points of the last 30 days, row order
// preserved within each item, plus the ascending list of distinct dates.
// The cutoff date itself is included.
func (ps *PriceService) History(ctx context.Context) (map[string][]model.PricePoint, []string, error) {
	rows, err := ps.repo.AllRecords(ctx)
	if err != nil {
		return nil, nil, err
	}

	// Stored dates are canonical yyyy-MM-dd, so the cutoff comparison is
	// a plain string compare.
	cutoff := ps.now().UTC().Add(-historyWindow).Format("2006-01-02")

	history := make(map[string][]model.PricePoint)
	dateSet := make(map[string]bool)
	for _, row := range rows {
		if row.Date < cutoff {
			continue
		}
		history[row.Item] = append(history[row.Item], model.PricePoint{Date: row.Date, Price: row.Price})
		dateSet[row.Date] = true
	}

	dates := make([]string, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	return history, dates, nil
}

// LatestSnapshot returns every item of the most recent reporting date, the
// date of the last stored row. An empty store yields an empty list.
func (ps *PriceService) LatestSnapshot(ctx context.Context) ([]model.SnapshotItem, error) {
	rows, err := ps.repo.AllRecords(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []model.SnapshotItem{}, nil
	}

	lastDate := rows[len(rows)-1].Date
	items := make([]model.SnapshotItem, 0)
	for _, row := range rows {
		if row.Date == lastDate {
			items = append(items, model.SnapshotItem{Name: row.Item, Price: row.Price})
		}
	}
	return items, nil
}
