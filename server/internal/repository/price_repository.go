package repository

import (
	"context"
	"database/sql"

	"github.com/yasai-watch/radar/server/internal/model"
)

type PriceRepository interface {
	// AllRecords returns every stored price row in insertion order.
	AllRecords(ctx context.Context) ([]model.PriceRow, error)
}

type sqlitePriceRepository struct {
	db *sql.DB
}

func NewSQLitePriceRepository(db *sql.DB) PriceRepository {
	return &sqlitePriceRepository{db: db}
}

// AllRecords re-scans the full store on every call; the projections are
// recomputed per query and nothing is cached.
func (r *sqlitePriceRepository) AllRecords(ctx context.Context) ([]model.PriceRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, item, price FROM prices ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.PriceRow
	for rows.Next() {
		var row model.PriceRow
		if err := rows.Scan(&row.Date, &row.Item, &row.Price); err != nil {
			return nil, err
		}
		records = append(records, row)
	}
	return records, rows.Err()
}
