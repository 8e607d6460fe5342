package model

// PriceRow is one stored price record in insertion order.
type PriceRow struct {
	Date  string  `json:"date"`
	Item  string  `json:"item"`
	Price float64 `json:"price"`
}

// LatestEntry is an item's most recent price and its reporting date.
type LatestEntry struct {
	Price float64 `json:"price"`
	Date  string  `json:"date"`
}

// PricePoint is one dated price inside an item's history.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// SnapshotItem is one item of the latest reporting day.
type SnapshotItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
