// Package models defines the domain models used across the application.
package models

// PriceRecord represents one item's average price for one reporting date.
// This is the canonical format used for storage, normalized from the
// published workbook's per-weekday sheets.
type PriceRecord struct {
	// Date is the reporting date in canonical yyyy-MM-dd form.
	// The extractor formats it once; every later comparison (dedup,
	// history cutoff, snapshot) works on this exact string.
	Date string `json:"date"`

	// Item is the vegetable name as published, non-empty.
	Item string `json:"item"`

	// Price is the average price in yen, positive.
	Price float64 `json:"price"`
}
