// Package extract turns the published workbook's weekday sheets into
// price records.
package extract

import (
	"strconv"
	"strings"

	"github.com/yasai-watch/radar/internal/models"
	"github.com/yasai-watch/radar/internal/wareki"
)

// Fixed grid layout of a weekday sheet (0-indexed rows and columns).
// The reporting date sits in B2; data rows start at row 5 with the
// sequence number in A, item name in B and average price in C.
const (
	dateCellRow  = 1
	dateCellCol  = 1
	dataStartRow = 4
	seqCol       = 0
	itemCol      = 1
	priceCol     = 2
)

// One sheet per market day, Monday through Saturday.
var weekdaySheets = map[string]bool{
	"月曜日": true,
	"火曜日": true,
	"水曜日": true,
	"木曜日": true,
	"金曜日": true,
	"土曜日": true,
}

// EligibleSheet reports whether a sheet carries price data: visible and
// named after a single market weekday.
func EligibleSheet(name string, hidden bool) bool {
	return !hidden && weekdaySheets[name]
}

// cell returns the trimmed cell value, tolerating ragged rows.
func cell(rows [][]string, row, col int) string {
	if row >= len(rows) || col >= len(rows[row]) {
		return ""
	}
	return strings.TrimSpace(rows[row][col])
}

// parsePrice parses an average price cell. Only positive values count;
// blank, unparseable and zero prices all mean the row has no usable price.
func parsePrice(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// ExtractSheet produces the ordered price records of one sheet's grid.
//
// Ineligible sheets and sheets without a reporting date yield zero records.
// Row iteration hard-stops at the first blank sequence cell; rows with a
// sequence number but missing item or price are dropped without stopping.
// A malformed reporting date is an error, not a skip.
func ExtractSheet(name string, hidden bool, rows [][]string) ([]models.PriceRecord, error) {
	if !EligibleSheet(name, hidden) {
		return nil, nil
	}

	dateCell := cell(rows, dateCellRow, dateCellCol)
	if dateCell == "" {
		return nil, nil
	}
	date, err := wareki.ToISO(dateCell)
	if err != nil {
		return nil, err
	}

	var records []models.PriceRecord
	for row := dataStartRow; row < len(rows); row++ {
		if cell(rows, row, seqCol) == "" {
			break
		}

		item := cell(rows, row, itemCol)
		price, ok := parsePrice(cell(rows, row, priceCol))
		if item == "" || !ok {
			continue
		}

		records = append(records, models.PriceRecord{
			Date:  date,
			Item:  item,
			Price: price,
		})
	}
	return records, nil
}
