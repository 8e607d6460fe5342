package extract

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/yasai-watch/radar/internal/models"
	"github.com/yasai-watch/radar/internal/scraper"
)

// Pipeline runs one collection: resolve the current workbook link, download
// it, and extract records from every eligible sheet.
//
// Errors propagate to the caller unhandled; the scheduled driver decides
// what to log. Nothing is appended to storage by the pipeline itself, so a
// failed run commits nothing.
type Pipeline struct {
	fetcher    *scraper.Fetcher
	resolver   scraper.LinkResolver
	listingURL string
	logger     *logrus.Logger
}

// NewPipeline wires a pipeline from its collaborators.
func NewPipeline(fetcher *scraper.Fetcher, resolver scraper.LinkResolver, listingURL string, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		resolver:   resolver,
		listingURL: listingURL,
		logger:     logger,
	}
}

// Run produces the flat ordered record batch of one collection run.
func (p *Pipeline) Run(ctx context.Context) ([]models.PriceRecord, error) {
	page, err := p.fetcher.GetPage(ctx, p.listingURL)
	if err != nil {
		return nil, err
	}

	fileURL, err := p.resolver.Resolve(page)
	if err != nil {
		return nil, err
	}
	p.logger.WithField("url", fileURL).Info("Resolved workbook link")

	path, cleanup, err := p.fetcher.DownloadTemp(ctx, fileURL)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	var records []models.PriceRecord
	for _, sheet := range workbook.GetSheetList() {
		visible, err := workbook.GetSheetVisible(sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet %s visibility: %w", sheet, err)
		}
		if !EligibleSheet(sheet, !visible) {
			continue
		}

		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}

		sheetRecords, err := ExtractSheet(sheet, !visible, rows)
		if err != nil {
			return nil, fmt.Errorf("extract sheet %s: %w", sheet, err)
		}
		records = append(records, sheetRecords...)
	}

	p.logger.WithField("records", len(records)).Info("Extraction completed")
	return records, nil
}
