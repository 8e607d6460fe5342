package scraper

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ErrLinkNotFound means no anchor on the listing page pointed at a published
// workbook. Either the site structure changed or nothing is published yet.
var ErrLinkNotFound = errors.New("scraper: no workbook link found on listing page")

// LinkResolver extracts the current workbook's download URL from listing
// page HTML. It is an interface so the matching strategy can be swapped
// when the site markup changes, without touching the pipeline.
type LinkResolver interface {
	Resolve(pageHTML string) (string, error)
}

// The published file moves between CMS resource paths, but the href always
// carries the _res segment, the yasai keyword, and an Excel extension in
// that order.
var workbookHrefPattern = regexp.MustCompile(`_res.*yasai.*\.xlsx?`)

// YasaiLinkResolver scans anchor hrefs for the vegetable price workbook.
// This is best-effort text scraping of upstream markup, not a stable
// contract.
type YasaiLinkResolver struct {
	baseURL string
}

// NewYasaiLinkResolver creates a resolver joining matches onto baseURL.
func NewYasaiLinkResolver(baseURL string) *YasaiLinkResolver {
	return &YasaiLinkResolver{baseURL: baseURL}
}

// Resolve returns the first matching anchor's href joined onto the base URL.
func (r *YasaiLinkResolver) Resolve(pageHTML string) (string, error) {
	tokenizer := html.NewTokenizer(strings.NewReader(pageHTML))

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF or malformed tail, either way nothing matched.
			return "", ErrLinkNotFound
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key == "href" && workbookHrefPattern.MatchString(attr.Val) {
					return r.baseURL + attr.Val, nil
				}
			}
		}
	}
}
