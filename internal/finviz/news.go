package finviz

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// newsTableSelectors locate the quote-page news table.
var newsTableSelectors = []string{
	"table.fullview-news-outer",
	"#news-table",
	"table.news-table",
}

// timeOnlyPattern matches a bare clock cell ("10:30AM"). The page only
// prints the date on the first headline of each day; later rows carry
// the time alone and inherit the last seen date.
var timeOnlyPattern = regexp.MustCompile(`^\d{1,2}:\d{2}(AM|PM)$`)

// parseNewsDocument extracts news items, resolving the date-inheritance
// quirk of the table. A page without the table yields an empty slice.
func parseNewsDocument(doc *goquery.Document) []NewsItem {
	var table *goquery.Selection
	for _, selector := range newsTableSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			table = sel
			break
		}
	}
	if table == nil {
		return nil
	}

	var items []NewsItem
	var lastDate string

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 2 {
			return
		}

		stamp := strings.TrimSpace(cells.Eq(0).Text())
		if timeOnlyPattern.MatchString(stamp) {
			if lastDate != "" {
				stamp = lastDate + " " + stamp
			}
		} else if fields := strings.Fields(stamp); len(fields) > 1 {
			lastDate = fields[0]
		}

		link := cells.Eq(1).Find("a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return
		}
		href, _ := link.Attr("href")
		source := strings.TrimSpace(cells.Eq(1).Find("span").First().Text())
		source = strings.Trim(source, "()")

		items = append(items, NewsItem{
			Date:   stamp,
			Title:  title,
			URL:    href,
			Source: source,
		})
	})

	return items
}
