package searchctx

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// duckDuckGoProvider scrapes the HTML search endpoint rather than calling
// an API: DuckDuckGo offers no keyed search API, so results are parsed out
// of the html.duckduckgo.com result markup.
type duckDuckGoProvider struct {
	client *resty.Client
}

const duckDuckGoSearchURL = "https://html.duckduckgo.com/html/"

// Rate-limited responses are retried with a linear backoff; any other
// failure returns immediately.
const maxRetries = 2
const retryBaseDelay = 2 * time.Second

func newDuckDuckGoProvider(client *resty.Client) *duckDuckGoProvider {
	return &duckDuckGoProvider{client: client}
}

func (p *duckDuckGoProvider) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBaseDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		results, rateLimited, err := p.searchOnce(ctx, query, maxResults)
		if err == nil {
			return results, nil
		}
		lastErr = err
		if !rateLimited {
			return nil, err
		}
	}

	return nil, fmt.Errorf("searchctx: duckduckgo: exhausted retries: %w", lastErr)
}

func (p *duckDuckGoProvider) searchOnce(ctx context.Context, query string, maxResults int) (results []Result, rateLimited bool, err error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; councilcore/1.0)").
		SetFormData(map[string]string{"q": query}).
		Post(duckDuckGoSearchURL)
	if err != nil {
		return nil, false, fmt.Errorf("duckduckgo: request failed: %w", err)
	}

	body := string(resp.Body())
	if strings.Contains(body, "Ratelimit") {
		return nil, true, fmt.Errorf("duckduckgo: rate limited")
	}
	if resp.IsError() {
		return nil, false, fmt.Errorf("duckduckgo: HTTP %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("duckduckgo: parse html: %w", err)
	}

	doc.Find(".result").Each(func(i int, s *goquery.Selection) {
		if len(results) >= maxResults {
			return
		}
		link := s.Find(".result__a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		snippet := strings.TrimSpace(s.Find(".result__snippet").First().Text())

		href = normalizeDuckDuckGoURL(href)
		if title == "" || href == "" {
			return
		}
		results = append(results, Result{Title: title, URL: href, Snippet: snippet, Source: "DuckDuckGo"})
	})

	return results, false, nil
}

// normalizeDuckDuckGoURL unwraps DuckDuckGo's outbound redirect links
// (/l/?uddg=<encoded target>) into the bare destination URL.
func normalizeDuckDuckGoURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		if decoded, err := url.QueryUnescape(target); err == nil {
			return decoded
		}
	}
	return href
}
