package searchctx

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// jinaReaderBaseURL is the Jina Reader content-extraction endpoint; GET
// https://r.jina.ai/{url} returns a plain-text rendering of the page.
const jinaReaderBaseURL = "https://r.jina.ai/"

// minContentLength below which enrichment is considered to have failed and
// the original snippet is kept instead.
const minContentLength = 500

// maxFetchTimeout caps any single Jina fetch regardless of remaining budget.
const maxFetchTimeout = 25 * time.Second

// minRemainingToAttempt is the budget floor below which enrichment is
// skipped entirely for a given result.
const minRemainingToAttempt = 5 * time.Second

// enrichWithJina fetches full-page content for the first topN results,
// budget permitting. Each fetch's timeout is min(remaining, maxFetchTimeout)
// where remaining shrinks as the global deadline approaches; once remaining
// drops to minRemainingToAttempt or below, no further fetches are attempted
// and the rest of the results keep their search-snippet text.
func enrichWithJina(ctx context.Context, client *resty.Client, results []Result, topN int, jinaKey string, remaining time.Duration) []Result {
	if topN <= 0 {
		return results
	}
	if topN > len(results) {
		topN = len(results)
	}

	deadline := time.Now().Add(remaining)

	for i := 0; i < topN; i++ {
		left := time.Until(deadline)
		if left <= minRemainingToAttempt {
			logBudgetExhausted(ctx, left)
			break
		}

		timeout := left
		if timeout > maxFetchTimeout {
			timeout = maxFetchTimeout
		}

		content, err := fetchWithJina(ctx, client, results[i].URL, jinaKey, timeout)
		if err != nil {
			continue // keep the existing snippet
		}
		if len(content) < minContentLength {
			results[i].Content = results[i].Snippet +
				"\n[System Note: full-text extraction returned too little content; showing the search summary instead]"
			continue
		}
		results[i].Content = content
	}

	return results
}

func fetchWithJina(ctx context.Context, client *resty.Client, targetURL, jinaKey string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain")
	if jinaKey != "" {
		req.SetHeader("Authorization", "Bearer "+jinaKey)
	}

	resp, err := req.Get(jinaReaderBaseURL + targetURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", &fetchError{status: resp.StatusCode()}
	}
	return string(resp.Body()), nil
}

type fetchError struct {
	status int
}

func (e *fetchError) Error() string {
	return "jina reader returned a non-2xx status"
}
