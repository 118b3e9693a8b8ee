package searchctx

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// braveProvider calls the Brave Search API.
type braveProvider struct {
	client *resty.Client
	apiKey string
}

func newBraveProvider(client *resty.Client, apiKey string) *braveProvider {
	return &braveProvider{client: client, apiKey: apiKey}
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

func (p *braveProvider) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	var body braveResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("X-Subscription-Token", p.apiKey).
		SetHeader("Accept", "application/json").
		SetQueryParam("q", query).
		SetQueryParam("count", fmt.Sprintf("%d", maxResults)).
		SetResult(&body).
		Get("https://api.search.brave.com/res/v1/web/search")
	if err != nil {
		return nil, fmt.Errorf("brave: request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("brave: HTTP %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	results := make([]Result, 0, len(body.Web.Results))
	for _, r := range body.Web.Results {
		if len(results) >= maxResults {
			break
		}
		results = append(results, Result{Title: r.Title, URL: r.URL, Snippet: r.Description, Source: "Brave"})
	}
	return results, nil
}
