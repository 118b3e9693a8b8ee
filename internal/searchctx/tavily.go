package searchctx

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// tavilyProvider calls the Tavily search API.
type tavilyProvider struct {
	client *resty.Client
	apiKey string
}

func newTavilyProvider(client *resty.Client, apiKey string) *tavilyProvider {
	return &tavilyProvider{client: client, apiKey: apiKey}
}

type tavilyRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
	SearchDepth       string `json:"search_depth"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

func (p *tavilyProvider) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	var body tavilyResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(tavilyRequest{
			APIKey:            p.apiKey,
			Query:             query,
			MaxResults:        maxResults,
			IncludeAnswer:     false,
			IncludeRawContent: false,
			SearchDepth:       "advanced",
		}).
		SetResult(&body).
		Post("https://api.tavily.com/search")
	if err != nil {
		return nil, fmt.Errorf("tavily: request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tavily: HTTP %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	results := make([]Result, 0, len(body.Results))
	for _, r := range body.Results {
		results = append(results, Result{Title: r.Title, URL: r.URL, Snippet: r.Content, Source: "Tavily"})
	}
	return results, nil
}
