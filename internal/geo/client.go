// Package geo fetches the US state name to two-letter code reference table
// used to place state aggregates on a map.
package geo

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultStateCodesURL is a public dataset whose "state" and "code" columns
// map full US state names to their two-letter codes.
const DefaultStateCodesURL = "https://raw.githubusercontent.com/plotly/datasets/master/2011_us_ag_exports.csv"

// Client downloads the reference table. Failure should be treated as a
// missing map by callers — the dashboard then renders without geography
// codes, nothing else is affected.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a client for the reference table at url; an empty url
// uses DefaultStateCodesURL.
func NewClient(url string) *Client {
	if url == "" {
		url = DefaultStateCodesURL
	}
	return &Client{url: url, httpClient: http.DefaultClient}
}

// StateCodes fetches and parses the reference CSV into a name → code map.
func (c *Client) StateCodes(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build state codes request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch state codes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch state codes: unexpected status %s", resp.Status)
	}

	return parseStateCodes(resp.Body)
}

// parseStateCodes reads the CSV and keeps the state/code columns.
func parseStateCodes(r io.Reader) (map[string]string, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read state codes header: %w", err)
	}

	stateIdx, codeIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "state":
			stateIdx = i
		case "code":
			codeIdx = i
		}
	}
	if stateIdx < 0 || codeIdx < 0 {
		return nil, fmt.Errorf("state codes table missing state/code columns")
	}

	codes := make(map[string]string)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read state codes row: %w", err)
		}
		if stateIdx >= len(row) || codeIdx >= len(row) {
			continue
		}
		state := strings.TrimSpace(row[stateIdx])
		code := strings.TrimSpace(row[codeIdx])
		if state != "" && code != "" {
			codes[state] = code
		}
	}
	return codes, nil
}
