// Package pricing fetches and caches current asset prices. It is the
// concrete implementation of the external price collaborator: the tax engine
// only ever sees an injected lookup function backed by this package's cache.
package pricing

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Client provides methods for fetching current crypto prices from the
// CoinGecko API. It wraps an HTTP client and converts ticker symbols to
// CoinGecko coin IDs.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a price client. baseURL may be empty to use the public
// CoinGecko endpoint; tests point it at a local server.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// CurrentPrices fetches current USD prices for the given ticker symbols in a
// single request. Symbols the API does not know are simply absent from the
// result; callers decide whether that is an error.
func (c *Client) CurrentPrices(symbols []string) (map[string]decimal.Decimal, error) {
	if len(symbols) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	ids := make([]string, len(symbols))
	idToSymbol := make(map[string]string, len(symbols))
	for i, symbol := range symbols {
		id := coinID(symbol)
		ids[i] = id
		idToSymbol[id] = symbol
	}

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		c.baseURL, url.QueryEscape(strings.Join(ids, ",")))

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("price request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("price API returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload SimplePriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode price response: %w", err)
	}

	prices := make(map[string]decimal.Decimal)
	for id, currencies := range payload {
		symbol, ok := idToSymbol[id]
		if !ok {
			continue
		}
		usd, ok := currencies["usd"]
		if !ok {
			continue
		}
		prices[symbol] = decimal.NewFromFloat(usd)
	}

	return prices, nil
}

// coinID resolves a ticker symbol to a CoinGecko coin ID.
func coinID(symbol string) string {
	if id, ok := coinIDs[strings.ToUpper(symbol)]; ok {
		return id
	}
	return strings.ToLower(symbol)
}
