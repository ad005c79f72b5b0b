// Package genenames is a thin client for the genenames.org symbol search
// endpoint. It exposes the three query forms the puzzles need (prefix, suffix,
// exact) behind a single interface so the game services can be tested against
// scripted responses.
package genenames

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the public genenames.org REST endpoint.
const DefaultBaseURL = "https://rest.genenames.org"

// statusSuccess is the in-payload status genenames.org reports on success.
const statusSuccess = 0

// ErrLookupFailure covers every transport error, non-success HTTP status,
// non-zero payload status, and malformed payload. Callers translate it into
// their own domain errors; raw transport errors never escape unwrapped.
var ErrLookupFailure = errors.New("genenames: lookup failed")

// SearchResult is the part of a search response the games consume. NumFound
// may exceed len(Symbols): the registry paginates docs.
type SearchResult struct {
	NumFound int
	Symbols  []string
}

// Client searches the registry for gene symbols.
type Client interface {
	// SearchPrefix returns symbols starting with the given string.
	SearchPrefix(ctx context.Context, prefix string) (SearchResult, error)
	// SearchSuffix returns symbols ending with the given string.
	SearchSuffix(ctx context.Context, suffix string) (SearchResult, error)
	// SearchExact returns symbols exactly matching the given string.
	SearchExact(ctx context.Context, symbol string) (SearchResult, error)
}

type searchResponse struct {
	ResponseHeader struct {
		Status int `json:"status"`
	} `json:"responseHeader"`
	Response struct {
		NumFound int `json:"numFound"`
		Docs     []struct {
			Symbol string `json:"symbol"`
		} `json:"docs"`
	} `json:"response"`
}

// HTTPClient implements Client over the genenames.org REST API.
type HTTPClient struct {
	client *resty.Client
}

// NewHTTPClient returns a client for the given base URL with a bounded
// per-request timeout. A timeout surfaces as ErrLookupFailure like any other
// transport failure.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Accept", "application/json")
	client.SetTimeout(timeout)
	client.SetRetryCount(1)
	client.SetRetryWaitTime(200 * time.Millisecond)

	return &HTTPClient{client: client}
}

func (h *HTTPClient) SearchPrefix(ctx context.Context, prefix string) (SearchResult, error) {
	return h.search(ctx, prefix+"*")
}

func (h *HTTPClient) SearchSuffix(ctx context.Context, suffix string) (SearchResult, error) {
	return h.search(ctx, "*"+suffix)
}

func (h *HTTPClient) SearchExact(ctx context.Context, symbol string) (SearchResult, error) {
	return h.search(ctx, symbol)
}

func (h *HTTPClient) search(ctx context.Context, term string) (SearchResult, error) {
	var result SearchResult

	res, err := h.client.R().
		SetContext(ctx).
		Get("/search/symbol/" + term)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrLookupFailure, err)
	}
	if res.StatusCode() != http.StatusOK {
		return result, fmt.Errorf("%w: status code %d", ErrLookupFailure, res.StatusCode())
	}

	var body searchResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return result, fmt.Errorf("%w: decode response: %v", ErrLookupFailure, err)
	}
	if body.ResponseHeader.Status != statusSuccess {
		return result, fmt.Errorf("%w: response status %d", ErrLookupFailure, body.ResponseHeader.Status)
	}

	result.NumFound = body.Response.NumFound
	result.Symbols = make([]string, 0, len(body.Response.Docs))
	for _, doc := range body.Response.Docs {
		result.Symbols = append(result.Symbols, doc.Symbol)
	}
	return result, nil
}
