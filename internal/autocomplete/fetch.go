package autocomplete

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	appErrors "autolight/internal/errors"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// Response is a completed GET: status code plus body, whatever the status.
type Response struct {
	Status int
	Body   string
}

// OK reports a 2xx status.
func (r Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Fetcher issues the GET for a set of parameters. Implementations must
// return promptly with ctx.Err() once ctx is canceled.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, params *Params) (Response, error)
}

// FetcherFunc adapts an ordinary function to a Fetcher.
type FetcherFunc func(ctx context.Context, endpoint string, params *Params) (Response, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, endpoint string, params *Params) (Response, error) {
	return f(ctx, endpoint, params)
}

// HTTPFetcher performs choice requests over net/http.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher using client, or a client with a
// conservative timeout when client is nil.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPFetcher{Client: client}
}

// Fetch implements Fetcher. Non-2xx responses are returned with their body
// and a nil error; only transport failures are errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, endpoint string, params *Params) (Response, error) {
	target, err := buildURL(endpoint, params)
	if err != nil {
		return Response{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Response{}, appErrors.New(appErrors.CodeFetchFailed, "build request", err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := f.Client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Response{}, ctxErr
		}
		return Response{}, appErrors.New(appErrors.CodeFetchFailed, "get choices", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Response{}, ctxErr
		}
		return Response{}, appErrors.New(appErrors.CodeFetchFailed, "read choices", err)
	}
	return Response{Status: resp.StatusCode, Body: string(body)}, nil
}

// buildURL appends params to endpoint, keeping any query it already has.
func buildURL(endpoint string, params *Params) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", appErrors.New(appErrors.CodeFetchFailed, fmt.Sprintf("parse url %q", endpoint), err)
	}
	encoded := params.Encode()
	switch {
	case encoded == "":
	case u.RawQuery == "":
		u.RawQuery = encoded
	default:
		u.RawQuery = strings.TrimSuffix(u.RawQuery, "&") + "&" + encoded
	}
	return u.String(), nil
}
