package catalog

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	cerrors "github.com/uwuclxdy/plasmoid-updater/src/common/errors"
	"github.com/uwuclxdy/plasmoid-updater/src/common/logs"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/kind"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

const (
	defaultBaseURL    = "https://api.kde-look.org/ocs/v1"
	pageSize          = 100
	maxRetries        = 3
	initialBackoff    = 100 * time.Millisecond
	userAgentTemplate = "plasmoid-updater/%s"
	connectTimeout    = 5 * time.Second
	requestTimeout    = 60 * time.Second
)

// Client is a thread-safe handle for the remote store's OCS API.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	log       *logs.Logger
	requests  atomic.Int64 // diagnostic counter, per spec.md §5
}

// New creates a Client for the given version string (used in the pinned
// User-Agent) and base URL (empty uses the default).
func New(version, baseURL string, log *logs.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: fmt.Sprintf(userAgentTemplate, version),
		log:       log,
		http: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
	}
}

// get performs one GET with the client's retry policy: on rate-limit or
// transport error, sleep with doubling backoff and try again, making at
// most maxRetries attempts in all; any other error returns immediately;
// success returns immediately.
func (c *Client) get(ctx context.Context, path string) (decodedPage, error) {
	u := c.baseURL + path

	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		body, err := c.doRequest(ctx, u)
		if err == nil {
			page, decErr := decodeResponse(body)
			if decErr == nil {
				return page, nil
			}
			err = decErr
		}
		lastErr = err

		if !isRetryable(err) {
			return decodedPage{}, err
		}

		c.log.Debug("catalog request retrying", "url", u, "attempt", attempt+1, "error", err)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return decodedPage{}, ctx.Err()
		}
		backoff *= 2
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("max retries exceeded")
	}
	return decodedPage{}, lastErr
}

// isRetryable mirrors spec.md's policy: retry on rate-limit or transport
// error, return immediately on anything else.
func isRetryable(err error) bool {
	if cerrors.Is(err, errRateLimited) {
		return true
	}
	return cerrors.GetDomain(err) == cerrors.DomainNetwork
}

func (c *Client) doRequest(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.requests.Add(1)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode)
	}

	return body, nil
}

// RequestCount returns the diagnostic total number of HTTP requests
// issued so far.
func (c *Client) RequestCount() int64 {
	return c.requests.Load()
}

// FetchCatalog pages through the store for the given kinds, fetching
// page 0 first, then the remaining pages in parallel. Failed pages are
// logged and skipped, not fatal.
func (c *Client) FetchCatalog(ctx context.Context, kinds []kind.Kind) ([]types.CatalogEntry, error) {
	ids := make([]uint16, len(kinds))
	for i, k := range kinds {
		ids[i] = k.CategoryID()
	}
	categories := buildCategoryString(ids)

	first, err := c.fetchPage(ctx, categories, 0)
	if err != nil {
		return nil, err
	}

	all := append([]types.CatalogEntry{}, first.entries...)
	if first.totalItems <= pageSize {
		return all, nil
	}

	lastPage := (first.totalItems + pageSize - 1) / pageSize
	type pageResult struct {
		entries []types.CatalogEntry
		err     error
	}
	results := make([]pageResult, 0, lastPage-1)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for p := 1; p < lastPage; p++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			pr, err := c.fetchPage(ctx, categories, page)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.log.Warn("catalog page fetch failed", "page", page, "error", err)
				results = append(results, pageResult{err: err})
				return
			}
			results = append(results, pageResult{entries: pr.entries})
		}(p)
	}
	wg.Wait()

	for _, r := range results {
		if r.err == nil {
			all = append(all, r.entries...)
		}
	}
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, categories string, page int) (decodedPage, error) {
	path := fmt.Sprintf("/content/data?categories=%s&page=%d&pagesize=%d&sort=new",
		url.QueryEscape(categories), page, pageSize)
	return c.get(ctx, path)
}

// FetchByIDs issues one targeted request per id in parallel; each yields
// zero or one entry.
func (c *Client) FetchByIDs(ctx context.Context, ids []uint64) ([]types.CatalogEntry, error) {
	type idResult struct {
		entry types.CatalogEntry
		ok    bool
	}
	results := make([]idResult, len(ids))
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uint64) {
			defer wg.Done()
			path := "/content/data/" + strconv.FormatUint(id, 10)
			page, err := c.get(ctx, path)
			if err != nil || len(page.entries) == 0 {
				if err != nil {
					c.log.Warn("targeted fetch failed", "id", id, "error", err)
				}
				return
			}
			results[i] = idResult{entry: page.entries[0], ok: true}
		}(i, id)
	}
	wg.Wait()

	var out []types.CatalogEntry
	for _, r := range results {
		if r.ok {
			out = append(out, r.entry)
		}
	}
	return out, nil
}
