package komikcast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrEmptyResult means the page was fetched but no item container matched.
var ErrEmptyResult = errors.New("komikcast: no matching items")

// FetchError covers every way a page can fail to arrive: transport errors,
// timeouts and non-2xx responses (StatusCode is 0 for the first two).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}

	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (c *Client) fetch(ctx context.Context, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &FetchError{URL: target, Err: err}
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	c.log.Debugf("GET %s", target)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: target, Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Debugf("failed to close response body for %s: %v", target, cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &FetchError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: target, Err: err}
	}

	return string(b), nil
}
