// Package netx holds small HTTP helpers.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/aqidash/internal/common"
)

// HTTPClient is the client used by Download.
var HTTPClient = &http.Client{}

// Download fetches url with a GET request and returns the body. A 404
// response yields an error wrapping common.ErrFileNotFound; any other
// non-200 status is reported with the response body.
func Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", common.ErrFileNotFound, url)
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}
}
