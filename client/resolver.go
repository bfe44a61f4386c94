package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/rechunk/rechunk/internal/errs"
)

// NewHTTPResolver returns the standard resolver: an authenticated GET against
// the chunk read endpoint using the project read key. The read key grants
// consumption only; it can never publish or delete.
func NewHTTPResolver(baseURL, projectID, readKey string) Resolver {
	rc := resty.New().SetBaseURL(baseURL).SetBasicAuth(projectID, readKey)

	return func(ctx context.Context, chunkID string) (*SignedChunk, error) {
		var out SignedChunk
		resp, err := rc.R().
			SetContext(ctx).
			SetResult(&out).
			Get(fmt.Sprintf("/api/v1/projects/%s/chunks/%s", projectID, chunkID))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrResolutionFailed, err)
		}
		switch {
		case resp.StatusCode() == http.StatusNotFound:
			return nil, errs.ErrNotFound
		case resp.IsError():
			return nil, fmt.Errorf("%w: status %d", errs.ErrResolutionFailed, resp.StatusCode())
		}
		if out.Data == "" || out.Token == "" {
			return nil, fmt.Errorf("%w: incomplete response", errs.ErrResolutionFailed)
		}
		return &out, nil
	}
}
