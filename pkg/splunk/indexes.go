package splunk

import (
	"context"
	"fmt"
	"net/url"
)

type indexContent struct {
	TotalEventCount flexInt    `json:"totalEventCount"`
	CurrentDBSizeMB flexInt    `json:"currentDBSizeMB"`
	MaxDataSize     flexString `json:"maxDataSize"`
}

// ListIndexes retrieves every index visible to the session user.
func (c *Client) ListIndexes(ctx context.Context) ([]Index, error) {
	var resp feed[indexContent]
	if err := c.get(ctx, "/services/data/indexes", url.Values{"count": {"0"}}, &resp); err != nil {
		return nil, fmt.Errorf("listing indexes: %w", err)
	}

	indexes := make([]Index, 0, len(resp.Entry))
	for _, e := range resp.Entry {
		indexes = append(indexes, Index{
			Name:            e.Name,
			TotalEventCount: int64(e.Content.TotalEventCount),
			CurrentDBSizeMB: int64(e.Content.CurrentDBSizeMB),
			MaxDataSize:     string(e.Content.MaxDataSize),
		})
	}
	return indexes, nil
}
