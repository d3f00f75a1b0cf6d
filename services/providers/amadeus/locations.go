// File: services/providers/amadeus/locations.go
package amadeus

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

type locationsResponse struct {
	Data []struct {
		IataCode string `json:"iataCode"`
		Name     string `json:"name"`
	} `json:"data"`
}

// SearchCityCode resolves a free-form city keyword to an IATA city code via
// the locations reference endpoint. Used as a fallback when the static city
// table has no entry.
func (c *Client) SearchCityCode(ctx context.Context, keyword string) (string, error) {
	q := url.Values{}
	q.Set("subType", "CITY")
	q.Set("keyword", keyword)

	var resp locationsResponse
	if err := c.get(ctx, "/v1/reference-data/locations", q, &resp); err != nil {
		return "", err
	}
	for _, d := range resp.Data {
		if d.IataCode != "" {
			c.logger.Debug("city code resolved via locations lookup",
				zap.String("keyword", keyword),
				zap.String("cityCode", d.IataCode))
			return d.IataCode, nil
		}
	}
	return "", fmt.Errorf("no city code found for %q", keyword)
}
