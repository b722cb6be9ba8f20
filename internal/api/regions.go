package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// ListOrganizations lists the organizations visible to the credential,
// optionally filtered by query.
//
// Against the hosted service the account's data may be split across regional
// hosts, so the client first asks the discovery endpoint for the region list
// and then queries every region concurrently. A failed discovery call
// silently downgrades to a single-host listing, and a failed region
// contributes an empty result instead of failing the whole call. Combined
// results are capped at one page.
func (c *Client) ListOrganizations(ctx context.Context, query string) ([]Organization, error) {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(defaultPageSize))
	if query != "" {
		params.Set("query", query)
	}
	path := "/organizations/?" + params.Encode()

	if c.discoveryURL == "" {
		return c.listOrganizationsAt(ctx, path, "")
	}

	regions, err := c.userRegions(ctx)
	if err != nil || len(regions) == 0 {
		return c.listOrganizationsAt(ctx, path, "")
	}

	results := make([][]Organization, len(regions))
	g, gctx := errgroup.WithContext(ctx)
	for i, region := range regions {
		i, region := i, region
		g.Go(func() error {
			base, err := regionBase(region.URL)
			if err != nil {
				return nil
			}
			orgs, err := c.listOrganizationsAt(gctx, path, base)
			if err != nil {
				// One region down must not hide the others.
				return nil
			}
			results[i] = orgs
			return nil
		})
	}
	g.Wait()

	var combined []Organization
	for _, orgs := range results {
		combined = append(combined, orgs...)
	}
	if len(combined) > defaultPageSize {
		combined = combined[:defaultPageSize]
	}
	return combined, nil
}

func (c *Client) listOrganizationsAt(ctx context.Context, path, base string) ([]Organization, error) {
	body, err := c.requestJSON(ctx, http.MethodGet, path, nil, base)
	if err != nil {
		return nil, err
	}
	return decode[[]Organization](body)
}

func (c *Client) userRegions(ctx context.Context) ([]Region, error) {
	body, err := c.requestJSON(ctx, http.MethodGet, "/users/me/regions/", nil, c.discoveryURL)
	if err != nil {
		return nil, err
	}
	regions, err := decode[userRegions](body)
	if err != nil {
		return nil, err
	}
	return regions.Regions, nil
}

// regionBase validates a discovered region URL and strips any path.
func regionBase(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	return u.Scheme + "://" + u.Host, nil
}
