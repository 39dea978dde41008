package registry

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/peterhellberg/link"
)

// repositoryList is the response of the catalog endpoint. A missing
// repositories field decodes to nil, which callers treat as empty.
type repositoryList struct {
	Repositories []string `json:"repositories"`
}

func (r *Registry) catalog(ctx context.Context, u string) ([]string, error) {
	if u == "" {
		u = "/v2/_catalog"
	}
	uri := r.url("%s", u)

	resp, err := r.httpGet(ctx, uri, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var response repositoryList
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}
	repositories := response.Repositories

	for _, l := range link.ParseHeader(resp.Header) {
		if l.Rel == "next" {
			unescaped, _ := url.QueryUnescape(l.URI)
			more, err := r.catalog(ctx, unescaped)
			if err != nil {
				return nil, err
			}
			repositories = append(repositories, more...)
		}
	}

	return repositories, nil
}

// Catalog returns the names of all repositories in the registry, following
// Link headers across pages.
func (r *Registry) Catalog(ctx context.Context) ([]string, error) {
	return r.catalog(ctx, "")
}
