package registry

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/peterhellberg/link"
)

// tagList is the response of the tag-list endpoint. Registries answer with
// a JSON null tags field for repositories whose tags were all deleted; that
// decodes to nil and callers treat it as empty.
type tagList struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func (r *Registry) tags(ctx context.Context, u string, repository string) ([]string, error) {
	var uri string
	if u == "" {
		uri = r.url("/v2/%s/tags/list", repository)
	} else {
		uri = r.url("%s", u)
	}

	resp, err := r.httpGet(ctx, uri, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var response tagList
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}
	tags := response.Tags

	for _, l := range link.ParseHeader(resp.Header) {
		if l.Rel == "next" {
			unescaped, _ := url.QueryUnescape(l.URI)
			more, err := r.tags(ctx, unescaped, repository)
			if err != nil {
				return nil, err
			}
			tags = append(tags, more...)
		}
	}

	return tags, nil
}

// Tags returns the tags of a repository. A 404 surfaces as a *StatusError
// so callers can tell an absent repository from other failures.
func (r *Registry) Tags(ctx context.Context, repository string) ([]string, error) {
	return r.tags(ctx, "", repository)
}
