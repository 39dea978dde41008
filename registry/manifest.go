package registry

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/distribution/distribution/manifest/schema2"
	digest "github.com/opencontainers/go-digest"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
)

// The plain v1+json media type has no exported constant in distribution,
// which only ships the prettyjws variant.
const mediaTypeSchema1 = "application/vnd.docker.distribution.manifest.v1+json"

// manifestMediaTypes are tried in order when resolving a tag to a digest.
// Registries answer with different types depending on how an image was
// pushed, so a single Accept header misses a subset of images.
var manifestMediaTypes = []string{
	schema2.MediaTypeManifest,
	mediaTypeSchema1,
	ociv1.MediaTypeImageManifest,
}

// ManifestDigest resolves a tag to its current manifest digest with a HEAD
// request, trying each supported media type until one answers with a
// parseable Docker-Content-Digest header. Returns ErrNoDigest when every
// type has been tried without success.
func (r *Registry) ManifestDigest(ctx context.Context, repository string, tag string) (digest.Digest, error) {
	uri := r.url("/v2/%s/manifests/%s", repository, tag)

	for _, mediaType := range manifestMediaTypes {
		headers := []*header{{"Accept", mediaType}}
		h, err := r.httpHead(ctx, uri, headers)
		if err != nil {
			// Any failure for one media type just means trying the next;
			// the caller gets ErrNoDigest once all types are exhausted.
			continue
		}
		if d, err := digest.Parse(h.Get("Docker-Content-Digest")); err == nil {
			return d, nil
		}
	}

	return "", ErrNoDigest
}

// DeleteManifest deletes a manifest by digest. In dry-run mode it only logs
// the intended deletion and never touches the network. The registry accepts
// deletion by digest only, so tags must be resolved first.
// https://docs.docker.com/registry/spec/api/#deleting-an-image
func (r *Registry) DeleteManifest(ctx context.Context, repository string, dgst digest.Digest) error {
	if r.Opt.DryRun {
		log.Printf("dry-run: would delete manifest %s@%s", repository, dgst)
		return nil
	}

	uri := r.url("/v2/%s/manifests/%s", repository, dgst)
	resp, err := r.httpDelete(ctx, uri, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusAccepted, http.StatusNoContent:
		return nil
	}
	return fmt.Errorf("got status code: %d", resp.StatusCode)
}
