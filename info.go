package main

import (
	"context"
	"fmt"
	"log"

	"github.com/clusterops/regclean/registry"
)

// maxInfoRepos caps the per-repository tag listing in info mode to keep it
// cheap on large registries.
const maxInfoRepos = 10

// showInfo prints connectivity status and repository/tag counts.
func showInfo(ctx context.Context, r *registry.Registry) {
	fmt.Println("\nRegistry information")
	fmt.Printf("  URL: %s\n", r.URL)

	if err := r.Ping(ctx); err != nil {
		fmt.Printf("  Registry is not accessible: %v\n", err)
		return
	}
	fmt.Println("  Registry is accessible")

	repos := listRepositories(ctx, r)
	if len(repos) == 0 {
		return
	}

	shown := repos
	if len(shown) > maxInfoRepos {
		shown = shown[:maxInfoRepos]
	}
	fmt.Printf("\nRepositories (%d):\n", len(repos))
	for _, repo := range shown {
		tags, err := r.Tags(ctx, repo)
		if err != nil && !registry.IsNotFound(err) {
			log.Printf("Failed to list tags for %q: %v", repo, err)
		}
		fmt.Printf("  - %s (%d tags)\n", repo, len(tags))
	}
	if len(repos) > maxInfoRepos {
		fmt.Printf("  ... and %d more repositories\n", len(repos)-maxInfoRepos)
	}
}
