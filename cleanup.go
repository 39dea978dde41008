package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/clusterops/regclean/registry"
	units "github.com/docker/go-units"
)

// cleanupRepository deletes every tag in the repository, one tag at a time.
// Failures are counted, never fatal: a tag whose digest cannot be resolved
// or whose deletion fails does not stop the remaining tags. Tags are
// processed in the order the registry returned them.
func cleanupRepository(ctx context.Context, r *registry.Registry, repo string) (deleted, failed int) {
	fmt.Printf("\nCleaning up repository: %s\n", repo)

	tags, err := r.Tags(ctx, repo)
	if err != nil {
		if registry.IsNotFound(err) {
			fmt.Printf("  Repository %q not found\n", repo)
		} else {
			log.Printf("Failed to list tags for %q: %v", repo, err)
		}
		return 0, 0
	}
	if len(tags) == 0 {
		fmt.Printf("  Repository %q has no tags\n", repo)
		return 0, 0
	}
	fmt.Printf("  Repository %q has %d tags\n", repo, len(tags))

	for _, tag := range tags {
		fmt.Printf("  Processing tag: %s\n", tag)

		dgst, err := r.ManifestDigest(ctx, repo, tag)
		if err != nil {
			log.Printf("No digest for %s:%s: %v", repo, tag, err)
			failed++
			continue
		}

		if err := r.DeleteManifest(ctx, repo, dgst); err != nil {
			log.Printf("Failed to delete manifest %s@%s: %v", repo, dgst, err)
			failed++
			continue
		}
		if !r.Opt.DryRun {
			fmt.Printf("    Deleted manifest %s\n", dgst)
		}
		deleted++
	}

	fmt.Printf("  Repository %q: %d deleted, %d failed\n", repo, deleted, failed)
	return deleted, failed
}

// cleanupPattern deletes all tags in every repository whose full name
// matches the shell glob. Unless running dry, the operation must be
// confirmed on the input stream before anything is deleted.
func cleanupPattern(ctx context.Context, r *registry.Registry, glob string, in io.Reader) map[string][2]int {
	regex, err := compilePattern(glob)
	if err != nil {
		log.Fatalf("Invalid pattern %q: %v", glob, err)
	}

	fmt.Printf("\nFinding repositories matching pattern: %s\n", glob)
	repos := listRepositories(ctx, r)
	if len(repos) == 0 {
		fmt.Println("No repositories found")
		return nil
	}

	matched := filterRegex(repos, regex)
	if len(matched) == 0 {
		fmt.Printf("No repositories match pattern: %s\n", glob)
		return nil
	}

	fmt.Printf("Found %d repositories matching pattern:\n", len(matched))
	for _, repo := range matched {
		fmt.Printf("  - %s\n", repo)
	}

	if !r.Opt.DryRun {
		fmt.Printf("\nThis will delete ALL images in %d repositories!\n", len(matched))
		if !confirm(in, "Type 'yes' to confirm deletion: ") {
			fmt.Println("Operation cancelled")
			return nil
		}
	}

	start := time.Now()
	results := make(map[string][2]int, len(matched))
	var totalDeleted, totalFailed int
	for _, repo := range matched {
		deleted, failed := cleanupRepository(ctx, r, repo)
		results[repo] = [2]int{deleted, failed}
		totalDeleted += deleted
		totalFailed += failed
	}

	fmt.Println("\nTotal summary:")
	fmt.Printf("  Repositories processed: %d\n", len(matched))
	fmt.Printf("  Images deleted: %d\n", totalDeleted)
	fmt.Printf("  Failed deletions: %d\n", totalFailed)
	fmt.Printf("  Elapsed: %s\n", units.HumanDuration(time.Since(start)))

	return results
}

// listRepositories wraps Catalog. Listing is advisory, so failures degrade
// to an empty result with a logged reason instead of aborting the run.
func listRepositories(ctx context.Context, r *registry.Registry) []string {
	fmt.Println("Listing all repositories...")
	repos, err := r.Catalog(ctx)
	if err != nil {
		log.Printf("Failed to list repositories: %v", err)
		return nil
	}
	fmt.Printf("Found %d repositories\n", len(repos))
	return repos
}

// confirm reads one line from in and accepts only a case-insensitive "yes".
// A read error or EOF counts as a refusal.
func confirm(in io.Reader, prompt string) bool {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(scanner.Text()), "yes")
}
