package main

import (
	"context"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/clusterops/regclean/registry"
	"github.com/clusterops/regclean/repoutils"
)

import flag "github.com/spf13/pflag"

const version = "1.0"

var opts struct {
	info       bool
	dryRun     bool
	verifySSL  bool
	debug      bool
	version    bool
	registry   string
	pattern    string
	repository string
	username   string
	password   string
}

func init() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s --registry URL (--info | --pattern GLOB | --repository NAME) [OPTIONS]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.StringVarP(&opts.registry, "registry", "r", "", "Registry URL (e.g. https://registry.cluster:5000)")
	flag.StringVarP(&opts.pattern, "pattern", "", "", "Clean up all repositories matching a shell glob (e.g. \"bdtemp*\")")
	flag.StringVarP(&opts.repository, "repository", "", "", "Clean up a single repository")
	flag.StringVarP(&opts.username, "username", "u", "", "Username for authentication")
	flag.StringVarP(&opts.password, "password", "p", "", "Password for authentication")
	flag.BoolVarP(&opts.info, "info", "i", false, "Show registry information and exit")
	flag.BoolVarP(&opts.dryRun, "dry-run", "", false, "Only show what would be deleted")
	flag.BoolVarP(&opts.verifySSL, "verify-ssl", "", false, "Verify TLS certificates (default off for self-signed registries)")
	flag.BoolVarP(&opts.debug, "debug", "", false, "Dump HTTP requests and responses")
	flag.BoolVarP(&opts.version, "version", "", false, "Show version and exit")
	flag.Parse()
}

// checkUsage validates the flag combination: --registry is required and
// exactly one of --info, --pattern and --repository must be given.
func checkUsage() error {
	if opts.registry == "" {
		return errors.New("--registry is required")
	}
	if opts.pattern != "" && opts.repository != "" {
		return errors.New("cannot specify both --pattern and --repository")
	}
	if !opts.info && opts.pattern == "" && opts.repository == "" {
		return errors.New("must specify --pattern, --repository or --info")
	}
	return nil
}

func createRegistryClient() (*registry.Registry, error) {
	auth, err := repoutils.GetAuthConfig(opts.username, opts.password, opts.registry)
	if err != nil {
		return nil, err
	}

	return registry.New(auth, registry.Opt{
		Domain:    opts.registry,
		VerifySSL: opts.verifySSL,
		DryRun:    opts.dryRun,
		Debug:     opts.debug,
	})
}

func main() {
	if opts.version {
		fmt.Printf("v%s %v %s/%s %s\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH, getCommit())
		os.Exit(0)
	}

	if err := checkUsage(); err != nil {
		log.Printf("Error: %v", err)
		flag.Usage()
		os.Exit(2)
	}

	if opts.password != "" {
		if data, err := os.ReadFile(opts.password); err == nil {
			opts.password = strings.TrimSpace(string(data))
		}
	}
	if opts.username != "" && opts.password == "" {
		opts.password = getPass("Password: ")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// On ^C or SIGTERM exit immediately; deletions already issued stay
	// deleted, there is nothing to roll back.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signals
		cancel()
		log.Printf("Received %s, exiting", sig)
		os.Exit(1)
	}()

	r, err := createRegistryClient()
	if err != nil {
		log.Fatalf("Failed to initialize registry client: %v", err)
	}

	if r.Username != "" {
		fmt.Printf("Using authentication for user: %s\n", r.Username)
	}
	if !opts.verifySSL {
		fmt.Println("TLS certificate verification disabled")
	}
	fmt.Printf("Registry URL: %s\n", r.URL)
	if opts.dryRun {
		fmt.Println("Dry run mode: ENABLED")
	}

	switch {
	case opts.info:
		showInfo(ctx, r)
	case opts.pattern != "":
		cleanupPattern(ctx, r, opts.pattern, os.Stdin)
	default:
		if err := repoutils.ValidateRepoName(opts.repository); err != nil {
			log.Fatal(err)
		}
		deleted, failed := cleanupRepository(ctx, r, opts.repository)
		fmt.Printf("\nSummary: %d deleted, %d failed\n", deleted, failed)
	}

	// Manifest deletion alone does not free blob storage.
	if !opts.dryRun && (opts.pattern != "" || opts.repository != "") {
		fmt.Println("\nRemember to run garbage collection on the registry to free disk space:")
		fmt.Println("  docker exec <registry_container> /bin/registry garbage-collect /etc/docker/registry/config.yml")
	}
}
