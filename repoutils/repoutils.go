// Package repoutils resolves registry credentials and validates
// repository names.
package repoutils

import (
	"fmt"
	"log"
	"strings"

	"github.com/distribution/distribution/reference"
	"github.com/docker/cli/cli/config"
	clitypes "github.com/docker/cli/cli/config/types"
	"github.com/docker/docker/api/types"
)

// GetAuthConfig returns the registry AuthConfig. Explicit credentials win;
// otherwise the docker config file is consulted for the registry host.
func GetAuthConfig(username, password, registry string) (types.AuthConfig, error) {
	if username != "" && password != "" && registry != "" {
		return types.AuthConfig{
			Username:      username,
			Password:      password,
			ServerAddress: registry,
		}, nil
	}

	dcfg, err := config.Load(config.Dir())
	if err != nil {
		return types.AuthConfig{}, fmt.Errorf("loading config file failed: %v", err)
	}

	if registry != "" {
		var tryRegistry []string

		if strings.HasPrefix(registry, "https://") {
			tryRegistry = append(tryRegistry, strings.TrimPrefix(registry, "https://"))
		} else if strings.HasPrefix(registry, "http://") {
			tryRegistry = append(tryRegistry, strings.TrimPrefix(registry, "http://"))
		} else {
			tryRegistry = append(tryRegistry, registry)
			tryRegistry = append(tryRegistry, "https://"+registry)
		}

		for _, registryCleaned := range tryRegistry {
			creds, err := dcfg.GetAuthConfig(registryCleaned)
			if err == nil {
				return fixAuthConfig(creds, registryCleaned), nil
			}
		}
	}

	log.Println("Not using any authentication")
	return types.AuthConfig{}, nil
}

// fixAuthConfig overwrites the AuthConfig's ServerAddress field with the
// registry value if ServerAddress is empty. config.Load returns AuthConfigs
// with empty ServerAddresses if the configuration file contains only a
// "credsHelper" object.
func fixAuthConfig(creds clitypes.AuthConfig, registry string) (c types.AuthConfig) {
	c.Username = creds.Username
	c.Password = creds.Password
	c.Auth = creds.Auth
	c.Email = creds.Email
	c.IdentityToken = creds.IdentityToken
	c.RegistryToken = creds.RegistryToken

	c.ServerAddress = creds.ServerAddress
	if creds.ServerAddress == "" {
		c.ServerAddress = registry
	}

	return c
}

// ValidateRepoName checks that name is a well-formed repository path
// before any network call is made with it.
func ValidateRepoName(name string) error {
	if name == "" {
		return reference.ErrNameEmpty
	}
	if _, err := reference.WithName(name); err != nil {
		return fmt.Errorf("invalid repository name %q: %w", name, err)
	}
	return nil
}
