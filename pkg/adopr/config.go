// Package adopr implements the core of the Azure DevOps pull-request
// MCP server: configuration, git remote detection, resource URI routing
// and the MCP-facing handlers.
package adopr

import (
	"fmt"
	"os"
	"time"

	"github.com/dstockton/ado-pr-mcp/pkg/azdo"
)

// Config holds process configuration, built once at startup from
// environment variables and passed by reference. Coordinates are
// optional defaults: a piece missing here can still be completed by git
// detection at request time.
type Config struct {
	PAT          string
	Organization string
	Project      string
	Repository   string
	APIVersion   string
	HTTPTimeout  time.Duration
}

// LoadConfig reads configuration from environment variables.
// AZURE_DEVOPS_PAT is required for any live API call but its absence is
// not an error here; it is reported when a call is actually made.
// Optional: ADO_ORGANIZATION, ADO_PROJECT, ADO_REPOSITORY (coordinate
// defaults), ADO_API_VERSION (default 7.1) and ADO_HTTP_TIMEOUT
// (default 30s).
func LoadConfig() (*Config, error) {
	cfg := &Config{
		PAT:          os.Getenv("AZURE_DEVOPS_PAT"),
		Organization: os.Getenv("ADO_ORGANIZATION"),
		Project:      os.Getenv("ADO_PROJECT"),
		Repository:   os.Getenv("ADO_REPOSITORY"),
		APIVersion:   azdo.DefaultAPIVersion,
		HTTPTimeout:  30 * time.Second,
	}

	if v, ok := os.LookupEnv("ADO_API_VERSION"); ok && v != "" {
		cfg.APIVersion = v
	}

	if v, ok := os.LookupEnv("ADO_HTTP_TIMEOUT"); ok && v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("ADO_HTTP_TIMEOUT has invalid duration %q: %w", v, err)
		}
		cfg.HTTPTimeout = timeout
	}

	return cfg, nil
}

// Token returns the personal access token, or ErrMissingCredential when
// none is configured.
func (c *Config) Token() (string, error) {
	if c.PAT == "" {
		return "", azdo.ErrMissingCredential
	}
	return c.PAT, nil
}

// Coordinates returns the coordinate defaults from the environment.
// Any of the three fields may be empty.
func (c *Config) Coordinates() azdo.Coordinates {
	return azdo.Coordinates{
		Organization: c.Organization,
		Project:      c.Project,
		Repository:   c.Repository,
	}
}
