package adopr

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstockton/ado-pr-mcp/pkg/azdo"
)

// allConfigKeys lists every environment variable that LoadConfig reads.
var allConfigKeys = []string{
	"AZURE_DEVOPS_PAT",
	"ADO_ORGANIZATION",
	"ADO_PROJECT",
	"ADO_REPOSITORY",
	"ADO_API_VERSION",
	"ADO_HTTP_TIMEOUT",
}

// isolateConfigEnv unsets all configuration env vars so tests don't
// inherit values from the host environment; t.Cleanup restores them.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Empty(t, cfg.PAT)
	assert.Empty(t, cfg.Organization)
	assert.Equal(t, azdo.DefaultAPIVersion, cfg.APIVersion)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("AZURE_DEVOPS_PAT", "pat-123")
	t.Setenv("ADO_ORGANIZATION", "myorg")
	t.Setenv("ADO_PROJECT", "MyProject")
	t.Setenv("ADO_REPOSITORY", "MyRepo")
	t.Setenv("ADO_API_VERSION", "6.0")
	t.Setenv("ADO_HTTP_TIMEOUT", "10s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "pat-123", cfg.PAT)
	assert.Equal(t, "myorg", cfg.Organization)
	assert.Equal(t, "MyProject", cfg.Project)
	assert.Equal(t, "MyRepo", cfg.Repository)
	assert.Equal(t, "6.0", cfg.APIVersion)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestLoadConfig_InvalidTimeout(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("ADO_HTTP_TIMEOUT", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADO_HTTP_TIMEOUT")
}

func TestConfigToken(t *testing.T) {
	_, err := (&Config{}).Token()
	assert.ErrorIs(t, err, azdo.ErrMissingCredential)

	token, err := (&Config{PAT: "pat-123"}).Token()
	require.NoError(t, err)
	assert.Equal(t, "pat-123", token)
}
