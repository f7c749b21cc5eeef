package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validJSON = `{
  "store": {
    "apiKey": "AIza-test",
    "authDomain": "https://identitytoolkit.googleapis.com",
    "projectId": "tearoom",
    "driver": "memory",
    "uri": "memory://",
    "adminEmail": "owner@example.com"
  },
  "repo": {
    "owner": "tearoom",
    "repo": "site",
    "token": "ghp_abcdef",
    "apiBase": "https://api.github.com/repos"
  }
}`

func noEnv(string) (string, bool) { return "", false }

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "dev-config.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoader_ProductionWins(t *testing.T) {
	devFile := writeFile(t, `{"store": {}}`)
	l := NewLoader(devFile)
	l.LookupEnv = func(key string) (string, bool) {
		if key == EnvInjectedConfig {
			return validJSON, true
		}
		return "", false
	}

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "tearoom", cfg.Store.ProjectID)
	assert.Equal(t, "ghp_abcdef", cfg.Repo.Token)
	assert.Equal(t, "github", cfg.FileBackend())
}

func TestLoader_FallsBackToDevFile(t *testing.T) {
	l := NewLoader(writeFile(t, validJSON))
	l.LookupEnv = noEnv

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", cfg.Store.AdminEmail)
}

func TestLoader_CachesResult(t *testing.T) {
	p := writeFile(t, validJSON)
	l := NewLoader(p)
	l.LookupEnv = noEnv

	first, err := l.Load()
	require.NoError(t, err)

	require.NoError(t, os.Remove(p))

	second, err := l.Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoader_MissingDevFile(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "missing.json"))
	l.LookupEnv = noEnv

	cfg, err := l.Load()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration loading failed")
	assert.Contains(t, err.Error(), "local config error")
}

func TestLoader_MalformedFile(t *testing.T) {
	l := NewLoader(writeFile(t, `{"store": `))
	l.LookupEnv = noEnv

	_, err := l.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed configuration")
}

func TestLoader_MalformedInjectedConfig(t *testing.T) {
	l := NewLoader(writeFile(t, validJSON))
	l.LookupEnv = func(key string) (string, bool) {
		if key == EnvInjectedConfig {
			return `{"store": {"apiKey": `, true
		}
		return "", false
	}

	cfg, err := l.Load()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration loading failed")
	assert.Contains(t, err.Error(), "malformed configuration")

	l.LookupEnv = func(key string) (string, bool) {
		if key == EnvInjectedConfig {
			return "  ", true
		}
		return "", false
	}
	cfg, err = l.Load()
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", cfg.Store.AdminEmail)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := decode([]byte(validJSON))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantMsg string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing store section",
			mutate:  func(c *Config) { c.Store = nil },
			wantMsg: "configuration section 'store' is missing",
		},
		{
			name:    "missing repo section",
			mutate:  func(c *Config) { c.Repo = nil },
			wantMsg: "configuration section 'repo' is missing",
		},
		{
			name:    "missing field",
			mutate:  func(c *Config) { c.Repo.Owner = "" },
			wantMsg: "configuration field 'repo.owner' is missing",
		},
		{
			name:    "placeholder value",
			mutate:  func(c *Config) { c.Store.APIKey = "YOUR_API_KEY" },
			wantMsg: "configuration field 'store.apiKey' holds a placeholder value",
		},
		{
			name:    "placeholder token",
			mutate:  func(c *Config) { c.Repo.Token = "ghp_YOUR_TOKEN" },
			wantMsg: "configuration field 'repo.token' holds a placeholder value",
		},
		{
			name:    "bad token prefix",
			mutate:  func(c *Config) { c.Repo.Token = "gho_abcdef" },
			wantMsg: "invalid repository token format - must start with ghp_",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Store.Driver = "firestore" },
			wantMsg: "configuration field 'store.driver' must be one of",
		},
		{
			name:    "s3 backend without section",
			mutate:  func(c *Config) { c.Repo.Files = "s3" },
			wantMsg: "configuration section 'repo.s3' is missing",
		},
		{
			name: "s3 backend with incomplete section",
			mutate: func(c *Config) {
				c.Repo.Files = "s3"
				c.Repo.S3 = &S3Config{Endpoint: "minio:9000", AccessKey: "a", SecretKey: "b", PublicBase: "https://cdn.example.com"}
			},
			wantMsg: "configuration field 'repo.s3.bucket' is missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
