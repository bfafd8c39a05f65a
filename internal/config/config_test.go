package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "/api", cfg.API.Prefix)
	assert.Equal(t, "/api/auth/admin/login", cfg.API.LoginEndpoint())
	assert.Equal(t, "/api/admin/users", cfg.API.Path(PathUsers))
	assert.Equal(t, "/api/admin/rooms/bookings", cfg.API.Path(PathBookingsList))
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, "memory", cfg.Session.Backend)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RESORT_API_BASE_URL", "https://staging.example.com///")
	t.Setenv("RESORT_API_PREFIX", "")
	t.Setenv("RESORT_PAGE_SIZE", "10")

	cfg, err := Load("")
	require.NoError(t, err)

	// Trailing slashes are stripped before path concatenation.
	assert.Equal(t, "https://staging.example.com", cfg.API.BaseURL)
	assert.Equal(t, "/auth/admin/login", cfg.API.LoginEndpoint())
	assert.Equal(t, 10, cfg.PageSize)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resortadmin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"listen_addr: \":9090\"\nsession:\n  backend: file\n  file_path: /tmp/sess.json\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "file", cfg.Session.Backend)
	assert.Equal(t, "/tmp/sess.json", cfg.Session.FilePath)
}

func TestEndpointOverrides(t *testing.T) {
	dir := t.TempDir()
	ep := filepath.Join(dir, "endpoints.yaml")
	require.NoError(t, os.WriteFile(ep, []byte(
		"users: /profile/all\nrooms: admin/resort-rooms\n"), 0o644))

	cfg := filepath.Join(dir, "resortadmin.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("api:\n  endpoints_file: "+ep+"\n"), 0o644))

	c, err := Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/api/profile/all", c.API.Path(PathUsers))
	// Missing leading slash is tolerated.
	assert.Equal(t, "/api/admin/resort-rooms", c.API.Path(PathRooms))
	// Untouched operations keep their defaults.
	assert.Equal(t, "/api/contact/admin/all", c.API.Path(PathContactsList))
}
