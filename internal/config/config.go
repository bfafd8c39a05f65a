// Package config resolves runtime configuration for the admin dashboard.
//
// The backend contract has drifted across revisions (path prefixes with and
// without /api, renamed fields), so endpoint paths are configuration rather
// than constants. Values come from, in order: defaults, an optional YAML
// config file, and RESORT_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is used when no backend origin is configured.
const DefaultBaseURL = "https://resort-production.up.railway.app"

// Config is the resolved runtime configuration.
type Config struct {
	ListenAddr string
	PageSize   int

	API     APIConfig
	Session SessionConfig

	// LocalAdminEmail/LocalAdminHash enable the local fallback login used
	// when the backend is unreachable or not yet provisioned. The hash is
	// a bcrypt hash of the fallback password.
	LocalAdminEmail string
	LocalAdminHash  string
}

// APIConfig describes how to reach the booking backend.
type APIConfig struct {
	BaseURL   string
	Prefix    string
	LoginPath string
	Timeout   time.Duration

	// Paths maps a resource operation to its backend path, relative to
	// Prefix. Overridable via the endpoints file.
	Paths map[string]string
}

// SessionConfig selects the session persistence backend.
type SessionConfig struct {
	Backend   string // "memory", "file" or "redis"
	FilePath  string
	RedisAddr string
	RedisDB   int
}

// Path operation keys.
const (
	PathUsers        = "users"
	PathRooms        = "rooms"
	PathRoomUpload   = "room_upload"
	PathContacts     = "contacts"
	PathContactsList = "contacts_list"
	PathBookings     = "bookings"
	PathBookingsList = "bookings_list"
	PathLogout       = "logout"
	PathMe           = "me"
)

func defaultPaths() map[string]string {
	return map[string]string{
		PathUsers:        "/admin/users",
		PathRooms:        "/admin/rooms",
		PathRoomUpload:   "/admin/rooms/upload",
		PathContacts:     "/contact/admin",
		PathContactsList: "/contact/admin/all",
		PathBookings:     "/admin/bookings",
		PathBookingsList: "/admin/rooms/bookings",
		PathLogout:       "/admin/logout",
		PathMe:           "/admin/me",
	}
}

// Load reads configuration from the optional config file at path and the
// environment. An empty path skips the file and uses defaults + env only.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("listen_addr", ":8087")
	v.SetDefault("page_size", 5)
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.prefix", "/api")
	v.SetDefault("api.login_path", "/auth/admin/login")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.endpoints_file", "")
	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.file_path", "")
	v.SetDefault("session.redis_addr", "")
	v.SetDefault("session.redis_db", 0)
	v.SetDefault("local_admin.email", "")
	v.SetDefault("local_admin.password_hash", "")

	v.SetEnvPrefix("RESORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		ListenAddr:      v.GetString("listen_addr"),
		PageSize:        v.GetInt("page_size"),
		LocalAdminEmail: v.GetString("local_admin.email"),
		LocalAdminHash:  v.GetString("local_admin.password_hash"),
		API: APIConfig{
			BaseURL:   strings.TrimRight(v.GetString("api.base_url"), "/"),
			Prefix:    v.GetString("api.prefix"),
			LoginPath: v.GetString("api.login_path"),
			Timeout:   v.GetDuration("api.timeout"),
			Paths:     defaultPaths(),
		},
		Session: SessionConfig{
			Backend:   v.GetString("session.backend"),
			FilePath:  v.GetString("session.file_path"),
			RedisAddr: v.GetString("session.redis_addr"),
			RedisDB:   v.GetInt("session.redis_db"),
		},
	}

	if cfg.PageSize < 1 {
		cfg.PageSize = 5
	}

	if ep := v.GetString("api.endpoints_file"); ep != "" {
		if err := cfg.API.loadEndpointOverrides(ep); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// loadEndpointOverrides merges per-operation path overrides from a YAML file
// shaped as a flat mapping of operation key to path.
func (a *APIConfig) loadEndpointOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read endpoints file %s: %w", path, err)
	}
	overrides := map[string]string{}
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("parse endpoints file %s: %w", path, err)
	}
	for op, p := range overrides {
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		a.Paths[op] = p
	}
	return nil
}

// Path returns the prefixed backend path for an operation key.
func (a *APIConfig) Path(op string) string {
	p, ok := a.Paths[op]
	if !ok {
		p = "/" + op
	}
	return a.Prefix + p
}

// LoginEndpoint returns the prefixed login path.
func (a *APIConfig) LoginEndpoint() string {
	return a.Prefix + a.LoginPath
}
