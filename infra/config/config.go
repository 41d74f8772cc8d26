package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/rivalsnexus/infra/storage"
)

// Storage backends for the client feed data.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Config holds client configuration.
type Config struct {
	APIURL       string // account API base URL, e.g. "http://localhost:3000"
	DataDir      string // directory for local feed data, logs and UI state
	Storage      string // StorageFile or StorageSQLite
	StorageQuota int    // bytes available to the durable store
	ShareBase    string // base URL for shared post links
	UIStatePath  string
	LogPath      string
}

// StorePath is the durable store location for the configured backend.
func (c Config) StorePath() string {
	if c.Storage == StorageSQLite {
		return filepath.Join(c.DataDir, "community.db")
	}
	return filepath.Join(c.DataDir, "community.json")
}

// Load reads client configuration from environment variables.
//
//	RIVALS_API_URL        account API base URL (default: http://localhost:3000)
//	RIVALS_DATA_DIR       data directory (default: ~/.config/rivalsnexus)
//	RIVALS_STORAGE        "file" or "sqlite" (default: file)
//	RIVALS_STORAGE_QUOTA  durable store quota in bytes (default: 5 MiB)
//	RIVALS_SHARE_BASE     share link base (default: https://rivalsnexus.local/community)
func Load() (Config, error) {
	api, err := absoluteURL("RIVALS_API_URL", envOr("RIVALS_API_URL", "http://localhost:3000"))
	if err != nil {
		return Config{}, err
	}
	share, err := absoluteURL("RIVALS_SHARE_BASE", envOr("RIVALS_SHARE_BASE", "https://rivalsnexus.local/community"))
	if err != nil {
		return Config{}, err
	}

	dataDir := os.Getenv("RIVALS_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".config", "rivalsnexus")
	}

	backend := strings.ToLower(envOr("RIVALS_STORAGE", StorageFile))
	if backend != StorageFile && backend != StorageSQLite {
		return Config{}, fmt.Errorf("invalid RIVALS_STORAGE %q: must be %q or %q", backend, StorageFile, StorageSQLite)
	}

	quota := storage.DefaultQuota
	if raw := os.Getenv("RIVALS_STORAGE_QUOTA"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid RIVALS_STORAGE_QUOTA %q: must be a positive byte count", raw)
		}
		quota = n
	}

	return Config{
		APIURL:       api,
		DataDir:      dataDir,
		Storage:      backend,
		StorageQuota: quota,
		ShareBase:    share,
		UIStatePath:  filepath.Join(dataDir, "ui_state.json"),
		LogPath:      filepath.Join(dataDir, "rivalsnexus.log"),
	}, nil
}

// ServerConfig holds account API configuration.
type ServerConfig struct {
	Port        string
	MongoURI    string
	Database    string
	AdminEmail  string
	JWTSecret   string
	CORSOrigins []string
}

// Addr is the listen address for the configured port.
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}

// LoadServer reads server configuration from environment variables.
//
//	PORT              listen port (default: 3000)
//	MONGODB_URI       (default: mongodb://127.0.0.1:27017)
//	MONGODB_DATABASE  (default: mywebapp)
//	ADMIN_EMAIL       account promoted to admin (default: admin67@gmail.com)
//	JWT_SECRET        session signing secret (required)
//	CORS_ORIGINS      comma separated origins (default: *)
func LoadServer() (ServerConfig, error) {
	port := envOr("PORT", "3000")
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return ServerConfig{}, fmt.Errorf("invalid PORT %q", port)
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return ServerConfig{}, fmt.Errorf("JWT_SECRET is required")
	}

	var origins []string
	for _, o := range strings.Split(envOr("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return ServerConfig{
		Port:        port,
		MongoURI:    envOr("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		Database:    envOr("MONGODB_DATABASE", "mywebapp"),
		AdminEmail:  strings.ToLower(strings.TrimSpace(envOr("ADMIN_EMAIL", "admin67@gmail.com"))),
		JWTSecret:   secret,
		CORSOrigins: origins,
	}, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func absoluteURL(name, raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid %s: must be an absolute URL", name)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid %s: only http and https are allowed", name)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}
