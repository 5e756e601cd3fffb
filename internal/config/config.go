// Package config loads and saves eora's settings file (~/.eora/config.json).
//
// Values resolve in this order, highest first: explicit setters (command-line
// flags), process environment, a .env file, the JSON file, built-in defaults.
// Only file values and values set through the Set* persisters are written back
// by Save; environment overrides never leak into the file.
package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"github.com/eora-ai/eora/internal/errors"
)

const (
	DefaultServerURL = "http://localhost:8000"
	DefaultUserID    = "anonymous"

	EnvServerURL = "EORA_SERVER_URL"
	EnvUserID    = "EORA_USER_ID"
	EnvTimeout   = "EORA_TIMEOUT"
)

// Config holds the application configuration
type Config struct {
	ServerURL             string `json:"server_url,omitempty"`
	UserID                string `json:"user_id,omitempty"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty"` // 0 disables the client timeout
	NotificationsEnabled  bool   `json:"notifications_enabled,omitempty"`   // Desktop notification when a reply arrives

	// CurrentSession is the persisted currentSessionId key.
	CurrentSession string `json:"current_session_id,omitempty"`

	mu       sync.RWMutex
	filePath string

	// overrides from flags, environment or .env; never saved
	serverOverride  string
	userOverride    string
	timeoutOverride *int
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".eora"), nil
}

// DefaultPath returns the path to the config file under the user's home.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the default config file and a .env file in the working directory.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path, ".env")
}

// LoadFile reads the config at path, creating defaults if it doesn't exist,
// then applies overrides from dotenvPath (may be empty) and the environment.
func LoadFile(path, dotenvPath string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, errors.ConfigLoadFailed(path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigLoadFailed(path, err)
		}
	}

	cfg.ensureInitialized()

	dotenv, err := readDotEnv(dotenvPath)
	if err != nil {
		return nil, errors.ConfigLoadFailed(dotenvPath, err)
	}
	if err := cfg.applyOverrides(dotenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New returns an in-memory config with defaults that saves to path.
// An empty path makes Save a no-op.
func New(path string) *Config {
	cfg := &Config{filePath: path}
	cfg.ensureInitialized()
	return cfg
}

func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return env, err
}

// ensureInitialized fills defaults. It is NOT thread-safe and must only be
// called before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.UserID == "" {
		c.UserID = DefaultUserID
	}
}

func (c *Config) applyOverrides(dotenv map[string]string) error {
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(dotenv[key])
	}

	if v := lookup(EnvServerURL); v != "" {
		c.serverOverride = v
	}
	if v := lookup(EnvUserID); v != "" {
		c.userOverride = v
	}
	if v := lookup(EnvTimeout); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return errors.ConfigInvalid(fmt.Sprintf("%s must be a whole number of seconds, got %q", EnvTimeout, v))
		}
		c.timeoutOverride = &secs
	}
	return nil
}

// Validate checks that the resolved values are usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	server := c.serverURLLocked()
	u, err := url.Parse(server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.ConfigInvalid(fmt.Sprintf("server url %q must be an absolute http(s) URL", server))
	}
	if c.timeoutLocked() < 0 {
		return errors.ConfigInvalid("request timeout must not be negative")
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// FilePath returns where Save writes.
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

func (c *Config) serverURLLocked() string {
	if c.serverOverride != "" {
		return c.serverOverride
	}
	return c.ServerURL
}

func (c *Config) timeoutLocked() int {
	if c.timeoutOverride != nil {
		return *c.timeoutOverride
	}
	return c.RequestTimeoutSeconds
}

// GetServerURL returns the backend base URL without a trailing slash.
func (c *Config) GetServerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return strings.TrimRight(c.serverURLLocked(), "/")
}

// OverrideServerURL points this run at another backend without saving it.
func (c *Config) OverrideServerURL(server string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.serverOverride = strings.TrimSpace(server)
}

// GetUserID returns the user id sent with create requests.
func (c *Config) GetUserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.userOverride != "" {
		return c.userOverride
	}
	return c.UserID
}

// GetRequestTimeout returns the HTTP client timeout; zero means none.
func (c *Config) GetRequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.timeoutLocked()) * time.Second
}

func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// CurrentSessionID returns the persisted current session id.
func (c *Config) CurrentSessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.CurrentSession
}

// SetCurrentSessionID records id as the current session and saves
// immediately, so a crash never loses the pointer.
func (c *Config) SetCurrentSessionID(id string) error {
	c.mu.Lock()
	c.CurrentSession = id
	c.mu.Unlock()
	return c.Save()
}
