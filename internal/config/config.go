package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/semester-planner/internal/common"
	"github.com/spf13/viper"
)

// Default values for keys that are not set in the config file or env.
const (
	DefaultDatabasePath = "$HOME/.local/share/planner/catalog.db"
	DefaultLogFile      = "$HOME/.local/state/planner/planner.log"
	DefaultServerAddr   = "127.0.0.1:5001"
	DefaultCertDir      = "$HOME/.local/share/planner/certs"
	DefaultAPITimeout   = 30 * time.Second
	DefaultAPIRetries   = 3
)

// Config is the resolved application configuration.
type Config struct {
	DatabasePath string
	APIURL       string
	APICAFile    string
	ServerAddr   string
	CertDir      string
	LogLevel     string
	LogFormat    string
	LogFile      string
	CORSOrigins  []string
	TLSHosts     []string
	APITimeout   time.Duration
	APIRetries   int
	ServerTLS    bool
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("api.url", "")
	v.SetDefault("api.timeout", DefaultAPITimeout)
	v.SetDefault("api.retries", DefaultAPIRetries)
	v.SetDefault("api.ca_file", "")
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.tls", false)
	v.SetDefault("server.cert_dir", DefaultCertDir)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", DefaultLogFile)
}

// Load resolves the configuration from the global viper instance.
func Load() (Config, error) {
	return FromViper(viper.GetViper())
}

// FromViper resolves the configuration from v.
func FromViper(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		DatabasePath: ExpandPath(v.GetString("database.path")),
		APIURL:       strings.TrimRight(v.GetString("api.url"), "/"),
		APICAFile:    ExpandPath(v.GetString("api.ca_file")),
		APITimeout:   v.GetDuration("api.timeout"),
		APIRetries:   v.GetInt("api.retries"),
		ServerAddr:   v.GetString("server.addr"),
		CORSOrigins:  v.GetStringSlice("server.cors_origins"),
		ServerTLS:    v.GetBool("server.tls"),
		CertDir:      ExpandPath(v.GetString("server.cert_dir")),
		TLSHosts:     v.GetStringSlice("server.tls_hosts"),
		LogLevel:     v.GetString("logging.level"),
		LogFormat:    v.GetString("logging.format"),
		LogFile:      ExpandPath(v.GetString("logging.file")),
	}

	if cfg.DatabasePath == "" && cfg.APIURL == "" {
		return cfg, fmt.Errorf("%w: database.path or api.url must be set", common.ErrMissingConfig)
	}
	if cfg.APITimeout <= 0 {
		return cfg, fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}
	if cfg.APIRetries < 0 {
		return cfg, fmt.Errorf("%w: api.retries cannot be negative", common.ErrInvalidConfig)
	}
	return cfg, nil
}

// UseRemoteCatalog reports whether reads go to the catalog API instead of
// the local database.
func (c Config) UseRemoteCatalog() bool {
	return c.APIURL != ""
}
