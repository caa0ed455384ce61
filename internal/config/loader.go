package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all platform settings.
const envPrefix = "FREONTRACK"

// newViper builds a pre-configured Viper instance with the platform's standard
// settings: YAML file type, FREONTRACK_ env prefix, automatic env binding, and
// a key replacer that maps "." → "_" so that nested keys like "database.host"
// resolve to "FREONTRACK_DATABASE_HOST".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v)
	return v
}

// knownKeys lists every configuration key so that environment-only overrides
// are visible to viper.Unmarshal.  Viper resolves env vars at lookup time, but
// only for keys it already knows about; without this registration a bare
// LoadFromEnv would silently ignore FREONTRACK_* variables.
var knownKeys = []string{
	"server.port", "server.mode", "server.read_timeout", "server.write_timeout",
	"server.idle_timeout", "server.shutdown_timeout", "server.cors_origins",
	"server.rate_limit_rps", "server.rate_limit_burst",
	"database.host", "database.port", "database.user", "database.password",
	"database.dbname", "database.sslmode", "database.max_conns",
	"database.max_idle_conns", "database.conn_max_lifetime", "database.migrations_path",
	"redis.addr", "redis.password", "redis.db", "redis.pool_size",
	"redis.min_idle_conns", "redis.dial_timeout", "redis.read_timeout",
	"redis.write_timeout", "redis.key_prefix",
	"kafka.brokers", "kafka.group_id", "kafka.acks", "kafka.batch_timeout",
	"kafka.write_timeout", "kafka.sasl_enabled", "kafka.sasl_mechanism",
	"kafka.sasl_username", "kafka.sasl_password", "kafka.tls_enabled", "kafka.tls_cert_path",
	"minio.endpoint", "minio.access_key_id", "minio.secret_access_key",
	"minio.use_ssl", "minio.region", "minio.documents_bucket", "minio.max_document_mb",
	"log.level", "log.format",
	"worker.scan_interval", "worker.inspection_due_window", "worker.cert_expiry_window",
	"worker.lock_ttl", "worker.rescore_on_inspection",
	"auth.enabled", "auth.static_tokens",
	"compliance.default_leak_rate_threshold", "compliance.default_inspection_freq_days",
	"compliance.risk_cache_ttl",
	"metrics.namespace", "metrics.enable_go_metrics", "metrics.enable_process_metrics",
}

func registerKeys(v *viper.Viper) {
	for _, k := range knownKeys {
		_ = v.BindEnv(k)
	}
}

// Load reads the YAML file at configPath, merges any FREONTRACK_* environment
// variable overrides, applies platform defaults for unset fields, and
// validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from FREONTRACK_* environment
// variables, with no config file required.  This is the preferred loading
// strategy for containerised (12-factor) deployments.
//
// Environment variable naming convention:
//
//	FREONTRACK_<SECTION>_<FIELD>   e.g.  FREONTRACK_DATABASE_HOST
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  It is intended for
// hot-reloading non-critical settings such as log level and rate-limit
// thresholds; callers are responsible for applying only the safe subset of
// changes at runtime.
//
// Watch is non-blocking; it starts a background goroutine managed by viper.
// If the changed file fails to parse or validate, onChange is not called.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read — errors are ignored here; callers should call Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			// An invalid on-disk config must not propagate to a running app.
			return
		}
		onChange(cfg)
	})
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// Intended for use in main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
