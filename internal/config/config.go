// Package config provides configuration loading, defaults, and validation for
// the FreonTrack-Compliance platform.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration object for every binary (apiserver, worker,
// CLI).  Each section maps to a top-level key in the YAML file and to the
// FREONTRACK_<SECTION>_<FIELD> environment variable namespace.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	MinIO      MinIOConfig      `mapstructure:"minio"`
	Log        LogConfig        `mapstructure:"log"`
	Worker     WorkerConfig     `mapstructure:"worker"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Compliance ComplianceConfig `mapstructure:"compliance"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	RateLimitRPS    float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst"`
}

// DatabaseConfig controls the PostgreSQL connection pool.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsPath  string        `mapstructure:"migrations_path"`
}

// RedisConfig controls the Redis cache client.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig controls the event producer.
type KafkaConfig struct {
	Brokers       []string      `mapstructure:"brokers"`
	GroupID       string        `mapstructure:"group_id"`
	Acks          string        `mapstructure:"acks"` // none, one, all
	BatchTimeout  time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	SASLEnabled   bool          `mapstructure:"sasl_enabled"`
	SASLMechanism string        `mapstructure:"sasl_mechanism"`
	SASLUsername  string        `mapstructure:"sasl_username"`
	SASLPassword  string        `mapstructure:"sasl_password"`
	TLSEnabled    bool          `mapstructure:"tls_enabled"`
	TLSCertPath   string        `mapstructure:"tls_cert_path"`
}

// MinIOConfig controls the compliance document store.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Region          string `mapstructure:"region"`
	DocumentsBucket string `mapstructure:"documents_bucket"`
	MaxDocumentMB   int64  `mapstructure:"max_document_mb"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WorkerConfig controls the background compliance scanner.
type WorkerConfig struct {
	ScanInterval          time.Duration `mapstructure:"scan_interval"`
	InspectionDueWindow   time.Duration `mapstructure:"inspection_due_window"`
	CertExpiryWindow      time.Duration `mapstructure:"cert_expiry_window"`
	LockTTL               time.Duration `mapstructure:"lock_ttl"`
	RescoreOnInspection   bool          `mapstructure:"rescore_on_inspection"`
}

// AuthConfig controls API authentication.
type AuthConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// StaticTokens maps bearer tokens to role names.  Intended for
	// small single-site deployments; production installs plug in an
	// external TokenValidator.
	StaticTokens map[string]string `mapstructure:"static_tokens"`
}

// ComplianceConfig carries regulatory parameters applied when equipment does
// not override them.
type ComplianceConfig struct {
	DefaultLeakRateThreshold  float64       `mapstructure:"default_leak_rate_threshold"`
	DefaultInspectionFreqDays int           `mapstructure:"default_inspection_freq_days"`
	RiskCacheTTL              time.Duration `mapstructure:"risk_cache_ttl"`
}

// MetricsConfig controls Prometheus exposition.
type MetricsConfig struct {
	Namespace            string `mapstructure:"namespace"`
	EnableGoMetrics      bool   `mapstructure:"enable_go_metrics"`
	EnableProcessMetrics bool   `mapstructure:"enable_process_metrics"`
}

// Validate checks cross-field constraints that ApplyDefaults cannot repair.
// It is called by the loader after defaults are applied, so only genuinely
// invalid configurations reach this point.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("server.mode %q must be debug or release", c.Server.Mode)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required")
	}
	if c.Compliance.DefaultLeakRateThreshold <= 0 {
		return fmt.Errorf("compliance.default_leak_rate_threshold must be positive, got %g",
			c.Compliance.DefaultLeakRateThreshold)
	}
	if c.Compliance.DefaultInspectionFreqDays <= 0 {
		return fmt.Errorf("compliance.default_inspection_freq_days must be positive")
	}
	if c.MinIO.MaxDocumentMB < 0 {
		return fmt.Errorf("minio.max_document_mb must be non-negative")
	}
	return nil
}

//Personal.AI order the ending
