package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort = 8080
	DefaultServerMode = "release"

	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBName     = "freontrack"
	DefaultDBMaxConns = 25

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "freontrack"

	DefaultKafkaBroker  = "localhost:9092"
	DefaultKafkaGroupID = "freontrack-workers"

	DefaultMinIOEndpoint   = "localhost:9000"
	DefaultDocumentsBucket = "compliance-documents"
	DefaultMaxDocumentMB   = 25

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// EPA Section 608 comfort-cooling appliance defaults: a 10% annualized
	// leak rate threshold and a 30-day inspection cadence.
	DefaultLeakRateThreshold  = 10.0
	DefaultInspectionFreqDays = 30

	DefaultScanInterval        = 1 * time.Hour
	DefaultInspectionDueWindow = 7 * 24 * time.Hour
	DefaultCertExpiryWindow    = 30 * 24 * time.Hour

	DefaultMetricsNamespace = "freontrack"
)

// ApplyDefaults fills every zero-value field in cfg with the platform default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}
	if cfg.Server.RateLimitRPS == 0 {
		cfg.Server.RateLimitRPS = 20
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = 40
	}

	// ── Database ──────────────────────────────────────────────────────────────
	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDBMaxConns
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30 * time.Minute
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MigrationsPath == "" {
		cfg.Database.MigrationsPath = "migrations"
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.Acks == "" {
		cfg.Kafka.Acks = "all"
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = 1 * time.Second
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = 10 * time.Second
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.DocumentsBucket == "" {
		cfg.MinIO.DocumentsBucket = DefaultDocumentsBucket
	}
	if cfg.MinIO.MaxDocumentMB == 0 {
		cfg.MinIO.MaxDocumentMB = DefaultMaxDocumentMB
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Worker ────────────────────────────────────────────────────────────────
	if cfg.Worker.ScanInterval == 0 {
		cfg.Worker.ScanInterval = DefaultScanInterval
	}
	if cfg.Worker.InspectionDueWindow == 0 {
		cfg.Worker.InspectionDueWindow = DefaultInspectionDueWindow
	}
	if cfg.Worker.CertExpiryWindow == 0 {
		cfg.Worker.CertExpiryWindow = DefaultCertExpiryWindow
	}
	if cfg.Worker.LockTTL == 0 {
		cfg.Worker.LockTTL = 5 * time.Minute
	}

	// ── Compliance ────────────────────────────────────────────────────────────
	if cfg.Compliance.DefaultLeakRateThreshold == 0 {
		cfg.Compliance.DefaultLeakRateThreshold = DefaultLeakRateThreshold
	}
	if cfg.Compliance.DefaultInspectionFreqDays == 0 {
		cfg.Compliance.DefaultInspectionFreqDays = DefaultInspectionFreqDays
	}
	if cfg.Compliance.RiskCacheTTL == 0 {
		cfg.Compliance.RiskCacheTTL = 10 * time.Minute
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

//Personal.AI order the ending
