package store

import (
	"time"

	"socialnorm/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string
	Role    string

	CH  CHConfig
	RDS RedisConfig

	// Boot knobs shared by every backend
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled      bool
	URL          string
	MaxOpenConns int
	DialTimeout  time.Duration
}

// RedisConfig configures redis connectivity
// URL wins over Addr when both are set
type RedisConfig struct {
	Enabled  bool
	URL      string
	Addr     string
	Username string
	Password string
	DB       int
	PoolSize int
}

// FromEnv reads SERVICE_CLICKHOUSE_* and SERVICE_REDIS_* under root
// role tags the process in clickhouse client info
func FromEnv(root config.Conf, role string) Config {
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	rdsCfg := root.Prefix("SERVICE_REDIS_")
	boot := root.Prefix("SERVICE_STORE_")

	cfg := Config{
		AppName:        boot.MayString("APP_NAME", "socialnorm"),
		Role:           role,
		ConnectRetries: boot.MayInt("CONNECT_RETRIES", 20),
		PingTimeout:    boot.MayDuration("PING_TIMEOUT", 3*time.Second),
		CH: CHConfig{
			Enabled:      chCfg.MayBool("ENABLED", false),
			MaxOpenConns: chCfg.MayInt("MAX_OPEN_CONNS", 4),
			DialTimeout:  chCfg.MayDuration("DIAL_TIMEOUT", 5*time.Second),
		},
		RDS: RedisConfig{
			Enabled:  rdsCfg.MayBool("ENABLED", false),
			URL:      rdsCfg.MayString("URL", ""),
			Addr:     rdsCfg.MayString("ADDR", "localhost:6379"),
			Username: rdsCfg.MayString("USERNAME", ""),
			Password: rdsCfg.MayString("PASSWORD", ""),
			DB:       rdsCfg.MayInt("DB", 0),
			PoolSize: rdsCfg.MayInt("POOL_SIZE", 0),
		},
	}
	if cfg.CH.Enabled {
		cfg.CH.URL = chCfg.MustString("DBURL")
	}
	return cfg
}
