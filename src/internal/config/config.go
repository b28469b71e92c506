package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Channel   ChannelConfig
	RateLimit RateLimitConfig
	Quoting   QuotingConfig
	LogLevel  string
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	DSN            string
	RunMigrations  bool
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TierTTL  time.Duration
	// TierCacheSize bounds the in-process cache used without Redis.
	TierCacheSize int
}

type ChannelConfig struct {
	ID  string
	Key string
}

func (c ChannelConfig) Enabled() bool {
	return c.ID != "" && c.Key != ""
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type QuotingConfig struct {
	BaseRate              decimal.Decimal
	AnnualFeeRate         decimal.Decimal
	MaxDebtToIncome       decimal.Decimal
	MinDownPaymentPercent decimal.Decimal
	MaxRiskTier           int
	MaxTermYears          int
}

var defaults = map[string]any{
	"server.host":                      "0.0.0.0",
	"server.port":                      8080,
	"server.read_timeout":              "30s",
	"server.write_timeout":             "30s",
	"server.idle_timeout":              "60s",
	"server.shutdown_timeout":          "10s",
	"database.dsn":                     "",
	"database.run_migrations":          true,
	"database.connect_timeout":         "30s",
	"redis.addr":                       "",
	"redis.password":                   "",
	"redis.db":                         0,
	"redis.tier_ttl":                   "24h",
	"redis.tier_cache_size":            10000,
	"channel.id":                       "",
	"channel.key":                      "",
	"rate_limit.requests":              60,
	"rate_limit.window":                "1m",
	"quoting.base_rate":                "7.50",
	"quoting.annual_fee_rate":          "0.50",
	"quoting.max_debt_to_income":       "0.40",
	"quoting.min_down_payment_percent": "10",
	"quoting.max_risk_tier":            4,
	"quoting.max_term_years":           30,
	"log.level":                        "info",
}

// Load reads CONFIG_FILE when set, then environment variables such as
// SERVER_PORT, DATABASE_DSN or QUOTING_BASE_RATE, which take precedence.
func Load() (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("config_file", "CONFIG_FILE"); err != nil {
		return Config{}, fmt.Errorf("bind CONFIG_FILE: %w", err)
	}
	if file := strings.TrimSpace(v.GetString("config_file")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", file, err)
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			IdleTimeout:     v.GetDuration("server.idle_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			RunMigrations:  v.GetBool("database.run_migrations"),
			ConnectTimeout: v.GetDuration("database.connect_timeout"),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(v.GetString("redis.addr")),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TierTTL:  v.GetDuration("redis.tier_ttl"),

			TierCacheSize: v.GetInt("redis.tier_cache_size"),
		},
		Channel: ChannelConfig{
			ID:  strings.TrimSpace(v.GetString("channel.id")),
			Key: strings.TrimSpace(v.GetString("channel.key")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("rate_limit.requests"),
			Window:   v.GetDuration("rate_limit.window"),
		},
		Quoting: QuotingConfig{
			MaxRiskTier:  v.GetInt("quoting.max_risk_tier"),
			MaxTermYears: v.GetInt("quoting.max_term_years"),
		},
		LogLevel: v.GetString("log.level"),
	}

	if dsn := strings.TrimSpace(v.GetString("database.dsn")); dsn != "" {
		cfg.Database.DSN = normalizeConnectionString(dsn)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("server port %d is out of range", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 {
		return Config{}, fmt.Errorf("server timeouts must be positive")
	}

	var err error
	if cfg.Quoting.BaseRate, err = decimalSetting(v, "quoting.base_rate"); err != nil {
		return Config{}, err
	}
	if cfg.Quoting.AnnualFeeRate, err = decimalSetting(v, "quoting.annual_fee_rate"); err != nil {
		return Config{}, err
	}
	if cfg.Quoting.MaxDebtToIncome, err = decimalSetting(v, "quoting.max_debt_to_income"); err != nil {
		return Config{}, err
	}
	if cfg.Quoting.MinDownPaymentPercent, err = decimalSetting(v, "quoting.min_down_payment_percent"); err != nil {
		return Config{}, err
	}
	if cfg.Quoting.AnnualFeeRate.IsNegative() {
		return Config{}, fmt.Errorf("quoting.annual_fee_rate must not be negative")
	}
	if cfg.Quoting.MaxRiskTier < 1 {
		return Config{}, fmt.Errorf("quoting.max_risk_tier must be at least 1")
	}

	return cfg, nil
}

func decimalSetting(v *viper.Viper, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return d, nil
}

// normalizeConnectionString turns ADO style strings
// ("Host=...;Port=...;Database=...") into libpq key/value form. Strings
// already in libpq or URL form pass through unchanged.
func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") || !strings.Contains(raw, ";") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host", "server":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username", "user id":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode", "ssl mode":
			hasSSLMode = true
			out = append(out, "sslmode="+strings.ToLower(val))
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
