package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database     DatabaseConfigs     `toml:"database"`
	ApiServer    APIServerConfigs    `toml:"api_server"`
	Auth         AuthConfigs         `toml:"auth"`
	Storage      S3Configs           `toml:"storage"`
	File         FileConfigs         `toml:"file"`
	Redis        RedisConfigs        `toml:"redis"`
	Kafka        KafkaConfigs        `toml:"kafka"`
	SearchServer SearchServerConfigs `toml:"search"`
	Gamification GamificationConfigs `toml:"gamification"`
	Cron         CronConfigs         `toml:"cron"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `toml:"log_level"`
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	MaxLimit       int      `toml:"max_limit"`
	DefaultLimit   int      `toml:"default_limit"`
	AllowedOrigins []string `toml:"allowed_origins"`

	// RateLimit is the number of requests per second allowed from a single
	// client address. Zero disables the limiter.
	RateLimit      float64 `toml:"rate_limit"`
	RateLimitBurst int     `toml:"rate_limit_burst"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type S3Configs struct {
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	PublicEndpoint string `toml:"public_endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	SSLDisabled    bool   `toml:"ssl_disabled"`
}

type FileConfigs struct {
	MaxSize       int64 `toml:"max_size"`
	MaxImageWidth int   `toml:"max_image_width"`
	MaxFiles      int   `toml:"max_files"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr    string `toml:"addr"`
	GroupID string `toml:"group_id"`
}

type SearchServerConfigs struct {
	// IndexDir is where bleve persists its indexes. An empty value keeps the
	// indexes in memory.
	IndexDir string `toml:"index_dir"`
}

// MaxDailySlots keeps the daily slot numbers below the weekly slot number.
const MaxDailySlots = 99

type GamificationConfigs struct {
	location *time.Location

	Timezone         string `toml:"timezone"`
	DailySlots       int    `toml:"daily_slots"`
	SubmissionBucket string `toml:"submission_bucket"`
	ShopBucket       string `toml:"shop_bucket"`
	VoucherPrefix    string `toml:"voucher_prefix"`
}

// Location returns the timezone used to compute quest periods. It is resolved
// once by Load; configs built in code use UTC.
func (c GamificationConfigs) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}

	return c.location
}

func (c *GamificationConfigs) load() error {
	if c.DailySlots < 1 || c.DailySlots > MaxDailySlots {
		return fmt.Errorf("daily_slots must be between 1 and %d, got %d", MaxDailySlots, c.DailySlots)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	c.location = loc
	return nil
}

type CronConfigs struct {
	PopulateSlots      bool `toml:"populate_slots"`
	RefreshLeaderboard bool `toml:"refresh_leaderboard"`
}

// Default returns the configurations used when a key is missing from the
// config file.
func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "gamification",
			User:     "mysql",
			LogLevel: "error",
		},
		ApiServer: APIServerConfigs{
			ServerConfigs:  ServerConfigs{Host: "", Port: "8080"},
			MaxLimit:       50,
			DefaultLimit:   10,
			AllowedOrigins: []string{"*"},
			RateLimit:      20,
			RateLimitBurst: 40,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 24 * time.Hour,
			},
		},
		File: FileConfigs{
			MaxSize:       10 * 1024 * 1024,
			MaxImageWidth: 1920,
			MaxFiles:      5,
		},
		Redis: RedisConfigs{Addr: "localhost:6379"},
		Kafka: KafkaConfigs{Addr: "localhost:9092", GroupID: "gamification"},
		Gamification: GamificationConfigs{
			Timezone:         "UTC",
			DailySlots:       3,
			SubmissionBucket: "quest-submissions",
			ShopBucket:       "shop-items",
			VoucherPrefix:    "VCH",
		},
		Cron: CronConfigs{
			PopulateSlots:      true,
			RefreshLeaderboard: true,
		},
	}
}

// Load reads the toml file at path on top of the default configurations.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	if err := cfg.Gamification.load(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
