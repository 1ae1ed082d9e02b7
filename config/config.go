package config

import (
	"fmt"
	"time"

	"github.com/reusedev/sbi-hub/internal/consts"
	"github.com/reusedev/sbi-hub/tools"
	"gopkg.in/yaml.v3"
)

var GConfig *Config

func Init(filePath string) {
	initFromYaml(tools.PanicOnError(tools.ReadFile(filePath)))
	if err := GConfig.Verify(); err != nil {
		panic(err)
	}
}

func initFromYaml(config []byte) {
	cfg, err := Parse(config)
	if err != nil {
		panic(err)
	}
	GConfig = cfg
}

// Parse decodes a yaml document and fills the defaults. It does not verify.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.FullWithDefault()
	return cfg, nil
}

type Config struct {
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	LogMaxSize    int    `yaml:"log_max_size"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogMaxAge     int    `yaml:"log_max_age"`

	HistoryEnabled  bool   `yaml:"history_enabled"`
	StorageEnabled  bool   `yaml:"storage_enabled"`
	StorageSupplier string `yaml:"storage_supplier"`
	URLExpires      string `yaml:"url_expires"`

	Search      `yaml:"search"`
	Preferences `yaml:"preferences"`
	AliOss      `yaml:"ali_oss"`
	Local       `yaml:"local"`
	MySQL       `yaml:"mysql"`
}

func (c *Config) FullWithDefault() {
	if c.LogFile == "" {
		c.LogFile = "logs/sbi-hub.log"
	}
	if c.LogMaxSize == 0 {
		c.LogMaxSize = 100
	}
	if c.URLExpires == "" {
		c.URLExpires = "168h"
	}
	if c.Search.PageTitle == "" {
		c.Search.PageTitle = consts.DefaultPageTitle
	}
	if c.Search.Server == "" {
		c.Search.Server = consts.SearchServer
	}
	if c.Search.FetchTimeout == "" {
		c.Search.FetchTimeout = "30s"
	}
	if c.Search.MaxImageBytes == 0 {
		c.Search.MaxImageBytes = 20 << 20
	}
	if c.Search.MaxImagePixels == 0 {
		c.Search.MaxImagePixels = 50_000_000
	}
	if c.Search.CacheTTL == "" {
		c.Search.CacheTTL = "5m"
	}
	if c.Preferences.Option == "" {
		c.Preferences.Option = consts.HoverMouseover.String()
	}
	if c.Preferences.HoverMinDims == nil {
		v := consts.DefaultHoverMinPx
		c.Preferences.HoverMinDims = &v
	}
	if c.MySQL.Charset == "" {
		c.MySQL.Charset = "utf8mb4"
	}
}

func (c *Config) Verify() error {
	if c.StorageEnabled {
		switch consts.StorageSupplier(c.StorageSupplier) {
		case consts.AliOSS, consts.LocalStorage:
		default:
			return fmt.Errorf("storage_supplier must be ali_oss or local, got %q", c.StorageSupplier)
		}
		if !c.HistoryEnabled {
			return fmt.Errorf("storage_enabled requires history_enabled")
		}
	}
	for name, v := range map[string]string{
		"url_expires":          c.URLExpires,
		"search.fetch_timeout": c.Search.FetchTimeout,
		"search.cache_ttl":     c.Search.CacheTTL,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	if c.Search.MaxImageBytes < 0 {
		return fmt.Errorf("search.max_image_bytes must be non-negative")
	}
	if c.Search.MaxImagePixels < 0 {
		return fmt.Errorf("search.max_image_pixels must be non-negative")
	}
	switch consts.HoverOption(c.Preferences.Option) {
	case consts.HoverMouseover, consts.HoverNever:
	default:
		return fmt.Errorf("preferences.option must be mouseover or never, got %q", c.Preferences.Option)
	}
	if *c.Preferences.HoverMinDims < 0 {
		return fmt.Errorf("preferences.hover_min_dims must be non-negative")
	}
	return nil
}

type Search struct {
	Server         string `yaml:"server"`
	PageTitle      string `yaml:"page_title"`
	FetchTimeout   string `yaml:"fetch_timeout"`
	MaxImageBytes  int64  `yaml:"max_image_bytes"`
	MaxImagePixels int64  `yaml:"max_image_pixels"`
	CacheTTL       string `yaml:"cache_ttl"`
	// AllowPrivateNetworks lets searches fetch from loopback and private
	// addresses. Off unless the service only sees trusted callers.
	AllowPrivateNetworks bool `yaml:"allow_private_networks"`
}

func (s Search) FetchTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.FetchTimeout)
	return d
}

func (s Search) CacheTTLDuration() time.Duration {
	d, _ := time.ParseDuration(s.CacheTTL)
	return d
}

// Preferences are the defaults served to clients that never stored their own.
type Preferences struct {
	GetURL       bool   `yaml:"get_url"`
	Option       string `yaml:"option"`
	HoverMinDims *int   `yaml:"hover_min_dims"`
}

type AliOss struct {
	AccessKeyId     string `yaml:"access_key_id"`
	AccessKeySecret string `yaml:"access_key_secret"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	Directory       string `yaml:"directory"`
}

type Local struct {
	Directory string `yaml:"directory"`
}

type MySQL struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	Charset      string `yaml:"charset"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}
