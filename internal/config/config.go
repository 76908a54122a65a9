package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Log         LogConfig         `mapstructure:"log"`
	Wildberries WildberriesConfig `mapstructure:"wildberries"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Export      ExportConfig      `mapstructure:"export"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// WildberriesConfig holds marketplace endpoints and crawl settings
type WildberriesConfig struct {
	MenuURL       string `mapstructure:"menu_url"`
	ListingURL    string `mapstructure:"listing_url"` // %s is replaced with the shard
	CatalogPrefix string `mapstructure:"catalog_prefix"`
	CatalogPath   string `mapstructure:"catalog_path"`
	ProductURL    string `mapstructure:"product_url"` // %d is replaced with the product id
	UserAgent     string `mapstructure:"user_agent"`

	Timeout              int           `mapstructure:"timeout"`
	PageDelay            time.Duration `mapstructure:"page_delay"` // pause after every non-empty listing page
	MaxPages             int           `mapstructure:"max_pages"`  // 0 disables the limit
	MaxRequestsPerSecond int           `mapstructure:"max_requests_per_second"`
	ExactMatch           bool          `mapstructure:"exact_match"`
	Proxies              []string      `mapstructure:"proxies"`

	Listing ListingParams `mapstructure:"listing"`
}

// ListingParams are the fixed query parameters sent with every listing request
type ListingParams struct {
	AppType  string `mapstructure:"app_type"`
	Currency string `mapstructure:"curr"`
	Dest     string `mapstructure:"dest"`
	Locale   string `mapstructure:"locale"`
	Reg      string `mapstructure:"reg"`
	Regions  string `mapstructure:"regions"`
	Sort     string `mapstructure:"sort"`
	Spp      string `mapstructure:"spp"`
}

// CacheConfig selects where the catalog tree is cached
type CacheConfig struct {
	Backend string `mapstructure:"backend"` // file or redis
	Dir     string `mapstructure:"dir"`
	Key     string `mapstructure:"key"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  int    `mapstructure:"database"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// DSN returns the pgx connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// ExportConfig controls the tabular output
type ExportConfig struct {
	Format string `mapstructure:"format"` // xlsx, csv or none
	Path   string `mapstructure:"path"`
}

// Load loads configuration from config.yaml in the given directories (the
// working directory when none are given) with environment variable overrides.
// A missing config file is not an error: defaults describe a complete run.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.Wildberries.MaxPages < 0 {
		return fmt.Errorf("wildberries.max_pages must not be negative, got %d", c.Wildberries.MaxPages)
	}
	if c.Wildberries.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("wildberries.max_requests_per_second must not be negative, got %d", c.Wildberries.MaxRequestsPerSecond)
	}
	if c.Wildberries.PageDelay < 0 {
		return fmt.Errorf("wildberries.page_delay must not be negative, got %s", c.Wildberries.PageDelay)
	}
	switch c.Cache.Backend {
	case "file", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Export.Format {
	case "xlsx", "csv", "none":
	default:
		return fmt.Errorf("unknown export format %q", c.Export.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("wildberries.menu_url", "https://www.wildberries.ru/webapi/menu/main-menu-ru-ru.json")
	v.SetDefault("wildberries.listing_url", "https://catalog.wb.ru/catalog/%s/catalog")
	v.SetDefault("wildberries.catalog_prefix", "https://www.wildberries.ru/catalog/")
	v.SetDefault("wildberries.catalog_path", "https://www.wildberries.ru/catalog/elektronika/smartfony-i-telefony/vse-smartfony")
	v.SetDefault("wildberries.product_url", "https://www.wildberries.ru/catalog/%d/detail.aspx?targetUrl=BP")
	v.SetDefault("wildberries.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	v.SetDefault("wildberries.timeout", 30)
	v.SetDefault("wildberries.page_delay", time.Second)
	v.SetDefault("wildberries.max_pages", 100)
	v.SetDefault("wildberries.max_requests_per_second", 2)
	v.SetDefault("wildberries.exact_match", false)
	v.SetDefault("wildberries.proxies", []string{})

	v.SetDefault("wildberries.listing.app_type", "1")
	v.SetDefault("wildberries.listing.curr", "rub")
	v.SetDefault("wildberries.listing.dest", "-1075831,-77677,-398551,12358499")
	v.SetDefault("wildberries.listing.locale", "ru")
	v.SetDefault("wildberries.listing.reg", "0")
	v.SetDefault("wildberries.listing.regions", "64,83,4,38,80,33,70,82,86,30,69,1,48,22,66,31,40")
	v.SetDefault("wildberries.listing.sort", "popular")
	v.SetDefault("wildberries.listing.spp", "0")

	v.SetDefault("cache.backend", "file")
	v.SetDefault("cache.dir", ".")
	v.SetDefault("cache.key", "wb_catalogs_data.json")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.key_prefix", "wildberries:cache:")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "wildberries")
	v.SetDefault("database.user", "wildberries_user")
	v.SetDefault("database.password", "wildberries_pass")

	v.SetDefault("export.format", "xlsx")
	v.SetDefault("export.path", "wildberries.xlsx")
}
