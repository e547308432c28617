package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/niksmo/storefront/internal/core/domain"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	envPrefix         = "STOREFRONT"
	defaultConfigFile = "config.yaml"
)

var ErrInvalidConfig = errors.New("invalid config")

type redis struct {
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	CartTTL   time.Duration `mapstructure:"cart_ttl"`
}

type catalog struct {
	TagMatch         string         `mapstructure:"tag_match"`
	RecommendLimit   int            `mapstructure:"recommend_limit"`
	Coupons          map[string]int `mapstructure:"coupons"`
	ShippingFee      float64        `mapstructure:"shipping_fee"`
	FreeShippingFrom float64        `mapstructure:"free_shipping_from"`
}

type consumers struct {
	CatalogGroup    string `mapstructure:"catalog_group"`
	PopularityGroup string `mapstructure:"popularity_group"`
}

type topics struct {
	CatalogEvents     string `mapstructure:"catalog_events"`
	CartEvents        string `mapstructure:"cart_events"`
	Partitions        int32  `mapstructure:"partitions"`
	ReplicationFactor int16  `mapstructure:"replication_factor"`
}

type brokerTLS struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type brokerSASL struct {
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
}

type broker struct {
	SeedBrokers        []string   `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string   `mapstructure:"schema_registry_urls"`
	Topics             topics     `mapstructure:"topics"`
	Consumers          consumers  `mapstructure:"consumers"`
	TLS                brokerTLS  `mapstructure:"tls"`
	SASL               brokerSASL `mapstructure:"sasl"`
}

type Config struct {
	LogLevel       slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr string        `mapstructure:"http_server_addr"`
	HandlerTimeout time.Duration `mapstructure:"handler_timeout"`
	AdminToken     string        `mapstructure:"admin_token"`
	SQLDB          string        `mapstructure:"sql_db"`
	MigrationsPath string        `mapstructure:"migrations_path"`
	Redis          redis         `mapstructure:"redis"`
	Catalog        catalog       `mapstructure:"catalog"`
	Broker         broker        `mapstructure:"broker"`
}

// Load reads .env, then the config file, then STOREFRONT_* variables.
// A missing default config file is not an error, every key has a default.
func Load() Config {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	return LoadWithFlags(cmdLine, os.Args[1:])
}

// LoadWithFlags adds --config to cmdLine, so commands with their own
// flags share one command line.
func LoadWithFlags(cmdLine *pflag.FlagSet, args []string) Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		die(err)
	}

	arg := cmdLine.String("config", defaultConfigFile, "config file")
	_ = cmdLine.Parse(args)

	path, explicit := *arg, cmdLine.Changed("config")
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		path, explicit = env, true
	}

	cfg, err := load(viper.New(), path, explicit)
	if err != nil {
		die(err)
	}
	return cfg
}

func load(v *viper.Viper, path string, required bool) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("handler_timeout", "5s")
	v.SetDefault("admin_token", "")
	v.SetDefault("sql_db", "")
	v.SetDefault("migrations_path", "migrations")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "storefront:cart:")
	v.SetDefault("redis.cart_ttl", "720h")

	v.SetDefault("catalog.tag_match", "any")
	v.SetDefault("catalog.recommend_limit", 3)
	v.SetDefault("catalog.coupons", map[string]int{"GUZEL10": 10})
	v.SetDefault("catalog.shipping_fee", 59)
	v.SetDefault("catalog.free_shipping_from", 1000)

	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.topics.catalog_events", "catalog-events")
	v.SetDefault("broker.topics.cart_events", "cart-events")
	v.SetDefault("broker.topics.partitions", 3)
	v.SetDefault("broker.topics.replication_factor", 1)
	v.SetDefault("broker.consumers.catalog_group", "storefront-catalog")
	v.SetDefault("broker.consumers.popularity_group", "storefront-popularity")
	v.SetDefault("broker.tls.ca", "")
	v.SetDefault("broker.tls.cert", "")
	v.SetDefault("broker.tls.key", "")
	v.SetDefault("broker.sasl.user", "")
	v.SetDefault("broker.sasl.pass", "")
}

func (c Config) validate() error {
	if _, err := ParseTagMatch(c.Catalog.TagMatch); err != nil {
		return err
	}
	for code, percent := range c.Catalog.Coupons {
		if percent <= 0 || percent > 100 {
			return fmt.Errorf("%w: coupon %s percent %d", ErrInvalidConfig, code, percent)
		}
	}
	if c.KafkaEnabled() && len(c.Broker.SchemaRegistryURLs) == 0 {
		return fmt.Errorf("%w: schema_registry_urls is required with seed_brokers", ErrInvalidConfig)
	}
	tls := c.Broker.TLS
	if (tls.Cert == "") != (tls.Key == "") {
		return fmt.Errorf("%w: tls cert and key go together", ErrInvalidConfig)
	}
	return nil
}

// ParseTagMatch accepts "any"/"or" and "all"/"and".
func ParseTagMatch(s string) (domain.TagMatch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "or":
		return domain.TagMatchAny, nil
	case "all", "and":
		return domain.TagMatchAll, nil
	}
	return 0, fmt.Errorf("%w: unknown tag_match %q", ErrInvalidConfig, s)
}

func (c Config) TagMatch() domain.TagMatch {
	m, _ := ParseTagMatch(c.Catalog.TagMatch)
	return m
}

// Coupons returns coupon codes upper-cased, the config keys are
// case-insensitive.
func (c Config) Coupons() map[string]int {
	out := make(map[string]int, len(c.Catalog.Coupons))
	for code, percent := range c.Catalog.Coupons {
		out[strings.ToUpper(code)] = percent
	}
	return out
}

// KafkaEnabled reports whether the catalog feed and popularity
// stream are configured.
func (c Config) KafkaEnabled() bool {
	return len(c.Broker.SeedBrokers) != 0
}

func (c Config) TLSEnabled() bool {
	return c.Broker.TLS.CA != "" || c.Broker.TLS.Cert != ""
}

func die(err error) {
	fmt.Printf("failed to load config: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	HandlerTimeout=%s
	AdminToken=%s
	SQLDB=%s
	MigrationsPath=%q

	Redis:
	Addr=%q
	DB=%d
	KeyPrefix=%q
	CartTTL=%s

	Catalog:
	TagMatch=%q
	RecommendLimit=%d
	Coupons=%v
	ShippingFee=%v
	FreeShippingFrom=%v

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	SASLUser=%q
	Topics:
		CatalogEvents=%q
		CartEvents=%q
	Consumers:
		CatalogGroup=%q
		PopularityGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.HandlerTimeout,
		mask(c.AdminToken),
		mask(c.SQLDB),
		c.MigrationsPath,
		c.Redis.Addr,
		c.Redis.DB,
		c.Redis.KeyPrefix,
		c.Redis.CartTTL,
		c.Catalog.TagMatch,
		c.Catalog.RecommendLimit,
		c.Catalog.Coupons,
		c.Catalog.ShippingFee,
		c.Catalog.FreeShippingFrom,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.TLSEnabled(),
		c.Broker.SASL.User,
		c.Broker.Topics.CatalogEvents,
		c.Broker.Topics.CartEvents,
		c.Broker.Consumers.CatalogGroup,
		c.Broker.Consumers.PopularityGroup,
	)
}

func mask(secret string) string {
	if secret == "" {
		return `""`
	}
	return "***"
}
