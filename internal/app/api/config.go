package api

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"go.temporal.io/sdk/client"

	platformobservability "github.com/Apurer/plant-nursery-api/internal/platform/observability"
)

const (
	envPrefix     = "NURSERY_"
	configFileEnv = "CONFIG_FILE"

	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Config carries every setting for the API, worker and housekeeping processes.
type Config struct {
	App      AppConfig      `koanf:"app"`
	Log      LogConfig      `koanf:"log"`
	Tracing  TracingConfig  `koanf:"tracing"`
	HTTP     HTTPConfig     `koanf:"http"`
	Storage  StorageConfig  `koanf:"storage"`
	Postgres PostgresConfig `koanf:"postgres"`
	Auth     AuthConfig     `koanf:"auth"`
	Orders   OrdersConfig   `koanf:"orders"`
	Temporal TemporalConfig `koanf:"temporal"`
	Sessions SessionsConfig `koanf:"sessions"`
}

type AppConfig struct {
	Env         string `koanf:"env"`
	ServiceName string `koanf:"service_name"`
	Debug       bool   `koanf:"debug"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	// Format is json or text.
	Format string `koanf:"format"`
}

type TracingConfig struct {
	SampleRatio float64 `koanf:"sample_ratio"`
	// OTLPEndpoint overrides OTEL_EXPORTER_OTLP_ENDPOINT when set.
	OTLPEndpoint string `koanf:"otlp_endpoint"`
	Insecure     bool   `koanf:"insecure"`
}

type HTTPConfig struct {
	Port           string   `koanf:"port"`
	AllowedOrigins []string `koanf:"allowed_origins"`
}

type StorageConfig struct {
	Driver  string `koanf:"driver"`
	DataDir string `koanf:"data_dir"`
	// Seed loads the bundled catalog into an empty product store.
	Seed bool `koanf:"seed"`
}

type PostgresConfig struct {
	DSN string `koanf:"dsn"`
}

type AuthConfig struct {
	JWTSecret     string        `koanf:"jwt_secret"`
	TokenTTL      time.Duration `koanf:"token_ttl"`
	BcryptCost    int           `koanf:"bcrypt_cost"`
	AdminEmail    string        `koanf:"admin_email"`
	AdminPassword string        `koanf:"admin_password"`
}

type OrdersConfig struct {
	StrictTransitions bool `koanf:"strict_transitions"`
	RestockOnCancel   bool `koanf:"restock_on_cancel"`
}

type TemporalConfig struct {
	Address   string `koanf:"address"`
	Namespace string `koanf:"namespace"`
	Disabled  bool   `koanf:"disabled"`
}

type SessionsConfig struct {
	// PurgeInterval is how often the API drops expired sessions; zero disables it.
	PurgeInterval time.Duration `koanf:"purge_interval"`
}

var defaults = map[string]any{
	"app.env":                 "local",
	"app.service_name":        "plant-nursery-api",
	"log.level":               "info",
	"log.format":              "json",
	"tracing.sample_ratio":    1.0,
	"tracing.insecure":        true,
	"http.port":               "5000",
	"storage.driver":          DriverMemory,
	"storage.data_dir":        "data",
	"storage.seed":            true,
	"auth.jwt_secret":         "secret",
	"auth.token_ttl":          "1h",
	"auth.bcrypt_cost":        10,
	"auth.admin_email":        "admin@natureparknursery.com",
	"auth.admin_password":     "admin123",
	"temporal.address":        client.DefaultHostPort,
	"temporal.namespace":      client.DefaultNamespace,
	"sessions.purge_interval": "1h",
}

// legacyEnv maps the unprefixed variables older deployments set.
var legacyEnv = map[string]string{
	"PORT":               "http.port",
	"POSTGRES_DSN":       "postgres.dsn",
	"JWT_SECRET":         "auth.jwt_secret",
	"TEMPORAL_ADDRESS":   "temporal.address",
	"TEMPORAL_NAMESPACE": "temporal.namespace",
	"TEMPORAL_DISABLED":  "temporal.disabled",
}

// LoadConfig layers defaults, the optional CONFIG_FILE YAML document, legacy
// variables and NURSERY_ prefixed variables, later sources winning.
func LoadConfig() (Config, error) {
	k := koanf.New(".")
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return Config{}, errors.Wrapf(err, "set default %s", key)
		}
	}

	if path := strings.TrimSpace(os.Getenv(configFileEnv)); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, errors.Wrapf(err, "read config file %s", path)
		}
	}

	for name, key := range legacyEnv {
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			if err := k.Set(key, value); err != nil {
				return Config{}, errors.Wrapf(err, "apply %s", name)
			}
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return strings.ReplaceAll(key, "__", "."), value
		},
	}), nil); err != nil {
		return Config{}, errors.Wrap(err, "load env variables failed")
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config failed")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the processes cannot start with.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverFile:
		if strings.TrimSpace(c.Storage.DataDir) == "" {
			return errors.New("storage.data_dir is required for the file driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			return errors.New("postgres.dsn is required for the postgres driver")
		}
	default:
		return errors.Errorf("storage.driver must be one of memory, file, postgres; got %q", c.Storage.Driver)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret must be provided")
	}
	if c.App.Env == "production" && c.Auth.JWTSecret == defaults["auth.jwt_secret"] {
		return errors.New("auth.jwt_secret must be changed from the default in production")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if c.Sessions.PurgeInterval < 0 {
		return errors.New("sessions.purge_interval cannot be negative")
	}
	if strings.TrimSpace(c.HTTP.Port) == "" {
		return errors.New("http.port must be provided")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return errors.Errorf("log.format must be json or text; got %q", c.Log.Format)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return errors.Errorf("tracing.sample_ratio must be within [0, 1]; got %v", c.Tracing.SampleRatio)
	}
	return nil
}

// LogLevel parses log.level.
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.Wrapf(err, "log.level %q", c.Log.Level)
	}
	return level, nil
}

// ObservabilityOptions maps the log and tracing settings onto Init options.
func (c Config) ObservabilityOptions() []platformobservability.Option {
	level, _ := c.LogLevel()
	return []platformobservability.Option{
		platformobservability.WithLogLevel(level),
		platformobservability.WithTextLogs(c.Log.Format == "text"),
		platformobservability.WithSampleRatio(c.Tracing.SampleRatio),
		platformobservability.WithEnvironment(c.App.Env),
		platformobservability.WithOTLPEndpoint(c.Tracing.OTLPEndpoint, c.Tracing.Insecure),
	}
}

// TemporalEnabled reports whether order placement runs through Temporal.
// Worker processes cannot see another process's memory or files, so only
// the postgres driver qualifies.
func (c Config) TemporalEnabled() bool {
	return !c.Temporal.Disabled && c.Storage.Driver == DriverPostgres
}
