package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"mockapi/internal/auth"
	"mockapi/internal/logging"
	"mockapi/internal/mockgen"
	"mockapi/internal/store"
)

// Config is the service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Store     store.Config    `yaml:"store"`
	Auth      auth.Config     `yaml:"auth"`
	Generator GeneratorConfig `yaml:"generator"`
	Log       logging.Config  `yaml:"log"`
}

// HTTPConfig configures the listener.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	BasePath        string        `yaml:"base_path"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// GeneratorConfig configures record generation.
type GeneratorConfig struct {
	DefaultCount   int  `yaml:"default_count"`
	NameHeuristics bool `yaml:"name_heuristics"`
}

// defaultConfig returns the configuration used when nothing overrides it.
func defaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":9090",
			BasePath:        "/api",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Store: store.Config{
			Driver:    store.DriverFile,
			DataDir:   "data",
			RedisAddr: "localhost:6379",
		},
		Auth: auth.Config{Mode: auth.ModeAPIKey},
		Generator: GeneratorConfig{
			DefaultCount:   mockgen.MaxCount,
			NameHeuristics: true,
		},
		Log: logging.Config{Level: "info", Format: "text"},
	}
}

// loadConfig reads the YAML file at path (if any) over the defaults, then
// applies environment overrides from lookup and validates the result.
func loadConfig(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// applyEnv overrides cfg from environment variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("HTTP_ADDR", &c.HTTP.Addr)
	str("MOCKAPI_BASE_PATH", &c.HTTP.BasePath)
	str("MOCKAPI_STORE", &c.Store.Driver)
	str("MOCKAPI_DATA_DIR", &c.Store.DataDir)
	str("MOCKAPI_DSN", &c.Store.DSN)
	str("REDIS_ADDR", &c.Store.RedisAddr)
	str("MOCKAPI_AUTH", &c.Auth.Mode)
	str("MOCKAPI_JWT_SECRET", &c.Auth.JWT.Secret)
	str("MOCKAPI_JWT_PUBLIC_KEY_FILE", &c.Auth.JWT.PublicKeyFile)
	str("MOCKAPI_JWT_ISSUER", &c.Auth.JWT.Issuer)
	str("MOCKAPI_JWT_AUDIENCE", &c.Auth.JWT.Audience)
	str("MOCKAPI_LOG_LEVEL", &c.Log.Level)
	str("MOCKAPI_LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("API_KEYS"); ok && v != "" {
		c.Auth.APIKeys = auth.ParseAPIKeys(v)
	}
	if v, ok := lookup("MOCKAPI_REDIS_DB"); ok && v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("MOCKAPI_REDIS_DB: %w", err))
		}
		c.Store.RedisDB = n
	}
	if v, ok := lookup("MOCKAPI_DEFAULT_COUNT"); ok && v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("MOCKAPI_DEFAULT_COUNT: %w", err))
		}
		c.Generator.DefaultCount = n
	}
	if v, ok := lookup("MOCKAPI_NAME_HEURISTICS"); ok && v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("MOCKAPI_NAME_HEURISTICS: %w", err))
		}
		c.Generator.NameHeuristics = b
	}
	if v, ok := lookup("MOCKAPI_SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := cast.ToDurationE(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("MOCKAPI_SHUTDOWN_TIMEOUT: %w", err))
		}
		c.HTTP.ShutdownTimeout = d
	}
	return errors.Join(errs...)
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	if !strings.HasPrefix(c.HTTP.BasePath, "/") || c.HTTP.BasePath == "/" || strings.HasSuffix(c.HTTP.BasePath, "/") {
		errs = append(errs, fmt.Errorf("http.base_path %q must start with / and name a path segment", c.HTTP.BasePath))
	}
	if c.Generator.DefaultCount < mockgen.MinCount || c.Generator.DefaultCount > mockgen.MaxCount {
		errs = append(errs, fmt.Errorf("generator.default_count must be between %d and %d", mockgen.MinCount, mockgen.MaxCount))
	}

	switch strings.ToLower(c.Store.Driver) {
	case store.DriverMemory:
	case store.DriverFile:
		if c.Store.DataDir == "" {
			errs = append(errs, errors.New("store.data_dir is required for the file driver"))
		}
	case store.DriverRedis:
		if c.Store.RedisAddr == "" {
			errs = append(errs, errors.New("store.redis_addr is required for the redis driver"))
		}
	case store.DriverSQLite, store.DriverPostgres:
		if c.Store.DSN == "" {
			errs = append(errs, fmt.Errorf("store.dsn is required for the %s driver", c.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver: %w: %q", store.ErrUnknownDriver, c.Store.Driver))
	}

	switch strings.ToLower(c.Auth.Mode) {
	case auth.ModeAPIKey, "":
		if len(c.Auth.APIKeys) == 0 {
			errs = append(errs, errors.New("auth.api_keys is required in apikey mode (or set API_KEYS)"))
		}
	case auth.ModeJWT:
		if c.Auth.JWT.Secret == "" && c.Auth.JWT.PublicKeyFile == "" {
			errs = append(errs, errors.New("auth.jwt needs a secret or public_key_file"))
		}
	case auth.ModeNone:
	default:
		errs = append(errs, fmt.Errorf("auth.mode %q is not one of apikey, jwt, none", c.Auth.Mode))
	}
	return errors.Join(errs...)
}
