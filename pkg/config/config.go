package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries"`
	Environment               string        `koanf:"environment"`
	FrontendURL               string        `koanf:"frontend_url"`
	Hostname                  string        `koanf:"-"`
	LoanPeriodDays            int           `koanf:"loan_period_days"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
}

// New loads configuration in three layers: defaults, then an optional YAML
// config file (CONFIG_FILE, default ./config.yaml), then environment variable
// overrides named after the snake_case config keys (e.g. DATABASE_FILE_PATH).
func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := defaultConfig()
	cfg.Hostname = hostname

	if env := os.Getenv("ENVIRONMENT"); env != "" {
		cfg.Environment = env
	}
	switch cfg.Environment {
	case "development":
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	}

	configFilePath := os.Getenv("CONFIG_FILE")
	if configFilePath == "" {
		configFilePath = "./config.yaml"
	}
	if _, err := os.Stat(configFilePath); err == nil {
		k := koanf.New(".")
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file: %s", configFilePath)
		}
		if err := k.Unmarshal("", cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file: %s", configFilePath)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if cfg.DatabaseFilePath == "" {
		return nil, errors.New("missing required config: DATABASE_FILE_PATH (database_file_path)")
	}

	return cfg, nil
}

// NewForTest returns a config backed by an in-memory database, suitable for
// unit tests that don't want to touch the environment.
func NewForTest() *Config {
	cfg := defaultConfig()
	loadTestConfig(cfg)
	return cfg
}

func defaultConfig() *Config {
	return &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        3,
		Environment:               "production",
		FrontendURL:               "http://localhost:3000",
		LoanPeriodDays:            14,
		ServerHost:                "0.0.0.0",
		ServerPort:                8080,
	}
}

// applyEnvOverrides walks the config struct and overrides any field whose
// UPPER_SNAKE_CASE name is present in the environment.
func applyEnvOverrides(cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("koanf") == "-" {
			continue
		}

		envName := strings.ToUpper(toSnakeCase(field.Name))
		raw, ok := os.LookupEnv(envName)
		if !ok {
			continue
		}

		fv := v.Field(i)
		switch fv.Interface().(type) {
		case string:
			fv.SetString(raw)
		case bool:
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				return errors.Errorf("invalid value for %s: %q", envName, raw)
			}
			fv.SetBool(parsed)
		case int:
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return errors.Errorf("invalid value for %s: %q", envName, raw)
			}
			fv.SetInt(int64(parsed))
		case time.Duration:
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				return errors.Errorf("invalid value for %s: %q", envName, raw)
			}
			fv.SetInt(int64(parsed))
		default:
			return errors.Errorf("unsupported config field type for %s", field.Name)
		}
	}

	return nil
}

func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (name[i-1] < 'A' || name[i-1] > 'Z') {
				b.WriteByte('_')
			}
			b.WriteString(strings.ToLower(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Addr is the host:port the HTTP server binds to.
func (cfg *Config) Addr() string {
	return fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
}

// LoanPeriod is the configured loan duration.
func (cfg *Config) LoanPeriod() time.Duration {
	return time.Duration(cfg.LoanPeriodDays) * 24 * time.Hour
}
