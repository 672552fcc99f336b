package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment override, e.g. APP_DATABASE_HOST.
const EnvPrefix = "APP"

const (
	defaultMaxConnections = 10
	defaultAcquireTimeout = 2 * time.Second
)

// Settings is the full application configuration.
type Settings struct {
	Application ApplicationSettings `yaml:"application" envconfig:"APPLICATION"`
	Database    DatabaseSettings    `yaml:"database" envconfig:"DATABASE"`
	Log         LogSettings         `yaml:"log" envconfig:"LOG"`
}

type ApplicationSettings struct {
	Host           string   `yaml:"host" envconfig:"HOST"`
	Port           int      `yaml:"port" envconfig:"PORT"`
	AllowedOrigins []string `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
}

// Address returns host:port for the HTTP listener.
func (a ApplicationSettings) Address() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// DatabaseSettings holds everything needed to reach the subscriptions store.
type DatabaseSettings struct {
	Username string `yaml:"username" envconfig:"USERNAME"`
	Password Secret `yaml:"password" envconfig:"PASSWORD"`
	// PasswordSecretName is a Secret Manager resource name. When set, the
	// password is fetched at startup and replaces Password.
	PasswordSecretName string        `yaml:"password_secret_name" envconfig:"PASSWORD_SECRET_NAME"`
	Host               string        `yaml:"host" envconfig:"HOST"`
	Port               uint16        `yaml:"port" envconfig:"PORT"`
	DatabaseName       string        `yaml:"database_name" envconfig:"DATABASE_NAME"`
	RequireSSL         bool          `yaml:"require_ssl" envconfig:"REQUIRE_SSL"`
	MaxConnections     int32         `yaml:"max_connections" envconfig:"MAX_CONNECTIONS"`
	AcquireTimeout     time.Duration `yaml:"acquire_timeout" envconfig:"ACQUIRE_TIMEOUT"`
}

type LogSettings struct {
	Level string `yaml:"level" envconfig:"LEVEL"`
}

// Environment selects the per-environment configuration file.
type Environment string

const (
	Local      Environment = "local"
	Production Environment = "production"
)

// Decode implements envconfig.Decoder.
func (e *Environment) Decode(value string) error {
	switch env := Environment(strings.ToLower(value)); env {
	case Local, Production:
		*e = env
		return nil
	default:
		return fmt.Errorf("%q is not a supported environment, use either %q or %q", value, Local, Production)
	}
}

type selector struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"local"`
}

// Load reads base.yaml and <environment>.yaml from dir, then applies APP_*
// environment overrides on top.
func Load(dir string) (*Settings, error) {
	var sel selector
	if err := envconfig.Process(EnvPrefix, &sel); err != nil {
		return nil, fmt.Errorf("select environment: %w", err)
	}

	var s Settings
	for _, name := range []string{"base.yaml", string(sel.Environment) + ".yaml"} {
		if err := readYAML(filepath.Join(dir, name), &s); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return nil, fmt.Errorf("apply environment overrides: %w", err)
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &s, nil
}

func readYAML(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (s *Settings) applyDefaults() {
	if s.Application.Host == "" {
		s.Application.Host = "127.0.0.1"
	}
	if s.Database.MaxConnections == 0 {
		s.Database.MaxConnections = defaultMaxConnections
	}
	if s.Database.AcquireTimeout == 0 {
		s.Database.AcquireTimeout = defaultAcquireTimeout
	}
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
}

// Validate reports the first group of invalid fields.
func (s *Settings) Validate() error {
	if err := validation.ValidateStruct(&s.Application,
		validation.Field(&s.Application.Port, validation.Min(0), validation.Max(65535)),
	); err != nil {
		return fmt.Errorf("application: %w", err)
	}
	if err := s.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	return nil
}

// Validate checks the fields a connection cannot be built without.
func (d *DatabaseSettings) Validate() error {
	err := validation.ValidateStruct(d,
		validation.Field(&d.Username, validation.Required),
		validation.Field(&d.Host, validation.Required),
		validation.Field(&d.Port, validation.Required),
		validation.Field(&d.DatabaseName, validation.Required),
		validation.Field(&d.MaxConnections, validation.Min(int32(1))),
		validation.Field(&d.AcquireTimeout, validation.Min(time.Millisecond)),
	)
	if err != nil {
		return err
	}
	if d.Password.IsZero() && d.PasswordSecretName == "" {
		return errors.New("password: cannot be blank unless password_secret_name is set")
	}
	return nil
}
